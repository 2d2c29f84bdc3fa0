// Package navigator drives the single-page application: it gates requested
// paths on the session, mounts the view template, updates history, sidebar
// and profile header, and hands control to the view's controller.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/routes"
	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

// ErrSuperseded is returned by a navigation or action that a newer
// navigation overtook before it could write to the page.
var ErrSuperseded = errors.New("navigation superseded")

// ErrUnknownAction is returned when the active view does not handle an action.
var ErrUnknownAction = view.ErrUnknownAction

// Config holds the navigator's collaborators.
type Config struct {
	Routes      *routes.Registry
	Templates   view.TemplateSource
	Page        view.Page
	Notifier    view.Notifier
	Session     *session.Store
	Controllers map[routes.View]view.Controller
	Log         *zap.Logger
}

// Navigator is safe for concurrent use. Page writes are serialized and
// stale navigations are dropped.
type Navigator struct {
	routes      *routes.Registry
	templates   view.TemplateSource
	page        view.Page
	notify      view.Notifier
	session     *session.Store
	controllers map[routes.View]view.Controller
	log         *zap.Logger

	mu      sync.Mutex
	gen     uint64
	current routes.Route
	active  view.Controller
	screen  view.Screen
	history []string
}

// New validates cfg and returns a Navigator. Every routed view that expects
// a controller must have one.
func New(cfg Config) (*Navigator, error) {
	if cfg.Routes == nil || cfg.Templates == nil || cfg.Page == nil || cfg.Notifier == nil || cfg.Session == nil {
		return nil, fmt.Errorf("navigator: routes, templates, page, notifier and session are required")
	}
	for _, rt := range cfg.Routes.Routes() {
		if rt.View.HasController() && cfg.Controllers[rt.View] == nil {
			return nil, fmt.Errorf("navigator: no controller for view %s (%s)", rt.View, rt.Path)
		}
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Navigator{
		routes:      cfg.Routes,
		templates:   cfg.Templates,
		page:        cfg.Page,
		notify:      cfg.Notifier,
		session:     cfg.Session,
		controllers: cfg.Controllers,
		log:         log,
	}, nil
}

// Navigate shows the view for requested, after gating, and pushes the
// resolved path onto history.
func (n *Navigator) Navigate(ctx context.Context, requested string) error {
	return n.navigate(ctx, requested, true)
}

// Restore shows the view for a path the host's history already holds, such
// as on initial load or a browser back/forward event. When gating or
// resolution lands elsewhere the current history entry is rewritten.
func (n *Navigator) Restore(ctx context.Context, path string) error {
	return n.navigate(ctx, path, false)
}

// Back returns to the previous path in history. With no previous entry it
// re-shows the current one.
func (n *Navigator) Back(ctx context.Context) error {
	n.mu.Lock()
	target := routes.Root
	if len(n.history) > 1 {
		n.history = n.history[:len(n.history)-1]
		target = n.history[len(n.history)-1]
	} else if len(n.history) == 1 {
		target = n.history[0]
	}
	n.mu.Unlock()
	return n.navigate(ctx, target, false)
}

// Logout clears the signed-in user and shows the login form.
func (n *Navigator) Logout(ctx context.Context) error {
	st := n.session.Load()
	if err := n.session.Save(st.LoggedOut()); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return n.Navigate(ctx, routes.Login)
}

// Current returns the route on screen.
func (n *Navigator) Current() routes.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Screen returns the data on screen.
func (n *Navigator) Screen() view.Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.screen
}

func (n *Navigator) navigate(ctx context.Context, requested string, push bool) error {
	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.mu.Unlock()

	st := n.session.Load()
	rt := n.routes.Resolve(routes.Gate(st, requested))
	log := n.log.With(
		zap.String("nav_id", uuid.NewString()),
		zap.String("requested", requested),
		zap.String("path", rt.Path),
	)
	log.Debug("navigate")

	markup, err := n.templates.Fetch(ctx, rt.Template)
	if err != nil {
		if n.stale(gen) {
			return ErrSuperseded
		}
		log.Error("fetch template", zap.String("template", rt.Template), zap.Error(err))
		n.notify.Notify("Error loading view", view.FailureColor, view.NoticeDuration)
		return fmt.Errorf("fetch template %s: %w", rt.Template, err)
	}

	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		log.Debug("navigation superseded before mount")
		return ErrSuperseded
	}
	if err := n.page.Mount(markup); err != nil {
		n.mu.Unlock()
		return fmt.Errorf("mount %s: %w", rt.Template, err)
	}
	switch {
	case push:
		n.page.PushHistory(rt.Path)
		n.history = append(n.history, rt.Path)
	case len(n.history) == 0:
		n.history = append(n.history, rt.Path)
	default:
		n.history[len(n.history)-1] = rt.Path
	}
	if !push && rt.Path != requested {
		n.page.ReplaceHistory(rt.Path)
	}
	n.page.SetSidebarVisible(rt.Sidebar)
	n.page.RenderProfile(view.ProfileFor(st))
	n.current = rt
	n.screen = view.Screen{}
	n.active = n.controllers[rt.View]
	ctrl := n.active
	n.mu.Unlock()

	if ctrl == nil {
		return nil
	}
	out := ctrl.Activate(ctx, st)
	return n.apply(ctx, gen, st, out, log)
}

// Dispatch delivers a user gesture to the controller of the view on screen.
func (n *Navigator) Dispatch(ctx context.Context, action view.Action) error {
	n.mu.Lock()
	ctrl, screen, gen, rt := n.active, n.screen, n.gen, n.current
	n.mu.Unlock()

	log := n.log.With(zap.String("path", rt.Path), zap.Stringer("action", action.Kind))
	if ctrl == nil {
		return ErrUnknownAction
	}
	st := n.session.Load()
	out, err := ctrl.Handle(ctx, view.Input{Session: st, Screen: screen, Action: action})
	if err != nil {
		return fmt.Errorf("%s on %s: %w", action.Kind, rt.Path, err)
	}
	log.Debug("dispatch")
	return n.apply(ctx, gen, st, out, log)
}

// apply persists the outcome's session, then, unless a newer navigation
// started since gen, renders, notifies and follows Next.
func (n *Navigator) apply(ctx context.Context, gen uint64, before session.State, out view.Outcome, log *zap.Logger) error {
	if out.Session != before {
		if err := n.session.Save(out.Session); err != nil {
			log.Error("save session", zap.Error(err))
			return err
		}
	}

	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		log.Debug("outcome superseded")
		return ErrSuperseded
	}
	if out.Screen != nil {
		n.screen = *out.Screen
		n.page.Render(n.screen)
	}
	if out.Notice != nil {
		n.notify.Notify(out.Notice.Message, out.Notice.Color, out.Notice.Duration)
	}
	n.mu.Unlock()

	if out.Next != "" {
		return n.Navigate(ctx, out.Next)
	}
	return nil
}

func (n *Navigator) stale(gen uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return gen != n.gen
}
