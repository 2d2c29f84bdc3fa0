// Package controller implements the view controllers. Controllers are pure
// with respect to the page: they read data through narrow store interfaces
// and return a view.Outcome that the navigator applies.
package controller

import (
	"context"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
	"github.com/Shivanand-hulikatti/eventdesk/internal/routes"
	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

// EventStore is the event collection as the controllers use it.
type EventStore interface {
	List(ctx context.Context) ([]model.Event, error)
	Create(ctx context.Context, e model.Event) (model.Event, error)
	Update(ctx context.Context, id string, e model.Event) (model.Event, error)
	Delete(ctx context.Context, id string) error
}

// UserStore is the credential collection.
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

// EnrollmentStore is the enrollment collection.
type EnrollmentStore interface {
	List(ctx context.Context) ([]model.Enrollment, error)
	Create(ctx context.Context, e model.Enrollment) (model.Enrollment, error)
}

// stay keeps the current view and session.
func stay(st session.State, n *view.Notice) view.Outcome {
	return view.Outcome{Session: st, Notice: n}
}

// goTo navigates away, optionally with a notice.
func goTo(st session.State, path string, n *view.Notice) view.Outcome {
	return view.Outcome{Session: st, Notice: n, Next: path}
}

// allowed reports whether role has the control behind kind. Actions whose
// control is hidden from a role are refused, not just hidden.
func allowed(role model.Role, kind view.ActionKind) bool {
	c := view.ControlsFor(role)
	switch kind {
	case view.ActionAddEvent:
		return c.AddEvent
	case view.ActionEditEvent, view.ActionDeleteEvent:
		return c.AdminActions
	case view.ActionEnroll:
		return c.Enroll
	default:
		return true
	}
}

// forbidden sends a session that may not manage events back to the list.
func forbidden(st session.State) view.Outcome {
	return goTo(st, routes.Events, view.Failure("Only administrators can manage events"))
}
