package navigator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/controller"
	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
	"github.com/Shivanand-hulikatti/eventdesk/internal/routes"
	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

type fakePage struct {
	mu       sync.Mutex
	calls    []string
	mounted  string
	history  []string
	replaced []string
	sidebar  bool
	profile  view.Profile
	rendered []view.Screen
}

func (p *fakePage) Mount(markup string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "mount")
	p.mounted = markup
	return nil
}

func (p *fakePage) PushHistory(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "push")
	p.history = append(p.history, path)
}

func (p *fakePage) ReplaceHistory(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "replace")
	p.replaced = append(p.replaced, path)
}

func (p *fakePage) SetSidebarVisible(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "sidebar")
	p.sidebar = v
}

func (p *fakePage) RenderProfile(pr view.Profile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "profile")
	p.profile = pr
}

func (p *fakePage) Render(s view.Screen) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "render")
	p.rendered = append(p.rendered, s)
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []view.Notice
}

func (f *fakeNotifier) Notify(msg, color string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, view.Notice{Message: msg, Color: color, Duration: d})
}

func (f *fakeNotifier) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.notices))
	for _, n := range f.notices {
		out = append(out, n.Message)
	}
	return out
}

// templates returns the template ref as markup, or err when set.
type templates struct {
	err   error
	block map[string]chan struct{}
}

func (t *templates) Fetch(ctx context.Context, ref string) (string, error) {
	if ch, ok := t.block[ref]; ok {
		select {
		case <-ch:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if t.err != nil {
		return "", t.err
	}
	return "<!-- " + ref + " -->", nil
}

type memEvents struct{ items []model.Event }

func (m *memEvents) List(context.Context) ([]model.Event, error) { return m.items, nil }
func (m *memEvents) Create(_ context.Context, e model.Event) (model.Event, error) {
	m.items = append(m.items, e)
	return e, nil
}
func (m *memEvents) Update(_ context.Context, _ string, e model.Event) (model.Event, error) {
	return e, nil
}
func (m *memEvents) Delete(_ context.Context, id string) error {
	for i, e := range m.items {
		if e.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return errors.New("missing")
}

type memUsers struct{ items []model.User }

func (m *memUsers) List(context.Context) ([]model.User, error) { return m.items, nil }
func (m *memUsers) Create(_ context.Context, u model.User) (model.User, error) {
	m.items = append(m.items, u)
	return u, nil
}

type memEnrollments struct{ items []model.Enrollment }

func (m *memEnrollments) List(context.Context) ([]model.Enrollment, error) { return m.items, nil }
func (m *memEnrollments) Create(_ context.Context, e model.Enrollment) (model.Enrollment, error) {
	m.items = append(m.items, e)
	return e, nil
}

type yes struct{}

func (yes) Confirm(string) bool { return true }

type harness struct {
	nav         *Navigator
	page        *fakePage
	notes       *fakeNotifier
	store       *session.Store
	tpl         *templates
	events      *memEvents
	users       *memUsers
	enrollments *memEnrollments
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		page:  &fakePage{},
		notes: &fakeNotifier{},
		store: session.NewStore(session.NewMemory(), zap.NewNop()),
		tpl:   &templates{},
		events: &memEvents{items: []model.Event{
			{ID: "1", Name: "Expo", Capacity: 10, Date: "2025-01-01T00:00:00.000Z", Img: "http://a"},
		}},
		users: &memUsers{items: []model.User{
			{ID: "1", Email: "a@x.com", Password: "p1", Role: model.RoleAdmin, Name: "Ana"},
			{ID: "2", Email: "b@x.com", Password: "p2", Role: model.RoleVisitor, Name: "Bo"},
		}},
		enrollments: &memEnrollments{},
	}
	log := zap.NewNop()
	nav, err := New(Config{
		Routes:    routes.Default(),
		Templates: h.tpl,
		Page:      h.page,
		Notifier:  h.notes,
		Session:   h.store,
		Log:       log,
		Controllers: map[routes.View]view.Controller{
			routes.ViewLogin:       &controller.Login{Users: h.users, Log: log},
			routes.ViewRegister:    &controller.Register{Users: h.users, Log: log},
			routes.ViewEvents:      &controller.Events{Events: h.events, Enrollments: h.enrollments, Confirm: yes{}, Log: log},
			routes.ViewCreateEvent: &controller.CreateEvent{Events: h.events, Log: log},
			routes.ViewEditEvent:   &controller.EditEvent{Events: h.events, Log: log},
			routes.ViewEnrollments: &controller.Enrollments{Enrollments: h.enrollments, Log: log},
		},
	})
	require.NoError(t, err)
	h.nav = nav
	return h
}

func (h *harness) login(t *testing.T, email, password string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, h.nav.Navigate(ctx, routes.Login))
	require.NoError(t, h.nav.Dispatch(ctx, view.Action{
		Kind: view.ActionSubmit,
		Form: view.Form{view.FieldUser: email, view.FieldPassword: password},
	}))
}

func TestNew_RequiresEveryController(t *testing.T) {
	_, err := New(Config{
		Routes:      routes.Default(),
		Templates:   &templates{},
		Page:        &fakePage{},
		Notifier:    &fakeNotifier{},
		Session:     session.NewStore(session.NewMemory(), zap.NewNop()),
		Controllers: map[routes.View]view.Controller{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no controller")

	_, err = New(Config{})
	require.Error(t, err)
}

func TestNavigate_GatesUnauthenticated(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for _, p := range []string{routes.Root, routes.Events, routes.Enrollments, "/whatever"} {
		require.NoError(t, h.nav.Navigate(ctx, p))
		assert.Equal(t, routes.Login, h.nav.Current().Path, p)
	}
	assert.False(t, h.page.sidebar)

	require.NoError(t, h.store.BeginRegistration())
	for _, p := range []string{routes.Root, routes.Login, routes.Events} {
		require.NoError(t, h.nav.Navigate(ctx, p))
		assert.Equal(t, routes.Register, h.nav.Current().Path, p)
	}
}

func TestNavigate_StepOrder(t *testing.T) {
	h := newHarness(t)
	h.login(t, "a@x.com", "p1")
	h.page.calls = nil

	require.NoError(t, h.nav.Navigate(context.Background(), routes.Events))
	assert.Equal(t, []string{"mount", "push", "sidebar", "profile", "render"}, h.page.calls)
	assert.Equal(t, "<!-- /app/views/events.html -->", h.page.mounted)
	assert.True(t, h.page.sidebar)
}

func TestLoginScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.login(t, "a@x.com", "wrong")
	assert.Equal(t, []string{"Incorrect username or password"}, h.notes.messages())
	assert.Equal(t, session.State{}, h.store.Load())
	assert.Equal(t, routes.Login, h.nav.Current().Path)

	require.NoError(t, h.nav.Dispatch(ctx, view.Action{
		Kind: view.ActionSubmit,
		Form: view.Form{view.FieldUser: "a@x.com", view.FieldPassword: "p1"},
	}))
	assert.Equal(t, session.State{Authenticated: true, Role: model.RoleAdmin, UserName: "Ana"}, h.store.Load())
	assert.Equal(t, routes.Root, h.nav.Current().Path)
	assert.Equal(t, view.Profile{Name: "Ana", Label: "Administrator", Avatar: view.AdminAvatar}, h.page.profile)
	assert.True(t, h.page.sidebar)
}

func TestAdminCreateScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t, "a@x.com", "p1")

	require.NoError(t, h.nav.Navigate(ctx, routes.Events))
	require.NoError(t, h.nav.Dispatch(ctx, view.Action{Kind: view.ActionAddEvent}))
	assert.Equal(t, routes.CreateEvent, h.nav.Current().Path)

	require.NoError(t, h.nav.Dispatch(ctx, view.Action{Kind: view.ActionSubmit, Form: view.Form{
		view.FieldName: "gala", view.FieldDescription: "night", view.FieldCapacity: "30", view.FieldDate: "2025-06-01",
	}}))
	assert.Equal(t, routes.Events, h.nav.Current().Path)
	assert.Contains(t, h.notes.messages(), `Event"Gala" added successfully!`)

	screen := h.nav.Screen()
	require.Len(t, screen.Events, 2)
	assert.Equal(t, "2", screen.Events[1].ID)
	assert.True(t, screen.Controls.AdminActions)
}

func TestDeleteScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t, "a@x.com", "p1")
	require.NoError(t, h.nav.Navigate(ctx, routes.Events))

	require.NoError(t, h.nav.Dispatch(ctx, view.Action{Kind: view.ActionDeleteEvent, ID: "1"}))
	assert.Empty(t, h.events.items)
	assert.Equal(t, routes.Events, h.nav.Current().Path)
	assert.Empty(t, h.nav.Screen().Events)
}

func TestEditScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t, "a@x.com", "p1")
	require.NoError(t, h.nav.Navigate(ctx, routes.Events))

	require.NoError(t, h.nav.Dispatch(ctx, view.Action{Kind: view.ActionEditEvent, ID: "1"}))
	assert.Equal(t, routes.EditEvent, h.nav.Current().Path)
	assert.Empty(t, h.store.PendingEdit())
	assert.Equal(t, "2025-01-01", h.nav.Screen().Form[view.FieldDate])

	// Re-opening the edit form without a new selection bounces to the list.
	require.NoError(t, h.nav.Navigate(ctx, routes.EditEvent))
	assert.Equal(t, routes.Events, h.nav.Current().Path)
	assert.Contains(t, h.notes.messages(), "No event selected to edit")
}

func TestEnrollScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t, "b@x.com", "p2")
	require.NoError(t, h.nav.Navigate(ctx, routes.Events))
	assert.True(t, h.nav.Screen().Controls.Enroll)

	require.NoError(t, h.nav.Dispatch(ctx, view.Action{Kind: view.ActionEnroll, ID: "1"}))
	require.Len(t, h.enrollments.items, 1)
	assert.Equal(t, "Bo", h.enrollments.items[0].User)

	require.NoError(t, h.nav.Navigate(ctx, routes.Enrollments))
	assert.Len(t, h.nav.Screen().Enrollments, 1)
}

func TestRegistrationScenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.nav.Navigate(ctx, routes.Root))

	require.NoError(t, h.nav.Dispatch(ctx, view.Action{Kind: view.ActionRegister}))
	assert.Equal(t, routes.Register, h.nav.Current().Path)
	assert.True(t, h.store.IsRegistering())

	require.NoError(t, h.nav.Dispatch(ctx, view.Action{Kind: view.ActionSubmit, Form: view.Form{
		view.FieldName: "cy", view.FieldEmail: "c@x.com", view.FieldPassword: "pw", view.FieldPassword2: "pw",
	}}))
	assert.False(t, h.store.IsRegistering())
	assert.Equal(t, routes.Login, h.nav.Current().Path)
	require.Len(t, h.users.items, 3)
	assert.Equal(t, "3", h.users.items[2].ID)
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.login(t, "a@x.com", "p1")

	require.NoError(t, h.nav.Logout(context.Background()))
	assert.Equal(t, session.State{}, h.store.Load())
	assert.Equal(t, routes.Login, h.nav.Current().Path)
	assert.Equal(t, view.Profile{EnrollmentsNav: true}, h.page.profile)
}

func TestTemplateFailureLeavesPageUntouched(t *testing.T) {
	h := newHarness(t)
	h.tpl.err = errors.New("offline")

	err := h.nav.Navigate(context.Background(), routes.Login)
	require.Error(t, err)
	assert.ErrorIs(t, err, h.tpl.err)
	assert.Empty(t, h.page.calls)
	assert.Equal(t, []string{"Error loading view"}, h.notes.messages())
}

func TestDispatchWithoutController(t *testing.T) {
	h := newHarness(t)
	require.ErrorIs(t, h.nav.Dispatch(context.Background(), view.Action{Kind: view.ActionSubmit}), ErrUnknownAction)

	h.login(t, "a@x.com", "p1")
	assert.Equal(t, routes.Root, h.nav.Current().Path)
	require.ErrorIs(t, h.nav.Dispatch(context.Background(), view.Action{Kind: view.ActionSubmit}), ErrUnknownAction)
}

func TestBack(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t, "a@x.com", "p1")
	require.NoError(t, h.nav.Navigate(ctx, routes.Events))
	pushed := len(h.page.history)

	require.NoError(t, h.nav.Back(ctx))
	assert.Equal(t, routes.Root, h.nav.Current().Path)
	assert.Len(t, h.page.history, pushed)
}

func TestStaleNavigationIsDropped(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.login(t, "a@x.com", "p1")

	release := make(chan struct{})
	h.tpl.block = map[string]chan struct{}{"/app/views/enrollments.html": release}

	done := make(chan error, 1)
	go func() { done <- h.nav.Navigate(ctx, routes.Enrollments) }()

	// Wait until the slow navigation holds a generation number.
	require.Eventually(t, func() bool {
		h.nav.mu.Lock()
		defer h.nav.mu.Unlock()
		return h.nav.gen >= 3
	}, time.Second, time.Millisecond)

	require.NoError(t, h.nav.Navigate(ctx, routes.Events))
	close(release)

	require.ErrorIs(t, <-done, ErrSuperseded)
	assert.Equal(t, routes.Events, h.nav.Current().Path)
}

func TestRestore_RewritesGatedEntry(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.nav.Restore(ctx, routes.Events))
	assert.Equal(t, routes.Login, h.nav.Current().Path)
	assert.Empty(t, h.page.history)
	assert.Equal(t, []string{routes.Login}, h.page.replaced)
	assert.Equal(t, []string{routes.Login}, h.nav.history)

	h.login(t, "a@x.com", "p1")
	h.page.replaced = nil
	require.NoError(t, h.nav.Restore(ctx, routes.Events))
	assert.Equal(t, routes.Events, h.nav.Current().Path)
	assert.Empty(t, h.page.replaced)
	assert.Equal(t, routes.Events, h.nav.history[len(h.nav.history)-1])
}

func TestRoleControlsAreEnforced(t *testing.T) {
	ctx := context.Background()

	visitor := newHarness(t)
	visitor.login(t, "b@x.com", "p2")
	require.NoError(t, visitor.nav.Navigate(ctx, routes.Events))
	require.ErrorIs(t, visitor.nav.Dispatch(ctx, view.Action{Kind: view.ActionDeleteEvent, ID: "1"}), ErrUnknownAction)
	require.ErrorIs(t, visitor.nav.Dispatch(ctx, view.Action{Kind: view.ActionAddEvent}), ErrUnknownAction)
	assert.Len(t, visitor.events.items, 1)
	assert.Equal(t, routes.Events, visitor.nav.Current().Path)

	require.NoError(t, visitor.nav.Navigate(ctx, routes.CreateEvent))
	assert.Equal(t, routes.Events, visitor.nav.Current().Path)
	assert.Contains(t, visitor.notes.messages(), "Only administrators can manage events")

	admin := newHarness(t)
	admin.login(t, "a@x.com", "p1")
	require.NoError(t, admin.nav.Navigate(ctx, routes.Events))
	require.ErrorIs(t, admin.nav.Dispatch(ctx, view.Action{Kind: view.ActionEnroll, ID: "1"}), ErrUnknownAction)
	assert.Empty(t, admin.enrollments.items)
}
