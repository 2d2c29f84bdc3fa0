// Package view defines what controllers exchange with the navigator and the
// hosts: the rendered screen model, user actions, notices, outcomes, and the
// page, notification and confirmation ports.
package view

import (
	"context"
	"errors"
	"time"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
)

// Notification colors and duration.
const (
	SuccessColor   = "#a7c957"
	FailureColor   = "#e12c2c"
	NoticeDuration = 3000 * time.Millisecond
)

// ErrUnknownAction is returned by a controller for an action it does not handle.
var ErrUnknownAction = errors.New("unknown action")

// Notice is a transient message shown to the user.
type Notice struct {
	Message  string
	Color    string
	Duration time.Duration
}

// Success builds a success notice.
func Success(msg string) *Notice {
	return &Notice{Message: msg, Color: SuccessColor, Duration: NoticeDuration}
}

// Failure builds a failure notice.
func Failure(msg string) *Notice {
	return &Notice{Message: msg, Color: FailureColor, Duration: NoticeDuration}
}

// Form field names, matching the input ids of the templates.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCapacity    = "capacity"
	FieldDate        = "date"
	FieldUser        = "user"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldPassword2   = "password2"
)

// Form holds input values keyed by field name.
type Form map[string]string

// Controls says which role-dependent controls are visible.
type Controls struct {
	AdminActions   bool // edit/delete per row and the actions column
	AddEvent       bool
	Enroll         bool
	EnrollmentsNav bool
}

// ControlsFor returns the visibility for role. Administrators manage the
// catalog; everyone else enrolls.
func ControlsFor(role model.Role) Controls {
	if role == model.RoleAdmin {
		return Controls{AdminActions: true, AddEvent: true}
	}
	return Controls{Enroll: true, EnrollmentsNav: true}
}

// Screen is the data a view shows on top of its template.
type Screen struct {
	Events      []model.Event
	Enrollments []model.Enrollment
	Controls    Controls
	Form        Form

	// Editing is the event loaded into the edit form.
	Editing *model.Event
	// Users is the credential list fetched when the login form opens. It is
	// never rendered.
	Users []model.User
}

// ActionKind enumerates user gestures.
type ActionKind int

const (
	ActionSubmit ActionKind = iota
	ActionCancel
	ActionAddEvent
	ActionEditEvent
	ActionDeleteEvent
	ActionEnroll
	ActionRegister
)

var actionNames = [...]string{
	ActionSubmit:      "submit",
	ActionCancel:      "cancel",
	ActionAddEvent:    "add-event",
	ActionEditEvent:   "edit-event",
	ActionDeleteEvent: "delete-event",
	ActionEnroll:      "enroll",
	ActionRegister:    "register",
}

func (k ActionKind) String() string {
	if k < 0 || int(k) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[k]
}

// Action is one user gesture. ID carries the event id for row actions; Form
// carries the input values for submissions.
type Action struct {
	Kind ActionKind
	ID   string
	Form Form
}

// Input is what a controller sees when handling an action.
type Input struct {
	Session session.State
	Screen  Screen
	Action  Action
}

// Outcome is what a controller asks the navigator to apply, in order:
// persist Session, render Screen (nil leaves the page as is), show Notice,
// then navigate to Next ("" stays).
type Outcome struct {
	Session session.State
	Screen  *Screen
	Notice  *Notice
	Next    string
}

// Controller wires the behaviour of one view.
type Controller interface {
	// Activate runs after the view's template is mounted.
	Activate(ctx context.Context, st session.State) Outcome
	// Handle processes a user gesture on the mounted view.
	Handle(ctx context.Context, in Input) (Outcome, error)
}

// Profile is the header identifying the signed-in user.
type Profile struct {
	Name           string
	Label          string
	Avatar         string
	EnrollmentsNav bool
}

// Avatar images per role, served from the shell.
const (
	AdminAvatar   = "/img/admin.svg"
	VisitorAvatar = "/img/visitor.svg"
)

// ProfileFor derives the profile header from the session.
func ProfileFor(st session.State) Profile {
	p := Profile{
		Name:           st.UserName,
		Label:          st.Role.Label(),
		EnrollmentsNav: ControlsFor(st.Role).EnrollmentsNav,
	}
	switch st.Role {
	case model.RoleAdmin:
		p.Avatar = AdminAvatar
	case model.RoleVisitor:
		p.Avatar = VisitorAvatar
	}
	return p
}

// Page is the host surface the navigator drives.
type Page interface {
	// Mount replaces the content region with markup.
	Mount(markup string) error
	PushHistory(path string)
	// ReplaceHistory rewrites the current history entry.
	ReplaceHistory(path string)
	SetSidebarVisible(visible bool)
	RenderProfile(p Profile)
	// Render fills the mounted template with screen data.
	Render(s Screen)
}

// Notifier shows notices.
type Notifier interface {
	Notify(message, color string, d time.Duration)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

// TemplateSource fetches view markup by reference.
type TemplateSource interface {
	Fetch(ctx context.Context, ref string) (string, error)
}
