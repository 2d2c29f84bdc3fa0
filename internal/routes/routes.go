// Package routes holds the fixed table that maps application paths to view
// templates, and the gate that redirects sessions which may not see a path.
package routes

import (
	"fmt"

	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
)

// Application paths.
const (
	Root        = "/"
	Login       = "/login"
	Register    = "/register"
	Events      = "/dashboard/events"
	CreateEvent = "/dashboard/events/create"
	EditEvent   = "/dashboard/events/edit"
	Enrollments = "/dashboard/enrollments"
)

// TemplatePrefix is where the data store serves view templates.
const TemplatePrefix = "/app/views/"

// View tags a route with the screen it shows.
type View int

const (
	ViewDashboard View = iota
	ViewLogin
	ViewRegister
	ViewEvents
	ViewCreateEvent
	ViewEditEvent
	ViewEnrollments
)

var viewNames = [...]string{
	ViewDashboard:   "dashboard",
	ViewLogin:       "login",
	ViewRegister:    "register",
	ViewEvents:      "events",
	ViewCreateEvent: "create-event",
	ViewEditEvent:   "edit-event",
	ViewEnrollments: "enrollments",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// HasController reports whether navigating to the view activates a
// controller. The dashboard is static markup.
func (v View) HasController() bool {
	return v != ViewDashboard
}

// Route is one immutable registry entry.
type Route struct {
	Path     string
	Template string
	View     View
	// Sidebar reports whether the navigation sidebar is shown on this route.
	Sidebar bool
}

// Registry resolves paths to routes. It is fixed once built.
type Registry struct {
	byPath   map[string]Route
	ordered  []Route
	fallback Route
}

// NewRegistry builds a registry. fallback must be one of the route paths.
func NewRegistry(table []Route, fallback string) (*Registry, error) {
	r := &Registry{byPath: make(map[string]Route, len(table))}
	for _, rt := range table {
		if _, dup := r.byPath[rt.Path]; dup {
			return nil, fmt.Errorf("duplicate route %q", rt.Path)
		}
		r.byPath[rt.Path] = rt
		r.ordered = append(r.ordered, rt)
	}
	fb, ok := r.byPath[fallback]
	if !ok {
		return nil, fmt.Errorf("fallback route %q is not registered", fallback)
	}
	r.fallback = fb
	return r, nil
}

// Default returns the application's route table.
func Default() *Registry {
	r, err := NewRegistry([]Route{
		{Path: Root, Template: TemplatePrefix + "dashboard.html", View: ViewDashboard, Sidebar: true},
		{Path: Enrollments, Template: TemplatePrefix + "enrollments.html", View: ViewEnrollments, Sidebar: true},
		{Path: Events, Template: TemplatePrefix + "events.html", View: ViewEvents, Sidebar: true},
		{Path: CreateEvent, Template: TemplatePrefix + "add-event.html", View: ViewCreateEvent, Sidebar: true},
		{Path: EditEvent, Template: TemplatePrefix + "edit-event.html", View: ViewEditEvent, Sidebar: true},
		{Path: Register, Template: TemplatePrefix + "register.html", View: ViewRegister},
		{Path: Login, Template: TemplatePrefix + "login.html", View: ViewLogin},
	}, Root)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the route for path, or the fallback route when path is
// not registered.
func (r *Registry) Resolve(path string) Route {
	if rt, ok := r.byPath[path]; ok {
		return rt
	}
	return r.fallback
}

// Routes returns the table in registration order.
func (r *Registry) Routes() []Route {
	return append([]Route(nil), r.ordered...)
}

// Gate returns the path a session is allowed to see instead of requested.
// Unauthenticated sessions are sent to the registration form while
// registering and to the login form otherwise. Authenticated sessions pass.
func Gate(st session.State, requested string) string {
	switch {
	case st.Authenticated:
		return requested
	case st.Registering:
		return Register
	default:
		return Login
	}
}
