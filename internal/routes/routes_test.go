package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
)

func TestDefault_Resolve(t *testing.T) {
	r := Default()

	cases := map[string]struct {
		template string
		view     View
		sidebar  bool
	}{
		Root:        {"/app/views/dashboard.html", ViewDashboard, true},
		Enrollments: {"/app/views/enrollments.html", ViewEnrollments, true},
		Events:      {"/app/views/events.html", ViewEvents, true},
		CreateEvent: {"/app/views/add-event.html", ViewCreateEvent, true},
		EditEvent:   {"/app/views/edit-event.html", ViewEditEvent, true},
		Register:    {"/app/views/register.html", ViewRegister, false},
		Login:       {"/app/views/login.html", ViewLogin, false},
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			rt := r.Resolve(path)
			assert.Equal(t, path, rt.Path)
			assert.Equal(t, want.template, rt.Template)
			assert.Equal(t, want.view, rt.View)
			assert.Equal(t, want.sidebar, rt.Sidebar)
		})
	}
	assert.Len(t, r.Routes(), len(cases))
}

func TestResolve_UnknownFallsBackToRoot(t *testing.T) {
	r := Default()
	for _, p := range []string{"/nope", "", "/dashboard", "/dashboard/events/"} {
		assert.Equal(t, Root, r.Resolve(p).Path, p)
	}
}

func TestNewRegistry_Errors(t *testing.T) {
	_, err := NewRegistry([]Route{{Path: "/a"}, {Path: "/a"}}, "/a")
	require.Error(t, err)

	_, err = NewRegistry([]Route{{Path: "/a"}}, "/b")
	require.Error(t, err)
}

func TestGate(t *testing.T) {
	paths := []string{Root, Events, Enrollments, Login, Register, "/unknown"}
	for _, p := range paths {
		assert.Equal(t, Login, Gate(session.State{}, p), p)
		assert.Equal(t, Register, Gate(session.State{Registering: true}, p), p)

		authed := session.State{}.Login(model.RoleVisitor, "Bo")
		assert.Equal(t, p, Gate(authed, p), p)
		assert.Equal(t, p, Gate(authed.WithRegistering(true), p), p)
	}
}

func TestView(t *testing.T) {
	assert.Equal(t, "edit-event", ViewEditEvent.String())
	assert.Equal(t, "View(99)", View(99).String())
	assert.False(t, ViewDashboard.HasController())
	assert.True(t, ViewLogin.HasController())
}
