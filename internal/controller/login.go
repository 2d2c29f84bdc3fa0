package controller

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/routes"
	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

// Login checks submitted credentials against the user list fetched when the
// form opens.
type Login struct {
	Users UserStore
	Log   *zap.Logger
}

func (c *Login) Activate(ctx context.Context, st session.State) view.Outcome {
	users, err := c.Users.List(ctx)
	if err != nil {
		c.Log.Warn("load credentials", zap.Error(err))
		return view.Outcome{Session: st, Screen: &view.Screen{}, Notice: view.Failure("Error loading users")}
	}
	return view.Outcome{Session: st, Screen: &view.Screen{Users: users}}
}

func (c *Login) Handle(_ context.Context, in view.Input) (view.Outcome, error) {
	switch in.Action.Kind {
	case view.ActionSubmit:
		email := strings.TrimSpace(in.Action.Form[view.FieldUser])
		password := strings.TrimSpace(in.Action.Form[view.FieldPassword])
		for _, u := range in.Screen.Users {
			if u.Email == email && u.Password == password {
				return goTo(in.Session.Login(u.Role, u.Name), routes.Root, nil), nil
			}
		}
		return stay(in.Session, view.Failure("Incorrect username or password")), nil
	case view.ActionRegister:
		return goTo(in.Session.WithRegistering(true), routes.Register, nil), nil
	default:
		return view.Outcome{}, view.ErrUnknownAction
	}
}
