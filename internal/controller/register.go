package controller

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
	"github.com/Shivanand-hulikatti/eventdesk/internal/routes"
	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

// Register creates visitor accounts.
type Register struct {
	Users UserStore
	Log   *zap.Logger
}

func (c *Register) Activate(_ context.Context, st session.State) view.Outcome {
	return view.Outcome{Session: st, Screen: &view.Screen{}}
}

func (c *Register) Handle(ctx context.Context, in view.Input) (view.Outcome, error) {
	switch in.Action.Kind {
	case view.ActionSubmit:
		return c.submit(ctx, in), nil
	case view.ActionCancel:
		return goTo(in.Session.WithRegistering(false), routes.Login, nil), nil
	default:
		return view.Outcome{}, view.ErrUnknownAction
	}
}

func (c *Register) submit(ctx context.Context, in view.Input) view.Outcome {
	form := in.Action.Form
	if form[view.FieldPassword] != form[view.FieldPassword2] {
		return stay(in.Session, view.Failure("Password isn't the same"))
	}

	users, err := c.Users.List(ctx)
	if err != nil {
		c.Log.Warn("list users", zap.Error(err))
		return stay(in.Session, view.Failure("Error adding user"))
	}
	user := model.User{
		ID:       model.NextID(model.UserIDs(users)),
		Email:    strings.TrimSpace(form[view.FieldEmail]),
		Password: form[view.FieldPassword],
		Role:     model.RoleVisitor,
		Name:     model.Capitalize(strings.TrimSpace(form[view.FieldName])),
	}
	if _, err := c.Users.Create(ctx, user); err != nil {
		c.Log.Warn("create user", zap.Error(err))
		return stay(in.Session, view.Failure("Error adding user"))
	}
	return goTo(in.Session.WithRegistering(false), routes.Login,
		view.Success(`User"`+user.Name+`" added successfully!`))
}
