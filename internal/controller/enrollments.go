package controller

import (
	"context"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

// Enrollments lists the signed-in user's enrollments.
type Enrollments struct {
	Enrollments EnrollmentStore
	Log         *zap.Logger
}

func (c *Enrollments) Activate(ctx context.Context, st session.State) view.Outcome {
	all, err := c.Enrollments.List(ctx)
	if err != nil {
		c.Log.Warn("list enrollments", zap.Error(err))
		return view.Outcome{Session: st, Screen: &view.Screen{}, Notice: view.Failure("Error loading enrollments")}
	}
	return view.Outcome{Session: st, Screen: &view.Screen{Enrollments: OwnedBy(all, st.UserName)}}
}

func (c *Enrollments) Handle(context.Context, view.Input) (view.Outcome, error) {
	return view.Outcome{}, view.ErrUnknownAction
}

// OwnedBy keeps the enrollments whose user equals name exactly, in order.
func OwnedBy(all []model.Enrollment, name string) []model.Enrollment {
	out := make([]model.Enrollment, 0, len(all))
	for _, e := range all {
		if e.User == name {
			out = append(out, e)
		}
	}
	return out
}
