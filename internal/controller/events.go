package controller

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
	"github.com/Shivanand-hulikatti/eventdesk/internal/routes"
	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

// DeleteConfirmation is the question asked before deleting an event.
const DeleteConfirmation = "Are you sure you want to delete this event?"

var errEventMissing = errors.New("event not found")

// Events lists the catalog and handles the row actions.
type Events struct {
	Events      EventStore
	Enrollments EnrollmentStore
	Confirm     view.Confirmer
	Log         *zap.Logger
}

func (c *Events) Activate(ctx context.Context, st session.State) view.Outcome {
	screen := &view.Screen{Controls: view.ControlsFor(st.Role)}
	events, err := c.Events.List(ctx)
	if err != nil {
		c.Log.Warn("list events", zap.Error(err))
		return view.Outcome{Session: st, Screen: screen, Notice: view.Failure("Error loading events")}
	}
	screen.Events = events
	return view.Outcome{Session: st, Screen: screen}
}

func (c *Events) Handle(ctx context.Context, in view.Input) (view.Outcome, error) {
	if !allowed(in.Session.Role, in.Action.Kind) {
		return view.Outcome{}, view.ErrUnknownAction
	}
	switch in.Action.Kind {
	case view.ActionAddEvent:
		return goTo(in.Session, routes.CreateEvent, nil), nil
	case view.ActionEditEvent:
		return goTo(in.Session.WithPendingEdit(in.Action.ID), routes.EditEvent, nil), nil
	case view.ActionDeleteEvent:
		return c.delete(ctx, in), nil
	case view.ActionEnroll:
		return c.enroll(ctx, in), nil
	default:
		return view.Outcome{}, view.ErrUnknownAction
	}
}

func (c *Events) delete(ctx context.Context, in view.Input) view.Outcome {
	if !c.Confirm.Confirm(DeleteConfirmation) {
		return stay(in.Session, nil)
	}
	if err := c.Events.Delete(ctx, in.Action.ID); err != nil {
		c.Log.Warn("delete event", zap.String("id", in.Action.ID), zap.Error(err))
		return stay(in.Session, view.Failure("Error deleting event"))
	}
	return goTo(in.Session, routes.Events, nil)
}

// enroll copies the first event with the action's id into an enrollment for
// the signed-in user.
func (c *Events) enroll(ctx context.Context, in view.Input) view.Outcome {
	if err := c.submitEnrollment(ctx, in.Action.ID, in.Session.UserName); err != nil {
		c.Log.Warn("enroll", zap.String("event_id", in.Action.ID), zap.Error(err))
		return stay(in.Session, view.Failure("Error loading event data"))
	}
	return stay(in.Session, view.Success("Event enrolled successfully!"))
}

func (c *Events) submitEnrollment(ctx context.Context, eventID, user string) error {
	events, err := c.Events.List(ctx)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	event, ok := findEvent(events, eventID)
	if !ok {
		return fmt.Errorf("%w: %s", errEventMissing, eventID)
	}
	existing, err := c.Enrollments.List(ctx)
	if err != nil {
		return fmt.Errorf("list enrollments: %w", err)
	}
	id := model.NextID(model.EnrollmentIDs(existing))
	if _, err := c.Enrollments.Create(ctx, model.NewEnrollment(id, event, user)); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

func findEvent(events []model.Event, id string) (model.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return model.Event{}, false
}
