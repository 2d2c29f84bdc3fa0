package controller

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
	"github.com/Shivanand-hulikatti/eventdesk/internal/routes"
	"github.com/Shivanand-hulikatti/eventdesk/internal/session"
	"github.com/Shivanand-hulikatti/eventdesk/internal/view"
)

// readEventForm extracts the editable event fields from a submitted form. A
// non-nil notice reports invalid input.
func readEventForm(form view.Form) (model.Event, *view.Notice) {
	capacity, err := strconv.Atoi(strings.TrimSpace(form[view.FieldCapacity]))
	if err != nil {
		return model.Event{}, view.Failure("Capacity must be a whole number")
	}
	date, err := model.ToStorageFormat(form[view.FieldDate])
	if err != nil {
		return model.Event{}, view.Failure("Date is not valid")
	}
	return model.Event{
		Name:        strings.TrimSpace(form[view.FieldName]),
		Description: strings.TrimSpace(form[view.FieldDescription]),
		Capacity:    capacity,
		Date:        date,
	}, nil
}

// CreateEvent adds events to the catalog.
type CreateEvent struct {
	Events EventStore
	Log    *zap.Logger
}

func (c *CreateEvent) Activate(_ context.Context, st session.State) view.Outcome {
	if !allowed(st.Role, view.ActionAddEvent) {
		return forbidden(st)
	}
	return view.Outcome{Session: st, Screen: &view.Screen{Form: view.Form{}}}
}

func (c *CreateEvent) Handle(ctx context.Context, in view.Input) (view.Outcome, error) {
	switch in.Action.Kind {
	case view.ActionSubmit:
		if !allowed(in.Session.Role, view.ActionAddEvent) {
			return view.Outcome{}, view.ErrUnknownAction
		}
		return c.submit(ctx, in), nil
	case view.ActionCancel:
		return goTo(in.Session, routes.Events, nil), nil
	default:
		return view.Outcome{}, view.ErrUnknownAction
	}
}

func (c *CreateEvent) submit(ctx context.Context, in view.Input) view.Outcome {
	event, invalid := readEventForm(in.Action.Form)
	if invalid != nil {
		return stay(in.Session, invalid)
	}
	event.Name = model.Capitalize(event.Name)
	event.Img = model.DefaultEventImage

	if err := c.create(ctx, &event); err != nil {
		c.Log.Warn("create event", zap.Error(err))
		return goTo(in.Session, routes.Events, view.Failure("Error adding event"))
	}
	return goTo(in.Session, routes.Events, view.Success(`Event"`+event.Name+`" added successfully!`))
}

func (c *CreateEvent) create(ctx context.Context, event *model.Event) error {
	events, err := c.Events.List(ctx)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	event.ID = model.NextID(model.EventIDs(events))
	if _, err := c.Events.Create(ctx, *event); err != nil {
		return fmt.Errorf("post event: %w", err)
	}
	return nil
}

// EditEvent edits the event selected on the events list.
type EditEvent struct {
	Events EventStore
	Log    *zap.Logger
}

// Activate loads the pending event into the form. The pending selection is
// consumed whatever the outcome.
func (c *EditEvent) Activate(ctx context.Context, st session.State) view.Outcome {
	id := st.PendingEditID
	st = st.WithPendingEdit("")
	if !allowed(st.Role, view.ActionEditEvent) {
		return forbidden(st)
	}
	if id == "" {
		return goTo(st, routes.Events, view.Failure("No event selected to edit"))
	}

	events, err := c.Events.List(ctx)
	if err != nil {
		c.Log.Warn("list events", zap.Error(err))
		return goTo(st, routes.Events, view.Failure("Error loading event data"))
	}
	event, ok := findEvent(events, id)
	if !ok {
		return goTo(st, routes.Events, view.Failure("Error loading event data"))
	}
	date, err := model.ToInputFormat(event.Date)
	if err != nil {
		date = ""
	}
	return view.Outcome{
		Session: st,
		Screen: &view.Screen{
			Editing: &event,
			Form: view.Form{
				view.FieldName:        event.Name,
				view.FieldDescription: event.Description,
				view.FieldCapacity:    strconv.Itoa(event.Capacity),
				view.FieldDate:        date,
			},
		},
	}
}

func (c *EditEvent) Handle(ctx context.Context, in view.Input) (view.Outcome, error) {
	switch in.Action.Kind {
	case view.ActionSubmit:
		if !allowed(in.Session.Role, view.ActionEditEvent) {
			return view.Outcome{}, view.ErrUnknownAction
		}
		return c.submit(ctx, in), nil
	case view.ActionCancel:
		return goTo(in.Session, routes.Events, nil), nil
	default:
		return view.Outcome{}, view.ErrUnknownAction
	}
}

func (c *EditEvent) submit(ctx context.Context, in view.Input) view.Outcome {
	original := in.Screen.Editing
	if original == nil {
		return goTo(in.Session, routes.Events, view.Failure("No event selected to edit"))
	}
	updated, invalid := readEventForm(in.Action.Form)
	if invalid != nil {
		return stay(in.Session, invalid)
	}
	updated.ID = original.ID
	updated.Img = original.Img

	if _, err := c.Events.Update(ctx, original.ID, updated); err != nil {
		c.Log.Warn("update event", zap.String("id", original.ID), zap.Error(err))
		return stay(in.Session, view.Failure("Error updating event"))
	}
	return goTo(in.Session, routes.Events, view.Success("Event updated successfully!"))
}
