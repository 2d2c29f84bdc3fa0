package controller

import (
	"context"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
)

type fakeEvents struct {
	items     []model.Event
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	created []model.Event
	updated map[string]model.Event
	deleted []string
}

func (f *fakeEvents) List(context.Context) ([]model.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Event(nil), f.items...), nil
}

func (f *fakeEvents) Create(_ context.Context, e model.Event) (model.Event, error) {
	if f.createErr != nil {
		return model.Event{}, f.createErr
	}
	f.created = append(f.created, e)
	f.items = append(f.items, e)
	return e, nil
}

func (f *fakeEvents) Update(_ context.Context, id string, e model.Event) (model.Event, error) {
	if f.updateErr != nil {
		return model.Event{}, f.updateErr
	}
	if f.updated == nil {
		f.updated = map[string]model.Event{}
	}
	f.updated[id] = e
	return e, nil
}

func (f *fakeEvents) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUsers struct {
	items     []model.User
	listErr   error
	createErr error
	created   []model.User
}

func (f *fakeUsers) List(context.Context) ([]model.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.User(nil), f.items...), nil
}

func (f *fakeUsers) Create(_ context.Context, u model.User) (model.User, error) {
	if f.createErr != nil {
		return model.User{}, f.createErr
	}
	f.created = append(f.created, u)
	return u, nil
}

type fakeEnrollments struct {
	items     []model.Enrollment
	listErr   error
	createErr error
	created   []model.Enrollment
}

func (f *fakeEnrollments) List(context.Context) ([]model.Enrollment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Enrollment(nil), f.items...), nil
}

func (f *fakeEnrollments) Create(_ context.Context, e model.Enrollment) (model.Enrollment, error) {
	if f.createErr != nil {
		return model.Enrollment{}, f.createErr
	}
	f.created = append(f.created, e)
	return e, nil
}

type fakeConfirm struct {
	answer bool
	asked  []string
}

func (f *fakeConfirm) Confirm(msg string) bool {
	f.asked = append(f.asked, msg)
	return f.answer
}
