// Package repository implements persistence for the catalog resources: events,
// user credential records and enrollments. PostgreSQL (pgx) and SQLite
// (database/sql + modernc) backends share one table description per resource.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when a create collides with an existing id.
var ErrAlreadyExists = errors.New("already exists")

// Repository provides CRUD access to one resource collection.
type Repository[T any] interface {
	// List returns every record in insertion order.
	List(ctx context.Context) ([]T, error)
	// Get returns one record or ErrNotFound.
	Get(ctx context.Context, id string) (T, error)
	// Create inserts v; ErrAlreadyExists on id collision.
	Create(ctx context.Context, v T) (T, error)
	// Update replaces every column of the record with the given id.
	Update(ctx context.Context, id string, v T) (T, error)
	// Delete removes the record; ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// Store bundles the three resource repositories of one backend.
type Store struct {
	Events      Repository[model.Event]
	Users       Repository[model.User]
	Enrollments Repository[model.Enrollment]
}

// table describes how a resource maps onto its SQL table. The first column is
// always the id.
type table[T any] struct {
	name    string
	columns []string
	values  func(T) []any
	scan    func(scan func(dest ...any) error) (T, error)
	withID  func(T, string) T
}

func (t table[T]) columnList() string { return strings.Join(t.columns, ", ") }

var eventTable = table[model.Event]{
	name:    "events",
	columns: []string{"id", "name", "description", "capacity", "event_date", "img"},
	values: func(e model.Event) []any {
		return []any{e.ID, e.Name, e.Description, e.Capacity, e.Date, e.Img}
	},
	scan: func(scan func(dest ...any) error) (model.Event, error) {
		var e model.Event
		err := scan(&e.ID, &e.Name, &e.Description, &e.Capacity, &e.Date, &e.Img)
		return e, err
	},
	withID: func(e model.Event, id string) model.Event { e.ID = id; return e },
}

var userTable = table[model.User]{
	name:    "users",
	columns: []string{"id", "email", "password", "role", "name"},
	values: func(u model.User) []any {
		return []any{u.ID, u.Email, u.Password, string(u.Role), u.Name}
	},
	scan: func(scan func(dest ...any) error) (model.User, error) {
		var u model.User
		var role string
		err := scan(&u.ID, &u.Email, &u.Password, &role, &u.Name)
		u.Role = model.Role(role)
		return u, err
	},
	withID: func(u model.User, id string) model.User { u.ID = id; return u },
}

var enrollmentTable = table[model.Enrollment]{
	name:    "enrollments",
	columns: []string{"id", "name", "description", "capacity", "event_date", "img", "user_name"},
	values: func(e model.Enrollment) []any {
		return []any{e.ID, e.Name, e.Description, e.Capacity, e.Date, e.Img, e.User}
	},
	scan: func(scan func(dest ...any) error) (model.Enrollment, error) {
		var e model.Enrollment
		err := scan(&e.ID, &e.Name, &e.Description, &e.Capacity, &e.Date, &e.Img, &e.User)
		return e, err
	},
	withID: func(e model.Enrollment, id string) model.Enrollment { e.ID = id; return e },
}
