// Package service implements validation, id assignment and orchestration
// between the HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/eventdesk/internal/config"
	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
	"github.com/Shivanand-hulikatti/eventdesk/internal/repository"
)

// ErrInvalid marks request payloads that fail validation.
var ErrInvalid = errors.New("invalid")

// Collection is the business layer over one resource repository.
type Collection[T any] struct {
	name      string
	repo      repository.Repository[T]
	validate  *validator.Validate
	id        func(T) string
	withID    func(T, string) T
	normalize func(T) (T, error)
	ids       func([]T) []string
}

// List returns all records.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	return c.repo.List(ctx)
}

// Get returns a single record by id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	if err := checkID(id); err != nil {
		var zero T
		return zero, err
	}
	return c.repo.Get(ctx, id)
}

// Create validates v and stores it. An empty id is assigned max(ids)+1; a
// colliding id yields repository.ErrAlreadyExists.
func (c *Collection[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	v, err := c.prepare(v)
	if err != nil {
		return zero, err
	}
	if c.id(v) == "" {
		existing, err := c.repo.List(ctx)
		if err != nil {
			return zero, fmt.Errorf("assign %s id: %w", c.name, err)
		}
		v = c.withID(v, model.NextID(c.ids(existing)))
	} else if err := checkID(c.id(v)); err != nil {
		return zero, err
	}
	return c.repo.Create(ctx, v)
}

// Update replaces the record with the given id.
func (c *Collection[T]) Update(ctx context.Context, id string, v T) (T, error) {
	var zero T
	if err := checkID(id); err != nil {
		return zero, err
	}
	v, err := c.prepare(v)
	if err != nil {
		return zero, err
	}
	return c.repo.Update(ctx, id, c.withID(v, id))
}

// Delete removes the record with the given id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return c.repo.Delete(ctx, id)
}

func (c *Collection[T]) prepare(v T) (T, error) {
	var zero T
	if c.normalize != nil {
		var err error
		if v, err = c.normalize(v); err != nil {
			return zero, fmt.Errorf("%w: %s", ErrInvalid, err.Error())
		}
	}
	if err := c.validate.Struct(v); err != nil {
		return zero, fmt.Errorf("%w: %s", ErrInvalid, describe(err))
	}
	return v, nil
}

// Catalog exposes the three resource collections.
type Catalog struct {
	Events      *Collection[model.Event]
	Users       *Collection[model.User]
	Enrollments *Collection[model.Enrollment]

	log *zap.Logger
}

// NewCatalog constructs a Catalog over the store.
func NewCatalog(store *repository.Store, log *zap.Logger) *Catalog {
	v := validator.New(validator.WithRequiredStructEnabled())
	return &Catalog{
		Events: &Collection[model.Event]{
			name:      "event",
			repo:      store.Events,
			validate:  v,
			id:        func(e model.Event) string { return e.ID },
			withID:    func(e model.Event, id string) model.Event { e.ID = id; return e },
			normalize: normalizeEvent,
			ids:       model.EventIDs,
		},
		Users: &Collection[model.User]{
			name:      "user",
			repo:      store.Users,
			validate:  v,
			id:        func(u model.User) string { return u.ID },
			withID:    func(u model.User, id string) model.User { u.ID = id; return u },
			normalize: normalizeUser,
			ids:       model.UserIDs,
		},
		Enrollments: &Collection[model.Enrollment]{
			name:     "enrollment",
			repo:     store.Enrollments,
			validate: v,
			id:       func(e model.Enrollment) string { return e.ID },
			withID:   func(e model.Enrollment, id string) model.Enrollment { e.ID = id; return e },
			ids:      model.EnrollmentIDs,
		},
		log: log,
	}
}

// SeedAdmin creates the configured administrator when no user exists yet.
// Without a configured password it does nothing.
func (c *Catalog) SeedAdmin(ctx context.Context, seed config.Seed) error {
	if seed.AdminPassword == "" {
		return nil
	}
	users, err := c.Users.List(ctx)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if len(users) > 0 {
		return nil
	}
	admin, err := c.Users.Create(ctx, model.User{
		Email:    seed.AdminEmail,
		Password: seed.AdminPassword,
		Role:     model.RoleAdmin,
		Name:     seed.AdminName,
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	c.log.Info("seeded administrator", zap.String("id", admin.ID), zap.String("email", admin.Email))
	return nil
}

func normalizeEvent(e model.Event) (model.Event, error) {
	e.Name = strings.TrimSpace(e.Name)
	e.Description = strings.TrimSpace(e.Description)
	if e.Date != "" {
		d, err := model.ToStorageFormat(e.Date)
		if err != nil {
			return e, err
		}
		e.Date = d
	}
	return e, nil
}

func normalizeUser(u model.User) (model.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	if u.Role == model.RoleNone {
		u.Role = model.RoleVisitor
	}
	return u, nil
}

// checkID enforces that resource ids hold decimal integers.
func checkID(id string) error {
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return fmt.Errorf("%w: id %q is not a decimal integer", ErrInvalid, id)
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
