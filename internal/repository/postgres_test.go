package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresStore(mock), mock
}

var eventColumns = []string{"id", "name", "description", "capacity", "event_date", "img"}

func TestPgEvents_List(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description, capacity, event_date, img FROM events ORDER BY created_at, id`)).
		WillReturnRows(pgxmock.NewRows(eventColumns).
			AddRow("1", "Expo", "tech", 100, "2025-01-01T00:00:00.000Z", "http://a").
			AddRow("2", "Fair", "food", 50, "2025-02-01T00:00:00.000Z", "http://b"))

	events, err := store.Events.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "Fair", events[1].Name)
	require.Equal(t, 100, events[0].Capacity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgEvents_Get(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()
	q := regexp.QuoteMeta(`SELECT id, name, description, capacity, event_date, img FROM events WHERE id = $1`)

	mock.ExpectQuery(q).WithArgs("1").
		WillReturnRows(pgxmock.NewRows(eventColumns).AddRow("1", "Expo", "tech", 100, "d", "i"))
	e, err := store.Events.Get(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "Expo", e.Name)

	mock.ExpectQuery(q).WithArgs("9").WillReturnError(pgx.ErrNoRows)
	_, err = store.Events.Get(ctx, "9")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgUsers_Create_OK_and_UniqueViolation(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()
	u := model.User{ID: "1", Email: "a@x.com", Password: "p1", Role: model.RoleAdmin, Name: "Ana"}
	q := regexp.QuoteMeta(`INSERT INTO users (id, email, password, role, name) VALUES ($1, $2, $3, $4, $5)`)

	mock.ExpectExec(q).WithArgs("1", "a@x.com", "p1", "admin", "Ana").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	got, err := store.Users.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u, got)

	mock.ExpectExec(q).WithArgs("1", "a@x.com", "p1", "admin", "Ana").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	_, err = store.Users.Create(ctx, u)
	require.ErrorIs(t, err, ErrAlreadyExists)

	mock.ExpectExec(q).WithArgs("1", "a@x.com", "p1", "admin", "Ana").
		WillReturnError(errors.New("boom"))
	_, err = store.Users.Create(ctx, u)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgEvents_Update(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()
	q := regexp.QuoteMeta(`UPDATE events SET name = $2, description = $3, capacity = $4, event_date = $5, img = $6 WHERE id = $1`)
	e := model.Event{ID: "ignored", Name: "Expo", Description: "d", Capacity: 5, Date: "x", Img: "i"}

	mock.ExpectExec(q).WithArgs("3", "Expo", "d", 5, "x", "i").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	got, err := store.Events.Update(ctx, "3", e)
	require.NoError(t, err)
	require.Equal(t, "3", got.ID)

	mock.ExpectExec(q).WithArgs("4", "Expo", "d", 5, "x", "i").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	_, err = store.Events.Update(ctx, "4", e)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgEnrollments_Delete(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()
	q := regexp.QuoteMeta(`DELETE FROM enrollments WHERE id = $1`)

	mock.ExpectExec(q).WithArgs("1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, store.Enrollments.Delete(ctx, "1"))

	mock.ExpectExec(q).WithArgs("2").WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, store.Enrollments.Delete(ctx, "2"), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
