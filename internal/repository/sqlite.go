package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
)

// NewSQLiteStore wires the three resources onto a SQLite database.
func NewSQLiteStore(db *sql.DB) *Store {
	return &Store{
		Events:      &sqliteRepository[model.Event]{db: db, t: eventTable},
		Users:       &sqliteRepository[model.User]{db: db, t: userTable},
		Enrollments: &sqliteRepository[model.Enrollment]{db: db, t: enrollmentTable},
	}
}

// sqliteRepository implements Repository on SQLite.
type sqliteRepository[T any] struct {
	db *sql.DB
	t  table[T]
}

func (r *sqliteRepository[T]) List(ctx context.Context) ([]T, error) {
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", r.t.columnList(), r.t.name)
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.t.name, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := r.t.scan(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.t.name, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *sqliteRepository[T]) Get(ctx context.Context, id string) (T, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", r.t.columnList(), r.t.name)
	v, err := r.t.scan(r.db.QueryRowContext(ctx, q, id).Scan)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("get %s: %w", r.t.name, err)
	}
	return v, nil
}

func (r *sqliteRepository[T]) Create(ctx context.Context, v T) (T, error) {
	ph := strings.TrimSuffix(strings.Repeat("?, ", len(r.t.columns)), ", ")
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", r.t.name, r.t.columnList(), ph)
	if _, err := r.db.ExecContext(ctx, q, r.t.values(v)...); err != nil {
		var zero T
		if isSQLiteConstraint(err) {
			return zero, ErrAlreadyExists
		}
		return zero, fmt.Errorf("insert %s: %w", r.t.name, err)
	}
	return v, nil
}

func (r *sqliteRepository[T]) Update(ctx context.Context, id string, v T) (T, error) {
	v = r.t.withID(v, id)
	sets := make([]string, 0, len(r.t.columns)-1)
	for _, c := range r.t.columns[1:] {
		sets = append(sets, c+" = ?")
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", r.t.name, strings.Join(sets, ", "))

	// id moves from the front of the value list to the WHERE clause.
	values := r.t.values(v)
	args := append(values[1:], values[0])

	res, err := r.db.ExecContext(ctx, q, args...)
	var zero T
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", r.t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", r.t.name, err)
	}
	if n == 0 {
		return zero, ErrNotFound
	}
	return v, nil
}

func (r *sqliteRepository[T]) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", r.t.name), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.t.name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// isSQLiteConstraint reports whether err is a primary key or unique violation.
func isSQLiteConstraint(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}
