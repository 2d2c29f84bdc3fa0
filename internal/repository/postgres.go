package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Shivanand-hulikatti/eventdesk/internal/model"
)

// PgxPool is the subset of *pgxpool.Pool the PostgreSQL repositories use.
// It is implemented by *pgxpool.Pool and pgxmock.PgxPoolIface.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPostgresStore wires the three resources onto a pgx pool.
func NewPostgresStore(db PgxPool) *Store {
	return &Store{
		Events:      &pgRepository[model.Event]{db: db, t: eventTable},
		Users:       &pgRepository[model.User]{db: db, t: userTable},
		Enrollments: &pgRepository[model.Enrollment]{db: db, t: enrollmentTable},
	}
}

// pgRepository implements Repository on PostgreSQL using pgx directly.
type pgRepository[T any] struct {
	db PgxPool
	t  table[T]
}

func (r *pgRepository[T]) List(ctx context.Context) ([]T, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at, id`, r.t.columnList(), r.t.name)
	rows, err := r.db.Query(ctx, q)
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

func (r *pgRepository[T]) Get(ctx context.Context, id string) (T, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, r.t.columnList(), r.t.name)
	v, err := r.t.scan(r.db.QueryRow(ctx, q, id).Scan)
	if err != nil {
		var zero T
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("get %s: %w", r.t.name, err)
	}
	return v, nil
}

func (r *pgRepository[T]) Create(ctx context.Context, v T) (T, error) {
	q := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		r.t.name, r.t.columnList(), pgPlaceholders(len(r.t.columns)))
	if _, err := r.db.Exec(ctx, q, r.t.values(v)...); err != nil {
		var zero T
		if isUniqueViolation(err) {
			return zero, ErrAlreadyExists
		}
		return zero, fmt.Errorf("insert %s: %w", r.t.name, err)
	}
	return v, nil
}

func (r *pgRepository[T]) Update(ctx context.Context, id string, v T) (T, error) {
	v = r.t.withID(v, id)
	sets := make([]string, 0, len(r.t.columns)-1)
	for i, c := range r.t.columns[1:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+2))
	}
	q := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1`, r.t.name, strings.Join(sets, ", "))
	tag, err := r.db.Exec(ctx, q, r.t.values(v)...)
	var zero T
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", r.t.name, err)
	}
	if tag.RowsAffected() == 0 {
		return zero, ErrNotFound
	}
	return v, nil
}

func (r *pgRepository[T]) Delete(ctx context.Context, id string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.t.name)
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.t.name, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func pgPlaceholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(ph, ", ")
}

// isUniqueViolation reports whether the error is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pg *pgconn.PgError
	return errors.As(err, &pg) && pg.Code == "23505"
}
