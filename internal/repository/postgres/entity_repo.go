package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"meal-planner-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// metaColumns are shared by every user-owned table and always come first
// in the generated statements.
var metaColumns = []string{"id", "user_id", "created_at", "updated_at"}

// ResourceDescriptor tells the generic repository how to persist one
// resource kind: its table, its data columns beyond the shared meta
// columns, how to pull their values off an entity, and an optional hook
// for eager-loading relations on single-row reads.
type ResourceDescriptor[T any] struct {
	Table   string
	Columns []string
	Values  func(*T) []any

	LoadRelations func(ctx context.Context, db *pgxpool.Pool, entity *T) error
}

type ownedPtr[T any] interface {
	*T
	domain.Owned
}

// EntityRepo is the ownership-scoped store shared by categories, items and
// lists. Every statement filters by user_id, so a row owned by another
// user behaves exactly like a missing row.
type EntityRepo[T any, PT ownedPtr[T]] struct {
	db   *pgxpool.Pool
	desc ResourceDescriptor[T]

	selectSQL string
	insertSQL string
	updateSQL string
}

func NewEntityRepo[T any, PT ownedPtr[T]](db *pgxpool.Pool, desc ResourceDescriptor[T]) *EntityRepo[T, PT] {
	all := append(append([]string{}, metaColumns...), desc.Columns...)

	placeholders := make([]string, len(all))
	for i := range all {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	assignments := make([]string, 0, len(desc.Columns)+1)
	assignments = append(assignments, "updated_at = $3")
	for i, col := range desc.Columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+4))
	}

	return &EntityRepo[T, PT]{
		db:   db,
		desc: desc,
		selectSQL: fmt.Sprintf(`SELECT %s FROM %s`,
			strings.Join(all, ", "), desc.Table),
		insertSQL: fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
			desc.Table, strings.Join(all, ", "), strings.Join(placeholders, ", ")),
		updateSQL: fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1 AND user_id = $2`,
			desc.Table, strings.Join(assignments, ", ")),
	}
}

func (r *EntityRepo[T, PT]) Fetch(ctx context.Context, userID uuid.UUID) ([]T, error) {
	query := r.selectSQL + ` WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
}

func (r *EntityRepo[T, PT]) GetByID(ctx context.Context, userID, id uuid.UUID) (*T, error) {
	query := r.selectSQL + ` WHERE user_id = $1 AND id = $2`
	rows, err := r.db.Query(ctx, query, userID, id)
	if err != nil {
		return nil, err
	}
	entity, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if r.desc.LoadRelations != nil {
		if err := r.desc.LoadRelations(ctx, r.db, entity); err != nil {
			return nil, err
		}
	}
	return entity, nil
}

func (r *EntityRepo[T, PT]) Create(ctx context.Context, entity *T) error {
	meta := PT(entity).Meta()
	args := append(
		[]any{meta.ID, meta.UserID, meta.CreatedAt, meta.UpdatedAt},
		r.desc.Values(entity)...,
	)
	if _, err := r.db.Exec(ctx, r.insertSQL, args...); err != nil {
		return translateError(err)
	}
	return nil
}

func (r *EntityRepo[T, PT]) Update(ctx context.Context, entity *T) error {
	meta := PT(entity).Meta()
	args := append(
		[]any{meta.ID, meta.UserID, meta.UpdatedAt},
		r.desc.Values(entity)...,
	)
	tag, err := r.db.Exec(ctx, r.updateSQL, args...)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EntityRepo[T, PT]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.desc.Table)
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// translateError maps constraint violations onto domain errors so the
// usecase layer never sees SQLSTATE codes. Unique and foreign-key
// violations both surface as conflicts.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503":
			return domain.ErrConflict
		}
	}
	return err
}
