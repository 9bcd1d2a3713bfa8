package postgres

import (
	"context"
	"errors"

	"meal-planner-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// listRepo implements the composite list operations: the atomic
// create-with-items transaction and the single-association ops keyed by
// (list_id, item_id).
type listRepo struct {
	db database
}

func NewListAssociationRepository(db database) domain.ListRepository {
	return &listRepo{db: db}
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// database is the subset of the pool the list repository touches; tests
// substitute a transaction double.
type database interface {
	querier
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

func (r *listRepo) CreateWithItems(ctx context.Context, list *domain.List, newItems []*domain.Item, refs []domain.ItemRef) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	listQuery := `INSERT INTO lists (id, user_id, created_at, updated_at, name)
	              VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(ctx, listQuery,
		list.ID, list.UserID, list.CreatedAt, list.UpdatedAt, list.Name,
	); err != nil {
		return translateError(err)
	}

	itemQuery := `INSERT INTO items (id, user_id, created_at, updated_at, name, unit, category_id)
	              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, item := range newItems {
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, item.UserID, item.CreatedAt, item.UpdatedAt,
			item.Name, item.Unit, item.CategoryID,
		); err != nil {
			return translateError(err)
		}
	}

	// Referenced items are inserted through an ownership-guarded SELECT:
	// a missing or foreign-owned item simply inserts zero rows.
	refQuery := `INSERT INTO list_items (list_id, item_id, checked, quantity, created_at, updated_at)
	             SELECT $1, i.id, false, $3, $4, $4
	             FROM items i WHERE i.id = $2 AND i.user_id = $5`
	now := list.CreatedAt
	for _, ref := range refs {
		tag, err := tx.Exec(ctx, refQuery, list.ID, ref.ItemID, ref.Quantity, now, list.UserID)
		if err != nil {
			return translateEntryError(err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
	}

	entryQuery := `INSERT INTO list_items (list_id, item_id, checked, quantity, created_at, updated_at)
	               VALUES ($1, $2, false, 1, $3, $3)`
	for _, item := range newItems {
		if _, err := tx.Exec(ctx, entryQuery, list.ID, item.ID, now); err != nil {
			return translateEntryError(err)
		}
	}

	entries, err := fetchEntries(ctx, tx, list.UserID, list.ID)
	if err != nil {
		return err
	}
	list.Entries = entries

	return tx.Commit(ctx)
}

func (r *listRepo) Entries(ctx context.Context, userID, listID uuid.UUID) ([]domain.ListItem, error) {
	if err := r.checkListOwned(ctx, userID, listID); err != nil {
		return nil, err
	}
	return fetchEntries(ctx, r.db, userID, listID)
}

func (r *listRepo) AddEntry(ctx context.Context, userID uuid.UUID, entry *domain.ListItem) error {
	query := `INSERT INTO list_items (list_id, item_id, checked, quantity, created_at, updated_at)
	          SELECT $1, i.id, $3, $4, $5, $6
	          FROM items i
	          WHERE i.id = $2 AND i.user_id = $7
	            AND EXISTS (SELECT 1 FROM lists l WHERE l.id = $1 AND l.user_id = $7)`
	tag, err := r.db.Exec(ctx, query,
		entry.ListID, entry.ItemID, entry.Checked, entry.Quantity,
		entry.CreatedAt, entry.UpdatedAt, userID,
	)
	if err != nil {
		return translateEntryError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *listRepo) UpdateEntry(ctx context.Context, userID uuid.UUID, entry *domain.ListItem) error {
	query := `UPDATE list_items li
	          SET checked = $3, quantity = $4, updated_at = $5
	          FROM lists l
	          WHERE li.list_id = l.id AND l.user_id = $6
	            AND li.list_id = $1 AND li.item_id = $2`
	tag, err := r.db.Exec(ctx, query,
		entry.ListID, entry.ItemID, entry.Checked, entry.Quantity, entry.UpdatedAt, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *listRepo) GetEntry(ctx context.Context, userID, listID, itemID uuid.UUID) (*domain.ListItem, error) {
	query := entrySelect + `
	          WHERE li.list_id = $2 AND li.item_id = $3`
	rows, err := r.db.Query(ctx, query, userID, listID, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if rows.Err() != nil {
			return nil, rows.Err()
		}
		return nil, domain.ErrNotFound
	}
	entry, err := scanEntry(rows)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *listRepo) DeleteEntry(ctx context.Context, userID, listID, itemID uuid.UUID) error {
	query := `DELETE FROM list_items li
	          USING lists l
	          WHERE li.list_id = l.id AND l.user_id = $1
	            AND li.list_id = $2 AND li.item_id = $3`
	tag, err := r.db.Exec(ctx, query, userID, listID, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *listRepo) checkListOwned(ctx context.Context, userID, listID uuid.UUID) error {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM lists WHERE id = $1 AND user_id = $2)`,
		listID, userID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

const entrySelect = `SELECT li.list_id, li.item_id, li.checked, li.quantity, li.created_at, li.updated_at,
	                 i.id, i.user_id, i.created_at, i.updated_at, i.name, i.unit, i.category_id
	          FROM list_items li
	          JOIN lists l ON l.id = li.list_id AND l.user_id = $1
	          JOIN items i ON i.id = li.item_id`

func fetchEntries(ctx context.Context, q querier, userID, listID uuid.UUID) ([]domain.ListItem, error) {
	query := entrySelect + `
	          WHERE li.list_id = $2
	          ORDER BY li.created_at`
	rows, err := q.Query(ctx, query, userID, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ListItem
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func scanEntry(rows pgx.Rows) (*domain.ListItem, error) {
	var entry domain.ListItem
	var item domain.Item
	err := rows.Scan(
		&entry.ListID, &entry.ItemID, &entry.Checked, &entry.Quantity,
		&entry.CreatedAt, &entry.UpdatedAt,
		&item.ID, &item.UserID, &item.CreatedAt, &item.UpdatedAt,
		&item.Name, &item.Unit, &item.CategoryID,
	)
	if err != nil {
		return nil, err
	}
	entry.Item = &item
	return &entry, nil
}

// translateEntryError distinguishes the association conflict (duplicate
// item on a list) from ordinary name conflicts so callers can tell them
// apart.
func translateEntryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrDuplicateListItem
		case "23503":
			return domain.ErrNotFound
		}
	}
	return err
}
