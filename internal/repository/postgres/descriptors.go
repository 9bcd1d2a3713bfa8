package postgres

import (
	"context"
	"errors"

	"meal-planner-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewCategoryRepository returns the ownership-scoped store for categories.
func NewCategoryRepository(db *pgxpool.Pool) domain.EntityRepository[domain.Category] {
	return NewEntityRepo[domain.Category, *domain.Category](db, ResourceDescriptor[domain.Category]{
		Table:   "categories",
		Columns: []string{"name"},
		Values: func(c *domain.Category) []any {
			return []any{c.Name}
		},
	})
}

// NewItemRepository returns the ownership-scoped store for items. Single
// reads eagerly load the item's category.
func NewItemRepository(db *pgxpool.Pool) domain.EntityRepository[domain.Item] {
	return NewEntityRepo[domain.Item, *domain.Item](db, ResourceDescriptor[domain.Item]{
		Table:   "items",
		Columns: []string{"name", "unit", "category_id"},
		Values: func(i *domain.Item) []any {
			return []any{i.Name, i.Unit, i.CategoryID}
		},
		LoadRelations: loadItemCategory,
	})
}

// NewListRepository returns the ownership-scoped store for lists. Single
// reads eagerly load the list's entries with item detail. The composite
// operations (create-with-items, association ops) live on ListRepo.
func NewListRepository(db *pgxpool.Pool) domain.EntityRepository[domain.List] {
	return NewEntityRepo[domain.List, *domain.List](db, ResourceDescriptor[domain.List]{
		Table:   "lists",
		Columns: []string{"name"},
		Values: func(l *domain.List) []any {
			return []any{l.Name}
		},
		LoadRelations: loadListEntries,
	})
}

func loadItemCategory(ctx context.Context, db *pgxpool.Pool, item *domain.Item) error {
	query := `SELECT id, user_id, created_at, updated_at, name
	          FROM categories WHERE id = $1 AND user_id = $2`
	rows, err := db.Query(ctx, query, item.CategoryID, item.UserID)
	if err != nil {
		return err
	}
	category, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[domain.Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	item.Category = category
	return nil
}

func loadListEntries(ctx context.Context, db *pgxpool.Pool, list *domain.List) error {
	entries, err := fetchEntries(ctx, db, list.UserID, list.ID)
	if err != nil {
		return err
	}
	list.Entries = entries
	return nil
}
