package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// List is a user-owned named collection of item associations.
type List struct {
	UserOwned
	Name string `json:"name" db:"name"`

	// Entries are loaded eagerly on single-list reads.
	Entries []ListItem `json:"entries,omitempty" db:"-"`
}

// ListItem is the association between a list and an item, keyed by the
// (list_id, item_id) pair. It carries per-association state a plain join
// table cannot hold. Rows cascade away when their list is deleted.
type ListItem struct {
	ListID    uuid.UUID `json:"list_id" db:"list_id"`
	ItemID    uuid.UUID `json:"item_id" db:"item_id"`
	Checked   bool      `json:"checked" db:"checked"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Item detail for display, populated on reads.
	Item *Item `json:"item,omitempty" db:"-"`
}

// NewItem describes an item to be created inline during list composition.
type NewItem struct {
	Name       string
	Unit       string
	CategoryID uuid.UUID
}

// ItemRef references an existing item to associate with a new list.
type ItemRef struct {
	ItemID   uuid.UUID
	Quantity int
}

// ListItemPatch carries the mutable association fields for a merge update.
// Nil means "leave unchanged".
type ListItemPatch struct {
	Quantity *int
	Checked  *bool
}

// ListRepository covers the composite operations that go beyond the
// generic entity store: the atomic create-with-items transaction and the
// single-association ops on the (list_id, item_id) key.
type ListRepository interface {
	// CreateWithItems persists the list, the inline items and all
	// associations in one transaction. Any failure rolls back the lot.
	// An item-name collision returns ErrConflict; a duplicate
	// association returns ErrDuplicateListItem.
	CreateWithItems(ctx context.Context, list *List, newItems []*Item, refs []ItemRef) error

	Entries(ctx context.Context, userID, listID uuid.UUID) ([]ListItem, error)
	AddEntry(ctx context.Context, userID uuid.UUID, entry *ListItem) error
	UpdateEntry(ctx context.Context, userID uuid.UUID, entry *ListItem) error
	GetEntry(ctx context.Context, userID, listID, itemID uuid.UUID) (*ListItem, error)
	DeleteEntry(ctx context.Context, userID, listID, itemID uuid.UUID) error
}

type ListUsecase interface {
	CreateWithItems(ctx context.Context, name string, newItems []NewItem, refs []ItemRef) (*List, error)
	AddItem(ctx context.Context, listID, itemID uuid.UUID, quantity int) ([]ListItem, error)
	UpdateEntry(ctx context.Context, listID, itemID uuid.UUID, patch ListItemPatch) (*ListItem, error)
	RemoveEntry(ctx context.Context, listID, itemID uuid.UUID) error
}
