package domain

import "github.com/google/uuid"

// Item is a user-owned catalog entry. Every item belongs to a category;
// the reference is enforced by a foreign key, so deleting a category that
// still has items surfaces as a conflict.
type Item struct {
	UserOwned
	Name       string    `json:"name" db:"name"`
	Unit       string    `json:"unit" db:"unit"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`

	// Category is loaded eagerly on single-item reads.
	Category *Category `json:"category,omitempty" db:"-"`
}
