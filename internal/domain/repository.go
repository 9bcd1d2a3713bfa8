package domain

import (
	"context"

	"github.com/google/uuid"
)

// EntityRepository is the ownership-scoped store contract shared by every
// user-owned resource. Implementations must filter all reads and writes by
// the owning user id; a row owned by another user behaves exactly like a
// missing row.
type EntityRepository[T any] interface {
	Fetch(ctx context.Context, userID uuid.UUID) ([]T, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
