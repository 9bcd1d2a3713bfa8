package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is the internal identity record. SubID is the identity provider's
// stable subject identifier; rows are provisioned lazily on the first
// successful authentication of a new subject.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	SubID     uuid.UUID `json:"sub_id" db:"sub_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetBySubID(ctx context.Context, subID uuid.UUID) (*User, error)
}

type AuthUsecase interface {
	// Resolve maps a verified subject id to the internal user, creating
	// the row on first sight. Safe against concurrent first requests.
	Resolve(ctx context.Context, subID uuid.UUID) (*User, error)
}
