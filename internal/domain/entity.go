package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common domain errors. Repositories translate driver errors into these so
// the usecase layer never inspects SQLSTATE codes.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	ErrDuplicateListItem = errors.New("item already on list")
)

// UserOwned is the embedded base for every resource scoped to a user.
// All repository access is filtered by UserID; a row owned by someone
// else is indistinguishable from a missing row.
type UserOwned struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Meta exposes the embedded base so generic code can stamp identity and
// timestamps without per-type reflection.
func (e *UserOwned) Meta() *UserOwned { return e }

// Owned is satisfied by pointers to any struct embedding UserOwned.
type Owned interface {
	Meta() *UserOwned
}

// Stamp assigns a fresh id, the owning user and creation timestamps.
func (e *UserOwned) Stamp(userID uuid.UUID, now time.Time) {
	e.ID = uuid.New()
	e.UserID = userID
	e.CreatedAt = now
	e.UpdatedAt = now
}
