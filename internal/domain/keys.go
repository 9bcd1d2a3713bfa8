package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeySubjectID CtxKey = "SubjectID"
	KeyRequestID CtxKey = "RequestID"
)

var ErrNoCaller = errors.New("no authenticated caller in context")

// CallerID returns the internal user id placed in the context by the auth
// middleware. Every store operation checks this before touching the
// database; absence is an authentication failure, not a store failure.
func CallerID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(KeyUserID).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrNoCaller
	}
	return id, nil
}
