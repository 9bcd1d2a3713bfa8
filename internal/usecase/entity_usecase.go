package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meal-planner-backend/internal/domain"
	"meal-planner-backend/pkg/apperror"
	"meal-planner-backend/pkg/schema"

	"github.com/google/uuid"
)

type ownedPtr[T any] interface {
	*T
	domain.Owned
}

// EntityUsecase is the generic ownership-scoped CRUD contract applied to
// every resource kind. A resource supplies its repository, its display
// name and its schema names; the request prototypes behind those names
// are registered by the HTTP layer at startup.
//
// Every operation requires a resolved caller id in the context and
// short-circuits with an authentication error before any persistence
// access. Missing rows and rows owned by someone else are both reported
// as not found.
type EntityUsecase[T any, PT ownedPtr[T]] struct {
	repo         domain.EntityRepository[T]
	schemas      *schema.Registry
	kind         string
	createSchema string
	updateSchema string
}

func NewEntityUsecase[T any, PT ownedPtr[T]](
	repo domain.EntityRepository[T],
	schemas *schema.Registry,
	kind, createSchema, updateSchema string,
) *EntityUsecase[T, PT] {
	if updateSchema == "" {
		updateSchema = createSchema
	}
	return &EntityUsecase[T, PT]{
		repo:         repo,
		schemas:      schemas,
		kind:         kind,
		createSchema: createSchema,
		updateSchema: updateSchema,
	}
}

func (u *EntityUsecase[T, PT]) List(ctx context.Context) ([]T, error) {
	userID, err := domain.CallerID(ctx)
	if err != nil {
		return nil, apperror.Unauthorized()
	}
	return u.repo.Fetch(ctx, userID)
}

// Create validates the payload, stamps ownership and identity, lets fill
// copy the type-specific fields over, and persists.
func (u *EntityUsecase[T, PT]) Create(ctx context.Context, payload any, fill func(entity *T)) (*T, error) {
	userID, err := domain.CallerID(ctx)
	if err != nil {
		return nil, apperror.Unauthorized()
	}
	if err := u.schemas.Validate(u.createSchema, payload); err != nil {
		return nil, err
	}

	entity := new(T)
	PT(entity).Meta().Stamp(userID, time.Now())
	fill(entity)

	if err := u.repo.Create(ctx, entity); err != nil {
		return nil, u.mapError(err)
	}
	return entity, nil
}

func (u *EntityUsecase[T, PT]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	userID, err := domain.CallerID(ctx)
	if err != nil {
		return nil, apperror.Unauthorized()
	}
	entity, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, u.mapError(err)
	}
	return entity, nil
}

// Update is a merge: the existing row is fetched (with the ownership
// check), merge overwrites only the supplied fields, and the result is
// persisted.
func (u *EntityUsecase[T, PT]) Update(ctx context.Context, id uuid.UUID, payload any, merge func(entity *T)) (*T, error) {
	userID, err := domain.CallerID(ctx)
	if err != nil {
		return nil, apperror.Unauthorized()
	}
	if err := u.schemas.Validate(u.updateSchema, payload); err != nil {
		return nil, err
	}

	entity, err := u.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, u.mapError(err)
	}

	merge(entity)
	PT(entity).Meta().UpdatedAt = time.Now()

	if err := u.repo.Update(ctx, entity); err != nil {
		return nil, u.mapError(err)
	}
	return entity, nil
}

func (u *EntityUsecase[T, PT]) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := domain.CallerID(ctx)
	if err != nil {
		return apperror.Unauthorized()
	}
	if err := u.repo.Delete(ctx, userID, id); err != nil {
		return u.mapError(err)
	}
	return nil
}

func (u *EntityUsecase[T, PT]) mapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(fmt.Sprintf("%s not found", u.kind))
	case errors.Is(err, domain.ErrConflict):
		return apperror.Conflict(fmt.Sprintf("%s conflicts with an existing resource", u.kind))
	default:
		return err
	}
}
