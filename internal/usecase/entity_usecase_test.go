package usecase

import (
	"context"
	"testing"
	"time"

	"meal-planner-backend/internal/domain"
	"meal-planner-backend/pkg/apperror"
	"meal-planner-backend/pkg/schema"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Fetch(ctx context.Context, userID uuid.UUID) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, entity *domain.Category) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, entity *domain.Category) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type categoryPayload struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type categoryUpdatePayload struct {
	Name string `json:"name" validate:"omitempty,min=1,max=100"`
}

func authedCtx(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), domain.KeyUserID, userID)
}

func newCategoryUsecase(repo domain.EntityRepository[domain.Category]) *EntityUsecase[domain.Category, *domain.Category] {
	schemas := schema.NewRegistry()
	schemas.Register("category", categoryPayload{})
	schemas.Register("category_update", categoryUpdatePayload{})
	return NewEntityUsecase[domain.Category, *domain.Category](
		repo, schemas, "category", "category", "category_update")
}

func TestEntityOperationsRequireCaller(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := newCategoryUsecase(repo)
	ctx := context.Background()

	_, listErr := uc.List(ctx)
	_, createErr := uc.Create(ctx, categoryPayload{Name: "x"}, func(*domain.Category) {})
	_, getErr := uc.Get(ctx, uuid.New())
	_, updateErr := uc.Update(ctx, uuid.New(), categoryUpdatePayload{}, func(*domain.Category) {})
	deleteErr := uc.Delete(ctx, uuid.New())

	for _, err := range []error{listErr, createErr, getErr, updateErr, deleteErr} {
		require.Error(t, err)
		assert.Equal(t, apperror.KindUnauthorized, appKind(t, err))
	}

	// Nothing may touch the store without a caller.
	repo.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestEntityListScopedToCaller(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := newCategoryUsecase(repo)

	userID := uuid.New()
	owned := []domain.Category{{Name: "Produce"}, {Name: "Dairy"}}
	repo.On("Fetch", mock.Anything, userID).Return(owned, nil)

	got, err := uc.List(authedCtx(userID))
	require.NoError(t, err)
	assert.Len(t, got, 2)
	repo.AssertExpectations(t)
}

func TestEntityCreate(t *testing.T) {
	userID := uuid.New()

	t.Run("stamps ownership and applies fill", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uc := newCategoryUsecase(repo)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
			return c.UserID == userID && c.ID != uuid.Nil && c.Name == "Produce"
		})).Return(nil)

		created, err := uc.Create(authedCtx(userID), categoryPayload{Name: "Produce"}, func(c *domain.Category) {
			c.Name = "Produce"
		})
		require.NoError(t, err)
		assert.Equal(t, userID, created.UserID)
		assert.False(t, created.CreatedAt.IsZero())
		repo.AssertExpectations(t)
	})

	t.Run("invalid payload never reaches the store", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uc := newCategoryUsecase(repo)

		_, err := uc.Create(authedCtx(userID), categoryPayload{}, func(c *domain.Category) {})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, appKind(t, err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("name collision maps to conflict", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uc := newCategoryUsecase(repo)

		repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrConflict)

		_, err := uc.Create(authedCtx(userID), categoryPayload{Name: "Produce"}, func(c *domain.Category) {
			c.Name = "Produce"
		})
		require.Error(t, err)
		assert.Equal(t, apperror.KindConflict, appKind(t, err))
	})
}

func TestEntityGetMapsMissingRow(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := newCategoryUsecase(repo)

	userID := uuid.New()
	id := uuid.New()
	repo.On("GetByID", mock.Anything, userID, id).Return(nil, domain.ErrNotFound)

	_, err := uc.Get(authedCtx(userID), id)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, appKind(t, err))
	assert.Contains(t, err.Error(), "category not found")
}

func TestEntityUpdateMergesOverExisting(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := newCategoryUsecase(repo)

	userID := uuid.New()
	id := uuid.New()
	existing := &domain.Category{Name: "Produce"}
	existing.ID = id
	existing.UserID = userID
	existing.CreatedAt = time.Now().Add(-time.Hour)
	existing.UpdatedAt = existing.CreatedAt

	repo.On("GetByID", mock.Anything, userID, id).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
		return c.ID == id && c.Name == "Fresh Produce"
	})).Return(nil)

	updated, err := uc.Update(authedCtx(userID), id, categoryUpdatePayload{Name: "Fresh Produce"}, func(c *domain.Category) {
		c.Name = "Fresh Produce"
	})
	require.NoError(t, err)
	assert.Equal(t, "Fresh Produce", updated.Name)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	repo.AssertExpectations(t)
}

func TestEntityUpdateSomeoneElsesRowIsNotFound(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := newCategoryUsecase(repo)

	userID := uuid.New()
	id := uuid.New()
	// The repository filters by owner, so a foreign row never comes back.
	repo.On("GetByID", mock.Anything, userID, id).Return(nil, domain.ErrNotFound)

	_, err := uc.Update(authedCtx(userID), id, categoryUpdatePayload{Name: "x"}, func(c *domain.Category) {})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, appKind(t, err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEntityDelete(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uc := newCategoryUsecase(repo)
		repo.On("Delete", mock.Anything, userID, id).Return(nil)

		assert.NoError(t, uc.Delete(authedCtx(userID), id))
		repo.AssertExpectations(t)
	})

	t.Run("referenced row maps to conflict", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		uc := newCategoryUsecase(repo)
		repo.On("Delete", mock.Anything, userID, id).Return(domain.ErrConflict)

		err := uc.Delete(authedCtx(userID), id)
		require.Error(t, err)
		assert.Equal(t, apperror.KindConflict, appKind(t, err))
	})
}
