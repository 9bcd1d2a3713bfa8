package usecase

import (
	"context"
	"testing"

	"meal-planner-backend/internal/domain"
	"meal-planner-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) CreateWithItems(ctx context.Context, list *domain.List, newItems []*domain.Item, refs []domain.ItemRef) error {
	args := m.Called(ctx, list, newItems, refs)
	return args.Error(0)
}

func (m *MockListRepository) Entries(ctx context.Context, userID, listID uuid.UUID) ([]domain.ListItem, error) {
	args := m.Called(ctx, userID, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListItem), args.Error(1)
}

func (m *MockListRepository) AddEntry(ctx context.Context, userID uuid.UUID, entry *domain.ListItem) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *MockListRepository) UpdateEntry(ctx context.Context, userID uuid.UUID, entry *domain.ListItem) error {
	args := m.Called(ctx, userID, entry)
	return args.Error(0)
}

func (m *MockListRepository) GetEntry(ctx context.Context, userID, listID, itemID uuid.UUID) (*domain.ListItem, error) {
	args := m.Called(ctx, userID, listID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListItem), args.Error(1)
}

func (m *MockListRepository) DeleteEntry(ctx context.Context, userID, listID, itemID uuid.UUID) error {
	args := m.Called(ctx, userID, listID, itemID)
	return args.Error(0)
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestListCreateWithItems(t *testing.T) {
	userID := uuid.New()
	categoryID := uuid.New()

	t.Run("stamps list and inline items for the caller", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)

		repo.On("CreateWithItems", mock.Anything,
			mock.MatchedBy(func(l *domain.List) bool {
				return l.Name == "Weekly Shop" && l.UserID == userID && l.ID != uuid.Nil
			}),
			mock.MatchedBy(func(items []*domain.Item) bool {
				return len(items) == 1 &&
					items[0].UserID == userID &&
					items[0].Name == "Milk" &&
					items[0].Unit == "liter"
			}),
			mock.MatchedBy(func(refs []domain.ItemRef) bool {
				return len(refs) == 1 && refs[0].Quantity == 3
			}),
		).Return(nil)

		list, err := uc.CreateWithItems(authedCtx(userID), "Weekly Shop",
			[]domain.NewItem{{Name: "Milk", Unit: "liter", CategoryID: categoryID}},
			[]domain.ItemRef{{ItemID: uuid.New(), Quantity: 3}},
		)
		require.NoError(t, err)
		assert.Equal(t, userID, list.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("defaults unit and quantity", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)

		repo.On("CreateWithItems", mock.Anything, mock.Anything,
			mock.MatchedBy(func(items []*domain.Item) bool {
				return len(items) == 1 && items[0].Unit == "each"
			}),
			mock.MatchedBy(func(refs []domain.ItemRef) bool {
				return len(refs) == 1 && refs[0].Quantity == 1
			}),
		).Return(nil)

		_, err := uc.CreateWithItems(authedCtx(userID), "Quick List",
			[]domain.NewItem{{Name: "Eggs", CategoryID: categoryID}},
			[]domain.ItemRef{{ItemID: uuid.New(), Quantity: 0}},
		)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("inline item without category is rejected", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)

		_, err := uc.CreateWithItems(authedCtx(userID), "Broken",
			[]domain.NewItem{{Name: "Mystery"}}, nil)
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, appKind(t, err))
		repo.AssertNotCalled(t, "CreateWithItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown item reference is not found", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)

		repo.On("CreateWithItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(domain.ErrNotFound)

		_, err := uc.CreateWithItems(authedCtx(userID), "Weekly Shop",
			nil, []domain.ItemRef{{ItemID: uuid.New(), Quantity: 1}})
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, appKind(t, err))
	})

	t.Run("requires caller", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)

		_, err := uc.CreateWithItems(context.Background(), "Weekly Shop", nil, nil)
		require.Error(t, err)
		assert.Equal(t, apperror.KindUnauthorized, appKind(t, err))
	})
}

func TestListAddItem(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()
	itemID := uuid.New()

	t.Run("returns refreshed entries", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)

		repo.On("AddEntry", mock.Anything, userID, mock.MatchedBy(func(e *domain.ListItem) bool {
			return e.ListID == listID && e.ItemID == itemID && e.Quantity == 2
		})).Return(nil)
		repo.On("Entries", mock.Anything, userID, listID).
			Return([]domain.ListItem{{ListID: listID, ItemID: itemID, Quantity: 2}}, nil)

		entries, err := uc.AddItem(authedCtx(userID), listID, itemID, 2)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
		repo.AssertExpectations(t)
	})

	t.Run("clamps quantity up to one", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)

		repo.On("AddEntry", mock.Anything, userID, mock.MatchedBy(func(e *domain.ListItem) bool {
			return e.Quantity == 1
		})).Return(nil)
		repo.On("Entries", mock.Anything, userID, listID).Return([]domain.ListItem{}, nil)

		_, err := uc.AddItem(authedCtx(userID), listID, itemID, -5)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate association keeps its own kind", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)

		repo.On("AddEntry", mock.Anything, userID, mock.Anything).
			Return(domain.ErrDuplicateListItem)

		_, err := uc.AddItem(authedCtx(userID), listID, itemID, 1)
		require.Error(t, err)
		assert.Equal(t, apperror.KindDuplicateItem, appKind(t, err))
	})
}

func TestListUpdateEntry(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()
	itemID := uuid.New()

	existing := func() *domain.ListItem {
		return &domain.ListItem{ListID: listID, ItemID: itemID, Quantity: 2, Checked: false}
	}

	t.Run("patch overwrites only supplied fields", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)

		repo.On("GetEntry", mock.Anything, userID, listID, itemID).Return(existing(), nil)
		repo.On("UpdateEntry", mock.Anything, userID, mock.MatchedBy(func(e *domain.ListItem) bool {
			return e.Checked && e.Quantity == 2
		})).Return(nil)

		entry, err := uc.UpdateEntry(authedCtx(userID), listID, itemID,
			domain.ListItemPatch{Checked: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, entry.Checked)
		assert.Equal(t, 2, entry.Quantity)
		repo.AssertExpectations(t)
	})

	t.Run("rejects quantity below one", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)

		repo.On("GetEntry", mock.Anything, userID, listID, itemID).Return(existing(), nil)

		_, err := uc.UpdateEntry(authedCtx(userID), listID, itemID,
			domain.ListItemPatch{Quantity: intPtr(0)})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, appKind(t, err))
		repo.AssertNotCalled(t, "UpdateEntry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing association is not found", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)

		repo.On("GetEntry", mock.Anything, userID, listID, itemID).
			Return(nil, domain.ErrNotFound)

		_, err := uc.UpdateEntry(authedCtx(userID), listID, itemID,
			domain.ListItemPatch{Quantity: intPtr(3)})
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, appKind(t, err))
	})
}

func TestListRemoveEntry(t *testing.T) {
	userID := uuid.New()
	listID := uuid.New()
	itemID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)
		repo.On("DeleteEntry", mock.Anything, userID, listID, itemID).Return(nil)

		assert.NoError(t, uc.RemoveEntry(authedCtx(userID), listID, itemID))
		repo.AssertExpectations(t)
	})

	t.Run("missing association is not found", func(t *testing.T) {
		repo := new(MockListRepository)
		uc := NewListUsecase(repo)
		repo.On("DeleteEntry", mock.Anything, userID, listID, itemID).Return(domain.ErrNotFound)

		err := uc.RemoveEntry(authedCtx(userID), listID, itemID)
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, appKind(t, err))
	})
}
