package usecase

import (
	"context"
	"errors"
	"time"

	"meal-planner-backend/internal/domain"
	"meal-planner-backend/pkg/apperror"

	"github.com/google/uuid"
)

const defaultUnit = "each"

type listUsecase struct {
	listRepo domain.ListRepository
}

func NewListUsecase(listRepo domain.ListRepository) domain.ListUsecase {
	return &listUsecase{listRepo: listRepo}
}

// CreateWithItems creates a list together with a mixed batch of item
// associations in one transaction. Referenced items carry their requested
// quantity; inline items are created for the caller and associated with
// quantity 1. Any failure leaves nothing persisted.
func (u *listUsecase) CreateWithItems(ctx context.Context, name string, newItems []domain.NewItem, refs []domain.ItemRef) (*domain.List, error) {
	userID, err := domain.CallerID(ctx)
	if err != nil {
		return nil, apperror.Unauthorized()
	}

	now := time.Now()
	list := &domain.List{Name: name}
	list.Stamp(userID, now)

	items := make([]*domain.Item, 0, len(newItems))
	for _, proto := range newItems {
		if proto.CategoryID == uuid.Nil {
			return nil, apperror.Validation("category_id: is required for new items")
		}
		item := &domain.Item{
			Name:       proto.Name,
			Unit:       proto.Unit,
			CategoryID: proto.CategoryID,
		}
		if item.Unit == "" {
			item.Unit = defaultUnit
		}
		item.Stamp(userID, now)
		items = append(items, item)
	}

	normalized := make([]domain.ItemRef, 0, len(refs))
	for _, ref := range refs {
		if ref.Quantity < 1 {
			ref.Quantity = 1
		}
		normalized = append(normalized, ref)
	}

	if err := u.listRepo.CreateWithItems(ctx, list, items, normalized); err != nil {
		return nil, mapEntryError(err)
	}
	return list, nil
}

// AddItem associates one existing item with a list and returns the list's
// updated association set.
func (u *listUsecase) AddItem(ctx context.Context, listID, itemID uuid.UUID, quantity int) ([]domain.ListItem, error) {
	userID, err := domain.CallerID(ctx)
	if err != nil {
		return nil, apperror.Unauthorized()
	}

	if quantity < 1 {
		quantity = 1
	}
	now := time.Now()
	entry := &domain.ListItem{
		ListID:    listID,
		ItemID:    itemID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.listRepo.AddEntry(ctx, userID, entry); err != nil {
		return nil, mapEntryError(err)
	}

	return u.listRepo.Entries(ctx, userID, listID)
}

// UpdateEntry merges the patch over one association: supplied fields
// overwrite, omitted fields keep their values.
func (u *listUsecase) UpdateEntry(ctx context.Context, listID, itemID uuid.UUID, patch domain.ListItemPatch) (*domain.ListItem, error) {
	userID, err := domain.CallerID(ctx)
	if err != nil {
		return nil, apperror.Unauthorized()
	}

	entry, err := u.listRepo.GetEntry(ctx, userID, listID, itemID)
	if err != nil {
		return nil, mapEntryError(err)
	}

	if patch.Quantity != nil {
		if *patch.Quantity < 1 {
			return nil, apperror.Validation("quantity: must be at least 1")
		}
		entry.Quantity = *patch.Quantity
	}
	if patch.Checked != nil {
		entry.Checked = *patch.Checked
	}
	entry.UpdatedAt = time.Now()

	if err := u.listRepo.UpdateEntry(ctx, userID, entry); err != nil {
		return nil, mapEntryError(err)
	}
	return entry, nil
}

func (u *listUsecase) RemoveEntry(ctx context.Context, listID, itemID uuid.UUID) error {
	userID, err := domain.CallerID(ctx)
	if err != nil {
		return apperror.Unauthorized()
	}
	if err := u.listRepo.DeleteEntry(ctx, userID, listID, itemID); err != nil {
		return mapEntryError(err)
	}
	return nil
}

func mapEntryError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("list or item not found")
	case errors.Is(err, domain.ErrDuplicateListItem):
		return apperror.DuplicateItem("item is already on the list")
	case errors.Is(err, domain.ErrConflict):
		return apperror.Conflict("name conflicts with an existing resource")
	default:
		return err
	}
}
