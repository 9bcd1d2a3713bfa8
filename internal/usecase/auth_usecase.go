package usecase

import (
	"context"
	"errors"
	"time"

	"meal-planner-backend/internal/domain"
	"meal-planner-backend/pkg/logger"

	"github.com/google/uuid"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// Resolve maps a verified subject id to the internal user record,
// provisioning one on first contact. Two first-requests racing to create
// the same subject cannot produce two rows: the unique constraint on
// sub_id makes the loser's insert conflict, and the loser then returns
// the winner's row.
func (u *authUsecase) Resolve(ctx context.Context, subID uuid.UUID) (*domain.User, error) {
	user, err := u.userRepo.GetBySubID(ctx, subID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	created := &domain.User{
		ID:        uuid.New(),
		SubID:     subID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.userRepo.Create(ctx, created); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return u.userRepo.GetBySubID(ctx, subID)
		}
		return nil, err
	}

	logger.Log.Debug("provisioned new user", "user_id", created.ID, "sub_id", subID)
	return created, nil
}
