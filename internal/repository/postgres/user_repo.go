package postgres

import (
	"context"
	"errors"

	"meal-planner-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, sub_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(ctx, query, user.ID, user.SubID, user.CreatedAt, user.UpdatedAt); err != nil {
		return translateError(err)
	}
	return nil
}

func (r *userRepo) GetBySubID(ctx context.Context, subID uuid.UUID) (*domain.User, error) {
	query := `SELECT id, sub_id, created_at, updated_at FROM users WHERE sub_id = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, subID).Scan(
		&user.ID, &user.SubID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
