package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/shopmate/shopmate-bot/internal/models"
)

// UserRepository handles the chat registry used for broadcast fan-out.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert registers a chat, refreshing display fields for returning users.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	const q = `
        INSERT INTO users (chat_id, first_name, last_name, username)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (chat_id) DO UPDATE SET
            first_name = EXCLUDED.first_name,
            last_name = EXCLUDED.last_name,
            username = EXCLUDED.username`
	_, err := r.db.ExecContext(ctx, q, user.ChatID, user.FirstName, user.LastName, user.Username)
	return err
}

// List returns all registered users in registration order.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const q = `SELECT * FROM users ORDER BY created_at`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, q); err != nil {
		return nil, err
	}
	return users, nil
}
