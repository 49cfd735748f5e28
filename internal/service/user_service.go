package service

import (
	"context"
	"fmt"

	"github.com/shopmate/shopmate-bot/internal/models"
)

// UserService manages the chat registry.
type UserService struct {
	store UserStore
}

// NewUserService constructs a UserService.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// Register records a chat identity, refreshing display fields for users who
// /start again.
func (s *UserService) Register(ctx context.Context, user *models.User) error {
	if err := s.store.Upsert(ctx, user); err != nil {
		return fmt.Errorf("upsert user %d: %w", user.ChatID, err)
	}
	return nil
}

// List returns all registered users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.List(ctx)
}

// ListChatIDs returns the chat ids of every registered user, the broadcast
// recipient set.
func (s *UserService) ListChatIDs(ctx context.Context) ([]int64, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ChatID)
	}
	return ids, nil
}
