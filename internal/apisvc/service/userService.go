package service

import (
	"context"
	"time"

	"github.com/dobromax/initiative-services/internal/apisvc/models"
	"github.com/dobromax/initiative-services/internal/apisvc/store"
)

// UserService wraps the max_users collection.
type UserService struct {
	userStore *store.UserStore
}

func NewUserService(userStore *store.UserStore) *UserService {
	return &UserService{userStore: userStore}
}

// RegisterUser adds the user on first contact with the bot. Repeat calls
// leave the existing document untouched.
func (s *UserService) RegisterUser(ctx context.Context, userId int64, name string) error {
	return s.userStore.UpsertUser(ctx, userId, name)
}

func (s *UserService) GetByID(ctx context.Context, userId int64) (*models.User, error) {
	return s.userStore.GetByID(ctx, userId)
}

func (s *UserService) UpdateMotivationState(ctx context.Context, userId int64, lastViewCount int64, messageId string, messageDate time.Time) error {
	return s.userStore.UpdateMotivationState(ctx, userId, lastViewCount, messageId, messageDate)
}
