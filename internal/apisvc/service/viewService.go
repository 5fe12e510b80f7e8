package service

import (
	"context"
	"strings"

	"github.com/dobromax/initiative-services/internal/apisvc/store"
)

// ViewService is the view-tracking layer over the card_views collection.
type ViewService struct {
	viewStore *store.CardViewStore
}

func NewViewService(viewStore *store.CardViewStore) *ViewService {
	return &ViewService{viewStore: viewStore}
}

// TrackView counts one view of a card by a user and returns the per-pair
// counter after the update.
func (s *ViewService) TrackView(ctx context.Context, cardId string, userId int64) (int64, error) {
	if strings.TrimSpace(cardId) == "" {
		return 0, requiredField("card_id")
	}
	if userId <= 0 {
		return 0, requiredField("user_id")
	}
	return s.viewStore.TrackView(ctx, cardId, userId)
}

func (s *ViewService) GetUserViewedCardIds(ctx context.Context, userId int64) ([]string, error) {
	if userId <= 0 {
		return nil, requiredField("user_id")
	}
	return s.viewStore.GetUserViewedCardIds(ctx, userId)
}

func (s *ViewService) GetUserTotalViewCount(ctx context.Context, userId int64) (int64, error) {
	return s.viewStore.GetUserTotalViewCount(ctx, userId)
}
