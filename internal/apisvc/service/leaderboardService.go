package service

import (
	"context"

	"github.com/dobromax/initiative-services/internal/apisvc/models"
	"github.com/dobromax/initiative-services/internal/apisvc/store"
)

const maxLeaderboardLimit = 50

// LeaderboardService runs the ranking aggregations used by the bot commands.
type LeaderboardService struct {
	cardStore *store.CardStore
	viewStore *store.CardViewStore
}

func NewLeaderboardService(cardStore *store.CardStore, viewStore *store.CardViewStore) *LeaderboardService {
	return &LeaderboardService{cardStore: cardStore, viewStore: viewStore}
}

func clampLimit(limit int64) int64 {
	if limit <= 0 {
		return 10
	}
	if limit > maxLeaderboardLimit {
		return maxLeaderboardLimit
	}
	return limit
}

// TopCardsByViews returns at most limit accepted cards ordered by total
// views descending.
func (s *LeaderboardService) TopCardsByViews(ctx context.Context, limit int64) ([]models.CardWithViews, error) {
	return s.cardStore.TopCardsByViews(ctx, clampLimit(limit))
}

// TopUsersByCards ranks card authors by accepted cards, then summed views.
func (s *LeaderboardService) TopUsersByCards(ctx context.Context, limit int64) ([]models.UserCardsRank, error) {
	return s.cardStore.TopUsersByCards(ctx, clampLimit(limit))
}

// TopUsersByViews ranks users by the views they performed.
func (s *LeaderboardService) TopUsersByViews(ctx context.Context, limit int64) ([]models.UserViewsRank, error) {
	return s.viewStore.TopUsersByViews(ctx, clampLimit(limit))
}
