package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobromax/initiative-services/internal/apisvc/models"
)

func makeCard(id, status string, userId int64) models.Card {
	return models.Card{
		ID:       id,
		Category: "эко",
		Title:    "Инициатива " + id,
		Subtitle: "Описание " + id,
		Text:     "Текст " + id,
		Status:   status,
		Date:     time.Now(),
		UserId:   userId,
	}
}

func TestCreateAndListCards(t *testing.T) {
	database := setupTestDB(t)
	s := NewCardStore(database)
	ctx := context.Background()

	require.NoError(t, s.CreateCard(ctx, makeCard("a", models.CardStatusModerate, 0)))
	require.NoError(t, s.CreateCard(ctx, makeCard("b", models.CardStatusAccepted, 42)))

	cards, err := s.ListCards(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	card, err := s.GetCardByID(ctx, "b")
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, models.CardStatusAccepted, card.Status)

	card, err = s.GetCardByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, card)
}

func TestUpdateStatus(t *testing.T) {
	database := setupTestDB(t)
	s := NewCardStore(database)
	ctx := context.Background()

	require.NoError(t, s.CreateCard(ctx, makeCard("a", models.CardStatusModerate, 0)))

	found, err := s.UpdateStatus(ctx, "a", models.CardStatusAccepted)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.UpdateStatus(ctx, "missing", models.CardStatusAccepted)
	require.NoError(t, err)
	assert.False(t, found)

	card, err := s.GetCardByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.CardStatusAccepted, card.Status)
}

func TestTopCardsByViews(t *testing.T) {
	database := setupTestDB(t)
	cards := NewCardStore(database)
	views := NewCardViewStore(database)
	ctx := context.Background()

	require.NoError(t, cards.CreateCard(ctx, makeCard("low", models.CardStatusAccepted, 0)))
	require.NoError(t, cards.CreateCard(ctx, makeCard("high", models.CardStatusAccepted, 0)))
	require.NoError(t, cards.CreateCard(ctx, makeCard("hidden", models.CardStatusModerate, 0)))

	for i := 0; i < 3; i++ {
		_, err := views.TrackView(ctx, "high", int64(100+i))
		require.NoError(t, err)
	}
	_, err := views.TrackView(ctx, "low", 100)
	require.NoError(t, err)
	// views on a card still in moderation never rank
	_, err = views.TrackView(ctx, "hidden", 100)
	require.NoError(t, err)

	top, err := cards.TopCardsByViews(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, "high", top[0].ID)
	assert.Equal(t, int64(3), top[0].ViewCount)
	assert.Equal(t, "low", top[1].ID)
	assert.Equal(t, int64(1), top[1].ViewCount)

	// limit truncates
	top, err = cards.TopCardsByViews(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "high", top[0].ID)
}

func TestTopUsersByCards(t *testing.T) {
	database := setupTestDB(t)
	cards := NewCardStore(database)
	views := NewCardViewStore(database)
	users := NewUserStore(database)
	ctx := context.Background()

	require.NoError(t, users.UpsertUser(ctx, 1, "Анна"))
	require.NoError(t, users.UpsertUser(ctx, 2, "Борис"))

	// user 1 authored two accepted cards with 10 total views,
	// user 2 one accepted card with 3 views
	require.NoError(t, cards.CreateCard(ctx, makeCard("a1", models.CardStatusAccepted, 1)))
	require.NoError(t, cards.CreateCard(ctx, makeCard("a2", models.CardStatusAccepted, 1)))
	require.NoError(t, cards.CreateCard(ctx, makeCard("b1", models.CardStatusAccepted, 2)))
	require.NoError(t, cards.CreateCard(ctx, makeCard("rej", models.CardStatusRejected, 2)))

	for i := 0; i < 6; i++ {
		_, err := views.TrackView(ctx, "a1", int64(200+i))
		require.NoError(t, err)
	}
	for i := 0; i < 4; i++ {
		_, err := views.TrackView(ctx, "a2", int64(300+i))
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		_, err := views.TrackView(ctx, "b1", int64(400+i))
		require.NoError(t, err)
	}

	ranks, err := cards.TopUsersByCards(ctx, 10)
	require.NoError(t, err)
	require.Len(t, ranks, 2)

	assert.Equal(t, int64(1), ranks[0].UserId)
	assert.Equal(t, "Анна", ranks[0].Name)
	assert.Equal(t, int64(2), ranks[0].CardsCount)
	assert.Equal(t, int64(10), ranks[0].TotalViews)

	assert.Equal(t, int64(2), ranks[1].UserId)
	assert.Equal(t, int64(1), ranks[1].CardsCount)
	assert.Equal(t, int64(3), ranks[1].TotalViews)
}

func TestUpsertUserIdempotent(t *testing.T) {
	database := setupTestDB(t)
	users := NewUserStore(database)
	ctx := context.Background()

	require.NoError(t, users.UpsertUser(ctx, 42, "Анна"))
	require.NoError(t, users.UpsertUser(ctx, 42, "Другая Анна"))

	user, err := users.GetByID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Анна", user.Name)
	assert.Equal(t, int64(0), user.LastViewCount)
}
