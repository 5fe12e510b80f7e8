package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dobromax/initiative-services/internal/apisvc/models"
)

// CardStorage is the card persistence surface the service needs.
// *store.CardStore satisfies it.
type CardStorage interface {
	CreateCard(ctx context.Context, card models.Card) error
	ListCards(ctx context.Context) ([]models.Card, error)
	GetCardByID(ctx context.Context, cardId string) (*models.Card, error)
	UpdateStatus(ctx context.Context, cardId string, status string) (bool, error)
}

// CardService handles creation, listing and moderation of initiative cards.
type CardService struct {
	cardStore CardStorage
}

func NewCardService(cardStore CardStorage) *CardService {
	return &CardService{cardStore: cardStore}
}

// CreateCard validates the input, assigns the generated id and creation
// date and inserts the card.
func (s *CardService) CreateCard(ctx context.Context, input models.CardInput) (*models.Card, error) {
	required := []struct {
		field, value string
	}{
		{"category", input.Category},
		{"title", input.Title},
		{"subtitle", input.Subtitle},
		{"text", input.Text},
		{"status", input.Status},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, requiredField(r.field)
		}
	}

	card := models.Card{
		ID:       uuid.NewString(),
		Category: strings.TrimSpace(input.Category),
		Title:    strings.TrimSpace(input.Title),
		Subtitle: strings.TrimSpace(input.Subtitle),
		Text:     strings.TrimSpace(input.Text),
		Status:   strings.TrimSpace(input.Status),
		Date:     time.Now(),
		Link:     strings.TrimSpace(input.Link),
		Image:    input.Image,
	}
	if input.UserId > 0 {
		card.UserId = input.UserId
	}

	if err := s.cardStore.CreateCard(ctx, card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *CardService) ListCards(ctx context.Context) ([]models.Card, error) {
	return s.cardStore.ListCards(ctx)
}

// ModerateCard sets the moderation verdict on a card. Only accepted and
// rejected are valid verdicts, fresh cards start as moderate.
func (s *CardService) ModerateCard(ctx context.Context, cardId string, status string) (bool, error) {
	if strings.TrimSpace(cardId) == "" {
		return false, requiredField("card_id")
	}
	if status != models.CardStatusAccepted && status != models.CardStatusRejected {
		return false, &ValidationError{
			Field:   "status",
			Message: "status must be \"accepted\" or \"rejected\"",
		}
	}

	card, err := s.cardStore.GetCardByID(ctx, cardId)
	if err != nil {
		return false, err
	}
	if card == nil {
		return false, nil
	}
	return s.cardStore.UpdateStatus(ctx, cardId, status)
}
