package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dobromax/initiative-services/internal/apisvc/models"
	"github.com/dobromax/initiative-services/internal/db"
)

type CardStore struct {
	db *mongo.Database
}

func NewCardStore(database *mongo.Database) *CardStore {
	return &CardStore{db: database}
}

func (s *CardStore) collection() *mongo.Collection {
	return s.db.Collection(db.CardsCollection)
}

func (s *CardStore) CreateCard(ctx context.Context, card models.Card) error {
	_, err := s.collection().InsertOne(ctx, card)
	if err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}
	return nil
}

// ListCards returns all cards, newest first.
func (s *CardStore) ListCards(ctx context.Context) ([]models.Card, error) {
	cursor, err := s.collection().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer cursor.Close(ctx)

	cards := []models.Card{}
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}
	return cards, nil
}

func (s *CardStore) GetCardByID(ctx context.Context, cardId string) (*models.Card, error) {
	var card models.Card
	err := s.collection().FindOne(ctx, bson.M{"id": cardId}).Decode(&card)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card by id: %w", err)
	}
	return &card, nil
}

// UpdateStatus moves a card out of moderation. Returns false when no card
// with the given id exists.
func (s *CardStore) UpdateStatus(ctx context.Context, cardId string, status string) (bool, error) {
	res, err := s.collection().UpdateOne(ctx,
		bson.M{"id": cardId},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return false, fmt.Errorf("failed to update card status: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// TopCardsByViews ranks accepted cards by the sum of their per-user view
// counters. Ties are broken by card id ascending so the order is stable.
func (s *CardStore) TopCardsByViews(ctx context.Context, limit int64) ([]models.CardWithViews, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"status": models.CardStatusAccepted}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         db.CardViewsCollection,
			"localField":   "id",
			"foreignField": "card_id",
			"as":           "views",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"view_count": bson.M{"$sum": "$views.view_count"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "view_count", Value: -1},
			{Key: "id", Value: 1},
		}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$project", Value: bson.M{"views": 0}}},
	}

	cursor, err := s.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top cards: %w", err)
	}
	defer cursor.Close(ctx)

	var cards []models.CardWithViews
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode top cards: %w", err)
	}
	return cards, nil
}

// TopUsersByCards ranks users by how many of their cards were accepted,
// with the summed views over those cards as the secondary key.
func (s *CardStore) TopUsersByCards(ctx context.Context, limit int64) ([]models.UserCardsRank, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"status":  models.CardStatusAccepted,
			"user_id": bson.M{"$exists": true, "$gt": 0},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         db.CardViewsCollection,
			"localField":   "id",
			"foreignField": "card_id",
			"as":           "views",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"card_views": bson.M{"$sum": "$views.view_count"},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":         "$user_id",
			"cards_count": bson.M{"$sum": 1},
			"total_views": bson.M{"$sum": "$card_views"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "cards_count", Value: -1},
			{Key: "total_views", Value: -1},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         db.UsersCollection,
			"localField":   "_id",
			"foreignField": "user_id",
			"as":           "user",
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"user_id":     "$_id",
			"cards_count": 1,
			"total_views": 1,
			"name":        bson.M{"$arrayElemAt": bson.A{"$user.name", 0}},
		}}},
	}

	cursor, err := s.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top users by cards: %w", err)
	}
	defer cursor.Close(ctx)

	var ranks []models.UserCardsRank
	if err := cursor.All(ctx, &ranks); err != nil {
		return nil, fmt.Errorf("failed to decode top users by cards: %w", err)
	}

	for i := range ranks {
		if ranks[i].Name == "" {
			ranks[i].Name = fmt.Sprintf("Пользователь %d", ranks[i].UserId)
		}
	}
	return ranks, nil
}
