package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dobromax/initiative-services/internal/apisvc/models"
	"github.com/dobromax/initiative-services/internal/db"
)

type CardViewStore struct {
	db *mongo.Database
}

func NewCardViewStore(database *mongo.Database) *CardViewStore {
	return &CardViewStore{db: database}
}

func (s *CardViewStore) collection() *mongo.Collection {
	return s.db.Collection(db.CardViewsCollection)
}

// TrackView records one view of a card by a user and returns the counter
// after the update. A single atomic upsert keyed on (card_id, user_id) both
// creates the document with view_count = 1 and increments an existing one,
// so two concurrent first views can never produce two documents.
func (s *CardViewStore) TrackView(ctx context.Context, cardId string, userId int64) (int64, error) {
	filter := bson.M{"card_id": cardId, "user_id": userId}
	update := bson.M{
		"$inc":         bson.M{"view_count": 1},
		"$set":         bson.M{"viewed_at": time.Now()},
		"$setOnInsert": bson.M{"card_id": cardId, "user_id": userId},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var view models.CardView
	err := s.collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&view)
	if mongo.IsDuplicateKeyError(err) {
		// the unique index rejected a racing upsert for the same pair;
		// the document exists now, so the retry takes the increment path
		err = s.collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&view)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to track card view: %w", err)
	}

	return view.ViewCount, nil
}

// GetUserViewedCardIds returns the distinct ids of cards the user has viewed.
func (s *CardViewStore) GetUserViewedCardIds(ctx context.Context, userId int64) ([]string, error) {
	raw, err := s.collection().Distinct(ctx, "card_id", bson.M{"user_id": userId})
	if err != nil {
		return nil, fmt.Errorf("failed to get viewed card ids: %w", err)
	}

	cardIds := make([]string, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(string); ok {
			cardIds = append(cardIds, id)
		}
	}
	return cardIds, nil
}

// GetUserTotalViewCount sums view_count over all of the user's view documents.
func (s *CardViewStore) GetUserTotalViewCount(ctx context.Context, userId int64) (int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"user_id": userId}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$view_count"},
		}}},
	}

	cursor, err := s.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate total view count: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("failed to decode total view count: %w", err)
	}

	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// GetCardViewCount returns how many times the user viewed one card, 0 when
// the card was never viewed.
func (s *CardViewStore) GetCardViewCount(ctx context.Context, cardId string, userId int64) (int64, error) {
	var view models.CardView
	err := s.collection().FindOne(ctx, bson.M{"card_id": cardId, "user_id": userId},
		options.FindOne().SetProjection(bson.M{"view_count": 1})).Decode(&view)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get card view count: %w", err)
	}
	return view.ViewCount, nil
}

// TopUsersByViews ranks users by the total number of views they performed
// and resolves display names from the users collection.
func (s *CardViewStore) TopUsersByViews(ctx context.Context, limit int64) ([]models.UserViewsRank, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":         "$user_id",
			"total_views": bson.M{"$sum": "$view_count"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
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
			"total_views": 1,
			"name":        bson.M{"$arrayElemAt": bson.A{"$user.name", 0}},
		}}},
	}

	cursor, err := s.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top users by views: %w", err)
	}
	defer cursor.Close(ctx)

	var ranks []models.UserViewsRank
	if err := cursor.All(ctx, &ranks); err != nil {
		return nil, fmt.Errorf("failed to decode top users by views: %w", err)
	}

	for i := range ranks {
		if ranks[i].Name == "" {
			ranks[i].Name = fmt.Sprintf("Пользователь %d", ranks[i].UserId)
		}
	}
	return ranks, nil
}
