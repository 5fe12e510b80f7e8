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

type UserStore struct {
	db *mongo.Database
}

func NewUserStore(database *mongo.Database) *UserStore {
	return &UserStore{db: database}
}

func (s *UserStore) collection() *mongo.Collection {
	return s.db.Collection(db.UsersCollection)
}

// UpsertUser inserts the user once. A repeat call for the same user_id is a
// no-op, name and addedAt are never overwritten.
func (s *UserStore) UpsertUser(ctx context.Context, userId int64, name string) error {
	_, err := s.collection().UpdateOne(ctx,
		bson.M{"user_id": userId},
		bson.M{"$setOnInsert": bson.M{
			"name":          name,
			"addedAt":       time.Now(),
			"lastViewCount": int64(0),
		}},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, userId int64) (*models.User, error) {
	var user models.User
	err := s.collection().FindOne(ctx, bson.M{"user_id": userId}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// UpdateMotivationState persists the notifier bookkeeping after a send/edit:
// the view count the user was last told about and the message it lives in.
func (s *UserStore) UpdateMotivationState(ctx context.Context, userId int64, lastViewCount int64, messageId string, messageDate time.Time) error {
	_, err := s.collection().UpdateOne(ctx,
		bson.M{"user_id": userId},
		bson.M{"$set": bson.M{
			"lastViewCount":               lastViewCount,
			"lastMotivationalMessageId":   messageId,
			"lastMotivationalMessageDate": messageDate,
		}},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to update motivation state: %w", err)
	}
	return nil
}
