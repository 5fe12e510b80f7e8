package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dobromax/initiative-services/internal/db"
)

type AnalyticsStore struct {
	db *mongo.Database
}

func NewAnalyticsStore(database *mongo.Database) *AnalyticsStore {
	return &AnalyticsStore{db: database}
}

// IncrementCommandUsage bumps the usage counter of a bot command, creating
// the counter document on first use.
func (s *AnalyticsStore) IncrementCommandUsage(ctx context.Context, command string) error {
	_, err := s.db.Collection(db.AnalyticsCollection).UpdateOne(ctx,
		bson.M{"command": command},
		bson.M{"$inc": bson.M{"count": 1}},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to increment command usage: %w", err)
	}
	return nil
}
