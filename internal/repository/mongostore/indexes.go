package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes backing the author, membership and
// per-tweet lookups. CreateMany is a no-op for indexes that already exist.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	tweetIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "likes", Value: 1}}},
		{Keys: bson.D{{Key: "sharedBy", Value: 1}}},
	}
	if _, err := db.Collection(TweetCollection).Indexes().CreateMany(ctx, tweetIndexes); err != nil {
		return fmt.Errorf("tweet indexes: %w", err)
	}

	commentIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tweet", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
	}
	if _, err := db.Collection(CommentCollection).Indexes().CreateMany(ctx, commentIndexes); err != nil {
		return fmt.Errorf("comment indexes: %w", err)
	}
	return nil
}
