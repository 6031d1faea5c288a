package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, storeCollection, ratingCollection string) error {
	storeIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_store_created"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_store_category"),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "location", Value: 1}},
			Options: options.Index().SetName("uniq_store_name_location").SetUnique(true),
		},
	}
	if _, err := db.Collection(storeCollection).Indexes().CreateMany(ctx, storeIndexes); err != nil {
		return err
	}

	ratingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "storeId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_rating_store_created"),
		},
		{
			Keys:    bson.D{{Key: "userEmail", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_rating_user_created"),
		},
	}
	if _, err := db.Collection(ratingCollection).Indexes().CreateMany(ctx, ratingIndexes); err != nil {
		return err
	}
	return nil
}
