package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/ecorating-services/api/internal/public/application"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

// RatingRepository は評価コレクションへの追記と検索を担う。更新・削除は提供しない。
type RatingRepository struct {
	collection *mongo.Collection
}

// NewRatingRepository binds the rating collection.
func NewRatingRepository(db *mongo.Database, collectionName string) *RatingRepository {
	return &RatingRepository{collection: db.Collection(collectionName)}
}

// Find returns ratings matching filter, newest first.
func (r *RatingRepository) Find(ctx context.Context, filter application.RatingFilter) ([]sustainability.Rating, error) {
	mongoFilter, ok := buildRatingFilter(filter)
	if !ok {
		return []sustainability.Rating{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ratings := make([]sustainability.Rating, 0)
	for cursor.Next(ctx) {
		var doc RatingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ratings = append(ratings, mapRatingDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}

// Create は評価を追加し、採番結果をドメインモデルへ反映する。
func (r *RatingRepository) Create(ctx context.Context, rating *sustainability.Rating) error {
	storeID, err := primitive.ObjectIDFromHex(strings.TrimSpace(rating.StoreID))
	if err != nil {
		return sustainability.ErrStoreNotFound
	}

	doc := RatingDocument{
		ID:            primitive.NewObjectID(),
		StoreID:       storeID,
		StoreName:     rating.StoreName,
		UserEmail:     rating.UserEmail,
		UserName:      rating.UserName,
		Metrics:       newMetricsDocument(rating.Metrics),
		OverallRating: rating.OverallRating,
		Comment:       rating.Comment,
		CreatedAt:     rating.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}

	rating.ID = doc.ID.Hex()
	return nil
}

// buildRatingFilter returns ok=false when the filter can never match, e.g. a malformed store ID.
func buildRatingFilter(filter application.RatingFilter) (bson.M, bool) {
	mongoFilter := bson.M{}
	if storeID := strings.TrimSpace(filter.StoreID); storeID != "" {
		objectID, err := primitive.ObjectIDFromHex(storeID)
		if err != nil {
			return nil, false
		}
		mongoFilter["storeId"] = objectID
	}
	if email := strings.ToLower(strings.TrimSpace(filter.UserEmail)); email != "" {
		mongoFilter["userEmail"] = email
	}
	return mongoFilter, true
}
