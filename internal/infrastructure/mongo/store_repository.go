package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

// StoreRepository implements the public StoreRepository using MongoDB.
type StoreRepository struct {
	collection *mongo.Collection
}

// NewStoreRepository creates a new Mongo-backed store repository.
func NewStoreRepository(db *mongo.Database, collectionName string) *StoreRepository {
	return &StoreRepository{collection: db.Collection(collectionName)}
}

// FindAll returns every store, newest first.
func (r *StoreRepository) FindAll(ctx context.Context) ([]sustainability.Store, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stores := make([]sustainability.Store, 0)
	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		stores = append(stores, mapStoreDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

// FindByID returns a single store by its identifier. Malformed IDs are reported as not found.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (*sustainability.Store, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, sustainability.ErrStoreNotFound
	}
	var doc StoreDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, sustainability.ErrStoreNotFound
		}
		return nil, err
	}
	store := mapStoreDocument(doc)
	return &store, nil
}
