package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/ecorating-services/api/internal/admin/application"
	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

const (
	defaultAdminStoreLimit = 50
	maxAdminStoreLimit     = 200
	maxAdminStorePage      = 10000
)

// AdminStoreRepository は管理者向け Store 集約の Mongo 実装。
type AdminStoreRepository struct {
	collection *mongo.Collection
}

// NewAdminStoreRepository は MongoDB コレクションを束縛した AdminStoreRepository を生成する。
func NewAdminStoreRepository(db *mongo.Database, collection string) *AdminStoreRepository {
	return &AdminStoreRepository{collection: db.Collection(collection)}
}

// Find は曖昧検索とカテゴリ絞り込みをサポートした管理者用の店舗一覧を返す。
func (r *AdminStoreRepository) Find(ctx context.Context, filter application.StoreFilter, paging application.Paging) ([]admindomain.Store, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = paging.Limit
	}
	if limit <= 0 {
		limit = defaultAdminStoreLimit
	}
	if limit > maxAdminStoreLimit {
		limit = maxAdminStoreLimit
	}

	opts := options.Find().SetSort(adminStoreSort(paging.Sort)).SetLimit(int64(limit))
	if skip := adminStoreSkip(paging.Page, limit); skip > 0 {
		opts.SetSkip(skip)
	}

	cursor, err := r.collection.Find(ctx, buildAdminStoreFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stores := make([]admindomain.Store, 0)
	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		store, err := mapAdminStore(doc)
		if err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

// FindByID は 16 進 ObjectID を受け取り単一店舗を VO 化して返す。
func (r *AdminStoreRepository) FindByID(ctx context.Context, id string) (*admindomain.Store, error) {
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
	store, err := mapAdminStore(doc)
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// Create は店舗名+所在地の重複チェックを行った上で Store を新規作成する。
func (r *AdminStoreRepository) Create(ctx context.Context, store *admindomain.Store) error {
	filter := bson.M{
		"name":     store.Name.String(),
		"location": store.Location.String(),
	}
	if err := r.collection.FindOne(ctx, filter).Err(); err == nil {
		return admindomain.ErrStoreExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	doc, err := buildStoreDocument(store)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return admindomain.ErrStoreExists
		}
		return err
	}
	store.ID = doc.ID.Hex()
	return nil
}

// Update は Store の ObjectID を用いて差し替えを行う。createdAt は保持する。
func (r *AdminStoreRepository) Update(ctx context.Context, store *admindomain.Store) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(store.ID))
	if err != nil {
		return sustainability.ErrStoreNotFound
	}
	doc, err := buildStoreDocument(store)
	if err != nil {
		return err
	}
	update := bson.M{
		"name":        doc.Name,
		"location":    doc.Location,
		"category":    doc.Category,
		"description": doc.Description,
		"imageURL":    doc.ImageURL,
		"metrics":     doc.Metrics,
		"updatedAt":   doc.UpdatedAt,
	}
	result, err := r.collection.UpdateByID(ctx, objectID, bson.M{"$set": update})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return admindomain.ErrStoreExists
		}
		return err
	}
	if result.MatchedCount == 0 {
		return sustainability.ErrStoreNotFound
	}
	return nil
}

func buildAdminStoreFilter(filter application.StoreFilter) bson.M {
	clauses := make([]bson.M, 0, 2)
	if category := strings.TrimSpace(filter.Category); category != "" && category != sustainability.AllCategories {
		clauses = append(clauses, bson.M{"category": category})
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{"name": regex},
			bson.M{"location": regex},
		}})
	}
	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

// adminStoreSkip はページ番号を上限で丸めてから読み飛ばし件数を求める。
func adminStoreSkip(page, limit int) int64 {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page > maxAdminStorePage {
		page = maxAdminStorePage
	}
	return int64(page-1) * int64(limit)
}

func adminStoreSort(key string) bson.D {
	switch key {
	case "name":
		return bson.D{{Key: "name", Value: 1}}
	case "updated":
		return bson.D{{Key: "updatedAt", Value: -1}, {Key: "name", Value: 1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}, {Key: "name", Value: 1}}
	}
}

// mapAdminStore は Mongo ドキュメントを Admin ドメインの Store に変換する。
func mapAdminStore(doc StoreDocument) (admindomain.Store, error) {
	name, err := admindomain.NewStoreName(doc.Name)
	if err != nil {
		return admindomain.Store{}, err
	}
	location, err := admindomain.NewLocation(doc.Location)
	if err != nil {
		return admindomain.Store{}, err
	}
	category, err := admindomain.NewCategory(doc.Category)
	if err != nil {
		return admindomain.Store{}, err
	}
	description, err := admindomain.NewDescription(doc.Description)
	if err != nil {
		return admindomain.Store{}, err
	}
	imageURL, err := admindomain.NewURL(doc.ImageURL)
	if err != nil {
		return admindomain.Store{}, err
	}
	metrics, err := admindomain.NewStoreMetrics(doc.Metrics.values())
	if err != nil {
		return admindomain.Store{}, err
	}

	store := admindomain.Store{
		ID:          doc.ID.Hex(),
		Name:        name,
		Location:    location,
		Category:    category,
		Description: description,
		ImageURL:    imageURL,
		Metrics:     metrics,
	}
	if doc.CreatedAt != nil {
		store.CreatedAt = *doc.CreatedAt
	}
	if doc.UpdatedAt != nil {
		store.UpdatedAt = *doc.UpdatedAt
	}
	return store, nil
}

// buildStoreDocument は Store の値オブジェクト群を Mongo 用ドキュメントに展開する。
func buildStoreDocument(store *admindomain.Store) (StoreDocument, error) {
	if store == nil {
		return StoreDocument{}, fmt.Errorf("store payload is nil")
	}
	createdAt := store.CreatedAt.UTC()
	updatedAt := store.UpdatedAt.UTC()
	return StoreDocument{
		Name:        store.Name.String(),
		Location:    store.Location.String(),
		Category:    store.Category.String(),
		Description: store.Description.String(),
		ImageURL:    store.ImageURL.String(),
		Metrics:     newMetricsDocument(store.Metrics.Values()),
		CreatedAt:   &createdAt,
		UpdatedAt:   &updatedAt,
	}, nil
}
