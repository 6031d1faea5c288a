package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

// MetricsDocument は 5 つのサステナビリティ指標の埋め込み構造を表す。
type MetricsDocument struct {
	EnergyEfficiency    float64 `bson:"energyEfficiency"`
	WasteManagement     float64 `bson:"wasteManagement"`
	ProductSourcing     float64 `bson:"productSourcing"`
	CarbonFootprint     float64 `bson:"carbonFootprint"`
	CommunityEngagement float64 `bson:"communityEngagement"`
}

// StoreDocument は MongoDB 上での店舗スキーマを Go 構造体として表現したもの。
type StoreDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Location    string             `bson:"location,omitempty"`
	Category    string             `bson:"category"`
	Description string             `bson:"description,omitempty"`
	ImageURL    string             `bson:"imageURL,omitempty"`
	Metrics     MetricsDocument    `bson:"metrics"`
	CreatedAt   *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty"`
}

// RatingDocument はコミュニティ評価 1 件分のスキーマ。作成後は更新しない。
type RatingDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	StoreID       primitive.ObjectID `bson:"storeId"`
	StoreName     string             `bson:"storeName"`
	UserEmail     string             `bson:"userEmail"`
	UserName      string             `bson:"userName,omitempty"`
	Metrics       MetricsDocument    `bson:"metrics"`
	OverallRating float64            `bson:"overallRating"`
	Comment       string             `bson:"comment,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func newMetricsDocument(m sustainability.Metrics) MetricsDocument {
	return MetricsDocument{
		EnergyEfficiency:    m.EnergyEfficiency,
		WasteManagement:     m.WasteManagement,
		ProductSourcing:     m.ProductSourcing,
		CarbonFootprint:     m.CarbonFootprint,
		CommunityEngagement: m.CommunityEngagement,
	}
}

func (d MetricsDocument) values() sustainability.Metrics {
	return sustainability.Metrics{
		EnergyEfficiency:    d.EnergyEfficiency,
		WasteManagement:     d.WasteManagement,
		ProductSourcing:     d.ProductSourcing,
		CarbonFootprint:     d.CarbonFootprint,
		CommunityEngagement: d.CommunityEngagement,
	}
}

func mapStoreDocument(doc StoreDocument) sustainability.Store {
	store := sustainability.Store{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Location:    doc.Location,
		Category:    doc.Category,
		Description: doc.Description,
		ImageURL:    doc.ImageURL,
		Metrics:     doc.Metrics.values(),
	}
	if doc.CreatedAt != nil {
		store.CreatedAt = *doc.CreatedAt
	}
	if doc.UpdatedAt != nil {
		store.UpdatedAt = *doc.UpdatedAt
	}
	return store
}

func mapRatingDocument(doc RatingDocument) sustainability.Rating {
	return sustainability.Rating{
		ID:            doc.ID.Hex(),
		StoreID:       doc.StoreID.Hex(),
		StoreName:     doc.StoreName,
		UserEmail:     doc.UserEmail,
		UserName:      doc.UserName,
		Metrics:       doc.Metrics.values(),
		OverallRating: doc.OverallRating,
		Comment:       doc.Comment,
		CreatedAt:     doc.CreatedAt,
	}
}
