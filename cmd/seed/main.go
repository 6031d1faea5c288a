package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	adminapp "github.com/sngm3741/ecorating-services/api/internal/admin/application"
	admindomain "github.com/sngm3741/ecorating-services/api/internal/admin/domain"
	mongodoc "github.com/sngm3741/ecorating-services/api/internal/infrastructure/mongo"
	"github.com/sngm3741/ecorating-services/api/internal/logger"
	publicapp "github.com/sngm3741/ecorating-services/api/internal/public/application"
	publicdomain "github.com/sngm3741/ecorating-services/api/internal/public/domain"
	"github.com/sngm3741/ecorating-services/api/internal/sustainability"
)

type seedOptions struct {
	envName         string
	storeCount      int
	ratingCount     int
	userCount       int
	dropCollections bool
	randomSeed      int64
}

type collections struct {
	stores  string
	ratings string
}

type sampleStore struct {
	Name        string
	Location    string
	Category    string
	Description string
}

var sampleStores = []sampleStore{
	{"Green Grocer", "Portland, OR", "Grocery", "Neighbourhood grocer stocking regional produce."},
	{"Thread Lab", "Austin, TX", "Fashion", "Upcycled and organic-cotton apparel."},
	{"Circuit Renew", "San Jose, CA", "Electronics", "Refurbished laptops and phones with repair service."},
	{"Root & Leaf", "Denver, CO", "Home & Garden", "Native plants, compost and rain barrels."},
	{"Harvest Table", "Seattle, WA", "Restaurant", "Farm-to-table kitchen with a zero-waste pledge."},
	{"Pure Bloom", "Brooklyn, NY", "Beauty & Personal Care", "Refill station for soaps and cosmetics."},
	{"Trail Kind", "Boulder, CO", "Sports & Outdoor", "Gear rental and secondhand outdoor equipment."},
	{"Market Basket Co-op", "Madison, WI", "Grocery", "Member-owned co-op with bulk bins."},
	{"Second Stitch", "Chicago, IL", "Fashion", "Consignment boutique and tailoring."},
	{"Solar Supply", "Phoenix, AZ", "Electronics", "Home solar kits and efficient appliances."},
	{"Bean & Barrel", "Burlington, VT", "Restaurant", "Café roasting fair-trade beans in-house."},
	{"Fern Hardware", "Minneapolis, MN", "Home & Garden", "Hardware store with a tool library."},
}

var sampleComments = []string{
	"Loved the refill options.",
	"Staff explained their sourcing in detail.",
	"Packaging could be reduced further.",
	"Great community events every month.",
	"",
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts seedOptions

	root := &cobra.Command{
		Use:   "seed",
		Short: "MongoDB にサンプル店舗とレビューを投入する",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(opts.envName, func(ctx context.Context, log *zap.SugaredLogger, db *mongo.Database, cols collections) error {
				return runSeed(ctx, log, db, cols, opts)
			})
		},
	}
	root.PersistentFlags().StringVar(&opts.envName, "env", "local", "env ディレクトリ内の env ファイル名 (例: local, staging)")
	root.Flags().IntVar(&opts.storeCount, "stores", len(sampleStores), "生成する店舗数")
	root.Flags().IntVar(&opts.ratingCount, "ratings", 60, "生成するレビュー総数")
	root.Flags().IntVar(&opts.userCount, "users", 8, "レビュー投稿ユーザー数")
	root.Flags().BoolVar(&opts.dropCollections, "drop", true, "既存コレクションを削除してから投入する")
	root.Flags().Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "乱数シード（再現用）")

	root.AddCommand(&cobra.Command{
		Use:   "indexes",
		Short: "インデックスのみを作成する",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(opts.envName, func(ctx context.Context, log *zap.SugaredLogger, db *mongo.Database, cols collections) error {
				if err := mongodoc.EnsureIndexes(ctx, db, cols.stores, cols.ratings); err != nil {
					return err
				}
				log.Infow("インデックスを作成しました", "stores", cols.stores, "ratings", cols.ratings)
				return nil
			})
		},
	})

	return root
}

// withDatabase は env ファイルを読み込み、Mongo 接続を用意して fn を実行する。
func withDatabase(envName string, fn func(context.Context, *zap.SugaredLogger, *mongo.Database, collections) error) error {
	loadEnvFiles(envName)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "ecorating")
	v.SetDefault("STORE_COLLECTION", "stores")
	v.SetDefault("RATING_COLLECTION", "ratings")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	base, err := logger.New(v.GetString("LOG_LEVEL"), v.GetString("LOG_FORMAT"))
	if err != nil {
		return err
	}
	log := logger.Named(base, "seed")
	defer func() { _ = base.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	mongoURI := v.GetString("MONGO_URI")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("MongoDB 接続に失敗しました: %w", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	cols := collections{
		stores:  v.GetString("STORE_COLLECTION"),
		ratings: v.GetString("RATING_COLLECTION"),
	}
	dbName := v.GetString("MONGO_DB")
	log.Infow("Mongo", "uri", mongoURI, "db", dbName, "env", envName)
	return fn(ctx, log, client.Database(dbName), cols)
}

// loadEnvFiles は存在する env ファイルだけを読み込む。既に設定済みの環境変数は上書きしない。
func loadEnvFiles(envName string) {
	base := filepath.Clean(filepath.Join("..", "env"))
	candidates := []string{
		".env",
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
	}
	for _, file := range candidates {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		_ = godotenv.Load(file)
	}
}

func runSeed(ctx context.Context, log *zap.SugaredLogger, db *mongo.Database, cols collections, opts seedOptions) error {
	if opts.storeCount <= 0 {
		return errors.New("stores は 1 以上を指定してください")
	}
	if opts.userCount <= 0 {
		opts.userCount = 1
	}

	if opts.dropCollections {
		for _, name := range []string{cols.stores, cols.ratings} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				return fmt.Errorf("コレクション %s の削除に失敗しました: %w", name, err)
			}
		}
		log.Infow("既存コレクションを削除しました")
	}

	if err := mongodoc.EnsureIndexes(ctx, db, cols.stores, cols.ratings); err != nil {
		return fmt.Errorf("インデックス作成に失敗しました: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))

	storeService := adminapp.NewStoreService(mongodoc.NewAdminStoreRepository(db, cols.stores), nil, log)
	created := make([]string, 0, opts.storeCount)
	for _, cmd := range generateStores(rng, opts.storeCount) {
		store, err := storeService.Create(ctx, cmd)
		if errors.Is(err, admindomain.ErrStoreExists) {
			log.Infow("既存店舗のためスキップ", "name", cmd.Name)
			continue
		}
		if err != nil {
			return fmt.Errorf("店舗データの挿入に失敗しました: %w", err)
		}
		created = append(created, store.ID)
	}
	if len(created) == 0 {
		return errors.New("店舗が 1 件も登録されませんでした")
	}

	storeRepo := mongodoc.NewStoreRepository(db, cols.stores)
	ratingRepo := mongodoc.NewRatingRepository(db, cols.ratings)
	ratings := publicapp.NewRatingCommandService(storeRepo, ratingRepo, nil, log)
	submitted := 0
	for i := 0; i < opts.ratingCount; i++ {
		cmd, err := generateRating(rng, created[i%len(created)], opts.userCount)
		if err != nil {
			return err
		}
		if _, err := ratings.Submit(ctx, cmd); err != nil {
			return fmt.Errorf("レビューの挿入に失敗しました: %w", err)
		}
		submitted++
	}

	log.Infow("Seed 完了", "stores", len(created), "ratings", submitted, "seed", opts.randomSeed)
	return nil
}

func generateStores(rng *rand.Rand, count int) []adminapp.UpsertStoreCommand {
	cmds := make([]adminapp.UpsertStoreCommand, 0, count)
	for i := 0; i < count; i++ {
		sample := sampleStores[i%len(sampleStores)]
		name := sample.Name
		if round := i / len(sampleStores); round > 0 {
			name = fmt.Sprintf("%s #%d", sample.Name, round+1)
		}
		cmds = append(cmds, adminapp.UpsertStoreCommand{
			Name:        name,
			Location:    sample.Location,
			Category:    sample.Category,
			Description: sample.Description,
			Metrics: sustainability.Metrics{
				EnergyEfficiency:    randomScore(rng),
				WasteManagement:     randomScore(rng),
				ProductSourcing:     randomScore(rng),
				CarbonFootprint:     randomScore(rng),
				CommunityEngagement: randomScore(rng),
			},
		})
	}
	return cmds
}

// randomScore は 1.5〜5.0 の範囲で 0.1 刻みのスコアを返す。
func randomScore(rng *rand.Rand) float64 {
	return math.Round((1.5+rng.Float64()*3.5)*10) / 10
}

func generateRating(rng *rand.Rand, storeID string, users int) (publicapp.SubmitRatingCommand, error) {
	n := rng.Intn(users) + 1
	rater, err := publicdomain.NewRater(fmt.Sprintf("seed-user-%d", n), fmt.Sprintf("user%d@example.com", n), fmt.Sprintf("User %d", n))
	if err != nil {
		return publicapp.SubmitRatingCommand{}, err
	}
	star := func() int { return rng.Intn(5) + 1 }
	return publicapp.SubmitRatingCommand{
		StoreID:             storeID,
		Rater:               rater,
		EnergyEfficiency:    star(),
		WasteManagement:     star(),
		ProductSourcing:     star(),
		CarbonFootprint:     star(),
		CommunityEngagement: star(),
		Comment:             strings.TrimSpace(sampleComments[rng.Intn(len(sampleComments))]),
	}, nil
}
