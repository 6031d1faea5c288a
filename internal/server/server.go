package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	adminapp "github.com/sngm3741/ecorating-services/api/internal/admin/application"
	"github.com/sngm3741/ecorating-services/api/internal/config"
	"github.com/sngm3741/ecorating-services/api/internal/infrastructure/cache"
	mongodoc "github.com/sngm3741/ecorating-services/api/internal/infrastructure/mongo"
	"github.com/sngm3741/ecorating-services/api/internal/infrastructure/report"
	adminhttp "github.com/sngm3741/ecorating-services/api/internal/interfaces/http/admin"
	publichttp "github.com/sngm3741/ecorating-services/api/internal/interfaces/http/public"
	"github.com/sngm3741/ecorating-services/api/internal/metrics"
	publicapp "github.com/sngm3741/ecorating-services/api/internal/public/application"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Admin の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         *zap.SugaredLogger
	client         *mongo.Client
	database       *mongo.Database
	pings          *mongo.Collection
	redis          *redis.Client
	location       *time.Location
	jwtConfigs     []config.JWTConfig
	jwtAudience    string
	adminEmails    map[string]struct{}
	addr           string
	allowedOrigins []string
	metricsEnabled bool

	storeQueryService    publicapp.StoreQueryService
	ratingQueryService   publicapp.RatingQueryService
	ratingCommandService publicapp.RatingCommandService
	explanationService   publicapp.ExplanationService
	adminStoreService    adminapp.StoreService
	dashboardService     adminapp.DashboardService
}

// Dependencies are the optional external services created by cmd/api.
// A nil Redis disables the dashboard cache; a nil Generator makes explanations fall back.
type Dependencies struct {
	Redis     *redis.Client
	Generator publicapp.TextGenerator
}

// Run はHTTPサーバーを起動し、シグナル受信まで待機する。
func (s *Server) Run() error {
	if err := s.ensureSamplePing(context.Background()); err != nil {
		s.logger.Warnw("サンプル ping ドキュメントの用意に失敗しました", "error", err)
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Infow("HTTP サーバー起動", "addr", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// routes は Public/Admin のルーティングとミドルウェアを組み立てる。
func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(s.requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}).Handler)
	if s.metricsEnabled {
		router.Use(metrics.Instrument)
		router.Handle("/metrics", metrics.Handler())
	}

	router.Get("/healthz", s.healthHandler())
	router.Get("/ping", s.pingHandler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:         s.logger.Named("public"),
		StoreQueries:   s.storeQueryService,
		RatingQueries:  s.ratingQueryService,
		RatingCommands: s.ratingCommandService,
		Explanations:   s.explanationService,
	})
	publicHandler.Register(router, s.authMiddleware)

	adminHandler := adminhttp.NewHandler(adminhttp.Config{
		Logger:           s.logger.Named("admin"),
		StoreService:     s.adminStoreService,
		DashboardService: s.dashboardService,
	})
	router.Route("/admin", func(r chi.Router) {
		r.Use(s.authMiddleware, s.adminOnly)
		adminHandler.Register(r)
	})

	return router
}

// requestLogger は chi の middleware.Logger 相当のアクセスログを zap で出力する。
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"requestId", middleware.GetReqID(r.Context()),
		)
	})
}

// shutdown は MongoDB / Redis クライアントをタイムアウト付きで切断する。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Warnw("MongoDB 切断時にエラー", "error", err)
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warnw("Redis 切断時にエラー", "error", err)
		}
	}
	_ = s.logger.Sync()
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Errorw("サーバーが異常終了", "error", err)
			runErr = err
		}
	case sig := <-sigChan:
		srv.logger.Infow("シグナルを受信。サーバー停止処理を開始します。", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Warnw("サーバー停止時にエラー", "error", err)
		}
	}

	srv.shutdown(context.Background())
	return runErr
}

// New は Config と Mongo クライアントを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
func New(cfg config.Config, client *mongo.Client, deps Dependencies) *Server {
	logger := cfg.ServerLog
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
		logger.Warnw("タイムゾーンの読み込みに失敗、UTC を使用します", "timezone", cfg.Timezone, "error", err)
	}

	srv := &Server{
		logger:         logger,
		client:         client,
		database:       client.Database(cfg.MongoDatabase),
		redis:          deps.Redis,
		location:       loc,
		jwtConfigs:     append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience:    cfg.JWTAudience,
		adminEmails:    emailSet(cfg.AdminEmails),
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		metricsEnabled: cfg.MetricsEnabled,
	}
	srv.pings = srv.database.Collection(cfg.PingCollection)

	// nil の *DashboardCache をインターフェースに入れないよう、設定時のみ代入する。
	var (
		dashboardCache adminapp.DashboardCache
		invalidator    publicapp.CacheInvalidator
	)
	if deps.Redis != nil {
		c := cache.NewDashboardCache(deps.Redis, cfg.DashboardCacheTTL)
		dashboardCache = c
		invalidator = c
	}

	storeRepo := mongodoc.NewStoreRepository(srv.database, cfg.StoreCollection)
	ratingRepo := mongodoc.NewRatingRepository(srv.database, cfg.RatingCollection)
	srv.storeQueryService = publicapp.NewStoreQueryService(storeRepo, ratingRepo)
	srv.ratingQueryService = publicapp.NewRatingQueryService(ratingRepo)
	srv.ratingCommandService = publicapp.NewRatingCommandService(storeRepo, ratingRepo, invalidator, logger.Named("ratings"))
	srv.explanationService = publicapp.NewExplanationService(srv.storeQueryService, deps.Generator, cfg.ExplanationTimeout, logger.Named("explanation"))

	adminStoreRepo := mongodoc.NewAdminStoreRepository(srv.database, cfg.StoreCollection)
	srv.adminStoreService = adminapp.NewStoreService(adminStoreRepo, dashboardCache, logger.Named("admin-stores"))
	srv.dashboardService = adminapp.NewDashboardService(
		mongodoc.NewSnapshotSource(storeRepo, ratingRepo),
		dashboardCache,
		report.NewWorkbookRenderer(),
		logger.Named("dashboard"),
	)

	return srv
}
