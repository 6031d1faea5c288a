package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sngm3741/ecorating-services/api/internal/logger"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr               string
	MongoURI           string
	MongoDatabase      string
	PingCollection     string
	StoreCollection    string
	RatingCollection   string
	Timeout            time.Duration
	Timezone           string
	LogLevel           string
	LogFormat          string
	ServerLog          *zap.SugaredLogger
	JWTConfigs         []JWTConfig
	JWTAudience        string
	AdminEmails        []string
	AllowedOrigins     []string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	DashboardCacheTTL  time.Duration
	GenAIAPIKey        string
	GenAIModel         string
	ExplanationTimeout time.Duration
	MetricsEnabled     bool
}

// ErrNoJWTSecret is returned when no token issuer is configured.
var ErrNoJWTSecret = errors.New("JWT secrets not configured. Set AUTH_JWT_SECRET")

// Load reads environment variables and returns a fully populated Config.
// .env ファイルの読み込みは cmd 側で godotenv により済ませておく。
func Load() (Config, error) {
	return load(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("MONGO_URI", "mongodb://mongo:27017")
	v.SetDefault("MONGO_DB", "ecorating")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("PING_COLLECTION", "pings")
	v.SetDefault("STORE_COLLECTION", "stores")
	v.SetDefault("RATING_COLLECTION", "ratings")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("AUTH_JWT_ISSUER", "ecorating-auth")
	v.SetDefault("API_ALLOWED_ORIGINS", "*")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")
	v.SetDefault("GENAI_MODEL", "gemini-2.5-flash")
	v.SetDefault("EXPLANATION_TIMEOUT", "20s")
	v.SetDefault("METRICS_ENABLED", true)
	return v
}

func load(v *viper.Viper) (Config, error) {
	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(v.GetString("AUTH_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: strings.TrimSpace(v.GetString("AUTH_JWT_ISSUER")),
			Secret: []byte(secret),
		})
	}
	if secret := strings.TrimSpace(v.GetString("AUTH_SECONDARY_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: strings.TrimSpace(v.GetString("AUTH_SECONDARY_JWT_ISSUER")),
			Secret: []byte(secret),
		})
	}
	if len(jwtConfigs) == 0 {
		return Config{}, ErrNoJWTSecret
	}

	base, err := logger.New(v.GetString("LOG_LEVEL"), v.GetString("LOG_FORMAT"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:               v.GetString("HTTP_ADDR"),
		MongoURI:           v.GetString("MONGO_URI"),
		MongoDatabase:      v.GetString("MONGO_DB"),
		PingCollection:     v.GetString("PING_COLLECTION"),
		StoreCollection:    v.GetString("STORE_COLLECTION"),
		RatingCollection:   v.GetString("RATING_COLLECTION"),
		Timeout:            durationOr(v, "MONGO_CONNECT_TIMEOUT", 10*time.Second),
		Timezone:           v.GetString("TIMEZONE"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		ServerLog:          logger.Named(base, "ecorating-api"),
		JWTConfigs:         jwtConfigs,
		JWTAudience:        strings.TrimSpace(v.GetString("AUTH_JWT_AUDIENCE")),
		AdminEmails:        parseList(v.GetString("ADMIN_EMAILS"), nil),
		AllowedOrigins:     parseList(v.GetString("API_ALLOWED_ORIGINS"), []string{"*"}),
		RedisAddr:          strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		DashboardCacheTTL:  durationOr(v, "DASHBOARD_CACHE_TTL", 5*time.Minute),
		GenAIAPIKey:        strings.TrimSpace(v.GetString("GENAI_API_KEY")),
		GenAIModel:         strings.TrimSpace(v.GetString("GENAI_MODEL")),
		ExplanationTimeout: durationOr(v, "EXPLANATION_TIMEOUT", 20*time.Second),
		MetricsEnabled:     v.GetBool("METRICS_ENABLED"),
	}

	cfg.ServerLog.Infow("loaded config",
		"addr", cfg.Addr,
		"mongoDB", cfg.MongoDatabase,
		"redis", cfg.RedisAddr != "",
		"genai", cfg.GenAIAPIKey != "",
		"issuers", len(cfg.JWTConfigs),
	)

	return cfg, nil
}

// durationOr parses a duration setting, falling back when it is malformed.
func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseList(raw string, fallback []string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
