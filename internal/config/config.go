package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr            string
	MongoURI        string
	MongoDatabase   string
	StateCollection string
	Timeout         time.Duration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	TipEndpoint     string
	TipTimeout      time.Duration
	TipCacheTTL     time.Duration
	AdminSecret     string
	EditTokenSecret []byte
	EditTokenIssuer string
	EditTokenTTL    time.Duration
	AllowedOrigins  []string
	ServerLog       *log.Logger
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	logger := log.New(os.Stdout, "[yoshino-site-api] ", log.LstdFlags|log.Lshortfile)

	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	tipTimeout := 5 * time.Second
	if raw := strings.TrimSpace(os.Getenv("TIP_GATEWAY_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			tipTimeout = parsed
		}
	}

	tipCacheTTL := time.Hour
	if raw := strings.TrimSpace(os.Getenv("TIP_CACHE_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			tipCacheTTL = parsed
		}
	}

	editTokenTTL := time.Hour
	if raw := strings.TrimSpace(os.Getenv("EDIT_TOKEN_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			editTokenTTL = parsed
		}
	}

	// 管理コードは店頭での誤操作を防ぐための簡易ゲートであり、本格的な認証基盤ではない。
	adminSecret := strings.TrimSpace(os.Getenv("ADMIN_SECRET"))
	if adminSecret == "" {
		adminSecret = "yoshino777"
	}

	editTokenSecret := strings.TrimSpace(os.Getenv("EDIT_TOKEN_SECRET"))
	if editTokenSecret == "" {
		logger.Printf("EDIT_TOKEN_SECRET が未設定のため ADMIN_SECRET を編集トークン鍵として使用します")
		editTokenSecret = adminSecret
	}

	redisDB := 0
	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			redisDB = parsed
		}
	}

	cfg := Config{
		Addr:            envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:        envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:   envOrDefault("MONGO_DB", "yoshino-site"),
		StateCollection: envOrDefault("STATE_COLLECTION", "site_state"),
		Timeout:         timeout,
		RedisAddr:       strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		TipEndpoint:     envOrDefault("TIP_GATEWAY_URL", "http://genai-gateway:3000"),
		TipTimeout:      tipTimeout,
		TipCacheTTL:     tipCacheTTL,
		AdminSecret:     adminSecret,
		EditTokenSecret: []byte(editTokenSecret),
		EditTokenIssuer: envOrDefault("EDIT_TOKEN_ISSUER", "yoshino-site-api"),
		EditTokenTTL:    editTokenTTL,
		AllowedOrigins:  parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		ServerLog:       logger,
	}

	if cfg.RedisAddr == "" {
		cfg.ServerLog.Printf("REDIS_ADDR が未設定のためヒントキャッシュは無効です")
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
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
