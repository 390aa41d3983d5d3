package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	OpenAIKey    string
	OpenAIBase   string
	OpenAIModel  string
	GeneratorRPS int
	Workers      int
	BatchSize    int
	ReviewsFile  string
	CacheTTL     time.Duration
}

func Load() Config {
	_ = godotenv.Load() // .env is optional

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", ""),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		OpenAIKey:    env("OPENAI_API_KEY", ""),
		OpenAIBase:   env("OPENAI_BASE_URL", ""),
		OpenAIModel:  env("OPENAI_MODEL", ""),
		GeneratorRPS: atoi("GENERATOR_RPS", 5),
		Workers:      atoi("INGEST_WORKERS", 8),
		BatchSize:    atoi("INGEST_BATCH_SIZE", 100),
		ReviewsFile:  env("REVIEWS_FILE", "reviews.json"),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.OpenAIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
