package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "review_copilot/internal/adapters/http_server"
	"review_copilot/internal/adapters/memcache"
	"review_copilot/internal/adapters/observability"
	redisad "review_copilot/internal/adapters/redis"
	"review_copilot/internal/adapters/replygen"
	"review_copilot/internal/app"
	"review_copilot/internal/domain"
	"review_copilot/internal/shared"
	mysqlrepo "review_copilot/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// fallback cache: in-process by default, shared redis when configured
	var cache domain.Cache = memcache.New()
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis fallback cache")
	}

	gen, err := replygen.New(cfg.OpenAIKey, cfg.OpenAIBase, cfg.OpenAIModel, cfg.GeneratorRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize reply generator")
	}

	// deps
	repo := mysqlrepo.New(db)
	ing := app.NewIngestionService(repo, cache)
	q := app.NewQueryService(repo, cache)
	replies := app.NewReplyService(repo, gen, q, cache)
	similar := app.NewSimilarityService(q)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Ingest: ing, Q: q, Replies: replies, Similar: similar})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
