package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"review_copilot/internal/adapters/memcache"
	"review_copilot/internal/adapters/observability"
	"review_copilot/internal/app"
	"review_copilot/internal/shared"
	mysqlrepo "review_copilot/internal/storage/mysql"
)

// Bulk loader: reads a JSON array of raw reviews from REVIEWS_FILE and
// ingests them in batches through the same enrichment path the API uses.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("file", cfg.ReviewsFile).
		Int("workers", cfg.Workers).
		Int("batch", cfg.BatchSize).
		Msg("ingestor starting")

	raw, err := os.ReadFile(cfg.ReviewsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read reviews file failed")
	}
	var inputs []app.ReviewInput
	if err := json.Unmarshal(raw, &inputs); err != nil {
		log.Fatal().Err(err).Msg("reviews file is not a JSON array of reviews")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	ing := app.NewIngestionService(mysqlrepo.New(db), memcache.New())
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for start := 0; start < len(inputs); start += cfg.BatchSize {
		end := start + cfg.BatchSize
		if end > len(inputs) {
			end = len(inputs)
		}
		batch := inputs[start:end]

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(batch []app.ReviewInput, offset int) {
			defer wg.Done()
			defer sem.Release(1)

			if _, err := ing.Ingest(ctx, batch); err != nil {
				log.Warn().Int("offset", offset).Int("count", len(batch)).Err(err).Msg("batch ingest failed")
				return
			}
			log.Info().Int("offset", offset).Int("count", len(batch)).Msg("batch ingest ok")
		}(batch, start)
	}

	wg.Wait()
	log.Info().Msg("ingestion completed")
}
