package main

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gammazero/workerpool"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/spentlog/importer/pkg/rates"
	"github.com/spentlog/importer/pkg/repo"
)

const (
	defaultNbuURL   = "https://bank.gov.ua"
	defaultPoolSize = 5
)

// ratesync backfills the exchange_rates table with official NBU daily rates.
// Re-running over the same window is safe, rows are upserted on
// (currency, effective_date).
func main() {
	days := 1
	if val, ok := os.LookupEnv("SYNC_DAYS"); ok {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid SYNC_DAYS")
		}
		days = parsed
	}

	currencies := []string{"USD", "EUR", "PLN", "GBP"}
	if val, ok := os.LookupEnv("SYNC_CURRENCIES"); ok {
		currencies = strings.Split(val, ",")
	}

	nbuURL := defaultNbuURL
	if val, ok := os.LookupEnv("NBU_API_ENDPOINT"); ok {
		nbuURL = val
	}

	db, err := gorm.Open(postgres.Open(os.Getenv("POSTGRES_CONNECTION_STRING")), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get postgres")
	}

	store := repo.NewPostgres(db)
	client := rates.NewNbuClient(nbuURL, req.DefaultClient())

	if err = syncRange(context.Background(), client, store, days, currencies); err != nil {
		log.Fatal().Err(err).Msg("failed to sync rates")
	}

	log.Info().Int("days", days).Msg("rates synced")
}

func syncRange(
	ctx context.Context,
	client *rates.NbuClient,
	store *repo.Postgres,
	days int,
	currencies []string,
) error {
	pool := workerpool.New(defaultPoolSize)

	var mu sync.Mutex
	var finalErr error

	today := time.Now().UTC().Truncate(24 * time.Hour)

	for offset := 0; offset < days; offset++ {
		date := today.AddDate(0, 0, -offset)

		pool.Submit(func() {
			fetched, fetchErr := client.FetchRates(ctx, date, currencies)
			if fetchErr == nil {
				fetchErr = store.SaveRates(ctx, fetched)
			}

			if fetchErr != nil {
				mu.Lock()
				finalErr = errors.Join(finalErr, fetchErr)
				mu.Unlock()
			}
		})
	}

	pool.StopWait()

	return finalErr
}
