package main

import (
	"net/http"
	"os"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/spentlog/importer/pkg/importer"
	"github.com/spentlog/importer/pkg/parser"
	"github.com/spentlog/importer/pkg/rates"
	"github.com/spentlog/importer/pkg/repo"
)

var apiKey = os.Getenv("API_KEY")

func main() {
	db, err := gorm.Open(postgres.Open(os.Getenv("POSTGRES_CONNECTION_STRING")), &gorm.Config{
		TranslateError: true, // duplicate key conflicts surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get postgres")
	}

	m := gormigrate.New(db, &gormigrate.Options{
		TableName:                 "gorm_migrations",
		IDColumnName:              "id",
		IDColumnSize:              255,
		UseTransaction:            false,
		ValidateUnknownMigrations: false,
	}, getMigrations())

	log.Info().Msg("[Db] start migrations")

	if err = m.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	store := repo.NewPostgres(db)

	importSvc := importer.NewService(&importer.Config{
		Parsers: parser.DefaultRegistry(),
		Rules:   store,
		Rates:   rates.NewResolver(store),
		Writer:  store,
	})

	r := mux.NewRouter()
	r.Handle("/api/import/{provider}", NewHandler(importSvc)).Methods(http.MethodPost)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("LISTEN_PORT"); ok {
		listenAddr = ":" + val
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         listenAddr,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}

	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}
