// Savora - Restaurant Discovery and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/savora

// Command server runs the Savora HTTP API.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/savora/internal/api"
	"github.com/tomtom215/savora/internal/auth"
	"github.com/tomtom215/savora/internal/catalog"
	"github.com/tomtom215/savora/internal/config"
	"github.com/tomtom215/savora/internal/feedback"
	"github.com/tomtom215/savora/internal/logging"
	"github.com/tomtom215/savora/internal/ratings"
	"github.com/tomtom215/savora/internal/recommend"
	"github.com/tomtom215/savora/internal/users"
	"github.com/tomtom215/savora/internal/wishlist"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)
	log := logging.Logger()
	log.Info().Str("version", Version).Msg("Starting Savora")

	db, err := openBadger(cfg)
	if err != nil {
		return fmt.Errorf("open badger: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close badger")
		}
	}()

	cat, err := catalog.Load(cfg.Data.CatalogPath, log)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	log.Info().Int("restaurants", cat.Len()).Int("anomalies", cat.Anomalies()).Msg("Catalog loaded")

	ratingStore := ratings.New(db, log)
	if err := prepareRatings(cfg, ratingStore, log); err != nil {
		return err
	}

	engine, err := recommend.New(engineConfig(cfg), cat, ratingStore, log)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	secret := cfg.Security.JWTSecret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Msg("security.jwt_secret not set; using an ephemeral secret, tokens will not survive restarts")
	}
	tokens, err := auth.NewManager(secret, cfg.Security.TokenTTL)
	if err != nil {
		return fmt.Errorf("create token manager: %w", err)
	}

	handler := api.NewHandler(api.HandlerDeps{
		Config:   cfg,
		Catalog:  cat,
		Engine:   engine,
		Ratings:  ratingStore,
		Users:    users.New(db, cfg.Security.BcryptCost, log),
		Wishlist: wishlist.New(db, log),
		Feedback: feedback.New(db, log),
		Tokens:   tokens,
		Version:  Version,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler).Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("Shutdown complete")
	return nil
}

func openBadger(cfg *config.Config) (*badger.DB, error) {
	var opts badger.Options
	if cfg.Data.BadgerInMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Data.BadgerDir)
	}
	opts = opts.WithLogger(nil)
	return badger.Open(opts)
}

// prepareRatings imports legacy ratings and seeds demo data, both only when
// the store is empty.
func prepareRatings(cfg *config.Config, store *ratings.Store, log zerolog.Logger) error {
	ctx := context.Background()

	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count ratings: %w", err)
	}
	if count == 0 && cfg.Data.RatingsImportPath != "" {
		imported, err := store.ImportJSON(ctx, cfg.Data.RatingsImportPath)
		if err != nil {
			return fmt.Errorf("import ratings: %w", err)
		}
		if imported > 0 {
			log.Info().Int("imported", imported).Str("path", cfg.Data.RatingsImportPath).Msg("Ratings imported")
		}
	}
	if cfg.Data.SeedSampleRatings {
		seeded, err := store.SeedIfEmpty(ctx)
		if err != nil {
			return fmt.Errorf("seed ratings: %w", err)
		}
		if seeded > 0 {
			log.Info().Int("seeded", seeded).Msg("Sample ratings seeded")
		}
	}
	return nil
}

func engineConfig(cfg *config.Config) recommend.Config {
	ec := recommend.DefaultConfig()
	ec.PageSize = cfg.API.PageSize
	ec.MaxVocabulary = cfg.Recommend.MaxVocabulary
	ec.DisableTextIndex = cfg.Recommend.DisableTextIndex
	ec.Neighborhood = cfg.Recommend.Neighborhood
	ec.LikedThreshold = cfg.Recommend.LikedThreshold
	ec.Context = recommend.ContextWeights{
		RainyBoost:   cfg.Recommend.RainyBoost,
		SunnyBoost:   cfg.Recommend.SunnyBoost,
		MorningBoost: cfg.Recommend.MorningBoost,
		EveningBoost: cfg.Recommend.EveningBoost,
		RatingWeight: cfg.Recommend.RatingWeight,
		VotesDivisor: cfg.Recommend.VotesDivisor,
	}
	return ec
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
