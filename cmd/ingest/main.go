package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"stopeval/internal/cfg"
	"stopeval/internal/dataset"
	"stopeval/internal/metrics"
	"stopeval/internal/storage"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ingest downloads or reads the raw stop CSV, runs the cleaning rules, and
// persists the resulting example set into the store so evaluation runs can
// work offline against a frozen dataset.
func main() {
	var logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	_ = godotenv.Load()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	c, err := cfg.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if c.StorePath == "" {
		log.Fatal().Msg("STORE_PATH is required for ingestion")
	}
	if c.DataPath == "" && c.DataURL == "" {
		log.Fatal().Msg("a dataset source is required: set DATA_PATH or DATA_URL")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := storage.New(c.StorePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", c.StorePath).Msg("failed to open store")
	}
	defer store.Close()

	loader := dataset.NewLoader(c.HTTPTimeout)
	loader.SetMetrics(metrics.NewWrapper(metrics.New()))

	var examples []dataset.Example
	if c.DataPath != "" {
		examples, err = loader.LoadFile(c.DataPath)
	} else {
		examples, err = loader.LoadURL(ctx, c.DataURL)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}

	if err := store.StoreExamples(examples); err != nil {
		log.Fatal().Err(err).Msg("failed to persist examples")
	}

	log.Info().
		Int("examples", len(examples)).
		Str("store", c.StorePath).
		Msg("Ingestion complete")
}
