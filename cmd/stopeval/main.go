package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stopeval/internal/cfg"
	"stopeval/internal/classifier"
	"stopeval/internal/dataset"
	"stopeval/internal/eval"
	"stopeval/internal/metrics"
	"stopeval/internal/report"
	"stopeval/internal/storage"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	// Local overrides for development; missing file is fine
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

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	m := metrics.New()
	mw := metrics.NewWrapper(m)
	startMetricsServer(ctx, c)

	store := openStore(c)
	if store != nil {
		defer store.Close()
	}

	examples, err := loadExamples(ctx, c, store, mw)
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}
	if len(examples) == 0 {
		log.Fatal().Msg("no usable examples after cleaning")
	}

	sweeper := eval.NewSweeper(c.Folds, c.Seed, eval.EvenCutoffs(c.CutoffCount))
	sweeper.SetMetrics(mw)

	classifiers := []classifier.Classifier{
		classifier.NewKNN(c.KNNNeighbors),
		classifier.NewTree(c.TreeMaxDepth, c.TreeMinLeaf),
	}

	var results []*eval.Result
	for _, cls := range classifiers {
		result, err := sweeper.Run(ctx, examples, cls)
		if err != nil {
			log.Fatal().Err(err).Str("classifier", cls.Name()).Msg("evaluation failed")
		}
		results = append(results, result)

		if store != nil {
			if err := store.StoreRun(result); err != nil {
				log.Error().Err(err).Str("classifier", cls.Name()).Msg("failed to persist run")
			}
		}
	}

	var comparison *eval.Comparison
	if len(results) == 2 {
		cmp, err := eval.Compare(results[0].FoldErrorRates, results[1].FoldErrorRates)
		if err != nil {
			log.Fatal().Err(err).Msg("classifier comparison failed")
		}
		comparison = &cmp
		log.Info().
			Str("a", results[0].Classifier).
			Str("b", results[1].Classifier).
			Float64("mean_diff", cmp.MeanDiff).
			Float64("p_value", cmp.PValue).
			Msg("Classifier comparison complete")
	}

	reporter := report.NewReporter(results, comparison, c.OutputPath)
	if err := reporter.GenerateReport(); err != nil {
		log.Fatal().Err(err).Msg("report generation failed")
	}

	log.Info().Str("output", c.OutputPath).Msg("Evaluation complete")
}

func openStore(c cfg.Settings) *storage.Store {
	if c.StorePath == "" {
		return nil
	}
	store, err := storage.New(c.StorePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", c.StorePath).Msg("failed to open store")
	}
	return store
}

// loadExamples resolves the dataset source in priority order: local CSV,
// remote CSV, then the example set previously ingested into the store.
func loadExamples(ctx context.Context, c cfg.Settings, store *storage.Store, mw *metrics.Wrapper) ([]dataset.Example, error) {
	loader := dataset.NewLoader(c.HTTPTimeout)
	loader.SetMetrics(mw)

	switch {
	case c.DataPath != "":
		return loader.LoadFile(c.DataPath)
	case c.DataURL != "":
		return loader.LoadURL(ctx, c.DataURL)
	case store != nil:
		return store.GetExamples()
	default:
		return nil, fmt.Errorf("no dataset source configured")
	}
}

func startMetricsServer(ctx context.Context, c cfg.Settings) {
	go func() {
		mux := http.NewServeMux()

		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		mux.Handle("/metrics", promhttp.Handler())

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", c.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		go func() {
			<-ctx.Done()
			if err := server.Shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to shutdown metrics server")
			}
		}()

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}
