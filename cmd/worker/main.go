package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"neolish/internal/adapter/repo"
	"neolish/internal/generation"
	"neolish/internal/infra"
	"neolish/internal/pipeline"
)

// The worker is the polling driver: it drains one bounded batch per tick. Team
// scope is left empty so every team's queue is served.
type worker struct {
	ctx        context.Context
	dispatcher *pipeline.Dispatcher
	logger     infra.Logger
	interval   time.Duration
}

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)
	articles := repo.NewArticleRepository(runner)
	related := repo.NewRelatedRepository(runner)

	client, err := generation.NewClient(generation.Options{
		EndpointURL:    cfg.GenerationAPIURL,
		APIKey:         cfg.GenerationAPIKey,
		HTTPClient:     &http.Client{Timeout: cfg.GenerationTimeout},
		Logger:         &logger,
		RequestTimeout: cfg.GenerationTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: generation client misconfigured")
	}

	processor := pipeline.NewProcessor(articles, related, client, logger, cfg.GenerationTimeout)
	w := &worker{
		ctx:        ctx,
		dispatcher: pipeline.NewDispatcher(articles, processor, logger, cfg.DispatchBatchSize),
		logger:     logger,
		interval:   cfg.WorkerPollInterval,
	}

	if err := w.Run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func (w *worker) Run() error {
	w.logger.Info().Msg("worker: started")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		summary, err := w.dispatcher.Dispatch(w.ctx, nil)
		if err != nil {
			w.logger.Error().Err(err).Msg("worker: dispatch failed")
		} else if summary.Total > 0 {
			w.logSummary(summary)
		}

		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *worker) logSummary(summary *pipeline.Summary) {
	drafted, failed, other := 0, 0, 0
	for _, result := range summary.Results {
		switch result.Status {
		case pipeline.ResultDraft:
			drafted++
		case pipeline.ResultFailed:
			failed++
		default:
			other++
		}
	}
	w.logger.Info().
		Int("total", summary.Total).
		Int("drafted", drafted).
		Int("failed", failed).
		Int("other", other).
		Msg("worker: batch settled")
}
