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
	"neolish/internal/http/handlers"
	"neolish/internal/http/httpapi"
	"neolish/internal/infra"
	"neolish/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: db connection failed")
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
		logger.Fatal().Err(err).Msg("api: generation client misconfigured")
	}

	processor := pipeline.NewProcessor(articles, related, client, logger, cfg.GenerationTimeout)
	app := &handlers.App{
		Logger:     logger,
		Teams:      repo.NewTeamRepository(runner),
		Dispatcher: pipeline.NewDispatcher(articles, processor, logger, cfg.DispatchBatchSize),
		Retrier:    pipeline.NewRetrier(articles, related, logger),
		Reporter:   pipeline.NewReporter(repo.NewStatusRepository(runner)),
		Articles:   repo.NewArticleListRepository(runner),
	}

	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("api: listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("api: http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("api: failed to shutdown server")
	}
	logger.Info().Msg("api: stopped")
}
