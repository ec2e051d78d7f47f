// Package app wires the engine and its collaborators together.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/podscout/podscout/internal/batch"
	"github.com/podscout/podscout/internal/core/domain"
	"github.com/podscout/podscout/internal/core/ports"
	"github.com/podscout/podscout/internal/feed"
	"github.com/podscout/podscout/internal/llm"
	"github.com/podscout/podscout/internal/media"
	"github.com/podscout/podscout/internal/platform/config"
	"github.com/podscout/podscout/internal/platform/observability"
	"github.com/podscout/podscout/internal/platform/worker"
	"github.com/podscout/podscout/internal/queue"
	"github.com/podscout/podscout/internal/ranking"
	"github.com/podscout/podscout/internal/search"
	"github.com/podscout/podscout/internal/transcribe"
)

// App is the composition root.
type App struct {
	cfg    *config.Config
	logger *zerolog.Logger

	searcher   ports.SearchProvider
	episodes   ports.EpisodeProvider
	ranker     *ranking.Ranker
	classifier *ranking.Classifier
	builder    *queue.Builder
	runner     *batch.Runner
}

// New builds the application from configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	classifier, err := ranking.NewClassifier(logger,
		ranking.WithThresholds(cfg.Thresholds()),
	)
	if err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}

	downloader := media.NewDownloader(cfg.DownloadTimeout, logger)
	transcriber := transcribe.New(transcribe.Config{
		Command: cfg.WhisperCommand,
		Model:   cfg.WhisperModel,
	}, logger)
	summarizer := llm.New(llm.Config{
		APIKey:       cfg.LLMAPIKey,
		Model:        cfg.LLMModel,
		RateLimitRPS: cfg.RateLimitRPS,
	}, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		searcher: search.NewClient(search.Config{
			BaseURL:        cfg.SearchBaseURL,
			RequestsPerMin: cfg.SearchRPM,
		}, logger),
		episodes:   feed.NewProvider(cfg.UserAgent, logger),
		ranker:     ranking.New(logger, ranking.WithDefaultWeights(cfg.HybridWeights())),
		classifier: classifier,
		builder: queue.NewBuilder(cfg.QueueCap, logger,
			queue.WithRecommendWindow(cfg.RecommendWindow),
		),
		runner: batch.NewRunner(downloader, transcriber, summarizer, logger,
			batch.WithItemTimeout(cfg.BatchItemTimeout),
		),
	}, nil
}

// StartHealthServer serves liveness and metrics endpoints until ctx is done.
func (a *App) StartHealthServer(ctx context.Context) error {
	return observability.NewServer(a.cfg.HealthPort, a.logger).Start(ctx)
}

// RunSearch searches the directory for query, ranks the results under the
// configured strategy, and logs the ranked list.
func (a *App) RunSearch(ctx context.Context, query string) error {
	strategy, err := domain.ParseStrategy(a.cfg.Strategy)
	if err != nil {
		return err
	}

	items, err := a.searcher.SearchPodcasts(ctx, query, a.cfg.SearchLimit)
	if err != nil {
		return fmt.Errorf("search podcasts: %w", err)
	}

	ranked, err := a.ranker.Rank(items, query, strategy, nil)
	if err != nil {
		return err
	}

	for _, result := range ranked {
		a.logger.Info().
			Int("rank", result.Rank).
			Str("title", result.Item.Title).
			Str("author", result.Item.Author).
			Float64("final", result.Scores.Final).
			Float64("semantic", result.Scores.Semantic).
			Float64("popularity", result.Scores.Popularity).
			Float64("recency", result.Scores.Recency).
			Msg("ranked podcast")
	}

	return nil
}

// RunBatch watches the configured feeds and processes the highest-priority
// episodes. With once set it runs a single pass and returns.
func (a *App) RunBatch(ctx context.Context, once bool) error {
	if len(a.cfg.FeedURLs) == 0 {
		return fmt.Errorf("no feeds configured, set FEED_URLS")
	}

	if once {
		return a.batchPass(ctx)
	}

	return worker.Loop(ctx, worker.Config{
		Name:         "episode-batch",
		PollInterval: a.cfg.WorkerPollInterval,
		Process:      a.batchPass,
		Logger:       a.logger,
	})
}

func (a *App) batchPass(ctx context.Context) error {
	defer worker.RecoverPanic(a.logger, "episode batch pass")

	strategy, err := domain.ParseStrategy(a.cfg.Strategy)
	if err != nil {
		return err
	}

	var all []domain.Item

	for _, feedURL := range a.cfg.FeedURLs {
		episodes, err := a.episodes.Episodes(ctx, feedURL)
		if err != nil {
			// One broken feed should not block the rest of the pass.
			a.logger.Error().Err(err).Str("feed", feedURL).Msg("feed fetch failed")
			continue
		}

		all = append(all, episodes...)
	}

	if len(all) == 0 {
		a.logger.Warn().Msg("no episodes fetched, skipping batch pass")
		return nil
	}

	classified, err := a.classifier.Classify(all, a.cfg.InterestQuery, strategy, nil)
	if err != nil {
		return err
	}

	q := a.builder.Build(classified)
	a.logger.Info().Str("queue", queue.Describe(q)).Msg("queue ready")

	for _, rec := range q.RecommendedNext {
		a.logger.Info().
			Int("position", rec.Position).
			Str("title", rec.Item.Title).
			Str("reason", rec.RecommendationReason).
			Msg("recommended next")
	}

	report := a.runner.Run(ctx, q)

	for _, failure := range report.Failed {
		a.logger.Warn().
			Str("title", failure.Item.Title).
			Str("reason", failure.Reason).
			Msg("episode failed")
	}

	for _, processed := range report.Succeeded {
		a.logger.Info().
			Str("title", processed.Item.Title).
			Str("bucket", processed.Bucket.String()).
			Dur("elapsed", processed.Elapsed).
			Str("summary", processed.Summary).
			Msg("episode processed")
	}

	return nil
}
