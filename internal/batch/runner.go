// Package batch walks a processing queue and runs the expensive
// download → transcribe → summarize pipeline per episode. External work is
// sequenced one item at a time to bound resource usage; a failing item is
// recorded and never aborts the rest of the run.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/podscout/podscout/internal/core/domain"
	"github.com/podscout/podscout/internal/core/ports"
	"github.com/podscout/podscout/internal/platform/observability"
)

const defaultItemTimeout = 15 * time.Minute

// Runner executes processing queues against the external capabilities.
type Runner struct {
	downloader  ports.AudioDownloader
	transcriber ports.Transcriber
	summarizer  ports.Summarizer
	itemTimeout time.Duration
	logger      *zerolog.Logger
	now         func() time.Time
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithItemTimeout bounds the external work for a single episode.
func WithItemTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.itemTimeout = d
	}
}

// WithRunnerClock overrides the time source, for tests.
func WithRunnerClock(now func() time.Time) RunnerOption {
	return func(r *Runner) {
		r.now = now
	}
}

// NewRunner creates a Runner.
func NewRunner(downloader ports.AudioDownloader, transcriber ports.Transcriber, summarizer ports.Summarizer, logger *zerolog.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		downloader:  downloader,
		transcriber: transcriber,
		summarizer:  summarizer,
		itemTimeout: defaultItemTimeout,
		logger:      logger,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run walks the queue in order. Items flagged CanProcess false are counted
// as skipped; every other item is processed under its own timeout, and a
// failure is captured in the report while the batch moves on. Run returns
// early only when the parent context is canceled.
func (r *Runner) Run(ctx context.Context, q domain.Queue) domain.BatchReport {
	report := domain.BatchReport{
		RunID:     uuid.NewString(),
		StartedAt: r.now(),
		ByBucket:  make(map[domain.PriorityBucket]domain.BucketStats),
	}

	logger := r.logger.With().Str("run_id", report.RunID).Logger()
	logger.Info().Int("items", len(q.Items)).Msg("starting batch run")

	for _, item := range q.Items {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Int("position", item.Position).Msg("batch run canceled")
			break
		}

		if !item.CanProcess {
			report.Skipped++
			bumpBucket(report.ByBucket, item.Bucket, func(s *domain.BucketStats) { s.Skipped++ })
			observability.BatchItemsProcessed.WithLabelValues("skipped", item.Bucket.String()).Inc()
			logger.Debug().Str("item_id", item.Item.ID).Msg("skipping episode without playable media")

			continue
		}

		processed, err := r.processOne(ctx, item)
		if err != nil {
			report.Failed = append(report.Failed, domain.BatchFailure{
				Item:   item.Item,
				Bucket: item.Bucket,
				Reason: err.Error(),
			})
			bumpBucket(report.ByBucket, item.Bucket, func(s *domain.BucketStats) { s.Failed++ })
			observability.BatchItemsProcessed.WithLabelValues("failed", item.Bucket.String()).Inc()
			logger.Error().Err(err).Str("item_id", item.Item.ID).Msg("episode processing failed")

			continue
		}

		report.Succeeded = append(report.Succeeded, processed)
		bumpBucket(report.ByBucket, item.Bucket, func(s *domain.BucketStats) { s.Succeeded++ })
		observability.BatchItemsProcessed.WithLabelValues("succeeded", item.Bucket.String()).Inc()
	}

	report.FinishedAt = r.now()
	observability.BatchDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())

	logger.Info().
		Int("succeeded", len(report.Succeeded)).
		Int("failed", len(report.Failed)).
		Int("skipped", report.Skipped).
		Msg("batch run finished")

	return report
}

// processOne runs the full pipeline for a single episode under the per-item
// timeout. The downloaded audio is released on every path.
func (r *Runner) processOne(parent context.Context, item domain.QueueItem) (domain.ProcessedEpisode, error) {
	ctx, cancel := context.WithTimeout(parent, r.itemTimeout)
	defer cancel()

	started := r.now()

	audioPath, cleanup, err := r.downloader.Fetch(ctx, item.Item.MediaURL)
	if err != nil {
		return domain.ProcessedEpisode{}, fmt.Errorf("download audio: %w", err)
	}
	defer cleanup()

	transcribeStart := r.now()

	transcript, err := r.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return domain.ProcessedEpisode{}, fmt.Errorf("transcribe audio: %w", err)
	}

	observability.TranscriptionDuration.Observe(r.now().Sub(transcribeStart).Seconds())

	summarizeStart := r.now()

	summary, err := r.summarizer.Summarize(ctx, transcript, item.Item)
	if err != nil {
		return domain.ProcessedEpisode{}, fmt.Errorf("summarize transcript: %w", err)
	}

	observability.SummarizationDuration.Observe(r.now().Sub(summarizeStart).Seconds())

	return domain.ProcessedEpisode{
		Item:       item.Item,
		Bucket:     item.Bucket,
		Transcript: transcript,
		Summary:    summary,
		Elapsed:    r.now().Sub(started),
	}, nil
}

func bumpBucket(stats map[domain.PriorityBucket]domain.BucketStats, bucket domain.PriorityBucket, f func(*domain.BucketStats)) {
	s := stats[bucket]
	f(&s)
	stats[bucket] = s
}
