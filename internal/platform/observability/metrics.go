package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RankRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podscout_rank_requests_total",
		Help: "The total number of ranking requests by strategy and outcome",
	}, []string{"strategy", "status"})

	RankDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "podscout_rank_duration_seconds",
		Help:    "Duration of ranking computations",
		Buckets: prometheus.DefBuckets,
	})

	RankFailOpens = promauto.NewCounter(prometheus.CounterOpts{
		Name: "podscout_rank_fail_open_total",
		Help: "Total number of ranking calls that returned the original order after an internal failure",
	})

	EpisodesClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podscout_episodes_classified_total",
		Help: "Total number of episodes classified by priority bucket",
	}, []string{"bucket"})

	QueueSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "podscout_queue_size",
		Help: "Number of items in the most recently built processing queue",
	})

	QueueEstimatedSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "podscout_queue_estimated_seconds",
		Help: "Aggregate estimated processing time of the most recent queue",
	})

	BatchItemsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podscout_batch_items_total",
		Help: "Total number of batch items by outcome",
	}, []string{"status", "bucket"})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "podscout_batch_duration_seconds",
		Help:    "Duration of whole batch runs",
		Buckets: []float64{1, 5, 15, 60, 300, 900, 1800, 3600, 7200},
	})

	SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podscout_search_requests_total",
		Help: "Total number of podcast directory search requests",
	}, []string{"status"})

	FeedFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podscout_feed_fetches_total",
		Help: "Total number of episode feed fetches",
	}, []string{"status"})

	TranscriptionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "podscout_transcription_duration_seconds",
		Help:    "Duration of audio transcription calls",
		Buckets: []float64{1, 5, 15, 60, 300, 900, 1800, 3600},
	})

	SummarizationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "podscout_summarization_duration_seconds",
		Help:    "Duration of transcript summarization calls",
		Buckets: prometheus.DefBuckets,
	})

	AudioDownloadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "podscout_audio_download_bytes_total",
		Help: "Total bytes of downloaded episode audio",
	})
)
