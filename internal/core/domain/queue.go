package domain

import "time"

// QueueItem is one slot in a processing queue.
type QueueItem struct {
	Position             int
	Item                 Item
	Scores               ScoreSet
	Bucket               PriorityBucket
	EstimatedProcessing  time.Duration
	CanProcess           bool
	RecommendationReason string
}

// Queue is the bounded plan for one batch run. Built fresh per call, never
// cached.
type Queue struct {
	Items          []QueueItem
	ByBucket       map[PriorityBucket][]QueueItem
	EstimatedTotal time.Duration

	// RecommendedNext holds the items just past the cap, each with a short
	// justification for why it would be a good pick next.
	RecommendedNext []QueueItem
}

// ProcessedEpisode records a successful batch item.
type ProcessedEpisode struct {
	Item       Item
	Bucket     PriorityBucket
	Transcript string
	Summary    string
	Elapsed    time.Duration
}

// BatchFailure records one failed batch item. Failures never abort the run.
type BatchFailure struct {
	Item   Item
	Bucket PriorityBucket
	Reason string
}

// BucketStats aggregates outcomes per priority bucket.
type BucketStats struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// BatchReport summarizes one batch run.
type BatchReport struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Succeeded  []ProcessedEpisode
	Failed     []BatchFailure
	Skipped    int
	ByBucket   map[PriorityBucket]BucketStats
}
