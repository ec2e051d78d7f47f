// Package search implements the podcast directory SearchProvider against an
// iTunes-style search API.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/podscout/podscout/internal/core/domain"
	"github.com/podscout/podscout/internal/platform/observability"
)

const (
	defaultBaseURL = "https://itunes.apple.com/search"
	defaultTimeout = 30 * time.Second
	defaultRPM     = 20 // the public directory throttles around 20 req/min

	mediaPodcast     = "podcast"
	secondsPerMinute = 60
)

var (
	errUnexpectedStatus = errors.New("search api unexpected status")
	errRateLimited      = errors.New("search api rate limited")
)

// Client queries the podcast directory.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *zerolog.Logger
}

// Config holds directory client settings.
type Config struct {
	BaseURL        string
	RequestsPerMin int
	Timeout        time.Duration
}

// NewClient creates a directory search client.
func NewClient(cfg Config, logger *zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rpm := cfg.RequestsPerMin
	if rpm <= 0 {
		rpm = defaultRPM
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rpm)/secondsPerMinute), 1),
		logger:      logger,
	}
}

// SearchPodcasts queries the directory and maps results to domain items.
func (c *Client) SearchPodcasts(ctx context.Context, query string, limit int) ([]domain.Item, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("search rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildSearchURL(query, limit), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.SearchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search request: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		observability.SearchRequests.WithLabelValues("rate_limited").Inc()
		return nil, errRateLimited
	}

	if resp.StatusCode != http.StatusOK {
		observability.SearchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
	}

	items, err := c.parseResponse(body)
	if err != nil {
		observability.SearchRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	observability.SearchRequests.WithLabelValues("ok").Inc()

	return items, nil
}

func (c *Client) buildSearchURL(query string, limit int) string {
	params := url.Values{}
	params.Set("term", query)
	params.Set("media", mediaPodcast)
	params.Set("limit", strconv.Itoa(limit))

	return c.baseURL + "?" + params.Encode()
}

type searchResponse struct {
	ResultCount int            `json:"resultCount"` //nolint:tagliatelle // directory API uses camelCase
	Results     []searchResult `json:"results"`
}

//nolint:tagliatelle // directory API uses camelCase
type searchResult struct {
	CollectionID          int64  `json:"collectionId"`
	CollectionName        string `json:"collectionName"`
	ArtistName            string `json:"artistName"`
	Description           string `json:"description"`
	TrackCount            int    `json:"trackCount"`
	ReleaseDate           string `json:"releaseDate"`
	PrimaryGenreName      string `json:"primaryGenreName"`
	ArtworkURL            string `json:"artworkUrl600"`
	ContentAdvisoryRating string `json:"contentAdvisoryRating"`
	FeedURL               string `json:"feedUrl"`
}

func (c *Client) parseResponse(body []byte) ([]domain.Item, error) {
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	items := make([]domain.Item, 0, len(parsed.Results))

	for _, result := range parsed.Results {
		item := domain.Item{
			ID:           strconv.FormatInt(result.CollectionID, 10),
			Title:        result.CollectionName,
			Author:       result.ArtistName,
			Description:  result.Description,
			EpisodeCount: result.TrackCount,
			Genre:        result.PrimaryGenreName,
			HasRating:    result.ContentAdvisoryRating != "",
			ArtworkURL:   result.ArtworkURL,
			FeedURL:      result.FeedURL,
		}

		if result.ReleaseDate != "" {
			if released, err := dateparse.ParseAny(result.ReleaseDate); err == nil {
				item.ReleasedAt = &released
			} else {
				c.logger.Debug().Str("release_date", result.ReleaseDate).Msg("unparseable release date, leaving unset")
			}
		}

		items = append(items, item.Normalize())
	}

	return items, nil
}
