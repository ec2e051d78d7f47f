// Package media fetches episode audio to local scratch space with retry and
// guaranteed cleanup.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/podscout/podscout/internal/platform/observability"
)

const (
	defaultTimeout    = 5 * time.Minute
	defaultMaxRetries = 3
	retryBaseDelay    = 2 * time.Second

	tempPattern = "podscout-audio-*"
)

var errDownloadStatus = errors.New("audio download unexpected status")

// Downloader fetches audio over HTTP into temp files.
type Downloader struct {
	httpClient *http.Client
	maxRetries uint64
	logger     *zerolog.Logger
}

// NewDownloader creates a Downloader. Timeout bounds a single attempt.
func NewDownloader(timeout time.Duration, logger *zerolog.Logger) *Downloader {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Downloader{
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: defaultMaxRetries,
		logger:     logger,
	}
}

// Fetch downloads mediaURL to a temp file, retrying transient failures with
// exponential backoff. The returned cleanup removes the file and must be
// called on every path; on error the scratch file is already gone.
func (d *Downloader) Fetch(ctx context.Context, mediaURL string) (string, func(), error) {
	var path string

	backoff := retry.WithMaxRetries(d.maxRetries, retry.NewExponential(retryBaseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var attemptErr error

		path, attemptErr = d.fetchOnce(ctx, mediaURL)
		if attemptErr != nil {
			d.logger.Debug().Err(attemptErr).Str("url", mediaURL).Msg("audio download attempt failed")
			return retry.RetryableError(attemptErr)
		}

		return nil
	})
	if err != nil {
		return "", nil, fmt.Errorf("download %s: %w", mediaURL, err)
	}

	cleanup := func() {
		if removeErr := os.Remove(path); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			d.logger.Warn().Err(removeErr).Str("path", path).Msg("failed to remove downloaded audio")
		}
	}

	return path, cleanup, nil
}

func (d *Downloader) fetchOnce(ctx context.Context, mediaURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return "", fmt.Errorf("create download request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download request: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", errDownloadStatus, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", tempPattern)
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}

	written, err := io.Copy(tmp, resp.Body)

	closeErr := tmp.Close()

	if err != nil || closeErr != nil {
		_ = os.Remove(tmp.Name())

		if err != nil {
			return "", fmt.Errorf("write audio: %w", err)
		}

		return "", fmt.Errorf("close scratch file: %w", closeErr)
	}

	observability.AudioDownloadBytes.Add(float64(written))

	return tmp.Name(), nil
}
