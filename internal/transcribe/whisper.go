// Package transcribe turns downloaded episode audio into text by shelling
// out to a local Whisper CLI. When no command is configured a mock
// transcriber stands in so the rest of the pipeline stays exercisable.
package transcribe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/podscout/podscout/internal/core/ports"
)

// Config selects the transcription backend.
type Config struct {
	// Command is the Whisper executable; empty selects the mock.
	Command string

	// Model is passed as --model (base, small, medium, large).
	Model string
}

// New returns a Transcriber for the configuration.
func New(cfg Config, logger *zerolog.Logger) ports.Transcriber {
	if cfg.Command == "" {
		logger.Info().Msg("no transcriber command configured, using mock transcriber")
		return &mockTranscriber{}
	}

	return &whisperTranscriber{
		command: cfg.Command,
		model:   cfg.Model,
		logger:  logger,
	}
}

type whisperTranscriber struct {
	command string
	model   string
	logger  *zerolog.Logger
}

// Transcribe runs the Whisper CLI against the audio file and returns its
// stdout as the transcript.
func (t *whisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("audio file missing: %w", err)
	}

	args := []string{}
	if t.model != "" {
		args = append(args, "--model", t.model)
	}

	args = append(args, audioPath)

	cmd := exec.CommandContext(ctx, t.command, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	t.logger.Debug().Str("audio", filepath.Base(audioPath)).Str("model", t.model).Msg("transcribing audio")

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("whisper: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	transcript := strings.TrimSpace(stdout.String())
	if transcript == "" {
		return "", fmt.Errorf("whisper produced empty transcript for %s", filepath.Base(audioPath))
	}

	return transcript, nil
}

type mockTranscriber struct{}

func (m *mockTranscriber) Transcribe(_ context.Context, audioPath string) (string, error) {
	return "Mock transcript for " + filepath.Base(audioPath) + ".", nil
}
