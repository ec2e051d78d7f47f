package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	iterations := 0

	err := Loop(ctx, Config{
		Name:         "test",
		PollInterval: time.Millisecond,
		Process: func(context.Context) error {
			iterations++
			if iterations == 3 {
				cancel()
			}

			return nil
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, iterations)
}

func TestLoopOnErrorExit(t *testing.T) {
	boom := errors.New("boom")

	err := Loop(context.Background(), Config{
		Name:         "test",
		PollInterval: time.Millisecond,
		Process: func(context.Context) error {
			return boom
		},
		OnError: func(error) bool {
			return false
		},
	})

	assert.ErrorIs(t, err, boom)
}

func TestLoopOnErrorContinue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	iterations := 0

	err := Loop(ctx, Config{
		Name:         "test",
		PollInterval: time.Millisecond,
		Process: func(context.Context) error {
			iterations++
			if iterations == 2 {
				cancel()
			}

			return errors.New("transient")
		},
		OnError: func(error) bool {
			return true
		},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, iterations)
}

func TestWait(t *testing.T) {
	require.NoError(t, Wait(context.Background(), 0))
	require.NoError(t, Wait(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, Wait(ctx, time.Minute))
}
