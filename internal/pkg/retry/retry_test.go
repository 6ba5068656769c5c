package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRetriesUntilSuccess(t *testing.T) {
	cfg := &RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond}

	calls := 0
	var retried []uint
	err := cfg.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	}, func(n uint, err error) {
		retried = append(retried, n)
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []uint{0, 1}, retried)
}

func TestDoReturnsLastError(t *testing.T) {
	cfg := &RetryConfig{Attempts: 2, Delay: time.Millisecond, MaxDelay: time.Millisecond}

	boom := errors.New("boom")
	err := cfg.Do(context.Background(), func() error { return boom }, nil)

	assert.ErrorIs(t, err, boom)
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, uint(3), cfg.Attempts)
	assert.Less(t, cfg.Delay, cfg.MaxDelay)
}
