package watcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
)

var errTestUnavailable = errors.New("test endpoint unavailable")

// scriptedSource returns the scripted results one per call, repeating the last.
type scriptedSource struct {
	// mu protects calls.
	mu sync.Mutex
	// results are returned in order.
	results []result
	// calls counts GetArmState invocations.
	calls int
}

// result is a single scripted answer.
type result struct {
	armed bool
	err   error
}

// GetArmState returns the next scripted result.
func (s *scriptedSource) GetArmState(context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := min(s.calls, len(s.results)-1)
	s.calls++

	return s.results[i].armed, s.results[i].err
}

// TestWatch_ReportsTransitionsOnly verifies repeated values are reported once and errors are skipped.
func TestWatch_ReportsTransitionsOnly(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		source := &scriptedSource{results: []result{
			{armed: false},
			{armed: false},
			{err: errTestUnavailable},
			{armed: true},
			{armed: true},
			{armed: false},
		}}

		var changes []bool

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)

		go func() {
			done <- Watch(ctx, source, time.Second, func(armed bool) {
				changes = append(changes, armed)
			})
		}()

		// Initial check plus six ticks.
		time.Sleep(6*time.Second + time.Millisecond)
		synctest.Wait()

		cancel()
		require.NoError(t, <-done)
		require.Equal(t, []bool{false, true, false}, changes)
	})
}

// TestInterval falls back to the default poll interval.
func TestInterval(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultPollInterval, interval(new(Options)))
	require.Equal(t, 50*time.Millisecond, interval(&Options{PollInterval: 50 * time.Millisecond}))
}
