package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRunOnce(t *testing.T) {
	worker := NewInstance("test", 0, time.Millisecond)
	t.Run(`паника перехватывается`, func(t *testing.T) {
		require.NotPanics(t, func() {
			worker.RunOnce(context.Background(), func(ctx context.Context) (int64, error) {
				panic("boom")
			})
		})
	})
	t.Run(`ошибка не прерывает вызывающего`, func(t *testing.T) {
		require.NotPanics(t, func() {
			worker.RunOnce(context.Background(), func(ctx context.Context) (int64, error) {
				return 0, errors.New("fail")
			})
		})
	})
}

func TestRun(t *testing.T) {
	worker := NewInstance("test", 0, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	var calls int64
	done := make(chan struct{})
	go func() {
		worker.Run(ctx, func(ctx context.Context) (int64, error) {
			if atomic.AddInt64(&calls, 1) == 3 {
				cancel()
			}
			return 1, nil
		})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("воркер не остановился")
	}
	require.GreaterOrEqual(t, atomic.LoadInt64(&calls), int64(3))
}
