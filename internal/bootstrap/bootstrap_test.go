package bootstrap

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Run(t *testing.T) {
	t.Run("run returns nil", func(t *testing.T) {
		app := New()
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("run returns error", func(t *testing.T) {
		app := New()
		want := errors.New("run failed")
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return want
		})
		assert.ErrorIs(t, err, want)
	})

	t.Run("shutdown hooks run when run fails", func(t *testing.T) {
		app := New()
		var closed atomic.Bool
		app.AddShutdownHook(func(ctx context.Context) error {
			closed.Store(true)
			return nil
		})

		want := errors.New("listen tcp :8080: bind: address already in use")
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return want
		})
		assert.ErrorIs(t, err, want)
		assert.True(t, closed.Load())
	})

	t.Run("run error is joined with hook errors", func(t *testing.T) {
		app := New()
		hookErr := errors.New("close failed")
		app.AddShutdownHook(func(ctx context.Context) error { return hookErr })

		runErr := errors.New("run failed")
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return runErr
		})
		assert.ErrorIs(t, err, runErr)
		assert.ErrorIs(t, err, hookErr)
	})

	t.Run("shutdown hooks run in LIFO order on context cancel", func(t *testing.T) {
		app := New()
		var mu sync.Mutex
		var order []string

		for _, name := range []string{"first", "second", "third"} {
			app.AddShutdownHook(func(ctx context.Context) error {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, name)
				return nil
			})
		}

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"third", "second", "first"}, order)
	})

	t.Run("shutdown hook errors are joined", func(t *testing.T) {
		app := New()
		errA := errors.New("a")
		errB := errors.New("b")
		app.AddShutdownHook(func(ctx context.Context) error { return errA })
		app.AddShutdownHook(func(ctx context.Context) error { return errB })

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return nil
		})
		assert.ErrorIs(t, err, errA)
		assert.ErrorIs(t, err, errB)
	})

	t.Run("workers run until run returns", func(t *testing.T) {
		app := New()
		var started, stopped atomic.Bool
		ready := make(chan struct{})

		app.AddWorker(func(ctx context.Context) {
			started.Store(true)
			close(ready)
			<-ctx.Done()
			stopped.Store(true)
		})

		err := app.Run(context.Background(), func(ctx context.Context) error {
			<-ready
			return nil
		})
		require.NoError(t, err)
		assert.True(t, started.Load())
		assert.True(t, stopped.Load(), "Run must wait for workers to stop")
	})
}
