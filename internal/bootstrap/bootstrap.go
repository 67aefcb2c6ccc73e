// Package bootstrap provides application lifecycle helpers.
package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sourcegraph/conc"
)

// App runs a main function next to background workers and shuts down gracefully.
type App struct {
	mu      sync.Mutex
	hooks   []func(ctx context.Context) error
	workers []func(ctx context.Context)
}

// New creates a new App.
func New() *App {
	return &App{}
}

// AddShutdownHook registers a function to call during graceful shutdown.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// AddWorker registers a function that runs in the background while Run is active.
// Its context is cancelled when Run returns, and Run waits for it to finish.
func (a *App) AddWorker(fn func(ctx context.Context)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.workers = append(a.workers, fn)
}

// Run sets up signal handling, starts the workers and executes the run function.
// Registered shutdown hooks are called in LIFO order on SIGINT or SIGTERM, and also
// when run returns first. An error from run is joined with the hook errors.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	var wg conc.WaitGroup
	defer wg.Wait()
	defer cancelWorkers()

	a.mu.Lock()
	for _, worker := range a.workers {
		wg.Go(func() {
			worker(workerCtx)
		})
	}
	a.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		if err := run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return a.shutdown(context.Background())
	case err := <-errCh:
		return errors.Join(err, a.shutdown(context.Background()))
	}
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		if err := a.hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
