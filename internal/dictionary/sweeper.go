package dictionary

import (
	"context"
	"log/slog"
	"time"

	"github.com/at-ishikawa/deftip/internal/clock"
)

// Sweepable is the part of the cache the sweeper needs.
type Sweepable interface {
	Sweep() int
}

// Sweeper periodically removes expired definitions.
type Sweeper struct {
	cache    Sweepable
	interval time.Duration
	clock    clock.Clock
}

type SweeperOption func(*Sweeper)

func WithSweeperClock(clk clock.Clock) SweeperOption {
	return func(s *Sweeper) {
		s.clock = clk
	}
}

func NewSweeper(cache Sweepable, interval time.Duration, opts ...SweeperOption) *Sweeper {
	s := &Sweeper{
		cache:    cache,
		interval: interval,
		clock:    clock.System,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs the sweep loop until ctx is cancelled. It blocks.
func (s *Sweeper) Start(ctx context.Context) {
	tick := make(chan struct{}, 1)
	for {
		timer := s.clock.AfterFunc(s.interval, func() {
			select {
			case tick <- struct{}{}:
			default:
			}
		})

		select {
		case <-tick:
			s.runOnce()
		case <-ctx.Done():
			timer.Stop()
			slog.Default().Debug("cache sweeper stopped")
			return
		}
	}
}

func (s *Sweeper) runOnce() {
	if removed := s.cache.Sweep(); removed > 0 {
		slog.Default().Debug("removed expired definitions", slog.Int("removed", removed))
	}
}
