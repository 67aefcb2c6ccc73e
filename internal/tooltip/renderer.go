// Package tooltip renders the definition tooltip for the current selection.
package tooltip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/at-ishikawa/deftip/internal/clock"
	"github.com/at-ishikawa/deftip/internal/dictionary"
	"github.com/at-ishikawa/deftip/internal/message"
	"github.com/at-ishikawa/deftip/internal/selection"
)

const DefaultAutoHide = 5 * time.Second

const (
	loadingText       = "Loading..."
	channelBrokenText = "Error: Extension reloaded. Please select again."
)

type State int

const (
	StateHidden State = iota
	StatePending
	StateShown
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StatePending:
		return "pending"
	case StateShown:
		return "shown"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Surface is the single floating element the tooltip is drawn on.
type Surface interface {
	Move(at selection.Point)
	SetText(text string)
	Show()
	Hide()
}

// Definer looks a word up, usually over the message channel.
type Definer interface {
	Lookup(ctx context.Context, word string) (dictionary.Result, error)
}

// Renderer owns one Surface and moves it between hidden, pending and shown.
// Every Show and Hide starts a new generation; a lookup result is applied only if
// its generation is still current, so late answers for superseded or hidden
// tooltips are dropped.
type Renderer struct {
	surface  Surface
	definer  Definer
	clock    clock.Clock
	autoHide time.Duration

	mu         sync.Mutex
	state      State
	word       string
	generation uint64
	timer      clock.Timer

	inflight sync.WaitGroup
}

var _ selection.Presenter = (*Renderer)(nil)

type Option func(*Renderer)

func WithClock(clk clock.Clock) Option {
	return func(r *Renderer) {
		r.clock = clk
	}
}

func WithAutoHide(d time.Duration) Option {
	return func(r *Renderer) {
		r.autoHide = d
	}
}

func NewRenderer(surface Surface, definer Definer, opts ...Option) *Renderer {
	r := &Renderer{
		surface:  surface,
		definer:  definer,
		clock:    clock.System,
		autoHide: DefaultAutoHide,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Show anchors the tooltip at the selection, shows a loading text and looks word up.
func (r *Renderer) Show(ctx context.Context, word string, at selection.Point) {
	r.mu.Lock()
	r.stopTimerLocked()
	r.generation++
	generation := r.generation
	r.word = word
	r.state = StatePending

	r.surface.Move(at)
	r.surface.SetText(loadingText)
	r.surface.Show()
	r.mu.Unlock()

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		result, err := r.definer.Lookup(ctx, word)
		r.resolve(generation, word, result, err)
	}()
}

// Hide hides the tooltip and discards any lookup still in flight.
func (r *Renderer) Hide() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	r.hideLocked()
}

func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Word is the word of the tooltip currently pending or shown.
func (r *Renderer) Word() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateHidden {
		return ""
	}
	return r.word
}

// Wait blocks until every lookup started by Show has been resolved or discarded.
func (r *Renderer) Wait() {
	r.inflight.Wait()
}

func (r *Renderer) resolve(generation uint64, word string, result dictionary.Result, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if generation != r.generation || r.state != StatePending {
		slog.Default().Debug("discarding stale definition", slog.String("word", word))
		return
	}
	if err != nil && !errors.Is(err, message.ErrChannelBroken) {
		slog.Default().Debug("definition lookup failed", slog.String("word", word), slog.Any("error", err))
	}

	r.surface.SetText(Text(word, result, err))
	r.state = StateShown
	r.stopTimerLocked()
	r.timer = r.clock.AfterFunc(r.autoHide, func() {
		r.expire(generation)
	})
}

func (r *Renderer) expire(generation uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if generation != r.generation || r.state != StateShown {
		return
	}
	r.hideLocked()
}

func (r *Renderer) hideLocked() {
	r.stopTimerLocked()
	if r.state == StateHidden {
		return
	}
	r.state = StateHidden
	r.surface.Hide()
}

func (r *Renderer) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Text is what the tooltip displays for the outcome of looking word up.
func Text(word string, result dictionary.Result, err error) string {
	var remoteErr *message.RemoteError
	switch {
	case errors.Is(err, message.ErrChannelBroken):
		return channelBrokenText
	case errors.As(err, &remoteErr):
		return "Error: " + remoteErr.Message
	case err != nil:
		return "Error: " + message.NewResponse(result, err).Error
	case !result.Found:
		return fmt.Sprintf("No definition found for %q", word)
	}
	return result.Definition
}
