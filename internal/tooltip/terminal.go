package tooltip

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/at-ishikawa/deftip/internal/selection"
)

// TerminalSurface draws the tooltip as lines of text on a writer.
type TerminalSurface struct {
	mu      sync.Mutex
	w       io.Writer
	at      selection.Point
	text    string
	visible bool

	position *color.Color
	body     *color.Color
	muted    *color.Color
}

var _ Surface = (*TerminalSurface)(nil)

func NewTerminalSurface(w io.Writer) *TerminalSurface {
	return &TerminalSurface{
		w:        w,
		position: color.New(color.FgCyan),
		body:     color.New(color.Bold),
		muted:    color.New(color.Faint),
	}
}

func (s *TerminalSurface) Move(at selection.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.at = at
}

// SetText redraws the tooltip when it is visible.
func (s *TerminalSurface) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	if s.visible {
		s.drawLocked()
	}
}

func (s *TerminalSurface) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visible {
		return
	}
	s.visible = true
	s.drawLocked()
}

func (s *TerminalSurface) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.visible {
		return
	}
	s.visible = false
	_, _ = s.muted.Fprintln(s.w, "[tooltip hidden]")
}

func (s *TerminalSurface) drawLocked() {
	_, _ = fmt.Fprintf(s.w, "%s %s\n",
		s.position.Sprintf("[%.0f,%.0f]", s.at.X, s.at.Y),
		s.body.Sprint(s.text),
	)
}
