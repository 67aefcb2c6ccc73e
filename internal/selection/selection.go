// Package selection turns page text selections into single-word lookups.
package selection

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"
)

// AnchorOffset is how far above the selection the tooltip is anchored, in pixels.
const AnchorOffset = 10

const (
	trailingPunctuation = `.,;:"“”'‘’!?`
	leadingQuotes       = `'"“‘`
)

// Point is a position in viewport coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is the bounding box of a selection in viewport coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (r Rect) Empty() bool {
	return r.Width <= 0 && r.Height <= 0
}

// Anchor is the horizontal center of the rect, AnchorOffset above its top edge.
func (r Rect) Anchor() Point {
	return Point{
		X: r.Left + r.Width/2,
		Y: r.Top - AnchorOffset,
	}
}

// Selection is the state of the page selection after it changed.
type Selection struct {
	Text string
	Rect Rect
	// InsideTooltip is set when the selection gesture happened on the tooltip itself.
	InsideTooltip bool
}

// Sanitize trims whitespace, trailing punctuation and leading quotes.
func Sanitize(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimRight(text, trailingPunctuation)
	return strings.TrimLeft(text, leadingQuotes)
}

// Candidate returns the word to look up for text, if text is a single word.
func Candidate(text string) (string, bool) {
	word := Sanitize(text)
	if utf8.RuneCountInString(word) <= 1 {
		return "", false
	}
	if strings.ContainsFunc(word, unicode.IsSpace) {
		return "", false
	}
	return word, true
}

// Presenter shows and hides the definition tooltip.
type Presenter interface {
	Show(ctx context.Context, word string, at Point)
	Hide()
}

// Tracker reacts to page signals and drives a Presenter.
type Tracker struct {
	presenter Presenter
}

func NewTracker(presenter Presenter) *Tracker {
	return &Tracker{
		presenter: presenter,
	}
}

// SelectionChanged shows a tooltip for a single-word selection and hides it otherwise.
// A valid word without a visible bounding box is ignored.
func (t *Tracker) SelectionChanged(ctx context.Context, sel Selection) {
	if sel.InsideTooltip {
		return
	}

	word, ok := Candidate(sel.Text)
	if !ok {
		t.presenter.Hide()
		return
	}
	if sel.Rect.Empty() {
		return
	}
	t.presenter.Show(ctx, word, sel.Rect.Anchor())
}

func (t *Tracker) PointerDown(insideTooltip bool) {
	if insideTooltip {
		return
	}
	t.presenter.Hide()
}

func (t *Tracker) Scroll() {
	t.presenter.Hide()
}

func (t *Tracker) KeyPress() {
	t.presenter.Hide()
}
