package tooltip

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/deftip/internal/selection"
)

func TestTerminalSurface(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = noColor
	})

	var buf bytes.Buffer
	surface := NewTerminalSurface(&buf)

	surface.Move(selection.Point{X: 120, Y: 40})
	surface.SetText("Loading...")
	surface.Show()
	surface.SetText("to move swiftly")
	surface.Hide()
	surface.Hide()
	surface.SetText("ignored while hidden")

	assert.Equal(t, "[120,40] Loading...\n[120,40] to move swiftly\n[tooltip hidden]\n", buf.String())
}
