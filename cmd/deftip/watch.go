package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/deftip/internal/selection"
	"github.com/at-ishikawa/deftip/internal/tooltip"
)

const (
	signalScroll = "/scroll"
	signalKey    = "/key"
	signalClick  = "/click"

	// Approximate glyph size used to fake a selection's bounding box.
	glyphWidth  = 8
	glyphHeight = 16
)

type watchOptions struct {
	autoHide time.Duration
	wait     bool
}

func newWatchCommand() *cobra.Command {
	var remote, wait bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Read selections from stdin and render the tooltip in the terminal",
		Long: fmt.Sprintf(`Every input line is treated as a text selection.
The lines %s, %s and %s emulate a scroll, a key press and a click outside the tooltip.`,
			signalScroll, signalKey, signalClick),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			definer, closeDefiner := newDefiner(cfg, remote)
			defer func() {
				_ = closeDefiner()
			}()

			return runWatch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), definer, watchOptions{
				autoHide: cfg.Tooltip.AutoHide,
				wait:     wait,
			})
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&remote, "remote", false, "Send lookups to a running deftip server instead of calling the dictionary directly")
	flags.BoolVar(&wait, "wait", false, "Wait for each lookup to finish before reading the next line")
	return cmd
}

func runWatch(ctx context.Context, r io.Reader, w io.Writer, definer tooltip.Definer, opts watchOptions) error {
	renderer := tooltip.NewRenderer(tooltip.NewTerminalSurface(w), definer, tooltip.WithAutoHide(opts.autoHide))
	tracker := selection.NewTracker(renderer)
	defer renderer.Wait()

	scanner := bufio.NewScanner(r)
	for line := 0; scanner.Scan(); line++ {
		text := scanner.Text()
		switch strings.TrimSpace(text) {
		case signalScroll:
			tracker.Scroll()
		case signalKey:
			tracker.KeyPress()
		case signalClick:
			tracker.PointerDown(false)
		default:
			tracker.SelectionChanged(ctx, selection.Selection{
				Text: text,
				Rect: selection.Rect{
					Left:   0,
					Top:    float64((line + 1) * glyphHeight),
					Width:  float64(len(strings.TrimSpace(text)) * glyphWidth),
					Height: glyphHeight,
				},
			})
			if opts.wait {
				renderer.Wait()
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner.Scan > %w", err)
	}
	return nil
}
