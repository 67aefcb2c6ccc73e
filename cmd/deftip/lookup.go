package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/deftip/internal/tooltip"
)

type OutputFormat string

func (f *OutputFormat) Set(val string) error {
	for _, format := range allOutputFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s", val)
}

func (f OutputFormat) String() string {
	return string(f)
}

func (f *OutputFormat) Type() string {
	return "OutputFormat"
}

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatYAML OutputFormat = "yaml"

	maxConcurrentLookups = 4
)

var (
	_                pflag.Value = (*OutputFormat)(nil)
	allOutputFormats             = []OutputFormat{OutputFormatText, OutputFormatYAML}
)

type lookupOutcome struct {
	Word   string `yaml:"word"`
	Text   string `yaml:"text"`
	Found  bool   `yaml:"found"`
	Cached bool   `yaml:"cached"`
	Failed bool   `yaml:"failed"`
}

func newLookupCommand() *cobra.Command {
	output := OutputFormatText
	var remote bool

	cmd := &cobra.Command{
		Use:   "lookup WORD...",
		Short: "Look up the definitions of words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			definer, closeDefiner := newDefiner(cfg, remote)
			defer func() {
				_ = closeDefiner()
			}()

			outcomes, err := lookupAll(cmd.Context(), definer, args)
			if err != nil {
				return fmt.Errorf("lookupAll > %w", err)
			}
			return writeOutcomes(cmd.OutOrStdout(), output, outcomes)
		},
	}
	flags := cmd.Flags()
	flags.Var(&output, "output", fmt.Sprintf("Output format. Possible values are %v", allOutputFormats))
	flags.BoolVar(&remote, "remote", false, "Send lookups to a running deftip server instead of calling the dictionary directly")
	return cmd
}

// lookupAll looks the words up concurrently and returns the outcomes in input order.
func lookupAll(ctx context.Context, definer tooltip.Definer, words []string) ([]lookupOutcome, error) {
	outcomes := make([]lookupOutcome, len(words))

	p := pool.New().WithContext(ctx).WithMaxGoroutines(maxConcurrentLookups)
	for i, word := range words {
		p.Go(func(ctx context.Context) error {
			result, err := definer.Lookup(ctx, word)
			outcomes[i] = lookupOutcome{
				Word:   word,
				Text:   tooltip.Text(word, result, err),
				Found:  result.Found,
				Cached: result.Cached,
				Failed: err != nil,
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("pool.Wait > %w", err)
	}
	return outcomes, nil
}

func writeOutcomes(w io.Writer, format OutputFormat, outcomes []lookupOutcome) error {
	switch format {
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() {
			_ = encoder.Close()
		}()
		if err := encoder.Encode(outcomes); err != nil {
			return fmt.Errorf("encoder.Encode > %w", err)
		}
		return nil
	case OutputFormatText:
		fallthrough
	default:
		wordColor := color.New(color.Bold)
		for _, outcome := range outcomes {
			textColor := color.New(color.FgGreen)
			switch {
			case outcome.Failed:
				textColor = color.New(color.FgRed)
			case !outcome.Found:
				textColor = color.New(color.FgYellow)
			}
			if _, err := fmt.Fprintf(w, "%s: %s\n", wordColor.Sprint(outcome.Word), textColor.Sprint(outcome.Text)); err != nil {
				return fmt.Errorf("fmt.Fprintf > %w", err)
			}
		}
		return nil
	}
}
