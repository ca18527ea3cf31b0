package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/petal-labs/machinebox/boxes/textbox"
)

func (a *App) newTextboxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "textbox",
		Short: "Analyse text with textbox",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <text...>",
		Short: "Find sentences, sentiment, entities and keywords in text",
		Long: `Find sentences, sentiment, entities and keywords in text.
Pass - to read the text from stdin.

Examples:
  machinebox textbox check "Pay William $200 tomorrow"
  cat review.txt | machinebox textbox check - --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "-" {
				data, err := io.ReadAll(a.stdin)
				if err != nil {
					return a.fail(fmt.Errorf("read stdin: %w", err))
				}
				text = string(data)
			}

			tb, err := boxAs[*textbox.Textbox](a, textbox.BoxID)
			if err != nil {
				return a.fail(err)
			}
			analysis, err := tb.Check(cmd.Context(), text)
			if err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(analysis)
			}
			a.printAnalysis(analysis)
			return nil
		},
	})
	return cmd
}

func (a *App) printAnalysis(analysis *textbox.Analysis) {
	bold := a.paint(color.Bold)
	dim := a.paint(color.Faint)
	kind := a.paint(color.FgCyan)

	for _, s := range analysis.Sentences {
		bold.Fprint(a.stdout, s.Text)
		fmt.Fprint(a.stdout, "  ")
		sentimentColor(a, s.Sentiment).Fprintf(a.stdout, "sentiment %.2f\n", s.Sentiment)
		for _, e := range s.Entities {
			fmt.Fprint(a.stdout, "  ")
			kind.Fprintf(a.stdout, "%-10s", e.Type)
			fmt.Fprintf(a.stdout, " %s ", e.Text)
			dim.Fprintf(a.stdout, "[%d:%d]\n", e.Start, e.End)
		}
	}

	if len(analysis.Keywords) > 0 {
		words := make([]string, len(analysis.Keywords))
		for i, k := range analysis.Keywords {
			words[i] = k.Keyword
		}
		fmt.Fprintf(a.stdout, "keywords: %s\n", strings.Join(words, ", "))
	}
}

// sentimentColor is red for negative, yellow for neutral and green for
// positive sentences.
func sentimentColor(a *App, sentiment float64) *color.Color {
	switch {
	case sentiment < 0.4:
		return a.paint(color.FgRed)
	case sentiment > 0.6:
		return a.paint(color.FgGreen)
	default:
		return a.paint(color.FgYellow)
	}
}
