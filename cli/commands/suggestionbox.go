package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/petal-labs/machinebox/boxes/suggestionbox"
)

func (a *App) newSuggestionboxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "suggestionbox",
		Aliases: []string{"sb"},
		Short:   "Manage suggestionbox models, predictions and rewards",
	}
	cmd.AddCommand(
		a.newCreateModelCommand(),
		a.newListModelsCommand(),
		a.newPredictCommand(),
		a.newRewardCommand(),
		a.newStatsCommand(),
		a.newDeleteModelCommand(),
	)
	return cmd
}

func (a *App) suggestionbox() (*suggestionbox.Suggestionbox, error) {
	return boxAs[*suggestionbox.Suggestionbox](a, suggestionbox.BoxID)
}

func (a *App) newCreateModelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-model <file>",
		Short: "Create a model from a JSON model file",
		Long: `Create a model from a JSON model file. Pass - to read it from stdin.

The file holds {"id", "name", "options", "choices": [{"id", "features": [...]}]}.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = a.stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return a.fail(err)
				}
				defer f.Close()
				r = f
			}
			model, err := suggestionbox.LoadModel(r)
			if err != nil {
				return a.fail(err)
			}

			sb, err := a.suggestionbox()
			if err != nil {
				return a.fail(err)
			}
			created, err := sb.CreateModel(cmd.Context(), *model)
			if err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(created)
			}
			fmt.Fprintf(a.stdout, "Created model %s (%s) with %d choices.\n", created.ID, created.Name, len(created.Choices))
			return nil
		},
	}
}

func (a *App) newListModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sb, err := a.suggestionbox()
			if err != nil {
				return a.fail(err)
			}
			models, err := sb.ListModels(cmd.Context())
			if err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(models)
			}
			if len(models) == 0 {
				fmt.Fprintln(a.stdout, "No models.")
				return nil
			}
			for _, m := range models {
				fmt.Fprintf(a.stdout, "%s\t%s\n", m.ID, m.Name)
			}
			return nil
		},
	}
}

// parseInput parses a --input flag of the form key=type:value.
func parseInput(s string) (suggestionbox.Feature, error) {
	key, rest, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return suggestionbox.Feature{}, fmt.Errorf("invalid input %q: want key=type:value", s)
	}
	typ, value, ok := strings.Cut(rest, ":")
	if !ok {
		return suggestionbox.Feature{}, fmt.Errorf("invalid input %q: want key=type:value", s)
	}
	ft, err := suggestionbox.ParseFeatureType(typ)
	if err != nil {
		return suggestionbox.Feature{}, fmt.Errorf("invalid input %q: %w", s, err)
	}
	return suggestionbox.Feature{Key: key, Value: value, Type: ft}, nil
}

func (a *App) newPredictCommand() *cobra.Command {
	var inputs []string
	cmd := &cobra.Command{
		Use:   "predict <model>",
		Short: "Ask a model for the best choices",
		Long: `Ask a model for the best choices given input features.

Examples:
  machinebox suggestionbox predict movies --input age=number:42 --input country=keyword:USA
  machinebox suggestionbox predict movies --input genres=list:action,comedy --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := suggestionbox.PredictionRequest{}
			for _, in := range inputs {
				f, err := parseInput(in)
				if err != nil {
					return a.fail(err)
				}
				req.Inputs = append(req.Inputs, f)
			}

			sb, err := a.suggestionbox()
			if err != nil {
				return a.fail(err)
			}
			resp, err := sb.Predict(cmd.Context(), args[0], req)
			if err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(resp)
			}

			bold := a.paint(color.Bold)
			dim := a.paint(color.Faint)
			for i, p := range resp.Choices {
				fmt.Fprintf(a.stdout, "%d. ", i+1)
				bold.Fprint(a.stdout, p.ID)
				fmt.Fprintf(a.stdout, "  score %.3f  ", p.Score)
				dim.Fprintf(a.stdout, "reward_id %s\n", p.RewardID)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&inputs, "input", nil, "input feature as key=type:value (repeatable)")
	return cmd
}

func (a *App) newRewardCommand() *cobra.Command {
	var value float64
	cmd := &cobra.Command{
		Use:   "reward <model> <reward-id>",
		Short: "Reward a successful prediction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sb, err := a.suggestionbox()
			if err != nil {
				return a.fail(err)
			}
			if err := sb.Reward(cmd.Context(), args[0], args[1], value); err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(map[string]any{"model": args[0], "reward_id": args[1], "value": value})
			}
			fmt.Fprintf(a.stdout, "Rewarded %s.\n", args[1])
			return nil
		},
	}
	cmd.Flags().Float64Var(&value, "value", 1, "reward value")
	return cmd
}

func (a *App) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <model>",
		Short: "Show prediction and reward counts for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sb, err := a.suggestionbox()
			if err != nil {
				return a.fail(err)
			}
			stats, err := sb.ModelStats(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(stats)
			}
			fmt.Fprintf(a.stdout, "predictions: %d\n", stats.Predictions)
			fmt.Fprintf(a.stdout, "rewards:     %d (%.1f%%)\n", stats.Rewards, stats.RewardRatio*100)
			fmt.Fprintf(a.stdout, "explores:    %d (%.1f%%)\n", stats.Explores, stats.ExploreRatio*100)
			fmt.Fprintf(a.stdout, "exploits:    %d\n", stats.Exploits)
			return nil
		},
	}
}

func (a *App) newDeleteModelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-model <model>",
		Short: "Delete a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sb, err := a.suggestionbox()
			if err != nil {
				return a.fail(err)
			}
			if err := sb.DeleteModel(cmd.Context(), args[0]); err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(map[string]any{"deleted": args[0]})
			}
			fmt.Fprintf(a.stdout, "Deleted model %s.\n", args[0])
			return nil
		},
	}
}
