package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/petal-labs/machinebox/boxes"
)

func boxArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if !boxes.IsRegistered(args[0]) {
		return fmt.Errorf("unknown box %q (available: %v)", args[0], boxes.List())
	}
	return nil
}

func (a *App) newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <box>",
		Short: "Show the build and plan of a box",
		Args:  boxArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := a.newBox(args[0])
			if err != nil {
				return a.fail(err)
			}
			info, err := box.Info(cmd.Context())
			if err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(info)
			}

			a.paint(color.Bold).Fprintf(a.stdout, "%s", info.Name)
			fmt.Fprintf(a.stdout, " (version %d)\n", info.Version)
			fmt.Fprintf(a.stdout, "  build:  %s\n", info.Build)
			fmt.Fprintf(a.stdout, "  status: %s\n", info.Status)
			fmt.Fprintf(a.stdout, "  plan:   %s\n", info.Plan)
			return nil
		},
	}
}

func (a *App) newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health <box>",
		Short: "Run the health checks of a box",
		Long:  `Run the health checks of a box. Exits with code 2 when the box is unhealthy.`,
		Args:  boxArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := a.newBox(args[0])
			if err != nil {
				return a.fail(err)
			}
			health, err := box.Health(cmd.Context())
			if err != nil {
				return a.fail(err)
			}

			if a.jsonOutput {
				if err := a.writeJSON(health); err != nil {
					return err
				}
			} else if health.Success {
				a.paint(color.FgGreen).Fprintf(a.stdout, "%s is healthy\n", args[0])
			} else {
				a.paint(color.FgRed).Fprintf(a.stdout, "%s is unhealthy\n", args[0])
				for _, e := range health.Errors {
					fmt.Fprintf(a.stdout, "  %s: %s\n", e.Error, e.Description)
				}
			}

			if !health.Success {
				return exitWithCode(ExitService, fmt.Errorf("%s is unhealthy", args[0]))
			}
			return nil
		},
	}
}

func (a *App) newReadyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ready <box>",
		Short: "Check whether a box is ready to serve requests",
		Long:  `Check whether a box is ready to serve requests. Exits with code 2 when it is not.`,
		Args:  boxArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := a.newBox(args[0])
			if err != nil {
				return a.fail(err)
			}
			ready, err := box.IsReady(cmd.Context())
			if err != nil {
				return a.fail(err)
			}

			if a.jsonOutput {
				if err := a.writeJSON(map[string]any{"box": args[0], "ready": ready}); err != nil {
					return err
				}
			} else if ready {
				a.paint(color.FgGreen).Fprintf(a.stdout, "%s is ready\n", args[0])
			} else {
				a.paint(color.FgYellow).Fprintf(a.stdout, "%s is not ready\n", args[0])
			}

			if !ready {
				return exitWithCode(ExitService, fmt.Errorf("%s is not ready", args[0]))
			}
			return nil
		},
	}
}
