package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petal-labs/machinebox/boxes"
	"github.com/petal-labs/machinebox/cli/config"
)

func (a *App) newInitCommand() *cobra.Command {
	var (
		boxURLs []string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file",
		Long: `Write a config file listing box URLs.

Example:
  machinebox init --box textbox=http://localhost:8081 --box facebox=http://localhost:8082`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return a.fail(fmt.Errorf("config file %q already exists (use --force to overwrite)", path))
			}

			cfg := &config.Config{Boxes: make(map[string]config.BoxConfig)}
			for _, id := range boxes.List() {
				cfg.Boxes[id] = config.BoxConfig{URL: config.DefaultURL}
			}
			for _, kv := range boxURLs {
				id, url, err := parseBoxURL(kv)
				if err != nil {
					return a.fail(err)
				}
				cfg.Boxes[id] = config.BoxConfig{URL: url}
			}

			if err := cfg.Save(path); err != nil {
				return a.fail(fmt.Errorf("failed to write config: %w", err))
			}
			fmt.Fprintf(a.stdout, "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&boxURLs, "box", nil, "box URL as name=url (repeatable)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func parseBoxURL(s string) (string, string, error) {
	id, url, ok := strings.Cut(s, "=")
	if !ok || url == "" {
		return "", "", fmt.Errorf("invalid --box %q: want name=url", s)
	}
	if !boxes.IsRegistered(id) {
		return "", "", fmt.Errorf("invalid --box %q: unknown box %q (available: %v)", s, id, boxes.List())
	}
	return id, url, nil
}
