package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/petal-labs/machinebox/cli/config"
	"github.com/petal-labs/machinebox/cli/keystore"
)

func (a *App) newAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage box basic-auth credentials",
		Long: `Manage basic-auth credentials for boxes started with MB_BASICAUTH_USER
and MB_BASICAUTH_PASS. Usernames live in the config file; passwords are
stored encrypted in the keystore.`,
	}
	cmd.AddCommand(a.newAuthSetCommand())
	cmd.AddCommand(a.newAuthListCommand())
	cmd.AddCommand(a.newAuthDeleteCommand())
	return cmd
}

func (a *App) newAuthSetCommand() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "set <box>",
		Short: "Store the basic-auth password for a box",
		Long:  `Store the basic-auth password for a box. The password is prompted without echo.`,
		Args:  boxArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			box := args[0]
			password, err := a.readPassword(box)
			if err != nil {
				return a.fail(err)
			}
			if password == "" {
				return a.fail(errors.New("password cannot be empty"))
			}

			ks, err := a.newKeystore()
			if err != nil {
				return a.fail(fmt.Errorf("failed to open keystore: %w", err))
			}
			if err := ks.Set(box, password); err != nil {
				return a.fail(fmt.Errorf("failed to store password: %w", err))
			}

			if username != "" {
				bc := config.BoxConfig{}
				if existing := a.cfg.GetBox(box); existing != nil {
					bc = *existing
				}
				bc.Username = username
				if a.cfg.Boxes == nil {
					a.cfg.Boxes = make(map[string]config.BoxConfig)
				}
				a.cfg.Boxes[box] = bc
				if err := a.cfg.Save(a.configPath()); err != nil {
					return a.fail(fmt.Errorf("failed to save config: %w", err))
				}
			}

			fmt.Fprintf(a.stdout, "Password for %s stored.\n", box)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "basic-auth username to save in the config file")
	return cmd
}

func (a *App) readPassword(box string) (string, error) {
	fmt.Fprintf(a.stdout, "Enter password for %s: ", box)

	// Read without echo if terminal
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.stdout)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (a *App) newAuthListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boxes with a stored password",
		Long:  `List boxes with a stored password. Passwords are never shown.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := a.newKeystore()
			if err != nil {
				return a.fail(fmt.Errorf("failed to open keystore: %w", err))
			}
			names, err := ks.List()
			if err != nil {
				return a.fail(fmt.Errorf("failed to list passwords: %w", err))
			}
			if a.jsonOutput {
				if names == nil {
					names = []string{}
				}
				return a.writeJSON(names)
			}
			if len(names) == 0 {
				fmt.Fprintln(a.stdout, "No passwords stored.")
				return nil
			}
			for _, name := range names {
				user := ""
				if bc := a.cfg.GetBox(name); bc != nil && bc.Username != "" {
					user = " (user " + bc.Username + ")"
				}
				fmt.Fprintf(a.stdout, "  - %s%s\n", name, user)
			}
			return nil
		},
	}
}

func (a *App) newAuthDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <box>",
		Short: "Delete the stored password for a box",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := a.newKeystore()
			if err != nil {
				return a.fail(fmt.Errorf("failed to open keystore: %w", err))
			}
			if err := ks.Delete(args[0]); err != nil {
				var notFound *keystore.ErrKeyNotFound
				if errors.As(err, &notFound) {
					return a.fail(fmt.Errorf("no password stored for %s", args[0]))
				}
				return a.fail(fmt.Errorf("failed to delete password: %w", err))
			}
			fmt.Fprintf(a.stdout, "Password for %s deleted.\n", args[0])
			return nil
		},
	}
}
