package commands

import (
	"encoding/json"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// isTerminal reports whether stdout is an interactive terminal.
func (a *App) isTerminal() bool {
	f, ok := a.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// paint returns a color that is only applied when stdout is a terminal.
func (a *App) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if !a.isTerminal() {
		c.DisableColor()
	}
	return c
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
