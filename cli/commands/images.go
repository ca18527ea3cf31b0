package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/petal-labs/machinebox/boxes/facebox"
	"github.com/petal-labs/machinebox/boxes/tagbox"
)

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

const imageArgHelp = `<image> is an http(s) URL, which the box downloads, or a local file,
which is uploaded.`

func (a *App) newFaceboxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facebox",
		Short: "Detect and recognise faces with facebox",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <image>",
		Short: "Find faces in an image",
		Long:  "Find faces in an image and name the ones facebox has been taught.\n\n" + imageArgHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fb, err := boxAs[*facebox.Facebox](a, facebox.BoxID)
			if err != nil {
				return a.fail(err)
			}

			var resp *facebox.CheckResponse
			if isURL(args[0]) {
				resp, err = fb.CheckURL(cmd.Context(), args[0])
			} else {
				f, openErr := os.Open(args[0])
				if openErr != nil {
					return a.fail(openErr)
				}
				defer f.Close()
				resp, err = fb.Check(cmd.Context(), f)
			}
			if err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(resp)
			}

			fmt.Fprintf(a.stdout, "%d faces\n", len(resp.Faces))
			matched := a.paint(color.FgGreen, color.Bold)
			for _, face := range resp.Faces {
				r := face.Rect
				fmt.Fprintf(a.stdout, "  at %d,%d %dx%d  ", r.Left, r.Top, r.Width, r.Height)
				if face.Matched {
					matched.Fprint(a.stdout, face.Name)
					fmt.Fprintf(a.stdout, " (%s, confidence %.2f)\n", face.ID, face.Confidence)
				} else {
					fmt.Fprintln(a.stdout, "unknown")
				}
			}
			return nil
		},
	})
	return cmd
}

func (a *App) newTagboxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tagbox",
		Short: "Tag images with tagbox",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <image>",
		Short: "List the tags that describe an image",
		Long:  "List the tags that describe an image, most confident first.\n\n" + imageArgHelp,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tb, err := boxAs[*tagbox.Tagbox](a, tagbox.BoxID)
			if err != nil {
				return a.fail(err)
			}

			var resp *tagbox.CheckResponse
			if isURL(args[0]) {
				resp, err = tb.CheckURL(cmd.Context(), args[0])
			} else {
				f, openErr := os.Open(args[0])
				if openErr != nil {
					return a.fail(openErr)
				}
				defer f.Close()
				resp, err = tb.Check(cmd.Context(), f)
			}
			if err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(resp)
			}

			a.printTags(resp.Tags)
			if len(resp.CustomTags) > 0 {
				a.paint(color.Bold).Fprintln(a.stdout, "custom:")
				a.printTags(resp.CustomTags)
			}
			return nil
		},
	})
	return cmd
}

func (a *App) printTags(tags []tagbox.Tag) {
	for _, t := range tags {
		if t.Confidence != nil {
			fmt.Fprintf(a.stdout, "  %-20s %.2f\n", t.Tag, *t.Confidence)
		} else {
			fmt.Fprintf(a.stdout, "  %s\n", t.Tag)
		}
	}
}
