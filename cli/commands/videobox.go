package commands

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/petal-labs/machinebox/boxes/videobox"
)

func (a *App) newVideoboxCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videobox",
		Short: "Analyse videos with videobox",
	}
	cmd.AddCommand(
		a.newVideoCheckCommand(),
		a.newVideoStatusCommand(),
		a.newVideoResultsCommand(),
	)
	return cmd
}

func (a *App) newVideoCheckCommand() *cobra.Command {
	var (
		skipSeconds int
		keep        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "check <video-url>",
		Short: "Start processing a video",
		Long:  `Start processing a video. Prints the job ID to pass to status and results.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vb, err := boxAs[*videobox.Videobox](a, videobox.BoxID)
			if err != nil {
				return a.fail(err)
			}
			b := videobox.NewCheckOptions()
			if skipSeconds > 0 {
				b.SkipSeconds(skipSeconds)
			}
			if keep > 0 {
				b.ResultDuration(keep)
			}
			video, err := vb.CheckURL(cmd.Context(), args[0], b.Finish())
			if err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(video)
			}
			fmt.Fprintln(a.stdout, video.ID)
			return nil
		},
	}
	cmd.Flags().IntVar(&skipSeconds, "skip-seconds", 0, "seconds skipped between extracted frames")
	cmd.Flags().DurationVar(&keep, "keep", 0, "how long the box keeps the results")
	return cmd
}

func (a *App) newVideoStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id>",
		Short: "Show the progress of a video job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vb, err := boxAs[*videobox.Videobox](a, videobox.BoxID)
			if err != nil {
				return a.fail(err)
			}
			video, err := vb.Status(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(video)
			}

			c := a.paint(color.FgYellow)
			switch video.Status {
			case videobox.StatusComplete:
				c = a.paint(color.FgGreen)
			case videobox.StatusFailed:
				c = a.paint(color.FgRed)
			}
			fmt.Fprintf(a.stdout, "%s  ", video.ID)
			c.Fprintln(a.stdout, video.Status)
			if video.FramesCount > 0 {
				fmt.Fprintf(a.stdout, "  frames: %d/%d\n", video.FramesComplete, video.FramesCount)
			}
			if video.DownloadTotal > 0 {
				fmt.Fprintf(a.stdout, "  download: %d/%d bytes\n", video.DownloadComplete, video.DownloadTotal)
			}
			if video.Expires != "" {
				fmt.Fprintf(a.stdout, "  expires: %s\n", video.Expires)
			}
			return nil
		},
	}
}

func (a *App) newVideoResultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "results <id>",
		Short: "Show what was found in a processed video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vb, err := boxAs[*videobox.Videobox](a, videobox.BoxID)
			if err != nil {
				return a.fail(err)
			}
			analysis, err := vb.Results(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}
			if a.jsonOutput {
				return a.writeJSON(analysis)
			}

			if analysis.Facebox != nil {
				a.printItems("faces", analysis.Facebox.Faces)
			}
			if analysis.Tagbox != nil {
				a.printItems("tags", analysis.Tagbox.Tags)
			}
			if analysis.Nudebox != nil {
				a.printItems("nudity", analysis.Nudebox.Nudity)
			}
			return nil
		},
	}
}

func (a *App) printItems(title string, items []videobox.Item) {
	a.paint(color.Bold).Fprintf(a.stdout, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(a.stdout, "  %s\n", item.Key)
		for _, r := range item.Instances {
			start := time.Duration(r.StartMS) * time.Millisecond
			end := time.Duration(r.EndMS) * time.Millisecond
			fmt.Fprintf(a.stdout, "    %v - %v\n", start, end)
		}
	}
}
