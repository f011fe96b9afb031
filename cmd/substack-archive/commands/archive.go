package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"substack-archiver/lib/archiver"
	"substack-archiver/lib/scrapers/substack"
	"substack-archiver/lib/util/serviceutil"
)

var (
	flagFormat *string
	flagOutput *string
	flagStart  *string
	flagEnd    *string
)

func init() {
	flags := archiveCmd.Flags()
	flagFormat = flags.String("format", "zip", "Output format: zip or epub.")
	flagOutput = flags.String("output", "", "Output filename (defaults to <publication>-archive-<date>.<ext>).")
	flagStart = flags.String("start", "", "Only include posts published on or after this date (YYYY-MM-DD).")
	flagEnd = flags.String("end", "", "Only include posts published on or before this date (YYYY-MM-DD).")
	rootCmd.AddCommand(archiveCmd)
}

func parseDateRange() (substack.DateRange, error) {
	var r substack.DateRange
	if *flagStart != "" {
		t, err := time.Parse(time.DateOnly, *flagStart)
		if err != nil {
			return r, err
		}
		r.Start = t
	}
	if *flagEnd != "" {
		t, err := time.Parse(time.DateOnly, *flagEnd)
		if err != nil {
			return r, err
		}
		r.End = t
	}
	return r, r.Validate()
}

var archiveCmd = &cobra.Command{
	Use:   "archive <publication>",
	Short: "Downloads every post and assembles an archive file.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		format, err := archiver.ParseFormat(*flagFormat)
		if err != nil {
			serviceutil.Fatal("invalid format", err)
		}
		dateRange, err := parseDateRange()
		if err != nil {
			serviceutil.Fatal("invalid date range", err)
		}
		opts, err := buildOptions(args[0])
		if err != nil {
			serviceutil.Fatal("invalid options", err)
		}

		a, err := archiver.New(opts)
		if err != nil {
			serviceutil.Fatal("failed to initialize archiver", err)
		}

		t1 := time.Now()
		result, err := a.Run(ctx, format, dateRange,
			func(index, total int, title string) {
				slog.Info("fetching post", "index", index, "total", total, "title", title)
			},
			func(postIndex, totalPosts int, progress string) {
				slog.Info("downloading images", "progress", progress)
			})
		if err != nil {
			serviceutil.Fatal("archive run failed", err)
		}

		output := *flagOutput
		if output == "" {
			output = result.Filename
		}
		if err := os.WriteFile(output, result.Data, 0644); err != nil {
			serviceutil.Fatal("failed to write archive", err)
		}

		slog.Info("archive complete",
			"publication", result.Publication.Name,
			"posts", result.PostCount,
			"images", result.ImageCount,
			"file", output,
			"seconds", time.Since(t1).Seconds())
	},
}
