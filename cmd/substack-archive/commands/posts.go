package commands

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"substack-archiver/lib/archiver"
	"substack-archiver/lib/scrapers/substack"
	"substack-archiver/lib/util/serviceutil"
)

func init() {
	rootCmd.AddCommand(postsCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

var postsCmd = &cobra.Command{
	Use:   "posts <publication>",
	Short: "Lists the posts in a publication's archive without downloading them.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		opts, err := buildOptions(args[0])
		if err != nil {
			serviceutil.Fatal("invalid options", err)
		}
		a, err := archiver.New(opts)
		if err != nil {
			serviceutil.Fatal("failed to initialize archiver", err)
		}

		publication, err := a.ResolvePublication(ctx)
		if err != nil {
			serviceutil.Fatal("failed to resolve publication", err)
		}
		refs, err := a.DiscoverPosts(ctx, publication.BaseUrl, substack.DateRange{})
		if err != nil {
			serviceutil.Fatal("failed to list posts", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Date", "Title", "Paid", "Url"})
		for _, ref := range refs {
			date := ""
			if !ref.PublishedAt.IsZero() {
				date = ref.PublishedAt.Format(time.DateOnly)
			}
			t.AppendRow(table.Row{date, ref.Title, ref.Paid, ref.Url})
		}
		t.Render()
	},
}
