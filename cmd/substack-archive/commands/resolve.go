package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"substack-archiver/lib/archiver"
	"substack-archiver/lib/util/serviceutil"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <publication>",
	Short: "Resolves a publication's real origin and shows its metadata.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := buildOptions(args[0])
		if err != nil {
			serviceutil.Fatal("invalid options", err)
		}
		a, err := archiver.New(opts)
		if err != nil {
			serviceutil.Fatal("failed to initialize archiver", err)
		}

		publication, err := a.ResolvePublication(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to resolve publication", err)
		}

		t := newTable()
		t.AppendRows([]table.Row{
			{"Name", publication.Name},
			{"Identifier", publication.Identifier},
			{"Author", publication.Author},
			{"Base url", publication.BaseUrl},
			{"Paid content", publication.HasPaidContent},
			{"Description", publication.Description},
		})
		t.Render()
	},
}
