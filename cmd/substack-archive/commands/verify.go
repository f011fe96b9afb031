package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"substack-archiver/lib/archiver"
	"substack-archiver/lib/util/serviceutil"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify <publication>",
	Short: "Checks whether the provided session cookie unlocks anything.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		opts, err := buildOptions(args[0])
		if err != nil {
			serviceutil.Fatal("invalid options", err)
		}
		if opts.Credential == "" {
			serviceutil.Fatal("no credential", fmt.Errorf("provide --cookie or --cookie-file"))
		}
		a, err := archiver.New(opts)
		if err != nil {
			serviceutil.Fatal("failed to initialize archiver", err)
		}

		publication, err := a.ResolvePublication(ctx)
		if err != nil {
			serviceutil.Fatal("failed to resolve publication", err)
		}
		ok, err := a.VerifyCredential(ctx, publication.BaseUrl)
		if err != nil {
			serviceutil.Fatal("verification failed", err)
		}
		if ok {
			slog.Info("credential is active", "publication", publication.Name)
		} else {
			slog.Warn("credential has no visible effect", "publication", publication.Name)
		}
	},
}
