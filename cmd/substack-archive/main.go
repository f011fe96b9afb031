package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"substack-archiver/cmd/substack-archive/commands"
	"substack-archiver/lib/telemetry"
	"substack-archiver/lib/util/serviceutil"
)

func initSlog() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)
}

func main() {
	initSlog()

	ctx := serviceutil.SignalContext()
	t, err := telemetry.SetupFromEnv(ctx, "substack-archive")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	defer t.Shutdown(context.Background())

	commands.ExecuteContext(ctx)
}
