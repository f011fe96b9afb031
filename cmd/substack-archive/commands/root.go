package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"substack-archiver/lib/archiver"
	"substack-archiver/lib/configutil"
	"substack-archiver/lib/scrapers/substack"
)

// Config is the optional archiver.json5 file; flags override it.
type Config struct {
	Cookie       string `json:"cookie"`
	UserAgent    string `json:"userAgent"`
	IntervalMs   int    `json:"intervalMs"`
	ImageWorkers int    `json:"imageWorkers"`
}

var (
	flagCookie     *string
	flagCookieFile *string
	flagUserAgent  *string
	flagIntervalMs *int
	flagWorkers    *int
)

var rootCmd = &cobra.Command{
	Use:   "substack-archive",
	Short: "substack-archive downloads a publication's posts into an offline archive.",
}

func init() {
	flags := rootCmd.PersistentFlags()
	flagCookie = flags.String("cookie", "", "Session cookie unlocking paid posts.")
	flagCookieFile = flags.String("cookie-file", "", "File containing the session cookie.")
	flagUserAgent = flags.String("user-agent", "", "Override the browser user agent.")
	flagIntervalMs = flags.Int("interval-ms", 0, "Minimum milliseconds between requests.")
	flagWorkers = flags.Int("workers", 0, "Concurrent image downloads.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readConfig() (Config, error) {
	cfg, err := configutil.ReadRecursively[Config]("archiver.json5")
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

func credential() (string, error) {
	if *flagCookie != "" {
		return *flagCookie, nil
	}
	if *flagCookieFile != "" {
		raw, err := os.ReadFile(*flagCookieFile)
		if err != nil {
			return "", fmt.Errorf("read cookie file: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return "", nil
}

// buildOptions merges config file, flags and the positional
// publication argument into archiver options.
func buildOptions(input string) (archiver.Options, error) {
	identifier, err := substack.ExtractIdentifier(input)
	if err != nil {
		return archiver.Options{}, err
	}

	cfg, err := readConfig()
	if err != nil {
		return archiver.Options{}, err
	}

	cookie, err := credential()
	if err != nil {
		return archiver.Options{}, err
	}
	if cookie == "" {
		cookie = cfg.Cookie
	}

	userAgent := *flagUserAgent
	if userAgent == "" {
		userAgent = cfg.UserAgent
	}
	intervalMs := *flagIntervalMs
	if intervalMs == 0 {
		intervalMs = cfg.IntervalMs
	}
	workers := *flagWorkers
	if workers == 0 {
		workers = cfg.ImageWorkers
	}

	return archiver.Options{
		Identifier:         identifier,
		Credential:         cookie,
		UserAgent:          userAgent,
		MinRequestInterval: time.Duration(intervalMs) * time.Millisecond,
		ImageWorkers:       workers,
	}, nil
}
