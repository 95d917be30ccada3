package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sgilissen/DemoscenePackBuilder/internal/config"
	"github.com/sgilissen/DemoscenePackBuilder/internal/download"
	"github.com/sgilissen/DemoscenePackBuilder/internal/filter"
	"github.com/sgilissen/DemoscenePackBuilder/internal/pipeline"
	"github.com/sgilissen/DemoscenePackBuilder/internal/resolver"
	"github.com/sgilissen/DemoscenePackBuilder/pkg/demozoo"
)

var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "dpbuilder",
	Short: "Build demoscene packs from the Demozoo catalog",
	Long: `dpbuilder - demoscene pack builder

Queries Demozoo for demos matching a platform and competition
criteria, then downloads each release into its own folder to
build a browsable pack.

Examples:
  dpbuilder -l                                  # list known platforms
  dpbuilder -p "amiga aga" -c 3 -r 2010-01-01   # AGA podium demos since 2010
  dpbuilder --platform-id 4 -o /mnt/packs`,
	SilenceUsage: true,
	RunE:         runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.Flags().BoolP("list-platforms", "l", false, "List the platforms Demozoo knows about")
	rootCmd.Flags().StringP("platform", "p", "", "Platform name (fuzzy matched)")
	rootCmd.Flags().Int("platform-id", 0, "Platform ID (exact, see --list-platforms)")
	rootCmd.Flags().IntP("competition-place", "c", 0, "Keep entries placed at or above this rank")
	rootCmd.Flags().StringP("released-since", "r", "", "Keep productions released on or after this date (YYYY-MM-DD)")
	rootCmd.Flags().StringP("output", "o", "", "Output directory (default ~/DPBuilder)")
	rootCmd.MarkFlagsMutuallyExclusive("platform", "platform-id")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("dpbuilder {{.Version}}\n")
}

func runRoot(cmd *cobra.Command, args []string) error {
	listFlag, _ := cmd.Flags().GetBool("list-platforms")
	platformName, _ := cmd.Flags().GetString("platform")
	platformID, _ := cmd.Flags().GetInt("platform-id")
	minPlace, _ := cmd.Flags().GetInt("competition-place")
	sinceFlag, _ := cmd.Flags().GetString("released-since")
	outputFlag, _ := cmd.Flags().GetString("output")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := demozoo.New(
		demozoo.WithBaseURL(cfg.API.BaseURL),
		demozoo.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		demozoo.WithLogger(logger),
	)

	if listFlag {
		return listPlatforms(ctx, client)
	}

	if platformName == "" && platformID == 0 {
		return fmt.Errorf("a platform is required: use -p/--platform or --platform-id (try -l to list them)")
	}

	criteria, query, err := buildCriteria(ctx, client, platformName, platformID, minPlace, sinceFlag)
	if err != nil {
		return err
	}

	fmt.Println("Fetching productions from Demozoo...")
	prods, err := client.AllProductions(ctx, query)
	if err != nil {
		return fmt.Errorf("fetch productions: %w", err)
	}

	matched := filter.Apply(criteria, prods)
	if len(matched) == 0 {
		fmt.Println("No matching productions found")
		return nil
	}
	fmt.Printf("Found %d matching productions\n\n", len(matched))

	outDir := cfg.Output.Dir
	if outputFlag != "" {
		outDir = outputFlag
	}

	fetcher := download.New(
		download.WithHTTPClient(&http.Client{Timeout: cfg.Download.Timeout}),
		download.WithLogger(logger),
		download.WithProgress(printProgress),
	)
	pipe := pipeline.New(resolver.New(cfg.Download.LinkClasses), fetcher,
		pipeline.WithDelay(cfg.Download.Delay),
		pipeline.WithLogger(logger),
		pipeline.WithStartHook(printProductionStart),
	)

	report, runErr := pipe.Run(ctx, matched, outDir)
	if report != nil {
		printReport(report, outDir)
	}
	if runErr != nil {
		return runErr
	}
	if report.AllFailed() {
		return fmt.Errorf("all %d downloads failed", report.Attempted())
	}
	return nil
}

// buildCriteria resolves the platform flags against the live platform
// list and translates the remaining flags into filter criteria plus
// the narrowest catalog query the API supports.
func buildCriteria(ctx context.Context, client *demozoo.Client, platformName string, platformID, minPlace int, sinceFlag string) (filter.Criteria, demozoo.ProductionQuery, error) {
	var (
		criteria filter.Criteria
		query    demozoo.ProductionQuery
	)

	switch {
	case platformName != "":
		platforms, err := client.Platforms(ctx)
		if err != nil {
			return criteria, query, fmt.Errorf("fetch platforms: %w", err)
		}
		match, ok := filter.MatchPlatform(platformName, platforms)
		if !ok {
			if match.Suggestion != "" {
				return criteria, query, fmt.Errorf("unknown platform %q, did you mean %q?", platformName, match.Suggestion)
			}
			return criteria, query, fmt.Errorf("unknown platform %q (use -l to list platforms)", platformName)
		}
		if !match.Exact {
			fmt.Printf("Platform %q matched as %q\n", platformName, match.Platform.Name)
		}
		criteria.Platform = filter.ByID(match.Platform.ID)
		query.PlatformID = match.Platform.ID
	case platformID != 0:
		criteria.Platform = filter.ByID(platformID)
		query.PlatformID = platformID
	}

	if minPlace > 0 {
		criteria.MinPlacing = &minPlace
		query.MinPlacing = &minPlace
	}

	if sinceFlag != "" {
		since, err := time.Parse("2006-01-02", sinceFlag)
		if err != nil {
			return criteria, query, fmt.Errorf("invalid --released-since %q: expected YYYY-MM-DD", sinceFlag)
		}
		criteria.ReleasedSince = &since
		query.ReleasedSince = &since
	}

	return criteria, query, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config %s:\n  - %s", configPath, strings.Join(errs, "\n  - "))
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	if verbose {
		level = "debug"
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
