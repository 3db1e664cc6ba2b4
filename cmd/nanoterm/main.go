package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kurtsley/nanoterm/internal/config"
	"github.com/kurtsley/nanoterm/internal/feed"
	"github.com/kurtsley/nanoterm/internal/frame"
	"github.com/kurtsley/nanoterm/internal/logging"
	"github.com/kurtsley/nanoterm/internal/logo"
	"github.com/kurtsley/nanoterm/internal/metrics"
	"github.com/kurtsley/nanoterm/internal/quote"
	"github.com/kurtsley/nanoterm/internal/tui"
	"github.com/kurtsley/nanoterm/internal/update"
)

var version = "dev"

const checkTimeout = 15 * time.Second

var rootCmd = &cobra.Command{
	Use:   "nanoterm",
	Short: "Live Nano price dashboard for the terminal",
	Long: `Nanoterm shows the current Nano price with its 24h and 1h changes,
refreshing on a fixed tick. Press q to exit.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade nanoterm to the latest release",
	Long:  `Downloads the latest GitHub release, verifies its checksum and replaces the running binary.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Current version: %s\n", version)
		fmt.Fprintln(out, "Checking for updates...")

		installed, err := update.Apply(cmd.Context(), version)
		if err != nil {
			return fmt.Errorf("upgrade: %w", err)
		}
		fmt.Fprintf(out, "Upgraded to %s\n", installed)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "nanoterm %s\n", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
		defer cancel()
		release, newer, err := update.Check(ctx, version)
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		switch {
		case update.IsDevBuild(version):
			fmt.Fprintln(out, "Dev build, not checking for updates")
		case newer:
			fmt.Fprintln(out, update.Notice(version, release.Version, update.DetectInstallMethod()))
		default:
			fmt.Fprintln(out, "nanoterm is up to date")
		}
		return nil
	},
}

func init() {
	config.RegisterFlags(rootCmd.Flags())
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")

	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(versionCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cmd.Flags(), ".env")
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = log.Sync() }()

	img, err := logo.Embedded()
	if err != nil {
		log.Error("logo unavailable", zap.Error(err))
		return err
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, log); err != nil {
				log.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	client := quote.NewClient(cfg.Endpoint,
		quote.WithTimeout(cfg.FetchTimeout),
		quote.WithRetries(cfg.Retries),
		quote.WithRetryWait(cfg.RetryMin, cfg.RetryMax),
		quote.WithLogger(log),
	)
	tracker := feed.NewTracker(feed.TrackerConfig{
		Interval:    cfg.Tick,
		Backoff:     feed.Backoff{Min: cfg.RetryMin, Max: cfg.RetryMax},
		MaxFailures: cfg.MaxFailures,
		Logger:      log,
	})

	mode := tui.ModeMailbox
	if cfg.Serial {
		mode = tui.ModeSerial
	}

	return tui.Run(ctx, tui.Config{
		Source:   quote.Instrument(client),
		Tick:     cfg.Tick,
		Mode:     mode,
		Composer: frame.Composer{Title: frame.DefaultTitle, Format: cfg.Format()},
		Logo:     img,
		Tracker:  tracker,
		Logger:   log.With(zap.String("component", "tui")),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "nanoterm: %v\n", err)
		os.Exit(1)
	}
}
