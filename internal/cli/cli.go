package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pfrederiksen/golf-league/internal/config"
	"github.com/pfrederiksen/golf-league/internal/livefeed"
	"github.com/pfrederiksen/golf-league/internal/logger"
	"github.com/pfrederiksen/golf-league/internal/metrics"
	"github.com/pfrederiksen/golf-league/internal/scraper"
	"github.com/pfrederiksen/golf-league/internal/session"
	"github.com/pfrederiksen/golf-league/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// rootFlags are the global flags. Empty values leave the configured setting alone.
type rootFlags struct {
	envFile     string
	dataDir     string
	storage     string
	logLevel    string
	logFormat   string
	metricsFile string
	format      string
}

// app carries what every command needs once the root command has run
type app struct {
	out    io.Writer
	flags  rootFlags
	cfg    *config.Config
	format OutputFormat

	// Overridable sources; nil means build them from the config
	articles   session.ArticleSource
	feed       session.FeedSource
	createGist func(githubToken, description string) (string, error)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{out: os.Stdout})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "golf-league",
		Short: "Track a fantasy golf league's season",
		Long: `A CLI tool to run a fantasy golf league.
Imports tournament results from articles or the live leaderboard, scores each team's
best three golfers per tournament and reports season standings.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.writeMetrics()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.flags.envFile, "env-file", "", "Path to a .env file (default .env)")
	flags.StringVar(&a.flags.dataDir, "data-dir", "", "Data directory for file storage")
	flags.StringVar(&a.flags.storage, "storage", "", "Storage backend: file, gist or redis")
	flags.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&a.flags.logFormat, "log-format", "", "Log format: json or text")
	flags.StringVar(&a.flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	flags.StringVar(&a.flags.format, "format", "text", "Output format: text or json")

	cmd.AddCommand(
		newPayoutCmd(a),
		newImportCmd(a),
		newLiveCmd(a),
		newFieldStatusCmd(a),
		newStandingsCmd(a),
		newHistoryCmd(a),
		newStatsCmd(a),
		newTournamentCmd(a),
		newTeamCmd(a),
		newExportCmd(a),
		newRestoreCmd(a),
		newNotifyCmd(a),
		newGistInitCmd(a),
	)
	return cmd
}

// setup loads the configuration, applies flag overrides and configures logging
func (a *app) setup(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(a.flags.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", a.flags.format)
	}
	a.format = format

	cfg, err := config.Load(a.flags.envFile)
	if err != nil {
		return err
	}
	override(&cfg.DataDir, a.flags.dataDir)
	override(&cfg.Storage, strings.ToLower(a.flags.storage))
	override(&cfg.LogLevel, a.flags.logLevel)
	override(&cfg.LogFormat, strings.ToLower(a.flags.logFormat))
	override(&cfg.MetricsFile, a.flags.metricsFile)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), logger.Format(cfg.LogFormat), os.Stderr))
	logger.Debug("Configuration loaded", logger.Fields{
		"storage":  cfg.Storage,
		"data_dir": cfg.DataDir,
	})
	return nil
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func (a *app) writeMetrics() error {
	if a.cfg == nil || a.cfg.MetricsFile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// openStorage builds the configured storage backend
func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage {
	case config.StorageGist:
		return storage.NewGistStorage(cfg.GistID, cfg.GitHubToken, cfg.EncryptionKey)
	case config.StorageRedis:
		return storage.NewRedisStorage(cfg.RedisURL, cfg.RedisKey)
	default:
		return storage.NewFileStorage(cfg.DataDir)
	}
}

// session opens a session against the configured store
func (a *app) session() (*session.Session, error) {
	store, err := openStorage(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	articles := a.articles
	if articles == nil {
		articles = scraper.NewWithTimeout(a.cfg.ArticleTimeout)
	}
	feed := a.feed
	if feed == nil {
		feed = livefeed.NewWithTimeout(a.cfg.FeedTimeout, a.cfg.ScoreboardURL, a.cfg.LeaderboardURL)
	}
	return session.Open(store, articles, feed)
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
