package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/edgectl/edgectl/api"
	"github.com/edgectl/edgectl/config"
	"github.com/edgectl/edgectl/edgesql"
	"github.com/edgectl/edgectl/purge"
	"github.com/edgectl/edgectl/storage"
)

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	storageClient *storage.Client
	sqlClient     *edgesql.Client
	purgeClient   *purge.Client

	// Command flags
	debugFlag  bool
	filterExpr string
	pageFlag   int
	sizeFlag   int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "edgectl",
	Short: "Manage Skylift edge storage, databases and cache",
	Long: `edgectl is a CLI for the Skylift edge platform. It manages storage
buckets and their objects, SQL-like edge databases, and cache purge
requests, authenticated with a personal token.`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log raw API requests and responses")
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("debug") {
		cfg.Platform.Debug = debugFlag
	}
	if cfg.Platform.Debug && cfg.Logging.Level == "info" {
		cfg.Logging.Level = "debug"
	}

	logger = setupLogger(cfg.Logging)

	baseURL, err := cfg.ResolveBaseURL()
	if err != nil {
		return fmt.Errorf("failed to resolve base URL: %w", err)
	}

	token, err := resolveToken(cfg)
	if err != nil {
		return err
	}

	apiClient, err := api.NewClient(baseURL, token, logger,
		api.WithDebug(cfg.Platform.Debug),
		api.WithUserAgent("edgectl/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	storageClient = storage.NewClient(apiClient, logger)
	sqlClient = edgesql.NewClient(apiClient, logger)
	purgeClient = purge.NewClient(apiClient, logger)

	return nil
}

// resolveToken prefers the config/env token and falls back to the OS
// keyring. A missing token is tolerated here so auth subcommands can run;
// API calls without a credential fail remotely.
func resolveToken(cfg *config.Config) (string, error) {
	store, err := config.OpenTokenStore()
	if err != nil {
		// Headless environments may have no usable keyring backend.
		logger.Debug().Err(err).Msg("Keyring unavailable")
		return cfg.Platform.Token, nil
	}

	token, err := cfg.ResolveToken(store)
	if err != nil {
		return "", fmt.Errorf("failed to resolve token: %w", err)
	}
	return token, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	noColor := !cfg.Color
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		noColor = true
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// listOptions builds pagination options from the shared --page/--page-size
// flags; zero values fall back to the API defaults.
func listOptions() api.ListOptions {
	return api.ListOptions{Page: pageFlag, PageSize: sizeFlag}
}
