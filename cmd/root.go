package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Riprock/aircall-api/aircall"
	"github.com/Riprock/aircall-api/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *aircall.Client

	appVersion   = "dev"
	appBuildTime = "unknown"

	// Command flags
	filterExpr string
	preset     string
	dryRun     bool
	noConfirm  bool
	limit      int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aircall",
	Short: "A CLI for browsing and managing an Aircall workspace",
	Long: `aircall is a CLI tool for the Aircall phone system API. It lists and
inspects calls, contacts, numbers, users and teams, filters them with
expressions, and performs managed changes with dry-run safety.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion records the build metadata stamped in at link time.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
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
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "d", false, "perform a dry run without making changes")

	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override dry-run from command line if specified
	if cmd.Flags().Changed("dry-run") {
		cfg.Safety.DryRun = dryRun
	}

	opts := []aircall.Option{
		aircall.WithBaseURL(cfg.Aircall.BaseURL),
		aircall.WithTimeout(cfg.Aircall.Timeout),
		aircall.WithPageSize(cfg.Aircall.PageSize),
	}
	if cfg.Aircall.Verbose {
		opts = append(opts, aircall.WithVerbose())
	}

	client, err = aircall.NewClient(cfg.Aircall.APIID, cfg.Aircall.APIToken, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Aircall client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; no color when piped
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to the Aircall API",
	Long:  `Verify credentials against the Aircall API and display basic workspace statistics.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Printf("Testing connection to Aircall at %s...\n", cfg.Aircall.BaseURL)
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	fmt.Println("✓ Connection successful!")

	// Fetch workspace stats concurrently
	var mu sync.Mutex
	stats := make(map[string]int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return collectTotal(ctx, "numbers", client.Numbers.List(), &mu, stats) })
	g.Go(func() error { return collectTotal(ctx, "users", client.Users.List(), &mu, stats) })
	g.Go(func() error { return collectTotal(ctx, "teams", client.Teams.List(), &mu, stats) })
	g.Go(func() error { return collectTotal(ctx, "tags", client.Tags.List(), &mu, stats) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to fetch workspace stats: %w", err)
	}

	fmt.Printf("\nWorkspace statistics:\n")
	for _, name := range []string{"numbers", "users", "teams", "tags"} {
		fmt.Printf("- Total %s: %d\n", name, stats[name])
	}

	return nil
}

// collectTotal reads the total count from the first page of a listing.
func collectTotal[T any](ctx context.Context, name string, it *aircall.Iterator[T], mu *sync.Mutex, stats map[string]int) error {
	it.Next(ctx)
	if err := it.Err(); err != nil {
		return fmt.Errorf("failed to list %s: %w", name, err)
	}

	total := 0
	if meta := it.Meta(); meta != nil {
		total = meta.Total
	}

	mu.Lock()
	stats[name] = total
	mu.Unlock()
	return nil
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if expression, ok := cfg.Filter.Presets[preset]; ok {
			return expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	if cfg.Filter.DefaultExpression != "" {
		return cfg.Filter.DefaultExpression, nil
	}

	return "", nil
}
