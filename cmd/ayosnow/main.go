package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ayosnow/cmd/ayosnow/shell"
	"ayosnow/internal/api"
	"ayosnow/internal/config"
	"ayosnow/internal/dashboard"
	"ayosnow/internal/logging"
)

const version = "1.0.0"

var (
	// Global flags
	verbose bool
	apiURL  string
)

// rootCmd launches the interactive client.
var rootCmd = &cobra.Command{
	Use:   "ayosnow",
	Short: "AyosNow - on-demand home services, in your terminal",
	Long: `AyosNow is the terminal client for the AyosNow local-services
marketplace. Customers book vetted professionals for home services;
skilled workers find and accept jobs.

Run without arguments to start the interactive interface.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// versionCmd reports the build version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("AyosNow %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "AyosNow API base URL (overrides config)")
	rootCmd.AddCommand(versionCmd)
}

func runInteractive() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}

	// The TUI owns stdout, so logs go to a file under the state dir.
	logger, closeLogger, err := logging.New(cfg.LogPath(), verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer closeLogger()

	logger.Info("starting ayosnow",
		zap.String("version", version), zap.String("api", cfg.APIBaseURL))

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)
	provider := dashboard.NewSimulated(cfg.FetchDelay)

	model := shell.New(*cfg, logger, client, provider)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		return err
	}

	logger.Info("ayosnow stopped")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
