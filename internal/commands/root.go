// Package commands provides the CLI commands for dmterm.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rafael/dmterm/internal/config"
	"github.com/rafael/dmterm/internal/logger"
	"github.com/rafael/dmterm/internal/render"
)

var (
	// Global flags
	serverFlag   string
	campaignFlag string
	fileFlag     string
	outputFlag   string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dmterm [action]",
	Short: "Terminal client for the AI Dungeon Master",
	Long: `dmterm is a terminal client for the AI Dungeon Master narrative service.
It runs your adventure as a scrolling conversation: describe your actions,
and the Dungeon Master answers with story text.

Examples:
  dmterm                                Start the interactive adventure
  dmterm "Attack the goblin"            Send a single action and print the reply
  dmterm status                         Show your character sheet
  dmterm summary                        Recap the story so far
  dmterm -f action.md                   Read the action from a file
  dmterm reset                          Start the campaign over
  dmterm --campaign dragon_heist        Play a named campaign`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		if logPath, err := config.GetLogPath(); err == nil {
			logger.Init(logPath, cfg.LogLevel, cfg.Verbose)
		}
		render.SetTUITheme(cfg.TUITheme)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("dmterm %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// File input
		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data))
		}

		// Piped input
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data))
		}

		// Single action
		if len(args) > 0 {
			return runQuery(args[0])
		}

		// No input - start the TUI
		return runPlay()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "Narrative service URL (default from config)")
	rootCmd.PersistentFlags().StringVarP(&campaignFlag, "campaign", "c", "", "Campaign name (default from config)")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the action from a file")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save the reply to a file")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the user configuration, falling back to defaults
func loadConfig() config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	return cfg
}

// effectiveServer returns the server URL honoring the --server flag
func effectiveServer(cfg config.Config) string {
	if serverFlag != "" {
		return serverFlag
	}
	return cfg.ServerURL
}

// effectiveCampaign returns the campaign honoring the --campaign flag
func effectiveCampaign(cfg config.Config) string {
	if campaignFlag != "" {
		return campaignFlag
	}
	return cfg.Campaign
}
