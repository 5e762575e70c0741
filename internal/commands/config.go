package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rafael/dmterm/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the current configuration",
	Long: `Show the configuration dmterm is running with, including
environment overrides (DM_SERVER_URL, DM_CAMPAIGN, DM_LOG_LEVEL).

Edit the file directly, or use 'config init' to write the defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit()
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow() error {
	cfg := loadConfig()

	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)
	fmt.Println(dimStyle.Render(path))
	fmt.Println(strings.TrimRight(string(data), "\n"))
	return nil
}

func runConfigInit() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	if err := config.SaveConfig(config.DefaultConfig()); err != nil {
		return err
	}

	successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Wrote " + path)
	fmt.Println(successMsg)
	return nil
}
