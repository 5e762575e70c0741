package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rafael/dmterm/internal/api"
)

var resetYesFlag bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the campaign and start over",
	Long: `Reset the campaign on the narrative service.

This wipes the server-side story state for the campaign. The next turn
starts a brand new adventure. This cannot be undone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReset(os.Stdin)
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYesFlag, "yes", "y", false, "Skip the confirmation prompt")
}

func runReset(in io.Reader) error {
	cfg := loadConfig()
	campaign := effectiveCampaign(cfg)

	if !resetYesFlag {
		fmt.Fprintf(os.Stderr, "Reset campaign %q? The story so far will be lost. [y/N] ", campaign)
		if !confirmFromReader(in) {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			return nil
		}
	}

	client, err := api.NewClient(
		api.WithBaseURL(effectiveServer(cfg)),
		api.WithCampaign(campaign),
		api.WithTimeout(cfg.Timeout()),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	output, err := client.ResetCampaign()
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Reset failed"))
		return fmt.Errorf("reset failed: %w", err)
	}

	msg := output.Detail
	if msg == "" {
		msg = fmt.Sprintf("Campaign %q has been reset", campaign)
	}
	successMsg := lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ " + msg)
	fmt.Println(successMsg)
	return nil
}

// confirmFromReader reads one line and accepts y/yes in any case
func confirmFromReader(in io.Reader) bool {
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
