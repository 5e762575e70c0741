package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rafael/dmterm/internal/api"
	"github.com/rafael/dmterm/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the interactive adventure",
	Long: `Start the interactive adventure in a full-screen chat interface.

The Dungeon Master opens with a scene; type your actions naturally.
Type 'status' for your character sheet, 'summary' for a story recap,
'/reset' to start over, '/theme' to switch dark/light mode, and
'exit' or Ctrl+C to leave (your campaign is saved server-side).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay()
	},
}

func runPlay() error {
	cfg := loadConfig()

	client, err := api.NewClient(
		api.WithBaseURL(effectiveServer(cfg)),
		api.WithCampaign(effectiveCampaign(cfg)),
		api.WithTimeout(cfg.Timeout()),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	return tui.Run(api.NewSession(client))
}
