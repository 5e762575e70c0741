package commands

import (
	"testing"

	"github.com/rafael/dmterm/internal/config"
)

func TestRootCommand_Help(t *testing.T) {
	cmd := rootCmd
	if cmd.Use != "dmterm [action]" {
		t.Errorf("Expected use 'dmterm [action]', got %s", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestRootCommand_Args(t *testing.T) {
	if rootCmd.Args == nil {
		t.Error("Args validation should be configured")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := map[string]bool{"play": false, "reset": false, "config": false}
	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Expected subcommand %q to be registered", name)
		}
	}
}

func TestEffectiveServer(t *testing.T) {
	cfg := config.Config{ServerURL: "http://config:8000"}

	tests := []struct {
		name string
		flag string
		want string
	}{
		{"flag wins", "http://flag:9000", "http://flag:9000"},
		{"config fallback", "", "http://config:8000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := serverFlag
			serverFlag = tt.flag
			defer func() { serverFlag = old }()

			if got := effectiveServer(cfg); got != tt.want {
				t.Errorf("effectiveServer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEffectiveCampaign(t *testing.T) {
	cfg := config.Config{Campaign: "from_config"}

	tests := []struct {
		name string
		flag string
		want string
	}{
		{"flag wins", "dragon_heist", "dragon_heist"},
		{"config fallback", "", "from_config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := campaignFlag
			campaignFlag = tt.flag
			defer func() { campaignFlag = old }()

			if got := effectiveCampaign(cfg); got != tt.want {
				t.Errorf("effectiveCampaign() = %q, want %q", got, tt.want)
			}
		})
	}
}
