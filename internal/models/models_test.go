package models

import (
	"strings"
	"testing"
)

func TestIsMetaCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"summary", true},
		{"status", true},
		{"Summary", true}, // matching ignores case
		{"STATUS", true},
		{"attack the goblin", false},
		{"", false},
		{" status", false}, // input is trimmed before submission, not here
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsMetaCommand(tt.input); got != tt.expected {
				t.Errorf("IsMetaCommand(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMessageConstructors(t *testing.T) {
	user := UserMessage("I open the door")
	if user.Role != RoleUser {
		t.Errorf("UserMessage role = %q, want %q", user.Role, RoleUser)
	}
	if user.Content != "I open the door" {
		t.Errorf("UserMessage content = %q", user.Content)
	}

	dm := AssistantMessage("The door creaks open...")
	if dm.Role != RoleAssistant {
		t.Errorf("AssistantMessage role = %q, want %q", dm.Role, RoleAssistant)
	}
}

func TestErrorMessage(t *testing.T) {
	msg := ErrorMessage("request failed: connection refused")

	if msg.Role != RoleAssistant {
		t.Errorf("ErrorMessage role = %q, want %q", msg.Role, RoleAssistant)
	}
	if !strings.HasPrefix(msg.Content, ErrorMarker) {
		t.Errorf("ErrorMessage content %q should start with the error marker", msg.Content)
	}
	if !strings.Contains(msg.Content, "connection refused") {
		t.Errorf("ErrorMessage content %q should contain the failure detail", msg.Content)
	}
}

func TestTurnOutputText(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
		empty    bool
	}{
		{"plain", "You enter the tavern.", "You enter the tavern.", false},
		{"trims whitespace", "\n  The goblin snarls.  \n", "The goblin snarls.", false},
		{"empty", "", "", true},
		{"whitespace only", "   \n\t", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &TurnOutput{Response: tt.response}
			if got := out.Text(); got != tt.expected {
				t.Errorf("Text() = %q, want %q", got, tt.expected)
			}
			if got := out.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.empty)
			}
		})
	}
}

func TestResetOutputOK(t *testing.T) {
	ok := &ResetOutput{Status: "success", Detail: "deleted campaigns/default"}
	if !ok.OK() {
		t.Error("status success should report OK")
	}

	failed := &ResetOutput{Status: "error", Detail: "permission denied"}
	if failed.OK() {
		t.Error("status error should not report OK")
	}
}

func TestDefaultHeaders(t *testing.T) {
	headers := DefaultHeaders()

	if headers["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", headers["Content-Type"])
	}
	if headers["User-Agent"] == "" {
		t.Error("User-Agent should not be empty")
	}
}

func TestInitialPromptIsStable(t *testing.T) {
	// The server treats the initial prompt as a plain user turn; the exact
	// wording is part of the wire contract with existing campaigns.
	if !strings.Contains(InitialPrompt, "Begin our adventure") {
		t.Errorf("unexpected initial prompt: %q", InitialPrompt)
	}
}
