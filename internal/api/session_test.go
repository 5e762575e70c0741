package api

import (
	"errors"
	"testing"

	"github.com/rafael/dmterm/internal/models"
)

func TestSessionSendMessage(t *testing.T) {
	mock := &MockDMClient{
		SendMessageVal: &models.TurnOutput{Response: "The goblin dodges!"},
	}
	session := NewSession(mock)

	out, err := session.SendMessage("attack the goblin")
	if err != nil {
		t.Fatalf("SendMessage() returned error: %v", err)
	}

	if out.Text() != "The goblin dodges!" {
		t.Errorf("Text() = %q", out.Text())
	}
	if mock.LastInput != "attack the goblin" {
		t.Errorf("client received input %q", mock.LastInput)
	}
	if mock.LastInitial {
		t.Error("normal turns should not set the initial flag")
	}
	if session.Turns() != 1 {
		t.Errorf("Turns() = %d, want 1", session.Turns())
	}
	if session.LastOutput() != out {
		t.Error("LastOutput() should return the latest narrative")
	}
}

func TestSessionSendInitial(t *testing.T) {
	mock := &MockDMClient{}
	session := NewSession(mock)

	if _, err := session.SendInitial(); err != nil {
		t.Fatalf("SendInitial() returned error: %v", err)
	}

	if mock.LastInput != models.InitialPrompt {
		t.Errorf("client received %q, want the fixed initial prompt", mock.LastInput)
	}
	if !mock.LastInitial {
		t.Error("SendInitial should set the initial flag")
	}
}

func TestSessionSendMessageError(t *testing.T) {
	mock := &MockDMClient{SendMessageErr: errors.New("boom")}
	session := NewSession(mock)

	if _, err := session.SendMessage("attack"); err == nil {
		t.Fatal("expected error from client")
	}

	// Failed turns don't count and don't replace the last narrative
	if session.Turns() != 0 {
		t.Errorf("Turns() = %d, want 0 after failure", session.Turns())
	}
	if session.LastOutput() != nil {
		t.Error("LastOutput() should stay nil after failure")
	}
}

func TestSessionReset(t *testing.T) {
	mock := &MockDMClient{}
	session := NewSession(mock)

	if _, err := session.SendMessage("look"); err != nil {
		t.Fatal(err)
	}
	if session.Turns() != 1 {
		t.Fatalf("Turns() = %d, want 1", session.Turns())
	}

	out, err := session.Reset()
	if err != nil {
		t.Fatalf("Reset() returned error: %v", err)
	}
	if !out.OK() {
		t.Error("reset should report success")
	}

	if session.Turns() != 0 {
		t.Errorf("Turns() = %d, want 0 after reset", session.Turns())
	}
	if session.LastOutput() != nil {
		t.Error("LastOutput() should be cleared by reset")
	}
	if mock.ResetCampaignCalled != 1 {
		t.Errorf("ResetCampaign called %d times, want 1", mock.ResetCampaignCalled)
	}
}

func TestSessionResetFailureKeepsState(t *testing.T) {
	mock := &MockDMClient{}
	session := NewSession(mock)

	if _, err := session.SendMessage("look"); err != nil {
		t.Fatal(err)
	}

	mock.ResetCampaignErr = errors.New("server unreachable")
	if _, err := session.Reset(); err == nil {
		t.Fatal("expected reset error")
	}

	if session.Turns() != 1 {
		t.Errorf("Turns() = %d, failed reset should not clear session state", session.Turns())
	}
	if session.LastOutput() == nil {
		t.Error("failed reset should keep the last narrative")
	}
}

func TestSessionCampaign(t *testing.T) {
	mock := &MockDMClient{CampaignVal: "dragon_heist"}
	session := NewSession(mock)

	if session.Campaign() != "dragon_heist" {
		t.Errorf("Campaign() = %q", session.Campaign())
	}
}
