package api

import (
	"sync"

	"github.com/rafael/dmterm/internal/models"
)

// CampaignSession tracks the state of one play session against a campaign.
// The server owns campaign history; the session only counts turns and keeps
// the last narrative for the TUI and clipboard.
type CampaignSession struct {
	client     DMClientInterface
	mu         sync.RWMutex
	turns      int
	lastOutput *models.TurnOutput
}

// NewSession creates a session bound to client's campaign
func NewSession(client DMClientInterface) *CampaignSession {
	return &CampaignSession{client: client}
}

// SendMessage sends a player turn and records the reply
func (s *CampaignSession) SendMessage(input string) (*models.TurnOutput, error) {
	return s.send(input, false)
}

// SendInitial sends the fixed scene-setting prompt. The server answers with
// the opening narrative without recording a player turn.
func (s *CampaignSession) SendInitial() (*models.TurnOutput, error) {
	return s.send(models.InitialPrompt, true)
}

func (s *CampaignSession) send(input string, initial bool) (*models.TurnOutput, error) {
	output, err := s.client.SendMessage(input, initial)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.turns++
	s.lastOutput = output
	s.mu.Unlock()

	return output, nil
}

// Reset wipes the campaign server-side and clears session state on success
func (s *CampaignSession) Reset() (*models.ResetOutput, error) {
	output, err := s.client.ResetCampaign()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.turns = 0
	s.lastOutput = nil
	s.mu.Unlock()

	return output, nil
}

// Campaign returns the campaign identifier
func (s *CampaignSession) Campaign() string {
	return s.client.Campaign()
}

// Turns returns the number of completed exchanges this session
func (s *CampaignSession) Turns() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turns
}

// LastOutput returns the last narrative received, or nil
func (s *CampaignSession) LastOutput() *models.TurnOutput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastOutput
}
