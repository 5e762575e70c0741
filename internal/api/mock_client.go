package api

import (
	"github.com/rafael/dmterm/internal/models"
)

// MockDMClient is a mock implementation of DMClientInterface for testing
type MockDMClient struct {
	// Mock return values
	SendMessageVal   *models.TurnOutput
	SendMessageErr   error
	ResetCampaignVal *models.ResetOutput
	ResetCampaignErr error
	CampaignVal      string
	BaseURLVal       string

	// Call counters/recorders
	SendMessageCalled   int
	ResetCampaignCalled int
	CloseCalled         bool
	LastInput           string
	LastInitial         bool
}

// Ensure MockDMClient implements DMClientInterface
var _ DMClientInterface = (*MockDMClient)(nil)

func (m *MockDMClient) SendMessage(input string, initial bool) (*models.TurnOutput, error) {
	m.SendMessageCalled++
	m.LastInput = input
	m.LastInitial = initial
	if m.SendMessageErr != nil {
		return nil, m.SendMessageErr
	}
	if m.SendMessageVal != nil {
		return m.SendMessageVal, nil
	}
	return &models.TurnOutput{Response: "mock narrative", Initial: initial}, nil
}

func (m *MockDMClient) ResetCampaign() (*models.ResetOutput, error) {
	m.ResetCampaignCalled++
	if m.ResetCampaignErr != nil {
		return nil, m.ResetCampaignErr
	}
	if m.ResetCampaignVal != nil {
		return m.ResetCampaignVal, nil
	}
	return &models.ResetOutput{Status: "success", Detail: "mock reset"}, nil
}

func (m *MockDMClient) Campaign() string {
	if m.CampaignVal != "" {
		return m.CampaignVal
	}
	return models.DefaultCampaign
}

func (m *MockDMClient) BaseURL() string {
	if m.BaseURLVal != "" {
		return m.BaseURLVal
	}
	return models.DefaultServerURL
}

func (m *MockDMClient) Close() {
	m.CloseCalled = true
}
