package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/tidwall/gjson"

	apierrors "github.com/rafael/dmterm/internal/errors"
	"github.com/rafael/dmterm/internal/logger"
	"github.com/rafael/dmterm/internal/models"
)

// maxErrorBody caps how much of a failed response body is kept for diagnostics
const maxErrorBody = 4096

// DMClientInterface defines the Narrative Service operations used by the
// session and command layers. Satisfied by DMClient and MockDMClient.
type DMClientInterface interface {
	SendMessage(input string, initial bool) (*models.TurnOutput, error)
	ResetCampaign() (*models.ResetOutput, error)
	Campaign() string
	BaseURL() string
	Close()
}

// messageRequest is the /api/message request body
type messageRequest struct {
	Input        string `json:"input"`
	CampaignName string `json:"campaign_name"`
	Initial      bool   `json:"initial,omitempty"`
}

// resetRequest is the /api/reset request body
type resetRequest struct {
	CampaignName string `json:"campaign_name"`
}

// DMClient is the HTTP client for the Narrative Service
type DMClient struct {
	httpClient tls_client.HttpClient
	baseURL    string
	campaign   string
	timeout    time.Duration
	mu         sync.RWMutex
	closed     bool
}

var _ DMClientInterface = (*DMClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*DMClient)

// WithBaseURL sets the Narrative Service base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *DMClient) {
		c.baseURL = baseURL
	}
}

// WithCampaign sets the campaign identifier sent with every request
func WithCampaign(campaign string) ClientOption {
	return func(c *DMClient) {
		c.campaign = campaign
	}
}

// WithTimeout bounds each request. No retry happens on expiry.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *DMClient) {
		c.timeout = timeout
	}
}

// NewClient creates a new DMClient
func NewClient(opts ...ClientOption) (*DMClient, error) {
	client := &DMClient{
		baseURL:  models.DefaultServerURL,
		campaign: models.DefaultCampaign,
		timeout:  120 * time.Second,
	}

	for _, opt := range opts {
		opt(client)
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(client.timeout.Seconds())),
		tls_client.WithNotFollowRedirects(),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	client.httpClient = httpClient

	return client, nil
}

// Campaign returns the campaign identifier
func (c *DMClient) Campaign() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.campaign
}

// BaseURL returns the Narrative Service base URL
func (c *DMClient) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// Close marks the client as closed; further requests fail fast
func (c *DMClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *DMClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// SendMessage sends player input (or the initial scene-setting prompt when
// initial is true) and returns the Dungeon Master's narrative reply.
func (c *DMClient) SendMessage(input string, initial bool) (*models.TurnOutput, error) {
	if input == "" {
		return nil, apierrors.ErrEmptyInput
	}
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	reqBody := messageRequest{
		Input:        input,
		CampaignName: c.Campaign(),
		Initial:      initial,
	}

	logger.Debug("sending message",
		"endpoint", models.EndpointMessage,
		"campaign", reqBody.CampaignName,
		"initial", initial,
		"input_len", len(input))

	body, err := c.postJSON(models.EndpointMessage, "send message", reqBody)
	if err != nil {
		return nil, err
	}

	response := gjson.GetBytes(body, PathResponse)
	if !response.Exists() {
		return nil, apierrors.NewParseError("missing response field", PathResponse)
	}

	out := &models.TurnOutput{Response: response.String(), Initial: initial}
	if out.IsEmpty() {
		return nil, apierrors.ErrNoContent
	}

	logger.Debug("received narrative", "response_len", len(out.Response))
	return out, nil
}

// ResetCampaign asks the server to wipe the campaign entirely. The server
// deletes history, character and summary; the next initial message starts a
// fresh adventure.
func (c *DMClient) ResetCampaign() (*models.ResetOutput, error) {
	if c.IsClosed() {
		return nil, fmt.Errorf("client is closed")
	}

	logger.Info("resetting campaign", "campaign", c.Campaign())

	body, err := c.postJSON(models.EndpointReset, "reset campaign", resetRequest{CampaignName: c.Campaign()})
	if err != nil {
		return nil, err
	}

	status := gjson.GetBytes(body, PathStatus)
	if !status.Exists() {
		return nil, apierrors.NewParseError("missing status field", PathStatus)
	}

	out := &models.ResetOutput{
		Status: status.String(),
		Detail: gjson.GetBytes(body, PathDetail).String(),
	}

	if !out.OK() {
		return nil, apierrors.NewAPIError(0, models.EndpointReset, out.Detail)
	}

	return out, nil
}

// postJSON performs a JSON POST and returns the raw 2xx response body.
// Transport failures become NetworkError, non-2xx replies become APIError.
func (c *DMClient) postJSON(endpoint, op string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL()+endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("request failed", "op", op, "endpoint", endpoint, "error", err)
		return nil, apierrors.NewNetworkError(op, endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		message := op + " failed"
		if detail := gjson.GetBytes(errorBody, PathErrorDetail); detail.Exists() {
			message = detail.String()
		}
		logger.Error("request rejected", "op", op, "endpoint", endpoint, "status", resp.StatusCode)
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, message, string(errorBody))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetworkError(op, endpoint, err)
	}

	return body, nil
}
