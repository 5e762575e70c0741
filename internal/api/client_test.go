package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/rafael/dmterm/internal/errors"
	"github.com/rafael/dmterm/internal/models"
)

func newTestClient(t *testing.T, serverURL string, opts ...ClientOption) *DMClient {
	t.Helper()

	opts = append([]ClientOption{WithBaseURL(serverURL)}, opts...)
	client, err := NewClient(opts...)
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

func TestSendMessage(t *testing.T) {
	var gotBody messageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != models.EndpointMessage {
			t.Errorf("path = %s, want %s", r.URL.Path, models.EndpointMessage)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "You stand at the crossroads."})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithCampaign("dragon_heist"))

	out, err := client.SendMessage("look around", false)
	if err != nil {
		t.Fatalf("SendMessage() returned error: %v", err)
	}

	if out.Text() != "You stand at the crossroads." {
		t.Errorf("Text() = %q", out.Text())
	}
	if gotBody.Input != "look around" {
		t.Errorf("request input = %q, want 'look around'", gotBody.Input)
	}
	if gotBody.CampaignName != "dragon_heist" {
		t.Errorf("request campaign = %q, want dragon_heist", gotBody.CampaignName)
	}
	if gotBody.Initial {
		t.Error("initial flag should be false for normal turns")
	}
}

func TestSendMessageInitial(t *testing.T) {
	var gotBody messageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "The adventure begins..."})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	out, err := client.SendMessage(models.InitialPrompt, true)
	if err != nil {
		t.Fatalf("SendMessage() returned error: %v", err)
	}

	if !gotBody.Initial {
		t.Error("initial flag should be true for the scene-setting prompt")
	}
	if gotBody.Input != models.InitialPrompt {
		t.Errorf("request input = %q, want the initial prompt", gotBody.Input)
	}
	if !out.Initial {
		t.Error("TurnOutput.Initial should be true")
	}
}

func TestSendMessageEmptyInput(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")

	_, err := client.SendMessage("", false)
	if !errors.Is(err, apierrors.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestSendMessageHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "model unavailable"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.SendMessage("attack", false)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
	if apiErr.Message != "model unavailable" {
		t.Errorf("Message = %q, want the server detail", apiErr.Message)
	}
}

func TestSendMessageNetworkError(t *testing.T) {
	// Nothing listens on this port
	client := newTestClient(t, "http://127.0.0.1:1")

	_, err := client.SendMessage("attack", false)
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if !apierrors.IsNetworkError(err) {
		t.Errorf("expected NetworkError, got %T: %v", err, err)
	}
}

func TestSendMessageMissingResponseField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"unexpected": "shape"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.SendMessage("attack", false)
	if !errors.Is(err, apierrors.ErrInvalidResponse) {
		t.Errorf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestSendMessageEmptyNarrative(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "   "})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.SendMessage("attack", false)
	if !errors.Is(err, apierrors.ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestResetCampaign(t *testing.T) {
	var gotBody resetRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != models.EndpointReset {
			t.Errorf("path = %s, want %s", r.URL.Path, models.EndpointReset)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "success",
			"detail": "deleted campaigns/dragon_heist",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, WithCampaign("dragon_heist"))

	out, err := client.ResetCampaign()
	if err != nil {
		t.Fatalf("ResetCampaign() returned error: %v", err)
	}

	if gotBody.CampaignName != "dragon_heist" {
		t.Errorf("request campaign = %q, want dragon_heist", gotBody.CampaignName)
	}
	if !out.OK() {
		t.Error("reset should report success")
	}
}

func TestResetCampaignServerReportedFailure(t *testing.T) {
	// The reset endpoint reports some failures inside a 200 body
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "error",
			"detail": "failed to delete campaign folder",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.ResetCampaign()
	if err == nil {
		t.Fatal("expected error when server reports status=error")
	}

	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
}

func TestClientClosed(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	client.Close()

	if !client.IsClosed() {
		t.Error("IsClosed() should be true after Close()")
	}
	if _, err := client.SendMessage("attack", false); err == nil {
		t.Error("SendMessage on closed client should fail")
	}
	if _, err := client.ResetCampaign(); err == nil {
		t.Error("ResetCampaign on closed client should fail")
	}
}

func TestClientOptions(t *testing.T) {
	client, err := NewClient(
		WithBaseURL("http://dm.example.com"),
		WithCampaign("curse_of_strahd"),
	)
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}
	defer client.Close()

	if client.BaseURL() != "http://dm.example.com" {
		t.Errorf("BaseURL() = %q", client.BaseURL())
	}
	if client.Campaign() != "curse_of_strahd" {
		t.Errorf("Campaign() = %q", client.Campaign())
	}
}

func TestClientDefaults(t *testing.T) {
	client, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}
	defer client.Close()

	if client.BaseURL() != models.DefaultServerURL {
		t.Errorf("BaseURL() = %q, want default", client.BaseURL())
	}
	if client.Campaign() != models.DefaultCampaign {
		t.Errorf("Campaign() = %q, want default", client.Campaign())
	}
}
