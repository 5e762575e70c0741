// Package models defines the data types and protocol constants shared by the
// dmterm client packages.
package models

import "strings"

// Narrative Service endpoints (relative to the configured server URL)
const (
	EndpointMessage = "/api/message"
	EndpointReset   = "/api/reset"
)

// DefaultServerURL is the local development address of the Narrative Service
const DefaultServerURL = "http://localhost:8000"

// DefaultCampaign is the campaign used when none is configured
const DefaultCampaign = "default"

// InitialPrompt is the fixed scene-setting prompt sent when a campaign has no
// history yet. Sent with initial=true so the server does not record it as a
// player turn.
const InitialPrompt = "Begin our adventure! Introduce the setting and give me my first choice."

// ErrorMarker prefixes synthetic assistant messages created from failed requests
const ErrorMarker = "❌"

// Meta-commands are fixed keywords sent as plain message content. The server
// answers them with a non-narrative response; the client does not echo them as
// player turns.
const (
	MetaSummary = "summary"
	MetaStatus  = "status"
)

// IsMetaCommand reports whether input is one of the fixed meta-command
// keywords. Matching is case-insensitive; the input is still sent verbatim.
func IsMetaCommand(input string) bool {
	switch strings.ToLower(input) {
	case MetaSummary, MetaStatus:
		return true
	default:
		return false
	}
}

// DefaultHeaders returns the headers sent with every Narrative Service request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "dmterm/0.1.0",
	}
}
