package models

import "strings"

// TurnOutput represents a parsed /api/message response
type TurnOutput struct {
	Response string // Narrative text returned by the Dungeon Master
	Initial  bool   // Whether this was the scene-setting turn
}

// Text returns the narrative text with surrounding whitespace trimmed
func (t *TurnOutput) Text() string {
	return strings.TrimSpace(t.Response)
}

// IsEmpty reports whether the server returned no usable narrative
func (t *TurnOutput) IsEmpty() bool {
	return t.Text() == ""
}

// ResetOutput represents a parsed /api/reset response
type ResetOutput struct {
	Status string
	Detail string
}

// OK reports whether the server confirmed the reset
func (r *ResetOutput) OK() bool {
	return r.Status == "success"
}
