package session

import "calcpad/internal/engine"

// EventsRequest is the JSON body for POST /sessions/{id}/events.
type EventsRequest struct {
	Events []engine.Event `json:"events"`
}

// KeysRequest is the JSON body for POST /sessions/{id}/keys. Keys use
// the browser KeyboardEvent.key naming ("5", ".", "Enter", "Escape").
type KeysRequest struct {
	Keys []string `json:"keys"`
}

// SessionResponse is the JSON response for all session endpoints. The
// request ID travels in the X-Request-ID header.
type SessionResponse struct {
	ID        string `json:"id"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Error     bool   `json:"error"`
	Applied   int    `json:"applied,omitempty"`
}

func sessionResponse(id string, snap Snapshot, applied int) SessionResponse {
	return SessionResponse{
		ID:        id,
		Primary:   snap.Primary,
		Secondary: snap.Secondary,
		Error:     snap.Error,
		Applied:   applied,
	}
}
