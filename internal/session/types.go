package session

// DisplayState mirrors the calculator's display surface: the text shown
// after the last operation and whether the error visual state is active.
type DisplayState struct {
	Text  string `json:"text"`
	Error bool   `json:"error_state"`
}

// PressRequest is the JSON body for POST /keypad/{sessionID}/press.
type PressRequest struct {
	Key string `json:"key"` // key name, e.g. "5", "+", "Enter", "Backspace"
}

// KeysRequest is the JSON body for POST /keypad/{sessionID}/keys. Keys are
// applied rune by rune, so only single-character key names are accepted.
type KeysRequest struct {
	Keys string `json:"keys"`
}

// SessionResponse is the JSON response for session create and read.
type SessionResponse struct {
	SessionID string       `json:"session_id"`
	Display   DisplayState `json:"display"`
	RequestID string       `json:"request_id"`
}

// PressResponse is the JSON response for a single key press.
type PressResponse struct {
	SessionID string       `json:"session_id"`
	Key       string       `json:"key"`
	Display   DisplayState `json:"display"`
	RequestID string       `json:"request_id"`
}

// KeysResponse is the JSON response for a batch of key presses.
type KeysResponse struct {
	SessionID string       `json:"session_id"`
	Applied   int          `json:"applied"`
	Display   DisplayState `json:"display"`
	RequestID string       `json:"request_id"`
}
