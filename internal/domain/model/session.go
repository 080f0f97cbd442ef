package model

// SessionChange describes one session lifecycle transition (login or
// sign-out). It is what session observers receive and what instances publish
// to each other.
type SessionChange struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Active    bool   `json:"active"`
}
