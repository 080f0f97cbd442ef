package model

import "time"

// Registration pairs a contest and a user; the store enforces at most one
// per (contest_id, user_id). It gates question visibility.
type Registration struct {
	ID        string    `json:"id"`
	ContestID string    `json:"contest_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
