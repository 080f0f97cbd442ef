package model

import "time"

type ContestType string

const (
	ContestWeekly   ContestType = "weekly"
	ContestBiweekly ContestType = "biweekly"
	ContestMonthly  ContestType = "monthly"
	ContestSpecial  ContestType = "special"
)

// ContestDuration is fixed for every contest.
const ContestDuration = 2 * time.Hour

// Contest is immutable after creation: no update or delete operation exists.
// Phase is derived from StartTime, never stored.
type Contest struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Slug           string      `json:"slug"`
	StartTime      time.Time   `json:"start_time"`
	Type           ContestType `json:"type"`
	Description    string      `json:"description"`
	Gradient       string      `json:"gradient"`
	CreatedByID    string      `json:"created_by"`
	CreatedByEmail string      `json:"created_by_email"`
	CreatedAt      time.Time   `json:"created_at"`

	RegisteredCount int `json:"registered_count"`
}

func (c *Contest) EndTime() time.Time {
	return c.StartTime.Add(ContestDuration)
}

func (c *Contest) PhaseAt(now time.Time) Phase {
	return PhaseAt(c.StartTime, now, ContestDuration)
}
