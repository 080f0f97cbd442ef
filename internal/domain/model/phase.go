package model

import (
	"fmt"
	"time"
)

type Phase string

const (
	PhaseUpcoming Phase = "upcoming"
	PhaseRunning  Phase = "running"
	PhaseEnded    Phase = "ended"
)

// CountdownEnded is the static label shown once a contest is over.
const CountdownEnded = "Contest Ended"

// PhaseAt classifies a contest relative to now. Exactly one phase holds for
// any now: the start boundary is Running, the end boundary is Ended.
func PhaseAt(start, now time.Time, duration time.Duration) Phase {
	if now.Before(start) {
		return PhaseUpcoming
	}
	if now.Before(start.Add(duration)) {
		return PhaseRunning
	}
	return PhaseEnded
}

// CountdownAt renders the human-readable countdown for the phase at now.
func CountdownAt(start, now time.Time, duration time.Duration) string {
	switch PhaseAt(start, now, duration) {
	case PhaseUpcoming:
		until := start.Sub(now)
		days := int(until.Hours()) / 24
		hours := int(until.Hours()) % 24
		minutes := int(until.Minutes()) % 60
		return fmt.Sprintf("Starts in %dd %dh %dm", days, hours, minutes)
	case PhaseRunning:
		left := start.Add(duration).Sub(now)
		hours := int(left.Hours())
		minutes := int(left.Minutes()) % 60
		seconds := int(left.Seconds()) % 60
		return fmt.Sprintf("Ends in %dh %dm %ds", hours, minutes, seconds)
	default:
		return CountdownEnded
	}
}
