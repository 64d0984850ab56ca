package model

import "time"

// AlertLevel separates informational run events from degradations.
type AlertLevel string

const (
	AlertInfo    AlertLevel = "info"
	AlertWarning AlertLevel = "warning"
	AlertError   AlertLevel = "error"
)

// Alert is a structured run event surfaced to the operator alongside the
// final report set. Recoverable failures become alerts, not aborts.
type Alert struct {
	Level    AlertLevel
	Provider string
	Report   string
	Message  string
	Time     time.Time
}
