// Package policy derives urgency, streaks and labels from tasks and dates.
package policy

import (
	"strings"

	"cloud.google.com/go/civil"
)

// AlertLevel classifies how close a due date is
type AlertLevel string

const (
	AlertRed    AlertLevel = "red"
	AlertOrange AlertLevel = "orange"
	AlertGreen  AlertLevel = "green"
)

// orangeWindow is the largest number of days ahead that still counts as orange
const orangeWindow = 2

// Alert returns red for overdue or due today, orange when due within
// orangeWindow days, and green otherwise
func Alert(due, today civil.Date) AlertLevel {
	days := due.DaysSince(today)
	switch {
	case days <= 0:
		return AlertRed
	case days <= orangeWindow:
		return AlertOrange
	default:
		return AlertGreen
	}
}

// ParseAlertLevel accepts red, orange or green in any case
func ParseAlertLevel(s string) (AlertLevel, bool) {
	switch l := AlertLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case AlertRed, AlertOrange, AlertGreen:
		return l, true
	}
	return "", false
}

func (l AlertLevel) String() string {
	return string(l)
}

// Badge is the upper-case label shown next to a task, e.g. "RED ALERT"
func (l AlertLevel) Badge() string {
	return strings.ToUpper(string(l)) + " ALERT"
}
