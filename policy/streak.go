package policy

import (
	"slices"
	"time"

	"cloud.google.com/go/civil"

	"taskweaver/tasks"
)

// CompletionDates returns the distinct calendar dates, in loc, on which the
// given tasks were completed, most recent first. Tasks without a completion
// time are skipped.
func CompletionDates(ts []*tasks.Task, loc *time.Location) []civil.Date {
	if loc == nil {
		loc = time.Local
	}

	seen := make(map[civil.Date]bool)
	var dates []civil.Date
	for _, t := range ts {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}
		d := civil.DateOf(t.CompletedAt.In(loc))
		if seen[d] {
			continue
		}
		seen[d] = true
		dates = append(dates, d)
	}

	slices.SortFunc(dates, func(a, b civil.Date) int { return b.Compare(a) })
	return dates
}

// Streak counts consecutive days with at least one completion, ending today.
// The i-th most recent completion date must be exactly i days before today;
// the count stops at the first date that is not. A day without completions
// today therefore yields 0 even if yesterday had one.
func Streak(completed []*tasks.Task, today civil.Date, loc *time.Location) int {
	streak := 0
	for i, d := range CompletionDates(completed, loc) {
		if today.DaysSince(d) != i {
			break
		}
		streak = i + 1
	}
	return streak
}
