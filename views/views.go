// Package views projects the task store into the ordered lists shown to the user.
// Projections never mutate the store; each builds and discards its own heap.
package views

import (
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/civil"

	"taskweaver/policy"
	"taskweaver/taskheap"
	"taskweaver/tasks"
)

// Selector names a view
type Selector string

const (
	All        Selector = "all"
	Incomplete Selector = "incomplete"
	Urgent     Selector = "urgent"
	Completed  Selector = "completed"
)

// Selectors lists every view in display order
var Selectors = []Selector{All, Incomplete, Urgent, Completed}

// ParseSelector accepts a view name in any case; empty means All
func ParseSelector(s string) (Selector, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return All, nil
	}
	for _, sel := range Selectors {
		if string(sel) == s {
			return sel, nil
		}
	}
	return "", fmt.Errorf("unknown view: %s (use all, incomplete, urgent or completed)", s)
}

// Project returns the tasks for sel in display order:
//
//	all:        incomplete by priority, then completed in store order
//	incomplete: incomplete by priority
//	urgent:     incomplete with a red alert, by priority
//	completed:  completed, most recently completed first
func Project(sel Selector, store *tasks.Store, today civil.Date) []*tasks.Task {
	switch sel {
	case All:
		return append(byPriority(store.Incomplete()), store.Completed()...)
	case Incomplete:
		return byPriority(store.Incomplete())
	case Urgent:
		return ByAlert(policy.AlertRed, store, today)
	case Completed:
		return recentlyCompleted(store.Completed())
	default:
		return []*tasks.Task{}
	}
}

// ByAlert returns incomplete tasks at the given alert level, by priority
func ByAlert(level policy.AlertLevel, store *tasks.Store, today civil.Date) []*tasks.Task {
	var matched []*tasks.Task
	for _, t := range store.Incomplete() {
		if policy.Alert(t.DueDate, today) == level {
			matched = append(matched, t)
		}
	}
	return byPriority(matched)
}

func byPriority(ts []*tasks.Task) []*tasks.Task {
	return taskheap.FromTasks(ts).Drain()
}

func recentlyCompleted(ts []*tasks.Task) []*tasks.Task {
	slices.SortStableFunc(ts, func(a, b *tasks.Task) int {
		switch {
		case a.CompletedAt == nil && b.CompletedAt == nil:
			return 0
		case a.CompletedAt == nil:
			return 1
		case b.CompletedAt == nil:
			return -1
		}
		return b.CompletedAt.Compare(*a.CompletedAt)
	})
	return ts
}
