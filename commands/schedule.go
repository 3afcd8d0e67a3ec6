package commands

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"taskweaver/tasks"
	"taskweaver/views"
)

func init() {
	Register(&Command{
		Name:        "/today",
		Description: "List incomplete tasks due today",
		Handler: func(ctx context.Context, args []string) bool {
			today := GetTracker().Today()
			listTasksInRange("today", today, today.AddDays(1))
			return false
		},
	})

	Register(&Command{
		Name:        "/tomorrow",
		Description: "List incomplete tasks due tomorrow",
		Handler: func(ctx context.Context, args []string) bool {
			tomorrow := GetTracker().Today().AddDays(1)
			listTasksInRange("tomorrow", tomorrow, tomorrow.AddDays(1))
			return false
		},
	})

	Register(&Command{
		Name:        "/week",
		Description: "List incomplete tasks due this week (Monday through Sunday)",
		Handler: func(ctx context.Context, args []string) bool {
			weekStart := startOfWeek(GetTracker().Today())
			listTasksInRange("this week", weekStart, weekStart.AddDays(7))
			return false
		},
	})
}

// startOfWeek returns the Monday of the week containing d
func startOfWeek(d civil.Date) civil.Date {
	weekday := int(d.In(time.UTC).Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is day 7
	}
	return d.AddDays(-(weekday - 1))
}

// dueBetween keeps tasks due in [start, end), preserving order
func dueBetween(ts []*tasks.Task, start, end civil.Date) []*tasks.Task {
	var filtered []*tasks.Task
	for _, t := range ts {
		if !t.DueDate.Before(start) && t.DueDate.Before(end) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// listTasksInRange lists incomplete tasks due in [start, end) by priority
func listTasksInRange(label string, start, end civil.Date) {
	fmt.Printf("Tasks due %s:\n", label)
	printTasks(dueBetween(GetTracker().ListView(views.Incomplete), start, end), "No tasks due")
}
