package commands

import (
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"taskweaver/policy"
	"taskweaver/tasks"
)

const dateLayout = "2006-01-02"

// formatTask renders one listing line
func formatTask(t *tasks.Task) string {
	status := "[ ]"
	if t.Completed {
		status = "[✓]"
	}

	title := t.Title
	if !t.Completed {
		switch t.Priority {
		case 1:
			title += " 🔥"
		case 2:
			title += " ⭐"
		}
	}

	extras := []string{
		fmt.Sprintf("P%d %s", t.Priority, policy.PriorityLabel(t.Priority)),
		"due " + t.DueDate.String(),
	}
	if t.Completed {
		if t.CompletedAt != nil {
			extras = append(extras, "completed "+t.CompletedAt.In(GetTracker().Location()).Format(dateLayout))
		} else {
			extras = append(extras, "COMPLETED")
		}
	} else {
		extras = append(extras, GetTracker().Alert(t).Badge())
	}

	return fmt.Sprintf("%s [%s] %s (%s)", status, t.ShortID(), title, strings.Join(extras, ", "))
}

func printTasks(ts []*tasks.Task, empty string) {
	if len(ts) == 0 {
		fmt.Println("  " + empty)
		return
	}
	for i, t := range ts {
		fmt.Printf("  %d. %s\n", i+1, formatTask(t))
	}
}

// parseDue accepts YYYY-MM-DD, "today", "tomorrow" or "+N" days
func parseDue(s string, today civil.Date) (civil.Date, error) {
	switch strings.ToLower(s) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	}

	if strings.HasPrefix(s, "+") {
		n, err := strconv.Atoi(s[1:])
		if err != nil || n < 0 {
			return civil.Date{}, fmt.Errorf("invalid relative date %q: use +N with N >= 0", s)
		}
		return today.AddDays(n), nil
	}

	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD (e.g., 2024-12-31)", s)
	}
	return d, nil
}

// parsePriority accepts an integer in [1, 5]
func parsePriority(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil || !tasks.ValidPriority(p) {
		return 0, fmt.Errorf("priority must be a number between %d and %d", tasks.PriorityHighest, tasks.PriorityLowest)
	}
	return p, nil
}

// resolveID turns a user reference into a task id, printing why it failed
func resolveID(ref string) (string, bool) {
	id, err := GetTracker().Resolve(ref)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return "", false
	}
	return id, true
}
