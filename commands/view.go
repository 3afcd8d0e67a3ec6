package commands

import (
	"context"
	"fmt"

	"taskweaver/policy"
	"taskweaver/views"
)

func init() {
	Register(&Command{
		Name:        "/focus",
		Description: "Show the most urgent task",
		Handler: func(ctx context.Context, args []string) bool {
			task, ok := GetTracker().FocusTask()
			if !ok {
				fmt.Println("No tasks available. Add your first task with /add")
				return false
			}

			fmt.Println("🎯 Focus task:")
			fmt.Printf("  %s\n", formatTask(task))
			return false
		},
	})

	Register(&Command{
		Name:        "/list",
		Description: "List tasks in a view: all, incomplete, urgent or completed",
		Params: []Param{
			{Name: "view", Type: ParamTypeString, Description: "all (default), incomplete, urgent or completed", Required: false},
		},
		Handler: func(ctx context.Context, args []string) bool {
			var name string
			if len(args) > 0 {
				name = args[0]
			}

			sel, err := views.ParseSelector(name)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return false
			}

			fmt.Printf("Tasks (%s):\n", sel)
			printTasks(GetTracker().ListView(sel), "No tasks found for this view.")
			return false
		},
	})

	Register(&Command{
		Name:        "/alerts",
		Description: "List incomplete tasks by alert level",
		Params: []Param{
			{Name: "level", Type: ParamTypeString, Description: "red, orange or green; all levels when omitted", Required: false},
		},
		Handler: func(ctx context.Context, args []string) bool {
			levels := []policy.AlertLevel{policy.AlertRed, policy.AlertOrange, policy.AlertGreen}
			if len(args) > 0 {
				level, ok := policy.ParseAlertLevel(args[0])
				if !ok {
					fmt.Println("Usage: /alerts [red|orange|green]")
					return false
				}
				levels = []policy.AlertLevel{level}
			}

			for _, level := range levels {
				fmt.Printf("%s:\n", level.Badge())
				printTasks(GetTracker().ListByAlert(level), "No tasks")
			}
			return false
		},
	})

	Register(&Command{
		Name:        "/streak",
		Description: "Show the current daily completion streak",
		Handler: func(ctx context.Context, args []string) bool {
			streak := GetTracker().CurrentStreak()
			switch streak {
			case 0:
				fmt.Println("🔥 Current streak: 0 days. Complete a task today to start one!")
			case 1:
				fmt.Println("🔥 Current streak: 1 day")
			default:
				fmt.Printf("🔥 Current streak: %d days\n", streak)
			}
			return false
		},
	})
}
