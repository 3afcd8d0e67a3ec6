package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskweaver/tracker"
)

// reportSave prints a warning when a change could not be persisted
func reportSave(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, tracker.ErrNotSaved) {
		fmt.Printf("Warning: %v (the change is kept for this session)\n", err)
		return
	}
	fmt.Printf("Error: %v\n", err)
}

func init() {
	Register(&Command{
		Name:        "/add",
		Description: "Add a task",
		Params: []Param{
			{Name: "priority", Type: ParamTypeInt, Description: "1 (highest) to 5 (lowest)", Required: true},
			{Name: "due", Type: ParamTypeDate, Description: "YYYY-MM-DD, today, tomorrow or +N days", Required: true},
			{Name: "title", Type: ParamTypeString, Description: "What needs doing", Required: true, Rest: true},
		},
		Handler: func(ctx context.Context, args []string) bool {
			if len(args) < 3 {
				fmt.Println("Usage: /add <priority 1-5> <YYYY-MM-DD|today|tomorrow|+N> <title>")
				return false
			}

			priority, err := parsePriority(args[0])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return false
			}

			today := GetTracker().Today()
			due, err := parseDue(args[1], today)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return false
			}
			if due.Before(today) {
				fmt.Println("Error: due date cannot be in the past")
				return false
			}

			title := strings.TrimSpace(strings.Join(args[2:], " "))
			if title == "" {
				fmt.Println("Error: title cannot be empty")
				return false
			}

			task, err := GetTracker().CreateTask(ctx, title, priority, due)
			fmt.Printf("Created task: %s (ID: %s)\n", task.Title, task.ShortID())
			reportSave(err)
			return false
		},
	})

	Register(&Command{
		Name:        "/done",
		Description: "Mark a task as completed",
		Params: []Param{
			{Name: "task_id", Type: ParamTypeString, Description: "The ID (or short ID) of the task", Required: true},
		},
		Handler: func(ctx context.Context, args []string) bool {
			if len(args) == 0 {
				fmt.Println("Usage: /done <task-id>")
				return false
			}

			id, ok := resolveID(args[0])
			if !ok {
				return false
			}

			task, _ := GetTracker().Get(id)
			if task.Completed {
				fmt.Printf("Task %s is already completed\n", task.ShortID())
				return false
			}

			err := GetTracker().CompleteTask(ctx, id)
			fmt.Printf("Completed task: %s ✓ Current streak: %d day(s)\n", task.Title, GetTracker().CurrentStreak())
			reportSave(err)
			return false
		},
	})

	Register(&Command{
		Name:        "/delete",
		Description: "Delete a task",
		Destructive: true,
		Params: []Param{
			{Name: "task_id", Type: ParamTypeString, Description: "The ID (or short ID) of the task", Required: true},
		},
		Handler: func(ctx context.Context, args []string) bool {
			if len(args) == 0 {
				fmt.Println("Usage: /delete <task-id>")
				return false
			}

			id, ok := resolveID(args[0])
			if !ok {
				return false
			}

			task, _ := GetTracker().Get(id)
			err := GetTracker().DeleteTask(ctx, id)
			fmt.Printf("Deleted task: %s\n", task.Title)
			reportSave(err)
			return false
		},
	})

	Register(&Command{
		Name:        "/sample",
		Description: "Add demonstration tasks",
		Handler: func(ctx context.Context, args []string) bool {
			n, err := GetTracker().Seed(ctx)
			fmt.Printf("Added %d sample tasks\n", n)
			reportSave(err)
			return false
		},
	})

	Register(&Command{
		Name:        "/clear",
		Description: "Delete every task and reset the streak",
		Destructive: true,
		Handler: func(ctx context.Context, args []string) bool {
			n := GetTracker().Len()
			err := GetTracker().Clear(ctx)
			fmt.Printf("Cleared %d task(s)\n", n)
			reportSave(err)
			return false
		},
	})
}
