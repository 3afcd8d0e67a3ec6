package commands

import (
	"context"
	"fmt"
)

func init() {
	Register(&Command{
		Name:        "/debug",
		Description: "Show the focus heap in backing-array order",
		Hidden:      true,
		Handler: func(ctx context.Context, args []string) bool {
			snapshot := GetTracker().HeapSnapshot()
			fmt.Printf("Tasks: %d, in focus heap: %d\n", GetTracker().Len(), len(snapshot))
			for i, t := range snapshot {
				fmt.Printf("  [%d] P%d %s (%s)\n", i, t.Priority, t.Title, t.ID)
			}
			return false
		},
	})
}
