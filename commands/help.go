package commands

import (
	"context"
	"fmt"
)

func init() {
	Register(&Command{
		Name:        "/help",
		Description: "Show available commands",
		Hidden:      true,
		Handler: func(ctx context.Context, args []string) bool {
			fmt.Println("Available commands:")

			for _, cmd := range List() {
				if cmd.Hidden {
					continue
				}
				fmt.Printf("  %-28s - %s\n", cmd.Usage(), cmd.Description)
			}
			fmt.Printf("  %-28s - %s\n", "/quit", "Exit TaskWeaver")

			return false
		},
	})
}
