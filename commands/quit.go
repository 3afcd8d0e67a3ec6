package commands

import (
	"context"
	"fmt"
)

func init() {
	Register(&Command{
		Name:        "/quit",
		Description: "Exit TaskWeaver",
		Hidden:      true,
		Handler: func(ctx context.Context, args []string) bool {
			fmt.Println("Thank you for using TaskWeaver! 👋")
			return true
		},
	})

	// Alias
	Register(&Command{
		Name:        "/exit",
		Description: "Exit TaskWeaver",
		Hidden:      true,
		Handler: func(ctx context.Context, args []string) bool {
			fmt.Println("Thank you for using TaskWeaver! 👋")
			return true
		},
	})
}
