// Package commands implements the slash commands of the interactive shell.
// Commands register themselves in init and drive a *tracker.Tracker handed
// over with SetTracker.
package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"taskweaver/tracker"
)

// ParamType defines the type of a command parameter
type ParamType string

const (
	ParamTypeString ParamType = "string"
	ParamTypeInt    ParamType = "int"
	ParamTypeDate   ParamType = "date"
)

// Param defines a parameter for a command
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	// Rest marks a final parameter that swallows the remaining words
	Rest bool
}

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Handler     func(ctx context.Context, args []string) bool // returns true to quit
	Params      []Param
	Hidden      bool // if true, exclude from /help
	Destructive bool // if true, requires confirmation before running
}

// Usage renders the command with its parameters, e.g. "/done <task_id>"
func (c *Command) Usage() string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, p := range c.Params {
		name := p.Name
		if p.Rest {
			name += "..."
		}
		if p.Required {
			fmt.Fprintf(&b, " <%s>", name)
		} else {
			fmt.Fprintf(&b, " [%s]", name)
		}
	}
	return b.String()
}

var (
	registry = make(map[string]*Command)
	app      *tracker.Tracker
	confirm  func(prompt string) bool
)

// Register adds a command to the registry
func Register(cmd *Command) {
	registry[strings.ToLower(cmd.Name)] = cmd
}

// SetTracker sets the tracker commands operate on
func SetTracker(t *tracker.Tracker) {
	app = t
}

// GetTracker returns the tracker
func GetTracker() *tracker.Tracker {
	return app
}

// SetConfirm installs the prompt used before destructive commands.
// With no prompt installed destructive commands run unconfirmed.
func SetConfirm(fn func(prompt string) bool) {
	confirm = fn
}

// Execute runs a command by name with arguments
func Execute(ctx context.Context, input string) (bool, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false, fmt.Errorf("empty command")
	}

	cmdName := strings.ToLower(parts[0])
	if !strings.HasPrefix(cmdName, "/") {
		cmdName = "/" + cmdName
	}
	args := parts[1:]

	cmd, exists := registry[cmdName]
	if !exists {
		return false, fmt.Errorf("unknown command: %s", cmdName)
	}

	if cmd.Destructive && confirm != nil && !confirm(fmt.Sprintf("Run %s? [y/N] ", strings.Join(parts, " "))) {
		fmt.Println("Cancelled")
		return false, nil
	}

	return cmd.Handler(ctx, args), nil
}

// ExecuteWithOutput runs a command and returns its captured stdout output
func ExecuteWithOutput(ctx context.Context, input string) (quit bool, output string, err error) {
	// Save original stdout
	oldStdout := os.Stdout

	// Create a pipe
	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		return false, "", fmt.Errorf("failed to create pipe: %w", pipeErr)
	}

	// Redirect stdout to the pipe
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	// Read in a goroutine to prevent pipe buffer deadlock
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		io.Copy(&buf, r)
		close(done)
	}()

	// Run the command
	quit, err = Execute(ctx, input)

	// Close the write end of the pipe and wait for read to complete
	w.Close()
	<-done
	r.Close()

	output = strings.TrimSpace(buf.String())
	return quit, output, err
}

// List returns all registered commands sorted by name
func List() []*Command {
	cmds := make([]*Command, 0, len(registry))
	for _, cmd := range registry {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name < cmds[j].Name
	})
	return cmds
}

// GetByName returns a command by name (with or without leading /)
func GetByName(name string) *Command {
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	return registry[strings.ToLower(name)]
}
