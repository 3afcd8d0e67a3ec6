package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskweaver/commands"
	"taskweaver/config"
	"taskweaver/storage"
	"taskweaver/tracker"
)

const prompt = "> "

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configFile string
		assumeYes  bool
	)

	cmd := &cobra.Command{
		Use:   "taskweaver [command [args...]]",
		Short: "TaskWeaver - a priority and deadline task tracker",
		Long: `TaskWeaver keeps a list of tasks with a priority and a due date,
always knows the single most urgent one and tracks your daily completion streak.

Run without arguments for an interactive shell, or pass one command to run it
and exit, e.g. "taskweaver add 1 tomorrow Submit report".`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithFlags(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, args, assumeYes)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	flags.BoolVarP(&assumeYes, "yes", "y", false, "run destructive commands without asking")
	flags.String("backend", "", "storage backend: json, sqlite or redis")
	flags.String("data-path", "", "data file for the json and sqlite backends")
	flags.String("redis-addr", "", "redis server address")
	flags.String("timezone", "", "IANA zone that decides what \"today\" is")
	flags.String("log-level", "", "debug, info, warn or error")

	return cmd
}

func run(ctx context.Context, cfg *config.Config, args []string, assumeYes bool) error {
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	kv, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		logger.Error("failed to open storage", zap.String("backend", cfg.Backend), zap.Error(err))
		return fmt.Errorf("failed to open storage: %w", err)
	}

	app, err := tracker.New(ctx, kv, tracker.WithLocation(loc), tracker.WithLogger(logger))
	if err != nil {
		kv.Close()
		logger.Error("failed to load tasks", zap.Error(err))
		return err
	}
	defer app.Close()

	commands.SetTracker(app)
	logger.Info("started",
		zap.String("backend", cfg.Backend),
		zap.String("data_path", cfg.DataPath),
		zap.Bool("interactive", len(args) == 0),
	)

	if len(args) > 0 {
		return runOnce(ctx, args, assumeYes)
	}
	return repl(ctx, cfg, logger, assumeYes)
}

// runOnce executes a single command given on the command line
func runOnce(ctx context.Context, args []string, assumeYes bool) error {
	if !assumeYes {
		commands.SetConfirm(func(question string) bool {
			rl, err := readline.New(question)
			if err != nil {
				return false
			}
			defer rl.Close()
			return readYes(rl)
		})
	}

	input := strings.Join(args, " ")
	if !strings.HasPrefix(input, "/") {
		input = "/" + input
	}
	if _, err := commands.Execute(ctx, input); err != nil {
		return fmt.Errorf("%w. Run 'taskweaver help' for available commands", err)
	}
	return nil
}

func repl(ctx context.Context, cfg *config.Config, logger *zap.Logger, assumeYes bool) error {
	if err := os.MkdirAll(filepath.Dir(cfg.HistoryFile), 0755); err != nil {
		logger.Warn("history disabled", zap.Error(err))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "/quit",
	})
	if err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}
	defer rl.Close()

	if !assumeYes {
		commands.SetConfirm(func(question string) bool {
			rl.SetPrompt(question)
			defer rl.SetPrompt(prompt)
			return readYes(rl)
		})
	}

	fmt.Println("Welcome to TaskWeaver! Type /help for available commands.")
	if task, ok := commands.GetTracker().FocusTask(); ok {
		fmt.Printf("🎯 Focus: %s (P%d, due %s)\n", task.Title, task.Priority, task.DueDate)
	}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if !strings.HasPrefix(input, "/") {
			fmt.Println("Commands start with /. Type /help for available commands.")
			continue
		}

		quit, err := commands.Execute(ctx, input)
		if err != nil {
			fmt.Printf("Error: %v. Type /help for available commands.\n", err)
			continue
		}
		if quit {
			break
		}
	}

	logger.Info("shell closed")
	return nil
}

// completer offers every registered command name at the start of the line
func completer() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, cmd := range commands.List() {
		items = append(items, readline.PcItem(cmd.Name))
	}
	return readline.NewPrefixCompleter(items...)
}

func readYes(rl *readline.Instance) bool {
	answer, err := rl.Readline()
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
