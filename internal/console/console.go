// Package console implements the administrative command-line commands.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrUnknownCommand is returned when no registered command has the
// requested name.
var ErrUnknownCommand = errors.New("unknown command")

// Command is one console subcommand.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, args []string) error
}

// Console dispatches to registered commands by name.
type Console struct {
	out      io.Writer
	commands map[string]Command
}

// New creates a Console writing its own output (the command list) to out.
func New(out io.Writer) *Console {
	c := &Console{out: out, commands: make(map[string]Command)}
	c.Register(&listCommand{console: c})
	return c
}

// Register adds cmd. A later command with the same name replaces the earlier one.
func (c *Console) Register(cmd Command) {
	c.commands[cmd.Name()] = cmd
}

// Run executes the command named by args[0] with the remaining args.
// With no args it runs "list".
func (c *Console) Run(ctx context.Context, args []string) error {
	name := "list"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}

	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	return cmd.Run(ctx, args)
}

func (c *Console) names() []string {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type listCommand struct {
	console *Console
}

func (l *listCommand) Name() string        { return "list" }
func (l *listCommand) Description() string { return "List available commands" }

func (l *listCommand) Run(_ context.Context, _ []string) error {
	fmt.Fprintln(l.console.out, "Available commands:")
	for _, name := range l.console.names() {
		fmt.Fprintf(l.console.out, "  %-14s %s\n", name, l.console.commands[name].Description())
	}
	return nil
}
