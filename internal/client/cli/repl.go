package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// command is one REPL verb available in a view.
type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string) error
}

// execIface defines the minimal surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	// prompt is shown before every line.
	prompt() string
	// context is the context of the current view.
	context() context.Context
	// commands lists the verbs of the current view.
	commands() []command
	// freeText handles a line that is not a command. It reports false when
	// the view does not accept free text.
	freeText(ctx context.Context, line string) (bool, error)
	// handleError reports a failed command to the user.
	handleError(ctx context.Context, err error)
}

// runREPL starts a read–eval–print loop.
//
// It reads a line, parses the first token as the command and looks it up in
// the current view's command table. Lines that match no command go to
// freeText (the interview view uses this for answers). The loop exits on EOF
// or when the user types "exit" or "quit".
//
// Errors returned by command handlers are passed to handleError; the loop
// itself keeps running.
func runREPL(a execIface, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "%s> ", a.prompt())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]
		ctx := a.context()

		switch name {
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		case "help":
			printHelp(out, a.commands())
			continue
		}

		if cmd, ok := lookup(a.commands(), name); ok {
			if err := cmd.run(ctx, args); err != nil {
				a.handleError(ctx, err)
			}
			continue
		}

		handled, err := a.freeText(ctx, strings.TrimSpace(line))
		if err != nil {
			a.handleError(ctx, err)
		}
		if !handled {
			fmt.Fprintln(out, "Unknown command:", name)
		}
	}
}

func lookup(cmds []command, name string) (command, bool) {
	for _, c := range cmds {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printHelp(out io.Writer, cmds []command) {
	fmt.Fprintln(out, "Available commands:")
	for _, c := range cmds {
		fmt.Fprintf(out, "  %-24s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(out, "  %-24s %s\n", "help", "show this list")
	fmt.Fprintf(out, "  %-24s %s\n", "exit", "leave the program")
}
