// Package dispatch owns command execution: it resolves a raw line to a
// command path, binds arguments, threads the shared execution context
// through the invocation and normalizes the handler's result into a
// process-style exit code.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/netenglabs/nubia-cli/internal/binder"
	"github.com/netenglabs/nubia-cli/internal/command"
	"github.com/netenglabs/nubia-cli/internal/log"
	"github.com/netenglabs/nubia-cli/internal/parser"
	"github.com/netenglabs/nubia-cli/internal/shellctx"
	"github.com/netenglabs/nubia-cli/internal/ui/style"
	"github.com/netenglabs/nubia-cli/internal/usage"
)

// defaultSuggestionLimit matches the config default; config overrides
// it per shell.
const defaultSuggestionLimit = 10

// Dispatcher executes one command line at a time against a registry.
// A shell owns exactly one; it is not safe for concurrent Execute
// calls, matching the one-in-flight-command model.
type Dispatcher struct {
	Registry *command.Registry
	Ctx      *shellctx.Context
	Out      io.Writer
	Err      io.Writer

	// SuggestionLimit caps how many near-miss names an
	// unknown-command diagnostic offers. Zero means unlimited.
	SuggestionLimit int
}

// New creates a dispatcher writing diagnostics to stderr.
func New(reg *command.Registry, ctx *shellctx.Context) *Dispatcher {
	return &Dispatcher{
		Registry:        reg,
		Ctx:             ctx,
		Out:             os.Stdout,
		Err:             os.Stderr,
		SuggestionLimit: defaultSuggestionLimit,
	}
}

// Execute parses, binds and runs one command line, returning its exit
// code. Parse and validation failures are reported here and never
// reach the handler; handler errors are reported and yield the fatal
// code.
func (d *Dispatcher) Execute(ctx context.Context, line string) int {
	res, err := parser.Parse(line, d.Registry)
	if err != nil {
		return d.report(line, err)
	}

	leaf := res.Leaf()

	var scope *command.Scope
	if len(res.Path) > 1 {
		super := res.Path[0]
		shared, err := binder.BindShared(super, res.SharedKwargs)
		if err != nil {
			return d.report(line, err)
		}
		scope = &command.Scope{Command: super, Shared: shared}
	}

	frame, err := binder.Bind(leaf, res.Kwargs, res.Positionals)
	if err != nil {
		return d.report(line, err)
	}

	// Handlers and anything they call observe a consistent view of the
	// currently executing command.
	d.Ctx.SetCurrent(leaf.Name, line)
	d.Ctx.SetArgs(frame)

	inv := &command.Invocation{Shell: d.Ctx, Args: frame, Scope: scope}

	log.Debug("dispatching", "cmd", leaf.Name)
	result, err := leaf.Handler.Invoke(ctx, inv)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintln(d.Err, style.Error(fmt.Sprintf("%s: interrupted", leaf.Name)))
			log.Warn("command interrupted", "cmd", leaf.Name)
			return usage.CodeFor(usage.ErrInterrupted)
		}
		// A handler may classify its own failure instead of taking the
		// generic fatal code.
		var uerr *usage.Error
		if errors.As(err, &uerr) {
			fmt.Fprintln(d.Err, style.Error(fmt.Sprintf("%s: %v", leaf.Name, uerr)))
			log.Error("command failed", "cmd", leaf.Name, "err", err)
			return uerr.GetExitCode()
		}
		fmt.Fprintln(d.Err, style.Error(fmt.Sprintf("%s: %v", leaf.Name, err)))
		log.Error("command failed", "cmd", leaf.Name, "err", err)
		return usage.CodeFor(usage.ErrHandlerFailed)
	}

	return normalize(result)
}

// normalize maps a handler result onto an exit code: nothing means
// success, an explicit int is passed through.
func normalize(result any) int {
	switch v := result.(type) {
	case nil:
		return usage.ExitSuccess
	case int:
		return v
	default:
		return usage.ExitSuccess
	}
}

// report renders a single diagnostic for a rejected line and maps the
// error to its exit code.
func (d *Dispatcher) report(line string, err error) int {
	var unknown *parser.UnknownCommandError
	if errors.As(err, &unknown) {
		if d.SuggestionLimit > 0 && len(unknown.Suggestions) > d.SuggestionLimit {
			unknown.Suggestions = unknown.Suggestions[:d.SuggestionLimit]
		}
		fmt.Fprintln(d.Err, style.Error(unknown.Error()))
		d.caret(line, unknown.Col)
		log.Debug("unknown command", "name", unknown.Name)
		return usage.CodeFor(usage.ErrUnknownCommand)
	}

	var perr *parser.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintln(d.Err, style.Error(perr.Msg))
		d.caret(line, perr.Col)
		return usage.CodeFor(usage.ErrCommandParse)
	}

	var verr *binder.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(d.Err, style.Error(verr.Error()))
		return usage.CodeFor(usage.ErrArgsValidation)
	}

	var uerr *usage.Error
	if errors.As(err, &uerr) {
		fmt.Fprintln(d.Err, style.Error(uerr.Error()))
		return uerr.GetExitCode()
	}

	fmt.Fprintln(d.Err, style.Error(err.Error()))
	return usage.ExitFatal
}

// caret echoes the offending line with a column marker, the way
// interactive mode displays parse errors.
func (d *Dispatcher) caret(line string, col int) {
	if col < 0 || line == "" {
		return
	}
	fmt.Fprintln(d.Err, line)
	fmt.Fprintln(d.Err, style.Hint(strings.Repeat(" ", col)+"^"))
}
