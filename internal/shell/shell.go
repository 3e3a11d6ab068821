// Package shell wires the interactive and one-shot front ends over the
// dispatcher: prompt loop, builtins, bang escape, history and session
// transcripts.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"

	"github.com/netenglabs/nubia-cli/internal/config"
	"github.com/netenglabs/nubia-cli/internal/dispatch"
	"github.com/netenglabs/nubia-cli/internal/format"
	"github.com/netenglabs/nubia-cli/internal/history"
	"github.com/netenglabs/nubia-cli/internal/log"
	"github.com/netenglabs/nubia-cli/internal/procutil"
	"github.com/netenglabs/nubia-cli/internal/session"
	"github.com/netenglabs/nubia-cli/internal/shellctx"
	"github.com/netenglabs/nubia-cli/internal/ui/style"
	"github.com/netenglabs/nubia-cli/internal/usage"
)

// Shell owns one shell process: a dispatcher plus the interactive
// conveniences layered on top of it.
type Shell struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	cfg  config.Config
	ctx  *shellctx.Context
	disp *dispatch.Dispatcher
	hist *history.Store
	rec  *session.Recorder
}

// New wires a shell from its parts. History and session recording are
// optional: failures there degrade the shell, they never abort it.
func New(cfg config.Config, sctx *shellctx.Context) *Shell {
	s := &Shell{
		In:   os.Stdin,
		Out:  os.Stdout,
		Err:  os.Stderr,
		cfg:  cfg,
		ctx:  sctx,
		disp: dispatch.New(sctx.Registry(), sctx),
	}
	s.disp.SuggestionLimit = cfg.SuggestionLimit

	if cfg.History.Enabled {
		h, err := history.New(cfg.History.Path)
		if err != nil {
			log.Warn("history disabled", "err", err)
		} else {
			s.hist = h
		}
	}

	if cfg.Session.Enabled {
		r, err := session.New(cfg.Session.Dir)
		if err != nil {
			log.Warn("session transcript disabled", "err", err)
		} else {
			s.rec = r
		}
	}

	return s
}

// Close releases the history store and session transcript.
func (s *Shell) Close() {
	if s.hist != nil {
		_ = s.hist.Close()
	}
	_ = s.rec.Close()
}

// Interactive runs the prompt loop until exit or EOF. The returned
// code is the shell's exit code, not the last command's.
func (s *Shell) Interactive(ctx context.Context) int {
	if err := s.runHook(ctx, s.ctx.Hooks.OnConnected); err != nil {
		fmt.Fprintln(s.Err, style.Error(fmt.Sprintf("startup failed: %v", err)))
		return usage.ExitFatal
	}
	if err := s.runHook(ctx, s.ctx.Hooks.OnInteractive); err != nil {
		fmt.Fprintln(s.Err, style.Error(fmt.Sprintf("startup failed: %v", err)))
		return usage.ExitFatal
	}

	fmt.Fprintln(s.Out, style.Success(s.ctx.BinaryName()+" connected; type help or ? to list commands"))

	prompt := strings.ReplaceAll(s.cfg.Prompt, "{name}", s.ctx.BinaryName())
	scanner := bufio.NewScanner(s.In)

	for {
		fmt.Fprint(s.Out, style.Prompt(prompt))
		if !scanner.Scan() {
			fmt.Fprintln(s.Out)
			return usage.ExitSuccess
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		done, code := s.runLine(ctx, line)
		if s.hist != nil {
			if err := s.hist.Append(line, code); err != nil {
				log.Warn("history append failed", "err", err)
			}
		}
		s.rec.Record(line, code)
		if done {
			return usage.ExitSuccess
		}
	}
}

// RunCLI executes one command line non-interactively and returns its
// exit code.
func (s *Shell) RunCLI(ctx context.Context, line string) int {
	if err := s.runHook(ctx, s.ctx.Hooks.OnConnected); err != nil {
		fmt.Fprintln(s.Err, style.Error(fmt.Sprintf("startup failed: %v", err)))
		return usage.ExitFatal
	}
	if s.ctx.Hooks.OnCLI != nil {
		if err := s.ctx.Hooks.OnCLI(ctx, line, s.ctx.Args()); err != nil {
			fmt.Fprintln(s.Err, style.Error(fmt.Sprintf("startup failed: %v", err)))
			return usage.ExitFatal
		}
	}
	return s.disp.Execute(ctx, line)
}

// runLine handles builtins and the bang escape, then falls through to
// the dispatcher. done reports an exit request.
func (s *Shell) runLine(ctx context.Context, line string) (done bool, code int) {
	switch fields := strings.Fields(line); fields[0] {
	case "exit", "quit", "q":
		return true, usage.ExitSuccess

	case "help", "?":
		s.printHelp()
		return false, usage.ExitSuccess

	case "verbose":
		if len(fields) > 1 {
			s.ctx.SetVerbose(fields[1])
		}
		fmt.Fprintf(s.Out, "verbosity is %d\n", s.ctx.Verbose())
		return false, usage.ExitSuccess

	case "history":
		limit := 20
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil && n > 0 {
				limit = n
			}
		}
		s.printHistory(limit)
		return false, usage.ExitSuccess
	}

	if rest, ok := strings.CutPrefix(line, "!"); ok {
		argv := strings.Fields(rest)
		if len(argv) == 0 {
			return false, usage.ExitSuccess
		}
		ec, err := procutil.Run(ctx, argv)
		if err != nil {
			fmt.Fprintln(s.Err, style.Error(err.Error()))
		}
		return false, ec
	}

	// A Ctrl-C while a command runs cancels that command, not the
	// shell.
	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return false, s.disp.Execute(runCtx, line)
}

func (s *Shell) printHistory(limit int) {
	if s.hist == nil {
		fmt.Fprintln(s.Out, style.Muted("history is disabled"))
		return
	}
	entries, err := s.hist.Recent(limit)
	if err != nil {
		fmt.Fprintln(s.Err, style.Error(err.Error()))
		return
	}
	// Oldest first reads like a scrollback.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		stamp := format.Timestamp(e.At) + " (" + format.Age(e.At) + ")"
		fmt.Fprintf(s.Out, "%s  %s\n", style.Muted(stamp), e.Line)
	}
}

func (s *Shell) printHelp() {
	reg := s.ctx.Registry()
	cmds := reg.Commands()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

	width := 0
	for _, c := range cmds {
		if len(c.Name) > width {
			width = len(c.Name)
		}
	}

	fmt.Fprintln(s.Out, style.Header("Commands:"))
	for _, c := range cmds {
		fmt.Fprintf(s.Out, "  %-*s  %s\n", width, c.Name, c.Doc)
		if c.Super() {
			names := c.SubcommandNames()
			sort.Strings(names)
			fmt.Fprintf(s.Out, "  %-*s  %s\n", width, "",
				style.Muted("subcommands: "+strings.Join(names, ", ")))
		}
	}
}

func (s *Shell) runHook(ctx context.Context, hook func(context.Context, map[string]any) error) error {
	if hook == nil {
		return nil
	}
	return hook(ctx, s.ctx.Args())
}
