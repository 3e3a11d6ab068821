package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/netenglabs/nubia-cli/internal/config"
	"github.com/netenglabs/nubia-cli/internal/log"
	"github.com/netenglabs/nubia-cli/internal/shell"
	"github.com/netenglabs/nubia-cli/internal/shellctx"
	"github.com/netenglabs/nubia-cli/internal/ui/style"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.LoadDefault()
	if err != nil {
		// Defaults are still usable; say why the file was ignored.
		fmt.Fprintln(os.Stderr, err)
	}

	// Enable styling if stdout is a terminal and the config allows it
	style.Init(cfg.Color && term.IsTerminal(int(os.Stdout.Fd())))

	if err := log.Init(cfg.Log.Path, log.ParseLevel(cfg.Log.Level)); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	defer func() { _ = log.Close() }()

	sctx := shellctx.New("nubia")
	sctx.SetRegistry(buildRegistry())

	s := shell.New(cfg, sctx)
	defer s.Close()

	ctx := context.Background()

	if len(args) > 0 {
		return s.RunCLI(ctx, joinArgs(args))
	}
	return s.Interactive(ctx)
}

// joinArgs rebuilds a command line from argv, re-quoting arguments the
// caller's shell already split. A key=value argument keeps its key
// outside the quotes so it still parses as a keyword argument.
func joinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t") {
			if key, value, ok := strings.Cut(a, "="); ok && !strings.ContainsAny(key, " \t") {
				a = key + "=\"" + value + "\""
			} else {
				a = "\"" + a + "\""
			}
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}
