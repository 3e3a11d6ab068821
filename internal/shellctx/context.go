// Package shellctx holds the one mutable store shared across a shell
// process: the command currently executing, the raw line as typed, the
// parsed argument bag and a few mode flags. Every field access goes
// through a single lock; callers needing several fields consistent
// together take a Snapshot.
package shellctx

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/netenglabs/nubia-cli/internal/command"
)

// Hooks are the shell-startup callbacks, each invoked once per shell
// mode before any command executes.
type Hooks struct {
	OnConnected   func(ctx context.Context, args map[string]any) error
	OnInteractive func(ctx context.Context, args map[string]any) error
	OnCLI         func(ctx context.Context, cmd string, args map[string]any) error
}

// Context is created once at shell construction and never replaced,
// only mutated. It is threaded explicitly through parse, bind and
// dispatch rather than reached through a global.
type Context struct {
	binaryName string

	mu       sync.Mutex
	testing  bool
	registry *command.Registry
	args     map[string]any
	verbose  int
	cmd      string
	rawCmd   string

	Hooks Hooks
}

// New creates the context for a shell process.
func New(binaryName string) *Context {
	return &Context{binaryName: binaryName, args: map[string]any{}}
}

// BinaryName returns the shell's binary name. Set once at
// construction, it needs no lock.
func (c *Context) BinaryName() string { return c.binaryName }

// Testing reports whether the shell runs under a test harness.
func (c *Context) Testing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.testing
}

// SetTesting flags the context as test-driven.
func (c *Context) SetTesting(testing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.testing = testing
}

// Registry returns the command registry.
func (c *Context) Registry() *command.Registry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry
}

// SetRegistry installs the command registry.
func (c *Context) SetRegistry(reg *command.Registry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registry = reg
}

// Args returns the current top-level argument bag.
func (c *Context) Args() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.args
}

// SetArgs replaces the argument bag. The map is copied so later caller
// mutation cannot race readers.
func (c *Context) SetArgs(args map[string]any) {
	copied := make(map[string]any, len(args))
	for k, v := range args {
		copied[k] = v
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.args = copied
}

// Verbose returns the verbosity level.
func (c *Context) Verbose() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verbose
}

// SetVerbose accepts verbosity as an int or a true/false word.
func (c *Context) SetVerbose(raw string) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		if strings.EqualFold(raw, "true") {
			value = 1
		} else {
			value = 0
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verbose = value
}

// Cmd returns the name of the command currently executing.
func (c *Context) Cmd() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cmd
}

// RawCmd returns the command line as typed by the user.
func (c *Context) RawCmd() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rawCmd
}

// SetCurrent updates the currently-executing command fields together,
// under one lock acquisition.
func (c *Context) SetCurrent(cmd, rawCmd string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cmd = cmd
	c.rawCmd = rawCmd
}

// Snapshot is a consistent multi-field view of the context.
type Snapshot struct {
	Cmd     string
	RawCmd  string
	Testing bool
	Verbose int
}

// Snapshot reads the mutable fields under a single lock acquisition.
func (c *Context) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Cmd:     c.cmd,
		RawCmd:  c.rawCmd,
		Testing: c.testing,
		Verbose: c.verbose,
	}
}

// Verify the handler-facing view is satisfied.
var _ command.ShellContext = (*Context)(nil)
