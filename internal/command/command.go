// Package command holds the registry's data model: commands, their
// argument schemas, super-commands with shared constructor arguments,
// and the handler variants they dispatch to.
package command

import "context"

// ArgType selects the coercion applied to a raw token before binding.
type ArgType int

const (
	TypeString ArgType = iota
	TypeInt
	TypeList
	TypeDict
	TypeCustom
)

// CoerceFunc validates and converts a raw token for TypeCustom
// arguments. Returning an error rejects the value.
type CoerceFunc func(raw string) (any, error)

// Argument describes one bindable parameter of a command.
type Argument struct {
	Name        string
	Aliases     []string
	Description string
	Type        ArgType
	Coerce      CoerceFunc // TypeCustom only
	Choices     []string   // empty means unconstrained
	Positional  bool
	Variadic    bool // consume all remaining positional tokens
	Default     any
	HasDefault  bool
}

// Command is an immutable descriptor created once at registration time.
// A command with a non-empty Subcommands map is a super-command; its
// SharedArgs are bound per invocation and exposed to every subcommand
// of that invocation through a Scope.
type Command struct {
	Name        string
	Aliases     []string
	Doc         string
	Args        []Argument
	Handler     Handler
	Subcommands map[string]*Command
	SharedArgs  []Argument
}

// Super reports whether this command groups subcommands.
func (c *Command) Super() bool {
	return len(c.Subcommands) > 0
}

// FindArg resolves an argument by name or alias. Lookups use the
// already-normalized dashed form.
func (c *Command) FindArg(name string) (*Argument, bool) {
	return findArg(c.Args, name)
}

// FindSharedArg resolves a shared constructor argument by name or alias.
func (c *Command) FindSharedArg(name string) (*Argument, bool) {
	return findArg(c.SharedArgs, name)
}

func findArg(args []Argument, name string) (*Argument, bool) {
	for i := range args {
		if args[i].Name == name {
			return &args[i], true
		}
		for _, alias := range args[i].Aliases {
			if alias == name {
				return &args[i], true
			}
		}
	}
	return nil, false
}

// Lookup resolves a subcommand token by name or alias.
func (c *Command) Lookup(token string) (*Command, bool) {
	if sub, ok := c.Subcommands[token]; ok {
		return sub, true
	}
	for _, sub := range c.Subcommands {
		for _, alias := range sub.Aliases {
			if alias == token {
				return sub, true
			}
		}
	}
	return nil, false
}

// SubcommandNames returns subcommand names and aliases, for suggestions.
func (c *Command) SubcommandNames() []string {
	var names []string
	for name, sub := range c.Subcommands {
		names = append(names, name)
		names = append(names, sub.Aliases...)
	}
	return names
}

// ShellContext is the view of the execution context handlers get. The
// concrete type lives with the shell; commands only need read access.
type ShellContext interface {
	BinaryName() string
	Testing() bool
	Verbose() int
	Cmd() string
	RawCmd() string
	Args() map[string]any
}

// Scope carries the shared arguments bound for one super-command
// invocation. Subcommand handlers read it; they never own it.
type Scope struct {
	Command *Command
	Shared  map[string]any
}

// Get returns a bound shared argument.
func (s *Scope) Get(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.Shared[name]
	return v, ok
}

// Int returns a shared argument as an int, or zero when absent.
func (s *Scope) Int(name string) int {
	if v, ok := s.Get(name); ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return 0
}

// String returns a shared argument as a string, or "" when absent.
func (s *Scope) String(name string) string {
	if v, ok := s.Get(name); ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// Invocation is what a handler receives: the bound argument bag, the
// shared execution context and, for subcommands, the invocation scope
// of the owning super-command.
type Invocation struct {
	Shell ShellContext
	Args  map[string]any
	Scope *Scope
}

// Get returns a bound argument.
func (inv *Invocation) Get(name string) (any, bool) {
	v, ok := inv.Args[name]
	return v, ok
}

// String returns a bound argument as a string, or "" when absent.
func (inv *Invocation) String(name string) string {
	if v, ok := inv.Args[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Int returns a bound argument as an int, or zero when absent.
func (inv *Invocation) Int(name string) int {
	if v, ok := inv.Args[name]; ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return 0
}

// Strings returns a bound list argument, or nil when absent.
func (inv *Invocation) Strings(name string) []string {
	if v, ok := inv.Args[name]; ok {
		if l, ok := v.([]string); ok {
			return l
		}
	}
	return nil
}

// Dict returns a bound dict argument, or nil when absent.
func (inv *Invocation) Dict(name string) map[string]string {
	if v, ok := inv.Args[name]; ok {
		if m, ok := v.(map[string]string); ok {
			return m
		}
	}
	return nil
}

// Handler is the uniform invocation path for both handler variants.
// The returned value is normalized by the dispatcher: nil means
// success, an int is the exit code, anything else is ignored.
type Handler interface {
	Invoke(ctx context.Context, inv *Invocation) (any, error)
}

// Sync is a handler that runs to completion without suspension points.
type Sync func(inv *Invocation) (any, error)

// Invoke implements Handler.
func (f Sync) Invoke(_ context.Context, inv *Invocation) (any, error) {
	return f(inv)
}

// Async is a suspend-capable handler. It receives the invocation
// context and is expected to honor cancellation during any waits it
// performs; the dispatcher still runs one command to completion before
// accepting the next line.
type Async func(ctx context.Context, inv *Invocation) (any, error)

// Invoke implements Handler.
func (f Async) Invoke(ctx context.Context, inv *Invocation) (any, error) {
	return f(ctx, inv)
}
