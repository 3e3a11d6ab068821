package command

import (
	"fmt"
	"sort"
	"sync"
)

// DuplicateError is returned when a registration collides with an
// existing name or alias in the same scope.
type DuplicateError struct {
	Name  string
	Scope string // "" for the top-level registry
}

func (e *DuplicateError) Error() string {
	if e.Scope == "" {
		return fmt.Sprintf("command %q is already registered", e.Name)
	}
	return fmt.Sprintf("command %q is already registered under %q", e.Name, e.Scope)
}

// Registry holds the top-level command set. Registration happens once
// at process start; lookups are concurrent-safe for the shell's
// lifetime.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*Command // canonical name -> command
	index    map[string]*Command // names and aliases -> command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		index:    make(map[string]*Command),
	}
}

// Register adds a command. Every name and alias must be unique within
// the registry.
func (r *Registry) Register(cmd *Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{cmd.Name}, cmd.Aliases...)
	for _, n := range names {
		if _, exists := r.index[n]; exists {
			return &DuplicateError{Name: n}
		}
	}

	r.commands[cmd.Name] = cmd
	for _, n := range names {
		r.index[n] = cmd
	}
	return nil
}

// RegisterSpecs builds and registers a batch of leaf specs.
func (r *Registry) RegisterSpecs(specs ...Spec) error {
	for _, spec := range specs {
		cmd, err := New(spec)
		if err != nil {
			return err
		}
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Lookup resolves a token by canonical name or alias.
func (r *Registry) Lookup(token string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.index[token]
	return cmd, ok
}

// Names returns every registered name and alias, sorted. Used by the
// suggestion engine.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.index))
	for n := range r.index {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Commands returns the registered commands sorted by canonical name.
func (r *Registry) Commands() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
