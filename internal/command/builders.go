package command

import (
	"github.com/netenglabs/nubia-cli/internal/nameutil"
	"github.com/netenglabs/nubia-cli/internal/usage"
)

// New builds a leaf command from its spec, normalizing the command and
// argument names and validating the argument schema.
func New(spec Spec) (*Command, error) {
	name, err := nameutil.Normalize(spec.Name)
	if err != nil {
		return nil, err
	}
	if spec.Handler == nil {
		return nil, usage.Errorf(usage.ErrRegistration, "command %q has no handler", name)
	}

	args, err := normalizeArgs(name, spec.Args)
	if err != nil {
		return nil, err
	}

	aliases, err := normalizeNames(spec.Aliases)
	if err != nil {
		return nil, err
	}

	return &Command{
		Name:    name,
		Aliases: aliases,
		Doc:     spec.Doc,
		Args:    args,
		Handler: spec.Handler,
	}, nil
}

// NewSuper builds a super-command. Its name goes through class-name
// normalization, its subcommands through New, and every subcommand must
// have a distinct name and alias set within this scope.
func NewSuper(spec SuperSpec) (*Command, error) {
	name, err := nameutil.NormalizeClassName(spec.Name)
	if err != nil {
		return nil, err
	}
	if spec.Doc == "" {
		return nil, usage.Errorf(usage.ErrRegistration, "super-command %q has no doc string", name)
	}
	if len(spec.Subcommands) == 0 {
		return nil, usage.Errorf(usage.ErrRegistration, "super-command %q has no subcommands", name)
	}

	shared, err := normalizeArgs(name, spec.SharedArgs)
	if err != nil {
		return nil, err
	}

	aliases, err := normalizeNames(spec.Aliases)
	if err != nil {
		return nil, err
	}

	super := &Command{
		Name:        name,
		Aliases:     aliases,
		Doc:         spec.Doc,
		Subcommands: make(map[string]*Command, len(spec.Subcommands)),
		SharedArgs:  shared,
	}

	taken := make(map[string]bool)
	for _, subSpec := range spec.Subcommands {
		sub, err := New(subSpec)
		if err != nil {
			return nil, err
		}
		for _, n := range append([]string{sub.Name}, sub.Aliases...) {
			if taken[n] {
				return nil, &DuplicateError{Name: n, Scope: name}
			}
			taken[n] = true
		}
		super.Subcommands[sub.Name] = sub
	}

	return super, nil
}

// MustNew is New for statically declared command sets, where a bad spec
// is a programming error.
func MustNew(spec Spec) *Command {
	cmd, err := New(spec)
	if err != nil {
		panic(err)
	}
	return cmd
}

// MustNewSuper is NewSuper for statically declared command sets.
func MustNewSuper(spec SuperSpec) *Command {
	cmd, err := NewSuper(spec)
	if err != nil {
		panic(err)
	}
	return cmd
}

func normalizeNames(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]string, len(names))
	for i, n := range names {
		normalized, err := nameutil.Normalize(n)
		if err != nil {
			return nil, err
		}
		out[i] = normalized
	}
	return out, nil
}

func normalizeArgs(cmdName string, args []Argument) ([]Argument, error) {
	if len(args) == 0 {
		return nil, nil
	}

	out := make([]Argument, len(args))
	seen := make(map[string]bool)
	variadicSeen := false
	lastPositional := -1

	for i := range args {
		if args[i].Positional {
			lastPositional = i
		}
	}

	for i, arg := range args {
		name, err := nameutil.Normalize(arg.Name)
		if err != nil {
			return nil, err
		}
		arg.Name = name

		aliases, err := normalizeNames(arg.Aliases)
		if err != nil {
			return nil, err
		}
		arg.Aliases = aliases

		for _, n := range append([]string{arg.Name}, arg.Aliases...) {
			if seen[n] {
				return nil, usage.Errorf(usage.ErrRegistration, "command %q declares argument %q twice", cmdName, n)
			}
			seen[n] = true
		}

		if arg.Variadic {
			if !arg.Positional {
				return nil, usage.Errorf(usage.ErrRegistration, "command %q: variadic argument %q must be positional", cmdName, arg.Name)
			}
			if variadicSeen {
				return nil, usage.Errorf(usage.ErrRegistration, "command %q declares more than one variadic argument", cmdName)
			}
			if i != lastPositional {
				return nil, usage.Errorf(usage.ErrRegistration, "command %q: variadic argument %q must be the last positional", cmdName, arg.Name)
			}
			variadicSeen = true
		}

		if arg.Type == TypeCustom && arg.Coerce == nil {
			return nil, usage.Errorf(usage.ErrRegistration, "command %q: argument %q has a custom type but no coerce function", cmdName, arg.Name)
		}

		out[i] = arg
	}

	return out, nil
}
