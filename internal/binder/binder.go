// Package binder maps parsed tokens onto a command's argument schema:
// positional resolution, keyword matching, defaults, type coercion and
// choice enforcement.
package binder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/netenglabs/nubia-cli/internal/command"
	"github.com/netenglabs/nubia-cli/internal/nameutil"
	"github.com/netenglabs/nubia-cli/internal/pattern"
)

// FailureKind distinguishes validation failures internally; externally
// they all map to the same validation exit code.
type FailureKind int

const (
	KindMissing FailureKind = iota
	KindCoercion
	KindChoice
	KindTrailing
	KindUnknownArgument
	KindDuplicate
)

// ValidationError reports a binding failure for one argument.
type ValidationError struct {
	Command  string
	Argument string
	Reason   string
	Kind     FailureKind
}

func (e *ValidationError) Error() string {
	if e.Argument == "" {
		return fmt.Sprintf("%s: %s", e.Command, e.Reason)
	}
	return fmt.Sprintf("%s: argument %q: %s", e.Command, e.Argument, e.Reason)
}

// Bind produces the call frame for a leaf command.
func Bind(cmd *command.Command, kwargs map[string]string, positionals []string) (map[string]any, error) {
	return BindArgs(cmd.Name, cmd.Args, kwargs, positionals)
}

// BindShared binds a super-command's constructor arguments for one
// invocation scope.
func BindShared(cmd *command.Command, kwargs map[string]string) (map[string]any, error) {
	return BindArgs(cmd.Name, cmd.SharedArgs, kwargs, nil)
}

// BindArgs binds raw tokens against an argument schema. Declared
// positionals consume tokens left to right, a trailing variadic takes
// whatever is left, keyword tokens match by name or alias, defaults
// fill the gaps, and every bound value is coerced and checked against
// its choices.
func BindArgs(name string, args []command.Argument, kwargs map[string]string, positionals []string) (map[string]any, error) {
	frame := make(map[string]any, len(args))
	raw := make(map[string]string, len(args))
	variadicName := ""

	remaining := positionals
	for i := range args {
		arg := &args[i]
		if !arg.Positional {
			continue
		}
		if arg.Variadic {
			variadicName = arg.Name
			values := make([]any, 0, len(remaining))
			for _, tok := range remaining {
				v, err := coerce(name, arg, tok)
				if err != nil {
					return nil, err
				}
				if err := checkChoices(name, arg, tok); err != nil {
					return nil, err
				}
				values = append(values, v)
			}
			frame[arg.Name] = flatten(arg, values)
			remaining = nil
			continue
		}
		if len(remaining) == 0 {
			break
		}
		raw[arg.Name] = remaining[0]
		remaining = remaining[1:]
	}

	if len(remaining) > 0 {
		return nil, &ValidationError{
			Command: name,
			Reason:  fmt.Sprintf("unexpected trailing arguments: %s", strings.Join(remaining, " ")),
			Kind:    KindTrailing,
		}
	}

	for key, value := range kwargs {
		normalized, err := nameutil.Normalize(key)
		if err != nil {
			return nil, &ValidationError{Command: name, Argument: key, Reason: "invalid argument name", Kind: KindUnknownArgument}
		}
		arg, ok := findArg(args, normalized)
		if !ok {
			return nil, &ValidationError{Command: name, Argument: key, Reason: "unknown argument", Kind: KindUnknownArgument}
		}
		if _, bound := raw[arg.Name]; bound {
			return nil, &ValidationError{Command: name, Argument: arg.Name, Reason: "bound both positionally and by name", Kind: KindDuplicate}
		}
		if _, bound := frame[arg.Name]; bound {
			return nil, &ValidationError{Command: name, Argument: arg.Name, Reason: "bound more than once", Kind: KindDuplicate}
		}
		raw[arg.Name] = value
	}

	for i := range args {
		arg := &args[i]
		if arg.Name == variadicName {
			continue
		}

		tok, bound := raw[arg.Name]
		if !bound {
			if arg.HasDefault {
				frame[arg.Name] = arg.Default
				continue
			}
			return nil, &ValidationError{Command: name, Argument: arg.Name, Reason: "required argument missing", Kind: KindMissing}
		}

		v, err := coerce(name, arg, tok)
		if err != nil {
			return nil, err
		}
		if err := checkChoices(name, arg, tok); err != nil {
			return nil, err
		}
		frame[arg.Name] = v
	}

	return frame, nil
}

func findArg(args []command.Argument, name string) (*command.Argument, bool) {
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

// flatten narrows a coerced variadic into the natural Go slice type.
func flatten(arg *command.Argument, values []any) any {
	switch arg.Type {
	case command.TypeInt:
		out := make([]int, len(values))
		for i, v := range values {
			out[i] = v.(int)
		}
		return out
	case command.TypeString:
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = v.(string)
		}
		return out
	default:
		return values
	}
}

func coerce(cmdName string, arg *command.Argument, raw string) (any, error) {
	switch arg.Type {
	case command.TypeString:
		return raw, nil

	case command.TypeInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &ValidationError{
				Command:  cmdName,
				Argument: arg.Name,
				Reason:   fmt.Sprintf("%q is not an integer", raw),
				Kind:     KindCoercion,
			}
		}
		return n, nil

	case command.TypeList:
		if raw == "" {
			return []string{}, nil
		}
		return strings.Split(raw, ","), nil

	case command.TypeDict:
		out := make(map[string]string)
		if raw == "" {
			return out, nil
		}
		for _, pair := range strings.Split(raw, ",") {
			eq := strings.Index(pair, "=")
			if eq <= 0 {
				return nil, &ValidationError{
					Command:  cmdName,
					Argument: arg.Name,
					Reason:   fmt.Sprintf("%q is not a key=value pair", pair),
					Kind:     KindCoercion,
				}
			}
			out[pair[:eq]] = pair[eq+1:]
		}
		return out, nil

	case command.TypeCustom:
		v, err := arg.Coerce(raw)
		if err != nil {
			return nil, &ValidationError{
				Command:  cmdName,
				Argument: arg.Name,
				Reason:   err.Error(),
				Kind:     KindCoercion,
			}
		}
		return v, nil

	default:
		return raw, nil
	}
}

// checkChoices applies the final accept/reject decision for a
// constrained argument. The pattern validator only vouches for syntax
// and membership; negation semantics are decided here.
//
// A value that is itself a pattern passes through when its syntax
// validates, the command decides what it means. A literal value is
// rejected when any negative choice entry matches it, and otherwise
// accepted only when some positive entry does.
func checkChoices(cmdName string, arg *command.Argument, value string) error {
	if len(arg.Choices) == 0 {
		return nil
	}

	reject := func(reason string) error {
		return &ValidationError{Command: cmdName, Argument: arg.Name, Reason: reason, Kind: KindChoice}
	}

	if pattern.HasPatternPrefix(value) {
		if !pattern.Matches(value, arg.Choices) {
			return reject(fmt.Sprintf("%q is not a valid pattern for choices %v", value, arg.Choices))
		}
		return nil
	}

	for _, c := range arg.Choices {
		if strings.HasPrefix(c, "!~") {
			if re, err := regexp.Compile(c[2:]); err == nil && re.MatchString(value) {
				return reject(fmt.Sprintf("%q is rejected by %q", value, c))
			}
		} else if strings.HasPrefix(c, "!") {
			if c[1:] == value {
				return reject(fmt.Sprintf("%q is rejected by %q", value, c))
			}
		}
	}

	for _, c := range arg.Choices {
		switch {
		case strings.HasPrefix(c, "!"):
			continue
		case strings.HasPrefix(c, "~"):
			if re, err := regexp.Compile(c[1:]); err == nil && re.MatchString(value) {
				return nil
			}
		default:
			if pattern.Matches(value, []string{c}) {
				return nil
			}
		}
	}

	return reject(fmt.Sprintf("%q is not one of %v", value, arg.Choices))
}
