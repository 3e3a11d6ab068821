// Package parser tokenizes a raw command line and resolves it against
// the registry into a bindable parse result.
package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/netenglabs/nubia-cli/internal/command"
	"github.com/netenglabs/nubia-cli/internal/suggest"
)

// Result is a partial-or-complete parse. Path runs root to leaf; for a
// super-command invocation SharedKwargs holds the constructor argument
// tokens wherever they appeared relative to the subcommand keyword.
type Result struct {
	Path         []*command.Command
	Kwargs       map[string]string
	Positionals  []string
	SharedKwargs map[string]string
}

// Leaf returns the command that will be dispatched.
func (r *Result) Leaf() *command.Command {
	if len(r.Path) == 0 {
		return nil
	}
	return r.Path[len(r.Path)-1]
}

// ParseError reports a line that could not be resolved. It carries the
// unconsumed remainder, the partial result and the 0-based column of
// the failing token so interactive mode can place a caret.
type ParseError struct {
	Msg       string
	Remaining string
	Partial   *Result
	Col       int
}

func (e *ParseError) Error() string {
	return e.Msg
}

// UnknownCommandError reports a token that named no command at its
// level, with ranked suggestions attached.
type UnknownCommandError struct {
	Name        string
	Col         int
	Suggestions []string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q%s", e.Name, suggest.Message(e.Suggestions))
}

// Parse resolves line against the registry. The command path may
// descend through one super-command level; shared arguments are
// accepted both before and after the subcommand token.
func Parse(line string, reg *command.Registry) (*Result, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &ParseError{Msg: "empty command", Col: 0}
	}

	first := tokens[0]
	if first.Kind != TokenWord {
		return nil, &ParseError{Msg: fmt.Sprintf("expected a command, got %q", first.Text), Remaining: remaining(line, first.Col), Col: first.Col}
	}

	root, ok := reg.Lookup(first.Text)
	if !ok {
		return nil, &UnknownCommandError{
			Name:        first.Text,
			Col:         first.Col,
			Suggestions: suggest.Suggest(first.Text, reg.Names()),
		}
	}

	res := &Result{
		Path:         []*command.Command{root},
		Kwargs:       make(map[string]string),
		Positionals:  nil,
		SharedKwargs: make(map[string]string),
	}

	rest := tokens[1:]
	if root.Super() {
		return parseSuper(line, root, rest, res)
	}
	if err := consumeArgs(line, root, rest, res); err != nil {
		return nil, err
	}
	return res, nil
}

// parseSuper walks a super-command: keyword tokens naming shared
// arguments may precede the subcommand token, everything after it
// belongs to the subcommand unless it names a shared argument.
func parseSuper(line string, super *command.Command, tokens []Token, res *Result) (*Result, error) {
	var sub *command.Command
	subIdx := -1

	for i, tok := range tokens {
		if tok.Keyword() || tok.Kind == TokenFlag {
			if _, ok := super.FindSharedArg(tok.Key); ok {
				if err := putKwarg(line, res.SharedKwargs, tok); err != nil {
					return nil, err
				}
				continue
			}
			return nil, &ParseError{
				Msg:       fmt.Sprintf("%q is not a shared argument of %q", tok.Key, super.Name),
				Remaining: remaining(line, tok.Col),
				Partial:   res,
				Col:       tok.Col,
			}
		}

		child, ok := super.Lookup(tok.Text)
		if !ok {
			return nil, &UnknownCommandError{
				Name:        tok.Text,
				Col:         tok.Col,
				Suggestions: suggest.Suggest(tok.Text, super.SubcommandNames()),
			}
		}
		sub = child
		subIdx = i
		break
	}

	if sub == nil {
		return nil, &ParseError{
			Msg:     fmt.Sprintf("ambiguous command: %q needs a subcommand", super.Name),
			Partial: res,
			Col:     utf8.RuneCountInString(line),
		}
	}

	res.Path = append(res.Path, sub)
	if err := consumeArgs(line, sub, tokens[subIdx+1:], res); err != nil {
		return nil, err
	}
	return res, nil
}

// consumeArgs routes the remaining tokens of a resolved leaf: keyword
// tokens naming a shared argument of the enclosing super-command go to
// SharedKwargs, other keyword tokens to Kwargs, bare words to
// Positionals.
func consumeArgs(line string, leaf *command.Command, tokens []Token, res *Result) error {
	var super *command.Command
	if len(res.Path) > 1 {
		super = res.Path[0]
	}

	for _, tok := range tokens {
		switch {
		case tok.Keyword(), tok.Kind == TokenFlag:
			if super != nil {
				if _, ok := super.FindSharedArg(tok.Key); ok {
					if _, alsoLeaf := leaf.FindArg(tok.Key); !alsoLeaf {
						if err := putKwarg(line, res.SharedKwargs, tok); err != nil {
							return err
						}
						continue
					}
				}
			}
			if err := putKwarg(line, res.Kwargs, tok); err != nil {
				return err
			}
		default:
			res.Positionals = append(res.Positionals, tok.Text)
		}
	}
	return nil
}

// remaining slices line from a token column. Columns are rune offsets,
// so the line is sliced as runes.
func remaining(line string, col int) string {
	runes := []rune(line)
	if col >= len(runes) {
		return ""
	}
	return string(runes[col:])
}

func putKwarg(line string, dst map[string]string, tok Token) error {
	if tok.Kind == TokenFlag {
		// A bare "--flag" reads as a true switch.
		tok.Value = "true"
	}
	if _, dup := dst[tok.Key]; dup {
		return &ParseError{
			Msg:       fmt.Sprintf("argument %q given more than once", tok.Key),
			Remaining: remaining(line, tok.Col),
			Col:       tok.Col,
		}
	}
	dst[tok.Key] = tok.Value
	return nil
}
