package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/netenglabs/nubia-cli/internal/command"
)

// buildRegistry assembles the demo command set the shell ships with.
func buildRegistry() *command.Registry {
	reg := command.NewRegistry()

	specs := []command.Spec{
		{
			Name:    "lookup-hosts",
			Aliases: []string{"lookup"},
			Doc:     "looks up hosts and prints their addresses",
			Args: []command.Argument{
				{Name: "hosts", Type: command.TypeList, Positional: true},
			},
			Handler: command.Sync(func(inv *command.Invocation) (any, error) {
				hosts := inv.Strings("hosts")
				fmt.Printf("hosts: %v\n", hosts)
				fmt.Printf("verbose: %d\n", inv.Shell.Verbose())
				return nil, nil
			}),
		},
		{
			Name: "good-name",
			Doc:  "prints its arguments back",
			Args: []command.Argument{
				{Name: "arg1"},
				{Name: "arg2", Type: command.TypeInt, Default: 42, HasDefault: true},
			},
			Handler: command.Sync(func(inv *command.Invocation) (any, error) {
				fmt.Printf("arg1=%s arg2=%d\n", inv.String("arg1"), inv.Int("arg2"))
				return nil, nil
			}),
		},
		{
			Name: "async-good-name",
			Doc:  "prints its arguments back, asynchronously",
			Args: []command.Argument{
				{Name: "arg1"},
				{Name: "arg2", Type: command.TypeInt, Default: 42, HasDefault: true},
			},
			Handler: command.Async(func(ctx context.Context, inv *command.Invocation) (any, error) {
				fmt.Printf("arg1=%s arg2=%d\n", inv.String("arg1"), inv.Int("arg2"))
				return nil, nil
			}),
		},
		{
			Name: "double",
			Doc:  "doubles a number",
			Args: []command.Argument{
				{Name: "number", Type: command.TypeInt, Positional: true},
			},
			Handler: command.Sync(func(inv *command.Invocation) (any, error) {
				fmt.Println(inv.Int("number") * 2)
				return nil, nil
			}),
		},
		{
			Name: "triple",
			Doc:  "triples a number after a short pause",
			Args: []command.Argument{
				{Name: "number", Type: command.TypeInt},
			},
			Handler: command.Async(func(ctx context.Context, inv *command.Invocation) (any, error) {
				select {
				case <-time.After(10 * time.Millisecond):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
				fmt.Println(inv.Int("number") * 3)
				return nil, nil
			}),
		},
		{
			Name: "pos-and-kv",
			Doc:  "mixes a positional with a keyword argument",
			Args: []command.Argument{
				{Name: "first", Type: command.TypeInt, Positional: true},
				{Name: "second", Default: "default", HasDefault: true},
			},
			Handler: command.Sync(func(inv *command.Invocation) (any, error) {
				fmt.Printf("first=%d second=%s\n", inv.Int("first"), inv.String("second"))
				return nil, nil
			}),
		},
		{
			Name: "multipos",
			Doc:  "takes three positional arguments",
			Args: []command.Argument{
				{Name: "first", Type: command.TypeInt, Positional: true},
				{Name: "second", Type: command.TypeInt, Positional: true},
				{Name: "third", Type: command.TypeInt, Positional: true},
			},
			Handler: command.Sync(func(inv *command.Invocation) (any, error) {
				fmt.Println(inv.Int("first") + inv.Int("second") + inv.Int("third"))
				return nil, nil
			}),
		},
		{
			Name: "multipos-and-kv",
			Doc:  "mixes several positionals with a keyword argument",
			Args: []command.Argument{
				{Name: "first", Type: command.TypeInt, Positional: true},
				{Name: "second", Type: command.TypeInt, Positional: true},
				{Name: "kv", Type: command.TypeInt, Default: 0, HasDefault: true},
			},
			Handler: command.Sync(func(inv *command.Invocation) (any, error) {
				fmt.Println(inv.Int("first") + inv.Int("second") + inv.Int("kv"))
				return nil, nil
			}),
		},
		{
			Name: "ask",
			Doc:  "echoes every word it is given",
			Args: []command.Argument{
				{Name: "words", Positional: true, Variadic: true},
			},
			Handler: command.Sync(func(inv *command.Invocation) (any, error) {
				fmt.Println(strings.Join(inv.Strings("words"), " "))
				return nil, nil
			}),
		},
		{
			Name: "pick",
			Doc:  "accepts one of a fixed set of options",
			Args: []command.Argument{
				{Name: "option", Choices: []string{"option1", "option2"}},
			},
			Handler: command.Sync(func(inv *command.Invocation) (any, error) {
				fmt.Printf("picked %s\n", inv.String("option"))
				return nil, nil
			}),
		},
		{
			Name: "pattern-demo",
			Doc:  "accepts values matching a rule set",
			Args: []command.Argument{
				{Name: "pattern", Choices: []string{"a", "a1", "b1", "a2a1", "~a.*", "!a1", "!~b.*"}},
			},
			Handler: command.Sync(func(inv *command.Invocation) (any, error) {
				fmt.Printf("accepted %s\n", inv.String("pattern"))
				return nil, nil
			}),
		},
		{
			Name: "file-demo",
			Doc:  "accepts text or log file names",
			Args: []command.Argument{
				{Name: "file", Choices: []string{`~.*\.(txt|log)$`}},
			},
			Handler: command.Sync(func(inv *command.Invocation) (any, error) {
				fmt.Printf("file %s\n", inv.String("file"))
				return nil, nil
			}),
		},
	}

	if err := reg.RegisterSpecs(specs...); err != nil {
		panic(err)
	}

	super := command.MustNewSuper(command.SuperSpec{
		Name: "SuperCommand",
		Doc:  "a command namespace with a shared argument",
		SharedArgs: []command.Argument{
			{Name: "shared", Type: command.TypeInt, Default: 10, HasDefault: true},
		},
		Subcommands: []command.Spec{
			{
				Name: "print-name",
				Doc:  "prints a name together with the shared value",
				Args: []command.Argument{{Name: "name"}},
				Handler: command.Sync(func(inv *command.Invocation) (any, error) {
					fmt.Printf("name=%s shared=%d\n", inv.String("name"), inv.Scope.Int("shared"))
					return nil, nil
				}),
			},
			{
				Name:    "do-stuff",
				Aliases: []string{"do"},
				Doc:     "adds the shared value to its argument",
				Args:    []command.Argument{{Name: "stuff", Type: command.TypeInt}},
				Handler: command.Sync(func(inv *command.Invocation) (any, error) {
					fmt.Println(inv.Int("stuff") + inv.Scope.Int("shared"))
					return nil, nil
				}),
			},
		},
	})
	if err := reg.Register(super); err != nil {
		panic(err)
	}

	return reg
}
