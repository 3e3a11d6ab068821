package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netenglabs/nubia-cli/internal/dispatch"
	"github.com/netenglabs/nubia-cli/internal/shellctx"
	"github.com/netenglabs/nubia-cli/internal/usage"
)

func demoDispatcher(t *testing.T) (*dispatch.Dispatcher, *bytes.Buffer) {
	t.Helper()

	sctx := shellctx.New("nubia")
	sctx.SetTesting(true)
	sctx.SetRegistry(buildRegistry())

	var errBuf bytes.Buffer
	d := dispatch.New(sctx.Registry(), sctx)
	d.Out = &bytes.Buffer{}
	d.Err = &errBuf
	return d, &errBuf
}

func TestDemoCommands_ExitCodes(t *testing.T) {
	d, _ := demoDispatcher(t)
	ctx := context.Background()

	cases := []struct {
		line string
		code int
	}{
		{"double 21", usage.ExitSuccess},
		{"double", usage.ExitValidation},
		{"double seven", usage.ExitValidation},
		{"triple number=3", usage.ExitSuccess},
		{"lookup-hosts 10,20", usage.ExitSuccess},
		{"lookup 10,20", usage.ExitSuccess},
		{"good-name arg1=hello", usage.ExitSuccess},
		{"async-good-name arg1=hello arg2=7", usage.ExitSuccess},
		{"pos-and-kv 5", usage.ExitSuccess},
		{"pos-and-kv 5 second=other", usage.ExitSuccess},
		{"multipos 1 2 3", usage.ExitSuccess},
		{"multipos 1 2", usage.ExitValidation},
		{"multipos-and-kv 1 2 kv=3", usage.ExitSuccess},
		{"ask one two three", usage.ExitSuccess},
		{"pick option=option1", usage.ExitSuccess},
		{"pick option=nope", usage.ExitValidation},
		{"pattern-demo pattern=a", usage.ExitSuccess},
		{"pattern-demo pattern=a1", usage.ExitValidation},
		{"file-demo file=report.txt", usage.ExitSuccess},
		{"file-demo file=report.pdf", usage.ExitValidation},
		{"super-command print-name --name=ahmed", usage.ExitSuccess},
		{"super-command --shared=15 do-stuff --stuff=3", usage.ExitSuccess},
		{"super-command do --stuff=3 --shared=15", usage.ExitSuccess},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, d.Execute(ctx, tc.line), "line: %s", tc.line)
	}
}

func TestDemoCommands_UnknownGetsSuggestion(t *testing.T) {
	d, errBuf := demoDispatcher(t)

	code := d.Execute(context.Background(), "lookupp 10")
	require.Equal(t, usage.ExitUnknownCommand, code)
	assert.Contains(t, errBuf.String(), "Did you mean lookup")
}

func TestJoinArgs(t *testing.T) {
	assert.Equal(t, "double 21", joinArgs([]string{"double", "21"}))
	assert.Equal(t, `good-name arg1="hello world"`,
		joinArgs([]string{"good-name", "arg1=hello world"}))
}
