package binder

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netenglabs/nubia-cli/internal/command"
)

func nop(inv *command.Invocation) (any, error) { return nil, nil }

func mustCmd(t *testing.T, spec command.Spec) *command.Command {
	t.Helper()
	if spec.Handler == nil {
		spec.Handler = command.Sync(nop)
	}
	cmd, err := command.New(spec)
	require.NoError(t, err)
	return cmd
}

func TestBind_PositionalAndKeyword(t *testing.T) {
	cmd := mustCmd(t, command.Spec{
		Name: "pos-and-kv",
		Args: []command.Argument{
			{Name: "number", Type: command.TypeInt, Positional: true},
			{Name: "text", Type: command.TypeString, Default: "", HasDefault: true},
		},
	})

	frame, err := Bind(cmd, map[string]string{"text": "hello"}, []string{"7"})
	require.NoError(t, err)
	assert.Equal(t, 7, frame["number"])
	assert.Equal(t, "hello", frame["text"])
}

func TestBind_AppliesDefaults(t *testing.T) {
	cmd := mustCmd(t, command.Spec{
		Name: "pos-and-kv",
		Args: []command.Argument{
			{Name: "number", Type: command.TypeInt, Positional: true},
			{Name: "text", Type: command.TypeString, Default: "none", HasDefault: true},
		},
	})

	frame, err := Bind(cmd, nil, []string{"7"})
	require.NoError(t, err)
	assert.Equal(t, "none", frame["text"])
}

func TestBind_MissingRequiredPositional(t *testing.T) {
	cmd := mustCmd(t, command.Spec{
		Name: "double",
		Args: []command.Argument{
			{Name: "number", Type: command.TypeInt, Positional: true},
		},
	})

	_, err := Bind(cmd, nil, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindMissing, verr.Kind)
	assert.Equal(t, "number", verr.Argument)
}

func TestBind_MissingRequiredKeyword(t *testing.T) {
	cmd := mustCmd(t, command.Spec{
		Name: "sub-command",
		Args: []command.Argument{
			{Name: "arg1"},
			{Name: "arg2", Type: command.TypeInt},
		},
	})

	_, err := Bind(cmd, map[string]string{"arg1": "giza"}, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindMissing, verr.Kind)
	assert.Equal(t, "arg2", verr.Argument)
}

func TestBind_KeywordAlias(t *testing.T) {
	cmd := mustCmd(t, command.Spec{
		Name: "lookup-hosts",
		Args: []command.Argument{
			{Name: "hosts", Type: command.TypeList, Aliases: []string{"i"}},
		},
	})

	frame, err := Bind(cmd, map[string]string{"i": "a,b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, frame["hosts"])
}

func TestBind_UnderscoredKeywordNormalized(t *testing.T) {
	cmd := mustCmd(t, command.Spec{
		Name: "cmd",
		Args: []command.Argument{{Name: "bad-name", Type: command.TypeInt}},
	})

	frame, err := Bind(cmd, map[string]string{"bad_name": "3"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, frame["bad-name"])
}

func TestBind_UnknownKeyword(t *testing.T) {
	cmd := mustCmd(t, command.Spec{Name: "double",
		Args: []command.Argument{{Name: "number", Type: command.TypeInt, Positional: true}}})

	_, err := Bind(cmd, map[string]string{"bogus": "1"}, []string{"2"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindUnknownArgument, verr.Kind)
}

func TestBind_TrailingPositionals(t *testing.T) {
	cmd := mustCmd(t, command.Spec{Name: "double",
		Args: []command.Argument{{Name: "number", Type: command.TypeInt, Positional: true}}})

	_, err := Bind(cmd, nil, []string{"1", "2", "3"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindTrailing, verr.Kind)
}

func TestBind_DoubleBinding(t *testing.T) {
	cmd := mustCmd(t, command.Spec{Name: "double",
		Args: []command.Argument{{Name: "number", Type: command.TypeInt, Positional: true}}})

	_, err := Bind(cmd, map[string]string{"number": "2"}, []string{"1"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindDuplicate, verr.Kind)
}

func TestBind_Variadic(t *testing.T) {
	cmd := mustCmd(t, command.Spec{Name: "ask",
		Args: []command.Argument{{Name: "text", Positional: true, Variadic: true}}})

	frame, err := Bind(cmd, nil, []string{"hello", "big", "world"})
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "big", "world"}, frame["text"])

	frame, err = Bind(cmd, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, frame["text"])
}

func TestBind_VariadicAfterFixedPositionals(t *testing.T) {
	cmd := mustCmd(t, command.Spec{Name: "multi",
		Args: []command.Argument{
			{Name: "first", Positional: true},
			{Name: "rest", Type: command.TypeInt, Positional: true, Variadic: true},
		}})

	frame, err := Bind(cmd, nil, []string{"head", "1", "2"})
	require.NoError(t, err)
	assert.Equal(t, "head", frame["first"])
	assert.Equal(t, []int{1, 2}, frame["rest"])
}

func TestBind_IntCoercionFailure(t *testing.T) {
	cmd := mustCmd(t, command.Spec{Name: "double",
		Args: []command.Argument{{Name: "number", Type: command.TypeInt, Positional: true}}})

	_, err := Bind(cmd, nil, []string{"seven"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindCoercion, verr.Kind)
}

func TestBind_DictCoercion(t *testing.T) {
	cmd := mustCmd(t, command.Spec{Name: "cmd",
		Args: []command.Argument{{Name: "mydict", Type: command.TypeDict}}})

	frame, err := Bind(cmd, map[string]string{"mydict": "a=1,b=2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, frame["mydict"])

	_, err = Bind(cmd, map[string]string{"mydict": "nopair"}, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindCoercion, verr.Kind)
}

func TestBind_CustomCoercion(t *testing.T) {
	macRe := regexp.MustCompile(`^([0-9a-f]{2}:){5}[0-9a-f]{2}$`)
	cmd := mustCmd(t, command.Spec{Name: "test-mac",
		Args: []command.Argument{{
			Name: "mac",
			Type: command.TypeCustom,
			Coerce: func(raw string) (any, error) {
				if !macRe.MatchString(raw) {
					return nil, fmt.Errorf("%q is not a mac address", raw)
				}
				return raw, nil
			},
		}}})

	frame, err := Bind(cmd, map[string]string{"mac": "00:01:21:ab:cd:8f"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "00:01:21:ab:cd:8f", frame["mac"])

	_, err = Bind(cmd, map[string]string{"mac": "nope"}, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindCoercion, verr.Kind)
}

func TestBind_PlainChoices(t *testing.T) {
	cmd := mustCmd(t, command.Spec{Name: "pick",
		Args: []command.Argument{{Name: "style", Choices: []string{"test", "toast", "toad"}}}})

	_, err := Bind(cmd, map[string]string{"style": "toast"}, nil)
	require.NoError(t, err)

	_, err = Bind(cmd, map[string]string{"style": "bogus"}, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindChoice, verr.Kind)
}

func TestBind_IntChoices(t *testing.T) {
	cmd := mustCmd(t, command.Spec{Name: "pick",
		Args: []command.Argument{{Name: "code", Type: command.TypeInt, Choices: []string{"12", "13", "14"}}}})

	frame, err := Bind(cmd, map[string]string{"code": "13"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 13, frame["code"])

	_, err = Bind(cmd, map[string]string{"code": "15"}, nil)
	require.Error(t, err)
}

// Choice entries may themselves be rules: regexes widen the accepted
// set and negations carve values out of it. Negation wins.
func TestBind_ChoiceRules(t *testing.T) {
	choices := []string{"a", "a1", "b1", "a2a1", "~a.*", "!a1", "!~b.*"}
	cmd := mustCmd(t, command.Spec{Name: "pattern-demo",
		Args: []command.Argument{{Name: "pattern", Choices: choices}}})

	for _, ok := range []string{"a", "a2", "a2a1"} {
		_, err := Bind(cmd, map[string]string{"pattern": ok}, nil)
		require.NoError(t, err, "value %q", ok)
	}

	for _, bad := range []string{"a1", "b1", "c"} {
		_, err := Bind(cmd, map[string]string{"pattern": bad}, nil)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "value %q", bad)
		assert.Equal(t, KindChoice, verr.Kind)
	}
}

func TestBind_FileChoiceRules(t *testing.T) {
	choices := []string{`~.*\.py$`, `~test_.*`, `!~.*\.tmp$`, `!~.*_backup`}
	cmd := mustCmd(t, command.Spec{Name: "file-demo",
		Args: []command.Argument{{Name: "files", Choices: choices}}})

	for _, ok := range []string{"main.py", "test_file.py"} {
		_, err := Bind(cmd, map[string]string{"files": ok}, nil)
		require.NoError(t, err, "value %q", ok)
	}

	for _, bad := range []string{"data.tmp", "backup_file"} {
		_, err := Bind(cmd, map[string]string{"files": bad}, nil)
		require.Error(t, err, "value %q", bad)
	}
}

func TestBind_PatternValuePassesThrough(t *testing.T) {
	cmd := mustCmd(t, command.Spec{Name: "pick",
		Args: []command.Argument{{Name: "style", Choices: []string{"test", "toast", "toad"}}}})

	// A syntactically valid regex value is accepted; the command applies
	// its meaning downstream.
	_, err := Bind(cmd, map[string]string{"style": "~to.*"}, nil)
	require.NoError(t, err)

	_, err = Bind(cmd, map[string]string{"style": "~[invalid"}, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, KindChoice, verr.Kind)

	// Negating a literal that is not a known choice is rejected here,
	// not by the syntax validator.
	_, err = Bind(cmd, map[string]string{"style": "!bogus"}, nil)
	require.Error(t, err)
}

func TestBindShared(t *testing.T) {
	super, err := command.NewSuper(command.SuperSpec{
		Name: "SuperCommand",
		Doc:  "doc",
		SharedArgs: []command.Argument{
			{Name: "shared", Type: command.TypeInt, Default: 10, HasDefault: true},
		},
		Subcommands: []command.Spec{
			{Name: "sub", Doc: "sub", Handler: command.Sync(nop)},
		},
	})
	require.NoError(t, err)

	frame, err := BindShared(super, map[string]string{"shared": "15"})
	require.NoError(t, err)
	assert.Equal(t, 15, frame["shared"])

	frame, err = BindShared(super, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, frame["shared"])
}

func TestBind_FailureKindsDistinct(t *testing.T) {
	cmd := mustCmd(t, command.Spec{Name: "c", Args: []command.Argument{
		{Name: "n", Type: command.TypeInt, Choices: []string{"1", "2"}},
	}})

	_, errCoerce := Bind(cmd, map[string]string{"n": "x"}, nil)
	_, errChoice := Bind(cmd, map[string]string{"n": "3"}, nil)
	_, errMissing := Bind(cmd, nil, nil)

	var verr *ValidationError
	require.ErrorAs(t, errCoerce, &verr)
	assert.Equal(t, KindCoercion, verr.Kind)
	require.ErrorAs(t, errChoice, &verr)
	assert.Equal(t, KindChoice, verr.Kind)
	require.ErrorAs(t, errMissing, &verr)
	assert.Equal(t, KindMissing, verr.Kind)
}
