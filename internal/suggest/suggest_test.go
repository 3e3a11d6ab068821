package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"lookupp", "lookup", 1},
		{"lokup", "lookup", 1},
		{"lokoup", "lookup", 1}, // adjacent transposition counts once
		{"teh", "the", 1},
		{"double", "triple", 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Distance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}

func TestSuggest_PrefixWins(t *testing.T) {
	known := []string{"a", "a1", "b1", "a2a1"}

	require.Equal(t, []string{"b1"}, Suggest("b", known))
	require.Equal(t, []string{"a", "a1", "a2a1"}, Suggest("a", known))
}

func TestSuggest_PrefixSuppressesDistance(t *testing.T) {
	known := []string{"lookup", "lookdown"}

	// "look" is a prefix of both; no distance candidates sneak in.
	require.Equal(t, []string{"lookdown", "lookup"}, Suggest("look", known))
}

func TestSuggest_EditDistanceFallback(t *testing.T) {
	known := []string{"lookup", "double", "triple"}

	require.Equal(t, []string{"lookup"}, Suggest("lookupp", known))
	require.Equal(t, []string{"double"}, Suggest("duoble", known))
}

func TestSuggest_CaseNormalized(t *testing.T) {
	known := []string{"lookup"}

	require.Equal(t, []string{"lookup"}, Suggest("LOOKUP", known))
}

func TestSuggest_SkipsSingleCharNames(t *testing.T) {
	known := []string{"?", "q", "quit"}

	got := Suggest("qit", known)
	require.Equal(t, []string{"quit"}, got)
}

func TestSuggest_Empty(t *testing.T) {
	require.Empty(t, Suggest("zzzzz", []string{"lookup", "double"}))
	require.Empty(t, Suggest("x", nil))
}

func TestSuggest_SortedByDistanceThenName(t *testing.T) {
	known := []string{"tripe", "tribe", "gripe"}

	// tripe is one edit away, tribe and gripe are two; ties break by name.
	got := Suggest("txipe", known)
	require.Equal(t, []string{"tripe", "gripe", "tribe"}, got)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, ", Did you mean lookup?", Message([]string{"lookup"}))
	assert.Equal(t, ", Did you mean a, b or c?", Message([]string{"a", "b", "c"}))
}
