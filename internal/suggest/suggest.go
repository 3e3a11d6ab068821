// Package suggest ranks known command names against a mistyped one for
// "Did you mean ...?" diagnostics.
package suggest

import (
	"fmt"
	"sort"
	"strings"
)

// maxDistance is the edit-distance cutoff for a name to be suggested.
const maxDistance = 2

// Distance calculates the Damerau-Levenshtein distance between two
// strings: insertions, deletions, substitutions and adjacent
// transpositions each count as one edit.
func Distance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)

			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				matrix[i][j] = min(matrix[i][j], matrix[i-2][j-2]+1) // transposition
			}
		}
	}

	return matrix[len(a)][len(b)]
}

type candidate struct {
	name     string
	distance int
}

// Suggest returns the known names closest to typed. Names that start
// with the lower-cased input win outright and suppress distance-based
// candidates; otherwise names within maxDistance edits are returned,
// closest first. Single-character names are never suggested by
// distance, they would match almost anything.
func Suggest(typed string, known []string) []string {
	lowered := strings.ToLower(typed)

	var prefixed []string
	var near []candidate

	for _, name := range known {
		if strings.HasPrefix(name, lowered) {
			prefixed = append(prefixed, name)
			continue
		}
		if len(name) > 1 {
			if d := Distance(lowered, name); d <= maxDistance {
				near = append(near, candidate{name: name, distance: d})
			}
		}
	}

	if len(prefixed) > 0 {
		sort.Strings(prefixed)
		return prefixed
	}

	sort.Slice(near, func(i, j int) bool {
		if near[i].distance != near[j].distance {
			return near[i].distance < near[j].distance
		}
		return near[i].name < near[j].name
	})

	result := make([]string, len(near))
	for i, c := range near {
		result[i] = c.name
	}
	return result
}

// Message formats suggestions as a user-facing tail for an unknown
// command diagnostic. Empty input yields an empty string.
func Message(suggestions []string) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(", Did you mean %s?", suggestions[0])
	default:
		head := strings.Join(suggestions[:len(suggestions)-1], ", ")
		return fmt.Sprintf(", Did you mean %s or %s?", head, suggestions[len(suggestions)-1])
	}
}
