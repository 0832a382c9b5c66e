package suffixtree

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The corpus every query test runs over: classic stress strings plus
// binary-flavored cases covering the full byte domain.
var testTexts = map[string]string{
	"banana":      "banana",
	"mississippi": "mississippi",
	"abracadabra": "abracadabra",
	"single":      "x",
	"runs":        "aaaaaaaa",
	"alternating": "abababab",
	"distinct":    "abcdefgh",
	"nul-bytes":   "a\x00b\x00a\x00",
	"high-bytes":  "\xff\xfe\xff\xff\xfe",
	"empty":       "",
}

func buildOver(t *testing.T, text string) *Tree {
	t.Helper()
	tree, err := BuildString(text)
	require.NoError(t, err)
	t.Cleanup(func() { tree.Dispose() })
	return tree
}

func randomText(r *rand.Rand, n int, alphabet string) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[r.Intn(len(alphabet))])
	}
	return sb.String()
}

// bruteOccurrences is the quadratic oracle for occurrence positions,
// overlaps included.
func bruteOccurrences(text, pattern string) []int {
	out := []int{}
	for i := 0; i+len(pattern) <= len(text); i++ {
		if text[i:i+len(pattern)] == pattern {
			out = append(out, i)
		}
	}
	return out
}

// bruteRepeatLen is the oracle for the longest repeated substring length.
func bruteRepeatLen(text string) int {
	best := 0
	for i := range text {
		for j := i + 1; j < len(text); j++ {
			k := 0
			for j+k < len(text) && text[i+k] == text[j+k] {
				k++
			}
			if k > best {
				best = k
			}
		}
	}
	return best
}

// bruteCommonLen is the oracle for the longest common substring length.
func bruteCommonLen(a, b string) int {
	best := 0
	for i := range a {
		for j := range b {
			k := 0
			for i+k < len(a) && j+k < len(b) && a[i+k] == b[j+k] {
				k++
			}
			if k > best {
				best = k
			}
		}
	}
	return best
}

// bruteAnchors is the oracle for maximal exact matches: every (p, q) pair
// that cannot extend left, taken out to its longest common extension.
func bruteAnchors(text, query string, minLength int) []Anchor {
	out := []Anchor{}
	for p := range text {
		for q := range query {
			if p > 0 && q > 0 && text[p-1] == query[q-1] {
				continue
			}
			l := 0
			for p+l < len(text) && q+l < len(query) && text[p+l] == query[q+l] {
				l++
			}
			if l >= minLength {
				out = append(out, Anchor{PosInText: p, PosInQuery: q, Length: l})
			}
		}
	}
	return out
}
