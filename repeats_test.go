package suffixtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLongestRepeatedSubstring(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"banana", "ana"},
		{"mississippi", "issi"},
		{"abcdef", ""},
		{"aaaaa", "aaaa"},
		{"x", ""},
		{"", ""},
		{"abab", "ab"},
		{"abcabcabc", "abcabc"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			tree := buildOver(t, tc.text)
			got, err := tree.LongestRepeatedSubstring()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Overlapping repeats count; the answer's length must match the quadratic
// oracle and the answer itself must occur at least twice.
func TestLongestRepeatedSubstringRandom(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 25; i++ {
		text := randomText(r, 20+r.Intn(120), "ab")
		tree, err := BuildString(text)
		require.NoError(t, err)

		got, err := tree.LongestRepeatedSubstring()
		require.NoError(t, err)
		assert.Equal(t, bruteRepeatLen(text), len(got), "text %q", text)
		if len(got) > 0 {
			count, err := tree.CountOccurrencesString(got)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, count, 2, "text %q repeat %q", text, got)
		}
		require.NoError(t, tree.Dispose())
	}
}
