package suffixtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindExactMatchAnchors(t *testing.T) {
	tree := buildOver(t, "bandana")
	got, err := tree.FindExactMatchAnchors([]byte("banana"), 3)
	require.NoError(t, err)
	assert.Equal(t, []Anchor{
		{PosInText: 0, PosInQuery: 0, Length: 3}, // ban
		{PosInText: 4, PosInQuery: 1, Length: 3}, // ana
		{PosInText: 4, PosInQuery: 3, Length: 3}, // ana again, shifted in the query
	}, got)
}

func TestFindExactMatchAnchorsRightMaximalInsideLongerWindow(t *testing.T) {
	// The second text "a" matches the query "a" maximally even though the
	// match window itself extends on through "ab".
	tree := buildOver(t, "abax")
	got, err := tree.FindExactMatchAnchors([]byte("ab"), 1)
	require.NoError(t, err)
	assert.Equal(t, []Anchor{
		{PosInText: 0, PosInQuery: 0, Length: 2},
		{PosInText: 2, PosInQuery: 0, Length: 1},
	}, got)
}

func TestFindExactMatchAnchorsMinLength(t *testing.T) {
	tree := buildOver(t, "bandana")

	_, err := tree.FindExactMatchAnchors([]byte("banana"), 0)
	assert.Error(t, err)

	got, err := tree.FindExactMatchAnchors([]byte("banana"), 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindExactMatchAnchorsNoMatches(t *testing.T) {
	tree := buildOver(t, "aaaa")
	got, err := tree.FindExactMatchAnchors([]byte("bbbb"), 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindExactMatchAnchorsAgainstBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(31))
	for i := 0; i < 20; i++ {
		text := randomText(r, 10+r.Intn(40), "ab")
		query := randomText(r, 10+r.Intn(40), "ab")
		for _, minLength := range []int{1, 2, 4} {
			tree, err := BuildString(text)
			require.NoError(t, err)

			got, err := tree.FindExactMatchAnchors([]byte(query), minLength)
			require.NoError(t, err)
			want := bruteAnchors(text, query, minLength)
			if len(want) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, want, got, "text %q query %q min %d", text, query, minLength)
			}
			require.NoError(t, tree.Dispose())
		}
	}
}
