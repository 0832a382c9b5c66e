package suffixtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqeron/go-suffixtree/layout"
	"github.com/seqeron/go-suffixtree/storage"
)

func TestBuildLeafCountEqualsTextLength(t *testing.T) {
	for name, text := range testTexts {
		t.Run(name, func(t *testing.T) {
			tree := buildOver(t, text)
			st := tree.Stats()
			assert.Equal(t, uint64(len(text)), st.LeafCount)
			// The leaf for the whole text is the deepest node.
			assert.Equal(t, uint64(len(text)), st.MaxDepth)
			assert.GreaterOrEqual(t, st.NodeCount, st.LeafCount)
			// A tree cannot have more nodes than one internal node per leaf
			// plus the leaves themselves.
			assert.LessOrEqual(t, st.NodeCount, 2*st.LeafCount+1)
		})
	}
}

func TestBuildRandomTexts(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, alphabet := range []string{"ab", "abcd", "acgt"} {
		for _, n := range []int{1, 2, 7, 33, 257} {
			text := randomText(r, n, alphabet)
			tree, err := BuildString(text)
			require.NoError(t, err)
			st := tree.Stats()
			assert.Equal(t, uint64(n), st.LeafCount, "alphabet %q n %d", alphabet, n)
			ok, err := tree.ContainsString(text)
			require.NoError(t, err)
			assert.True(t, ok, "text must contain itself")
			require.NoError(t, tree.Dispose())
		}
	}
}

func TestBuildNilText(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrNilText)
}

func TestBuildIntoRejectsUsedStorage(t *testing.T) {
	store := storage.NewArena(0)
	_, err := store.Allocate(8)
	require.NoError(t, err)

	_, err = BuildInto(NewStringSource("abc"), store, layout.Compact)
	assert.ErrorIs(t, err, ErrStorageNotEmpty)
}

func TestBuildEmptyText(t *testing.T) {
	tree := buildOver(t, "")
	st := tree.Stats()
	assert.Equal(t, uint64(0), st.LeafCount)

	ok, err := tree.Contains(nil)
	require.NoError(t, err)
	assert.True(t, ok, "the empty pattern is a substring of anything")

	ok, err = tree.ContainsString("a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildVersionFollowsLayout(t *testing.T) {
	compact, err := BuildString("banana", WithLayout(layout.Compact))
	require.NoError(t, err)
	defer compact.Dispose()
	assert.Equal(t, layout.VersionCompact, compact.Stats().Version)

	large, err := BuildString("banana", WithLayout(layout.Large))
	require.NoError(t, err)
	defer large.Dispose()
	assert.Equal(t, layout.VersionLarge, large.Stats().Version)
}

func TestDisposeMakesQueriesFail(t *testing.T) {
	tree, err := BuildString("banana")
	require.NoError(t, err)
	require.NoError(t, tree.Dispose())

	_, err = tree.ContainsString("an")
	assert.ErrorIs(t, err, ErrTreeDisposed)
	_, err = tree.LongestRepeatedSubstring()
	assert.ErrorIs(t, err, ErrTreeDisposed)

	// Dispose is idempotent.
	assert.NoError(t, tree.Dispose())
}
