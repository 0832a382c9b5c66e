package suffixtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqeron/go-suffixtree/layout"
)

// The two node formats must be indistinguishable through the query API: same
// counts, same answers, same logical hash.
func TestLayoutParity(t *testing.T) {
	for name, text := range testTexts {
		t.Run(name, func(t *testing.T) {
			compact, err := BuildString(text, WithLayout(layout.Compact))
			require.NoError(t, err)
			defer compact.Dispose()
			large, err := BuildString(text, WithLayout(layout.Large))
			require.NoError(t, err)
			defer large.Dispose()

			cs, ls := compact.Stats(), large.Stats()
			assert.Equal(t, cs.NodeCount, ls.NodeCount)
			assert.Equal(t, cs.LeafCount, ls.LeafCount)
			assert.Equal(t, cs.MaxDepth, ls.MaxDepth)
			assert.NotEqual(t, cs.Version, ls.Version)

			for i := 0; i < len(text); i++ {
				for j := i + 1; j <= len(text) && j <= i+5; j++ {
					pattern := text[i:j]
					co, err := compact.FindAllOccurrencesString(pattern)
					require.NoError(t, err)
					lo, err := large.FindAllOccurrencesString(pattern)
					require.NoError(t, err)
					assert.Equal(t, co, lo, "pattern %q", pattern)
				}
			}

			cr, err := compact.LongestRepeatedSubstring()
			require.NoError(t, err)
			lr, err := large.LongestRepeatedSubstring()
			require.NoError(t, err)
			assert.Equal(t, cr, lr)

			csuf, err := compact.GetAllSuffixes()
			require.NoError(t, err)
			lsuf, err := large.GetAllSuffixes()
			require.NoError(t, err)
			assert.Equal(t, csuf, lsuf)
		})
	}
}

func TestLogicalHashEqualAcrossLayouts(t *testing.T) {
	r := rand.New(rand.NewSource(41))
	texts := []string{"banana", "mississippi", "", "a", randomText(r, 200, "acgt")}
	for _, text := range texts {
		compact, err := BuildString(text, WithLayout(layout.Compact))
		require.NoError(t, err)
		large, err := BuildString(text, WithLayout(layout.Large))
		require.NoError(t, err)

		ch, err := compact.CalculateLogicalHash()
		require.NoError(t, err)
		lh, err := large.CalculateLogicalHash()
		require.NoError(t, err)
		assert.Equal(t, ch, lh, "text %q", text)
		assert.Len(t, ch, 64, "hex sha256")

		require.NoError(t, compact.Dispose())
		require.NoError(t, large.Dispose())
	}
}

func TestLogicalHashDistinguishesTexts(t *testing.T) {
	a, err := BuildString("banana")
	require.NoError(t, err)
	defer a.Dispose()
	b, err := BuildString("bananas")
	require.NoError(t, err)
	defer b.Dispose()

	ha, err := a.CalculateLogicalHash()
	require.NoError(t, err)
	hb, err := b.CalculateLogicalHash()
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

func TestLogicalHashStableAcrossBackends(t *testing.T) {
	heap, err := BuildString("abracadabra")
	require.NoError(t, err)
	defer heap.Dispose()

	path := t.TempDir() + "/abra.tree"
	file, err := BuildFile([]byte("abracadabra"), path)
	require.NoError(t, err)
	defer file.Dispose()

	hh, err := heap.CalculateLogicalHash()
	require.NoError(t, err)
	fh, err := file.CalculateLogicalHash()
	require.NoError(t, err)
	assert.Equal(t, hh, fh)
}
