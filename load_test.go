package suffixtree

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/seqeron/go-suffixtree/layout"
)

func TestBuildFileThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miss.tree")

	built, err := BuildFile([]byte("mississippi"), path)
	assert.NilError(t, err)
	builtStats := built.Stats()
	builtHash, err := built.CalculateLogicalHash()
	assert.NilError(t, err)
	assert.NilError(t, built.Dispose())

	loaded, err := Load(path)
	assert.NilError(t, err)
	defer loaded.Dispose()

	st := loaded.Stats()
	assert.Equal(t, st.NodeCount, builtStats.NodeCount)
	assert.Equal(t, st.LeafCount, builtStats.LeafCount)
	assert.Equal(t, st.MaxDepth, builtStats.MaxDepth)
	assert.Equal(t, st.Version, builtStats.Version)
	assert.Equal(t, st.Backend, "file")

	occ, err := loaded.FindAllOccurrencesString("ssi")
	assert.NilError(t, err)
	assert.DeepEqual(t, occ, []int{2, 5})

	rep, err := loaded.LongestRepeatedSubstring()
	assert.NilError(t, err)
	assert.Equal(t, rep, "issi")

	loadedHash, err := loaded.CalculateLogicalHash()
	assert.NilError(t, err)
	assert.Equal(t, loadedHash, builtHash)
}

func TestLoadDetectsLayoutFromHeader(t *testing.T) {
	for _, nl := range []layout.NodeLayout{layout.Compact, layout.Large} {
		path := filepath.Join(t.TempDir(), "t.tree")
		built, err := BuildFile([]byte("banana"), path, WithLayout(nl))
		assert.NilError(t, err)
		assert.NilError(t, built.Dispose())

		// Load with a conflicting layout option: the header wins.
		other := layout.Large
		if nl == layout.Large {
			other = layout.Compact
		}
		loaded, err := Load(path, WithLayout(other))
		assert.NilError(t, err)
		assert.Equal(t, loaded.Stats().Version, nl.Version())

		count, err := loaded.CountOccurrencesString("ana")
		assert.NilError(t, err)
		assert.Equal(t, count, 2)
		assert.NilError(t, loaded.Dispose())
	}
}

// Large (v3) headers never carry a trusted deepest-internal slot, so a
// loaded v3 file answers its first longest-repeat query through the full
// depth scan, cached for the tree's lifetime.
func TestLongestRepeatScanOnLoadedLargeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.tree")
	built, err := BuildFile([]byte("mississippi"), path, WithLayout(layout.Large))
	assert.NilError(t, err)
	assert.NilError(t, built.Dispose())

	loaded, err := Load(path)
	assert.NilError(t, err)
	defer loaded.Dispose()
	assert.Equal(t, loaded.Stats().Version, layout.VersionLarge)

	rep, err := loaded.LongestRepeatedSubstring()
	assert.NilError(t, err)
	assert.Equal(t, rep, "issi")

	// Second call hits the cached scan result.
	rep, err = loaded.LongestRepeatedSubstring()
	assert.NilError(t, err)
	assert.Equal(t, rep, "issi")
}

// Legacy compact (v4) files reserved the deepest-internal header slot, so
// loading one must ignore it and take the same scan path, while every other
// query reads the file normally.
func TestLegacyCompactFileReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.tree")
	built, err := BuildFile([]byte("mississippi"), path, WithLayout(layout.Compact))
	assert.NilError(t, err)
	assert.NilError(t, built.Dispose())

	// Rewrite the version field from 5 to 4; the record bytes are identical
	// across the two compact versions.
	raw, err := os.ReadFile(path)
	assert.NilError(t, err)
	raw[11] = byte(layout.VersionCompactLegacy)
	assert.NilError(t, os.WriteFile(path, raw, 0o644))

	loaded, err := Load(path)
	assert.NilError(t, err)
	defer loaded.Dispose()
	assert.Equal(t, loaded.Stats().Version, layout.VersionCompactLegacy)

	rep, err := loaded.LongestRepeatedSubstring()
	assert.NilError(t, err)
	assert.Equal(t, rep, "issi")

	occ, err := loaded.FindAllOccurrencesString("ssi")
	assert.NilError(t, err)
	assert.DeepEqual(t, occ, []int{2, 5})

	count, err := loaded.CountOccurrencesString("iss")
	assert.NilError(t, err)
	assert.Equal(t, count, 2)
}

func TestLoadRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-tree")
	assert.NilError(t, os.WriteFile(path, make([]byte, 128), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, layout.ErrBadMagic)
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.tree")
	built, err := BuildFile([]byte("banana"), path)
	assert.NilError(t, err)
	assert.NilError(t, built.Dispose())

	// Bump the version field to one from the future.
	raw, err := os.ReadFile(path)
	assert.NilError(t, err)
	raw[11] = 99
	assert.NilError(t, os.WriteFile(path, raw, 0o644))

	_, err = Load(path)
	assert.ErrorIs(t, err, layout.ErrUnknownVersion)
}

// Header offsets near the top of the u64 range must fail the bounds checks,
// not wrap around them.
func TestLoadRejectsWrappedHeaderOffsets(t *testing.T) {
	build := func(t *testing.T) string {
		path := filepath.Join(t.TempDir(), "wrap.tree")
		built, err := BuildFile([]byte("banana"), path)
		assert.NilError(t, err)
		assert.NilError(t, built.Dispose())
		return path
	}
	patch := func(t *testing.T, path string, off int) {
		raw, err := os.ReadFile(path)
		assert.NilError(t, err)
		for i := off; i < off+8; i++ {
			raw[i] = 0xff
		}
		assert.NilError(t, os.WriteFile(path, raw, 0o644))
	}

	t.Run("text offset", func(t *testing.T) {
		path := build(t)
		patch(t, path, 56)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrCorrupt)
	})
	t.Run("root offset", func(t *testing.T) {
		path := build(t)
		patch(t, path, 16)
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.tree")
	assert.NilError(t, os.WriteFile(path, []byte("SQ"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestLoadedTreeMatchesHeapTree(t *testing.T) {
	text := "abracadabra"
	heap, err := BuildString(text)
	assert.NilError(t, err)
	defer heap.Dispose()

	path := filepath.Join(t.TempDir(), "abra.tree")
	built, err := BuildFile([]byte(text), path)
	assert.NilError(t, err)
	assert.NilError(t, built.Dispose())
	loaded, err := Load(path)
	assert.NilError(t, err)
	defer loaded.Dispose()

	for i := 0; i < len(text); i++ {
		for j := i + 1; j <= len(text); j++ {
			pattern := text[i:j]
			ho, err := heap.FindAllOccurrencesString(pattern)
			assert.NilError(t, err)
			lo, err := loaded.FindAllOccurrencesString(pattern)
			assert.NilError(t, err)
			assert.DeepEqual(t, ho, lo)
		}
	}
}
