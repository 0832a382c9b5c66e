package suffixtree

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/seqeron/go-suffixtree/layout"
	"github.com/seqeron/go-suffixtree/storage"
)

func TestExportImportRoundTrip(t *testing.T) {
	src, err := BuildString("abracadabra")
	assert.NilError(t, err)
	defer src.Dispose()

	var buf bytes.Buffer
	assert.NilError(t, src.Export(&buf))
	// length u64 + text + sha256
	assert.Equal(t, buf.Len(), 8+11+32)

	dst, err := Import(bytes.NewReader(buf.Bytes()))
	assert.NilError(t, err)
	defer dst.Dispose()

	assert.DeepEqual(t, src.Stats(), dst.Stats())
	occ, err := dst.FindAllOccurrencesString("abra")
	assert.NilError(t, err)
	assert.DeepEqual(t, occ, []int{0, 7})

	sh, err := src.CalculateLogicalHash()
	assert.NilError(t, err)
	dh, err := dst.CalculateLogicalHash()
	assert.NilError(t, err)
	assert.Equal(t, sh, dh)
}

func TestImportAcrossLayouts(t *testing.T) {
	// Exports carry no node data, so a snapshot of a large-format tree can
	// rebuild under the compact format.
	src, err := BuildString("mississippi", WithLayout(layout.Large))
	assert.NilError(t, err)
	defer src.Dispose()

	var buf bytes.Buffer
	assert.NilError(t, src.Export(&buf))

	dst, err := ImportInto(bytes.NewReader(buf.Bytes()), storage.NewArena(0), layout.Compact)
	assert.NilError(t, err)
	defer dst.Dispose()

	assert.Equal(t, dst.Stats().Version, layout.VersionCompact)
	count, err := dst.CountOccurrencesString("issi")
	assert.NilError(t, err)
	assert.Equal(t, count, 2)
}

func TestImportDetectsCorruption(t *testing.T) {
	src, err := BuildString("banana")
	assert.NilError(t, err)
	defer src.Dispose()

	var buf bytes.Buffer
	assert.NilError(t, src.Export(&buf))

	// Flip one text byte; the content hash no longer matches.
	raw := buf.Bytes()
	raw[8] ^= 0x01
	_, err = Import(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrIntegrity)

	// Flip it back and corrupt the hash instead.
	raw[8] ^= 0x01
	raw[len(raw)-1] ^= 0x01
	_, err = Import(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestImportTruncatedStream(t *testing.T) {
	src, err := BuildString("banana")
	assert.NilError(t, err)
	defer src.Dispose()

	var buf bytes.Buffer
	assert.NilError(t, src.Export(&buf))

	for _, cut := range []int{0, 4, 8, 10, buf.Len() - 1} {
		_, err = Import(bytes.NewReader(buf.Bytes()[:cut]))
		assert.ErrorIs(t, err, ErrShortStream)
	}
}

func TestSaveLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banana.snap")

	src, err := BuildString("banana")
	assert.NilError(t, err)
	defer src.Dispose()
	assert.NilError(t, src.SaveToFile(path))

	// The write is atomic: no temp files survive.
	entries, err := os.ReadDir(dir)
	assert.NilError(t, err)
	assert.Equal(t, len(entries), 1)
	assert.Equal(t, entries[0].Name(), "banana.snap")

	dst, err := LoadFromFile(path)
	assert.NilError(t, err)
	defer dst.Dispose()
	ok, err := dst.ContainsString("nan")
	assert.NilError(t, err)
	assert.Assert(t, ok)
}

func TestSaveToFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.snap")

	first, err := BuildString("aaaa")
	assert.NilError(t, err)
	defer first.Dispose()
	assert.NilError(t, first.SaveToFile(path))

	second, err := BuildString("bbbb")
	assert.NilError(t, err)
	defer second.Dispose()
	assert.NilError(t, second.SaveToFile(path))

	dst, err := LoadFromFile(path)
	assert.NilError(t, err)
	defer dst.Dispose()
	ok, err := dst.ContainsString("bb")
	assert.NilError(t, err)
	assert.Assert(t, ok)
}
