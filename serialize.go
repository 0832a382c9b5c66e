package suffixtree

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/seqeron/go-suffixtree/layout"
	"github.com/seqeron/go-suffixtree/storage"
)

// The portable export stream is `[text length u64][raw text][sha256(text)]`,
// big endian. It carries no node data at all, which is what makes it
// independent of backend and node format: the importing side rebuilds the
// tree, and construction is deterministic.

const exportHashBytes = sha256.Size

// Export writes the tree's portable snapshot to w.
func (t *Tree) Export(w io.Writer) error {
	if err := t.ensureQueryable(); err != nil {
		return err
	}
	text := t.text.Bytes()
	var lb [8]byte
	binary.BigEndian.PutUint64(lb[:], uint64(len(text)))
	if _, err := w.Write(lb[:]); err != nil {
		return fmt.Errorf("writing export length: %w", err)
	}
	if _, err := w.Write(text); err != nil {
		return fmt.Errorf("writing export text: %w", err)
	}
	sum := sha256.Sum256(text)
	if _, err := w.Write(sum[:]); err != nil {
		return fmt.Errorf("writing export hash: %w", err)
	}
	return nil
}

// readExport pulls the text out of a portable snapshot, verifying the
// content hash before anything is built.
func readExport(r io.Reader) ([]byte, error) {
	var lb [8]byte
	if _, err := io.ReadFull(r, lb[:]); err != nil {
		return nil, fmt.Errorf("%w: reading length: %w", ErrShortStream, err)
	}
	n := binary.BigEndian.Uint64(lb[:])
	if n >= uint64(layout.OpenEnd)-1 {
		return nil, fmt.Errorf("%w: %d characters", ErrTextTooLong, n)
	}
	text := make([]byte, n)
	if _, err := io.ReadFull(r, text); err != nil {
		return nil, fmt.Errorf("%w: reading text: %w", ErrShortStream, err)
	}
	var want [exportHashBytes]byte
	if _, err := io.ReadFull(r, want[:]); err != nil {
		return nil, fmt.Errorf("%w: reading hash: %w", ErrShortStream, err)
	}
	if sha256.Sum256(text) != want {
		return nil, ErrIntegrity
	}
	return text, nil
}

// Import rebuilds a heap-resident tree from a portable snapshot. A hash
// mismatch fails with ErrIntegrity before any construction happens; no
// partially built tree ever escapes.
func Import(r io.Reader, opts ...Option) (*Tree, error) {
	text, err := readExport(r)
	if err != nil {
		return nil, err
	}
	return Build(text, opts...)
}

// ImportInto rebuilds a tree from a portable snapshot into the given
// provider under the nl format.
func ImportInto(r io.Reader, store storage.Provider, nl layout.NodeLayout, opts ...Option) (*Tree, error) {
	text, err := readExport(r)
	if err != nil {
		return nil, err
	}
	return BuildInto(NewTextSource(text), store, nl, opts...)
}

// SaveToFile writes the portable snapshot to path atomically: a uniquely
// named sibling temp file is written, flushed, then renamed into place.
func (t *Tree) SaveToFile(path string) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString())
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating snapshot temp file: %w", err)
	}
	if err := t.Export(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publishing snapshot: %w", err)
	}
	return nil
}

// LoadFromFile rebuilds a heap-resident tree from a portable snapshot file.
func LoadFromFile(path string, opts ...Option) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %q: %w", path, err)
	}
	defer f.Close()
	return Import(f, opts...)
}
