package suffixtree

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/seqeron/go-suffixtree/layout"
	"github.com/seqeron/go-suffixtree/storage"
)

// Load memory-maps a tree file produced by BuildFile and returns it ready for
// queries. The node format is detected from the header version, never guessed
// from file size; WithLayout is ignored here.
func Load(path string, opts ...Option) (*Tree, error) {
	o := applyOptions(opts)

	store, err := storage.OpenFileStore(path)
	if err != nil {
		return nil, err
	}
	t, err := loadFrom(store, o.log)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("loading tree file %q: %w", path, err)
	}
	o.log.Info("suffix tree loaded",
		zap.String("path", path),
		zap.Uint64("text_len", t.hdr.Leaves),
		zap.Uint64("nodes", t.hdr.Nodes),
		zap.Uint32("version", t.hdr.Version),
	)
	return t, nil
}

func loadFrom(store storage.Provider, log *zap.Logger) (*Tree, error) {
	var hb [layout.HeaderBytes]byte
	if store.Size() < layout.HeaderBytes {
		return nil, fmt.Errorf("%w: %d bytes is too small for a header", ErrCorrupt, store.Size())
	}
	if err := store.ReadAt(hb[:], 0); err != nil {
		return nil, err
	}
	hdr, err := layout.DecodeHeader(hb[:])
	if err != nil {
		return nil, err
	}
	nl, err := hdr.Layout()
	if err != nil {
		return nil, err
	}

	// Subtraction form so adversarial header values cannot wrap past the
	// size check.
	if hdr.TextOff > store.Size() || hdr.Leaves > store.Size()-hdr.TextOff {
		return nil, fmt.Errorf("%w: text section at %d length %d outside file of %d bytes",
			ErrCorrupt, hdr.TextOff, hdr.Leaves, store.Size())
	}
	if hdr.Root < layout.HeaderBytes || hdr.Root > store.Size() ||
		uint64(nl.NodeBytes()) > store.Size()-hdr.Root {
		return nil, fmt.Errorf("%w: root node at %d outside file of %d bytes",
			ErrCorrupt, hdr.Root, store.Size())
	}
	text := make([]byte, hdr.Leaves)
	if err := store.ReadAt(text, hdr.TextOff); err != nil {
		return nil, err
	}

	t := &Tree{
		text:  NewTextSource(text),
		store: store,
		nl:    nl,
		hdr:   hdr,
		log:   log,
	}
	t.state.Store(uint32(stateQueryable))
	return t, nil
}
