package suffixtree

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/seqeron/go-suffixtree/layout"
	"github.com/seqeron/go-suffixtree/storage"
)

// Build constructs a heap-resident tree over text, choosing the node format
// by estimated size (override with WithLayout).
func Build(text []byte, opts ...Option) (*Tree, error) {
	if text == nil {
		return nil, ErrNilText
	}
	return buildAuto(NewTextSource(text), opts)
}

// BuildString is Build for a string text.
func BuildString(s string, opts ...Option) (*Tree, error) {
	return buildAuto(NewStringSource(s), opts)
}

// BuildFile constructs the tree directly into a file at path. Construction
// writes through the file handle, so no in-memory copy of the tree ever
// exists; the resulting file is the persistent format Load understands.
func BuildFile(text []byte, path string, opts ...Option) (*Tree, error) {
	if text == nil {
		return nil, ErrNilText
	}
	o := applyOptions(opts)
	nl := o.layout
	if nl == nil {
		nl = layout.Choose(len(text))
	}
	store, err := storage.CreateFileStore(path)
	if err != nil {
		return nil, err
	}
	t, err := BuildInto(NewTextSource(text), store, nl, opts...)
	if err != nil {
		store.Close()
		os.Remove(path)
		return nil, err
	}
	return t, nil
}

// BuildFromTextFile reads a raw text file and builds a heap-resident tree
// over its contents.
func BuildFromTextFile(textPath string, opts ...Option) (*Tree, error) {
	text, err := os.ReadFile(textPath)
	if err != nil {
		return nil, fmt.Errorf("reading text file %q: %w", textPath, err)
	}
	return buildAuto(NewTextSource(text), opts)
}

func buildAuto(src TextSource, opts []Option) (*Tree, error) {
	o := applyOptions(opts)
	nl := o.layout
	if nl == nil {
		nl = layout.Choose(src.Len())
	}
	// Size hint: header plus a typical arena consumption of well under the
	// worst case; growth handles the rest.
	store := storage.NewArena(layout.HeaderBytes + src.Len()*48)
	return BuildInto(src, store, nl, opts...)
}

// BuildInto runs Ukkonen's construction over src, writing node records into
// store under the nl format, and returns the finished queryable tree. The
// provider must be empty and becomes owned by the tree: Dispose closes it.
//
// If nl is the compact format and the arena outgrows its 32-bit addressable
// range, the build stops at the point of detection with layout.ErrOffsetRange.
func BuildInto(src TextSource, store storage.Provider, nl layout.NodeLayout, opts ...Option) (*Tree, error) {
	if src == nil {
		return nil, ErrNilText
	}
	if store.Size() != 0 {
		return nil, ErrStorageNotEmpty
	}
	n := src.Len()
	if uint64(n) >= uint64(layout.OpenEnd)-1 {
		return nil, fmt.Errorf("%w: %d characters", ErrTextTooLong, n)
	}
	o := applyOptions(opts)

	started := time.Now()
	b := &builder{
		t: &Tree{text: src, store: store, nl: nl, log: o.log},
		n: n,
	}
	b.t.state.Store(uint32(stateBuilding))

	if err := b.run(); err != nil {
		return nil, err
	}
	if err := b.finalize(); err != nil {
		return nil, err
	}

	o.log.Info("suffix tree built",
		zap.Int("text_len", n),
		zap.Uint64("nodes", b.t.hdr.Nodes),
		zap.Uint64("leaves", b.t.hdr.Leaves),
		zap.Uint32("version", nl.Version()),
		zap.String("backend", store.Name()),
		zap.Duration("elapsed", time.Since(started)),
	)
	return b.t, nil
}

// builder holds Ukkonen's construction frontier. The active point and the
// phase index (the shared "current end" of all open leaf edges) live here and
// are discarded when construction completes.
type builder struct {
	t *Tree
	n int

	root uint64

	// Ukkonen active point: the node we extend from, the text index of the
	// first character of the active edge, and how far along it we are.
	activeNode uint64
	activeEdge int
	activeLen  int

	// remainder counts suffixes still pending insertion in this phase.
	remainder int

	// i is the phase index: the text position being inserted. Every open
	// leaf edge implicitly ends at i+1, so extending all of them per phase
	// costs nothing (rule 1).
	i int
}

func (b *builder) run() error {
	// The header record claims offset 0 up front; that also makes 0 usable
	// as the nil reference everywhere else.
	if _, err := b.t.store.Allocate(layout.HeaderBytes); err != nil {
		return err
	}
	root, err := b.newNode(layout.NodeRec{})
	if err != nil {
		return err
	}
	b.root = root
	b.activeNode = root

	// One phase per character, plus the sentinel phase that forces every
	// remaining implicit suffix out to a proper leaf.
	for b.i = 0; b.i <= b.n; b.i++ {
		if err := b.phase(); err != nil {
			return err
		}
	}
	return nil
}

// phase runs all extensions for text position b.i.
func (b *builder) phase() error {
	c := b.t.text.CharAt(b.i)
	b.remainder++

	// An internal node made earlier in this phase that still owes its
	// suffix link (it defaults to root if the phase ends first).
	var lastNewNode uint64

	for b.remainder > 0 {
		if b.activeLen == 0 {
			b.activeEdge = b.i
		}
		edgeChar := b.t.text.CharAt(b.activeEdge)

		activeRec, err := b.t.readNode(b.activeNode)
		if err != nil {
			return err
		}
		edge, ok, err := b.t.child(activeRec, edgeChar)
		if err != nil {
			return err
		}

		if !ok {
			// No edge for this character: the suffix ends here, grow a
			// leaf straight off the active node.
			leaf, err := b.newLeaf()
			if err != nil {
				return err
			}
			if err := b.setChild(b.activeNode, edgeChar, leaf); err != nil {
				return err
			}
			if lastNewNode != 0 {
				if err := b.setSuffixLink(lastNewNode, b.activeNode); err != nil {
					return err
				}
				lastNewNode = 0
			}
		} else {
			edgeRec, err := b.t.readNode(edge)
			if err != nil {
				return err
			}
			// Skip/count: jump whole edges by length without re-scanning
			// matched characters.
			el := b.edgeLen(edgeRec)
			if b.activeLen >= el {
				b.activeNode = edge
				b.activeEdge += el
				b.activeLen -= el
				continue
			}
			if b.t.text.CharAt(int(edgeRec.Start)+b.activeLen) == c {
				// The suffix is already implicitly present: stop the
				// phase (rule 3, the showstopper).
				b.activeLen++
				if lastNewNode != 0 {
					if err := b.setSuffixLink(lastNewNode, b.activeNode); err != nil {
						return err
					}
				}
				return nil
			}

			// Mismatch mid-edge: split it.
			splitEnd := edgeRec.Start + uint32(b.activeLen)
			split, err := b.newNode(layout.NodeRec{Start: edgeRec.Start, End: splitEnd})
			if err != nil {
				return err
			}
			if err := b.setChild(b.activeNode, edgeChar, split); err != nil {
				return err
			}
			leaf, err := b.newLeaf()
			if err != nil {
				return err
			}
			if err := b.setChild(split, c, leaf); err != nil {
				return err
			}
			edgeRec.Start = splitEnd
			if err := b.writeNode(edge, edgeRec); err != nil {
				return err
			}
			if err := b.setChild(split, b.t.text.CharAt(int(splitEnd)), edge); err != nil {
				return err
			}
			if lastNewNode != 0 {
				if err := b.setSuffixLink(lastNewNode, split); err != nil {
					return err
				}
			}
			lastNewNode = split
		}

		// One pending suffix down; hop to the next shorter one. From the
		// root that means sliding the active edge window; elsewhere the
		// suffix link gets us there in O(1).
		b.remainder--
		if b.activeNode == b.root && b.activeLen > 0 {
			b.activeLen--
			b.activeEdge = b.i - b.remainder + 1
		} else if b.activeNode != b.root {
			link := uint64(0)
			if rec, err := b.t.readNode(b.activeNode); err != nil {
				return err
			} else {
				link = rec.SuffixLink
			}
			if link == 0 {
				link = b.root
			}
			b.activeNode = link
		}
	}
	return nil
}

// edgeLen resolves an edge length during construction: open leaf edges end at
// the current phase index plus one.
func (b *builder) edgeLen(rec layout.NodeRec) int {
	if rec.End == layout.OpenEnd {
		return b.i + 1 - int(rec.Start)
	}
	return int(rec.End - rec.Start)
}

func (b *builder) newLeaf() (uint64, error) {
	return b.newNode(layout.NodeRec{Start: uint32(b.i), End: layout.OpenEnd})
}

func (b *builder) newNode(rec layout.NodeRec) (uint64, error) {
	off, err := b.t.store.Allocate(b.t.nl.NodeBytes())
	if err != nil {
		return 0, err
	}
	if err := b.checkOffset(off + uint64(b.t.nl.NodeBytes()) - 1); err != nil {
		return 0, err
	}
	return off, b.writeNode(off, rec)
}

func (b *builder) checkOffset(off uint64) error {
	if err := b.t.nl.CheckOffset(off); err != nil {
		return fmt.Errorf("%w: building at text position %d of %d", err, b.i, b.n)
	}
	return nil
}

func (b *builder) writeNode(off uint64, rec layout.NodeRec) error {
	var buf [layout.MaxNodeBytes]byte
	bs := buf[:b.t.nl.NodeBytes()]
	b.t.nl.PutNode(bs, rec)
	return b.t.store.WriteAt(bs, off)
}

func (b *builder) setSuffixLink(from, to uint64) error {
	rec, err := b.t.readNode(from)
	if err != nil {
		return err
	}
	rec.SuffixLink = to
	return b.writeNode(from, rec)
}
