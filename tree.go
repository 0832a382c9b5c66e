package suffixtree

import (
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/seqeron/go-suffixtree/layout"
	"github.com/seqeron/go-suffixtree/storage"
)

type treeState uint32

const (
	stateBuilding treeState = iota
	stateQueryable
	stateDisposed
)

// Tree is an immutable suffix tree over one text, backed by a storage
// provider under one of the two node formats.
//
// A Tree is produced by the Build constructors or by Load. Once queryable it
// never mutates, so any number of goroutines may run any mix of queries
// concurrently. Dispose releases the backing storage; queries after Dispose
// are usage errors and fail with ErrTreeDisposed.
type Tree struct {
	text  TextSource
	store storage.Provider
	nl    layout.NodeLayout
	hdr   layout.Header
	log   *zap.Logger

	state atomic.Uint32

	// Deepest-internal resolution for trees whose header predates the
	// cached slot: computed once on first use, then shared by all readers.
	deepestOnce  sync.Once
	deepestOff   uint64
	deepestDepth uint32
	deepestErr   error
}

// Stats summarizes a built or loaded tree.
type Stats struct {
	NodeCount uint64
	LeafCount uint64
	MaxDepth  uint64
	Version   uint32
	Backend   string
}

// Stats reports the tree's header counters, format version and backend kind.
func (t *Tree) Stats() Stats {
	return Stats{
		NodeCount: t.hdr.Nodes,
		LeafCount: t.hdr.Leaves,
		MaxDepth:  t.hdr.MaxDepth,
		Version:   t.hdr.Version,
		Backend:   t.store.Name(),
	}
}

// Text returns the indexed text source.
func (t *Tree) Text() TextSource { return t.text }

// Dispose flushes nothing further (the tree was flushed when it became
// queryable) and releases the backing storage. Safe to call more than once.
func (t *Tree) Dispose() error {
	if treeState(t.state.Swap(uint32(stateDisposed))) == stateDisposed {
		return nil
	}
	t.log.Debug("suffix tree disposed", zap.String("backend", t.store.Name()))
	return t.store.Close()
}

func (t *Tree) ensureQueryable() error {
	switch treeState(t.state.Load()) {
	case stateQueryable:
		return nil
	case stateDisposed:
		return ErrTreeDisposed
	default:
		return ErrTreeNotQueryable
	}
}

// textEnd is the exclusive end of the full suffix range: text length plus the
// sentinel position.
func (t *Tree) textEnd() int { return t.text.Len() + 1 }

func (t *Tree) readNode(off uint64) (layout.NodeRec, error) {
	var buf [layout.MaxNodeBytes]byte
	b := buf[:t.nl.NodeBytes()]
	if err := t.store.ReadAt(b, off); err != nil {
		return layout.NodeRec{}, fmt.Errorf("reading node at %d: %w", off, err)
	}
	return t.nl.GetNode(b), nil
}

// edgeSpan resolves a node's incoming edge label to concrete text indices,
// end exclusive. Leaf edges with the open-end marker run to the sentinel.
func (t *Tree) edgeSpan(rec layout.NodeRec) (start, end int) {
	if rec.End == layout.OpenEnd {
		return int(rec.Start), t.textEnd()
	}
	return int(rec.Start), int(rec.End)
}

func (t *Tree) edgeLen(rec layout.NodeRec) int {
	s, e := t.edgeSpan(rec)
	return e - s
}

// children reads the child entries of an internal node in canonical order
// (sorted by label byte, sentinel edge last). Returns nil for leaves.
func (t *Tree) children(rec layout.NodeRec) ([]layout.ChildEntry, error) {
	if rec.ChildBlock == 0 {
		return nil, nil
	}
	var hb [layout.ChildBlockHeaderBytes]byte
	if err := t.store.ReadAt(hb[:], rec.ChildBlock); err != nil {
		return nil, fmt.Errorf("reading child block at %d: %w", rec.ChildBlock, err)
	}
	count := int(binary.BigEndian.Uint32(hb[0:4]))
	es := t.nl.ChildEntryBytes()
	raw := make([]byte, count*es)
	if err := t.store.ReadAt(raw, rec.ChildBlock+layout.ChildBlockHeaderBytes); err != nil {
		return nil, fmt.Errorf("reading child entries at %d: %w", rec.ChildBlock, err)
	}
	entries := make([]layout.ChildEntry, count)
	for i := 0; i < count; i++ {
		entries[i] = t.nl.GetChildEntry(raw[i*es:])
	}
	return entries, nil
}

// child finds the outgoing edge whose label starts with c (a byte value or
// Sentinel). Returns 0, false when no such edge exists.
func (t *Tree) child(rec layout.NodeRec, c int) (uint64, bool, error) {
	entries, err := t.children(rec)
	if err != nil {
		return 0, false, err
	}
	for _, e := range entries {
		if entryChar(e) == c {
			return e.Child, true, nil
		}
	}
	return 0, false, nil
}

func entryChar(e layout.ChildEntry) int {
	if e.Sentinel {
		return Sentinel
	}
	return int(e.Label)
}

// subtreeLeafCount is the number of real (non-sentinel) suffixes below the
// node, O(1) from the finalize pass.
func (t *Tree) subtreeLeafCount(rec layout.NodeRec) int {
	if rec.IsLeaf() {
		if t.leafSuffix(rec) == t.text.Len() {
			return 0 // the sentinel-only leaf indexes no real suffix
		}
		return 1
	}
	return int(rec.Aux)
}

// leafSuffix is the text position of the suffix a leaf represents.
func (t *Tree) leafSuffix(rec layout.NodeRec) int {
	return int(rec.Aux)
}

// seedDeepest records the deepest internal node so later longest-repeat
// queries skip the scan. First caller wins; safe against concurrent readers.
func (t *Tree) seedDeepest(off uint64, depth uint32) {
	t.deepestOnce.Do(func() {
		t.deepestOff = off
		t.deepestDepth = depth
	})
}
