package suffixtree

import (
	"github.com/seqeron/go-suffixtree/layout"
)

// finalize runs one canonical-order pass over the finished structure to fill
// in the derived node fields (string depth, leaf suffix positions, per-node
// leaf counts), writes the header and the text section, and freezes storage.
// After finalize the tree is queryable and nothing mutates again.
func (b *builder) finalize() error {
	n := b.n

	var (
		nodes        uint64
		leaves       uint64
		maxDepth     uint64
		deepestOff   uint64
		deepestDepth uint32
	)

	type frame struct {
		off         uint64
		rec         layout.NodeRec
		parentDepth uint32
		entries     []layout.ChildEntry
		next        int
		leafCount   uint32
	}

	rootRec, err := b.t.readNode(b.root)
	if err != nil {
		return err
	}
	rootEntries, err := b.t.children(rootRec)
	if err != nil {
		return err
	}
	stack := []frame{{off: b.root, rec: rootRec, entries: rootEntries}}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if f.rec.IsLeaf() {
			// Leaf: the edge runs to the sentinel, so the suffix start and
			// depth fall out of the edge start alone. The sentinel-only
			// leaf (suffix == n) indexes no real suffix and is not counted.
			suffix := f.rec.Start - f.parentDepth
			depth := f.parentDepth + uint32(n) - f.rec.Start
			f.rec.Aux = suffix
			f.rec.Depth = depth
			if err := b.writeNode(f.off, f.rec); err != nil {
				return err
			}
			if int(suffix) != n {
				nodes++
				leaves++
				f.leafCount = 1
				if uint64(depth) > maxDepth {
					maxDepth = uint64(depth)
				}
			}
			stack = stack[:len(stack)-1]
			stack[len(stack)-1].leafCount += f.leafCount
			continue
		}

		if f.next == 0 && f.off != b.root {
			// First touch of an internal node.
			depth := f.parentDepth + (f.rec.End - f.rec.Start)
			f.rec.Depth = depth
			if depth > deepestDepth {
				deepestDepth = depth
				deepestOff = f.off
			}
		}

		if f.next < len(f.entries) {
			child := f.entries[f.next].Child
			f.next++
			rec, err := b.t.readNode(child)
			if err != nil {
				return err
			}
			var entries []layout.ChildEntry
			if !rec.IsLeaf() {
				entries, err = b.t.children(rec)
				if err != nil {
					return err
				}
			}
			stack = append(stack, frame{
				off:         child,
				rec:         rec,
				parentDepth: f.rec.Depth,
				entries:     entries,
			})
			continue
		}

		// All children visited: the subtree leaf count is final.
		f.rec.Aux = f.leafCount
		if err := b.writeNode(f.off, f.rec); err != nil {
			return err
		}
		nodes++
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			stack[len(stack)-1].leafCount += f.leafCount
		}
	}

	// The text travels with the records so a tree file answers queries
	// without a side channel.
	textOff, err := b.t.store.Allocate(n)
	if err != nil {
		return err
	}
	if n > 0 {
		if err := b.t.store.WriteAt(b.t.text.Bytes(), textOff); err != nil {
			return err
		}
	}

	b.t.hdr = layout.Header{
		Version:  b.t.nl.Version(),
		Root:     b.root,
		Nodes:    nodes,
		Leaves:   leaves,
		MaxDepth: maxDepth,
		Deepest:  deepestOff,
		TextOff:  textOff,
	}
	var hb [layout.HeaderBytes]byte
	layout.EncodeHeader(hb[:], b.t.hdr)
	if err := b.t.store.WriteAt(hb[:], 0); err != nil {
		return err
	}

	if err := b.t.store.Freeze(); err != nil {
		return err
	}

	// Builds of either format know their deepest internal node; only loads
	// of pre-v5 files ever pay the scan.
	b.t.seedDeepest(deepestOff, deepestDepth)
	b.t.state.Store(uint32(stateQueryable))
	return nil
}
