package suffixtree

import (
	"encoding/binary"
	"fmt"

	"github.com/seqeron/go-suffixtree/layout"
)

// Child collocation during construction. Blocks start small and are
// reallocated at double capacity when full; superseded blocks are simply
// abandoned in the arena (it is append-only, like every other record).

const initialChildCap = 2

func entryFor(c int, child uint64) layout.ChildEntry {
	if c == Sentinel {
		return layout.ChildEntry{Sentinel: true, Child: child}
	}
	return layout.ChildEntry{Label: byte(c), Child: child}
}

// entrySortKey orders child entries canonically: label bytes ascending, the
// sentinel edge after all of them.
func entrySortKey(e layout.ChildEntry) int {
	if e.Sentinel {
		return 256
	}
	return int(e.Label)
}

func (b *builder) readChildBlock(off uint64) (capacity int, entries []layout.ChildEntry, err error) {
	var hb [layout.ChildBlockHeaderBytes]byte
	if err = b.t.store.ReadAt(hb[:], off); err != nil {
		return 0, nil, fmt.Errorf("reading child block at %d: %w", off, err)
	}
	count := int(binary.BigEndian.Uint32(hb[0:4]))
	capacity = int(binary.BigEndian.Uint32(hb[4:8]))
	es := b.t.nl.ChildEntryBytes()
	raw := make([]byte, count*es)
	if err = b.t.store.ReadAt(raw, off+layout.ChildBlockHeaderBytes); err != nil {
		return 0, nil, fmt.Errorf("reading child entries at %d: %w", off, err)
	}
	entries = make([]layout.ChildEntry, count)
	for i := 0; i < count; i++ {
		entries[i] = b.t.nl.GetChildEntry(raw[i*es:])
	}
	return capacity, entries, nil
}

func (b *builder) writeChildBlock(off uint64, capacity int, entries []layout.ChildEntry) error {
	es := b.t.nl.ChildEntryBytes()
	buf := make([]byte, layout.ChildBlockBytes(b.t.nl, capacity))
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(entries)))
	binary.BigEndian.PutUint32(buf[4:8], uint32(capacity))
	for i, e := range entries {
		b.t.nl.PutChildEntry(buf[layout.ChildBlockHeaderBytes+i*es:], e)
	}
	return b.t.store.WriteAt(buf, off)
}

func (b *builder) allocChildBlock(capacity int) (uint64, error) {
	size := layout.ChildBlockBytes(b.t.nl, capacity)
	off, err := b.t.store.Allocate(size)
	if err != nil {
		return 0, err
	}
	if err := b.checkOffset(off + uint64(size) - 1); err != nil {
		return 0, err
	}
	return off, nil
}

// setChild links child under character c of parent, keeping entries in
// canonical order. An existing entry for c is replaced in place (edge splits
// swap the old child for the new internal node).
func (b *builder) setChild(parent uint64, c int, child uint64) error {
	rec, err := b.t.readNode(parent)
	if err != nil {
		return err
	}
	e := entryFor(c, child)

	if rec.ChildBlock == 0 {
		off, err := b.allocChildBlock(initialChildCap)
		if err != nil {
			return err
		}
		if err := b.writeChildBlock(off, initialChildCap, []layout.ChildEntry{e}); err != nil {
			return err
		}
		rec.ChildBlock = off
		return b.writeNode(parent, rec)
	}

	capacity, entries, err := b.readChildBlock(rec.ChildBlock)
	if err != nil {
		return err
	}

	key := entrySortKey(e)
	idx := len(entries)
	for i, have := range entries {
		if k := entrySortKey(have); k >= key {
			idx = i
			if k == key {
				entries[i].Child = child
				return b.writeChildBlock(rec.ChildBlock, capacity, entries)
			}
			break
		}
	}

	entries = append(entries, layout.ChildEntry{})
	copy(entries[idx+1:], entries[idx:])
	entries[idx] = e

	if len(entries) <= capacity {
		return b.writeChildBlock(rec.ChildBlock, capacity, entries)
	}

	grown := capacity * 2
	off, err := b.allocChildBlock(grown)
	if err != nil {
		return err
	}
	if err := b.writeChildBlock(off, grown, entries); err != nil {
		return err
	}
	rec.ChildBlock = off
	return b.writeNode(parent, rec)
}
