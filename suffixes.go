package suffixtree

import (
	"github.com/seqeron/go-suffixtree/layout"
)

// Suffix is one suffix of the indexed text.
type Suffix struct {
	// Pos is the starting offset of the suffix in the text.
	Pos int
	// Text is the suffix content, text[Pos:].
	Text string
}

// SuffixIterator lazily enumerates all suffixes of the text in canonical
// traversal order. It keeps an explicit frame stack rather than a goroutine,
// so abandoning it early costs nothing and iteration state is bounded by the
// tree depth. A fresh iterator restarts the enumeration.
//
// Iterators are single-goroutine scratch state; create one per consumer.
type SuffixIterator struct {
	t     *Tree
	stack [][]layout.ChildEntry
	err   error
}

// NewSuffixIterator starts an enumeration of every suffix of the text.
func (t *Tree) NewSuffixIterator() (*SuffixIterator, error) {
	if err := t.ensureQueryable(); err != nil {
		return nil, err
	}
	root, err := t.readNode(t.hdr.Root)
	if err != nil {
		return nil, err
	}
	entries, err := t.children(root)
	if err != nil {
		return nil, err
	}
	return &SuffixIterator{t: t, stack: [][]layout.ChildEntry{entries}}, nil
}

// Next returns the next suffix. The second result is false when the
// enumeration is exhausted or an error occurred; check Err afterwards.
func (it *SuffixIterator) Next() (Suffix, bool) {
	if it.err != nil {
		return Suffix{}, false
	}
	n := it.t.text.Len()
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		if len(top) == 0 {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		next := top[0]
		it.stack[len(it.stack)-1] = top[1:]

		rec, err := it.t.readNode(next.Child)
		if err != nil {
			it.err = err
			return Suffix{}, false
		}
		if rec.IsLeaf() {
			pos := it.t.leafSuffix(rec)
			if pos == n {
				continue // sentinel-only leaf, not a real suffix
			}
			return Suffix{Pos: pos, Text: string(it.t.text.Bytes()[pos:])}, true
		}
		entries, err := it.t.children(rec)
		if err != nil {
			it.err = err
			return Suffix{}, false
		}
		it.stack = append(it.stack, entries)
	}
	return Suffix{}, false
}

// Err reports a storage failure encountered mid-iteration.
func (it *SuffixIterator) Err() error { return it.err }

// GetAllSuffixes eagerly materializes every suffix in canonical traversal
// order. A text of length n yields exactly n suffixes.
func (t *Tree) GetAllSuffixes() ([]string, error) {
	it, err := t.NewSuffixIterator()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, t.text.Len())
	for {
		s, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, s.Text)
	}
	if it.Err() != nil {
		return nil, it.Err()
	}
	return out, nil
}
