package suffixtree

import (
	"github.com/seqeron/go-suffixtree/layout"
)

// LongestRepeatedSubstring returns the longest substring occurring at least
// twice in the text, overlaps allowed. Ties go to the first candidate in
// canonical traversal order. Texts with no repeat yield "".
//
// The answer is the string depth of the deepest internal node. Version 5
// files carry that node's offset in the header, making this O(1); loaded
// older files pay one O(n) scan on first use, cached for the tree's life.
func (t *Tree) LongestRepeatedSubstring() (string, error) {
	if err := t.ensureQueryable(); err != nil {
		return "", err
	}
	off, depth, err := t.deepestInternal()
	if err != nil {
		return "", err
	}
	if off == 0 || depth == 0 {
		return "", nil
	}
	rec, err := t.readNode(off)
	if err != nil {
		return "", err
	}
	// The path string of a node is the text suffix ending where its
	// incoming edge ends.
	end := int(rec.End)
	return string(t.text.Bytes()[end-int(depth) : end]), nil
}

func (t *Tree) deepestInternal() (uint64, uint32, error) {
	if t.hdr.HasDeepest() {
		rec, err := t.readNode(t.hdr.Deepest)
		if err != nil {
			return 0, 0, err
		}
		return t.hdr.Deepest, rec.Depth, nil
	}
	t.deepestOnce.Do(func() {
		t.deepestOff, t.deepestDepth, t.deepestErr = t.scanDeepest()
	})
	return t.deepestOff, t.deepestDepth, t.deepestErr
}

// scanDeepest walks every internal node looking for the maximum string
// depth. Only reached for trees loaded from files that predate the cached
// header slot; built trees seed the answer during finalize.
func (t *Tree) scanDeepest() (uint64, uint32, error) {
	var (
		bestOff   uint64
		bestDepth uint32
	)
	rec, err := t.readNode(t.hdr.Root)
	if err != nil {
		return 0, 0, err
	}
	type frame struct {
		off uint64
		rec layout.NodeRec
	}
	stack := []frame{{off: t.hdr.Root, rec: rec}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.rec.IsLeaf() {
			continue
		}
		if f.off != t.hdr.Root && f.rec.Depth > bestDepth {
			bestDepth = f.rec.Depth
			bestOff = f.off
		}
		entries, err := t.children(f.rec)
		if err != nil {
			return 0, 0, err
		}
		for i := len(entries) - 1; i >= 0; i-- {
			crec, err := t.readNode(entries[i].Child)
			if err != nil {
				return 0, 0, err
			}
			if !crec.IsLeaf() {
				stack = append(stack, frame{off: entries[i].Child, rec: crec})
			}
		}
	}
	return bestOff, bestDepth, nil
}
