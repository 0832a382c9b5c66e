package suffixtree

import (
	"github.com/seqeron/go-suffixtree/layout"
)

// position is a point on the tree: the node whose incoming edge the point
// lies on and how many label characters of that edge are consumed. The root
// position has matched == 0.
type position struct {
	node    uint64
	rec     layout.NodeRec
	matched int
}

// locate walks pattern down from the root, one edge at a time, and returns
// the position where the match ends. ok is false if pattern is not a
// substring. O(|pattern|); nothing is materialized.
func (t *Tree) locate(pattern []byte) (position, bool, error) {
	rec, err := t.readNode(t.hdr.Root)
	if err != nil {
		return position{}, false, err
	}
	pos := position{node: t.hdr.Root, rec: rec}
	if len(pattern) == 0 {
		return pos, true, nil
	}

	text := t.text.Bytes()
	i := 0
	for {
		child, ok, err := t.child(pos.rec, int(pattern[i]))
		if err != nil || !ok {
			return position{}, false, err
		}
		crec, err := t.readNode(child)
		if err != nil {
			return position{}, false, err
		}
		s, e := t.edgeSpan(crec)
		for k := s; k < e; k++ {
			if k >= len(text) || text[k] != pattern[i] {
				// Sentinel position or label mismatch.
				return position{}, false, nil
			}
			i++
			if i == len(pattern) {
				return position{node: child, rec: crec, matched: k + 1 - s}, true, nil
			}
		}
		pos = position{node: child, rec: crec, matched: e - s}
	}
}

// subtreeLeaves collects the suffix positions of every real leaf below node,
// by explicit-stack traversal in canonical child order.
func (t *Tree) subtreeLeaves(node uint64, rec layout.NodeRec) ([]int, error) {
	n := t.text.Len()
	if rec.IsLeaf() {
		if s := t.leafSuffix(rec); s != n {
			return []int{s}, nil
		}
		return nil, nil
	}

	var out []int
	stack := []uint64{node}
	for len(stack) > 0 {
		off := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur, err := t.readNode(off)
		if err != nil {
			return nil, err
		}
		if cur.IsLeaf() {
			if s := t.leafSuffix(cur); s != n {
				out = append(out, s)
			}
			continue
		}
		entries, err := t.children(cur)
		if err != nil {
			return nil, err
		}
		// Reverse push so the canonical first child pops first.
		for i := len(entries) - 1; i >= 0; i-- {
			stack = append(stack, entries[i].Child)
		}
	}
	return out, nil
}
