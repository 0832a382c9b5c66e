package suffixtree

import (
	"github.com/seqeron/go-suffixtree/layout"
)

// matchWindow is the shared engine of the streaming queries (longest common
// substring, exact-match anchoring). It tracks the longest substring of the
// indexed text that is a suffix of the characters streamed so far: extend
// grows it on the right, shrink drops one character on the left by a suffix
// link hop plus a skip/count walk-down, which keeps a full stream pass at
// O(stream length) amortized.
//
// A window is call-local scratch; nothing here touches shared state.
type matchWindow struct {
	t *Tree

	// node is the internal node the window path runs through; edge, when
	// nonzero, is the node below it whose incoming edge the window ends on,
	// matched characters in.
	node    uint64
	nodeRec layout.NodeRec
	edge    uint64
	edgeRec layout.NodeRec
	matched int

	// length is the total window length in characters.
	length int
}

func (t *Tree) newMatchWindow() (*matchWindow, error) {
	rec, err := t.readNode(t.hdr.Root)
	if err != nil {
		return nil, err
	}
	return &matchWindow{t: t, node: t.hdr.Root, nodeRec: rec}, nil
}

// extend tries to grow the window by the character c, reporting success.
// A failed extend leaves the window unchanged.
func (w *matchWindow) extend(c int) (bool, error) {
	if w.edge == 0 {
		child, ok, err := w.t.child(w.nodeRec, c)
		if err != nil || !ok {
			return false, err
		}
		crec, err := w.t.readNode(child)
		if err != nil {
			return false, err
		}
		w.edge = child
		w.edgeRec = crec
		w.matched = 1
	} else {
		if w.t.text.CharAt(int(w.edgeRec.Start)+w.matched) != c {
			return false, nil
		}
		w.matched++
	}
	w.length++
	return true, w.normalize()
}

// normalize moves the window onto the child node once its incoming edge is
// fully consumed.
func (w *matchWindow) normalize() error {
	if w.edge == 0 || w.matched < w.t.edgeLen(w.edgeRec) {
		return nil
	}
	w.node = w.edge
	w.nodeRec = w.edgeRec
	w.edge = 0
	w.matched = 0
	return nil
}

// shrink drops the leftmost window character. The portion of the window
// below the current node is re-walked from the suffix-linked node by
// length-counted skips, never re-comparing characters.
func (w *matchWindow) shrink() error {
	if w.length == 0 {
		return nil
	}
	w.length--

	projStart, projLen := 0, 0
	if w.edge != 0 {
		projStart = int(w.edgeRec.Start)
		projLen = w.matched
	}

	if w.node == w.t.hdr.Root {
		// No link to follow: the dropped character came off this very
		// projection.
		projStart++
		projLen--
	} else {
		link := w.nodeRec.SuffixLink
		if link == 0 {
			link = w.t.hdr.Root
		}
		rec, err := w.t.readNode(link)
		if err != nil {
			return err
		}
		w.node = link
		w.nodeRec = rec
	}
	return w.walkDown(projStart, projLen)
}

// walkDown re-establishes the edge position for the projected text span
// text[projStart : projStart+projLen) below the current node.
func (w *matchWindow) walkDown(projStart, projLen int) error {
	for projLen > 0 {
		child, ok, err := w.t.child(w.nodeRec, w.t.text.CharAt(projStart))
		if err != nil {
			return err
		}
		if !ok {
			// The window string is a substring, so the walk cannot dead
			// end.
			return ErrCorrupt
		}
		crec, err := w.t.readNode(child)
		if err != nil {
			return err
		}
		el := w.t.edgeLen(crec)
		if projLen >= el {
			w.node = child
			w.nodeRec = crec
			projStart += el
			projLen -= el
			continue
		}
		w.edge = child
		w.edgeRec = crec
		w.matched = projLen
		return nil
	}
	w.edge = 0
	w.matched = 0
	return nil
}

// textEndPos is the text index one past the window's current match, so the
// window content is text[textEndPos-length : textEndPos].
func (w *matchWindow) textEndPos() int {
	if w.edge != 0 {
		return int(w.edgeRec.Start) + w.matched
	}
	_, e := w.t.edgeSpan(w.nodeRec)
	return e
}

// locusNode is the node whose subtree holds every occurrence of the window
// content.
func (w *matchWindow) locus() (uint64, layout.NodeRec) {
	if w.edge != 0 {
		return w.edge, w.edgeRec
	}
	return w.node, w.nodeRec
}
