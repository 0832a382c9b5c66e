package suffixtree

import (
	"fmt"
	"sort"
)

// Anchor is a maximal exact match between the indexed text and a query: a
// shared substring that cannot be extended in either direction without a
// mismatch or running off an end.
type Anchor struct {
	PosInText  int
	PosInQuery int
	Length     int
}

// FindExactMatchAnchors streams query against the tree and returns the
// maximal exact matches of at least minLength characters, ordered by text
// position then query position.
//
// This is the MUMmer/LAGAN anchoring walk: one sliding match window advances
// over the query, ascending by suffix links instead of restarting from the
// root on mismatch, and at each query position the window's suffixes down to
// minLength are checked for matches that end there. The scan is O(n+m) plus
// the occurrence checks, which are bounded by the reportable match volume.
func (t *Tree) FindExactMatchAnchors(query []byte, minLength int) ([]Anchor, error) {
	if err := t.ensureQueryable(); err != nil {
		return nil, err
	}
	if minLength < 1 {
		return nil, fmt.Errorf("minLength must be >= 1, got %d", minLength)
	}

	w, err := t.newMatchWindow()
	if err != nil {
		return nil, err
	}
	text := t.text.Bytes()
	m := len(query)

	var out []Anchor
	for e := 1; e <= m; e++ {
		// Advance the window so it holds the longest suffix of query[:e]
		// occurring in the text.
		c := int(query[e-1])
		for {
			ok, err := w.extend(c)
			if err != nil {
				return nil, err
			}
			if ok || w.length == 0 {
				break
			}
			if err := w.shrink(); err != nil {
				return nil, err
			}
		}

		// Every maximal match ends at a window suffix: walk a copy of the
		// window down through the shorter suffixes and keep the occurrences
		// that extend in neither direction.
		scan := *w
		for scan.length >= minLength {
			q := e - scan.length
			locus, rec := scan.locus()
			occs, err := t.subtreeLeaves(locus, rec)
			if err != nil {
				return nil, err
			}
			for _, p := range occs {
				if e < m && p+scan.length < len(text) && text[p+scan.length] == query[e] {
					continue
				}
				if p > 0 && q > 0 && text[p-1] == query[q-1] {
					continue
				}
				out = append(out, Anchor{PosInText: p, PosInQuery: q, Length: scan.length})
			}
			if err := scan.shrink(); err != nil {
				return nil, err
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PosInText != out[j].PosInText {
			return out[i].PosInText < out[j].PosInText
		}
		return out[i].PosInQuery < out[j].PosInQuery
	})
	return out, nil
}
