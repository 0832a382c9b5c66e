package suffixtree

import "sort"

// CountOccurrences returns how many times pattern occurs in the text,
// overlaps included. O(|pattern|): the per-node leaf counts laid down at
// build time make enumeration unnecessary. The empty pattern occurs once per
// text position.
func (t *Tree) CountOccurrences(pattern []byte) (int, error) {
	if err := t.ensureQueryable(); err != nil {
		return 0, err
	}
	pos, ok, err := t.locate(pattern)
	if err != nil || !ok {
		return 0, err
	}
	return t.subtreeLeafCount(pos.rec), nil
}

// CountOccurrencesString is CountOccurrences for a string pattern.
func (t *Tree) CountOccurrencesString(pattern string) (int, error) {
	return t.CountOccurrences([]byte(pattern))
}

// FindAllOccurrences returns every starting offset of pattern in the text,
// ascending. Absent patterns yield an empty result, never an error.
// O(|pattern| + k) for k occurrences.
func (t *Tree) FindAllOccurrences(pattern []byte) ([]int, error) {
	if err := t.ensureQueryable(); err != nil {
		return nil, err
	}
	pos, ok, err := t.locate(pattern)
	if err != nil || !ok {
		return nil, err
	}
	occs, err := t.subtreeLeaves(pos.node, pos.rec)
	if err != nil {
		return nil, err
	}
	sort.Ints(occs)
	return occs, nil
}

// FindAllOccurrencesString is FindAllOccurrences for a string pattern.
func (t *Tree) FindAllOccurrencesString(pattern string) ([]int, error) {
	return t.FindAllOccurrences([]byte(pattern))
}
