package suffixtree

// Contains reports whether pattern occurs in the text. The empty pattern is
// always present, even in a tree over the empty text. O(|pattern|).
func (t *Tree) Contains(pattern []byte) (bool, error) {
	if err := t.ensureQueryable(); err != nil {
		return false, err
	}
	_, ok, err := t.locate(pattern)
	return ok, err
}

// ContainsString is Contains for a string pattern.
func (t *Tree) ContainsString(pattern string) (bool, error) {
	return t.Contains([]byte(pattern))
}
