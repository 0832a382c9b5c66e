package suffixtree

// Sentinel is the out-of-band character returned by TextSource.CharAt at
// index Len(). It is not a byte value, so every value in 0-255 remains legal
// text and the terminator can never collide with input.
const Sentinel = -1

// TextSource is the indexed character data. It must be immutable for the
// lifetime of any tree built over it and support O(1) indexed access.
type TextSource interface {
	Len() int
	// CharAt returns the byte value at i as an int, or Sentinel at i == Len().
	CharAt(i int) int
	// Bytes exposes the underlying bytes without copying. Callers must not
	// mutate the result.
	Bytes() []byte
}

type bytesSource struct {
	b []byte
}

// NewTextSource wraps b as a TextSource. The tree references b directly;
// callers must not mutate it afterwards.
func NewTextSource(b []byte) TextSource {
	return &bytesSource{b: b}
}

// NewStringSource wraps s as a TextSource.
func NewStringSource(s string) TextSource {
	return &bytesSource{b: []byte(s)}
}

func (t *bytesSource) Len() int { return len(t.b) }

func (t *bytesSource) CharAt(i int) int {
	if i == len(t.b) {
		return Sentinel
	}
	return int(t.b[i])
}

func (t *bytesSource) Bytes() []byte { return t.b }
