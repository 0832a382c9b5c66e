package storage

import "fmt"

// Arena is the heap-resident provider. The zero value is not usable; call
// NewArena.
type Arena struct {
	buf    []byte
	frozen bool
	closed bool
}

// NewArena returns an empty heap arena. sizeHint, if positive, preallocates
// capacity to avoid growth copies for texts of known length.
func NewArena(sizeHint int) *Arena {
	var buf []byte
	if sizeHint > 0 {
		buf = make([]byte, 0, sizeHint)
	}
	return &Arena{buf: buf}
}

func (a *Arena) Name() string { return "arena" }

func (a *Arena) Allocate(n int) (uint64, error) {
	if a.closed {
		return 0, ErrClosed
	}
	if a.frozen {
		return 0, ErrFrozen
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative allocation %d", ErrOutOfRange, n)
	}
	off := uint64(len(a.buf))
	a.buf = append(a.buf, make([]byte, n)...)
	return off, nil
}

func (a *Arena) ReadAt(p []byte, off uint64) error {
	if a.closed {
		return ErrClosed
	}
	end := off + uint64(len(p))
	if end > uint64(len(a.buf)) {
		return fmt.Errorf("%w: read [%d,%d) of %d", ErrOutOfRange, off, end, len(a.buf))
	}
	copy(p, a.buf[off:end])
	return nil
}

func (a *Arena) WriteAt(p []byte, off uint64) error {
	if a.closed {
		return ErrClosed
	}
	if a.frozen {
		return ErrFrozen
	}
	end := off + uint64(len(p))
	if end > uint64(len(a.buf)) {
		return fmt.Errorf("%w: write [%d,%d) of %d", ErrOutOfRange, off, end, len(a.buf))
	}
	copy(a.buf[off:end], p)
	return nil
}

func (a *Arena) Size() uint64 { return uint64(len(a.buf)) }

func (a *Arena) Freeze() error {
	if a.closed {
		return ErrClosed
	}
	a.frozen = true
	return nil
}

func (a *Arena) Close() error {
	a.closed = true
	a.buf = nil
	return nil
}
