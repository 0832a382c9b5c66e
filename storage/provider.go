package storage

import "errors"

var (
	ErrClosed     = errors.New("storage provider is closed")
	ErrOutOfRange = errors.New("read or write beyond the allocated arena")
	ErrFrozen     = errors.New("storage provider is frozen for writing")
)

// Provider is a byte-addressable, append-only record arena.
//
// Allocate hands out monotonically increasing byte offsets and grows the
// backing medium on demand. ReadAt and WriteAt address previously allocated
// space only. Freeze flushes pending writes and makes the provider read-only;
// all further access must be reads. Close releases the backing medium.
//
// Providers are not safe for concurrent use until frozen. After Freeze,
// ReadAt is safe for any number of concurrent callers.
type Provider interface {
	// Name identifies the backend kind, for logs and stats.
	Name() string
	Allocate(n int) (uint64, error)
	ReadAt(p []byte, off uint64) error
	WriteAt(p []byte, off uint64) error
	// Size is the total allocated byte length.
	Size() uint64
	Freeze() error
	Close() error
}
