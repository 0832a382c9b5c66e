package storage

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// FileStore is the file-backed provider.
//
// While building, reads and writes go straight through the file handle, so
// construction never holds a full tree in memory. Freeze syncs the file and
// switches the read path to a read-only memory mapping. OpenFileStore starts
// in the frozen state, which is the load path.
type FileStore struct {
	path   string
	f      *os.File
	rd     *mmap.ReaderAt
	size   uint64
	frozen bool
	closed bool
}

// CreateFileStore creates (or truncates) the file at path and returns an
// empty, writable provider.
func CreateFileStore(path string) (*FileStore, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("creating tree file %q: %w", path, err)
	}
	return &FileStore{path: path, f: f}, nil
}

// OpenFileStore memory-maps an existing tree file read-only.
func OpenFileStore(path string) (*FileStore, error) {
	rd, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapping tree file %q: %w", path, err)
	}
	return &FileStore{
		path:   path,
		rd:     rd,
		size:   uint64(rd.Len()),
		frozen: true,
	}, nil
}

// Path is the backing file's path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) Allocate(n int) (uint64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.frozen {
		return 0, ErrFrozen
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative allocation %d", ErrOutOfRange, n)
	}
	off := s.size
	s.size += uint64(n)
	// The file itself grows lazily: WriteAt past EOF extends it, and
	// Freeze truncates up to the allocated size so unwritten tails read
	// as zeros, matching the arena.
	return off, nil
}

func (s *FileStore) ReadAt(p []byte, off uint64) error {
	if s.closed {
		return ErrClosed
	}
	end := off + uint64(len(p))
	if end > s.size {
		return fmt.Errorf("%w: read [%d,%d) of %d", ErrOutOfRange, off, end, s.size)
	}
	if s.rd != nil {
		_, err := s.rd.ReadAt(p, int64(off))
		return err
	}
	n, err := s.f.ReadAt(p, int64(off))
	if err == io.EOF && n < len(p) {
		// Allocated but never written; the tail is zeros.
		clear(p[n:])
		return nil
	}
	return err
}

func (s *FileStore) WriteAt(p []byte, off uint64) error {
	if s.closed {
		return ErrClosed
	}
	if s.frozen {
		return ErrFrozen
	}
	end := off + uint64(len(p))
	if end > s.size {
		return fmt.Errorf("%w: write [%d,%d) of %d", ErrOutOfRange, off, end, s.size)
	}
	_, err := s.f.WriteAt(p, int64(off))
	return err
}

func (s *FileStore) Size() uint64 { return s.size }

// Freeze flushes the built tree to disk and replaces the read path with a
// read-only memory mapping.
func (s *FileStore) Freeze() error {
	if s.closed {
		return ErrClosed
	}
	if s.frozen {
		return nil
	}
	if err := s.f.Truncate(int64(s.size)); err != nil {
		return fmt.Errorf("sizing tree file %q: %w", s.path, err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("flushing tree file %q: %w", s.path, err)
	}
	rd, err := mmap.Open(s.path)
	if err != nil {
		return fmt.Errorf("mapping tree file %q: %w", s.path, err)
	}
	s.rd = rd
	s.frozen = true
	return nil
}

func (s *FileStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var firstErr error
	if s.rd != nil {
		if err := s.rd.Close(); err != nil {
			firstErr = err
		}
		s.rd = nil
	}
	if s.f != nil {
		if err := s.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.f = nil
	}
	return firstErr
}
