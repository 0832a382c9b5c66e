package suffixtree

import "errors"

var (
	ErrNilText          = errors.New("text source is nil")
	ErrTextTooLong      = errors.New("text length exceeds the representable index range")
	ErrStorageNotEmpty  = errors.New("storage provider already contains data")
	ErrTreeNotQueryable = errors.New("tree is not in the queryable state")
	ErrTreeDisposed     = errors.New("tree has been disposed")
	ErrIntegrity        = errors.New("text hash does not match the exported content")
	ErrCorrupt          = errors.New("tree storage is inconsistent")
	ErrShortStream      = errors.New("export stream is truncated")
)
