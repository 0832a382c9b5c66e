package layout

import (
	"bytes"
	"fmt"
)

// The header is a fixed 64 byte record at offset 0.
//
//	.      | magic | version | flags | root  | nodeCount | leafCount | maxDepth | deepest | textOff |
//	bytes  | 0   7 | 8    11 | 12 15 | 16 23 | 24     31 | 32     39 | 40    47 | 48   55 | 56   63 |
//
// deepest is the offset of the deepest internal node and is only meaningful
// for version >= 5; earlier versions reserved the slot.
const (
	HeaderBytes = 64

	headerMagicEnd    = 8
	headerVersionEnd  = 12
	headerFlagsEnd    = 16
	headerRootEnd     = 24
	headerNodesEnd    = 32
	headerLeavesEnd   = 40
	headerMaxDepthEnd = 48
	headerDeepestEnd  = 56
	headerTextOffEnd  = 64
)

var headerMagic = [8]byte{'S', 'Q', 'S', 'T', 'I', 'X', '0', '0'}

// Header is the decoded fixed header. LeafCount equals the indexed text
// length; the sentinel-only leaf is never counted.
type Header struct {
	Version  uint32
	Root     uint64
	Nodes    uint64
	Leaves   uint64
	MaxDepth uint64
	// Deepest is the offset of the deepest internal node, 0 if unknown.
	// Only trusted when HasDeepest reports true.
	Deepest uint64
	// TextOff is the offset of the raw text section. Its length is Leaves.
	TextOff uint64
}

// HasDeepest reports whether the cached deepest-internal slot is part of the
// format contract for this header's version.
func (h Header) HasDeepest() bool {
	return h.Version >= VersionCompact && h.Deepest != 0
}

// Layout resolves the node layout the header's version demands.
func (h Header) Layout() (NodeLayout, error) {
	return ForVersion(h.Version)
}

// EncodeHeader writes h into b, which must hold HeaderBytes.
func EncodeHeader(b []byte, h Header) {
	if len(b) < HeaderBytes {
		panic(ErrShortBuffer)
	}
	copy(b[:headerMagicEnd], headerMagic[:])
	putU32(b[headerMagicEnd:headerVersionEnd], h.Version)
	putU32(b[headerVersionEnd:headerFlagsEnd], 0)
	putU64(b[headerFlagsEnd:headerRootEnd], h.Root)
	putU64(b[headerRootEnd:headerNodesEnd], h.Nodes)
	putU64(b[headerNodesEnd:headerLeavesEnd], h.Leaves)
	putU64(b[headerLeavesEnd:headerMaxDepthEnd], h.MaxDepth)
	putU64(b[headerMaxDepthEnd:headerDeepestEnd], h.Deepest)
	putU64(b[headerDeepestEnd:headerTextOffEnd], h.TextOff)
}

// DecodeHeader parses and validates a header. An unrecognized magic yields
// ErrBadMagic; a recognized magic with an unknown version yields
// ErrUnknownVersion, never a guessed layout.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderBytes {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrShortBuffer, HeaderBytes, len(b))
	}
	if !bytes.Equal(b[:headerMagicEnd], headerMagic[:]) {
		return Header{}, ErrBadMagic
	}
	h := Header{
		Version:  getU32(b[headerMagicEnd:headerVersionEnd]),
		Root:     getU64(b[headerFlagsEnd:headerRootEnd]),
		Nodes:    getU64(b[headerRootEnd:headerNodesEnd]),
		Leaves:   getU64(b[headerNodesEnd:headerLeavesEnd]),
		MaxDepth: getU64(b[headerLeavesEnd:headerMaxDepthEnd]),
		Deepest:  getU64(b[headerMaxDepthEnd:headerDeepestEnd]),
		TextOff:  getU64(b[headerDeepestEnd:headerTextOffEnd]),
	}
	if _, err := ForVersion(h.Version); err != nil {
		return Header{}, fmt.Errorf("%w: version %d", ErrUnknownVersion, h.Version)
	}
	return h, nil
}
