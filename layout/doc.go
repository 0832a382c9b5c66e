// Package layout defines the binary node formats for persisted suffix trees.
//
// A tree is stored as a fixed 64 byte header at offset 0 followed by an
// append-only arena of fixed-width records. Two record formats share one
// logical schema and differ only in the width of storage offsets:
//
//   - Compact: 28 byte node records, 8 byte child entries, 32-bit offsets.
//     Addresses arenas up to 2^32-2 bytes, which works out to texts of
//     roughly 50M characters.
//   - Large: 40 byte node records, 12 byte child entries, 64-bit offsets.
//     No practical arena limit.
//
// All multi-byte fields are big endian. Offset 0 always holds the header, so
// 0 doubles as the nil reference for suffix links and child blocks.
//
// # Node record
//
// Seven logical fields in both formats:
//
//	.        | start | end | suffixLink | childBlock | aux | depth | reserved |
//	Compact  |   4   |  4  |     4      |     4      |  4  |   4   |    4     |
//	Large    |   4   |  4  |     8      |     8      |  4  |   4   |    8     |
//
// start/end give the incoming edge label as text indices (end exclusive) --
// edge compression, labels are never copied. end == OpenEnd marks a leaf edge
// that runs to the end of the text plus the termination sentinel. childBlock
// is 0 for leaves. aux holds the suffix start position on leaves and the
// subtree leaf count on internal nodes. depth is the string depth in text
// characters; the sentinel is never counted.
//
// # Child block
//
// childBlock points at `count u32 | cap u32 | entries[cap]`. Entries are kept
// sorted by (sentinel flag, label byte), sentinel last, so traversal order is
// canonical regardless of insertion order and identical across formats. A
// full block is reallocated at double capacity; the dead block simply stays
// in the arena.
//
//	entry    | label | sentinel | pad | child |
//	Compact  |   1   |    1     |  2  |   4   |
//	Large    |   1   |    1     |  2  |   8   |
//
// # Versions
//
// The header carries an integer format version: 3 is Large, 4 and 5 are
// Compact. Version 5 additionally promises that the header's deepest-internal
// slot is valid, giving O(1) longest-repeat queries; version 3 and 4 readers
// must treat that slot as reserved and scan.
package layout
