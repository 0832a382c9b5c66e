package layout

// Format versions as persisted in the header. The numbering is historical:
// Large predates the compact format, and version 5 is compact plus the
// cached deepest-internal-node header slot.
const (
	VersionLarge         = uint32(3)
	VersionCompactLegacy = uint32(4)
	VersionCompact       = uint32(5)
)

// OpenEnd marks a leaf edge whose label runs to the end of the text plus the
// termination sentinel. Readers resolve it against the header text length.
const OpenEnd = ^uint32(0)

// MaxNodeBytes is the largest node record width across formats, suitable for
// sizing scratch buffers.
const MaxNodeBytes = 40

// ChildBlockHeaderBytes prefixes every child block: count u32, cap u32.
const ChildBlockHeaderBytes = 8

// NodeRec is the decoded form of a node record. Offsets are storage-relative
// byte offsets; 0 means none.
type NodeRec struct {
	Start      uint32
	End        uint32
	SuffixLink uint64
	ChildBlock uint64
	Aux        uint32
	Depth      uint32
}

// IsLeaf reports whether the record describes a leaf. Leaves never acquire
// children after creation, so an empty child reference is definitive.
func (n NodeRec) IsLeaf() bool { return n.ChildBlock == 0 }

// ChildEntry is one slot of a child block. Sentinel marks the edge whose
// first character is the out-of-band terminator rather than a text byte.
type ChildEntry struct {
	Label    byte
	Sentinel bool
	Child    uint64
}

// NodeLayout describes one of the two binary node formats. Implementations
// are stateless; the package vars Compact and Large are the only instances.
type NodeLayout interface {
	// Version is the format version persisted in the header for trees
	// written under this layout.
	Version() uint32
	// NodeBytes is the fixed node record width.
	NodeBytes() int
	// ChildEntryBytes is the fixed child entry width.
	ChildEntryBytes() int
	// MaxOffset is the largest byte offset the format can reference.
	MaxOffset() uint64

	// CheckOffset returns ErrOffsetRange if off cannot be represented.
	CheckOffset(off uint64) error

	PutNode(b []byte, n NodeRec)
	GetNode(b []byte) NodeRec
	PutChildEntry(b []byte, e ChildEntry)
	GetChildEntry(b []byte) ChildEntry
}

var (
	Compact NodeLayout = compactLayout{}
	Large   NodeLayout = largeLayout{}
)

// ForVersion maps a header version to its layout. Both compact versions share
// one byte format; they differ only in header semantics.
func ForVersion(version uint32) (NodeLayout, error) {
	switch version {
	case VersionLarge:
		return Large, nil
	case VersionCompactLegacy, VersionCompact:
		return Compact, nil
	default:
		return nil, ErrUnknownVersion
	}
}

// ChildBlockBytes is the byte size of a child block with the given capacity.
func ChildBlockBytes(nl NodeLayout, capacity int) int {
	return ChildBlockHeaderBytes + capacity*nl.ChildEntryBytes()
}
