package layout

import "math"

// largeLayout is the 64-bit offset format.
//
//	node     | suffixLink | childBlock | start | end   | aux   | depth | reserved |
//	bytes    | 0        7 | 8       15 | 16 19 | 20 23 | 24 27 | 28 31 | 32    39 |
//
//	entry    | label | sentinel | pad  | child |
//	bytes    | 0     | 1        | 2  3 | 4  11 |
type largeLayout struct{}

const (
	largeNodeBytes       = 40
	largeChildEntryBytes = 12
)

func (largeLayout) Version() uint32      { return VersionLarge }
func (largeLayout) NodeBytes() int       { return largeNodeBytes }
func (largeLayout) ChildEntryBytes() int { return largeChildEntryBytes }
func (largeLayout) MaxOffset() uint64    { return math.MaxUint64 }

func (largeLayout) CheckOffset(off uint64) error { return nil }

func (largeLayout) PutNode(b []byte, n NodeRec) {
	if len(b) < largeNodeBytes {
		panic(ErrShortBuffer)
	}
	putU64(b[0:8], n.SuffixLink)
	putU64(b[8:16], n.ChildBlock)
	putU32(b[16:20], n.Start)
	putU32(b[20:24], n.End)
	putU32(b[24:28], n.Aux)
	putU32(b[28:32], n.Depth)
	putU64(b[32:40], 0)
}

func (largeLayout) GetNode(b []byte) NodeRec {
	if len(b) < largeNodeBytes {
		panic(ErrShortBuffer)
	}
	return NodeRec{
		SuffixLink: getU64(b[0:8]),
		ChildBlock: getU64(b[8:16]),
		Start:      getU32(b[16:20]),
		End:        getU32(b[20:24]),
		Aux:        getU32(b[24:28]),
		Depth:      getU32(b[28:32]),
	}
}

func (largeLayout) PutChildEntry(b []byte, e ChildEntry) {
	if len(b) < largeChildEntryBytes {
		panic(ErrShortBuffer)
	}
	b[0] = e.Label
	b[1] = 0
	if e.Sentinel {
		b[1] = 1
	}
	b[2], b[3] = 0, 0
	putU64(b[4:12], e.Child)
}

func (largeLayout) GetChildEntry(b []byte) ChildEntry {
	if len(b) < largeChildEntryBytes {
		panic(ErrShortBuffer)
	}
	return ChildEntry{
		Label:    b[0],
		Sentinel: b[1] != 0,
		Child:    getU64(b[4:12]),
	}
}
