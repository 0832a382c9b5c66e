package layout

// compactLayout is the 32-bit offset format.
//
//	node     | start | end | suffixLink | childBlock | aux   | depth | reserved |
//	bytes    | 0   3 | 4 7 | 8       11 | 12      15 | 16 19 | 20 23 | 24    27 |
//
//	entry    | label | sentinel | pad  | child |
//	bytes    | 0     | 1        | 2  3 | 4   7 |
type compactLayout struct{}

const (
	compactNodeBytes       = 28
	compactChildEntryBytes = 8
	// MaxOffset leaves ^uint32(0) free so OpenEnd style markers can never
	// collide with a live reference.
	compactMaxOffset = uint64(^uint32(0)) - 1
)

func (compactLayout) Version() uint32      { return VersionCompact }
func (compactLayout) NodeBytes() int       { return compactNodeBytes }
func (compactLayout) ChildEntryBytes() int { return compactChildEntryBytes }
func (compactLayout) MaxOffset() uint64    { return compactMaxOffset }

func (compactLayout) CheckOffset(off uint64) error {
	if off > compactMaxOffset {
		return ErrOffsetRange
	}
	return nil
}

func (compactLayout) PutNode(b []byte, n NodeRec) {
	if len(b) < compactNodeBytes {
		panic(ErrShortBuffer)
	}
	putU32(b[0:4], n.Start)
	putU32(b[4:8], n.End)
	putU32(b[8:12], uint32(n.SuffixLink))
	putU32(b[12:16], uint32(n.ChildBlock))
	putU32(b[16:20], n.Aux)
	putU32(b[20:24], n.Depth)
	putU32(b[24:28], 0)
}

func (compactLayout) GetNode(b []byte) NodeRec {
	if len(b) < compactNodeBytes {
		panic(ErrShortBuffer)
	}
	return NodeRec{
		Start:      getU32(b[0:4]),
		End:        getU32(b[4:8]),
		SuffixLink: uint64(getU32(b[8:12])),
		ChildBlock: uint64(getU32(b[12:16])),
		Aux:        getU32(b[16:20]),
		Depth:      getU32(b[20:24]),
	}
}

func (compactLayout) PutChildEntry(b []byte, e ChildEntry) {
	if len(b) < compactChildEntryBytes {
		panic(ErrShortBuffer)
	}
	b[0] = e.Label
	b[1] = 0
	if e.Sentinel {
		b[1] = 1
	}
	b[2], b[3] = 0, 0
	putU32(b[4:8], uint32(e.Child))
}

func (compactLayout) GetChildEntry(b []byte) ChildEntry {
	if len(b) < compactChildEntryBytes {
		panic(ErrShortBuffer)
	}
	return ChildEntry{
		Label:    b[0],
		Sentinel: b[1] != 0,
		Child:    uint64(getU32(b[4:8])),
	}
}
