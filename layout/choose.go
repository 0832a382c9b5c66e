package layout

// Arena consumption per text character is bounded by one leaf record, one
// internal record, and the internal node's share of child block space. The
// estimate below is deliberately pessimistic: choosing Large for a text that
// compact could have held costs a little space; choosing Compact for a text
// it cannot hold is a build error.
const compactArenaBytesPerChar = 92

// CompactTextLimit is the largest text length for which Choose selects the
// compact format. Roughly 46M characters.
const CompactTextLimit = int((compactMaxOffset - HeaderBytes) / compactArenaBytesPerChar)

// Choose selects the node format for a text of the given length: Compact at
// or below the estimated safe limit, Large above it.
func Choose(textLen int) NodeLayout {
	if textLen <= CompactTextLimit {
		return Compact
	}
	return Large
}
