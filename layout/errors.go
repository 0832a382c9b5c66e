package layout

import "errors"

var (
	ErrBadMagic       = errors.New("data does not begin with a suffix tree header")
	ErrUnknownVersion = errors.New("unrecognized suffix tree format version")
	ErrOffsetRange    = errors.New("storage offset exceeds the addressable range of the node format")
	ErrShortBuffer    = errors.New("buffer is too short for the record being coded")
)
