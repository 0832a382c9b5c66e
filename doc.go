// Package suffixtree indexes a byte text for fast substring search, repeat
// and common-substring discovery, and maximal-match anchoring.
//
// The index is a suffix tree built online in O(n) by Ukkonen's algorithm,
// written directly into a storage arena (heap or file) under one of two
// binary node formats (see the layout package). Once built or loaded a tree
// is immutable and every query is safe for unbounded concurrent callers.
//
// # Building and loading
//
//	t, err := suffixtree.Build([]byte("mississippi"))          // heap, auto format
//	t, err := suffixtree.BuildFile(text, "idx.stx")            // straight to disk
//	t, err := suffixtree.Load("idx.stx")                       // format auto-detected
//
// The format is chosen by estimated size: compact 32-bit offsets up to
// roughly 50M characters, 64-bit offsets beyond. Building a text the compact
// format cannot address fails with layout.ErrOffsetRange before any result
// is produced; it is never silently truncated.
//
// # Queries
//
// Contains, CountOccurrences and FindAllOccurrences are exact substring
// queries in O(|pattern|) (+k for enumeration). LongestRepeatedSubstring,
// LongestCommonSubstring and FindExactMatchAnchors are the repeat and
// cross-sequence discovery operations; the latter two stream an external
// string against the index without building a generalized tree. Absent
// patterns yield false/zero/empty results, never errors.
//
// # Texts
//
// Texts are arbitrary bytes; NUL and control characters are ordinary
// characters. Leaf termination uses an out-of-band sentinel that is not a
// byte value, so no part of the 0-255 domain is reserved.
//
// # Portability
//
// Export/Import move a tree between processes and backends as
// `[text length][text][sha256]` -- no node data, the receiving side rebuilds.
// CalculateLogicalHash fingerprints tree shape and content independent of the
// physical node format, so compact- and large-built trees over the same text
// compare equal.
package suffixtree
