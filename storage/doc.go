// Package storage provides the byte-addressable arenas that suffix tree node
// records live in.
//
// A Provider is an append-only allocator plus random-access reads and writes
// at 64-bit byte offsets. Records are only ever allocated, never freed; a
// provider is written by exactly one builder, frozen, and then serves
// unbounded concurrent readers for the rest of its life.
//
// Two implementations:
//
//   - Arena: process heap, for trees that live and die with the process.
//   - FileStore: a file on disk. Writes go through the file handle while the
//     tree is under construction; Freeze flushes and switches reads to a
//     read-only memory mapping, which is also how loaded trees read from the
//     start. Mapped reads may fault pages in; that is ordinary blocking I/O.
package storage
