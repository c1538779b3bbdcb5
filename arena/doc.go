// Package arena implements the bump allocator that backs every tree built
// for the lifetime of one query: term match trees, row match trees, and
// compile trees. All tree state for a query is
// allocated from one Arena and freed in bulk by Reset; node destructors are
// never invoked.
//
// Tree nodes are ordinary Go structs stored in per-package slices rather
// than placed by hand into a raw byte buffer. Arena therefore plays two
// roles:
//
//  1. It is a logical budget: packages that grow their own []Node slices
//     call Charge to account the bytes against the arena's capacity, so that
//     an oversized query still fails deterministically with
//     ErrAllocationExhausted regardless of what the Go allocator does
//     underneath.
//  2. It is a literal byte-bump allocator for the few places that need raw
//     bytes, handing out aligned, zeroed blocks from one backing buffer.
package arena
