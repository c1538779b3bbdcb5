// Package term implements the wire-visible term hashing rules. Hashes are
// persisted in a TermTable, so the exact fold matters: once a term table is
// built, the hash of a given string must never change under a given binary.
//
// The unigram/fact hash primitive is github.com/dgryski/go-farm's
// Hash64WithSeed; phrase hashing composes per-gram hashes with a
// rotate-left-then-XOR rule so that every prefix of a phrase has a
// well-defined hash of its own.
package term
