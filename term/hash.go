package term

import (
	farm "github.com/dgryski/go-farm"
)

// Hash is the 64-bit fold of a term. It is the unit that the TermTable maps
// to physical rows.
type Hash uint64

// textSeed is the fixed seed of every per-text hash. A gram inside a phrase
// (see HashPhrase) is hashed exactly like the same text used as a
// standalone unigram; the phrase-hash composition rule is defined in terms
// of this per-gram hash.
const textSeed uint64 = 0x9E3779B97F4A7C15

// HashText computes the FNV-1a-like 64-bit fold of a term's UTF-8 bytes.
// This is the hash of a Unigram, and the per-gram primitive that
// HashPhrase composes.
func HashText(text string) Hash {
	return Hash(farm.Hash64WithSeed([]byte(text), textSeed))
}

// HashFact returns the hash of a Fact leaf: simply the handle itself.
func HashFact(handle uint64) Hash {
	return Hash(handle)
}

// rotl64 left-rotates v by 1 bit, the step between each gram's
// contribution to a phrase hash.
func rotl64(v uint64) uint64 {
	return (v << 1) | (v >> 63)
}

// HashPhrase computes the hash of the full phrase [g1, ..., gn] using the
// rule hash_phrase([g1]) = hash(g1), and
// hash_phrase([g1..gk]) = rotl(hash_phrase([g1..gk-1]), 1) XOR hash(gk).
//
// HashPhrase panics if grams is empty; an empty phrase is a builder error
// (termtree.NewPhrase rejects it) that must be caught before hashing, not
// silently tolerated here.
func HashPhrase(grams []string) Hash {
	if len(grams) == 0 {
		panic("term: HashPhrase requires at least one gram")
	}
	running := uint64(HashText(grams[0]))
	for _, g := range grams[1:] {
		running = rotl64(running) ^ uint64(HashText(g))
	}
	return Hash(running)
}

// SubphrasePrefixes returns the hash of every non-empty prefix of grams, in
// order: hash_phrase([g1]), hash_phrase([g1,g2]), ..., hash_phrase(grams).
// The planner (package planner) ANDs the rows found for every one of these
// hashes so that a phrase query also benefits from any row built for one of
// its prefixes.
func SubphrasePrefixes(grams []string) []Hash {
	hashes := make([]Hash, len(grams))
	running := uint64(HashText(grams[0]))
	hashes[0] = Hash(running)
	for i, g := range grams[1:] {
		running = rotl64(running) ^ uint64(HashText(g))
		hashes[i+1] = Hash(running)
	}
	return hashes
}
