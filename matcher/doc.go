// Package matcher implements the byte-code Interpreter, the ResultsBuffer
// it writes into, and the Token/TokenManager pair that gates access to
// shared, reconfigurable state (a TermTable, a shard.Definition, a shard's
// Slices) without synchronizing every individual query against every
// individual mutation.
package matcher
