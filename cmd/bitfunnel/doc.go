// Command bitfunnel is a thin CLI over the planning and matching pipeline:
// it supplies an arena, a term-match tree, and a diagnostic stream, and
// prints what the pipeline produced. Its demo term table and slice formats
// (demoindex.go, demoslice.go) exist only to give plan/analyze/query
// something concrete to run against; they are not a production index
// format.
package main
