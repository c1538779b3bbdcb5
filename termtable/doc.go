// Package termtable defines the read-only TermTable and IndexConfiguration
// interfaces the planner consumes, plus an in-memory implementation
// suitable for tests and the small, local deployments the cmd/bitfunnel
// CLI drives directly. Building a TermTable from a live corpus — shard
// optimisation, posting-count accounting, on-disk layout — happens
// elsewhere: this package only has to make that process's result
// queryable.
package termtable
