package main

import "flag"

// Config carries the planner tunables: how aggressively the rewriter
// cross-products ORs, how the register allocator sizes its bank, and how
// much scratch space one query gets. Everything is a flag; there is no
// config file.
type Config struct {
	TargetRowCount              int
	TargetCrossProductTermCount int
	RegisterBase                int
	RegisterCount               int
	ArenaSize                   int
	ResultsBufferCapacity       int
}

// DefaultConfig gives the register bank its usual base=8, count=8 shape
// and the rewriter/arena/results-buffer reasonable single-query defaults.
func DefaultConfig() Config {
	return Config{
		TargetRowCount:              64,
		TargetCrossProductTermCount: 8,
		RegisterBase:                8,
		RegisterCount:               8,
		ArenaSize:                   1 << 20,
		ResultsBufferCapacity:       4096,
	}
}

// registerFlags binds cfg's fields onto fs, each defaulting to cfg's
// current value.
func (cfg *Config) registerFlags(fs *flag.FlagSet) {
	fs.IntVar(&cfg.TargetRowCount, "target-row-count", cfg.TargetRowCount,
		"Soft budget on distinct rows before the rewriter stops cross-producting ORs")
	fs.IntVar(&cfg.TargetCrossProductTermCount, "target-cross-product-term-count", cfg.TargetCrossProductTermCount,
		"Soft budget on OR cross-product terms")
	fs.IntVar(&cfg.RegisterBase, "register-base", cfg.RegisterBase, "First register index the allocator may hand out")
	fs.IntVar(&cfg.RegisterCount, "register-count", cfg.RegisterCount, "Number of registers available to the allocator")
	fs.IntVar(&cfg.ArenaSize, "arena-size", cfg.ArenaSize, "Byte budget for the per-query arena")
	fs.IntVar(&cfg.ResultsBufferCapacity, "results-buffer-capacity", cfg.ResultsBufferCapacity, "Max match records buffered per query")
}
