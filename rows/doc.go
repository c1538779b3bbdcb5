// Package rows implements the row-addressing data model: RowId (a physical
// row address within one shard), AbstractRow (a plan-local handle carrying
// rank and inversion), and PlanRows (the per-shard table that resolves one
// to the other).
package rows
