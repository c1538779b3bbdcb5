// Package rowtree implements the row match tree: the same And/Or/Not
// connective shape as termtree, but with Row(AbstractRow) leaves instead of
// term leaves. It is the output of package planner and the input of package
// rewrite.
package rowtree
