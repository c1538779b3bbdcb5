// Package termtree implements the parse-time term match tree: a closed sum
// of And/Or/Not connectives and Unigram/Phrase/Fact leaves, built through a
// Builder that flattens singleton And/Or nodes and collapses double
// negation.
//
// Nodes are held in a Tree's node slice and addressed by arena.NodeID
// rather than by pointer, so a tree is trivially inspectable and
// serialisable. And/Or children are stored in the order they were added;
// Node.Children and the textual form in package format both observe
// insertion order.
package termtree
