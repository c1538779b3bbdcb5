package termtree

import "github.com/pkg/errors"

// ErrInvalidTree is returned for builder misuse: setting a Not node's child
// twice, constructing a Phrase with zero grams, or constructing a Fact with
// the reserved handle 0.
var ErrInvalidTree = errors.New("termtree: invalid tree")
