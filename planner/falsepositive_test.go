package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/term"
	"github.com/bitfunnel/bitfunnel/termtree"
)

func TestBuildFalsePositiveEvaluationPlanUnigram(t *testing.T) {
	a := arena.New(1 << 16)
	defer a.Close()
	tt := termtree.New(a)
	leaf, err := termtree.NewUnigram(tt, "foo", 0)
	require.NoError(t, err)

	fp := BuildFalsePositiveEvaluationPlan(tt, leaf)
	require.Equal(t, FPTerm, fp.Kind)
	assert.Equal(t, term.HashText("foo"), fp.Hash)
}

func TestBuildFalsePositiveEvaluationPlanPhraseUsesFullPhraseHash(t *testing.T) {
	a := arena.New(1 << 16)
	defer a.Close()
	tt := termtree.New(a)
	grams := []string{"the", "quick", "fox"}
	leaf, err := termtree.NewPhrase(tt, grams, 0)
	require.NoError(t, err)

	fp := BuildFalsePositiveEvaluationPlan(tt, leaf)
	require.Equal(t, FPTerm, fp.Kind)
	assert.Equal(t, term.HashPhrase(grams), fp.Hash)
}

func TestEvaluateHonorsBooleanStructure(t *testing.T) {
	a := arena.New(1 << 16)
	defer a.Close()
	tt := termtree.New(a)
	cat, err := termtree.NewUnigram(tt, "cat", 0)
	require.NoError(t, err)
	dog, err := termtree.NewUnigram(tt, "dog", 0)
	require.NoError(t, err)

	notB := termtree.NewBuilder(tt, termtree.Not)
	require.NoError(t, notB.AddChild(dog))
	notDog, _, err := notB.Complete()
	require.NoError(t, err)

	andB := termtree.NewBuilder(tt, termtree.And)
	require.NoError(t, andB.AddChild(cat))
	require.NoError(t, andB.AddChild(notDog))
	andID, _, err := andB.Complete()
	require.NoError(t, err)

	fp := BuildFalsePositiveEvaluationPlan(tt, andID)

	memberOf := func(terms ...string) func(term.Hash, uint32) bool {
		set := make(map[term.Hash]bool, len(terms))
		for _, s := range terms {
			set[term.HashText(s)] = true
		}
		return func(h term.Hash, _ uint32) bool { return set[h] }
	}

	assert.True(t, fp.Evaluate(memberOf("cat")))
	assert.False(t, fp.Evaluate(memberOf("cat", "dog")), "a document with the excluded term is a false positive")
	assert.False(t, fp.Evaluate(memberOf("dog")))
	assert.False(t, fp.Evaluate(memberOf()))
}

func TestBuildFalsePositiveEvaluationPlanMirrorsStructure(t *testing.T) {
	a := arena.New(1 << 16)
	defer a.Close()
	tt := termtree.New(a)
	cat, err := termtree.NewUnigram(tt, "cat", 0)
	require.NoError(t, err)
	dog, err := termtree.NewUnigram(tt, "dog", 0)
	require.NoError(t, err)

	notB := termtree.NewBuilder(tt, termtree.Not)
	require.NoError(t, notB.AddChild(dog))
	notDog, _, err := notB.Complete()
	require.NoError(t, err)

	andB := termtree.NewBuilder(tt, termtree.And)
	require.NoError(t, andB.AddChild(cat))
	require.NoError(t, andB.AddChild(notDog))
	andID, _, err := andB.Complete()
	require.NoError(t, err)

	fp := BuildFalsePositiveEvaluationPlan(tt, andID)
	require.Equal(t, FPAnd, fp.Kind)
	require.Len(t, fp.Children, 2)
	assert.Equal(t, FPTerm, fp.Children[0].Kind)
	require.Equal(t, FPNot, fp.Children[1].Kind)
	require.NotNil(t, fp.Children[1].Child)
	assert.Equal(t, term.HashText("dog"), fp.Children[1].Child.Hash)
}
