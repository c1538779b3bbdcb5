package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashTextDeterministic(t *testing.T) {
	assert.Equal(t, HashText("foo"), HashText("foo"))
	assert.NotEqual(t, HashText("foo"), HashText("bar"))
}

func TestHashFactIsIdentity(t *testing.T) {
	assert.Equal(t, Hash(0), HashFact(0))
	assert.Equal(t, Hash(42), HashFact(42))
}

func TestHashPhraseSingleGramIsGramHash(t *testing.T) {
	assert.Equal(t, HashText("a"), HashPhrase([]string{"a"}))
}

func TestHashPhraseComposition(t *testing.T) {
	want := Hash(rotl64(uint64(HashText("a"))) ^ uint64(HashText("b")))
	assert.Equal(t, want, HashPhrase([]string{"a", "b"}))

	want3 := Hash(rotl64(uint64(want)) ^ uint64(HashText("c")))
	assert.Equal(t, want3, HashPhrase([]string{"a", "b", "c"}))
}

func TestSubphrasePrefixesMatchIncrementalHashPhrase(t *testing.T) {
	grams := []string{"a", "b", "c"}
	prefixes := SubphrasePrefixes(grams)
	require.Len(t, prefixes, 3)
	for i := range grams {
		assert.Equal(t, HashPhrase(grams[:i+1]), prefixes[i])
	}
}

func TestHashPhrasePanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { HashPhrase(nil) })
}
