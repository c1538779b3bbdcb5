package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/bytecode"
	"github.com/bitfunnel/bitfunnel/compiletree"
	"github.com/bitfunnel/bitfunnel/rows"
	"github.com/bitfunnel/bitfunnel/rowtree"
	"github.com/bitfunnel/bitfunnel/termtree"
)

func TestTermTreeRoundTripsUnigram(t *testing.T) {
	a := arena.New(1 << 16)
	t.Cleanup(func() { a.Close() })
	tree := termtree.New(a)

	id, err := termtree.NewUnigram(tree, "hello", 0)
	require.NoError(t, err)

	s := TermTree(tree, id)
	assert.Equal(t, `Unigram("hello", 0)`, s)

	out := termtree.New(a)
	parsed, err := ParseTermTree(out, s)
	require.NoError(t, err)
	n := out.Node(parsed)
	assert.Equal(t, termtree.Unigram, n.Kind)
	assert.Equal(t, "hello", n.Text)
}

func TestTermTreeRoundTripsAndOfPhraseAndFact(t *testing.T) {
	a := arena.New(1 << 16)
	t.Cleanup(func() { a.Close() })
	tree := termtree.New(a)

	phrase, err := termtree.NewPhrase(tree, []string{"foo", "bar"}, 1)
	require.NoError(t, err)
	fact, err := termtree.NewFact(tree, 42)
	require.NoError(t, err)

	b := termtree.NewBuilder(tree, termtree.And)
	require.NoError(t, b.AddChild(phrase))
	require.NoError(t, b.AddChild(fact))
	root, _, err := b.Complete()
	require.NoError(t, err)

	s := TermTree(tree, root)
	assert.Equal(t, `And { Children: [ Phrase { StreamId: 1, Grams: [ "foo", "bar" ] }, Fact(42) ] }`, s)

	out := termtree.New(a)
	parsed, err := ParseTermTree(out, s)
	require.NoError(t, err)
	n := out.Node(parsed)
	require.Equal(t, termtree.And, n.Kind)
	require.Len(t, n.Children(), 2)
	assert.Equal(t, termtree.Phrase, out.Node(n.Children()[0]).Kind)
	assert.Equal(t, termtree.Fact, out.Node(n.Children()[1]).Kind)
	assert.Equal(t, uint64(42), out.Node(n.Children()[1]).Handle)
}

func TestTermTreeRoundTripsNot(t *testing.T) {
	a := arena.New(1 << 16)
	t.Cleanup(func() { a.Close() })
	tree := termtree.New(a)

	inner, err := termtree.NewUnigram(tree, "x", 0)
	require.NoError(t, err)
	b := termtree.NewBuilder(tree, termtree.Not)
	require.NoError(t, b.AddChild(inner))
	root, _, err := b.Complete()
	require.NoError(t, err)

	s := TermTree(tree, root)
	assert.Equal(t, `Not { Child: Unigram("x", 0) }`, s)

	out := termtree.New(a)
	parsed, err := ParseTermTree(out, s)
	require.NoError(t, err)
	assert.Equal(t, termtree.Not, out.Node(parsed).Kind)
}

func TestParseTermTreeRejectsGarbage(t *testing.T) {
	a := arena.New(1 << 16)
	t.Cleanup(func() { a.Close() })
	tree := termtree.New(a)

	_, err := ParseTermTree(tree, "NotAKeyword(1)")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestRowTreeRendersAndOfRows(t *testing.T) {
	a := arena.New(1 << 16)
	t.Cleanup(func() { a.Close() })
	tree := rowtree.New(a)

	r0, err := rowtree.NewRow(tree, rows.AbstractRow{ID: 0, Rank: 0})
	require.NoError(t, err)
	r1, err := rowtree.NewOutOfOrderRow(tree, rows.AbstractRow{ID: 1, Rank: 2})
	require.NoError(t, err)

	b := rowtree.NewBuilder(tree, rowtree.And)
	require.NoError(t, b.AddChild(r0))
	require.NoError(t, b.AddChild(r1))
	root, _, err := b.Complete()
	require.NoError(t, err)

	s := RowTree(tree, root)
	assert.Equal(t, `And { Children: [ Row(0, 0, 0, false), Row(1, 2, 0, false) /* out-of-order */ ] }`, s)
}

func TestCompileTreeRendersLoadRowJzEndingInReport(t *testing.T) {
	a := arena.New(1 << 16)
	t.Cleanup(func() { a.Close() })
	tree := compiletree.New(a)

	report, err := compiletree.NewReport(tree, arena.InvalidNodeID)
	require.NoError(t, err)
	root, err := compiletree.NewLoadRowJz(tree, rows.AbstractRow{ID: 1, Rank: 2}, report)
	require.NoError(t, err)

	s := CompileTree(tree, root)
	assert.Equal(t, `LoadRowJz { Row: Row(1, 2, 0, false), Child: Report { Child: } }`, s)
}

func TestBytecodeRendersLoadRowThenReport(t *testing.T) {
	program := &bytecode.Program{Instructions: []bytecode.Instruction{
		{Op: bytecode.OpLoadRow, Row: rows.AbstractRow{ID: 3, Rank: 0}},
		{Op: bytecode.OpReport},
	}}
	s := Bytecode(program)
	assert.Equal(t, "   0: LoadRow Row(3, 0, 0, false)\n   1: Report\n", s)
}

func TestPlanRowsDumpsEveryShardAndID(t *testing.T) {
	b := rows.NewBuilder(2)
	b.AddRow(rows.Key{1, 0}, []rows.RowId{{Rank: 0, Index: 5}, {Rank: 0, Index: 6}})
	b.AddRow(rows.Key{2, 0}, []rows.RowId{{Rank: 1, Index: 0}, {Rank: 1, Index: 1}})
	p := b.Build()

	s := PlanRows(p)
	assert.Equal(t, "(0, 0): RowId(0, 5)\n(1, 0): RowId(0, 6)\n(0, 1): RowId(1, 0)\n(1, 1): RowId(1, 1)\n", s)
}
