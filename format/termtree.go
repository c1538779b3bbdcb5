package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/bitfunnel/bitfunnel/arena"
	"github.com/bitfunnel/bitfunnel/termtree"
)

// ErrSyntax is returned by ParseTermTree when the input does not match the
// term-match-tree grammar.
var ErrSyntax = errors.New("format: syntax error")

// TermTree renders the subtree of tree rooted at id in its textual form.
// And/Or/Not children are printed in insertion order, the order
// termtree.Node.Children() already returns them in.
func TermTree(tree *termtree.Tree, id arena.NodeID) string {
	var b strings.Builder
	writeTermNode(&b, tree, id)
	return b.String()
}

func writeTermNode(b *strings.Builder, tree *termtree.Tree, id arena.NodeID) {
	n := tree.Node(id)
	switch n.Kind {
	case termtree.Unigram:
		fmt.Fprintf(b, "Unigram(%q, %d)", n.Text, n.Stream)

	case termtree.Phrase:
		b.WriteString("Phrase { StreamId: ")
		fmt.Fprintf(b, "%d", n.Stream)
		b.WriteString(", Grams: [ ")
		for i, g := range n.Grams {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%q", g)
		}
		b.WriteString(" ] }")

	case termtree.Fact:
		fmt.Fprintf(b, "Fact(%d)", n.Handle)

	case termtree.Not:
		b.WriteString("Not { Child: ")
		writeTermNode(b, tree, n.Child())
		b.WriteString(" }")

	case termtree.And, termtree.Or:
		b.WriteString(n.Kind.String())
		b.WriteString(" { Children: [ ")
		for i, c := range n.Children() {
			if i > 0 {
				b.WriteString(", ")
			}
			writeTermNode(b, tree, c)
		}
		b.WriteString(" ] }")

	default:
		panic("format: unreachable term node kind")
	}
}

// ParseTermTree parses s (as produced by TermTree) into tree, returning the
// root node's id. It is the inverse of TermTree up to builder flattening:
// ParseTermTree(TermTree(tree, id)) yields a node equal in structure to id,
// modulo the flattening/double-negation-elimination every termtree.Builder
// already performs.
func ParseTermTree(tree *termtree.Tree, s string) (arena.NodeID, error) {
	p := &termParser{toks: tokenize(s), tree: tree}
	id, err := p.parseNode()
	if err != nil {
		return arena.InvalidNodeID, err
	}
	if p.pos != len(p.toks) {
		return arena.InvalidNodeID, errors.Wrap(ErrSyntax, "trailing input")
	}
	return id, nil
}

type termParser struct {
	toks []token
	pos  int
	tree *termtree.Tree
}

func (p *termParser) parseNode() (arena.NodeID, error) {
	tok, err := p.peek()
	if err != nil {
		return arena.InvalidNodeID, err
	}
	switch tok.kind {
	case tokIdent:
		switch tok.text {
		case "Unigram":
			return p.parseUnigram()
		case "Phrase":
			return p.parsePhrase()
		case "Fact":
			return p.parseFact()
		case "Not":
			return p.parseNot()
		case "And":
			return p.parseConnective(termtree.And)
		case "Or":
			return p.parseConnective(termtree.Or)
		}
	}
	return arena.InvalidNodeID, errors.Wrapf(ErrSyntax, "unexpected token %q", tok.text)
}

func (p *termParser) parseUnigram() (arena.NodeID, error) {
	p.next() // "Unigram"
	if err := p.expectPunct("("); err != nil {
		return arena.InvalidNodeID, err
	}
	text, err := p.expectString()
	if err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct(","); err != nil {
		return arena.InvalidNodeID, err
	}
	stream, err := p.expectInt()
	if err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct(")"); err != nil {
		return arena.InvalidNodeID, err
	}
	return termtree.NewUnigram(p.tree, text, uint32(stream))
}

func (p *termParser) parsePhrase() (arena.NodeID, error) {
	p.next() // "Phrase"
	if err := p.expectPunct("{"); err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectIdent("StreamId"); err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct(":"); err != nil {
		return arena.InvalidNodeID, err
	}
	stream, err := p.expectInt()
	if err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct(","); err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectIdent("Grams"); err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct(":"); err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct("["); err != nil {
		return arena.InvalidNodeID, err
	}
	var grams []string
	for {
		tok, err := p.peek()
		if err != nil {
			return arena.InvalidNodeID, err
		}
		if tok.kind == tokPunct && tok.text == "]" {
			break
		}
		g, err := p.expectString()
		if err != nil {
			return arena.InvalidNodeID, err
		}
		grams = append(grams, g)
		tok, err = p.peek()
		if err != nil {
			return arena.InvalidNodeID, err
		}
		if tok.kind == tokPunct && tok.text == "," {
			p.next()
		}
	}
	if err := p.expectPunct("]"); err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct("}"); err != nil {
		return arena.InvalidNodeID, err
	}
	return termtree.NewPhrase(p.tree, grams, uint32(stream))
}

func (p *termParser) parseFact() (arena.NodeID, error) {
	p.next() // "Fact"
	if err := p.expectPunct("("); err != nil {
		return arena.InvalidNodeID, err
	}
	handle, err := p.expectInt()
	if err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct(")"); err != nil {
		return arena.InvalidNodeID, err
	}
	return termtree.NewFact(p.tree, uint64(handle))
}

func (p *termParser) parseNot() (arena.NodeID, error) {
	p.next() // "Not"
	if err := p.expectPunct("{"); err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectIdent("Child"); err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct(":"); err != nil {
		return arena.InvalidNodeID, err
	}
	child, err := p.parseNode()
	if err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct("}"); err != nil {
		return arena.InvalidNodeID, err
	}
	b := termtree.NewBuilder(p.tree, termtree.Not)
	if err := b.AddChild(child); err != nil {
		return arena.InvalidNodeID, err
	}
	id, _, err := b.Complete()
	return id, err
}

func (p *termParser) parseConnective(kind termtree.Kind) (arena.NodeID, error) {
	p.next() // "And" or "Or"
	if err := p.expectPunct("{"); err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectIdent("Children"); err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct(":"); err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct("["); err != nil {
		return arena.InvalidNodeID, err
	}
	b := termtree.NewBuilder(p.tree, kind)
	for {
		tok, err := p.peek()
		if err != nil {
			return arena.InvalidNodeID, err
		}
		if tok.kind == tokPunct && tok.text == "]" {
			break
		}
		child, err := p.parseNode()
		if err != nil {
			return arena.InvalidNodeID, err
		}
		if err := b.AddChild(child); err != nil {
			return arena.InvalidNodeID, err
		}
		tok, err = p.peek()
		if err != nil {
			return arena.InvalidNodeID, err
		}
		if tok.kind == tokPunct && tok.text == "," {
			p.next()
		}
	}
	if err := p.expectPunct("]"); err != nil {
		return arena.InvalidNodeID, err
	}
	if err := p.expectPunct("}"); err != nil {
		return arena.InvalidNodeID, err
	}
	id, _, err := b.Complete()
	return id, err
}

// --- tokenizer ---

type tokenKind uint8

const (
	tokIdent tokenKind = iota
	tokString
	tokInt
	tokPunct
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(s string) []token {
	var toks []token
	r := []rune(s)
	for i := 0; i < len(r); {
		c := r[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case strings.ContainsRune("{}[](),:", c):
			toks = append(toks, token{kind: tokPunct, text: string(c)})
			i++
		case c == '"':
			j := i + 1
			var sb strings.Builder
			for j < len(r) && r[j] != '"' {
				if r[j] == '\\' && j+1 < len(r) {
					j++
				}
				sb.WriteRune(r[j])
				j++
			}
			toks = append(toks, token{kind: tokString, text: sb.String()})
			i = j + 1
		case c == '-' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < len(r) && r[j] >= '0' && r[j] <= '9' {
				j++
			}
			toks = append(toks, token{kind: tokInt, text: string(r[i:j])})
			i = j
		default:
			j := i
			for j < len(r) && (r[j] == '_' || (r[j] >= 'a' && r[j] <= 'z') || (r[j] >= 'A' && r[j] <= 'Z') || (r[j] >= '0' && r[j] <= '9')) {
				j++
			}
			if j == i {
				i++ // skip anything unrecognized rather than loop forever
				continue
			}
			toks = append(toks, token{kind: tokIdent, text: string(r[i:j])})
			i = j
		}
	}
	return toks
}

func (p *termParser) peek() (token, error) {
	if p.pos >= len(p.toks) {
		return token{}, errors.Wrap(ErrSyntax, "unexpected end of input")
	}
	return p.toks[p.pos], nil
}

func (p *termParser) next() token {
	tok := p.toks[p.pos]
	p.pos++
	return tok
}

func (p *termParser) expectPunct(s string) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.kind != tokPunct || tok.text != s {
		return errors.Wrapf(ErrSyntax, "expected %q, got %q", s, tok.text)
	}
	p.next()
	return nil
}

func (p *termParser) expectIdent(s string) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.kind != tokIdent || tok.text != s {
		return errors.Wrapf(ErrSyntax, "expected %q, got %q", s, tok.text)
	}
	p.next()
	return nil
}

func (p *termParser) expectString() (string, error) {
	tok, err := p.peek()
	if err != nil {
		return "", err
	}
	if tok.kind != tokString {
		return "", errors.Wrapf(ErrSyntax, "expected string, got %q", tok.text)
	}
	p.next()
	return tok.text, nil
}

func (p *termParser) expectInt() (int64, error) {
	tok, err := p.peek()
	if err != nil {
		return 0, err
	}
	if tok.kind != tokInt {
		return 0, errors.Wrapf(ErrSyntax, "expected integer, got %q", tok.text)
	}
	p.next()
	n, err := strconv.ParseInt(tok.text, 10, 64)
	if err != nil {
		return 0, errors.Wrap(ErrSyntax, err.Error())
	}
	return n, nil
}
