package typeexpr

import (
	"fmt"
	"strings"
)

// Parse parses a single type expression.
//
//	type     := wildcard | name args? dims
//	wildcard := "?" (("extends" | "super") type)?
//	name     := ident (("." | "$") ident)*
//	args     := "<" type ("," type)* ">"
//	dims     := ("[" "]")*
func Parse(src string) (*Expr, error) {
	p := &parser{src: src, tokens: tokenize(src)}
	if p.peek().kind == tokEOF {
		return nil, p.errorf(p.peek(), "empty type expression")
	}
	e, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %s after type", tok.kind)
	}
	return e, nil
}

type parser struct {
	src    string
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		return tok, p.errorf(tok, "expected %s, found %s", kind, describe(tok))
	}
	return tok, nil
}

func (p *parser) parseType() (*Expr, error) {
	if tok := p.peek(); tok.kind == tokQuestion {
		return p.parseWildcard()
	}

	start := p.peek()
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	e := &Expr{Name: name, Offset: start.offset}

	if p.peek().kind == tokLess {
		p.next()
		for {
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			e.Args = append(e.Args, arg)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
		if _, err := p.expect(tokGreater); err != nil {
			return nil, err
		}
	}

	for p.peek().kind == tokLBracket {
		p.next()
		if _, err := p.expect(tokRBracket); err != nil {
			return nil, err
		}
		e.Dims++
	}
	return e, nil
}

func (p *parser) parseWildcard() (*Expr, error) {
	q := p.next()
	e := &Expr{Wildcard: true, Offset: q.offset}
	tok := p.peek()
	if tok.kind != tokIdent || (tok.value != "extends" && tok.value != "super") {
		return e, nil
	}
	p.next()
	bound, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if tok.value == "extends" {
		e.Extends = bound
	} else {
		e.Super = bound
	}
	return e, nil
}

func (p *parser) parseName() (string, error) {
	first, err := p.expect(tokIdent)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(first.value)
	for {
		sep := p.peek()
		if sep.kind != tokDot && sep.kind != tokDollar {
			return b.String(), nil
		}
		p.next()
		part, err := p.expect(tokIdent)
		if err != nil {
			return "", err
		}
		b.WriteString(sep.value)
		b.WriteString(part.value)
	}
}

func (p *parser) errorf(tok token, format string, args ...interface{}) *ParseError {
	e := &ParseError{
		Source:  p.src,
		Message: fmt.Sprintf(format, args...),
		Offset:  tok.offset,
		Token:   tok.value,
	}
	switch tok.kind {
	case tokEOF:
		e.Suggestions = []string{"check for an unclosed '<' or a trailing separator"}
	case tokInvalid:
		e.Suggestions = []string{"type names may only contain letters, digits and '_'"}
	}
	return e
}

func describe(tok token) string {
	if tok.kind == tokIdent || tok.kind == tokInvalid {
		return fmt.Sprintf("%s '%s'", tok.kind, tok.value)
	}
	return tok.kind.String()
}
