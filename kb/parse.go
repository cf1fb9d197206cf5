// File: parse.go
// Role: s-expression reader for fact files.
// Grammar:
//   file   = { "!" atom | atom }      ; "!" marks a query, which is skipped
//   atom   = "(" { atom } ")" | string | token
//   token  = number | symbol
// Comments run from ";" to end of line.

package kb

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads every top-level fact of src. Queries (expressions prefixed by
// "!") are skipped. Errors wrap ErrSyntax and carry the line number.
func Parse(src string) ([]Atom, error) {
	p := &parser{src: src, line: 1}
	var out []Atom
	for {
		p.skipSpace()
		if p.eof() {
			return out, nil
		}
		query := false
		if p.peek() == '!' {
			query = true
			p.pos++
		}
		a, err := p.atom()
		if err != nil {
			return nil, err
		}
		if !query {
			out = append(out, a)
		}
	}
}

// ParseAtom reads exactly one atom from s.
func ParseAtom(s string) (Atom, error) {
	atoms, err := Parse(s)
	if err != nil {
		return Atom{}, err
	}
	if len(atoms) != 1 {
		return Atom{}, fmt.Errorf("%w: expected one atom, got %d", ErrSyntax, len(atoms))
	}
	return atoms[0], nil
}

type parser struct {
	src  string
	pos  int
	line int
}

func (p *parser) eof() bool  { return p.pos >= len(p.src) }
func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, p.line, fmt.Sprintf(format, args...))
}

// skipSpace consumes whitespace and comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch c := p.peek(); {
		case c == '\n':
			p.line++
			p.pos++
		case c == ';':
			for !p.eof() && p.peek() != '\n' {
				p.pos++
			}
		case unicode.IsSpace(rune(c)):
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) atom() (Atom, error) {
	p.skipSpace()
	if p.eof() {
		return Atom{}, p.errorf("unexpected end of input")
	}
	switch p.peek() {
	case '(':
		p.pos++
		var children []Atom
		for {
			p.skipSpace()
			if p.eof() {
				return Atom{}, p.errorf("unclosed expression")
			}
			if p.peek() == ')' {
				p.pos++
				return Expr(children...), nil
			}
			c, err := p.atom()
			if err != nil {
				return Atom{}, err
			}
			children = append(children, c)
		}
	case ')':
		return Atom{}, p.errorf("unexpected ')'")
	case '"':
		return p.str()
	default:
		return p.token(), nil
	}
}

// str reads a double-quoted literal with Go-style escapes.
func (p *parser) str() (Atom, error) {
	start := p.pos
	p.pos++ // opening quote
	for !p.eof() {
		switch p.peek() {
		case '\\':
			p.pos += 2
		case '"':
			p.pos++
			s, err := strconv.Unquote(p.src[start:p.pos])
			if err != nil {
				return Atom{}, p.errorf("bad string literal %s", p.src[start:p.pos])
			}
			return Str(s), nil
		case '\n':
			return Atom{}, p.errorf("newline in string literal")
		default:
			p.pos++
		}
	}
	return Atom{}, p.errorf("unterminated string literal")
}

// token reads a symbol or number.
func (p *parser) token() Atom {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c == '(' || c == ')' || c == '"' || c == ';' || unicode.IsSpace(rune(c)) {
			break
		}
		p.pos++
	}
	text := p.src[start:p.pos]
	if looksNumeric(text) {
		if x, err := strconv.ParseFloat(text, 64); err == nil {
			return Atom{Kind: KindNumber, Text: text, Num: x}
		}
	}
	return Sym(text)
}

// looksNumeric keeps symbols such as Inf, NaN or 0x1p-2 out of numbers.
func looksNumeric(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if s == "" || !(s[0] >= '0' && s[0] <= '9' || s[0] == '.') {
		return false
	}
	return !strings.ContainsAny(s, "xXpP_")
}
