// File: atom.go
// Role: Atom value type (symbols, strings, numbers, expressions) and its
//       s-expression rendering.

package kb

import (
	"strconv"
	"strings"
)

// FlightRoute is the head symbol of flight facts:
//
//	(flight-route "From" "To" "Airline" (duration 2.0) (cost 160) (layovers 0))
const FlightRoute = "flight-route"

// Kind discriminates Atom variants.
type Kind int

const (
	// KindSymbol is a bare identifier such as flight-route or Paris.
	KindSymbol Kind = iota
	// KindString is a double-quoted literal.
	KindString
	// KindNumber is a numeric literal.
	KindNumber
	// KindExpr is a parenthesized list of atoms.
	KindExpr
)

// Atom is an immutable term of the knowledge store.
type Atom struct {
	Kind     Kind
	Text     string  // symbol name, string contents, or number lexeme
	Num      float64 // value of KindNumber
	Children []Atom  // elements of KindExpr
}

// Sym returns a symbol atom.
func Sym(name string) Atom { return Atom{Kind: KindSymbol, Text: name} }

// Str returns a string atom.
func Str(s string) Atom { return Atom{Kind: KindString, Text: s} }

// Num returns a number atom rendered in its shortest exact form.
func Num(x float64) Atom {
	return Atom{Kind: KindNumber, Text: strconv.FormatFloat(x, 'f', -1, 64), Num: x}
}

// Expr returns an expression atom.
func Expr(children ...Atom) Atom { return Atom{Kind: KindExpr, Children: children} }

// Head returns the leading symbol of an expression, or "".
func (a Atom) Head() string {
	if a.Kind != KindExpr || len(a.Children) == 0 || a.Children[0].Kind != KindSymbol {
		return ""
	}
	return a.Children[0].Text
}

// Name returns the textual value of a symbol or string atom.
func (a Atom) Name() (string, bool) {
	switch a.Kind {
	case KindSymbol, KindString:
		return a.Text, true
	default:
		return "", false
	}
}

// String renders the atom as an s-expression.
func (a Atom) String() string {
	var b strings.Builder
	a.write(&b)
	return b.String()
}

func (a Atom) write(b *strings.Builder) {
	switch a.Kind {
	case KindString:
		b.WriteString(strconv.Quote(a.Text))
	case KindExpr:
		b.WriteByte('(')
		for i, c := range a.Children {
			if i > 0 {
				b.WriteByte(' ')
			}
			c.write(b)
		}
		b.WriteByte(')')
	default:
		b.WriteString(a.Text)
	}
}
