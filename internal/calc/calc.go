// Package calc evaluates restricted arithmetic expressions.
//
// The grammar covers numeric literals, the four binary operators,
// unary sign, and parentheses:
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := number | '(' expr ')' | ('+' | '-') factor
//
// There are no identifiers, no function calls, and no escape hatch to
// anything beyond these productions, so a hostile expression can only
// fail to parse.
package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmpty is returned when an expression contains nothing to
// evaluate after sanitization.
var ErrEmpty = errors.New("empty expression")

// ErrDivisionByZero is returned when a division has a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// Sanitize strips every rune that is not a digit, one of "+-*/().",
// or whitespace. The grammar rejects whatever survives that it cannot
// parse; sanitization just keeps the reported expression printable.
func Sanitize(expr string) string {
	var b strings.Builder
	b.Grow(len(expr))
	for _, r := range expr {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == '-' || r == '*' || r == '/' || r == '(' || r == ')' || r == '.':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune(r)
		}
	}
	return b.String()
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	val  float64
	text string
	pos  int
}

func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
				i++
			}
			text := s[start:i]
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("bad number %q at position %d", text, start)
			}
			toks = append(toks, token{kind: tokNumber, val: v, text: text, pos: start})
		default:
			kind, ok := map[byte]tokenKind{
				'+': tokPlus, '-': tokMinus, '*': tokStar,
				'/': tokSlash, '(': tokLParen, ')': tokRParen,
			}[c]
			if !ok {
				return nil, fmt.Errorf("unexpected character %q at position %d", c, i)
			}
			toks = append(toks, token{kind: kind, text: string(c), pos: i})
			i++
		}
	}
	toks = append(toks, token{kind: tokEOF, text: "end of expression", pos: len(s)})
	return toks, nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) expr() (float64, error) {
	v, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			rhs, err := p.term()
			if err != nil {
				return 0, err
			}
			v += rhs
		case tokMinus:
			p.next()
			rhs, err := p.term()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) term() (float64, error) {
	v, err := p.factor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			rhs, err := p.factor()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case tokSlash:
			p.next()
			rhs, err := p.factor()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, ErrDivisionByZero
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

func (p *parser) factor() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.val, nil
	case tokPlus:
		return p.factor()
	case tokMinus:
		v, err := p.factor()
		return -v, err
	case tokLParen:
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if t := p.next(); t.kind != tokRParen {
			return 0, fmt.Errorf("expected ')' but found %s at position %d", t.text, t.pos)
		}
		return v, nil
	default:
		return 0, fmt.Errorf("unexpected %s at position %d", t.text, t.pos)
	}
}

// Eval parses and evaluates an arithmetic expression. Callers that
// accept untrusted input run Sanitize first; Eval itself rejects any
// rune outside the grammar.
func Eval(expr string) (float64, error) {
	if strings.TrimSpace(expr) == "" {
		return 0, ErrEmpty
	}
	toks, err := lex(expr)
	if err != nil {
		return 0, err
	}
	p := &parser{toks: toks}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return 0, fmt.Errorf("unexpected %s at position %d", t.text, t.pos)
	}
	return v, nil
}

// Format renders an evaluated value the way the command surface
// reports it: integers without a decimal point, everything else with
// the shortest exact representation.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
