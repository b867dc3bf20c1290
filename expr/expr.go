// Package expr implements the restricted arithmetic grammar used for beat
// positions: numbers, the four basic operators, unary sign, and
// parentheses, left-associative and precedence-correct. It never hands
// the string to a host eval facility.
//
// Internally values are math/big.Rat so that "1/3" stays exact and
// round-trips predictably through tick conversion.
package expr

import (
	"fmt"
	"math/big"
	"unicode"

	"github.com/jsphweid/scoretool/model"
)

// Eval evaluates value, which must be either a number (int/float64/*big.Rat)
// or a string expression, and returns a non-negative rational beat
// position. Negative results are rejected here, at the evaluation
// boundary.
func Eval(value any) (*big.Rat, error) {
	r, err := evalAny(value)
	if err != nil {
		return nil, err
	}
	if r.Sign() < 0 {
		return nil, model.NewErrorf(model.CodeMalformedExpression, "expression evaluates to a negative value: %s", r.RatString())
	}
	return r, nil
}

func evalAny(value any) (*big.Rat, error) {
	switch v := value.(type) {
	case *big.Rat:
		return new(big.Rat).Set(v), nil
	case int:
		return new(big.Rat).SetInt64(int64(v)), nil
	case int64:
		return new(big.Rat).SetInt64(v), nil
	case float64:
		r := new(big.Rat)
		if r.SetFloat64(v) == nil {
			return nil, model.NewErrorf(model.CodeMalformedExpression, "non-finite numeric value %v", v)
		}
		return r, nil
	case string:
		return evalString(v)
	default:
		return nil, model.NewErrorf(model.CodeMalformedExpression, "unsupported value type %T", value)
	}
}

func evalString(s string) (*big.Rat, error) {
	p := &parser{src: s}
	p.next()
	val, err := p.expr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, model.NewErrorf(model.CodeMalformedExpression, "unexpected trailing input %q in expression %q", p.src[p.pos:], s)
	}
	return val, nil
}

// parser is a small hand-written recursive-descent parser/evaluator for:
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := number | '(' expr ')' | ('+'|'-') factor
//	number := digits ('.' digits)?
//
// It evaluates as it parses rather than building an AST; the grammar has
// no need for one.
type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) next() {
	p.skipSpace()
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) expr() (*big.Rat, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.term()
			if err != nil {
				return nil, err
			}
			left = new(big.Rat).Add(left, right)
		case '-':
			p.pos++
			right, err := p.term()
			if err != nil {
				return nil, err
			}
			left = new(big.Rat).Sub(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) term() (*big.Rat, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.factor()
			if err != nil {
				return nil, err
			}
			left = new(big.Rat).Mul(left, right)
		case '/':
			p.pos++
			right, err := p.factor()
			if err != nil {
				return nil, err
			}
			if right.Sign() == 0 {
				return nil, model.NewErrorf(model.CodeMalformedExpression, "division by zero in expression %q", p.src)
			}
			left = new(big.Rat).Quo(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) factor() (*big.Rat, error) {
	p.skipSpace()
	switch p.peek() {
	case '+':
		p.pos++
		return p.factor()
	case '-':
		p.pos++
		v, err := p.factor()
		if err != nil {
			return nil, err
		}
		return new(big.Rat).Neg(v), nil
	case '(':
		p.pos++
		v, err := p.expr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, model.NewErrorf(model.CodeMalformedExpression, "missing closing ')' in expression %q", p.src)
		}
		p.pos++
		return v, nil
	default:
		return p.number()
	}
}

func (p *parser) number() (*big.Rat, error) {
	start := p.pos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	hasIntPart := p.pos > start
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		p.pos++
		fracStart := p.pos
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
		if !hasIntPart && p.pos == fracStart {
			return nil, model.NewErrorf(model.CodeMalformedExpression, "malformed number at %q", p.src[start:])
		}
	} else if !hasIntPart {
		return nil, model.NewErrorf(model.CodeMalformedExpression, "unexpected token %q in expression %q", tokenAt(p.src, p.pos), p.src)
	}

	literal := p.src[start:p.pos]
	r, ok := new(big.Rat).SetString(literal)
	if !ok {
		return nil, model.NewErrorf(model.CodeMalformedExpression, "could not parse number %q", literal)
	}
	return r, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func tokenAt(src string, pos int) string {
	if pos >= len(src) {
		return "<end of input>"
	}
	return string(src[pos])
}

// ToFloat64 converts a rational beat position to a float64, used only at
// boundaries that must interoperate with JSON numbers.
func ToFloat64(r *big.Rat) float64 {
	f, _ := new(big.Float).SetRat(r).Float64()
	return f
}

// String renders r the way this module reports beat positions in error
// messages and debug output: as an integer when r is whole, otherwise as
// a %g decimal approximation of its float64 value.
func String(r *big.Rat) string {
	if r.IsInt() {
		return r.RatString()
	}
	f := ToFloat64(r)
	return fmt.Sprintf("%g", f)
}
