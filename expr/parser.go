package expr

import (
	"fmt"
	"math"
)

type parser struct {
	l       lexer
	cur     token
	varName string
}

// Parse parses src as an expression in the single variable varName.
//
// The grammar accepts numbers, the variable, the constants pi and e (or E),
// the functions listed in Functions, unary signs, parentheses and the binary
// operators + - * / and ^ (also written **). Power is right associative and
// binds tighter than a unary sign, so -x^2 is -(x^2).
func Parse(src, varName string) (Node, error) {
	if !validVarName(varName) {
		return nil, fmt.Errorf("%w: invalid variable name %q", ErrParse, varName)
	}
	p := &parser{l: lexer{s: src}, varName: varName}
	p.next()
	if p.cur.kind == tokEOF {
		return nil, fmt.Errorf("%w: empty expression", ErrParse)
	}
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, p.unexpected()
	}
	return n, nil
}

func validVarName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 && !isIdentStart(r) {
			return false
		}
		if !isIdentContinue(r) {
			return false
		}
	}
	if _, ok := functions[name]; ok {
		return false
	}
	return name != "pi"
}

func (p *parser) next() { p.cur = p.l.next() }

func (p *parser) unexpected() error {
	if p.cur.kind == tokEOF {
		return fmt.Errorf("%w: unexpected end of expression", ErrParse)
	}
	return fmt.Errorf("%w: unexpected %q at offset %d", ErrParse, p.cur.text, p.cur.pos)
}

func (p *parser) parseSum() (Node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = binary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		neg := p.cur.kind == tokMinus
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if neg {
			return negate{x: x}, nil
		}
		return x, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind == tokCaret {
		p.next()
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return binary{op: '^', left: base, right: exp}, nil
	}
	return base, nil
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		p.next()
		return number{v: v}, nil
	case tokIdent:
		name := p.cur.text
		p.next()
		if p.cur.kind == tokLParen {
			if _, ok := functions[name]; !ok {
				return nil, fmt.Errorf("%w: unknown function %q", ErrParse, name)
			}
			p.next()
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			if p.cur.kind != tokRParen {
				return nil, fmt.Errorf("%w: %s expects one argument followed by ')'", ErrParse, name)
			}
			p.next()
			return call{name: name, arg: arg}, nil
		}
		switch name {
		case p.varName:
			return variable{name: name}, nil
		case "pi":
			return number{v: math.Pi}, nil
		case "e", "E":
			return number{v: math.E}, nil
		}
		if _, ok := functions[name]; ok {
			return nil, fmt.Errorf("%w: function %q needs an argument", ErrParse, name)
		}
		return nil, fmt.Errorf("%w: unknown identifier %q", ErrParse, name)
	case tokLParen:
		p.next()
		n, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')'", ErrParse)
		}
		p.next()
		return n, nil
	default:
		return nil, p.unexpected()
	}
}
