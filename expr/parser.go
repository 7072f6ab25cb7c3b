package expr

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MaxLength = 512
	MaxDepth  = 64
)

var ErrEmpty = errors.New("expression is empty")

// Expr is a parsed expression ready for repeated evaluation.
type Expr struct {
	src  string
	root Node
}

// Parse compiles src. It fails on any token outside the grammar, on
// unknown identifiers, and on inputs that exceed MaxLength or MaxDepth.
func Parse(src string) (*Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmpty
	}
	if len(src) > MaxLength {
		return nil, fmt.Errorf("expression longer than %d characters", MaxLength)
	}
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %s", t.describe())
	}
	return &Expr{src: src, root: root}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) *Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Source returns the text the expression was parsed from.
func (e *Expr) Source() string { return e.src }

// Root returns the top of the syntax tree.
func (e *Expr) Root() Node { return e.root }

func (e *Expr) String() string { return e.root.String() }

type parser struct {
	toks  []token
	pos   int
	depth int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return fmt.Errorf("expression nested deeper than %d levels", MaxDepth)
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) isOp(ops string) (byte, bool) {
	t := p.peek()
	if t.kind != tokOp || !strings.Contains(ops, t.text) {
		return 0, false
	}
	return t.text[0], true
}

// expr = term { ("+" | "-") term }
func (p *parser) parseExpr() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOp("+-")
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
}

// term = unary { ("*" | "/" | "%") unary }
func (p *parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.isOp("*/%")
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
}

// unary = ("+" | "-") unary | power
func (p *parser) parseUnary() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if op, ok := p.isOp("+-"); ok {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: op, Operand: operand}, nil
	}
	return p.parsePower()
}

// power = primary [ "^" unary ]
// The exponent may carry its own sign and binds to the right, so
// 2^-1 and 2^3^2 parse as 2^(-1) and 2^(3^2), while -x^2 is -(x^2).
func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.isOp("^"); !ok {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return Binary{Op: '^', Left: base, Right: exp}, nil
}

// primary = number | "x" | func "(" expr ")" | "(" expr ")"
func (p *parser) parsePrimary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return Number{Value: t.num}, nil
	case tokIdent:
		if t.text == "x" {
			return Variable{}, nil
		}
		if _, ok := functions[t.text]; !ok {
			return nil, fmt.Errorf("unknown name %q at position %d", t.text, t.pos+1)
		}
		if p.peek().kind != tokLParen {
			return nil, fmt.Errorf("function %s must be called with parentheses", t.text)
		}
		p.next()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return Call{Func: t.text, Arg: arg}, nil
	case tokLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, fmt.Errorf("unexpected %s", t.describe())
}

func (p *parser) expect(kind tokenKind) error {
	t := p.next()
	if t.kind != kind {
		return fmt.Errorf("expected ')' but found %s", t.describe())
	}
	return nil
}
