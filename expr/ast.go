// Package expr parses and evaluates single-variable math expressions.
//
// The grammar accepts numeric literals, the variable x, the operators
// + - * / % ^ (also **), parentheses, and calls to sin, cos, tan, exp, log
// and sqrt. Everything else is rejected by Parse.
package expr

import (
	"strconv"
	"strings"
)

// Node is one vertex of a parsed expression tree.
type Node interface {
	String() string
	node()
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Variable is the bound variable x.
type Variable struct{}

// Unary is a prefix sign.
type Unary struct {
	Op      byte // '+' or '-'
	Operand Node
}

// Binary is an infix arithmetic operation.
type Binary struct {
	Op    byte // one of + - * / % ^
	Left  Node
	Right Node
}

// Call applies an allow-listed function to one argument.
type Call struct {
	Func string
	Arg  Node
}

func (Number) node()   {}
func (Variable) node() {}
func (Unary) node()    {}
func (Binary) node()   {}
func (Call) node()     {}

func (n Number) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (Variable) String() string { return "x" }
func (u Unary) String() string  { return string(u.Op) + u.Operand.String() }
func (c Call) String() string   { return c.Func + "(" + c.Arg.String() + ")" }

func (b Binary) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(b.Left.String())
	sb.WriteByte(' ')
	sb.WriteByte(b.Op)
	sb.WriteByte(' ')
	sb.WriteString(b.Right.String())
	sb.WriteByte(')')
	return sb.String()
}
