package expr

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrMathDomain     = errors.New("math domain error")
	ErrNotFinite      = errors.New("result is not a finite real number")
)

type function func(float64) (float64, error)

var functions = map[string]function{
	"sin": func(v float64) (float64, error) { return math.Sin(v), nil },
	"cos": func(v float64) (float64, error) { return math.Cos(v), nil },
	"tan": func(v float64) (float64, error) { return math.Tan(v), nil },
	"exp": func(v float64) (float64, error) { return math.Exp(v), nil },
	"log": func(v float64) (float64, error) {
		if v <= 0 {
			return 0, fmt.Errorf("log(%g): %w", v, ErrMathDomain)
		}
		return math.Log(v), nil
	},
	"sqrt": func(v float64) (float64, error) {
		if v < 0 {
			return 0, fmt.Errorf("sqrt(%g): %w", v, ErrMathDomain)
		}
		return math.Sqrt(v), nil
	},
}

// Eval computes the expression with x bound to the given value. Every
// intermediate result must be a finite real number.
func (e *Expr) Eval(x float64) (float64, error) {
	return finite(eval(e.root, x))
}

func eval(n Node, x float64) (float64, error) {
	switch n := n.(type) {
	case Number:
		return n.Value, nil
	case Variable:
		return x, nil
	case Unary:
		v, err := eval(n.Operand, x)
		if err != nil {
			return 0, err
		}
		if n.Op == '-' {
			return -v, nil
		}
		return v, nil
	case Binary:
		l, err := eval(n.Left, x)
		if err != nil {
			return 0, err
		}
		r, err := eval(n.Right, x)
		if err != nil {
			return 0, err
		}
		return finite(applyBinary(n.Op, l, r))
	case Call:
		v, err := eval(n.Arg, x)
		if err != nil {
			return 0, err
		}
		return finite(functions[n.Func](v))
	}
	return 0, fmt.Errorf("unknown node %T", n)
}

func applyBinary(op byte, l, r float64) (float64, error) {
	switch op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	case '%':
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return FlooredMod(l, r), nil
	case '^':
		if l == 0 && r < 0 {
			return 0, ErrDivisionByZero
		}
		if l < 0 && r != math.Trunc(r) {
			return 0, fmt.Errorf("%g ^ %g: %w", l, r, ErrMathDomain)
		}
		return math.Pow(l, r), nil
	}
	return 0, fmt.Errorf("unknown operator %q", op)
}

func finite(v float64, err error) (float64, error) {
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// FlooredMod returns the remainder of a/b with the sign of b.
func FlooredMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
