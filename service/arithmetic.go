package service

import (
	"math"

	"web-calculator/domain"
	"web-calculator/expr"
)

// Operators accepted in basic mode.
const (
	OpAdd     = "+"
	OpSub     = "-"
	OpMul     = "*"
	OpDiv     = "/"
	OpMod     = "%"
	OpPow     = "^"
	OpSqrt    = "sqrt"
	OpLog     = "log"
	OpRoot    = "root"
	OpConvert = "convert"
)

// Evaluate applies operator to num1 and num2.
//
// sqrt is unary and takes num2. log is log base num1 of num2. root is
// num1^(1/num2) and refuses every negative base, odd roots included.
// % is a floored modulo, so the result has the sign of num2.
func Evaluate(num1, num2 float64, operator string) (float64, error) {
	var v float64
	switch operator {
	case OpAdd:
		v = num1 + num2
	case OpSub:
		v = num1 - num2
	case OpMul:
		v = num1 * num2
	case OpDiv:
		if num2 == 0 {
			return 0, domain.NewError(domain.CodeDivisionByZero, "Division by zero")
		}
		v = num1 / num2
	case OpMod:
		if num2 == 0 {
			return 0, domain.NewError(domain.CodeDivisionByZero, "Division by zero")
		}
		v = expr.FlooredMod(num1, num2)
	case OpPow:
		if num1 == 0 && num2 < 0 {
			return 0, domain.NewError(domain.CodeDivisionByZero, "Zero cannot be raised to a negative power")
		}
		v = math.Pow(num1, num2)
	case OpSqrt:
		if num2 < 0 {
			return 0, domain.NewError(domain.CodeDomainError, "Square root of a negative number")
		}
		v = math.Sqrt(num2)
	case OpLog:
		if num1 <= 0 || num2 <= 0 {
			return 0, domain.NewError(domain.CodeDomainError, "Logarithm of non-positive number")
		}
		if num1 == 1 {
			return 0, domain.NewError(domain.CodeDomainError, "Logarithm base cannot be 1")
		}
		v = math.Log(num2) / math.Log(num1)
	case OpRoot:
		if num2 == 0 {
			return 0, domain.NewError(domain.CodeDomainError, "Zeroth root is undefined")
		}
		if num1 < 0 {
			return 0, domain.NewError(domain.CodeDomainError, "Root of a negative number")
		}
		v = math.Pow(num1, 1/num2)
	default:
		return 0, domain.NewError(domain.CodeInvalidOperator, "Invalid operator for basic mode: %q", operator)
	}
	return checkFinite(v)
}

// Convert multiplies amount by rate. It is a placeholder for a real
// exchange-rate lookup.
func Convert(rate, amount float64, operator string) (float64, error) {
	if operator != OpConvert {
		return 0, domain.NewError(domain.CodeInvalidOperator, "Invalid operator for currency mode. Use 'convert'")
	}
	if rate == 0 {
		return 0, domain.NewError(domain.CodeInvalidRate, "Invalid exchange rate")
	}
	return checkFinite(amount * rate)
}

func checkFinite(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.NewError(domain.CodeDomainError, "Result is not a finite real number")
	}
	return v, nil
}
