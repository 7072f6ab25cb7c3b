package service

import (
	"math"

	"github.com/shopspring/decimal"

	"web-calculator/domain"
)

// roundTo2Decimals rounds half away from zero. It goes through decimal so
// that values such as 1.005 round the way they read.
func roundTo2Decimals(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// Amortize computes the equal monthly payment for a fixed-rate loan and
// the total repaid over the term. Both figures are rounded to cents,
// each from its unrounded value.
func Amortize(principal, annualRatePercent, termYears float64) (domain.LoanResult, error) {
	// Validar entrada
	if principal < 0 || annualRatePercent < 0 || termYears <= 0 {
		return domain.LoanResult{}, domain.NewError(domain.CodeInvalidInput,
			"Loan amount, interest rate, and term must be positive numbers")
	}
	if principal > MaxLoanAmount {
		return domain.LoanResult{}, domain.NewError(domain.CodeInvalidInput,
			"Loan amount exceeds the maximum of %.2f", MaxLoanAmount)
	}
	if annualRatePercent > MaxInterestRate {
		return domain.LoanResult{}, domain.NewError(domain.CodeInvalidInput,
			"Interest rate exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	if termYears > MaxTermYears {
		return domain.LoanResult{}, domain.NewError(domain.CodeInvalidInput,
			"Loan term exceeds the maximum of %.0f years", MaxTermYears)
	}

	// Tasa mensual y número de pagos
	monthlyRate := (annualRatePercent / 100) / 12
	n := termYears * 12

	var payment float64
	if monthlyRate == 0 {
		payment = principal / n
	} else {
		growth := math.Pow(1+monthlyRate, n)
		denominator := growth - 1
		if denominator == 0 {
			return domain.LoanResult{}, domain.NewError(domain.CodeComputationError,
				"Cannot calculate payment with provided details")
		}
		payment = principal * (monthlyRate * growth / denominator)
	}
	total := payment * n

	if math.IsNaN(total) || math.IsInf(total, 0) {
		return domain.LoanResult{}, domain.NewError(domain.CodeComputationError,
			"Cannot calculate payment with provided details")
	}

	return domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(payment),
		TotalRepayment: roundTo2Decimals(total),
	}, nil
}
