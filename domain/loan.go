package domain

// LoanInput holds the three loan-mode fields after numeric coercion.
type LoanInput struct {
	Principal         float64
	AnnualRatePercent float64
	TermYears         float64
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalRepayment float64 `json:"totalRepayment"`
}
