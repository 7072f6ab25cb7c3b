package domain

// Mode selects the calculation family a request invokes.
type Mode string

const (
	ModeBasic    Mode = "basic"
	ModeCurrency Mode = "currency"
	ModeLoan     Mode = "loan"
	ModeGraph    Mode = "graph"
)

// ParseMode returns the Mode named by s, or false if s names none.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeBasic, ModeCurrency, ModeLoan, ModeGraph:
		return m, true
	}
	return "", false
}

// CalculationRequest is the validated, coerced form of one request body.
// Exactly one of the input pointers is set, matching Mode.
type CalculationRequest struct {
	Mode       Mode
	Arithmetic *ArithmeticInput
	Loan       *LoanInput
	Graph      *GraphInput
}

// ArithmeticInput serves both basic and currency modes. In currency mode
// Num1 is the exchange rate and Num2 the amount.
type ArithmeticInput struct {
	Num1     float64
	Num2     float64
	Operator string
}

type ArithmeticResult struct {
	Result float64 `json:"result"`
}

// GraphInput describes an expression to sample and plot.
type GraphInput struct {
	Expression string
	XMin       float64
	XMax       float64
	Points     int
}

const (
	DefaultXMin   = -10.0
	DefaultXMax   = 10.0
	DefaultPoints = 400
)
