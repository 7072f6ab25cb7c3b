package http

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"web-calculator/domain"
)

// rawRequest is a decoded request body before any field is interpreted.
type rawRequest map[string]json.RawMessage

var requiredFields = map[domain.Mode][]string{
	domain.ModeBasic:    {"num1", "num2", "operator"},
	domain.ModeCurrency: {"num1", "num2", "operator"},
	domain.ModeLoan:     {"loan_amount", "annual_interest_rate", "loan_term_years"},
	domain.ModeGraph:    {"expression"},
}

// ParseRequest turns a decoded body into a CalculationRequest. It checks
// the mode first, then the presence of every required field, and only then
// coerces values, so a missing field is reported before a malformed one.
func ParseRequest(raw rawRequest) (domain.CalculationRequest, error) {
	mode, err := parseMode(raw)
	if err != nil {
		return domain.CalculationRequest{}, err
	}

	// Campos requeridos antes de cualquier conversión
	var missing []string
	for _, f := range requiredFields[mode] {
		if !raw.has(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return domain.CalculationRequest{}, domain.NewError(domain.CodeMissingArguments,
			"Missing %s arguments (%s)", mode, strings.Join(missing, ", "))
	}

	req := domain.CalculationRequest{Mode: mode}
	switch mode {
	case domain.ModeBasic, domain.ModeCurrency:
		req.Arithmetic, err = parseArithmetic(raw)
	case domain.ModeLoan:
		req.Loan, err = parseLoan(raw)
	case domain.ModeGraph:
		req.Graph, err = parseGraph(raw)
	}
	if err != nil {
		return domain.CalculationRequest{}, err
	}
	return req, nil
}

func parseMode(raw rawRequest) (domain.Mode, error) {
	if !raw.has("mode") {
		return "", domain.NewError(domain.CodeInvalidMode, "Invalid mode specified")
	}
	var s string
	if err := json.Unmarshal(raw["mode"], &s); err != nil {
		return "", domain.NewError(domain.CodeInvalidMode, "Invalid mode specified")
	}
	mode, ok := domain.ParseMode(s)
	if !ok {
		return "", domain.NewError(domain.CodeInvalidMode, "Invalid mode specified: %q", s)
	}
	return mode, nil
}

func parseArithmetic(raw rawRequest) (*domain.ArithmeticInput, error) {
	num1, err := raw.number("num1")
	if err != nil {
		return nil, err
	}
	num2, err := raw.number("num2")
	if err != nil {
		return nil, err
	}
	var op string
	if err := json.Unmarshal(raw["operator"], &op); err != nil {
		return nil, domain.NewError(domain.CodeInvalidOperator, "Invalid input: operator must be a string")
	}
	return &domain.ArithmeticInput{Num1: num1, Num2: num2, Operator: op}, nil
}

func parseLoan(raw rawRequest) (*domain.LoanInput, error) {
	var in domain.LoanInput
	var err error
	if in.Principal, err = raw.number("loan_amount"); err != nil {
		return nil, err
	}
	if in.AnnualRatePercent, err = raw.number("annual_interest_rate"); err != nil {
		return nil, err
	}
	if in.TermYears, err = raw.number("loan_term_years"); err != nil {
		return nil, err
	}
	return &in, nil
}

func parseGraph(raw rawRequest) (*domain.GraphInput, error) {
	in := domain.GraphInput{
		XMin:   domain.DefaultXMin,
		XMax:   domain.DefaultXMax,
		Points: domain.DefaultPoints,
	}
	if err := json.Unmarshal(raw["expression"], &in.Expression); err != nil {
		return nil, domain.NewError(domain.CodeExpressionError, "Invalid input: expression must be a string")
	}
	if strings.TrimSpace(in.Expression) == "" {
		return nil, domain.NewError(domain.CodeMissingArguments, "Missing graph arguments (expression)")
	}

	var err error
	if raw.has("xmin") {
		if in.XMin, err = raw.number("xmin"); err != nil {
			return nil, err
		}
	}
	if raw.has("xmax") {
		if in.XMax, err = raw.number("xmax"); err != nil {
			return nil, err
		}
	}
	if raw.has("points") {
		p, err := raw.number("points")
		if err != nil {
			return nil, err
		}
		if p != math.Trunc(p) || p < 1 || p > math.MaxInt32 {
			return nil, domain.NewError(domain.CodeInvalidNumericInput, "Invalid input: points must be a positive integer")
		}
		in.Points = int(p)
	}
	return &in, nil
}

// has reports whether field is present and not null.
func (r rawRequest) has(field string) bool {
	v, ok := r[field]
	return ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// number accepts a JSON number or a string holding one.
func (r rawRequest) number(field string) (float64, error) {
	v := r[field]

	var f float64
	if err := json.Unmarshal(v, &f); err != nil {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return 0, invalidNumber(field)
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return 0, invalidNumber(field)
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalidNumber(field)
	}
	return f, nil
}

func invalidNumber(field string) error {
	return domain.NewError(domain.CodeInvalidNumericInput, "Invalid input: %s must be a number", field)
}
