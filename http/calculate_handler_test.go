package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-calculator/domain"
	"web-calculator/render"
	"web-calculator/repository"
	"web-calculator/service"
)

func newTestHandler() *CalculateHandler {
	svc := service.NewCalculatorService(
		repository.NewMemoryCache(time.Minute),
		render.NewPlotRenderer(),
		time.Second,
		zerolog.Nop(),
	)
	return NewCalculateHandler(svc, zerolog.Nop())
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCalculateHandler_Basic(t *testing.T) {
	h := http.HandlerFunc(newTestHandler().Calculate)

	w := post(t, h, `{"mode":"basic","num1":2,"num2":3,"operator":"+"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"result":5}`, w.Body.String())
}

func TestCalculateHandler_NumericStrings(t *testing.T) {
	h := http.HandlerFunc(newTestHandler().Calculate)

	w := post(t, h, `{"mode":"basic","num1":" 2.5 ","num2":"4","operator":"*"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":10}`, w.Body.String())
}

func TestCalculateHandler_Currency(t *testing.T) {
	h := http.HandlerFunc(newTestHandler().Calculate)

	w := post(t, h, `{"mode":"currency","num1":0.9,"num2":100,"operator":"convert"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":90}`, w.Body.String())

	w = post(t, h, `{"mode":"currency","num1":0,"num2":100,"operator":"convert"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.CodeInvalidRate, decodeError(t, w).Code)
}

func TestCalculateHandler_Loan(t *testing.T) {
	h := http.HandlerFunc(newTestHandler().Calculate)

	w := post(t, h, `{"mode":"loan","loan_amount":1200,"annual_interest_rate":0,"loan_term_years":1}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"monthlyPayment":100,"totalRepayment":1200}`, w.Body.String())
}

func TestCalculateHandler_Graph(t *testing.T) {
	h := http.HandlerFunc(newTestHandler().Calculate)

	w := post(t, h, `{"mode":"graph","expression":"x^2","xmin":-2,"xmax":2}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}

func TestCalculateHandler_Errors(t *testing.T) {
	h := http.HandlerFunc(newTestHandler().Calculate)

	cases := []struct {
		name string
		body string
		code domain.ErrorCode
	}{
		{"no mode", `{"num1":1,"num2":2,"operator":"+"}`, domain.CodeInvalidMode},
		{"unknown mode", `{"mode":"matrix"}`, domain.CodeInvalidMode},
		{"mode not string", `{"mode":3}`, domain.CodeInvalidMode},
		{"missing num2", `{"mode":"basic","num1":1,"operator":"+"}`, domain.CodeMissingArguments},
		{"null counts as missing", `{"mode":"basic","num1":1,"num2":null,"operator":"+"}`, domain.CodeMissingArguments},
		{"missing before coercion", `{"mode":"basic","num1":"abc","operator":"+"}`, domain.CodeMissingArguments},
		{"missing loan term", `{"mode":"loan","loan_amount":1,"annual_interest_rate":1}`, domain.CodeMissingArguments},
		{"missing expression", `{"mode":"graph"}`, domain.CodeMissingArguments},
		{"blank expression", `{"mode":"graph","expression":"  "}`, domain.CodeMissingArguments},
		{"non numeric", `{"mode":"basic","num1":"abc","num2":2,"operator":"+"}`, domain.CodeInvalidNumericInput},
		{"bool is not a number", `{"mode":"basic","num1":true,"num2":2,"operator":"+"}`, domain.CodeInvalidNumericInput},
		{"nan string", `{"mode":"basic","num1":"NaN","num2":2,"operator":"+"}`, domain.CodeInvalidNumericInput},
		{"loan non numeric", `{"mode":"loan","loan_amount":"lots","annual_interest_rate":1,"loan_term_years":1}`, domain.CodeInvalidNumericInput},
		{"fractional points", `{"mode":"graph","expression":"x","points":2.5}`, domain.CodeInvalidNumericInput},
		{"operator not string", `{"mode":"basic","num1":1,"num2":2,"operator":1}`, domain.CodeInvalidOperator},
		{"unknown operator", `{"mode":"basic","num1":1,"num2":2,"operator":"&"}`, domain.CodeInvalidOperator},
		{"currency wrong operator", `{"mode":"currency","num1":1,"num2":2,"operator":"+"}`, domain.CodeInvalidOperator},
		{"division by zero", `{"mode":"basic","num1":10,"num2":0,"operator":"/"}`, domain.CodeDivisionByZero},
		{"negative root", `{"mode":"basic","num1":-8,"num2":3,"operator":"root"}`, domain.CodeDomainError},
		{"negative loan", `{"mode":"loan","loan_amount":-100,"annual_interest_rate":5,"loan_term_years":1}`, domain.CodeInvalidInput},
		{"degenerate loan", `{"mode":"loan","loan_amount":1000,"annual_interest_rate":1e-15,"loan_term_years":1}`, domain.CodeComputationError},
		{"log over non-positive domain", `{"mode":"graph","expression":"log(x)"}`, domain.CodeExpressionError},
		{"code injection", `{"mode":"graph","expression":"__import__('os').system('id')"}`, domain.CodeExpressionError},
		{"expression not string", `{"mode":"graph","expression":42}`, domain.CodeExpressionError},
		{"domain wider than float range", `{"mode":"graph","expression":"x","xmin":-1.7e308,"xmax":1.7e308}`, domain.CodeInvalidInput},
		{"constant over wide domain", `{"mode":"graph","expression":"1","xmin":-1.7e308,"xmax":1.7e308}`, domain.CodeInvalidInput},
		{"trailing data", `{"mode":"basic","num1":1,"num2":2,"operator":"+"} garbage`, domain.CodeInvalidRequest},
		{"two objects", `{"mode":"basic","num1":1,"num2":2,"operator":"+"}{"mode":"loan"}`, domain.CodeInvalidRequest},
		{"reversed range", `{"mode":"graph","expression":"x","xmin":5,"xmax":-5}`, domain.CodeInvalidInput},
		{"not an object", `[1,2,3]`, domain.CodeInvalidRequest},
		{"null body", `null`, domain.CodeInvalidRequest},
		{"broken json", `{invalid-json}`, domain.CodeInvalidRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := post(t, h, c.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, c.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestCalculateHandler_TrailingWhitespace(t *testing.T) {
	h := http.HandlerFunc(newTestHandler().Calculate)

	w := post(t, h, "{\"mode\":\"basic\",\"num1\":1,\"num2\":2,\"operator\":\"+\"}\n  ")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":3}`, w.Body.String())
}

func TestCalculateHandler_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/calculate", nil)
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestCalculateHandler_BodyTooLarge(t *testing.T) {
	h := http.HandlerFunc(newTestHandler().Calculate)

	body := `{"mode":"graph","expression":"` + strings.Repeat("x+", maxBodyBytes) + `x"}`
	w := post(t, h, body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
