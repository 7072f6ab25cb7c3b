package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"web-calculator/domain"
	"web-calculator/service"
)

const maxBodyBytes = 64 << 10

type CalculateHandler struct {
	service *service.CalculatorService
	log     zerolog.Logger
}

func NewCalculateHandler(service *service.CalculatorService, log zerolog.Logger) *CalculateHandler {
	return &CalculateHandler{service: service, log: log}
}

type errorResponse struct {
	Error string           `json:"error"`
	Code  domain.ErrorCode `json:"code,omitempty"`
}

// Calculate decodes the body, picks a calculation by mode and writes
// either JSON or a PNG image.
func (h *CalculateHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var raw rawRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&raw); err != nil || raw == nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		h.writeError(w, r, domain.WrapError(domain.CodeInvalidRequest, err, "Invalid request body: expected a JSON object"))
		return
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		h.writeError(w, r, domain.NewError(domain.CodeInvalidRequest, "Invalid request body: unexpected data after JSON object"))
		return
	}

	req, err := ParseRequest(raw)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// Despachar según el modo
	ctx := r.Context()
	switch req.Mode {
	case domain.ModeBasic:
		result, err := h.service.Basic(*req.Arithmetic)
		h.respond(w, r, result, err)
	case domain.ModeCurrency:
		result, err := h.service.Currency(*req.Arithmetic)
		h.respond(w, r, result, err)
	case domain.ModeLoan:
		result, err := h.service.Loan(ctx, *req.Loan)
		h.respond(w, r, result, err)
	case domain.ModeGraph:
		img, err := h.service.Graph(ctx, *req.Graph)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if _, err := w.Write(img); err != nil {
			h.log.Error().Err(err).Msg("error writing image")
		}
	}
}

func (h *CalculateHandler) respond(w http.ResponseWriter, r *http.Request, result any, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// writeError maps calculation faults to 400 and everything else to 500.
func (h *CalculateHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if ce, ok := domain.AsCalcError(err); ok {
		h.log.Debug().Str("code", string(ce.Code)).Err(err).Msg("calculation rejected")
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: ce.Error(), Code: ce.Code})
		return
	}
	if r.Context().Err() != nil {
		h.log.Warn().Err(err).Msg("request cancelled")
		return
	}
	h.log.Error().Err(err).Str("path", r.URL.Path).Msg("calculation failed")
	h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func (h *CalculateHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	// encode first so a failure does not leave a half-written 200
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Error().Err(err).Msg("error writing response")
	}
}
