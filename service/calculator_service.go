package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"web-calculator/domain"
	"web-calculator/render"
	"web-calculator/repository"
)

// CalculatorService runs one calculation per request. Loan and graph
// results are pure functions of their inputs and go through the cache.
type CalculatorService struct {
	cache       repository.CacheRepository
	renderer    render.Renderer
	evalTimeout time.Duration
	log         zerolog.Logger
}

// NewCalculatorService creates a CalculatorService. cache may be nil.
func NewCalculatorService(
	cache repository.CacheRepository,
	renderer render.Renderer,
	evalTimeout time.Duration,
	log zerolog.Logger,
) *CalculatorService {
	if evalTimeout <= 0 {
		evalTimeout = DefaultEvalTimeout
	}
	return &CalculatorService{
		cache:       cache,
		renderer:    renderer,
		evalTimeout: evalTimeout,
		log:         log,
	}
}

func (s *CalculatorService) Basic(input domain.ArithmeticInput) (domain.ArithmeticResult, error) {
	v, err := Evaluate(input.Num1, input.Num2, input.Operator)
	if err != nil {
		return domain.ArithmeticResult{}, err
	}
	return domain.ArithmeticResult{Result: v}, nil
}

func (s *CalculatorService) Currency(input domain.ArithmeticInput) (domain.ArithmeticResult, error) {
	v, err := Convert(input.Num1, input.Num2, input.Operator)
	if err != nil {
		return domain.ArithmeticResult{}, err
	}
	return domain.ArithmeticResult{Result: v}, nil
}

// Loan amortizes input, reusing a cached result when one exists.
func (s *CalculatorService) Loan(ctx context.Context, input domain.LoanInput) (domain.LoanResult, error) {
	key := repository.Key(string(domain.ModeLoan),
		formatFloat(input.Principal),
		formatFloat(input.AnnualRatePercent),
		formatFloat(input.TermYears),
	)

	// Buscar primero en caché
	if cached, ok := s.cacheGet(ctx, key); ok {
		var result domain.LoanResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
		s.log.Warn().Str("key", key).Msg("discarding undecodable cached loan result")
	}

	result, err := Amortize(input.Principal, input.AnnualRatePercent, input.TermYears)
	if err != nil {
		return domain.LoanResult{}, err
	}

	// Guardar el resultado (no crítico si falla)
	if b, err := json.Marshal(result); err == nil {
		s.cacheSet(ctx, key, string(b))
	}
	return result, nil
}

// Graph samples the expression and renders it as a PNG.
func (s *CalculatorService) Graph(ctx context.Context, input domain.GraphInput) ([]byte, error) {
	key := repository.Key(string(domain.ModeGraph),
		input.Expression,
		formatFloat(input.XMin),
		formatFloat(input.XMax),
		strconv.Itoa(input.Points),
	)

	if cached, ok := s.cacheGet(ctx, key); ok {
		return []byte(cached), nil
	}

	evalCtx, cancel := context.WithTimeout(ctx, s.evalTimeout)
	defer cancel()

	series, err := Sample(evalCtx, input.Expression, input.XMin, input.XMax, input.Points)
	if err != nil {
		return nil, err
	}

	img, err := s.renderer.RenderPNG(ctx, "f(x) = "+input.Expression, series)
	if err != nil {
		return nil, fmt.Errorf("render graph: %w", err)
	}

	s.cacheSet(ctx, key, string(img))
	return img, nil
}

// cacheGet and cacheSet never fail a request; cache errors are logged.
func (s *CalculatorService) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	val, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
		return "", false
	}
	return val, ok
}

func (s *CalculatorService) cacheSet(ctx context.Context, key, value string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache store failed")
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
