package service

import (
	"context"
	"errors"
	"iter"
	"math"

	"web-calculator/domain"
	"web-calculator/expr"
)

// Series is a sampled expression: paired x and y values in ascending x
// order. It satisfies gonum's plotter.XYer and can be read any number of
// times.
type Series struct {
	xs []float64
	ys []float64
}

func (s *Series) Len() int { return len(s.xs) }

func (s *Series) XY(i int) (float64, float64) { return s.xs[i], s.ys[i] }

// Ys returns a copy of the sampled y values.
func (s *Series) Ys() []float64 { return append([]float64(nil), s.ys...) }

// All yields each (x, y) pair in order.
func (s *Series) All() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for i := range s.xs {
			if !yield(s.xs[i], s.ys[i]) {
				return
			}
		}
	}
}

// Grid returns count evenly spaced values over [lo, hi]. The last value is
// exactly hi; a single point is lo.
func Grid(lo, hi float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	xs := make([]float64, count)
	if count == 1 {
		xs[0] = lo
		return xs
	}
	last := float64(count - 1)
	step := (hi - lo) / last
	for i := range xs {
		if math.IsInf(step, 0) {
			// hi-lo overflows; interpolate so every x stays within [lo, hi]
			t := float64(i) / last
			xs[i] = lo*(1-t) + hi*t
		} else {
			xs[i] = lo + float64(i)*step
		}
	}
	xs[count-1] = hi
	return xs
}

// Sample parses expression and evaluates it at count grid points over
// [xMin, xMax]. A failure at any point fails the whole sample.
func Sample(ctx context.Context, expression string, xMin, xMax float64, count int) (*Series, error) {
	// Validar dominio
	if math.IsNaN(xMin) || math.IsInf(xMin, 0) || math.IsNaN(xMax) || math.IsInf(xMax, 0) {
		return nil, domain.NewError(domain.CodeInvalidInput, "xmin and xmax must be finite")
	}
	if xMin >= xMax {
		return nil, domain.NewError(domain.CodeInvalidInput, "xmin must be less than xmax")
	}
	if math.IsInf(xMax-xMin, 0) {
		return nil, domain.NewError(domain.CodeInvalidInput, "xmax - xmin is too wide to plot")
	}
	if count < 1 || count > MaxGraphPoints {
		return nil, domain.NewError(domain.CodeInvalidInput, "points must be between 1 and %d", MaxGraphPoints)
	}

	e, err := expr.Parse(expression)
	if err != nil {
		return nil, domain.WrapError(domain.CodeExpressionError, err, "Invalid expression")
	}

	// Evaluar en cada punto de la malla
	xs := Grid(xMin, xMax, count)
	ys := make([]float64, count)
	lowY, highY := math.Inf(1), math.Inf(-1)
	for i, x := range xs {
		if i%sampleCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					return nil, domain.WrapError(domain.CodeExpressionError, err, "Expression evaluation timed out")
				}
				return nil, err
			}
		}
		y, err := e.Eval(x)
		if err != nil {
			return nil, domain.WrapError(domain.CodeExpressionError, err, "Error evaluating expression at x=%g", x)
		}
		ys[i] = y
		lowY = math.Min(lowY, y)
		highY = math.Max(highY, y)
	}
	if math.IsInf(highY-lowY, 0) {
		return nil, domain.NewError(domain.CodeExpressionError, "Expression values span too wide a range to plot")
	}
	return &Series{xs: xs, ys: ys}, nil
}
