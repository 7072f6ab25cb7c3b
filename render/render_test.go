package render

import (
	"bytes"
	"context"
	"image/png"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
)

func parabola() plotter.XYs {
	xys := make(plotter.XYs, 21)
	for i := range xys {
		x := float64(i-10) / 2
		xys[i] = plotter.XY{X: x, Y: x * x}
	}
	return xys
}

func TestRenderPNG(t *testing.T) {
	r := NewPlotRenderer()

	out, err := r.RenderPNG(context.Background(), "f(x) = x^2", parabola())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
	assert.Greater(t, img.Bounds().Dy(), 0)
}

func TestRenderPNG_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPlotRenderer().RenderPNG(ctx, "f(x) = x", parabola())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderPNG_Concurrent(t *testing.T) {
	r := NewPlotRenderer()
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.RenderPNG(context.Background(), "f(x) = x^2", parabola())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}
