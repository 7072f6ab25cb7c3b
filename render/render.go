// Package render draws sampled x/y series as PNG line plots.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Renderer turns an x/y series into an encoded image.
type Renderer interface {
	RenderPNG(ctx context.Context, title string, data plotter.XYer) ([]byte, error)
}

const (
	DefaultWidth  = 6.4 * vg.Inch
	DefaultHeight = 4.8 * vg.Inch
)

// PlotRenderer renders with gonum/plot. Every call draws on its own plot
// and canvas, so a single PlotRenderer may be shared between goroutines.
type PlotRenderer struct {
	Width  vg.Length
	Height vg.Length
	Color  color.Color
}

func NewPlotRenderer() *PlotRenderer {
	return &PlotRenderer{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Color:  color.RGBA{R: 31, G: 119, B: 180, A: 255},
	}
}

// RenderPNG draws data as a line with axis labels "x" and "f(x)", a grid,
// and the given title.
func (r *PlotRenderer) RenderPNG(ctx context.Context, title string, data plotter.XYer) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "f(x)"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(data)
	if err != nil {
		return nil, fmt.Errorf("build line: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = r.Color
	p.Add(line)

	canvas := vgimg.New(r.Width, r.Height)
	p.Draw(draw.New(canvas))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
