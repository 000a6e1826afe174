// Package chart draws the iterates of a root search.
package chart

import (
	"errors"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/btracey/newton/univariate"
)

const (
	width  = 6 * vg.Inch
	height = 4 * vg.Inch
)

// ErrEmptyTrace is returned when there is nothing to draw.
var ErrEmptyTrace = errors.New("chart: trace is empty")

// New returns a plot of the iterates in tr against the iteration index.
func New(tr univariate.Trace, title string) (*plot.Plot, error) {
	if tr.Len() == 0 {
		return nil, ErrEmptyTrace
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iter"
	p.Y.Label.Text = "X value"
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(tr)
	if err != nil {
		return nil, err
	}
	p.Add(line, points)
	p.Legend.Add("x_0", line, points)
	return p, nil
}

// Save draws tr to path. The image format follows the file extension
// (png, svg, pdf, ...).
func Save(path string, tr univariate.Trace, title string) error {
	p, err := New(tr, title)
	if err != nil {
		return err
	}
	return p.Save(width, height, path)
}
