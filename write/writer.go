package write

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

type WriteSettings struct {
	DisplayWriters []Writer // Where the iterations are written. Nil disables all output

	// DisplayInterval is the minimum time between two value rows of a
	// Displayer. Zero displays every iteration.
	DisplayInterval time.Duration
}

func DefaultWriteSettings() *WriteSettings {
	return &WriteSettings{
		DisplayWriters: []Writer{{os.Stdout, Displayer}},
	}
}

type Type int

const (
	// Logger saves every iteration as a csv row for postprocessing.
	Logger Type = iota

	// Displayer is for a human following the search. Columns are aligned
	// and the headings are repeated every so often.
	Displayer
)

type Writer struct {
	io.Writer
	T Type
}

type Value struct {
	Value   interface{}
	Heading string
}

// DataAdder contributes columns to every row.
type DataAdder interface {
	AppendWriteData([]*Value) []*Value
}

// rowsPerHeading is the number of value rows a Displayer writes before
// repeating the headings.
const rowsPerHeading = 30

// Display writes one row per iteration with the values of its data adders.
// The headings are collected once in Init and must not change afterwards.
type Display struct {
	adders []DataAdder
	data   []*Value

	headings []string
	row      []string
	widths   []int

	writers  []Writer
	interval time.Duration

	hasDisplayer bool
	hasLogger    bool

	rowsSinceHeading int
	lastRow          time.Time
}

func NewDisplay() *Display {
	return &Display{rowsSinceHeading: rowsPerHeading}
}

// AddDataAdder adds a DataAdder whose values are written every iteration.
// It should only be called before Init.
func (d *Display) AddDataAdder(adders ...DataAdder) {
	d.adders = append(d.adders, adders...)
}

func (d *Display) collect() {
	d.data = d.data[:0]
	for _, a := range d.adders {
		d.data = a.AppendWriteData(d.data)
	}
}

// Init prepares the writers for a new search. A Logger receives the csv
// headings; a Displayer receives header on its own line.
func (d *Display) Init(w *WriteSettings, header string) error {
	d.writers = w.DisplayWriters
	d.interval = w.DisplayInterval
	d.rowsSinceHeading = rowsPerHeading
	d.lastRow = time.Time{}
	d.hasDisplayer = false
	d.hasLogger = false
	if len(d.writers) == 0 {
		return nil
	}

	d.collect()
	d.headings = d.headings[:0]
	for _, v := range d.data {
		d.headings = append(d.headings, v.Heading)
	}

	for _, w := range d.writers {
		var err error
		switch w.T {
		case Logger:
			d.hasLogger = true
			err = writeCSV(w, d.headings)
		case Displayer:
			d.hasDisplayer = true
			_, err = fmt.Fprintln(w, header)
		default:
			panic("write: unknown writer type")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Iterate writes the row of the iteration that just finished.
func (d *Display) Iterate() error {
	var showRow, showHeadings bool
	if d.hasDisplayer && (d.interval <= 0 || time.Since(d.lastRow) > d.interval) {
		showRow = true
		d.lastRow = time.Now()
		if d.rowsSinceHeading >= rowsPerHeading {
			showHeadings = true
			d.rowsSinceHeading = 0
		}
		d.rowsSinceHeading++
	}
	if !d.hasLogger && !showRow {
		return nil
	}

	d.collect()
	d.row = d.row[:0]
	for _, v := range d.data {
		d.row = append(d.row, format(v.Value))
	}
	if showHeadings {
		d.widths = d.widths[:0]
		for i, s := range d.row {
			d.widths = append(d.widths, max(len(s), len(d.headings[i])))
		}
	}

	for _, w := range d.writers {
		var err error
		switch w.T {
		case Logger:
			err = writeCSV(w, d.row)
		case Displayer:
			if showHeadings {
				if _, err = io.WriteString(w, "\n"); err != nil {
					return err
				}
				if err = writeAligned(w, d.headings, d.widths); err != nil {
					return err
				}
			}
			if showRow {
				err = writeAligned(w, d.row, d.widths)
			}
		default:
			panic("write: unknown writer type")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Finish writes footer to every Displayer.
func (d *Display) Finish(footer string) error {
	if !d.hasDisplayer {
		return nil
	}
	for _, w := range d.writers {
		if w.T != Displayer {
			continue
		}
		if _, err := fmt.Fprintln(w, footer); err != nil {
			return err
		}
	}
	return nil
}

// writeAligned pads every cell to its column width. Cells wider than the
// width computed at the last headings are written unpadded.
func writeAligned(w io.Writer, cells []string, widths []int) error {
	var b strings.Builder
	for i, c := range cells {
		b.WriteString(c)
		if i < len(widths) && widths[i] > len(c) {
			b.WriteString(strings.Repeat(" ", widths[i]-len(c)))
		}
		b.WriteByte('\t')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func writeCSV(w io.Writer, cells []string) error {
	_, err := io.WriteString(w, strings.Join(cells, ",")+"\n")
	return err
}

func format(v interface{}) string {
	switch v := v.(type) {
	case int:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%e", v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
