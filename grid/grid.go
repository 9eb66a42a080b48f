package grid

import "image"
import "image/png"
import "io"
import "math"

import "github.com/neurlang/sonify"

// Grid is an immutable rows×cols field of samples in [0, 1], stored row-major.
type Grid struct {
	rows int
	cols int
	data []float64
}

// New validates data and returns a grid holding a copy of it.
func New(rows, cols int, data []float64) (*Grid, error) {
	if rows < 1 {
		return nil, sonify.Invalid("rows", float64(rows), "must be at least 1")
	}
	if cols < 1 {
		return nil, sonify.Invalid("columns", float64(cols), "must be at least 1")
	}
	if len(data) != rows*cols {
		return nil, sonify.Invalid("samples", float64(len(data)), "must equal rows*columns")
	}
	for _, v := range data {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, sonify.Invalid("sample", v, "must be within [0, 1]")
		}
	}
	g := &Grid{rows: rows, cols: cols, data: make([]float64, len(data))}
	copy(g.data, data)
	return g, nil
}

// FromRows builds a grid from a slice of equally long rows, top row first.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, sonify.Invalid("rows", 0, "must be at least 1")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for _, row := range rows {
		if len(row) != cols {
			return nil, sonify.Invalid("columns", float64(len(row)), "rows must have equal length")
		}
		data = append(data, row...)
	}
	return New(len(rows), cols, data)
}

// Rows is the number of rows, each mapped to one frequency.
func (g *Grid) Rows() int { return g.rows }

// Cols is the number of columns, each mapped to one time slice.
func (g *Grid) Cols() int { return g.cols }

// At returns the sample at row r (0 = top) and column c.
func (g *Grid) At(r, c int) float64 {
	return g.data[r*g.cols+c]
}

// Column copies column c, top to bottom, into dst and returns it.
func (g *Grid) Column(c int, dst []float64) []float64 {
	if cap(dst) < g.rows {
		dst = make([]float64, g.rows)
	}
	dst = dst[:g.rows]
	for r := range dst {
		dst[r] = g.data[r*g.cols+c]
	}
	return dst
}

// Image renders the grid back to 8-bit grayscale.
func (g *Grid) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.cols, g.rows))
	for i, v := range g.data {
		img.Pix[(i/g.cols)*img.Stride+i%g.cols] = uint8(math.Round(v * 255))
	}
	return img
}

// WritePNG encodes the grid as a grayscale PNG.
func (g *Grid) WritePNG(w io.Writer) error {
	return png.Encode(w, g.Image())
}
