package grid

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/neurlang/sonify"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows int
		cols int
		data []float64
	}{
		{"zero rows", 0, 1, nil},
		{"zero columns", 1, 0, nil},
		{"short data", 2, 2, []float64{0, 0, 0}},
		{"above one", 1, 1, []float64{1.5}},
		{"negative", 1, 1, []float64{-0.1}},
		{"nan", 1, 1, []float64{math.NaN()}},
		{"inf", 1, 1, []float64{math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(tt.rows, tt.cols, tt.data); !errors.Is(err, sonify.ErrInvalidParameters) {
				t.Errorf("New() error = %v, want ErrInvalidParameters", err)
			}
		})
	}
}

func TestNewCopiesData(t *testing.T) {
	t.Parallel()

	data := []float64{0.25, 0.5}
	g, err := New(1, 2, data)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	data[0] = 1
	if got := g.At(0, 0); got != 0.25 {
		t.Errorf("At(0, 0) = %v after caller mutation, want 0.25", got)
	}
}

func TestFromRowsAndColumn(t *testing.T) {
	t.Parallel()

	g, err := FromRows([][]float64{{1, 0}, {0, 1}, {0.5, 0.25}})
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}
	if g.Rows() != 3 || g.Cols() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", g.Rows(), g.Cols())
	}

	col := g.Column(1, nil)
	want := []float64{0, 1, 0.25}
	for i := range want {
		if col[i] != want[i] {
			t.Errorf("Column(1)[%d] = %v, want %v", i, col[i], want[i])
		}
	}

	if _, err := FromRows([][]float64{{1, 0}, {1}}); !errors.Is(err, sonify.ErrInvalidParameters) {
		t.Errorf("FromRows(ragged) error = %v, want ErrInvalidParameters", err)
	}
}

func verticalGradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		v := uint8(255 - y*255/(h-1))
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func TestFromImageKeepsOrientation(t *testing.T) {
	t.Parallel()

	g, err := FromImage(verticalGradient(4, 4), 4, 4)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if got := g.At(0, 0); got != 1 {
		t.Errorf("top-left = %v, want 1", got)
	}
	if got := g.At(3, 3); got != 0 {
		t.Errorf("bottom-right = %v, want 0", got)
	}
}

func TestFromImageResamples(t *testing.T) {
	t.Parallel()

	src := image.NewUniform(color.RGBA{255, 255, 255, 255})
	img := image.NewRGBA(image.Rect(0, 0, 37, 23))
	for y := 0; y < 23; y++ {
		for x := 0; x < 37; x++ {
			img.Set(x, y, src.C)
		}
	}

	for _, name := range []string{"catmullrom", "bilinear", "approxbilinear", "nearest"} {
		scaler, ok := ScalerByName(name)
		if !ok {
			t.Fatalf("ScalerByName(%q) not found", name)
		}
		g, err := Options{Scaler: scaler}.FromImage(img, 8, 5, "white")
		if err != nil {
			t.Fatalf("%s: FromImage() error = %v", name, err)
		}
		if g.Rows() != 5 || g.Cols() != 8 {
			t.Fatalf("%s: size = %dx%d, want 5x8", name, g.Rows(), g.Cols())
		}
		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				if v := g.At(r, c); v != 1 {
					t.Fatalf("%s: At(%d, %d) = %v, want 1", name, r, c, v)
				}
			}
		}
	}

	if _, ok := ScalerByName("lanczos"); ok {
		t.Error("ScalerByName(lanczos) found, want not found")
	}
}

func TestDecodeFormats(t *testing.T) {
	t.Parallel()

	img := verticalGradient(16, 16)
	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, img) },
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, img, &jpeg.Options{Quality: 100}) },
		"gif":  func(b *bytes.Buffer) error { return gif.Encode(b, img, nil) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, img) },
	}

	for name, enc := range encoders {
		var buf bytes.Buffer
		if err := enc(&buf); err != nil {
			t.Fatalf("%s encode: %v", name, err)
		}
		g, err := Decode(&buf, 8, 8)
		if err != nil {
			t.Fatalf("%s: Decode() error = %v", name, err)
		}
		if top, bottom := g.At(0, 4), g.At(7, 4); top <= bottom {
			t.Errorf("%s: top = %v, bottom = %v, want top brighter", name, top, bottom)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	if _, err := Decode(strings.NewReader("not an image"), 8, 8); !errors.Is(err, sonify.ErrLoad) {
		t.Errorf("Decode(garbage) error = %v, want ErrLoad", err)
	}
	if _, err := FromImage(verticalGradient(4, 4), 0, 4); !errors.Is(err, sonify.ErrLoad) {
		t.Errorf("FromImage(width 0) error = %v, want ErrLoad", err)
	}
	if _, err := FromImage(image.NewGray(image.Rect(0, 0, 0, 0)), 4, 4); !errors.Is(err, sonify.ErrLoad) {
		t.Errorf("FromImage(empty) error = %v, want ErrLoad", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png"), 4, 4); !errors.Is(err, sonify.ErrLoad) {
		t.Errorf("Load(missing) error = %v, want ErrLoad", err)
	}
}

func TestLoadAndWritePNG(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, verticalGradient(4, 4)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	g, err := Load(path, 4, 4)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	img, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := img.Bounds().Size(); got != image.Pt(4, 4) {
		t.Errorf("Open() size = %v, want 4x4", got)
	}

	var buf bytes.Buffer
	if err := g.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	back, err := Decode(&buf, 4, 4)
	if err != nil {
		t.Fatalf("Decode(WritePNG) error = %v", err)
	}
	for r := 0; r < 4; r++ {
		if math.Abs(back.At(r, 0)-g.At(r, 0)) > 1.0/255 {
			t.Errorf("row %d = %v, want %v", r, back.At(r, 0), g.At(r, 0))
		}
	}
}

func TestSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		max     int
		density float64
		want    int
	}{
		{256, 1, 256},
		{256, 2, 128},
		{64, 10, 6},
		{64, 0.1, 640},
		{1, 10, 1},
		{256, 0, 1},
	}
	for _, tt := range tests {
		if got := Size(tt.max, tt.density); got != tt.want {
			t.Errorf("Size(%d, %v) = %d, want %d", tt.max, tt.density, got, tt.want)
		}
	}
}
