package grid

import "image"
import "io"
import "os"
import "strings"

import _ "image/gif"
import _ "image/jpeg"
import _ "image/png"

import _ "golang.org/x/image/bmp"
import "golang.org/x/image/draw"

import "github.com/neurlang/sonify"

// Options controls how a source image is resampled.
type Options struct {
	// Scaler resamples the grayscale image, draw.CatmullRom when nil.
	Scaler draw.Scaler
}

// ScalerByName maps "catmullrom", "bilinear", "approxbilinear" and "nearest" to scalers.
func ScalerByName(name string) (draw.Scaler, bool) {
	switch strings.ToLower(name) {
	case "", "catmullrom", "bicubic":
		return draw.CatmullRom, true
	case "bilinear":
		return draw.BiLinear, true
	case "approxbilinear":
		return draw.ApproxBiLinear, true
	case "nearest", "nearestneighbor":
		return draw.NearestNeighbor, true
	}
	return nil, false
}

// Size returns the effective grid edge for a maximum image size and a density factor.
func Size(maxSize int, density float64) int {
	if density <= 0 {
		return 1
	}
	return max(1, int(float64(maxSize)/density))
}

// Load decodes the image file at path into a width×height grid.
func Load(path string, width, height int) (*Grid, error) {
	return Options{}.Load(path, width, height)
}

// Decode reads an encoded image from r into a width×height grid.
func Decode(r io.Reader, width, height int) (*Grid, error) {
	return Options{}.Decode(r, width, height, "reader")
}

// FromImage samples an in-memory image, such as a camera frame, into a width×height grid.
func FromImage(img image.Image, width, height int) (*Grid, error) {
	return Options{}.FromImage(img, width, height, "image")
}

// Open decodes the image file at path without resampling it.
func Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &sonify.LoadError{Source: path, Err: err}
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &sonify.LoadError{Source: path, Err: err}
	}
	return img, nil
}

// Load decodes the image file at path into a width×height grid.
func (o Options) Load(path string, width, height int) (*Grid, error) {
	if err := checkSize(path, width, height); err != nil {
		return nil, err
	}
	img, err := Open(path)
	if err != nil {
		return nil, err
	}
	return o.FromImage(img, width, height, path)
}

// Decode reads an encoded image from r; source names it in errors.
func (o Options) Decode(r io.Reader, width, height int, source string) (*Grid, error) {
	if err := checkSize(source, width, height); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &sonify.LoadError{Source: source, Err: err}
	}
	return o.FromImage(img, width, height, source)
}

// FromImage converts img to luminance, resamples it and maps it into [0, 1].
func (o Options) FromImage(img image.Image, width, height int, source string) (*Grid, error) {
	if err := checkSize(source, width, height); err != nil {
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return nil, &sonify.LoadError{Source: source, Err: errEmptyImage}
	}

	// grayscale first, then resample the single channel
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)

	scaled := gray
	if b.Dx() != width || b.Dy() != height {
		scaler := o.Scaler
		if scaler == nil {
			scaler = draw.CatmullRom
		}
		scaled = image.NewGray(image.Rect(0, 0, width, height))
		scaler.Scale(scaled, scaled.Bounds(), gray, gray.Bounds(), draw.Src, nil)
	}

	g := &Grid{rows: height, cols: width, data: make([]float64, width*height)}
	for y := 0; y < height; y++ {
		row := scaled.Pix[y*scaled.Stride : y*scaled.Stride+width]
		for x, v := range row {
			g.data[y*width+x] = float64(v) / 255.0
		}
	}
	return g, nil
}

func checkSize(source string, width, height int) error {
	if width <= 0 || height <= 0 {
		return &sonify.LoadError{Source: source, Err: errBadSize}
	}
	return nil
}
