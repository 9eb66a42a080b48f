package plot

import "errors"
import "image"
import "image/color"
import "image/png"
import "io"

import "golang.org/x/image/draw"

// Options sizes a rendered plot.
type Options struct {
	Width        int
	Height       int
	MaxFrequency float64 // upper edge of the spectrogram frequency axis, Nyquist when 0
	Title        string
}

// DefaultOptions returns an 800×400 plot with no title.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 400}
}

const (
	marginLeft   = 64
	marginRight  = 84
	marginTop    = 28
	marginBottom = 44
)

var (
	errTooSmall = errors.New("plot: image too small for axes")
	errNoData   = errors.New("plot: nothing to draw")

	background = color.RGBA{255, 255, 255, 255}
	foreground = color.RGBA{0, 0, 0, 255}
	trace      = color.RGBA{31, 119, 180, 255}
	gridline   = color.RGBA{200, 200, 200, 255}
)

// frame is the drawable plot area inside the axes.
type frame struct {
	img  *image.RGBA
	area image.Rectangle
}

func newFrame(o Options) (*frame, error) {
	w, h := o.Width, o.Height
	if w <= marginLeft+marginRight+8 || h <= marginTop+marginBottom+8 {
		return nil, errTooSmall
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	area := image.Rect(marginLeft, marginTop, w-marginRight, h-marginBottom)
	return &frame{img: img, area: area}, nil
}

func (f *frame) axes() {
	a := f.area
	for x := a.Min.X - 1; x <= a.Max.X; x++ {
		f.img.SetRGBA(x, a.Max.Y, foreground)
	}
	for y := a.Min.Y; y <= a.Max.Y; y++ {
		f.img.SetRGBA(a.Min.X-1, y, foreground)
	}
}

// xTicks marks n+1 evenly spaced ticks under the area, labelled by label(fraction).
func (f *frame) xTicks(n int, label func(float64) string, t *typesetter) {
	a := f.area
	for i := 0; i <= n; i++ {
		frac := float64(i) / float64(n)
		x := a.Min.X + int(frac*float64(a.Dx()-1))
		for y := a.Max.Y; y < a.Max.Y+4; y++ {
			f.img.SetRGBA(x, y, foreground)
		}
		t.centered(f.img, label(frac), x, a.Max.Y+16)
	}
}

// yTicks marks n+1 ticks left of the area, fraction 0 at the bottom.
func (f *frame) yTicks(n int, label func(float64) string, t *typesetter) {
	a := f.area
	for i := 0; i <= n; i++ {
		frac := float64(i) / float64(n)
		y := a.Max.Y - 1 - int(frac*float64(a.Dy()-1))
		for x := a.Min.X - 5; x < a.Min.X-1; x++ {
			f.img.SetRGBA(x, y, foreground)
		}
		t.right(f.img, label(frac), a.Min.X-7, y+4)
	}
}

func (f *frame) encode(w io.Writer) error {
	return png.Encode(w, f.img)
}
