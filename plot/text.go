package plot

import "image"
import "sync"

import "github.com/golang/freetype"
import "github.com/golang/freetype/truetype"
import "golang.org/x/image/font"
import "golang.org/x/image/font/gofont/goregular"
import "golang.org/x/image/math/fixed"

const fontSize = 11

var parseFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

// typesetter draws short labels onto RGBA images.
type typesetter struct {
	font *truetype.Font
	face font.Face
}

func newTypesetter() (*typesetter, error) {
	f, err := parseFont()
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: fontSize, DPI: 72, Hinting: font.HintingNone})
	return &typesetter{font: f, face: face}, nil
}

func (t *typesetter) width(s string) int {
	return font.MeasureString(t.face, s).Ceil()
}

func (t *typesetter) draw(dst *image.RGBA, s string, x, y int) {
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(t.font)
	c.SetFontSize(fontSize)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.NewUniform(foreground))
	c.SetHinting(font.HintingNone)
	_, _ = c.DrawString(s, fixed.P(x, y))
}

// left draws s with its baseline starting at (x, y).
func (t *typesetter) left(dst *image.RGBA, s string, x, y int) {
	t.draw(dst, s, x, y)
}

// right draws s so that it ends at x.
func (t *typesetter) right(dst *image.RGBA, s string, x, y int) {
	t.draw(dst, s, x-t.width(s), y)
}

// centered draws s centred on x.
func (t *typesetter) centered(dst *image.RGBA, s string, x, y int) {
	t.draw(dst, s, x-t.width(s)/2, y)
}
