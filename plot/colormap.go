package plot

import "image/color"
import "math"

// inferno samples the matplotlib inferno map at nine evenly spaced stops.
var inferno = [...]color.RGBA{
	{0, 0, 4, 255},
	{31, 12, 72, 255},
	{85, 15, 109, 255},
	{136, 34, 106, 255},
	{186, 54, 85, 255},
	{227, 89, 51, 255},
	{249, 140, 10, 255},
	{249, 201, 50, 255},
	{252, 255, 164, 255},
}

// Inferno maps v in [0, 1] onto the inferno colour map, clamping outside values.
func Inferno(v float64) color.RGBA {
	if math.IsNaN(v) || v <= 0 {
		return inferno[0]
	}
	if v >= 1 {
		return inferno[len(inferno)-1]
	}
	pos := v * float64(len(inferno)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := inferno[i], inferno[i+1]
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + frac*(float64(y)-float64(x))))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}
