package charting

import (
	"fmt"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"math"
)

// Uint64Source is satisfied by the gonum prng generators.
type Uint64Source interface {
	Uint64() uint64
}

// Palette is the base color of a chart. The sample series is drawn pale on
// a solid border and the population series very pale on a pale border.
type Palette struct {
	R, G, B uint8
}

func (p Palette) rgba(alpha string) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", p.R, p.G, p.B, alpha)
}

func (p Palette) Color() string    { return p.rgba("1.0") }
func (p Palette) Pale() string     { return p.rgba("0.5") }
func (p Palette) VeryPale() string { return p.rgba("0.15") }

func (p Palette) Drawing(alpha float64) drawing.Color {
	return drawing.Color{R: p.R, G: p.G, B: p.B, A: uint8(math.Round(alpha * 255))}
}

func unit(src Uint64Source) float64 {
	return float64(src.Uint64()>>11) / (1 << 53)
}

func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	scale := func(f float64) uint8 { return uint8(math.Round((f + m) * 255)) }
	return scale(r), scale(g), scale(b)
}

// RandomPalette picks a saturated dark color.
func RandomPalette(src Uint64Source) Palette {
	h := unit(src) * 360
	s := 0.55 + unit(src)*0.45
	v := 0.35 + unit(src)*0.3
	r, g, b := hsvToRGB(h, s, v)
	return Palette{R: r, G: g, B: b}
}
