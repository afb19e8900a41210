package misc

import (
	"image/color"
	"math"
)

func Clamp(v float64, low float64, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func LerpFloat64(v1 float64, v2 float64, fraction float64) float64 {
	return v1 + (v2-v1)*fraction
}

// LerpUint8 interpolates between two channel values, rounding to the nearest
// representable value.
func LerpUint8(v1 uint8, v2 uint8, fraction float64) uint8 {
	v := LerpFloat64(float64(v1), float64(v2), Clamp(fraction, 0, 1))
	return uint8(math.Round(Clamp(v, 0, 255)))
}

func LerpRGBA(color1 color.RGBA, color2 color.RGBA, fraction float64) color.RGBA {
	return color.RGBA{
		R: LerpUint8(color1.R, color2.R, fraction),
		G: LerpUint8(color1.G, color2.G, fraction),
		B: LerpUint8(color1.B, color2.B, fraction),
		A: 255,
	}
}
