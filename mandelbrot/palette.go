package mandelbrot

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"mandelbrot/misc"
)

// Palette maps a normalized escape time t in [0, 1] to a colour. Implementations
// must be deterministic and continuous in t.
type Palette interface {
	Color(t float64) color.RGBA
}

// Polynomial is the classic Bernstein polynomial gradient: dark blue for fast
// escapes through orange to pale yellow near the set boundary.
type Polynomial struct{}

func (Polynomial) Color(t float64) color.RGBA {
	t = misc.Clamp(t, 0, 1)
	u := 1 - t
	return color.RGBA{
		R: channel(9 * u * t * t * t),
		G: channel(15 * u * u * t * t),
		B: channel(8.5 * u * u * u * t),
		A: 255,
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(misc.Clamp(v, 0, 1) * 255))
}

// Gradient interpolates linearly between evenly spaced colour stops.
type Gradient struct {
	Stops []color.RGBA
}

func (g Gradient) Color(t float64) color.RGBA {
	switch len(g.Stops) {
	case 0:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	case 1:
		return g.Stops[0]
	}

	position := misc.Clamp(t, 0, 1) * float64(len(g.Stops)-1)
	i := int(math.Floor(position))
	if i >= len(g.Stops)-1 {
		return g.Stops[len(g.Stops)-1]
	}
	return misc.LerpRGBA(g.Stops[i], g.Stops[i+1], position-float64(i))
}

type generatePaletteSettings struct {
	StartColor   color.RGBA
	EndColor     color.RGBA
	NumberColors int
}

// generateGradient chains colour ramps into a single gradient. Each ramp
// contributes NumberColors stops starting at StartColor; the final EndColor
// closes the gradient.
func generateGradient(ramps ...generatePaletteSettings) Gradient {
	stops := make([]color.RGBA, 0)
	for _, ramp := range ramps {
		for j := 0; j < ramp.NumberColors; j++ {
			fraction := float64(j) / float64(ramp.NumberColors)
			stops = append(stops, misc.LerpRGBA(ramp.StartColor, ramp.EndColor, fraction))
		}
	}
	if len(ramps) > 0 {
		stops = append(stops, ramps[len(ramps)-1].EndColor)
	}
	return Gradient{Stops: stops}
}

const DefaultPalette = "polynomial"

var (
	grayscale = generateGradient(generatePaletteSettings{
		StartColor:   color.RGBA{R: 0, G: 0, B: 0, A: 255},
		EndColor:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		NumberColors: 1,
	})
	fire = generateGradient(
		generatePaletteSettings{StartColor: color.RGBA{R: 16, G: 0, B: 0, A: 255}, EndColor: color.RGBA{R: 200, G: 24, B: 0, A: 255}, NumberColors: 2},
		generatePaletteSettings{StartColor: color.RGBA{R: 200, G: 24, B: 0, A: 255}, EndColor: color.RGBA{R: 255, G: 170, B: 0, A: 255}, NumberColors: 2},
		generatePaletteSettings{StartColor: color.RGBA{R: 255, G: 170, B: 0, A: 255}, EndColor: color.RGBA{R: 255, G: 255, B: 220, A: 255}, NumberColors: 2},
	)
	ocean = generateGradient(
		generatePaletteSettings{StartColor: color.RGBA{R: 0, G: 7, B: 100, A: 255}, EndColor: color.RGBA{R: 32, G: 107, B: 203, A: 255}, NumberColors: 3},
		generatePaletteSettings{StartColor: color.RGBA{R: 32, G: 107, B: 203, A: 255}, EndColor: color.RGBA{R: 237, G: 255, B: 255, A: 255}, NumberColors: 3},
	)
)

var palettes = map[string]Palette{
	"polynomial": Polynomial{},
	"grayscale":  grayscale,
	"fire":       fire,
	"ocean":      ocean,
}

func PaletteByName(name string) (Palette, error) {
	palette, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q, expected one of %v", name, PaletteNames())
	}
	return palette, nil
}

func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
