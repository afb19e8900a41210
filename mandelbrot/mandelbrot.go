package mandelbrot

import (
	"fmt"
	"image/color"

	"mandelbrot/raster"
)

// Mandelbrot renders rows of the set for one verified Settings value. It holds
// no mutable state, so one value can serve any number of goroutines as long as
// they render distinct rows.
type Mandelbrot struct {
	palette  Palette
	settings Settings
}

func NewMandelbrot(settings Settings) (Mandelbrot, error) {
	if err := settings.Verify(); err != nil {
		return Mandelbrot{}, err
	}
	palette, err := PaletteByName(settings.Palette)
	if err != nil {
		return Mandelbrot{}, err
	}

	return Mandelbrot{
		palette:  palette,
		settings: settings,
	}, nil
}

func (m *Mandelbrot) Settings() Settings {
	return m.settings
}

// EscapeTime iterates z = z*z + c from z = 0 and returns how many iterations
// ran before |z|^2 exceeded the boundary, or MaxIterations if it never did.
func (m *Mandelbrot) EscapeTime(x float64, y float64) int {
	zx, zy, zx2, zy2 := 0.0, 0.0, 0.0, 0.0
	iteration := 0
	for zx2+zy2 <= m.settings.Boundary && iteration < m.settings.MaxIterations {
		zy = 2*zx*zy + y
		zx = zx2 - zy2 + x
		zx2 = zx * zx
		zy2 = zy * zy
		iteration++
	}
	return iteration
}

// ConvertPixelCoordinateToComplexCoordinate maps a pixel linearly onto the
// viewport so that column 0 lands on XMin and column Width-1 on XMax. A one
// pixel wide (or tall) raster maps onto XMin (or YMin).
func (m *Mandelbrot) ConvertPixelCoordinateToComplexCoordinate(column int, row int) (float64, float64) {
	v := m.settings.Viewport

	x := v.XMin
	if m.settings.Width > 1 {
		x = v.XMin + v.Width()*float64(column)/float64(m.settings.Width-1)
	}
	y := v.YMin
	if m.settings.Height > 1 {
		y = v.YMin + v.Height()*float64(row)/float64(m.settings.Height-1)
	}
	return x, y
}

func (m *Mandelbrot) GetColor(iterations int) color.RGBA {
	if iterations >= m.settings.MaxIterations {
		return m.settings.EscapeColor
	}

	t := 0.0
	if m.settings.MaxIterations > 1 {
		t = float64(iterations) / float64(m.settings.MaxIterations-1)
	}
	return m.palette.Color(t)
}

// RenderRow computes every pixel of row and stores them as BGR triples in dst,
// which must be exactly Width*3 bytes long.
func (m *Mandelbrot) RenderRow(row int, dst []byte) {
	if len(dst) != m.settings.Width*raster.BytesPerPixel {
		panic(fmt.Sprintf("mandelbrot: row %d destination is %d bytes, want %d", row, len(dst), m.settings.Width*raster.BytesPerPixel))
	}

	for column := 0; column < m.settings.Width; column++ {
		x, y := m.ConvertPixelCoordinateToComplexCoordinate(column, row)
		raster.PutBGR(dst, column, m.GetColor(m.EscapeTime(x, y)))
	}
}

// Row renders row into a freshly allocated slice.
func (m *Mandelbrot) Row(row int) []byte {
	dst := make([]byte, m.settings.Width*raster.BytesPerPixel)
	m.RenderRow(row, dst)
	return dst
}
