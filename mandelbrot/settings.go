package mandelbrot

import (
	"fmt"
	"image/color"

	"mandelbrot/raster"
)

const (
	DefaultBoundary      = 4.0
	DefaultMaxIterations = 1000
	DefaultWidth         = 1500
)

type Settings struct {
	Boundary      float64
	EscapeColor   color.RGBA
	Height        int
	MaxIterations int
	Palette       string
	Viewport      Viewport
	Width         int
}

// Verify fills in defaults for unset values and rejects settings that cannot
// be rendered. Height is derived from the viewport when it is not set.
func (s *Settings) Verify() error {
	if s.Boundary <= 0 {
		s.Boundary = DefaultBoundary
	}
	if s.EscapeColor == (color.RGBA{}) {
		s.EscapeColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	}
	if s.MaxIterations <= 0 {
		s.MaxIterations = DefaultMaxIterations
	}
	if s.Palette == "" {
		s.Palette = DefaultPalette
	}
	if _, err := PaletteByName(s.Palette); err != nil {
		return err
	}
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}

	if err := s.Viewport.Verify(); err != nil {
		return err
	}
	if s.Height <= 0 {
		height, err := s.Viewport.PixelHeight(s.Width)
		if err != nil {
			return err
		}
		s.Height = height
	}
	if err := raster.CheckDimensions(s.Width, s.Height); err != nil {
		return err
	}

	return nil
}

func (s *Settings) String() string {
	output := "\nMandelbrot settings\n"
	output += fmt.Sprintf("Boundary: %f\n", s.Boundary)
	output += fmt.Sprintf("Escape Color: %v\n", s.EscapeColor)
	output += fmt.Sprintf("Height: %d\n", s.Height)
	output += fmt.Sprintf("Max Iterations: %d\n", s.MaxIterations)
	output += fmt.Sprintf("Palette: %s\n", s.Palette)
	output += fmt.Sprintf("Viewport: %s\n", s.Viewport.String())
	output += fmt.Sprintf("Width: %d\n", s.Width)
	return output
}
