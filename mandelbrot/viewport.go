package mandelbrot

import (
	"errors"
	"fmt"
	"math"

	"mandelbrot/raster"
)

var (
	ErrInvertedBounds    = errors.New("invalid rectangle coordinates")
	ErrNonFiniteBound    = errors.New("bound is not a finite number")
	ErrNonPositiveHeight = errors.New("computed height is non-positive")
)

// Viewport is the rectangle of the complex plane being rendered.
type Viewport struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

func NewViewport(xMin float64, xMax float64, yMin float64, yMax float64) (Viewport, error) {
	v := Viewport{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	return v, v.Verify()
}

func (v Viewport) Verify() error {
	bounds := []struct {
		name  string
		value float64
	}{
		{"x_min", v.XMin}, {"x_max", v.XMax}, {"y_min", v.YMin}, {"y_max", v.YMax},
	}
	for _, b := range bounds {
		if math.IsNaN(b.value) || math.IsInf(b.value, 0) {
			return fmt.Errorf("%s %v: %w", b.name, b.value, ErrNonFiniteBound)
		}
	}
	if !(v.XMin < v.XMax) {
		return fmt.Errorf("x_min %v must be less than x_max %v: %w", v.XMin, v.XMax, ErrInvertedBounds)
	}
	if !(v.YMin < v.YMax) {
		return fmt.Errorf("y_min %v must be less than y_max %v: %w", v.YMin, v.YMax, ErrInvertedBounds)
	}
	return nil
}

func (v Viewport) Width() float64 {
	return v.XMax - v.XMin
}

func (v Viewport) Height() float64 {
	return v.YMax - v.YMin
}

// PixelHeight derives the raster height that keeps pixels close to square for
// an image width pixels wide.
func (v Viewport) PixelHeight(width int) (int, error) {
	ratio := v.Height() / v.Width()
	h := math.Round(float64(width) * ratio)
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, fmt.Errorf("aspect ratio of %s is not finite: %w", v.String(), ErrNonPositiveHeight)
	}
	if h <= 0 {
		return 0, fmt.Errorf("%s at width %d gives height %v: %w", v.String(), width, h, ErrNonPositiveHeight)
	}
	if h > math.MaxInt32 {
		return 0, fmt.Errorf("%s at width %d gives height %v: %w", v.String(), width, h, raster.ErrTooLarge)
	}
	return int(h), nil
}

func (v Viewport) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g]", v.XMin, v.XMax, v.YMin, v.YMax)
}
