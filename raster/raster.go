package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

const BytesPerPixel = 3

var (
	ErrBufferSize = errors.New("buffer size does not match dimensions")
	ErrTooLarge   = errors.New("image does not fit in a bitmap file")
)

// Buffer holds a width x height image as tightly packed BGR triples, top row
// first. Concurrent writers must each own distinct rows; Row hands out slices
// that cannot reach outside their row.
type Buffer struct {
	Pix    []byte
	Width  int
	Height int
}

func NewBuffer(width int, height int) (*Buffer, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}
	return &Buffer{
		Pix:    make([]byte, width*height*BytesPerPixel),
		Width:  width,
		Height: height,
	}, nil
}

// Wrap views an existing BGR byte slice as a Buffer without copying it.
func Wrap(width int, height int, bgr []byte) (*Buffer, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}
	if len(bgr) != width*height*BytesPerPixel {
		return nil, fmt.Errorf("%w: have %d bytes, want %d for %dx%d", ErrBufferSize, len(bgr), width*height*BytesPerPixel, width, height)
	}
	return &Buffer{Pix: bgr, Width: width, Height: height}, nil
}

// CheckDimensions reports whether a width x height image can be held in
// memory and stored as a 24-bit bitmap, whose file size field is 32 bits.
func CheckDimensions(width int, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	if uint64(width) > math.MaxUint32 || uint64(height) > math.MaxUint32 {
		return fmt.Errorf("%dx%d: %w", width, height, ErrTooLarge)
	}

	rowSize := (uint64(width)*BytesPerPixel + 3) / 4 * 4
	if rowSize > (math.MaxUint32-FileHeaderSize-InfoHeaderSize)/uint64(height) {
		return fmt.Errorf("%dx%d: %w", width, height, ErrTooLarge)
	}
	if uint64(width)*uint64(height)*BytesPerPixel > uint64(math.MaxInt) {
		return fmt.Errorf("%dx%d does not fit in memory: %w", width, height, ErrTooLarge)
	}
	return nil
}

func (b *Buffer) Stride() int {
	return b.Width * BytesPerPixel
}

// Row returns the bytes of row y. The slice's capacity ends at the row
// boundary so appending to it can never spill into the next row.
func (b *Buffer) Row(y int) []byte {
	start := y * b.Stride()
	end := start + b.Stride()
	return b.Pix[start:end:end]
}

func (b *Buffer) ColorModel() color.Model {
	return color.RGBAModel
}

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b *Buffer) At(x int, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(b.Bounds())) {
		return color.RGBA{}
	}
	i := y*b.Stride() + x*BytesPerPixel
	return color.RGBA{R: b.Pix[i+2], G: b.Pix[i+1], B: b.Pix[i], A: 255}
}

// PutBGR stores c as the pixel at column x of a row slice returned by Row.
func PutBGR(row []byte, x int, c color.RGBA) {
	i := x * BytesPerPixel
	row[i] = c.B
	row[i+1] = c.G
	row[i+2] = c.R
}
