package raster

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestNewBuffer_InvalidDimensions(t *testing.T) {
	tests := []struct {
		width, height int
	}{
		{0, 10},
		{10, 0},
		{-1, 5},
		{1 << 32, 1},
		{70000, 70000},
	}
	for _, tt := range tests {
		if _, err := NewBuffer(tt.width, tt.height); err == nil {
			t.Errorf("NewBuffer(%d, %d) error = nil, want error", tt.width, tt.height)
		}
	}
}

func TestCheckDimensions(t *testing.T) {
	tests := []struct {
		width, height int
		wantErr       error
	}{
		{1, 1, nil},
		{4, 80000, nil},
		{100000, 10, nil},
		{70000, 70000, ErrTooLarge},
		{1, 1 << 32, ErrTooLarge},
	}
	for _, tt := range tests {
		err := CheckDimensions(tt.width, tt.height)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("CheckDimensions(%d, %d) error = %v, want %v", tt.width, tt.height, err, tt.wantErr)
		}
	}

	// The largest height that still keeps the file size within 32 bits
	rowSize := BitmapRowSize(1)
	limit := (math.MaxUint32 - FileHeaderSize - InfoHeaderSize) / rowSize
	if err := CheckDimensions(1, limit); err != nil {
		t.Errorf("CheckDimensions(1, %d) error = %v, want nil", limit, err)
	}
	if err := CheckDimensions(1, limit+1); !errors.Is(err, ErrTooLarge) {
		t.Errorf("CheckDimensions(1, %d) error = %v, want %v", limit+1, err, ErrTooLarge)
	}
}

func TestBuffer_RowsAreDisjoint(t *testing.T) {
	b, err := NewBuffer(7, 5)
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < b.Height; y++ {
		row := b.Row(y)
		if len(row) != b.Stride() || cap(row) != b.Stride() {
			t.Errorf("Row(%d) len/cap = %d/%d, want %d", y, len(row), cap(row), b.Stride())
		}
		// Row y must start exactly where row y-1 ends
		if &row[0] != &b.Pix[y*b.Stride()] {
			t.Errorf("Row(%d) does not start at byte %d of Pix", y, y*b.Stride())
		}
	}

	// Appending to a row must reallocate instead of touching the next row
	row := b.Row(0)
	_ = append(row, 0xFF)
	if next := b.Row(1); next[0] != 0 {
		t.Errorf("append to Row(0) wrote into Row(1): %v", next[0])
	}
}

func TestBuffer_AtReadsBGR(t *testing.T) {
	b, err := NewBuffer(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	PutBGR(b.Row(1), 1, want)

	if got := b.At(1, 1); got != want {
		t.Errorf("At(1, 1) = %v, want %v", got, want)
	}
	if got := b.Row(1)[3:6]; !bytes.Equal(got, []byte{30, 20, 10}) {
		t.Errorf("Row(1)[3:6] = %v, want BGR [30 20 10]", got)
	}
	if got := b.At(5, 5); got != (color.RGBA{}) {
		t.Errorf("At(5, 5) = %v, want zero color", got)
	}
}

func TestWrap_SizeMismatch(t *testing.T) {
	_, err := Wrap(3, 3, make([]byte, 10))
	if !errors.Is(err, ErrBufferSize) {
		t.Errorf("Wrap() error = %v, want %v", err, ErrBufferSize)
	}
}

func TestBitmapFileSize(t *testing.T) {
	tests := []struct {
		width, height, rowSize, fileSize int
	}{
		{1, 1, 4, 58},
		{2, 1, 8, 62},
		{3, 2, 12, 78},
		{4, 1, 12, 66},
		{1500, 1500, 4500, 54 + 1500*4500},
	}
	for _, tt := range tests {
		if got := BitmapRowSize(tt.width); got != tt.rowSize {
			t.Errorf("BitmapRowSize(%d) = %d, want %d", tt.width, got, tt.rowSize)
		}
		if got := BitmapFileSize(tt.width, tt.height); got != tt.fileSize {
			t.Errorf("BitmapFileSize(%d, %d) = %d, want %d", tt.width, tt.height, got, tt.fileSize)
		}
	}
}

func TestWriteBitmap(t *testing.T) {
	for _, width := range []int{1, 2, 3, 4, 5} {
		height := 3
		bgr := make([]byte, width*height*BytesPerPixel)
		for i := range bgr {
			bgr[i] = byte(i * 7)
		}

		path := filepath.Join(t.TempDir(), "out.bmp")
		if err := WriteBitmap(path, width, height, bgr); err != nil {
			t.Fatalf("WriteBitmap(width=%d) error = %v", width, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(data) != BitmapFileSize(width, height) {
			t.Errorf("width %d: file size = %d, want %d", width, len(data), BitmapFileSize(width, height))
		}
		if data[0] != 'B' || data[1] != 'M' {
			t.Errorf("width %d: signature = %q, want \"BM\"", width, data[:2])
		}
		if got := binary.LittleEndian.Uint32(data[2:6]); int(got) != len(data) {
			t.Errorf("width %d: declared file size = %d, want %d", width, got, len(data))
		}
		if got := binary.LittleEndian.Uint32(data[10:14]); got != FileHeaderSize+InfoHeaderSize {
			t.Errorf("width %d: pixel offset = %d, want 54", width, got)
		}
		if got := binary.LittleEndian.Uint32(data[14:18]); got != InfoHeaderSize {
			t.Errorf("width %d: info header size = %d, want 40", width, got)
		}
		if got := binary.LittleEndian.Uint32(data[18:22]); int(got) != width {
			t.Errorf("declared width = %d, want %d", got, width)
		}
		if got := binary.LittleEndian.Uint32(data[22:26]); int(got) != height {
			t.Errorf("declared height = %d, want %d", got, height)
		}
		if got := binary.LittleEndian.Uint16(data[28:30]); got != 24 {
			t.Errorf("bits per pixel = %d, want 24", got)
		}

		// The first stored row is the bottom row of the buffer
		rowBytes := width * BytesPerPixel
		bottom := bgr[(height-1)*rowBytes:]
		if !bytes.Equal(data[54:54+rowBytes], bottom) {
			t.Errorf("width %d: first stored row = %v, want bottom row %v", width, data[54:54+rowBytes], bottom)
		}
		for _, pad := range data[54+rowBytes : 54+BitmapRowSize(width)] {
			if pad != 0 {
				t.Errorf("width %d: row padding contains %d, want 0", width, pad)
			}
		}

		img, err := bmp.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("bmp.Decode() error = %v", err)
		}
		src, _ := Wrap(width, height, bgr)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				r1, g1, b1, _ := img.At(x, y).RGBA()
				r2, g2, b2, _ := src.At(x, y).RGBA()
				if r1 != r2 || g1 != g2 || b1 != b2 {
					t.Errorf("width %d: pixel (%d, %d) decoded as %v, want %v", width, x, y, img.At(x, y), src.At(x, y))
				}
			}
		}
	}
}

func TestWriteBitmap_Unwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.bmp")
	if err := WriteBitmap(path, 1, 1, make([]byte, 3)); err == nil {
		t.Error("WriteBitmap() into a missing directory error = nil, want error")
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("WriteBitmap() created a file despite failing")
	}
}

func TestWriteBitmap_SizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")
	err := WriteBitmap(path, 2, 2, make([]byte, 3))
	if !errors.Is(err, ErrBufferSize) {
		t.Errorf("WriteBitmap() error = %v, want %v", err, ErrBufferSize)
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("WriteBitmap() created a file for a mismatched buffer")
	}
}

func TestWriteBitmap_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	// A directory at the destination makes the final rename fail after the
	// image has been fully encoded.
	path := filepath.Join(dir, "taken.bmp")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := WriteBitmap(path, 3, 2, make([]byte, 18)); err == nil {
		t.Fatal("WriteBitmap() onto a directory error = nil, want error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if entry.Name() != "taken.bmp" {
			t.Errorf("WriteBitmap() left %q behind", entry.Name())
		}
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		t.Errorf("destination directory was disturbed (stat error = %v)", err)
	}
}

func TestWriteBitmap_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")
	if err := os.WriteFile(path, []byte("old contents"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteBitmap(path, 2, 1, make([]byte, 6)); err != nil {
		t.Fatalf("WriteBitmap() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := info.Size(), int64(BitmapFileSize(2, 1)); got != want {
		t.Errorf("file size = %d, want %d", got, want)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("file mode = %v, want 0644", perm)
	}
}
