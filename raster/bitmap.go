package raster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
)

// BitmapRowSize is the on-disk length of one 24-bit row, padded to 4 bytes.
func BitmapRowSize(width int) int {
	return ((width*BytesPerPixel + 3) / 4) * 4
}

func BitmapFileSize(width int, height int) int {
	return FileHeaderSize + InfoHeaderSize + height*BitmapRowSize(width)
}

// EncodeBitmap writes b as an uncompressed 24 bits per pixel bitmap, bottom
// row first.
func EncodeBitmap(w io.Writer, b *Buffer) error {
	if err := bmp.Encode(w, b); err != nil {
		return fmt.Errorf("could not encode bitmap: %w", err)
	}
	return nil
}

// WriteBitmap stores the top-to-bottom BGR buffer bgr in path as a 24-bit
// bitmap. The image is written to a temporary file next to path and renamed
// over it only once it is complete, so a failed write leaves no partial file.
func WriteBitmap(path string, width int, height int, bgr []byte) (err error) {
	buffer, err := Wrap(width, height, bgr)
	if err != nil {
		return err
	}

	outFile, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary bitmap for %q: %w", path, err)
	}
	canRename := false
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary bitmap %q: %w", outFile.Name(), closeErr)
		}
		if canRename && err == nil {
			if renameErr := os.Rename(outFile.Name(), path); renameErr != nil {
				err = fmt.Errorf("could not rename bitmap to %q: %w", path, renameErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = outFile.Chmod(0o644); err != nil {
		return fmt.Errorf("could not set bitmap permissions: %w", err)
	}
	writer := bufio.NewWriter(outFile)
	if err = EncodeBitmap(writer, buffer); err != nil {
		return fmt.Errorf("could not write bitmap %q: %w", path, err)
	}
	if err = writer.Flush(); err != nil {
		return fmt.Errorf("could not flush bitmap %q: %w", path, err)
	}
	if err = outFile.Sync(); err != nil {
		return fmt.Errorf("could not sync bitmap %q: %w", path, err)
	}

	canRename = true
	return nil
}
