package imageio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by Save for file extensions other than .ppm and .png
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format identifies an output file format
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// FormatForPath picks the output format from the file extension
func FormatForPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q (want .ppm or .png)", ErrUnsupportedFormat, ext)
	}
}

// Save writes the image to path, choosing PPM or PNG by extension. Missing
// parent directories are created.
func Save(path string, img *Image) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if format == FormatPNG {
		return SavePNG(path, img)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WritePPM(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Encode writes the image to w in the given format
func Encode(w io.Writer, img *Image, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPNG:
		return WritePNG(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/x-portable-pixmap"
}
