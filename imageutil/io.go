package imageutil

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Loader loads an image from a path.
type Loader func(path string) (*RGBAImage, error)

// fallbackLoader is consulted when none of the registered Go decoders
// recognise the file. It is nil unless built with the gocv tag.
var fallbackLoader Loader

// LoadImage loads an image from the specified path.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP, plus whatever OpenCV reads
// when built with -tags gocv.
func LoadImage(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := DecodeImage(f)
	if errors.Is(err, image.ErrFormat) && fallbackLoader != nil {
		return fallbackLoader(path)
	}
	return img, err
}

// DecodeImage decodes an image from r into an opaque RGBAImage.
func DecodeImage(r io.Reader) (*RGBAImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	rgba := RGBAImageFromImage(img)
	if rgba.Empty() {
		return nil, fmt.Errorf("failed to decode image: %w", errEmpty)
	}
	return rgba, nil
}

var errEmpty = errors.New("image has no pixels")

// SavePNG saves an image as PNG to the specified path, replacing any
// existing file.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}
