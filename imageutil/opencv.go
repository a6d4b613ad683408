//go:build gocv

package imageutil

import (
	"fmt"

	"gocv.io/x/gocv"
)

func init() {
	fallbackLoader = LoadImageOpenCV
}

// LoadImageOpenCV reads an image through OpenCV. It is registered as the
// fallback loader so formats the Go decoders reject can still be converted.
func LoadImageOpenCV(path string) (*RGBAImage, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		return nil, fmt.Errorf("failed to decode image: opencv could not read %s", path)
	}
	defer mat.Close()

	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return RGBAImageFromImage(img), nil
}
