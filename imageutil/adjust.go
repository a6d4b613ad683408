package imageutil

import (
	"image"

	"github.com/disintegration/gift"
)

// Adjustments describes tone changes applied before resizing. The zero value
// leaves the image unchanged.
type Adjustments struct {
	// Brightness in percent, -100 to 100.
	Brightness float64
	// Contrast in percent, -100 to 100.
	Contrast float64
	// Gamma correction; 0 and 1 both mean unchanged.
	Gamma float64
}

// IsZero reports whether the adjustments would change nothing.
func (a Adjustments) IsZero() bool {
	return a.Brightness == 0 && a.Contrast == 0 && (a.Gamma == 0 || a.Gamma == 1)
}

func (a Adjustments) filters() []gift.Filter {
	var filters []gift.Filter
	if a.Brightness != 0 {
		filters = append(filters, gift.Brightness(float32(a.Brightness)))
	}
	if a.Contrast != 0 {
		filters = append(filters, gift.Contrast(float32(a.Contrast)))
	}
	if a.Gamma != 0 && a.Gamma != 1 {
		filters = append(filters, gift.Gamma(float32(a.Gamma)))
	}
	return filters
}

// Adjust returns a new image with the adjustments applied.
func Adjust(img *RGBAImage, adj Adjustments) *RGBAImage {
	if adj.IsZero() {
		return img.Clone()
	}

	g := gift.New(adj.filters()...)
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img.RGBA)
	return &RGBAImage{RGBA: dst}
}
