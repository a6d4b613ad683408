package img2ascii

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/wbrown/img2ascii/imageutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PreviewOptions controls how a frame is drawn into an image.
type PreviewOptions struct {
	// Face draws the glyphs. Nil means basicfont.Face7x13.
	Face font.Face
	// Background fills cells without a background color.
	Background imageutil.RGB
	// Foreground draws glyphs of cells without a foreground color.
	Foreground imageutil.RGB
}

// DefaultPreviewOptions draws light gray on black with the built-in face.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{
		Face:       basicfont.Face7x13,
		Foreground: imageutil.RGB{R: 192, G: 192, B: 192},
	}
}

// ParseHexColor parses "#rrggbb" or "#rgb".
func ParseHexColor(s string) (imageutil.RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return imageutil.RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.Clamped().RGB255()
	return imageutil.RGB{R: r, G: g, B: b}, nil
}

// LoadFontFace loads a TrueType font from path at the given point size.
func LoadFontFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}

	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}

	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// cellSize returns the pixel size of one character cell and the baseline
// offset from the top of the cell.
func cellSize(face font.Face) (width, height, ascent int) {
	metrics := face.Metrics()
	width = font.MeasureString(face, "M").Ceil()
	height = metrics.Height.Ceil()
	ascent = metrics.Ascent.Ceil()
	return max(width, 1), max(height, 1), ascent
}

// RenderPreview draws the frame as it would appear in a terminal.
func RenderPreview(f *Frame, opts PreviewOptions) *image.RGBA {
	face := opts.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	cw, ch, ascent := cellSize(face)

	img := image.NewRGBA(image.Rect(0, 0, f.Width*cw, f.Height*ch))
	drawer := &font.Drawer{Dst: img, Face: face}

	for y := 0; y < f.Height; y++ {
		for x, cell := range f.Row(y) {
			bg, fg := opts.Background, opts.Foreground
			if cell.HasBG {
				bg = cell.BG
			}
			if cell.HasFG {
				fg = cell.FG
			}

			rect := image.Rect(x*cw, y*ch, (x+1)*cw, (y+1)*ch)
			draw.Draw(img, rect, image.NewUniform(bg.ToColor()), image.Point{}, draw.Src)

			drawer.Src = image.NewUniform(fg.ToColor())
			drawer.Dot = fixed.P(x*cw, y*ch+ascent)
			drawer.DrawString(string(cell.Glyph))
		}
	}

	return img
}

// SavePreview renders the frame and writes it to path as PNG.
func (f *Frame) SavePreview(path string, opts PreviewOptions) error {
	if err := imageutil.SavePNG(RenderPreview(f, opts), path); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
