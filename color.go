package img2ascii

import (
	"context"
	"fmt"
	"runtime"

	"github.com/wbrown/img2ascii/imageutil"
	"golang.org/x/sync/errgroup"
)

// ColorMode selects how pixel colors are written as escape sequences.
type ColorMode int

const (
	// TrueColor writes raw 24-bit channel values (SGR 38;2 / 48;2).
	TrueColor ColorMode = iota
	// Color256 quantizes into the 6x6x6 cube of the 256-color palette
	// (SGR 38;5 / 48;5).
	Color256
)

func (m ColorMode) String() string {
	switch m {
	case TrueColor:
		return "truecolor"
	case Color256:
		return "256"
	default:
		return fmt.Sprintf("ColorMode(%d)", int(m))
	}
}

// cubeStep is the channel span mapped onto one of the six cube levels.
const cubeStep = 51

// cubeLevels are the xterm channel intensities of the 6x6x6 cube.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// Code256 returns the 256-color palette index for c, always in [16, 231].
func Code256(c imageutil.RGB) int {
	r := int(c.R) / cubeStep
	g := int(c.G) / cubeStep
	b := int(c.B) / cubeStep
	return 16 + 36*r + 6*g + b
}

// Cube256ToRGB returns the color a terminal shows for a cube index in
// [16, 231]. ok is false for indices outside the cube.
func Cube256ToRGB(code int) (imageutil.RGB, bool) {
	if code < 16 || code > 231 {
		return imageutil.RGB{}, false
	}
	n := code - 16
	return imageutil.RGB{
		R: cubeLevels[n/36],
		G: cubeLevels[(n/6)%6],
		B: cubeLevels[n%6],
	}, true
}

// Encode256 returns the 256-color escape sequence for c. With background
// set the code targets the cell background instead of the glyph.
func Encode256(c imageutil.RGB, background bool) string {
	prefix := 38
	if background {
		prefix = 48
	}
	return fmt.Sprintf("%s[%d;5;%dm", ESC, prefix, Code256(c))
}

// EncodeTrueColor returns the 24-bit foreground escape sequence for fg.
func EncodeTrueColor(fg imageutil.RGB) string {
	return fmt.Sprintf("%s[38;2;%d;%d;%dm", ESC, fg.R, fg.G, fg.B)
}

// EncodeTrueColorWithBackground returns a single 24-bit escape sequence
// setting both the foreground and background colors.
func EncodeTrueColorWithBackground(fg, bg imageutil.RGB) string {
	return fmt.Sprintf("%s[38;2;%d;%d;%d;48;2;%d;%d;%dm",
		ESC, fg.R, fg.G, fg.B, bg.R, bg.G, bg.B)
}

// Color is the encoded color of one cell. FG and BG hold the colors the
// terminal is expected to show, so callers can render the cell without
// parsing Code.
type Color struct {
	Code  string
	FG    imageutil.RGB
	BG    imageutil.RGB
	HasFG bool
	HasBG bool
}

// Encoder turns pixels into escape sequences.
type Encoder struct {
	Mode ColorMode
	// Background enables background colors: the neighbor mean in
	// TrueColor mode, the pixel itself in Color256 mode.
	Background bool
	// Workers bounds the number of rows encoded concurrently. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int
}

// EncodePixel encodes the pixel at (x, y). The whole image is needed
// because background colors depend on the neighbors.
func (e Encoder) EncodePixel(img *imageutil.RGBAImage, x, y int) Color {
	var bg imageutil.RGB
	if e.blursBackground() {
		bg, _ = imageutil.NeighborMean(img, x, y)
	}
	return e.encode(img.GetRGB(x, y), bg)
}

// blursBackground reports whether backgrounds are neighbor means.
func (e Encoder) blursBackground() bool {
	return e.Mode == TrueColor && e.Background
}

// encode builds the Color of pixel px. bg is the neighbor mean and is only
// read in TrueColor mode with Background set.
func (e Encoder) encode(px, bg imageutil.RGB) Color {
	if e.Mode == Color256 {
		shown, _ := Cube256ToRGB(Code256(px))
		if e.Background {
			return Color{Code: Encode256(px, true), BG: shown, HasBG: true}
		}
		return Color{Code: Encode256(px, false), FG: shown, HasFG: true}
	}

	if !e.Background {
		return Color{Code: EncodeTrueColor(px), FG: px, HasFG: true}
	}
	return Color{
		Code:  EncodeTrueColorWithBackground(px, bg),
		FG:    px,
		BG:    bg,
		HasFG: true,
		HasBG: true,
	}
}

// Encode encodes every pixel of img in row-major order. Rows are encoded
// concurrently; the result does not depend on the worker count.
func (e Encoder) Encode(ctx context.Context, img *imageutil.RGBAImage) ([]Color, error) {
	width, height := img.Width(), img.Height()
	colors := make([]Color, width*height)

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var blurred *imageutil.RGBAImage
	if e.blursBackground() {
		blurred = imageutil.NeighborBlur(img)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := 0; y < height; y++ {
		y := y // per-iteration copy (go directive is below 1.22)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := colors[y*width : (y+1)*width]
			for x := range row {
				var bg imageutil.RGB
				if blurred != nil {
					bg = blurred.GetRGB(x, y)
				}
				row[x] = e.encode(img.GetRGB(x, y), bg)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return colors, nil
}
