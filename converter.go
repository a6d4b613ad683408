// Package img2ascii converts raster images into colored ASCII art for
// terminals. An image is resized to a character width, each pixel's
// luminance picks a glyph from Ramp, and each pixel's color becomes an ANSI
// escape sequence in either 24-bit or 256-color form.
package img2ascii

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/wbrown/img2ascii/imageutil"
)

const (
	// DefaultWidth is the default output width in characters.
	DefaultWidth = 100
	// DefaultAspectRatio compensates for character cells being taller
	// than they are wide.
	DefaultAspectRatio = 0.55
)

// Converter holds the configuration of a conversion. Build one with
// NewConverter; the zero value is not valid.
type Converter struct {
	Width         int
	AspectRatio   float64
	Mode          ColorMode
	Background    bool
	Interpolation imageutil.Interpolation
	Adjustments   imageutil.Adjustments
	Workers       int
	Compress      bool

	logger *slog.Logger
}

// Option is a functional option for configuring a Converter.
type Option func(*Converter)

// NewConverter creates a Converter with the given options.
// Defaults: Width=100, AspectRatio=0.55, Mode=TrueColor, no background,
// Catmull-Rom resampling, Workers=0 (GOMAXPROCS).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		Width:         DefaultWidth,
		AspectRatio:   DefaultAspectRatio,
		Mode:          TrueColor,
		Interpolation: imageutil.InterpolationCatmullRom,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithWidth sets the output width in characters.
func WithWidth(width int) Option {
	return func(c *Converter) {
		c.Width = width
	}
}

// WithAspectRatio sets the vertical correction factor.
func WithAspectRatio(ratio float64) Option {
	return func(c *Converter) {
		c.AspectRatio = ratio
	}
}

// WithColorMode selects 24-bit or 256-color output.
func WithColorMode(mode ColorMode) Option {
	return func(c *Converter) {
		c.Mode = mode
	}
}

// WithBackground enables background colors.
func WithBackground(enabled bool) Option {
	return func(c *Converter) {
		c.Background = enabled
	}
}

// WithInterpolation sets the resampling kernel.
func WithInterpolation(interp imageutil.Interpolation) Option {
	return func(c *Converter) {
		c.Interpolation = interp
	}
}

// WithAdjustments sets tone adjustments applied before resizing.
func WithAdjustments(adj imageutil.Adjustments) Option {
	return func(c *Converter) {
		c.Adjustments = adj
	}
}

// WithWorkers bounds the number of rows encoded concurrently.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		c.Workers = n
	}
}

// WithCompression drops repeated color codes within a row.
func WithCompression(enabled bool) Option {
	return func(c *Converter) {
		c.Compress = enabled
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Validate checks the configuration.
func (c *Converter) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWidth, c.Width)
	}
	if !validAspectRatio(c.AspectRatio) {
		return fmt.Errorf("%w: got %v", ErrInvalidAspectRatio, c.AspectRatio)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers)
	}
	return nil
}

func validAspectRatio(a float64) bool {
	return a > 0 && !math.IsInf(a, 0) && !math.IsNaN(a)
}

// TargetSize returns the dimensions an srcWidth x srcHeight image is
// resized to: exactly width columns, and
// round(srcHeight/srcWidth * width * aspect) rows, at least one.
func TargetSize(srcWidth, srcHeight, width int, aspect float64) (int, int, error) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return 0, 0, ErrEmptyImage
	}
	if width <= 0 {
		return 0, 0, fmt.Errorf("%w: got %d", ErrInvalidWidth, width)
	}
	if !validAspectRatio(aspect) {
		return 0, 0, fmt.Errorf("%w: got %v", ErrInvalidAspectRatio, aspect)
	}

	ratio := float64(srcHeight) / float64(srcWidth)
	height := int(math.Round(ratio * float64(width) * aspect))
	return width, max(height, 1), nil
}

// ConvertFile loads the image at path and converts it. Load failures wrap
// ErrDecode.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*Frame, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	c.logger.Debug("image loaded",
		"path", path,
		"width", img.Width(),
		"height", img.Height(),
		"elapsed", time.Since(start))

	return c.Convert(ctx, img)
}

// Convert converts img into a Frame. img is not modified.
func (c *Converter) Convert(ctx context.Context, img image.Image) (*Frame, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// Pixel access in imageutil is origin based, so sub-images are copied.
	src, ok := img.(*imageutil.RGBAImage)
	if !ok {
		src = imageutil.RGBAImageFromImage(img)
	} else if src.RGBA != nil && src.Bounds().Min != (image.Point{}) {
		src = src.Clone()
	}
	if src.Empty() {
		return nil, ErrEmptyImage
	}

	width, height, err := TargetSize(src.Width(), src.Height(), c.Width, c.AspectRatio)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if !c.Adjustments.IsZero() {
		src = imageutil.Adjust(src, c.Adjustments)
	}
	resized := imageutil.Resize(src, width, height, c.Interpolation)
	c.logger.Debug("image resized",
		"from", src.Bounds().Size(),
		"to", resized.Bounds().Size(),
		"interpolation", c.Interpolation)

	glyphs := MapGlyphs(imageutil.ToGrayscale(resized))

	enc := Encoder{Mode: c.Mode, Background: c.Background, Workers: c.Workers}
	colors, err := enc.Encode(ctx, resized)
	if err != nil {
		return nil, err
	}

	frame, err := NewFrame(width, height, glyphs, colors)
	if err != nil {
		return nil, err
	}
	frame.Compress = c.Compress

	c.logger.Debug("frame encoded",
		"mode", c.Mode,
		"background", c.Background,
		"cells", len(frame.Cells),
		"elapsed", time.Since(start))
	return frame, nil
}
