package img2ascii

import (
	"fmt"
	"os"
	"strings"
)

// Cell is one composed glyph with its color.
type Cell struct {
	Glyph byte
	Color
}

// Frame is the result of one conversion: Width*Height cells in row-major
// order.
type Frame struct {
	Width  int
	Height int
	Cells  []Cell

	// Compress leaves out color codes that repeat within a row when the
	// frame is rendered.
	Compress bool
}

// NewFrame pairs glyphs with colors. Both must hold width*height entries.
func NewFrame(width, height int, glyphs []byte, colors []Color) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: frame %dx%d", ErrInvalidWidth, width, height)
	}
	if len(glyphs) != width*height || len(colors) != width*height {
		return nil, fmt.Errorf("%w: %d glyphs, %d colors for a %dx%d frame",
			ErrMismatchedLengths, len(glyphs), len(colors), width, height)
	}

	cells := make([]Cell, len(glyphs))
	for i := range cells {
		cells[i] = Cell{Glyph: glyphs[i], Color: colors[i]}
	}
	return &Frame{Width: width, Height: height, Cells: cells}, nil
}

// Row returns the cells of row y.
func (f *Frame) Row(y int) []Cell {
	return f.Cells[y*f.Width : (y+1)*f.Width]
}

// Glyphs returns the glyphs of all cells in row-major order.
func (f *Frame) Glyphs() []byte {
	glyphs := make([]byte, len(f.Cells))
	for i, c := range f.Cells {
		glyphs[i] = c.Glyph
	}
	return glyphs
}

// Codes returns the color codes of all cells in row-major order.
func (f *Frame) Codes() []string {
	codes := make([]string, len(f.Cells))
	for i, c := range f.Cells {
		codes[i] = c.Code
	}
	return codes
}

// String renders the frame for a terminal.
func (f *Frame) String() string {
	return composeRows(f.Glyphs(), f.Codes(), f.Width, f.Compress)
}

// Lines returns the rendered rows without their trailing newlines.
func (f *Frame) Lines() []string {
	return strings.Split(strings.TrimSuffix(f.String(), "\n"), "\n")
}

// Plain returns the glyphs alone, one row per line.
func (f *Frame) Plain() string {
	var sb strings.Builder
	sb.Grow(len(f.Cells) + f.Height)
	for y := 0; y < f.Height; y++ {
		for _, c := range f.Row(y) {
			sb.WriteByte(c.Glyph)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteFile writes the rendered frame to path, replacing any existing
// file. Escape codes are kept; trailing whitespace is trimmed from each
// line.
func (f *Frame) WriteFile(path string) error {
	var sb strings.Builder
	for _, line := range f.Lines() {
		sb.WriteString(strings.TrimRight(line, " \t\r"))
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
