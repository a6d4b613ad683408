package img2ascii

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	ESC = "\u001b"

	// Reset restores the default foreground and background colors.
	Reset = ESC + "[39;49m"
)

// csiPattern matches CSI escape sequences such as SGR color codes.
var csiPattern = regexp.MustCompile("\u001b\\[[0-9;?]*[ -/]*[@-~]")

// Compose interleaves color codes and glyphs into rows of width cells.
// Each row ends with Reset and a newline.
func Compose(glyphs []byte, codes []string, width int) (string, error) {
	if err := checkRows(glyphs, codes, width); err != nil {
		return "", err
	}
	return composeRows(glyphs, codes, width, false), nil
}

// ComposeCompressed is Compose, except that a color code equal to the one
// before it in the same row is left out. Terminals keep the current color
// until told otherwise, so the output displays the same but is smaller.
func ComposeCompressed(glyphs []byte, codes []string, width int) (string, error) {
	if err := checkRows(glyphs, codes, width); err != nil {
		return "", err
	}
	return composeRows(glyphs, codes, width, true), nil
}

func checkRows(glyphs []byte, codes []string, width int) error {
	if width <= 0 {
		return fmt.Errorf("%w: width %d", ErrInvalidWidth, width)
	}
	if len(glyphs) != len(codes) || len(glyphs)%width != 0 {
		return fmt.Errorf("%w: %d glyphs, %d codes, width %d",
			ErrMismatchedLengths, len(glyphs), len(codes), width)
	}
	return nil
}

func composeRows(glyphs []byte, codes []string, width int, compress bool) string {
	var sb strings.Builder
	if len(codes) > 0 {
		sb.Grow(len(glyphs)*(len(codes[0])+1) + (len(glyphs)/width)*(len(Reset)+1))
	}

	for start := 0; start < len(glyphs); start += width {
		var current string
		for i := start; i < start+width; i++ {
			if !compress || codes[i] != current {
				sb.WriteString(codes[i])
				current = codes[i]
			}
			sb.WriteByte(glyphs[i])
		}
		// Reset colors at the end of each line and add a newline
		sb.WriteString(Reset)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// StripANSI removes all CSI escape sequences from s.
func StripANSI(s string) string {
	return csiPattern.ReplaceAllString(s, "")
}
