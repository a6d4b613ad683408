package img2ascii

import "github.com/wbrown/img2ascii/imageutil"

// Ramp holds the glyphs used for each luminance bucket, darkest first.
const Ramp = ".,:;+*?%S#@"

// bucketWidth is the luminance span of one ramp entry. 11 buckets of 25
// cover 0..274, so 250..255 all land on the last glyph.
const bucketWidth = 25

// GlyphIndex returns the ramp index for a luminance value.
func GlyphIndex(lum uint8) int {
	return min(int(lum)/bucketWidth, len(Ramp)-1)
}

// GlyphFor returns the ramp glyph for a luminance value.
func GlyphFor(lum uint8) byte {
	return Ramp[GlyphIndex(lum)]
}

// MapGlyphs maps every pixel of a grayscale image to its glyph, in
// row-major order.
func MapGlyphs(gray *imageutil.GrayImage) []byte {
	width, height := gray.Width(), gray.Height()
	glyphs := make([]byte, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			glyphs = append(glyphs, GlyphFor(gray.GetGray(x, y)))
		}
	}
	return glyphs
}
