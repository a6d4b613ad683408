package imageutil

// Luminance returns the BT.601 luma of an RGB color,
// Y = 0.299*R + 0.587*G + 0.114*B, in 16.16 fixed point with rounding. The
// weights sum to 1<<16, so the result never exceeds 255.
func Luminance(c RGB) uint8 {
	lum := (19595*uint32(c.R) + 38470*uint32(c.G) + 7471*uint32(c.B) + 1<<15) >> 16
	return uint8(lum)
}

// ToGrayscale converts an RGBA image to a new grayscale image using
// Luminance. The source image is left untouched.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray.SetGrayValue(x, y, Luminance(img.GetRGB(x, y)))
		}
	}

	return gray
}
