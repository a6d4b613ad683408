package imageutil

// neighborOffsets lists the 3x3 neighborhood around a pixel, center excluded,
// as (dx, dy) pairs in row-major order.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// NeighborMean returns the unweighted mean color of the up to eight pixels
// surrounding (x, y), and how many of them lie inside the image. Neighbors
// outside the bounds are skipped, not replicated. Each channel is the floor
// of its mean; a pixel without neighbors yields black and a count of zero.
func NeighborMean(img *RGBAImage, x, y int) (RGB, int) {
	width, height := img.Width(), img.Height()

	var sumR, sumG, sumB, count int
	for _, off := range neighborOffsets {
		nx, ny := x+off[0], y+off[1]
		if nx < 0 || nx >= width || ny < 0 || ny >= height {
			continue
		}
		c := img.GetRGB(nx, ny)
		sumR += int(c.R)
		sumG += int(c.G)
		sumB += int(c.B)
		count++
	}

	if count == 0 {
		return RGB{}, 0
	}
	return RGB{
		R: uint8(sumR / count),
		G: uint8(sumG / count),
		B: uint8(sumB / count),
	}, count
}

// NeighborBlur applies NeighborMean to every pixel and returns the result as
// a new image.
func NeighborBlur(img *RGBAImage) *RGBAImage {
	width, height := img.Width(), img.Height()
	dst := NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, _ := NeighborMean(img, x, y)
			dst.SetRGB(x, y, c)
		}
	}

	return dst
}
