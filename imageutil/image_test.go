package imageutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
	if img.Empty() {
		t.Error("100x50 image should not be empty")
	}
	if !NewRGBAImage(0, 5).Empty() {
		t.Error("0x5 image should be empty")
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
	if a := img.RGBAAt(5, 5).A; a != 255 {
		t.Errorf("Expected opaque pixel, got alpha %d", a)
	}
}

func TestRGBAImageClone(t *testing.T) {
	img := NewRGBAImage(10, 10)
	img.SetRGB(5, 5, RGB{R: 255, G: 0, B: 0})

	clone := img.Clone()
	if clone.GetRGB(5, 5) != img.GetRGB(5, 5) {
		t.Error("Clone should have same pixel values")
	}

	clone.SetRGB(5, 5, RGB{R: 0, G: 255, B: 0})
	if img.GetRGB(5, 5).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestRGBAImageCloneSubImage(t *testing.T) {
	big := CreateSolidImage(4, 4, RGB{})
	white := RGB{R: 255, G: 255, B: 255}
	for y := 1; y < 3; y++ {
		for x := 1; x < 3; x++ {
			big.SetRGB(x, y, white)
		}
	}

	tests := []struct {
		name string
		rect image.Rectangle
		want func(x, y int) RGB
	}{
		{"offset origin", image.Rect(1, 1, 3, 3), func(x, y int) RGB { return white }},
		{"wide stride", image.Rect(0, 0, 2, 2), func(x, y int) RGB {
			if x == 1 && y == 1 {
				return white
			}
			return RGB{}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &RGBAImage{RGBA: big.SubImage(tt.rect).(*image.RGBA)}
			clone := sub.Clone()
			if clone.Bounds() != image.Rect(0, 0, 2, 2) {
				t.Fatalf("Expected bounds at the origin, got %v", clone.Bounds())
			}
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					if got := clone.GetRGB(x, y); got != tt.want(x, y) {
						t.Errorf("Expected %v at (%d,%d), got %v", tt.want(x, y), x, y, got)
					}
				}
			}
		})
	}
}

func TestRGBAImageFromImageIgnoresAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(3, 4, 5, 6))
	src.SetNRGBA(3, 4, color.NRGBA{R: 200, G: 10, B: 20, A: 128})
	src.SetNRGBA(4, 5, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	img := RGBAImageFromImage(src)
	if img.Width() != 2 || img.Height() != 2 {
		t.Fatalf("Expected 2x2, got %dx%d", img.Width(), img.Height())
	}
	if got := img.GetRGB(0, 0); got != (RGB{R: 200, G: 10, B: 20}) {
		t.Errorf("Expected un-premultiplied {200 10 20}, got %v", got)
	}
	if got := img.GetRGB(1, 1); got != (RGB{R: 1, G: 2, B: 3}) {
		t.Errorf("Expected {1 2 3}, got %v", got)
	}
	if a := img.RGBAAt(0, 0).A; a != 255 {
		t.Errorf("Expected alpha to be dropped, got %d", a)
	}
}

func TestToGrayscale(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want uint8
	}{
		{"white", RGB{255, 255, 255}, 255},
		{"black", RGB{0, 0, 0}, 0},
		{"red", RGB{255, 0, 0}, 76},
		{"green", RGB{0, 255, 0}, 150},
		{"blue", RGB{0, 0, 255}, 29},
		{"mid gray", RGB{128, 128, 128}, 128},
		{"dark blue", RGB{3, 7, 171}, 24},
		{"rounds up", RGB{0, 0, 9}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := CreateSolidImage(1, 1, tt.c)
			gray := ToGrayscale(img)
			if v := gray.GetGray(0, 0); v != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, v)
			}
			if img.GetRGB(0, 0) != tt.c {
				t.Error("ToGrayscale should not modify its input")
			}
		})
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	for _, interp := range []Interpolation{
		InterpolationCatmullRom,
		InterpolationLinear,
		InterpolationNearest,
		InterpolationLanczos,
	} {
		t.Run(interp.String(), func(t *testing.T) {
			down := Resize(img, 50, 27, interp)
			if down.Width() != 50 || down.Height() != 27 {
				t.Errorf("Expected 50x27, got %dx%d", down.Width(), down.Height())
			}

			up := Resize(img, 200, 150, interp)
			if up.Width() != 200 || up.Height() != 150 {
				t.Errorf("Expected 200x150, got %dx%d", up.Width(), up.Height())
			}
		})
	}
}

func TestResizeSameSizeIsExact(t *testing.T) {
	img := CreateColorBarsImage(16, 4)
	resized := Resize(img, 16, 4, InterpolationCatmullRom)

	for y := 0; y < 4; y++ {
		for x := 0; x < 16; x++ {
			if resized.GetRGB(x, y) != img.GetRGB(x, y) {
				t.Fatalf("Pixel (%d,%d) changed: %v != %v", x, y, resized.GetRGB(x, y), img.GetRGB(x, y))
			}
		}
	}

	resized.SetRGB(0, 0, RGB{1, 2, 3})
	if img.GetRGB(0, 0) == (RGB{1, 2, 3}) {
		t.Error("Resize should return a new image")
	}
}

func TestResizeNearestSolid(t *testing.T) {
	red := RGB{R: 255}
	resized := Resize(CreateSolidImage(4, 4, red), 2, 2, InterpolationNearest)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := resized.GetRGB(x, y); got != red {
				t.Errorf("Expected %v at (%d,%d), got %v", red, x, y, got)
			}
		}
	}
}

func TestResizeLanczosSolid(t *testing.T) {
	c := RGB{R: 200, G: 40, B: 90}
	for _, size := range [][2]int{{5, 3}, {24, 18}} {
		resized := Resize(CreateSolidImage(12, 9, c), size[0], size[1], InterpolationLanczos)
		for y := 0; y < size[1]; y++ {
			for x := 0; x < size[0]; x++ {
				got := resized.GetRGB(x, y)
				if absDiff(got.R, c.R) > 1 || absDiff(got.G, c.G) > 1 || absDiff(got.B, c.B) > 1 {
					t.Errorf("%dx%d: expected %v at (%d,%d), got %v", size[0], size[1], c, x, y, got)
				}
			}
		}
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestResizeNearestCheckerboard(t *testing.T) {
	resized := Resize(CreateCheckerboardImage(8, 8, 2), 4, 4, InterpolationNearest)

	white := RGB{R: 255, G: 255, B: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := RGB{}
			if (x+y)%2 == 0 {
				want = white
			}
			if got := resized.GetRGB(x, y); got != want {
				t.Errorf("Expected %v at (%d,%d), got %v", want, x, y, got)
			}
		}
	}
}

func TestParseInterpolation(t *testing.T) {
	for interp, name := range interpolationNames {
		got, err := ParseInterpolation(name)
		if err != nil {
			t.Errorf("ParseInterpolation(%q) returned error: %v", name, err)
		}
		if got != interp {
			t.Errorf("ParseInterpolation(%q) = %v, expected %v", name, got, interp)
		}
	}

	if got, err := ParseInterpolation(" BiLinear "); err != nil || got != InterpolationLinear {
		t.Errorf("Expected case-insensitive match, got %v, %v", got, err)
	}
	if _, err := ParseInterpolation("sinc"); err == nil {
		t.Error("Expected error for unknown interpolation")
	}
}

func TestNeighborMean(t *testing.T) {
	// 3x3 image with distinct reds: 10 20 30 / 40 50 60 / 70 80 90
	img := NewRGBAImage(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.SetRGB(x, y, RGB{R: uint8(10 * (y*3 + x + 1))})
		}
	}

	tests := []struct {
		name      string
		x, y      int
		wantR     uint8
		wantCount int
	}{
		// (20+40+50)/3 = 36
		{"top-left corner", 0, 0, 36, 3},
		// (10+20+30+40+60+70+80+90)/8 = 50
		{"center", 1, 1, 50, 8},
		// (10+30+40+50+60)/5 = 38
		{"top edge", 1, 0, 38, 5},
		// (50+60+80)/3 = 63
		{"bottom-right corner", 2, 2, 63, 3},
		// (20+30+50+80+90)/5 = 54
		{"right edge", 2, 1, 54, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := NeighborMean(img, tt.x, tt.y)
			if count != tt.wantCount {
				t.Errorf("Expected %d neighbors, got %d", tt.wantCount, count)
			}
			if got.R != tt.wantR {
				t.Errorf("Expected mean red %d, got %d", tt.wantR, got.R)
			}
		})
	}
}

func TestNeighborMeanDoesNotWrapRows(t *testing.T) {
	// A pixel on the right edge must not pick up the first column of the
	// next row.
	wide := NewRGBAImage(3, 2)
	wide.SetRGB(0, 1, RGB{R: 255})
	got, count := NeighborMean(wide, 2, 0)
	if count != 3 {
		t.Errorf("Expected 3 neighbors, got %d", count)
	}
	if got.R != 0 {
		t.Errorf("Right edge picked up a wrapped neighbor: %v", got)
	}
}

func TestNeighborMeanSinglePixel(t *testing.T) {
	img := CreateSolidImage(1, 1, RGB{R: 200, G: 100, B: 50})
	got, count := NeighborMean(img, 0, 0)
	if count != 0 {
		t.Errorf("Expected 0 neighbors, got %d", count)
	}
	if got != (RGB{}) {
		t.Errorf("Expected black for no neighbors, got %v", got)
	}
}

func TestNeighborBlur(t *testing.T) {
	c := RGB{R: 12, G: 34, B: 56}
	blurred := NeighborBlur(CreateSolidImage(5, 4, c))
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			if got := blurred.GetRGB(x, y); got != c {
				t.Errorf("Expected %v at (%d,%d), got %v", c, x, y, got)
			}
		}
	}
}

func TestAdjust(t *testing.T) {
	img := CreateSolidImage(4, 4, RGB{R: 100, G: 100, B: 100})

	same := Adjust(img, Adjustments{})
	if same.GetRGB(0, 0) != img.GetRGB(0, 0) {
		t.Error("Zero adjustments should not change pixels")
	}
	same.SetRGB(0, 0, RGB{})
	if img.GetRGB(0, 0) == (RGB{}) {
		t.Error("Adjust should return a new image")
	}

	brighter := Adjust(img, Adjustments{Brightness: 50})
	if brighter.GetRGB(1, 1).R <= 100 {
		t.Errorf("Expected brighter pixel, got %v", brighter.GetRGB(1, 1))
	}
	if brighter.Width() != 4 || brighter.Height() != 4 {
		t.Errorf("Expected 4x4, got %dx%d", brighter.Width(), brighter.Height())
	}

	darker := Adjust(img, Adjustments{Brightness: -50})
	if darker.GetRGB(1, 1).R >= 100 {
		t.Errorf("Expected darker pixel, got %v", darker.GetRGB(1, 1))
	}
}

func TestAdjustmentsIsZero(t *testing.T) {
	if !(Adjustments{Gamma: 1}).IsZero() {
		t.Error("Gamma 1 should be a no-op")
	}
	if (Adjustments{Contrast: 10}).IsZero() {
		t.Error("Contrast 10 should not be a no-op")
	}
}

func TestLoadSavePNG(t *testing.T) {
	tmpDir := t.TempDir()
	img := CreateColorBarsImage(64, 64)

	pngPath := filepath.Join(tmpDir, "test.png")
	if err := SavePNG(img.RGBA, pngPath); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	loaded, err := LoadImage(pngPath)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}

	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if loaded.GetRGB(x, y) != img.GetRGB(x, y) {
				t.Fatalf("PNG should be lossless, pixel (%d,%d) differs", x, y)
			}
		}
	}
}

func TestLoadImageErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadImage(filepath.Join(tmpDir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}

	garbage := filepath.Join(tmpDir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("definitely not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(garbage); err == nil {
		t.Error("Expected decode error for garbage file")
	}
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, CreateSolidImage(3, 2, RGB{G: 255}).RGBA); err != nil {
		t.Fatal(err)
	}

	img, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if img.Width() != 3 || img.Height() != 2 {
		t.Errorf("Expected 3x2, got %dx%d", img.Width(), img.Height())
	}
	if got := img.GetRGB(2, 1); got != (RGB{G: 255}) {
		t.Errorf("Expected green, got %v", got)
	}
}
