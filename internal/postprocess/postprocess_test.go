package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestDownsample(t *testing.T) {
	src := solid(8, 8, color.NRGBA{200, 100, 50, 255})
	dst := Downsample(src, 4, 4)
	if dst.Bounds().Dx() != 4 || dst.Bounds().Dy() != 4 {
		t.Fatalf("unexpected size %v", dst.Bounds())
	}
	got := dst.NRGBAAt(2, 2)
	if got.A != 255 || got.R < 198 || got.R > 202 || got.G < 98 || got.G > 102 {
		t.Fatalf("color drifted: %v", got)
	}

	if Downsample(src, 16, 16) != src {
		t.Fatalf("smaller-than-target image should be returned as is")
	}
}

func TestDownsampleKeepsTransparentEdgesClean(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	dst := Downsample(src, 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := dst.NRGBAAt(x, y)
			if c.A > 16 && c.R < 240 {
				t.Fatalf("dark fringe at (%d,%d): %v", x, y, c)
			}
		}
	}
}

func TestAlphaBoundsAndCropAndCenter(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 5; y < 10; y++ {
		for x := 2; x < 12; x++ {
			src.SetNRGBA(x, y, color.NRGBA{0, 255, 0, 255})
		}
	}
	if got := AlphaBounds(src); got != image.Rect(2, 5, 12, 10) {
		t.Fatalf("alpha bounds = %v", got)
	}

	out := CropAndCenter(src, 40, 0.5)
	if got := AlphaBounds(out); got.Dx() < 19 || got.Dx() > 21 {
		t.Fatalf("content width should be about 20, got %v", got)
	}
	if c := out.NRGBAAt(20, 20); c.A == 0 || c.G < 200 {
		t.Fatalf("center should be covered: %v", c)
	}

	empty := CropAndCenter(image.NewNRGBA(image.Rect(0, 0, 4, 4)), 8, 0.9)
	if !AlphaBounds(empty).Empty() || empty.Bounds().Dx() != 8 {
		t.Fatalf("empty input should give an empty canvas")
	}
}
