package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales img down to w x h with premultiplied-alpha CatmullRom
// filtering, so transparent edges do not pick up dark fringes. Images already
// within the target size are returned unchanged.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= w && b.Dy() <= h {
		return img
	}

	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, b, draw.Src, nil)

	result := image.NewNRGBA(dst.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		a := float64(dst.Pix[i+3])
		if a > 1 {
			inv := 255.0 / a
			result.Pix[i] = clamp8(float64(dst.Pix[i]) * inv)
			result.Pix[i+1] = clamp8(float64(dst.Pix[i+1]) * inv)
			result.Pix[i+2] = clamp8(float64(dst.Pix[i+2]) * inv)
		}
		result.Pix[i+3] = dst.Pix[i+3]
	}
	return result
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
