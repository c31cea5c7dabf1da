package raster

import (
	"image"
	"image/color"
	"math"
)

// SampleTexture performs bilinear filtering with wrap-around addressing.
// (0, 0) is the top-left texel, matching Direct3D texture coordinates.
func SampleTexture(tex *image.NRGBA, u, v float64) color.NRGBA {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return color.NRGBA{}
	}

	fx := (u-math.Floor(u))*float64(w) - 0.5
	fy := (v-math.Floor(v))*float64(h) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	texel := func(x, y int) []uint8 {
		x = ((x % w) + w) % w
		y = ((y % h) + h) % h
		i := y*tex.Stride + x*4
		return tex.Pix[i : i+4]
	}
	t00, t10 := texel(x0, y0), texel(x0+1, y0)
	t01, t11 := texel(x0, y0+1), texel(x0+1, y0+1)

	var out [4]uint8
	for k := range out {
		top := float64(t00[k])*(1-dx) + float64(t10[k])*dx
		bottom := float64(t01[k])*(1-dx) + float64(t11[k])*dx
		out[k] = uint8(top*(1-dy) + bottom*dy + 0.5)
	}
	return color.NRGBA{out[0], out[1], out[2], out[3]}
}
