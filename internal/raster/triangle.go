package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vertex is a projected vertex: X/Y in pixels, Z as depth (larger is closer).
type Vertex struct {
	Pos mgl64.Vec3
	UV  [2]float64
}

// Surface describes how a triangle is colored.
type Surface struct {
	Texture   *image.NRGBA // nil uses Base
	Base      color.NRGBA
	SpecPower float64
}

// RasterizeTriangle fills one triangle with z-buffering and flat lighting
// from the given face normal. Texels with near-zero alpha are discarded.
// Allocation free in the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, normal mgl64.Vec3, s *Surface, lc *LightConfig) {
	l := normal.Len()
	if l < 1e-12 {
		return
	}
	normal = normal.Mul(1 / l)
	shade := lc.Shade(normal, s.SpecPower)

	p0, p1, p2 := v[0].Pos, v[1].Pos, v[2].Pos
	minX := max(0, int(math.Floor(math.Min(p0[0], math.Min(p1[0], p2[0])))))
	maxX := min(fb.Width-1, int(math.Ceil(math.Max(p0[0], math.Max(p1[0], p2[0])))))
	minY := max(0, int(math.Floor(math.Min(p0[1], math.Min(p1[1], p2[1])))))
	maxY := min(fb.Height-1, int(math.Ceil(math.Max(p0[1], math.Max(p1[1], p2[1])))))
	if minX > maxX || minY > maxY {
		return
	}

	det := (p1[1]-p2[1])*(p0[0]-p2[0]) + (p2[0]-p1[0])*(p0[1]-p2[1])
	if math.Abs(det) < 1e-8 {
		return
	}
	invDet := 1.0 / det
	dy12 := p1[1] - p2[1]
	dx21 := p2[0] - p1[0]
	dy20 := p2[1] - p0[1]
	dx02 := p0[0] - p2[0]

	// Unlit base color is constant across the face.
	var flat [4]uint8
	if s.Texture == nil {
		flat = [4]uint8{lc.shadeColor(s.Base.R, shade), lc.shadeColor(s.Base.G, shade), lc.shadeColor(s.Base.B, shade), s.Base.A}
	}

	for sy := minY; sy <= maxY; sy++ {
		py := float64(sy) + 0.5 - p2[1]
		for sx := minX; sx <= maxX; sx++ {
			px := float64(sx) + 0.5 - p2[0]
			w0 := (dy12*px + dx21*py) * invDet
			w1 := (dy20*px + dx02*py) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*p0[2] + w1*p1[2] + w2*p2[2]
			zi := sy*fb.Width + sx
			if z <= fb.ZBuf[zi] {
				continue
			}

			out := flat
			if s.Texture != nil {
				u := w0*v[0].UV[0] + w1*v[1].UV[0] + w2*v[2].UV[0]
				t := w0*v[0].UV[1] + w1*v[1].UV[1] + w2*v[2].UV[1]
				c := SampleTexture(s.Texture, u, t)
				out = [4]uint8{lc.shadeColor(c.R, shade), lc.shadeColor(c.G, shade), lc.shadeColor(c.B, shade), c.A}
			}
			if out[3] < 8 {
				continue
			}

			fb.ZBuf[zi] = z
			copy(fb.Color[zi*4:zi*4+4], out[:])
		}
	}
}
