package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRasterizeTriangleCoversAndDepthTests(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	lc := DefaultLightConfig()
	far := &Surface{Base: color.NRGBA{255, 0, 0, 255}}
	near := &Surface{Base: color.NRGBA{0, 0, 255, 255}}

	quad := func(z float64) [2][3]Vertex {
		a := Vertex{Pos: mgl64.Vec3{0, 0, z}}
		b := Vertex{Pos: mgl64.Vec3{16, 0, z}}
		c := Vertex{Pos: mgl64.Vec3{0, 16, z}}
		d := Vertex{Pos: mgl64.Vec3{16, 16, z}}
		return [2][3]Vertex{{a, b, c}, {c, b, d}}
	}
	n := mgl64.Vec3{0, 0, 1}

	for _, tri := range quad(1) {
		RasterizeTriangle(fb, tri, n, near, &lc)
	}
	for _, tri := range quad(0) {
		RasterizeTriangle(fb, tri, n, far, &lc)
	}

	if got := fb.Covered(); got != 16*16 {
		t.Fatalf("expected full coverage, got %d", got)
	}
	img := fb.Image()
	c := img.NRGBAAt(8, 8)
	if c.B == 0 || c.R != 0 || c.A != 255 {
		t.Fatalf("nearer surface should win: %v", c)
	}
}

func TestRasterizeTriangleSkipsDegenerate(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	lc := DefaultLightConfig()
	s := &Surface{Base: color.NRGBA{255, 255, 255, 255}}
	line := [3]Vertex{{Pos: mgl64.Vec3{0, 0, 0}}, {Pos: mgl64.Vec3{4, 4, 0}}, {Pos: mgl64.Vec3{8, 8, 0}}}

	RasterizeTriangle(fb, line, mgl64.Vec3{0, 0, 1}, s, &lc)
	RasterizeTriangle(fb, line, mgl64.Vec3{}, s, &lc)
	if fb.Covered() != 0 {
		t.Fatalf("degenerate triangles must not draw")
	}
}

func TestSampleTextureWraps(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	tex.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	tex.SetNRGBA(1, 0, color.NRGBA{0, 0, 255, 255})

	if c := SampleTexture(tex, 0.25, 0.5); c.R != 255 || c.B != 0 {
		t.Fatalf("left texel center = %v", c)
	}
	if c := SampleTexture(tex, 1.75, 0.5); c.B != 255 || c.R != 0 {
		t.Fatalf("wrapped right texel center = %v", c)
	}
	if c := SampleTexture(tex, -0.25, 0.5); c.B != 255 {
		t.Fatalf("negative u should wrap: %v", c)
	}
	if c := SampleTexture(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 0, 0); c != (color.NRGBA{}) {
		t.Fatalf("empty texture should sample transparent")
	}
}

func TestShadeIsDoubleSided(t *testing.T) {
	lc := DefaultLightConfig()
	n := mgl64.Vec3{0.3, 0.4, 0.5}.Normalize()
	if a, b := lc.Shade(n, 0), lc.Shade(n.Mul(-1), 0); a != b {
		t.Fatalf("front %f != back %f", a, b)
	}
	if lc.Shade(n, 16) <= lc.Shade(n, 0) {
		t.Fatalf("specular should add light")
	}
}
