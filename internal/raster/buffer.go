package raster

import (
	"image"
	"math"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
// Larger depth values are closer to the viewer.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // NRGBA interleaved, len = W*H*4
	ZBuf   []float64 // len = W*H, initialized to -inf
}

// NewFrameBuffer allocates a transparent color buffer and a -inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   zbuf,
	}
}

// Image copies the color buffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

// Covered returns how many pixels have been written.
func (fb *FrameBuffer) Covered() int {
	n := 0
	for _, z := range fb.ZBuf {
		if !math.IsInf(z, -1) {
			n++
		}
	}
	return n
}
