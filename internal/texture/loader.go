package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var decoders = map[string]func(io.Reader) (image.Image, error){
	".dds":  DecodeDDS,
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".tga":  tga.Decode,
	".bmp":  bmp.Decode,
	".webp": webp.Decode,
}

// Load reads a texture file, picking the decoder by extension, and returns it as NRGBA.
func Load(path string) (*image.NRGBA, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("texture: unknown extension %q: %s", ext, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA with its origin at (0, 0).
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
