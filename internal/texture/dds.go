package texture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"math/bits"

	"github.com/mauserzjeh/dxt"
)

const (
	ddsMagic      = "DDS "
	ddsHeaderSize = 128

	ddpfAlphaPixels = 0x1
	ddpfFourCC      = 0x4
	ddpfRGB         = 0x40
	ddpfLuminance   = 0x20000
)

var errDDSFormat = errors.New("unsupported DDS pixel format")

// DecodeDDS decodes the top mip level of a DDS texture. DXT1, DXT5 and
// uncompressed RGB(A)/luminance layouts are supported.
func DecodeDDS(r io.Reader) (image.Image, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw) < ddsHeaderSize || string(raw[:4]) != ddsMagic {
		return nil, fmt.Errorf("dds: missing header")
	}

	le := binary.LittleEndian
	height := int(le.Uint32(raw[12:]))
	width := int(le.Uint32(raw[16:]))
	pfFlags := le.Uint32(raw[80:])
	fourCC := string(raw[84:88])
	bitCount := int(le.Uint32(raw[88:]))
	masks := [4]uint32{le.Uint32(raw[92:]), le.Uint32(raw[96:]), le.Uint32(raw[100:]), le.Uint32(raw[104:])}
	if width <= 0 || height <= 0 || width > 1<<14 || height > 1<<14 {
		return nil, fmt.Errorf("dds: bad size %dx%d", width, height)
	}
	data := raw[ddsHeaderSize:]

	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	if pfFlags&ddpfFourCC != 0 {
		var pix []byte
		blocks := ((width + 3) / 4) * ((height + 3) / 4)
		switch fourCC {
		case "DXT1":
			if len(data) < blocks*8 {
				return nil, fmt.Errorf("dds: DXT1 data truncated")
			}
			pix, err = dxt.DecodeDXT1(data[:blocks*8], uint(width), uint(height))
		case "DXT5":
			if len(data) < blocks*16 {
				return nil, fmt.Errorf("dds: DXT5 data truncated")
			}
			pix, err = dxt.DecodeDXT5(data[:blocks*16], uint(width), uint(height))
		default:
			return nil, fmt.Errorf("dds: %w %q", errDDSFormat, fourCC)
		}
		if err != nil {
			return nil, fmt.Errorf("dds: %s: %w", fourCC, err)
		}
		if len(pix) < len(img.Pix) {
			return nil, fmt.Errorf("dds: %s decoded %d bytes, want %d", fourCC, len(pix), len(img.Pix))
		}
		copy(img.Pix, pix)
		return img, nil
	}

	if pfFlags&(ddpfRGB|ddpfLuminance) == 0 || bitCount%8 != 0 || bitCount < 8 || bitCount > 32 {
		return nil, fmt.Errorf("dds: %w (flags %#x, %d bits)", errDDSFormat, pfFlags, bitCount)
	}
	bpp := bitCount / 8
	if len(data) < width*height*bpp {
		return nil, fmt.Errorf("dds: pixel data truncated")
	}
	if pfFlags&ddpfAlphaPixels == 0 {
		masks[3] = 0
	}
	lum := pfFlags&ddpfLuminance != 0

	for i := 0; i < width*height; i++ {
		var v uint32
		for b := 0; b < bpp; b++ {
			v |= uint32(data[i*bpp+b]) << (8 * b)
		}
		o := i * 4
		if lum {
			l := channel(v, masks[0])
			img.Pix[o], img.Pix[o+1], img.Pix[o+2] = l, l, l
		} else {
			img.Pix[o] = channel(v, masks[0])
			img.Pix[o+1] = channel(v, masks[1])
			img.Pix[o+2] = channel(v, masks[2])
		}
		img.Pix[o+3] = 255
		if masks[3] != 0 {
			img.Pix[o+3] = channel(v, masks[3])
		}
	}
	return img, nil
}

// channel extracts the bits selected by mask and scales them to 8 bits.
func channel(v, mask uint32) uint8 {
	if mask == 0 {
		return 0
	}
	shift := bits.TrailingZeros32(mask)
	width := bits.OnesCount32(mask)
	x := (v & mask) >> shift
	if width >= 8 {
		return uint8(x >> (width - 8))
	}
	max := uint32(1)<<width - 1
	return uint8((x*255 + max/2) / max)
}
