package sdkmesh

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/encoding/charmap"
)

// reader walks one fixed-size record. Callers slice data to the record
// before decoding, so reads past the end only happen on a bug and yield zero.
type reader struct {
	data  []byte
	off   int
	order binary.ByteOrder
}

func newReader(data []byte, order binary.ByteOrder) *reader {
	return &reader{data: data, order: order}
}

func (r *reader) seek(off int) {
	r.off = off
}

func (r *reader) readStr(n int) string {
	if r.off+n > len(r.data) {
		r.off = len(r.data)
		return ""
	}
	s := r.data[r.off : r.off+n]
	r.off += n
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return decodeName(s)
}

func (r *reader) readU8() uint8 {
	if r.off >= len(r.data) {
		return 0
	}
	b := r.data[r.off]
	r.off++
	return b
}

func (r *reader) readU16() uint16 {
	if r.off+2 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := r.order.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

func (r *reader) readU32() uint32 {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := r.order.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) readU64() uint64 {
	if r.off+8 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := r.order.Uint64(r.data[r.off:])
	r.off += 8
	return v
}

func (r *reader) readF32() float32 {
	return math.Float32frombits(r.readU32())
}

func (r *reader) readVec3() mgl32.Vec3 {
	return mgl32.Vec3{r.readF32(), r.readF32(), r.readF32()}
}

func (r *reader) readVec4() mgl32.Vec4 {
	return mgl32.Vec4{r.readF32(), r.readF32(), r.readF32(), r.readF32()}
}

// decodeName converts a Windows-1252 name field to UTF-8. Pure ASCII is returned as is.
func decodeName(b []byte) string {
	ascii := true
	for _, c := range b {
		if c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b)
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
