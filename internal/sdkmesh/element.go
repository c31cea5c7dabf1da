package sdkmesh

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/x448/float16"
)

// Decode expands the element stored in vertex (one whole vertex, starting at
// byte 0) to four components. Missing components default to (0, 0, 0, 1).
func (e VertexElement) Decode(vertex []byte, order binary.ByteOrder) (mgl32.Vec4, error) {
	size := e.Type.Size()
	if size == 0 {
		return mgl32.Vec4{}, fmt.Errorf("sdkmesh: %s: unsupported format %s", e.Usage, e.Type)
	}
	end := int(e.Offset) + size
	if end > len(vertex) {
		return mgl32.Vec4{}, fmt.Errorf("sdkmesh: %s: element ends at byte %d, vertex is %d bytes", e.Usage, end, len(vertex))
	}
	b := vertex[e.Offset:end]
	out := mgl32.Vec4{0, 0, 0, 1}

	f32 := func(i int) float32 { return math.Float32frombits(order.Uint32(b[i*4:])) }
	i16 := func(i int) int16 { return int16(order.Uint16(b[i*2:])) }
	u16 := func(i int) uint16 { return order.Uint16(b[i*2:]) }

	switch e.Type {
	case TypeFloat1, TypeFloat2, TypeFloat3, TypeFloat4:
		for i := 0; i < e.Type.Components(); i++ {
			out[i] = f32(i)
		}
	case TypeD3DColor:
		// Stored as a packed ARGB dword.
		v := order.Uint32(b)
		out = mgl32.Vec4{
			float32((v>>16)&0xFF) / 255,
			float32((v>>8)&0xFF) / 255,
			float32(v&0xFF) / 255,
			float32(v>>24) / 255,
		}
	case TypeUByte4:
		out = mgl32.Vec4{float32(b[0]), float32(b[1]), float32(b[2]), float32(b[3])}
	case TypeUByte4N:
		out = mgl32.Vec4{float32(b[0]) / 255, float32(b[1]) / 255, float32(b[2]) / 255, float32(b[3]) / 255}
	case TypeShort2, TypeShort4:
		for i := 0; i < e.Type.Components(); i++ {
			out[i] = float32(i16(i))
		}
	case TypeShort2N, TypeShort4N:
		for i := 0; i < e.Type.Components(); i++ {
			out[i] = snorm16(i16(i))
		}
	case TypeUShort2N, TypeUShort4N:
		for i := 0; i < e.Type.Components(); i++ {
			out[i] = float32(u16(i)) / 65535
		}
	case TypeUDec3:
		v := order.Uint32(b)
		out[0] = float32(v & 0x3FF)
		out[1] = float32((v >> 10) & 0x3FF)
		out[2] = float32((v >> 20) & 0x3FF)
	case TypeDec3N:
		v := order.Uint32(b)
		out[0] = snorm10(v)
		out[1] = snorm10(v >> 10)
		out[2] = snorm10(v >> 20)
	case TypeFloat16x2, TypeFloat16x4:
		for i := 0; i < e.Type.Components(); i++ {
			out[i] = float16.Frombits(u16(i)).Float32()
		}
	default:
		return mgl32.Vec4{}, fmt.Errorf("sdkmesh: %s: unsupported format %s", e.Usage, e.Type)
	}
	return out, nil
}

func snorm16(v int16) float32 {
	f := float32(v) / 32767
	if f < -1 {
		return -1
	}
	return f
}

// snorm10 decodes the low 10 bits of v as a signed normalized value.
func snorm10(v uint32) float32 {
	x := int32(v&0x3FF) << 22 >> 22
	f := float32(x) / 511
	if f < -1 {
		return -1
	}
	return f
}
