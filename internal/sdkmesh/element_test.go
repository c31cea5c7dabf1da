package sdkmesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDecodeElementTypes(t *testing.T) {
	le := binary.LittleEndian

	f32 := func(vals ...float32) []byte {
		b := make([]byte, len(vals)*4)
		for i, v := range vals {
			le.PutUint32(b[i*4:], math.Float32bits(v))
		}
		return b
	}
	u16 := func(vals ...uint16) []byte {
		b := make([]byte, len(vals)*2)
		for i, v := range vals {
			le.PutUint16(b[i*2:], v)
		}
		return b
	}
	u32 := func(v uint32) []byte {
		b := make([]byte, 4)
		le.PutUint32(b, v)
		return b
	}

	cases := []struct {
		name string
		typ  DeclType
		data []byte
		want mgl32.Vec4
	}{
		{name: "float1", typ: TypeFloat1, data: f32(2), want: mgl32.Vec4{2, 0, 0, 1}},
		{name: "float2", typ: TypeFloat2, data: f32(2, 3), want: mgl32.Vec4{2, 3, 0, 1}},
		{name: "float3", typ: TypeFloat3, data: f32(2, 3, 4), want: mgl32.Vec4{2, 3, 4, 1}},
		{name: "float4", typ: TypeFloat4, data: f32(2, 3, 4, 5), want: mgl32.Vec4{2, 3, 4, 5}},
		{name: "d3dcolor", typ: TypeD3DColor, data: u32(0xFF00FF00), want: mgl32.Vec4{0, 1, 0, 1}},
		{name: "ubyte4", typ: TypeUByte4, data: []byte{1, 2, 3, 4}, want: mgl32.Vec4{1, 2, 3, 4}},
		{name: "ubyte4n", typ: TypeUByte4N, data: []byte{0, 255, 0, 255}, want: mgl32.Vec4{0, 1, 0, 1}},
		{name: "short2", typ: TypeShort2, data: u16(0xFFFF, 7), want: mgl32.Vec4{-1, 7, 0, 1}},
		{name: "short2n", typ: TypeShort2N, data: u16(0x7FFF, 0x8000), want: mgl32.Vec4{1, -1, 0, 1}},
		{name: "ushort2n", typ: TypeUShort2N, data: u16(0xFFFF, 0), want: mgl32.Vec4{1, 0, 0, 1}},
		{name: "udec3", typ: TypeUDec3, data: u32(3 | 5<<10 | 7<<20), want: mgl32.Vec4{3, 5, 7, 1}},
		{name: "dec3n", typ: TypeDec3N, data: u32(511 | 0x201<<10), want: mgl32.Vec4{1, -1, 0, 1}},
		{name: "half2", typ: TypeFloat16x2, data: u16(0x3C00, 0xC000), want: mgl32.Vec4{1, -2, 0, 1}},
		{name: "half4", typ: TypeFloat16x4, data: u16(0x3800, 0, 0, 0x3C00), want: mgl32.Vec4{0.5, 0, 0, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := VertexElement{Offset: 4, Type: tc.typ, Usage: UsagePosition}
			vertex := append(make([]byte, 4), tc.data...)
			got, err := e.Decode(vertex, le)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if !got.ApproxEqualThreshold(tc.want, 1e-4) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDecodeElementErrors(t *testing.T) {
	e := VertexElement{Offset: 8, Type: TypeFloat3, Usage: UsageNormal}
	if _, err := e.Decode(make([]byte, 16), binary.LittleEndian); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	e = VertexElement{Type: TypeUnused}
	if _, err := e.Decode(make([]byte, 16), binary.LittleEndian); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestEnumNames(t *testing.T) {
	if TriangleList.String() != "PT_TRIANGLE_LIST" || PrimitiveType(42).String() != "PT_UNKNOWN(42)" {
		t.Fatalf("primitive names mismatch")
	}
	if UsageTexCoord.String() != "TEXCOORD" || DeclUsage(200).String() != "USAGE(200)" {
		t.Fatalf("usage names mismatch")
	}
	if TypeFloat3.String() != "DXGI_FORMAT_R32G32B32_FLOAT" || TypeFloat3.Size() != 12 {
		t.Fatalf("decl type table mismatch")
	}
	if Index32.String() != "32BIT" || Index16.Size() != 2 {
		t.Fatalf("index type mismatch")
	}
	if vertexBufferSize != 288 {
		t.Fatalf("vertex buffer header size = %d", vertexBufferSize)
	}
}
