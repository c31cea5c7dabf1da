package sdkmesh

import "fmt"

// FileVersion is the only container version Load accepts.
const FileVersion = 101

const (
	MaxVertexElements = 32
	MaxVertexStreams  = 16
	MaxFrameName      = 100
	MaxMeshName       = 100
	MaxSubsetName     = 100
	MaxMaterialName   = 100
	MaxTextureName    = 260
	MaxMaterialPath   = 260

	// EndStream marks the terminating element of a vertex declaration.
	EndStream = 0xFF
)

// Serialized record sizes (8-byte natural alignment).
const (
	headerSize       = 104
	elementSize      = 8
	vertexBufferSize = 24 + MaxVertexElements*elementSize + 8
	indexBufferSize  = 32
	meshSize         = 224
	subsetSize       = 144
	frameSize        = 184
	materialSize     = 1256
)

// Invalid* mark unset references in mesh, frame and subset records.
const (
	InvalidFrame    = ^uint32(0)
	InvalidMesh     = ^uint32(0)
	InvalidMaterial = ^uint32(0)
	InvalidSubset   = ^uint32(0)
)

// PrimitiveType is the topology of a subset's index range.
type PrimitiveType uint32

const (
	TriangleList PrimitiveType = iota
	TriangleStrip
	LineList
	LineStrip
	PointList
	TriangleListAdj
	TriangleStripAdj
	LineListAdj
	LineStripAdj
	QuadPatchList
	TrianglePatchList
)

var primitiveNames = [...]string{
	"PT_TRIANGLE_LIST",
	"PT_TRIANGLE_STRIP",
	"PT_LINE_LIST",
	"PT_LINE_STRIP",
	"PT_POINT_LIST",
	"PT_TRIANGLE_LIST_ADJ",
	"PT_TRIANGLE_STRIP_ADJ",
	"PT_LINE_LIST_ADJ",
	"PT_LINE_STRIP_ADJ",
	"PT_QUAD_PATCH_LIST",
	"PT_TRIANGLE_PATCH_LIST",
}

func (p PrimitiveType) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("PT_UNKNOWN(%d)", uint32(p))
}

// IndexType selects the width of an index buffer's entries.
type IndexType uint32

const (
	Index16 IndexType = iota
	Index32
)

func (t IndexType) String() string {
	if t == Index32 {
		return "32BIT"
	}
	return "16BIT"
}

// Size returns the byte width of one index. Anything but Index32 reads as 16-bit.
func (t IndexType) Size() int {
	if t == Index32 {
		return 4
	}
	return 2
}

// DeclUsage is the semantic of a vertex element.
type DeclUsage uint8

const (
	UsagePosition DeclUsage = iota
	UsageBlendWeight
	UsageBlendIndices
	UsageNormal
	UsagePSize
	UsageTexCoord
	UsageTangent
	UsageBinormal
	UsageTessFactor
	UsagePositionT
	UsageColor
	UsageFog
	UsageDepth
	UsageSample
)

var usageNames = [...]string{
	"POSITION",
	"BLENDWEIGHT",
	"BLENDINDICES",
	"NORMAL",
	"PSIZE",
	"TEXCOORD",
	"TANGENT",
	"BINORMAL",
	"TESSFACTOR",
	"POSITIONT",
	"COLOR",
	"FOG",
	"DEPTH",
	"SAMPLE",
}

func (u DeclUsage) String() string {
	if int(u) < len(usageNames) {
		return usageNames[u]
	}
	return fmt.Sprintf("USAGE(%d)", uint8(u))
}

// DeclType is the storage encoding of a vertex element.
type DeclType uint8

const (
	TypeFloat1 DeclType = iota
	TypeFloat2
	TypeFloat3
	TypeFloat4
	TypeD3DColor
	TypeUByte4
	TypeShort2
	TypeShort4
	TypeUByte4N
	TypeShort2N
	TypeShort4N
	TypeUShort2N
	TypeUShort4N
	TypeUDec3
	TypeDec3N
	TypeFloat16x2
	TypeFloat16x4
	TypeUnused
)

type declTypeInfo struct {
	name       string
	size       int
	components int
}

var declTypes = [...]declTypeInfo{
	TypeFloat1:    {"DXGI_FORMAT_R32_FLOAT", 4, 1},
	TypeFloat2:    {"DXGI_FORMAT_R32G32_FLOAT", 8, 2},
	TypeFloat3:    {"DXGI_FORMAT_R32G32B32_FLOAT", 12, 3},
	TypeFloat4:    {"DXGI_FORMAT_R32G32B32A32_FLOAT", 16, 4},
	TypeD3DColor:  {"DXGI_FORMAT_R8G8B8A8_UNORM", 4, 4},
	TypeUByte4:    {"DXGI_FORMAT_R8G8B8A8_UINT", 4, 4},
	TypeShort2:    {"DXGI_FORMAT_R16G16_SINT", 4, 2},
	TypeShort4:    {"DXGI_FORMAT_R16G16B16A16_SINT", 8, 4},
	TypeUByte4N:   {"DXGI_FORMAT_R8G8B8A8_UNORM", 4, 4},
	TypeShort2N:   {"DXGI_FORMAT_R16G16_SNORM", 4, 2},
	TypeShort4N:   {"DXGI_FORMAT_R16G16B16A16_SNORM", 8, 4},
	TypeUShort2N:  {"DXGI_FORMAT_R16G16_UNORM", 4, 2},
	TypeUShort4N:  {"DXGI_FORMAT_R16G16B16A16_UNORM", 8, 4},
	TypeUDec3:     {"DXGI_FORMAT_R10G10B10A2_UINT", 4, 3},
	TypeDec3N:     {"DXGI_FORMAT_R10G10B10A2_UNORM", 4, 3},
	TypeFloat16x2: {"DXGI_FORMAT_R16G16_FLOAT", 4, 2},
	TypeFloat16x4: {"DXGI_FORMAT_R16G16B16A16_FLOAT", 8, 4},
	TypeUnused:    {"UNUSED", 0, 0},
}

func (t DeclType) String() string {
	if int(t) < len(declTypes) {
		return declTypes[t].name
	}
	return fmt.Sprintf("DXGI_FORMAT_UNKNOWN(%d)", uint8(t))
}

// Size returns the number of bytes one element of this type occupies, or 0 if unknown.
func (t DeclType) Size() int {
	if int(t) < len(declTypes) {
		return declTypes[t].size
	}
	return 0
}

// Components returns how many meaningful components the type stores.
func (t DeclType) Components() int {
	if int(t) < len(declTypes) {
		return declTypes[t].components
	}
	return 0
}
