package sdkmesh

import "github.com/go-gl/mathgl/mgl32"

// Header is the fixed-size record at the start of every container.
type Header struct {
	Version           uint32
	IsBigEndian       bool
	HeaderSize        uint64
	NonBufferDataSize uint64
	BufferDataSize    uint64

	NumVertexBuffers uint32
	NumIndexBuffers  uint32
	NumMeshes        uint32
	NumTotalSubsets  uint32
	NumFrames        uint32
	NumMaterials     uint32

	VertexStreamHeadersOffset uint64
	IndexStreamHeadersOffset  uint64
	MeshDataOffset            uint64
	SubsetDataOffset          uint64
	FrameDataOffset           uint64
	MaterialDataOffset        uint64
}

// BufferDataStart is the file offset of the raw vertex/index region.
func (h Header) BufferDataStart() uint64 {
	return h.HeaderSize + h.NonBufferDataSize
}

// VertexElement describes one attribute inside a vertex.
type VertexElement struct {
	Stream     uint16
	Offset     uint16
	Type       DeclType
	Method     uint8
	Usage      DeclUsage
	UsageIndex uint8
}

// IsEnd reports whether e is the declaration terminator.
func (e VertexElement) IsEnd() bool {
	return e.Stream == EndStream
}

type VertexBufferHeader struct {
	NumVertices uint64
	SizeBytes   uint64
	StrideBytes uint64
	Decl        [MaxVertexElements]VertexElement
	DataOffset  uint64 // file offset as stored
}

// Elements returns the declaration up to (not including) the terminator.
func (vb *VertexBufferHeader) Elements() []VertexElement {
	for i, e := range vb.Decl {
		if e.IsEnd() {
			return vb.Decl[:i]
		}
	}
	return vb.Decl[:]
}

type IndexBufferHeader struct {
	NumIndices uint64
	SizeBytes  uint64
	IndexType  IndexType
	DataOffset uint64 // file offset as stored
}

// Mesh is one named object. Subsets and FrameInfluences are resolved from
// SubsetOffset and FrameInfluenceOffset at load time.
type Mesh struct {
	Name               string
	NumVertexBuffers   uint8
	VertexBuffers      [MaxVertexStreams]uint32
	IndexBuffer        uint32
	NumSubsets         uint32
	NumFrameInfluences uint32
	BoundingBoxCenter  mgl32.Vec3
	BoundingBoxExtents mgl32.Vec3

	SubsetOffset         uint64
	FrameInfluenceOffset uint64

	Subsets         []uint32 // indices into the container's subset table
	FrameInfluences []uint32
}

type Subset struct {
	Name          string
	MaterialID    uint32
	PrimitiveType PrimitiveType
	IndexStart    uint64
	IndexCount    uint64
	VertexStart   uint64
	VertexCount   uint64
}

// Frame is a node of the transform hierarchy. Decoded for inspection only.
type Frame struct {
	Name               string
	Mesh               uint32
	ParentFrame        uint32
	ChildFrame         uint32
	SiblingFrame       uint32
	Matrix             mgl32.Mat4
	AnimationDataIndex uint32
}

type Material struct {
	Name                 string
	MaterialInstancePath string
	DiffuseTexture       string
	NormalTexture        string
	SpecularTexture      string

	Diffuse  mgl32.Vec4
	Ambient  mgl32.Vec4
	Specular mgl32.Vec4
	Emissive mgl32.Vec4
	Power    float32
}
