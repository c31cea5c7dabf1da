// Package sdkmeshtest builds synthetic mesh containers for tests.
package sdkmeshtest

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"sdkmesh2obj/internal/sdkmesh"
)

type VertexBuffer struct {
	Stride      uint64
	NumVertices uint64
	Decl        []sdkmesh.VertexElement
	Data        []byte
}

type IndexBuffer struct {
	Type    sdkmesh.IndexType
	Indices []uint32
}

type Mesh struct {
	Name            string
	VertexBuffers   []uint32
	IndexBuffer     uint32
	Subsets         []uint32
	FrameInfluences []uint32
	Center          mgl32.Vec3
	Extents         mgl32.Vec3
}

// File describes a container. Version 0 means sdkmesh.FileVersion.
type File struct {
	Version       uint32
	BigEndian     bool
	VertexBuffers []VertexBuffer
	IndexBuffers  []IndexBuffer
	Meshes        []Mesh
	Subsets       []sdkmesh.Subset
	Frames        []sdkmesh.Frame
	Materials     []sdkmesh.Material
}

const (
	headerSize       = 104
	vertexBufferSize = 288
	indexBufferSize  = 32
	meshSize         = 224
	subsetSize       = 144
	frameSize        = 184
	materialSize     = 1256
)

func (f *File) order() binary.ByteOrder {
	if f.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Bytes serializes the file: header, the six tables, the per-mesh index
// lists, then the raw vertex and index buffers.
func (f *File) Bytes() []byte {
	o := f.order()

	vbOff := uint64(headerSize)
	ibOff := vbOff + uint64(len(f.VertexBuffers))*vertexBufferSize
	meshOff := ibOff + uint64(len(f.IndexBuffers))*indexBufferSize
	subsetOff := meshOff + uint64(len(f.Meshes))*meshSize
	frameOff := subsetOff + uint64(len(f.Subsets))*subsetSize
	matOff := frameOff + uint64(len(f.Frames))*frameSize
	listOff := matOff + uint64(len(f.Materials))*materialSize

	subsetLists := make([]uint64, len(f.Meshes))
	influenceLists := make([]uint64, len(f.Meshes))
	end := listOff
	for i, m := range f.Meshes {
		subsetLists[i] = end
		end += uint64(len(m.Subsets)) * 4
		influenceLists[i] = end
		end += uint64(len(m.FrameInfluences)) * 4
	}
	bufferStart := end

	vbData := make([]uint64, len(f.VertexBuffers))
	for i, vb := range f.VertexBuffers {
		vbData[i] = end
		end += uint64(len(vb.Data))
	}
	ibData := make([]uint64, len(f.IndexBuffers))
	ibBytes := make([][]byte, len(f.IndexBuffers))
	for i, ib := range f.IndexBuffers {
		ibBytes[i] = PackIndices(o, ib.Type, ib.Indices...)
		ibData[i] = end
		end += uint64(len(ibBytes[i]))
	}

	buf := make([]byte, end)
	w := &writer{buf: buf, order: o}

	version := f.Version
	if version == 0 {
		version = sdkmesh.FileVersion
	}
	w.u32(0, version)
	if f.BigEndian {
		buf[4] = 1
	}
	w.u64(8, headerSize)
	w.u64(16, bufferStart-headerSize)
	w.u64(24, end-bufferStart)
	w.u32(32, uint32(len(f.VertexBuffers)))
	w.u32(36, uint32(len(f.IndexBuffers)))
	w.u32(40, uint32(len(f.Meshes)))
	w.u32(44, uint32(len(f.Subsets)))
	w.u32(48, uint32(len(f.Frames)))
	w.u32(52, uint32(len(f.Materials)))
	w.u64(56, vbOff)
	w.u64(64, ibOff)
	w.u64(72, meshOff)
	w.u64(80, subsetOff)
	w.u64(88, frameOff)
	w.u64(96, matOff)

	for i, vb := range f.VertexBuffers {
		base := int(vbOff) + i*vertexBufferSize
		numVerts := vb.NumVertices
		if numVerts == 0 && vb.Stride > 0 {
			numVerts = uint64(len(vb.Data)) / vb.Stride
		}
		w.u64(base, numVerts)
		w.u64(base+8, uint64(len(vb.Data)))
		w.u64(base+16, vb.Stride)
		for j := 0; j < sdkmesh.MaxVertexElements; j++ {
			e := sdkmesh.VertexElement{Stream: sdkmesh.EndStream, Type: sdkmesh.TypeUnused}
			if j < len(vb.Decl) {
				e = vb.Decl[j]
			}
			eb := base + 24 + j*8
			w.u16(eb, e.Stream)
			w.u16(eb+2, e.Offset)
			buf[eb+4] = uint8(e.Type)
			buf[eb+5] = e.Method
			buf[eb+6] = uint8(e.Usage)
			buf[eb+7] = e.UsageIndex
		}
		w.u64(base+280, vbData[i])
		copy(buf[vbData[i]:], vb.Data)
	}

	for i, ib := range f.IndexBuffers {
		base := int(ibOff) + i*indexBufferSize
		w.u64(base, uint64(len(ib.Indices)))
		w.u64(base+8, uint64(len(ibBytes[i])))
		w.u32(base+16, uint32(ib.Type))
		w.u64(base+24, ibData[i])
		copy(buf[ibData[i]:], ibBytes[i])
	}

	for i, m := range f.Meshes {
		base := int(meshOff) + i*meshSize
		w.str(base, sdkmesh.MaxMeshName, m.Name)
		buf[base+100] = uint8(len(m.VertexBuffers))
		for j, vb := range m.VertexBuffers {
			w.u32(base+104+j*4, vb)
		}
		w.u32(base+168, m.IndexBuffer)
		w.u32(base+172, uint32(len(m.Subsets)))
		w.u32(base+176, uint32(len(m.FrameInfluences)))
		w.vec(base+180, m.Center[:]...)
		w.vec(base+192, m.Extents[:]...)
		w.u64(base+208, subsetLists[i])
		w.u64(base+216, influenceLists[i])
		for j, s := range m.Subsets {
			w.u32(int(subsetLists[i])+j*4, s)
		}
		for j, fi := range m.FrameInfluences {
			w.u32(int(influenceLists[i])+j*4, fi)
		}
	}

	for i, s := range f.Subsets {
		base := int(subsetOff) + i*subsetSize
		w.str(base, sdkmesh.MaxSubsetName, s.Name)
		w.u32(base+100, s.MaterialID)
		w.u32(base+104, uint32(s.PrimitiveType))
		w.u64(base+112, s.IndexStart)
		w.u64(base+120, s.IndexCount)
		w.u64(base+128, s.VertexStart)
		w.u64(base+136, s.VertexCount)
	}

	for i, fr := range f.Frames {
		base := int(frameOff) + i*frameSize
		w.str(base, sdkmesh.MaxFrameName, fr.Name)
		w.u32(base+100, fr.Mesh)
		w.u32(base+104, fr.ParentFrame)
		w.u32(base+108, fr.ChildFrame)
		w.u32(base+112, fr.SiblingFrame)
		w.vec(base+116, fr.Matrix[:]...)
		w.u32(base+180, fr.AnimationDataIndex)
	}

	for i, m := range f.Materials {
		base := int(matOff) + i*materialSize
		w.str(base, sdkmesh.MaxMaterialName, m.Name)
		w.str(base+100, sdkmesh.MaxMaterialPath, m.MaterialInstancePath)
		w.str(base+360, sdkmesh.MaxTextureName, m.DiffuseTexture)
		w.str(base+620, sdkmesh.MaxTextureName, m.NormalTexture)
		w.str(base+880, sdkmesh.MaxTextureName, m.SpecularTexture)
		w.vec(base+1140, m.Diffuse[:]...)
		w.vec(base+1156, m.Ambient[:]...)
		w.vec(base+1172, m.Specular[:]...)
		w.vec(base+1188, m.Emissive[:]...)
		w.vec(base+1204, m.Power)
	}

	return buf
}

type writer struct {
	buf   []byte
	order binary.ByteOrder
}

func (w *writer) u16(off int, v uint16) { w.order.PutUint16(w.buf[off:], v) }
func (w *writer) u32(off int, v uint32) { w.order.PutUint32(w.buf[off:], v) }
func (w *writer) u64(off int, v uint64) { w.order.PutUint64(w.buf[off:], v) }

func (w *writer) vec(off int, vals ...float32) {
	for i, v := range vals {
		w.u32(off+i*4, math.Float32bits(v))
	}
}

// str writes s NUL-padded into a fixed field, truncated to leave room for the terminator.
func (w *writer) str(off, n int, s string) {
	b := []byte(s)
	if len(b) > n-1 {
		b = b[:n-1]
	}
	copy(w.buf[off:off+n], b)
}

// PackFloats encodes vals as consecutive float32 values.
func PackFloats(order binary.ByteOrder, vals ...float32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		order.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// PackIndices encodes indices at the width selected by t.
func PackIndices(order binary.ByteOrder, t sdkmesh.IndexType, indices ...uint32) []byte {
	if t == sdkmesh.Index32 {
		out := make([]byte, len(indices)*4)
		for i, v := range indices {
			order.PutUint32(out[i*4:], v)
		}
		return out
	}
	out := make([]byte, len(indices)*2)
	for i, v := range indices {
		order.PutUint16(out[i*2:], uint16(v))
	}
	return out
}

func Element(offset uint16, t sdkmesh.DeclType, usage sdkmesh.DeclUsage) sdkmesh.VertexElement {
	return sdkmesh.VertexElement{Offset: offset, Type: t, Usage: usage}
}

// StandardDecl is POSITION float3 @0, NORMAL float3 @12, TEXCOORD float2 @24 (stride 32).
func StandardDecl() []sdkmesh.VertexElement {
	return []sdkmesh.VertexElement{
		Element(0, sdkmesh.TypeFloat3, sdkmesh.UsagePosition),
		Element(12, sdkmesh.TypeFloat3, sdkmesh.UsageNormal),
		Element(24, sdkmesh.TypeFloat2, sdkmesh.UsageTexCoord),
	}
}

// Vertex is one StandardDecl vertex.
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
	UV     mgl32.Vec2
}

// PackVertices encodes vertices in StandardDecl layout.
func PackVertices(order binary.ByteOrder, verts ...Vertex) []byte {
	var vals []float32
	for _, v := range verts {
		vals = append(vals, v.Pos[:]...)
		vals = append(vals, v.Normal[:]...)
		vals = append(vals, v.UV[:]...)
	}
	return PackFloats(order, vals...)
}

// Triangle returns a container with one mesh, one triangle-list subset, three
// vertices and a single triangle (0, 1, 2) in an index buffer of type t.
func Triangle(t sdkmesh.IndexType) *File {
	verts := []Vertex{
		{Pos: mgl32.Vec3{0, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 0}},
		{Pos: mgl32.Vec3{1, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 0}},
		{Pos: mgl32.Vec3{0, 1, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 1}},
	}
	return &File{
		VertexBuffers: []VertexBuffer{{
			Stride: 32,
			Decl:   StandardDecl(),
			Data:   PackVertices(binary.LittleEndian, verts...),
		}},
		IndexBuffers: []IndexBuffer{{Type: t, Indices: []uint32{0, 1, 2}}},
		Meshes: []Mesh{{
			Name:          "tri",
			VertexBuffers: []uint32{0},
			IndexBuffer:   0,
			Subsets:       []uint32{0},
		}},
		Subsets: []sdkmesh.Subset{{
			Name:          "sub0",
			MaterialID:    0,
			PrimitiveType: sdkmesh.TriangleList,
			IndexStart:    0,
			IndexCount:    3,
			VertexStart:   0,
			VertexCount:   3,
		}},
		Materials: []sdkmesh.Material{{
			Name:    "red",
			Diffuse: mgl32.Vec4{1, 0, 0, 1},
			Ambient: mgl32.Vec4{0.1, 0.1, 0.1, 1},
			Power:   16,
		}},
	}
}

// Quad returns a container with one mesh of two subsets sharing four
// vertices: subset 0 is triangle (0,1,2), subset 1 is triangle (2,1,3).
func Quad(t sdkmesh.IndexType) *File {
	f := Triangle(t)
	f.VertexBuffers[0].Data = PackVertices(binary.LittleEndian,
		Vertex{Pos: mgl32.Vec3{0, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 0}},
		Vertex{Pos: mgl32.Vec3{1, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 0}},
		Vertex{Pos: mgl32.Vec3{0, 1, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 1}},
		Vertex{Pos: mgl32.Vec3{1, 1, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 1}},
	)
	f.IndexBuffers[0].Indices = []uint32{0, 1, 2, 2, 1, 3}
	f.Meshes[0].Name = "quad"
	f.Meshes[0].Subsets = []uint32{0, 1}
	f.Subsets = append(f.Subsets, sdkmesh.Subset{
		Name:          "sub1",
		MaterialID:    1,
		PrimitiveType: sdkmesh.TriangleList,
		IndexStart:    3,
		IndexCount:    3,
		VertexStart:   0,
		VertexCount:   4,
	})
	f.Materials = append(f.Materials, sdkmesh.Material{
		Name:           "blue",
		DiffuseTexture: "blue.dds",
		NormalTexture:  "blue_n.dds",
		Diffuse:        mgl32.Vec4{0, 0, 1, 1},
		Power:          8,
	})
	return f
}
