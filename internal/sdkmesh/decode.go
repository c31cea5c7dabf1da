package sdkmesh

import "encoding/binary"

func decodeHeader(data []byte, order binary.ByteOrder) Header {
	r := newReader(data, order)
	var h Header
	h.Version = r.readU32()
	h.IsBigEndian = r.readU8() != 0
	r.seek(8)
	h.HeaderSize = r.readU64()
	h.NonBufferDataSize = r.readU64()
	h.BufferDataSize = r.readU64()
	h.NumVertexBuffers = r.readU32()
	h.NumIndexBuffers = r.readU32()
	h.NumMeshes = r.readU32()
	h.NumTotalSubsets = r.readU32()
	h.NumFrames = r.readU32()
	h.NumMaterials = r.readU32()
	h.VertexStreamHeadersOffset = r.readU64()
	h.IndexStreamHeadersOffset = r.readU64()
	h.MeshDataOffset = r.readU64()
	h.SubsetDataOffset = r.readU64()
	h.FrameDataOffset = r.readU64()
	h.MaterialDataOffset = r.readU64()
	return h
}

func decodeElement(r *reader) VertexElement {
	return VertexElement{
		Stream:     r.readU16(),
		Offset:     r.readU16(),
		Type:       DeclType(r.readU8()),
		Method:     r.readU8(),
		Usage:      DeclUsage(r.readU8()),
		UsageIndex: r.readU8(),
	}
}

func decodeVertexBuffer(data []byte, order binary.ByteOrder) VertexBufferHeader {
	r := newReader(data, order)
	var vb VertexBufferHeader
	vb.NumVertices = r.readU64()
	vb.SizeBytes = r.readU64()
	vb.StrideBytes = r.readU64()
	for i := range vb.Decl {
		vb.Decl[i] = decodeElement(r)
	}
	vb.DataOffset = r.readU64()
	return vb
}

func decodeIndexBuffer(data []byte, order binary.ByteOrder) IndexBufferHeader {
	r := newReader(data, order)
	var ib IndexBufferHeader
	ib.NumIndices = r.readU64()
	ib.SizeBytes = r.readU64()
	ib.IndexType = IndexType(r.readU32())
	r.seek(24)
	ib.DataOffset = r.readU64()
	return ib
}

func decodeMesh(data []byte, order binary.ByteOrder) Mesh {
	r := newReader(data, order)
	var m Mesh
	m.Name = r.readStr(MaxMeshName)
	m.NumVertexBuffers = r.readU8()
	r.seek(104)
	for i := range m.VertexBuffers {
		m.VertexBuffers[i] = r.readU32()
	}
	m.IndexBuffer = r.readU32()
	m.NumSubsets = r.readU32()
	m.NumFrameInfluences = r.readU32()
	m.BoundingBoxCenter = r.readVec3()
	m.BoundingBoxExtents = r.readVec3()
	r.seek(208)
	m.SubsetOffset = r.readU64()
	m.FrameInfluenceOffset = r.readU64()
	return m
}

func decodeSubset(data []byte, order binary.ByteOrder) Subset {
	r := newReader(data, order)
	var s Subset
	s.Name = r.readStr(MaxSubsetName)
	s.MaterialID = r.readU32()
	s.PrimitiveType = PrimitiveType(r.readU32())
	r.seek(112)
	s.IndexStart = r.readU64()
	s.IndexCount = r.readU64()
	s.VertexStart = r.readU64()
	s.VertexCount = r.readU64()
	return s
}

// decodeFrame reads the 4x4 matrix in storage order. The file holds row-major
// row-vector matrices, which land in mgl32's column-major layout as the
// equivalent column-vector transform.
func decodeFrame(data []byte, order binary.ByteOrder) Frame {
	r := newReader(data, order)
	var f Frame
	f.Name = r.readStr(MaxFrameName)
	f.Mesh = r.readU32()
	f.ParentFrame = r.readU32()
	f.ChildFrame = r.readU32()
	f.SiblingFrame = r.readU32()
	for i := range f.Matrix {
		f.Matrix[i] = r.readF32()
	}
	f.AnimationDataIndex = r.readU32()
	return f
}

func decodeMaterial(data []byte, order binary.ByteOrder) Material {
	r := newReader(data, order)
	var m Material
	m.Name = r.readStr(MaxMaterialName)
	m.MaterialInstancePath = r.readStr(MaxMaterialPath)
	m.DiffuseTexture = r.readStr(MaxTextureName)
	m.NormalTexture = r.readStr(MaxTextureName)
	m.SpecularTexture = r.readStr(MaxTextureName)
	m.Diffuse = r.readVec4()
	m.Ambient = r.readVec4()
	m.Specular = r.readVec4()
	m.Emissive = r.readVec4()
	m.Power = r.readF32()
	return m
}
