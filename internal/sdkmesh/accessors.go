package sdkmesh

import (
	"encoding/binary"
	"math"
)

// Accessors are nil-safe and range-safe: a nil or never-loaded container, or
// an out-of-range index, yields zero values instead of panicking.

func (c *Container) Header() Header {
	if c == nil {
		return Header{}
	}
	return c.header
}

// ByteOrder returns the order used for every table and raw buffer.
func (c *Container) ByteOrder() binary.ByteOrder {
	if c == nil || c.order == nil {
		return binary.LittleEndian
	}
	return c.order
}

func (c *Container) NumMeshes() int {
	if c == nil {
		return 0
	}
	return len(c.meshes)
}

func (c *Container) NumMaterials() int {
	if c == nil {
		return 0
	}
	return len(c.materials)
}

func (c *Container) NumVBs() int {
	if c == nil {
		return 0
	}
	return len(c.vertexBuffers)
}

func (c *Container) NumIBs() int {
	if c == nil {
		return 0
	}
	return len(c.indexBuffers)
}

func (c *Container) NumFrames() int {
	if c == nil {
		return 0
	}
	return len(c.frames)
}

func (c *Container) Mesh(i int) *Mesh {
	if c == nil || i < 0 || i >= len(c.meshes) {
		return nil
	}
	return &c.meshes[i]
}

func (c *Container) NumSubsets(mesh int) int {
	m := c.Mesh(mesh)
	if m == nil {
		return 0
	}
	return len(m.Subsets)
}

// Subset returns the i-th subset of a mesh, looked up through the mesh's
// subset index list into the global subset table.
func (c *Container) Subset(mesh, i int) *Subset {
	m := c.Mesh(mesh)
	if m == nil || i < 0 || i >= len(m.Subsets) {
		return nil
	}
	id := m.Subsets[i]
	if uint64(id) >= uint64(len(c.subsets)) {
		return nil
	}
	return &c.subsets[id]
}

func (c *Container) Material(i uint32) *Material {
	if c == nil || uint64(i) >= uint64(len(c.materials)) {
		return nil
	}
	return &c.materials[i]
}

func (c *Container) Frame(i int) *Frame {
	if c == nil || i < 0 || i >= len(c.frames) {
		return nil
	}
	return &c.frames[i]
}

// FindFrame returns the first frame with the given name.
func (c *Container) FindFrame(name string) *Frame {
	if c == nil {
		return nil
	}
	for i := range c.frames {
		if c.frames[i].Name == name {
			return &c.frames[i]
		}
	}
	return nil
}

func (c *Container) VertexBuffer(vb uint32) *VertexBufferHeader {
	if c == nil || uint64(vb) >= uint64(len(c.vertexBuffers)) {
		return nil
	}
	return &c.vertexBuffers[vb]
}

func (c *Container) IndexBuffer(ib uint32) *IndexBufferHeader {
	if c == nil || uint64(ib) >= uint64(len(c.indexBuffers)) {
		return nil
	}
	return &c.indexBuffers[ib]
}

func (c *Container) meshVB(mesh, stream int) *VertexBufferHeader {
	m := c.Mesh(mesh)
	if m == nil || stream < 0 || stream >= MaxVertexStreams {
		return nil
	}
	return c.VertexBuffer(m.VertexBuffers[stream])
}

func (c *Container) meshIB(mesh int) *IndexBufferHeader {
	m := c.Mesh(mesh)
	if m == nil {
		return nil
	}
	return c.IndexBuffer(m.IndexBuffer)
}

// VertexStride returns the stride of a mesh's stream, clamped to the largest int.
func (c *Container) VertexStride(mesh, stream int) int {
	vb := c.meshVB(mesh, stream)
	if vb == nil {
		return 0
	}
	return int(min(vb.StrideBytes, uint64(math.MaxInt)))
}

func (c *Container) NumVertices(mesh, stream int) uint64 {
	vb := c.meshVB(mesh, stream)
	if vb == nil {
		return 0
	}
	return vb.NumVertices
}

func (c *Container) NumIndices(mesh int) uint64 {
	ib := c.meshIB(mesh)
	if ib == nil {
		return 0
	}
	return ib.NumIndices
}

func (c *Container) IndexType(mesh int) IndexType {
	ib := c.meshIB(mesh)
	if ib == nil {
		return Index16
	}
	return ib.IndexType
}

// Elements returns the vertex declaration of a mesh's stream, without the terminator.
func (c *Container) Elements(mesh, stream int) []VertexElement {
	vb := c.meshVB(mesh, stream)
	if vb == nil {
		return nil
	}
	return vb.Elements()
}

// RawVertices returns the raw bytes of vertex buffer vb.
func (c *Container) RawVertices(vb uint32) []byte {
	if c == nil || uint64(vb) >= uint64(len(c.vertexData)) {
		return nil
	}
	return c.vertexData[vb]
}

// RawIndices returns the raw bytes of index buffer ib.
func (c *Container) RawIndices(ib uint32) []byte {
	if c == nil || uint64(ib) >= uint64(len(c.indexData)) {
		return nil
	}
	return c.indexData[ib]
}

// Indices returns a typed view over a mesh's index buffer.
func (c *Container) Indices(mesh int) IndexView {
	m := c.Mesh(mesh)
	if m == nil {
		return IndexView{}
	}
	return c.IndexBufferView(m.IndexBuffer)
}

// IndexBufferView returns a typed view over index buffer ib.
func (c *Container) IndexBufferView(ib uint32) IndexView {
	h := c.IndexBuffer(ib)
	if h == nil {
		return IndexView{}
	}
	return IndexView{
		data:  c.RawIndices(ib),
		typ:   h.IndexType,
		order: c.ByteOrder(),
	}
}

// IndexView reads 16- or 32-bit indices from a raw index buffer.
type IndexView struct {
	data  []byte
	typ   IndexType
	order binary.ByteOrder
}

func (v IndexView) Type() IndexType { return v.typ }

// Len returns how many whole indices the buffer holds.
func (v IndexView) Len() uint64 {
	return uint64(len(v.data) / v.typ.Size())
}

// At returns index i. The caller must keep i below Len.
func (v IndexView) At(i uint64) uint32 {
	if v.typ == Index32 {
		return v.order.Uint32(v.data[i*4:])
	}
	return uint32(v.order.Uint16(v.data[i*2:]))
}
