package sdkmesh

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// Container is a decoded mesh file. It keeps the file bytes; raw vertex and
// index buffers are sub-slices of them. Read-only after Load.
type Container struct {
	data   []byte
	order  binary.ByteOrder
	header Header

	vertexBuffers []VertexBufferHeader
	indexBuffers  []IndexBufferHeader
	meshes        []Mesh
	subsets       []Subset
	frames        []Frame
	materials     []Material

	vertexData [][]byte
	indexData  [][]byte
}

// Open reads a container file. Files ending in .lz4 are LZ4-frame decompressed first.
func Open(path string) (*Container, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sdkmesh: read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".lz4") {
		raw, err = io.ReadAll(lz4.NewReader(bytes.NewReader(raw)))
		if err != nil {
			return nil, fmt.Errorf("sdkmesh: decompress %s: %w", path, err)
		}
	}

	c, err := Load(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load decodes a fully buffered container. Every table and raw buffer must lie
// inside data; the version must equal FileVersion.
func Load(data []byte) (*Container, error) {
	if len(data) == 0 {
		return nil, &FormatError{Table: "header", Err: ErrEmpty}
	}
	if len(data) < headerSize {
		return nil, &FormatError{Table: "header", Err: ErrTruncated,
			Detail: fmt.Sprintf("%d bytes, header needs %d", len(data), headerSize)}
	}

	var order binary.ByteOrder = binary.LittleEndian
	if data[4] != 0 {
		order = binary.BigEndian
	}

	c := &Container{data: data, order: order}
	c.header = decodeHeader(data[:headerSize], order)
	h := &c.header

	if h.Version != FileVersion {
		return nil, &FormatError{Table: "header", Err: ErrUnsupportedVersion,
			Detail: fmt.Sprintf("got %d, want %d", h.Version, FileVersion)}
	}

	vbs, err := c.table("vertex buffer headers", h.VertexStreamHeadersOffset, h.NumVertexBuffers, vertexBufferSize)
	if err != nil {
		return nil, err
	}
	ibs, err := c.table("index buffer headers", h.IndexStreamHeadersOffset, h.NumIndexBuffers, indexBufferSize)
	if err != nil {
		return nil, err
	}
	meshes, err := c.table("meshes", h.MeshDataOffset, h.NumMeshes, meshSize)
	if err != nil {
		return nil, err
	}
	subsets, err := c.table("subsets", h.SubsetDataOffset, h.NumTotalSubsets, subsetSize)
	if err != nil {
		return nil, err
	}
	frames, err := c.table("frames", h.FrameDataOffset, h.NumFrames, frameSize)
	if err != nil {
		return nil, err
	}
	materials, err := c.table("materials", h.MaterialDataOffset, h.NumMaterials, materialSize)
	if err != nil {
		return nil, err
	}

	c.vertexBuffers = make([]VertexBufferHeader, h.NumVertexBuffers)
	for i := range c.vertexBuffers {
		c.vertexBuffers[i] = decodeVertexBuffer(record(vbs, i, vertexBufferSize), order)
	}
	c.indexBuffers = make([]IndexBufferHeader, h.NumIndexBuffers)
	for i := range c.indexBuffers {
		c.indexBuffers[i] = decodeIndexBuffer(record(ibs, i, indexBufferSize), order)
	}
	c.subsets = make([]Subset, h.NumTotalSubsets)
	for i := range c.subsets {
		c.subsets[i] = decodeSubset(record(subsets, i, subsetSize), order)
	}
	c.frames = make([]Frame, h.NumFrames)
	for i := range c.frames {
		c.frames[i] = decodeFrame(record(frames, i, frameSize), order)
	}
	c.materials = make([]Material, h.NumMaterials)
	for i := range c.materials {
		c.materials[i] = decodeMaterial(record(materials, i, materialSize), order)
	}

	c.meshes = make([]Mesh, h.NumMeshes)
	for i := range c.meshes {
		m := decodeMesh(record(meshes, i, meshSize), order)
		if m.Subsets, err = c.indexList(fmt.Sprintf("mesh %d subset list", i), m.SubsetOffset, m.NumSubsets); err != nil {
			return nil, err
		}
		if m.FrameInfluences, err = c.indexList(fmt.Sprintf("mesh %d frame influences", i), m.FrameInfluenceOffset, m.NumFrameInfluences); err != nil {
			return nil, err
		}
		c.meshes[i] = m
	}

	if err := c.resolveBuffers(); err != nil {
		return nil, err
	}

	return c, nil
}

// table returns the bytes of count fixed-size records starting at off.
func (c *Container) table(name string, off uint64, count uint32, size int) ([]byte, error) {
	if count == 0 {
		return nil, nil
	}
	span := uint64(count) * uint64(size)
	if off > uint64(len(c.data)) || span > uint64(len(c.data))-off {
		return nil, &FormatError{Table: name, Offset: off, Err: ErrTruncated,
			Detail: fmt.Sprintf("%d records of %d bytes, file is %d bytes", count, size, len(c.data))}
	}
	return c.data[off : off+span], nil
}

func record(table []byte, i, size int) []byte {
	return table[i*size : (i+1)*size]
}

func (c *Container) indexList(name string, off uint64, count uint32) ([]uint32, error) {
	raw, err := c.table(name, off, count, 4)
	if err != nil {
		return nil, err
	}
	list := make([]uint32, count)
	for i := range list {
		list[i] = c.order.Uint32(raw[i*4:])
	}
	return list, nil
}

// resolveBuffers translates each descriptor's file offset into a slice of the
// raw buffer region that starts at HeaderSize+NonBufferDataSize.
func (c *Container) resolveBuffers() error {
	start := c.header.BufferDataStart()
	if start > uint64(len(c.data)) {
		return &FormatError{Table: "buffer data", Offset: start, Err: ErrTruncated}
	}
	region := c.data[start:]

	slice := func(name string, dataOffset, size uint64) ([]byte, error) {
		if dataOffset < start {
			return nil, &FormatError{Table: name, Offset: dataOffset, Err: ErrBadOffset,
				Detail: fmt.Sprintf("region starts at %d", start)}
		}
		rel := dataOffset - start
		if rel > uint64(len(region)) || size > uint64(len(region))-rel {
			return nil, &FormatError{Table: name, Offset: dataOffset, Err: ErrTruncated,
				Detail: fmt.Sprintf("%d bytes requested", size)}
		}
		return region[rel : rel+size], nil
	}

	c.vertexData = make([][]byte, len(c.vertexBuffers))
	for i, vb := range c.vertexBuffers {
		name := fmt.Sprintf("vertex buffer %d", i)
		if vb.NumVertices > 0 && vb.StrideBytes > vb.SizeBytes {
			return &FormatError{Table: name, Offset: vb.DataOffset, Err: ErrBadOffset,
				Detail: fmt.Sprintf("stride %d exceeds buffer size %d", vb.StrideBytes, vb.SizeBytes)}
		}
		b, err := slice(name, vb.DataOffset, vb.SizeBytes)
		if err != nil {
			return err
		}
		c.vertexData[i] = b
	}

	c.indexData = make([][]byte, len(c.indexBuffers))
	for i, ib := range c.indexBuffers {
		b, err := slice(fmt.Sprintf("index buffer %d", i), ib.DataOffset, ib.SizeBytes)
		if err != nil {
			return err
		}
		c.indexData[i] = b
	}
	return nil
}
