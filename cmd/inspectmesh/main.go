package main

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"

	"sdkmesh2obj/internal/sdkmesh"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: inspectmesh FILE.sdkmesh [...]")
		os.Exit(1)
	}

	failed := false
	for _, arg := range os.Args[1:] {
		c, err := sdkmesh.Open(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			failed = true
			continue
		}
		inspect(arg, c)
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(path string, c *sdkmesh.Container) {
	h := c.Header()
	fmt.Printf("\n=== %s (v%d, %s) ===\n", path, h.Version, c.ByteOrder())
	fmt.Printf("header=%d non-buffer=%d buffer=%d (data starts at %d)\n",
		h.HeaderSize, h.NonBufferDataSize, h.BufferDataSize, h.BufferDataStart())
	fmt.Printf("tables: vb=%d@%d ib=%d@%d mesh=%d@%d subset=%d@%d frame=%d@%d material=%d@%d\n",
		h.NumVertexBuffers, h.VertexStreamHeadersOffset,
		h.NumIndexBuffers, h.IndexStreamHeadersOffset,
		h.NumMeshes, h.MeshDataOffset,
		h.NumTotalSubsets, h.SubsetDataOffset,
		h.NumFrames, h.FrameDataOffset,
		h.NumMaterials, h.MaterialDataOffset)

	fmt.Println("--- VERTEX BUFFERS ---")
	for i := 0; i < c.NumVBs(); i++ {
		vb := c.VertexBuffer(uint32(i))
		fmt.Printf("  VB[%d]: n=%d stride=%d size=%d offset=%d\n", i, vb.NumVertices, vb.StrideBytes, vb.SizeBytes, vb.DataOffset)
		raw := c.RawVertices(uint32(i))
		for _, el := range vb.Elements() {
			line := fmt.Sprintf("    +%-3d %-10s %s[%d]", el.Offset, el.Type, el.Usage, el.UsageIndex)
			if vb.StrideBytes > 0 && uint64(len(raw)) >= vb.StrideBytes {
				if v, err := el.Decode(raw[:vb.StrideBytes], c.ByteOrder()); err == nil {
					line += fmt.Sprintf(" first=(%.4g, %.4g, %.4g, %.4g)", v[0], v[1], v[2], v[3])
				} else {
					line += " " + err.Error()
				}
			}
			fmt.Println(line)
		}
	}

	fmt.Println("--- INDEX BUFFERS ---")
	for i := 0; i < c.NumIBs(); i++ {
		ib := c.IndexBuffer(uint32(i))
		fmt.Printf("  IB[%d]: n=%d %s size=%d offset=%d\n", i, ib.NumIndices, ib.IndexType, ib.SizeBytes, ib.DataOffset)
	}

	fmt.Println("--- MESHES ---")
	for m := 0; m < c.NumMeshes(); m++ {
		mesh := c.Mesh(m)
		fmt.Printf("  Mesh[%d] %q: streams=%d ib=%d subsets=%d influences=%d\n",
			m, mesh.Name, mesh.NumVertexBuffers, mesh.IndexBuffer, len(mesh.Subsets), len(mesh.FrameInfluences))
		for s := 0; s < c.NumSubsets(m); s++ {
			sub := c.Subset(m, s)
			if sub == nil {
				fmt.Printf("    Subset[%d]: out of range\n", s)
				continue
			}
			matName := "MISSING"
			if mat := c.Material(sub.MaterialID); mat != nil {
				matName = mat.Name
			}
			fmt.Printf("    Subset[%d] %q: %s indices=[%d,+%d) vertices=[%d,+%d) material=%d (%s)\n",
				s, sub.Name, sub.PrimitiveType, sub.IndexStart, sub.IndexCount,
				sub.VertexStart, sub.VertexCount, sub.MaterialID, matName)
		}
		printBounds(c, m, mesh)
	}

	fmt.Println("--- MATERIALS ---")
	for i := 0; i < c.NumMaterials(); i++ {
		mat := c.Material(uint32(i))
		fmt.Printf("  Mat[%d] %q: diffuse=%q normal=%q specular=%q power=%.1f\n",
			i, mat.Name, mat.DiffuseTexture, mat.NormalTexture, mat.SpecularTexture, mat.Power)
	}

	if c.NumFrames() > 0 {
		fmt.Println("--- FRAMES ---")
		for i := 0; i < c.NumFrames(); i++ {
			f := c.Frame(i)
			fmt.Printf("  Frame[%d] %q: mesh=%d parent=%d child=%d sibling=%d translation=(%.3g, %.3g, %.3g)\n",
				i, f.Name, int32(f.Mesh), int32(f.ParentFrame), int32(f.ChildFrame), int32(f.SiblingFrame),
				f.Matrix[12], f.Matrix[13], f.Matrix[14])
		}
	}
}

// printBounds compares the stored bounding box with the extent of the
// decoded stream-0 positions.
func printBounds(c *sdkmesh.Container, m int, mesh *sdkmesh.Mesh) {
	var pos *sdkmesh.VertexElement
	for _, el := range c.Elements(m, 0) {
		if el.Usage == sdkmesh.UsagePosition {
			el := el
			pos = &el
			break
		}
	}
	if pos == nil {
		fmt.Println("    no POSITION on stream 0")
		return
	}

	vb := mesh.VertexBuffers[0]
	stride := uint64(c.VertexStride(m, 0))
	raw := c.RawVertices(vb)
	if stride == 0 {
		return
	}

	var axes [3][]float64
	for off := uint64(0); off+stride <= uint64(len(raw)); off += stride {
		v, err := pos.Decode(raw[off:off+stride], c.ByteOrder())
		if err != nil {
			fmt.Printf("    %v\n", err)
			return
		}
		for k := 0; k < 3; k++ {
			axes[k] = append(axes[k], float64(v[k]))
		}
	}
	if len(axes[0]) == 0 {
		return
	}

	var lo, hi [3]float64
	for k := 0; k < 3; k++ {
		lo[k], hi[k] = floats.Min(axes[k]), floats.Max(axes[k])
	}
	center, extents := mesh.BoundingBoxCenter, mesh.BoundingBoxExtents
	fmt.Printf("    decoded min=(%.3g, %.3g, %.3g) max=(%.3g, %.3g, %.3g)\n", lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
	fmt.Printf("    stored  min=(%.3g, %.3g, %.3g) max=(%.3g, %.3g, %.3g)\n",
		center[0]-extents[0], center[1]-extents[1], center[2]-extents[2],
		center[0]+extents[0], center[1]+extents[1], center[2]+extents[2])
}
