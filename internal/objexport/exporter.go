// Package objexport writes container meshes as Wavefront OBJ geometry plus an
// MTL material library.
package objexport

import (
	"bufio"
	"fmt"
	"io"

	"sdkmesh2obj/internal/logx"
	"sdkmesh2obj/internal/sdkmesh"
)

// HeaderComment opens both output files.
const HeaderComment = "# exported by sdkmesh2obj"

// Stats counts what an Exporter has written so far.
type Stats struct {
	Groups      int `json:"groups"`
	Vertices    int `json:"vertices"`
	Faces       int `json:"faces"`
	Diagnostics int `json:"diagnostics"` // unsupported attribute formats
	Warnings    int `json:"warnings"`    // semantics with no OBJ mapping
}

// Exporter is one conversion session. Group numbering and the running vertex
// number live here, so separate sessions never share state. Not safe for
// concurrent use.
type Exporter struct {
	c    *sdkmesh.Container
	geom *bufio.Writer
	mat  *bufio.Writer
	log  *logx.Logger

	group      int
	nextVertex uint64 // OBJ numbering is 1-based
	stats      Stats
	err        error
}

// New starts a session and writes both file headers. mtlRef is the name the
// geometry file uses to reference the material library.
func New(c *sdkmesh.Container, geom, mat io.Writer, mtlRef string, log *logx.Logger) *Exporter {
	e := &Exporter{
		c:          c,
		geom:       bufio.NewWriter(geom),
		mat:        bufio.NewWriter(mat),
		log:        log,
		nextVertex: 1,
	}
	e.geomf("%s\n", HeaderComment)
	e.geomf("mtllib %s\n", mtlRef)
	e.matf("%s\n", HeaderComment)
	return e
}

func (e *Exporter) geomf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(e.geom, format, args...); err != nil && e.err == nil {
		e.err = fmt.Errorf("objexport: write geometry: %w", err)
	}
}

func (e *Exporter) matf(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(e.mat, format, args...); err != nil && e.err == nil {
		e.err = fmt.Errorf("objexport: write material: %w", err)
	}
}

// WriteMaterial emits one newmtl record. Texture map lines are written only
// for non-empty paths.
func (e *Exporter) WriteMaterial(m *sdkmesh.Material) error {
	if m == nil {
		return fmt.Errorf("objexport: nil material")
	}
	e.matf("newmtl mat %s\n", m.Name)
	e.matf("Kd %f %f %f %f\n", m.Diffuse[0], m.Diffuse[1], m.Diffuse[2], m.Diffuse[3])
	e.matf("Ka %f %f %f %f\n", m.Ambient[0], m.Ambient[1], m.Ambient[2], m.Ambient[3])
	e.matf("Ks %f %f %f %f\n", m.Specular[0], m.Specular[1], m.Specular[2], m.Specular[3])
	e.matf("Ke %f %f %f %f\n", m.Emissive[0], m.Emissive[1], m.Emissive[2], m.Emissive[3])
	e.matf("Ns %f\n", m.Power)

	if m.DiffuseTexture != "" {
		e.matf("map_Kd %s\n", m.DiffuseTexture)
	}
	if m.NormalTexture != "" {
		e.matf("map_bump %s\n", m.NormalTexture)
	}
	if m.SpecularTexture != "" {
		e.matf("map_Ks %s\n", m.SpecularTexture)
	}
	return e.err
}

// WriteObject starts a named object. Called once per mesh.
func (e *Exporter) WriteObject(name string) {
	e.geomf("o %s\n", name)
}

// WriteSubset writes the vertices and faces of one triangle-list subset. It
// returns false, writing nothing, when the subset's index range or any vertex
// it references lies outside the mesh's buffers. Attributes in unsupported
// formats are reported and skipped; the rest of the subset is still written.
func (e *Exporter) WriteSubset(meshID int, mesh *sdkmesh.Mesh, subset *sdkmesh.Subset, writeGroup bool) bool {
	if mesh == nil || subset == nil {
		return false
	}

	vbID := mesh.VertexBuffers[0]
	vb := e.c.VertexBuffer(vbID)
	if vb == nil || vb.StrideBytes == 0 {
		e.log.Errorf("mesh %q: no vertex buffer on stream 0", mesh.Name)
		return false
	}
	raw := e.c.RawVertices(vbID)
	stride := vb.StrideBytes
	indices := e.c.IndexBufferView(mesh.IndexBuffer)

	tris, ok := triangles(indices, subset.IndexStart, subset.IndexCount)
	if !ok {
		e.log.Errorf("mesh %q subset %q: index range [%d, +%d) outside %d indices",
			mesh.Name, subset.Name, subset.IndexStart, subset.IndexCount, indices.Len())
		return false
	}

	slots, unique := dedup(tris)
	fit := uint64(len(raw)) / stride
	for _, v := range unique {
		if uint64(v) >= fit {
			e.log.Errorf("mesh %q subset %q: vertex %d outside %d-byte vertex buffer",
				mesh.Name, subset.Name, v, len(raw))
			return false
		}
	}

	if writeGroup {
		e.geomf("g grp %d\n", e.group)
		e.group++
		e.stats.Groups++
	}

	order := e.c.ByteOrder()
	for _, el := range e.c.Elements(meshID, 0) {
		var prefix string
		var want sdkmesh.DeclType
		switch el.Usage {
		case sdkmesh.UsagePosition:
			prefix, want = "v", sdkmesh.TypeFloat3
		case sdkmesh.UsageNormal:
			prefix, want = "vn", sdkmesh.TypeFloat3
		case sdkmesh.UsageTexCoord:
			prefix, want = "vt", sdkmesh.TypeFloat2
		default:
			e.stats.Warnings++
			e.log.Warnf("mesh %q: no OBJ mapping for %s, skipped", mesh.Name, el.Usage)
			continue
		}
		if el.Type != want {
			e.stats.Diagnostics++
			e.log.Errorf("mesh %q: %s in %s is not supported, expected %s", mesh.Name, el.Usage, el.Type, want)
			continue
		}

		for _, v := range unique {
			vertex := raw[uint64(v)*stride : (uint64(v)+1)*stride]
			val, err := el.Decode(vertex, order)
			if err != nil {
				// Element lies past the stride; nothing sensible to write for it.
				e.stats.Diagnostics++
				e.log.Errorf("mesh %q: %v", mesh.Name, err)
				break
			}
			switch el.Usage {
			case sdkmesh.UsagePosition:
				e.geomf("v %f %f %f\n", val[0], val[1], val[2])
				e.stats.Vertices++
			case sdkmesh.UsageNormal:
				e.geomf("vn %f %f %f\n", val[0], val[1], val[2])
			default:
				e.geomf("%s %f %f\n", prefix, val[0], 1-val[1])
			}
		}
	}

	if m := e.c.Material(subset.MaterialID); m != nil {
		e.geomf("usemtl mat %s\n", m.Name)
	} else {
		e.log.Warnf("mesh %q subset %q: material %d not found", mesh.Name, subset.Name, subset.MaterialID)
	}
	e.geomf("s off\n")

	for _, tri := range tris {
		a := uint64(slots[tri[0]]) + e.nextVertex
		b := uint64(slots[tri[1]]) + e.nextVertex
		c := uint64(slots[tri[2]]) + e.nextVertex
		e.geomf("f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		e.stats.Faces++
	}

	e.nextVertex += uint64(len(unique))
	return true
}

// Flush writes any buffered output of both files and returns the first write error.
func (e *Exporter) Flush() error {
	if err := e.geom.Flush(); err != nil && e.err == nil {
		e.err = fmt.Errorf("objexport: flush geometry: %w", err)
	}
	if err := e.mat.Flush(); err != nil && e.err == nil {
		e.err = fmt.Errorf("objexport: flush material: %w", err)
	}
	return e.err
}

func (e *Exporter) Stats() Stats {
	return e.stats
}

// triangles reads count indices from start as whole triangles. A trailing
// partial triangle is dropped.
func triangles(v sdkmesh.IndexView, start, count uint64) ([][3]uint32, bool) {
	n := v.Len()
	if start > n || count > n-start {
		return nil, false
	}
	tris := make([][3]uint32, count/3)
	for t := range tris {
		i := start + uint64(t)*3
		tris[t] = [3]uint32{v.At(i), v.At(i + 1), v.At(i + 2)}
	}
	return tris, true
}

// dedup assigns each distinct vertex index the next slot in first-seen order.
func dedup(tris [][3]uint32) (map[uint32]uint32, []uint32) {
	slots := make(map[uint32]uint32)
	var unique []uint32
	for _, tri := range tris {
		for _, v := range tri {
			if _, ok := slots[v]; !ok {
				slots[v] = uint32(len(unique))
				unique = append(unique, v)
			}
		}
	}
	return slots, unique
}
