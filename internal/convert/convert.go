// Package convert runs one mesh-to-OBJ conversion session.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sdkmesh2obj/internal/logx"
	"sdkmesh2obj/internal/objexport"
	"sdkmesh2obj/internal/sdkmesh"
)

// Result summarizes one session. Errors counts recoverable problems: skipped
// non-triangle subsets plus subsets that failed to write.
type Result struct {
	Input     string          `json:"input"`
	Output    string          `json:"output"`
	Material  string          `json:"material"`
	Meshes    int             `json:"meshes"`
	Materials int             `json:"materials"`
	Subsets   int             `json:"subsets"`
	Written   int             `json:"written"`
	Skipped   int             `json:"skipped"`
	Failed    int             `json:"failed"`
	Errors    int             `json:"errors"`
	Stats     objexport.Stats `json:"stats"`
}

// MaterialPath derives the MTL path by replacing the output's extension.
func MaterialPath(objPath string) string {
	return strings.TrimSuffix(objPath, filepath.Ext(objPath)) + ".mtl"
}

// Options configures a file-to-file conversion.
type Options struct {
	Input  string
	Output string
	Status io.Writer // per-mesh report; nil discards it
	Log    *logx.Logger
}

// Run loads opts.Input and writes opts.Output plus its MTL companion. The
// loaded container is returned for further use even when the export fails.
// The returned error is fatal; recoverable problems are counted in Result.Errors.
func Run(opts Options) (*sdkmesh.Container, Result, error) {
	c, err := sdkmesh.Open(opts.Input)
	if err != nil {
		return nil, Result{}, err
	}
	res, err := Export(c, opts.Output, opts.Status, opts.Log)
	res.Input = opts.Input
	return c, res, err
}

// Export writes c to objPath and the derived MTL path. Both files are created
// before anything is written; if the second cannot be created the first is removed.
func Export(c *sdkmesh.Container, objPath string, status io.Writer, log *logx.Logger) (Result, error) {
	mtlPath := MaterialPath(objPath)
	if mtlPath == objPath {
		return Result{}, fmt.Errorf("convert: output %s would be overwritten by its material library", objPath)
	}

	geom, err := os.Create(objPath)
	if err != nil {
		return Result{}, fmt.Errorf("convert: create %s: %w", objPath, err)
	}
	mat, err := os.Create(mtlPath)
	if err != nil {
		geom.Close()
		os.Remove(objPath)
		return Result{}, fmt.Errorf("convert: create %s: %w", mtlPath, err)
	}

	res, werr := Write(c, geom, mat, filepath.Base(mtlPath), status, log)
	res.Output = objPath
	res.Material = mtlPath

	cerr := errors.Join(geom.Close(), mat.Close())
	if werr != nil {
		return res, werr
	}
	if cerr != nil {
		return res, fmt.Errorf("convert: close outputs: %w", cerr)
	}
	return res, nil
}

// Write runs a session against already-open outputs: every material, then
// every mesh as an object with its subsets. Subsets that are not triangle
// lists are skipped and counted once each.
func Write(c *sdkmesh.Container, geom, mat io.Writer, mtlRef string, status io.Writer, log *logx.Logger) (Result, error) {
	if status == nil {
		status = io.Discard
	}
	res := Result{
		Meshes:    c.NumMeshes(),
		Materials: c.NumMaterials(),
	}
	e := objexport.New(c, geom, mat, mtlRef, log)

	fmt.Fprintf(status, "\n# Materials\n")
	for i := 0; i < c.NumMaterials(); i++ {
		m := c.Material(uint32(i))
		fmt.Fprintf(status, "Material: %s\n", m.Name)
		fmt.Fprintf(status, "- DiffuseMapName: %s\n", m.DiffuseTexture)
		fmt.Fprintf(status, "- NormalMapName: %s\n", m.NormalTexture)
		fmt.Fprintf(status, "- SpecularMapName: %s\n", m.SpecularTexture)
		if err := e.WriteMaterial(m); err != nil {
			return res, err
		}
	}

	fmt.Fprintf(status, "\n# Meshes\n")
	for mi := 0; mi < c.NumMeshes(); mi++ {
		mesh := c.Mesh(mi)
		fmt.Fprintf(status, "\nMesh %d %q - %s - Prims: %d, Verts: %d\n",
			mi, mesh.Name, c.IndexType(mi), c.NumIndices(mi)/3, c.NumVertices(mi, 0))
		fmt.Fprintf(status, " - Vertex buffer elements\n")
		for _, el := range c.Elements(mi, 0) {
			fmt.Fprintf(status, "   %s%d %s @%d\n", el.Usage, el.UsageIndex, el.Type, el.Offset)
		}
		if int(mesh.NumVertexBuffers) > 1 {
			log.Debugf("mesh %q: %d vertex streams, only stream 0 is exported", mesh.Name, mesh.NumVertexBuffers)
		}

		e.WriteObject(mesh.Name)

		n := c.NumSubsets(mi)
		for si := 0; si < n; si++ {
			res.Subsets++
			sub := c.Subset(mi, si)
			if sub == nil {
				log.Errorf("mesh %q: subset %d missing from subset table", mesh.Name, si)
				res.Failed++
				continue
			}

			matName := "?"
			if m := c.Material(sub.MaterialID); m != nil {
				matName = m.Name
			}
			fmt.Fprintf(status, "- Subset %d %s - %s\n", si, matName, sub.PrimitiveType)
			fmt.Fprintf(status, "  + Indices start: %d\n", sub.IndexStart)
			fmt.Fprintf(status, "  + Indices count: %d\n", sub.IndexCount)
			fmt.Fprintf(status, "  + Face count: %d\n", sub.IndexCount/3)

			if sub.PrimitiveType != sdkmesh.TriangleList {
				fmt.Fprintf(status, "  -> skipped: only PT_TRIANGLE_LIST is exported\n")
				log.Errorf("mesh %q subset %d: %s not supported", mesh.Name, si, sub.PrimitiveType)
				res.Skipped++
				continue
			}
			if e.WriteSubset(mi, mesh, sub, n > 1) {
				fmt.Fprintf(status, "  -> written\n")
				res.Written++
			} else {
				fmt.Fprintf(status, "  -> write error\n")
				res.Failed++
			}
		}
	}

	res.Errors = res.Skipped + res.Failed
	res.Stats = e.Stats()
	if res.Errors > 0 {
		fmt.Fprintf(status, "\nErrors: %d\n", res.Errors)
	} else {
		fmt.Fprintf(status, "\nFinished\n")
	}

	if err := e.Flush(); err != nil {
		return res, err
	}
	return res, nil
}
