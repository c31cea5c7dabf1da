// Package preview renders a container's triangle-list subsets to an image.
package preview

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"sdkmesh2obj/internal/logx"
	"sdkmesh2obj/internal/postprocess"
	"sdkmesh2obj/internal/raster"
	"sdkmesh2obj/internal/sdkmesh"
	"sdkmesh2obj/internal/texture"
)

// Options controls the camera and output size.
type Options struct {
	Size        int
	Supersample int
	Yaw         float32 // degrees around +Y
	Pitch       float32 // degrees around +X, applied after yaw
	FillRatio   float64 // 0 keeps the framing of the projection
}

// DefaultOptions is a three-quarter view from slightly above.
func DefaultOptions() Options {
	return Options{Size: 256, Supersample: 2, Yaw: 35, Pitch: 20}
}

type triangle struct {
	pos  [3]mgl32.Vec3
	uv   [3]mgl32.Vec2
	surf *raster.Surface
}

// Render draws every triangle-list subset using stream-0 POSITION and
// TEXCOORD. Diffuse textures come from textures when non-nil; otherwise
// the material's diffuse color is used.
func Render(c *sdkmesh.Container, textures texture.Resolver, opts Options, log *logx.Logger) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = 256
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}

	tris := collect(c, textures, log)
	renderSize := opts.Size * opts.Supersample
	if len(tris) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	}

	view := mgl32.HomogRotate3DX(mgl32.DegToRad(opts.Pitch)).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(opts.Yaw)))

	lo := mgl32.Vec3{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))}
	hi := lo.Mul(-1)
	for i := range tris {
		for k := range tris[i].pos {
			p := view.Mul4x1(tris[i].pos[k].Vec4(1)).Vec3()
			tris[i].pos[k] = p
			for a := 0; a < 3; a++ {
				lo[a] = min(lo[a], p[a])
				hi[a] = max(hi[a], p[a])
			}
		}
	}

	center := lo.Add(hi).Mul(0.5)
	span := float64(max(hi[0]-lo[0], hi[1]-lo[1]))
	if span < 1e-6 {
		span = 1e-6
	}
	margin := float64(8 * opts.Supersample)
	scale := (float64(renderSize) - 2*margin) / span
	half := float64(renderSize) / 2

	project := func(p mgl32.Vec3) mgl64.Vec3 {
		d := p.Sub(center)
		return mgl64.Vec3{half + float64(d[0])*scale, half - float64(d[1])*scale, float64(d[2])}
	}

	fb := raster.NewFrameBuffer(renderSize, renderSize)
	lc := raster.DefaultLightConfig()
	for _, t := range tris {
		var v [3]raster.Vertex
		for k := range v {
			v[k] = raster.Vertex{
				Pos: project(t.pos[k]),
				UV:  [2]float64{float64(t.uv[k][0]), float64(t.uv[k][1])},
			}
		}
		e1 := t.pos[1].Sub(t.pos[0])
		e2 := t.pos[2].Sub(t.pos[0])
		n := e1.Cross(e2)
		raster.RasterizeTriangle(fb, v, mgl64.Vec3{float64(n[0]), float64(n[1]), float64(n[2])}, t.surf, &lc)
	}

	img := fb.Image()
	if opts.Supersample > 1 {
		img = postprocess.Downsample(img, opts.Size, opts.Size)
	}
	if opts.FillRatio > 0 {
		img = postprocess.CropAndCenter(img, opts.Size, opts.FillRatio)
	}
	return img
}

// collect decodes the triangles of every triangle-list subset. Subsets whose
// indices or vertices fall outside their buffers are skipped.
func collect(c *sdkmesh.Container, textures texture.Resolver, log *logx.Logger) []triangle {
	var tris []triangle
	surfaces := make(map[uint32]*raster.Surface)
	order := c.ByteOrder()

	for mi := 0; mi < c.NumMeshes(); mi++ {
		mesh := c.Mesh(mi)
		vb := c.VertexBuffer(mesh.VertexBuffers[0])
		if vb == nil || vb.StrideBytes == 0 {
			continue
		}
		raw := c.RawVertices(mesh.VertexBuffers[0])
		stride := vb.StrideBytes
		fit := uint64(len(raw)) / stride

		var posEl, uvEl *sdkmesh.VertexElement
		elems := c.Elements(mi, 0)
		for i := range elems {
			switch {
			case elems[i].Usage == sdkmesh.UsagePosition && posEl == nil:
				posEl = &elems[i]
			case elems[i].Usage == sdkmesh.UsageTexCoord && uvEl == nil:
				uvEl = &elems[i]
			}
		}
		if posEl == nil {
			log.Debugf("preview: mesh %q has no position element", mesh.Name)
			continue
		}

		indices := c.IndexBufferView(mesh.IndexBuffer)
		for si := 0; si < c.NumSubsets(mi); si++ {
			sub := c.Subset(mi, si)
			if sub == nil || sub.PrimitiveType != sdkmesh.TriangleList {
				continue
			}
			n := indices.Len()
			if sub.IndexStart > n || sub.IndexCount > n-sub.IndexStart {
				continue
			}

			surf, ok := surfaces[sub.MaterialID]
			if !ok {
				surf = surface(c.Material(sub.MaterialID), textures)
				surfaces[sub.MaterialID] = surf
			}

		tri:
			for i := uint64(0); i+3 <= sub.IndexCount; i += 3 {
				t := triangle{surf: surf}
				for k := 0; k < 3; k++ {
					idx := uint64(indices.At(sub.IndexStart + i + uint64(k)))
					if idx >= fit {
						continue tri
					}
					vertex := raw[idx*stride : (idx+1)*stride]
					p, err := posEl.Decode(vertex, order)
					if err != nil {
						continue tri
					}
					t.pos[k] = p.Vec3()
					if uvEl != nil {
						if uv, err := uvEl.Decode(vertex, order); err == nil {
							t.uv[k] = mgl32.Vec2{uv[0], uv[1]}
						}
					}
				}
				tris = append(tris, t)
			}
		}
	}
	return tris
}

func surface(m *sdkmesh.Material, textures texture.Resolver) *raster.Surface {
	s := &raster.Surface{Base: color.NRGBA{170, 170, 175, 255}}
	if m == nil {
		return s
	}
	if m.Diffuse != (mgl32.Vec4{}) {
		s.Base = color.NRGBA{unit8(m.Diffuse[0]), unit8(m.Diffuse[1]), unit8(m.Diffuse[2]), 255}
	}
	s.SpecPower = float64(m.Power)
	if textures != nil && m.DiffuseTexture != "" {
		s.Texture = textures.Resolve(m.DiffuseTexture)
	}
	return s
}

func unit8(f float32) uint8 {
	return uint8(mgl32.Clamp(f, 0, 1)*255 + 0.5)
}
