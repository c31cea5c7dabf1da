package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LightConfig holds the fixed studio lighting used for previews.
type LightConfig struct {
	KeyDir   mgl64.Vec3
	FillDir  mgl64.Vec3
	ViewDir  mgl64.Vec3
	Ambient  float64
	Hemi     float64
	Key      float64
	Fill     float64
	SpecInt  float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig returns a key light from the upper right, a dimmer fill
// from the left and a camera looking down -Z.
func DefaultLightConfig() LightConfig {
	return LightConfig{
		KeyDir:   mgl64.Vec3{0.45, 0.65, 0.6}.Normalize(),
		FillDir:  mgl64.Vec3{-0.6, 0.3, 0.4}.Normalize(),
		ViewDir:  mgl64.Vec3{0, 0, 1},
		Ambient:  0.45,
		Hemi:     0.35,
		Key:      1.2,
		Fill:     0.4,
		SpecInt:  0.35,
		Exposure: 1.0,
		InvGamma: 1.0 / 2.2,
	}
}

// Shade returns the lighting scalar for a unit face normal. Faces are lit
// double-sided. specPower is the material's specular exponent; 0 disables
// the highlight.
func (lc *LightConfig) Shade(n mgl64.Vec3, specPower float64) float64 {
	key := math.Abs(n.Dot(lc.KeyDir))
	fill := math.Abs(n.Dot(lc.FillDir))
	hemi := ((1-math.Abs(n[1]))*0.5 + 0.5) * lc.Hemi

	var spec float64
	if specPower > 0 {
		half := lc.KeyDir.Add(lc.ViewDir).Normalize()
		if ndh := math.Abs(n.Dot(half)); ndh > 0 {
			spec = math.Pow(ndh, specPower) * lc.SpecInt
		}
	}
	return lc.Ambient + hemi + key*lc.Key + fill*lc.Fill + spec
}

var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// shadeColor lights an sRGB color and returns the tone-mapped sRGB result.
func (lc *LightConfig) shadeColor(c uint8, shade float64) uint8 {
	lin := srgbToLinear[c] * shade * lc.Exposure
	return clamp255(math.Pow(ACESTonemap(lin), lc.InvGamma) * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
