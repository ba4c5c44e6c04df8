package envmap

import (
	"image"
	"math/bits"

	"github.com/chewxy/math32"
)

// BRDFSamples is the number of GGX samples integrated per LUT texel.
const BRDFSamples = 128

// BRDFLUT integrates the split-sum specular term for a GGX microfacet BRDF.
// Columns run over N·V and rows over roughness, both sampled at texel
// centers. Red holds the Fresnel scale and green the bias.
func BRDFLUT(size int) *image.RGBA {
	size = max(size, 1)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		roughness := (float32(y) + 0.5) / float32(size)
		for x := 0; x < size; x++ {
			nv := (float32(x) + 0.5) / float32(size)
			scale, bias := integrateBRDF(nv, roughness)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = unorm8(scale)
			img.Pix[i+1] = unorm8(bias)
			img.Pix[i+3] = 255
		}
	}
	return img
}

func integrateBRDF(nv, roughness float32) (scale, bias float32) {
	vx, vz := math32.Sqrt(1-nv*nv), nv
	a := roughness * roughness
	k := a / 2

	for i := uint32(0); i < BRDFSamples; i++ {
		u := (float32(i) + 0.5) / BRDFSamples
		w := float32(bits.Reverse32(i)) * 0x1p-32

		// GGX importance sample around the +Z normal.
		phi := 2 * math32.Pi * u
		cosT := math32.Sqrt((1 - w) / (1 + (a*a-1)*w))
		sinT := math32.Sqrt(1 - cosT*cosT)
		// V has no Y component, so H's Y never reaches N·L or V·H.
		hx, hz := sinT*math32.Cos(phi), cosT

		vh := vx*hx + vz*hz
		lz := 2*vh*hz - vz
		if lz <= 0 || vh <= 0 {
			continue
		}

		g := smithG1(nv, k) * smithG1(lz, k)
		vis := g * vh / (hz * nv)
		fc := math32.Pow(1-vh, 5)
		scale += (1 - fc) * vis
		bias += fc * vis
	}
	return scale / BRDFSamples, bias / BRDFSamples
}

func smithG1(n, k float32) float32 {
	return n / (n*(1-k) + k)
}

func unorm8(v float32) uint8 {
	return uint8(math32.Round(min(max(v, 0), 1) * 255))
}
