package envmap

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func face(size int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestBuildHalvesEachLevel(t *testing.T) {
	var faces [6]image.Image
	for i := range faces {
		faces[i] = face(64, color.RGBA{R: uint8(i * 40), A: 255})
	}
	chain, err := Build(faces)
	require.NoError(t, err)
	require.Len(t, chain, Levels)

	sizes := []int{64, 32, 16, 8, 4, 2}
	for i, want := range sizes {
		lvl, err := chain.Level(i)
		require.NoError(t, err)
		assert.Equal(t, want, lvl.Width, "level %d", i)
		assert.Equal(t, want, lvl.Height, "level %d", i)
		for f := range lvl.Faces {
			assert.Len(t, lvl.Faces[f], want*want*4)
		}
	}

	// A uniform face stays uniform after resampling.
	lvl, _ := chain.Level(3)
	assert.Equal(t, []byte{80, 0, 0, 255}, lvl.Faces[PosY][:4])
	assert.Equal(t, []byte{120, 0, 0, 255}, lvl.Faces[NegY][:4])
}

func TestBRDFLUT(t *testing.T) {
	const size = 16
	lut := BRDFLUT(size)
	require.Equal(t, image.Rect(0, 0, size, size), lut.Bounds())

	sum := func(x, y int) int {
		c := lut.RGBAAt(x, y)
		assert.Equal(t, uint8(255), c.A)
		return int(c.R) + int(c.G)
	}
	// A smooth surface seen head on reflects everything: scale plus bias is 1.
	assert.InDelta(t, 255, sum(size-1, 0), 4)
	// Rough surfaces lose energy to masking.
	assert.Less(t, sum(size-1, size-1), sum(size-1, 0))
	// Fresnel bias grows toward grazing angles.
	assert.Greater(t, lut.RGBAAt(0, 0).G, lut.RGBAAt(size-1, 0).G)
}

func TestBuildRejectsMismatchedFaces(t *testing.T) {
	var faces [6]image.Image
	for i := range faces {
		faces[i] = face(8, color.RGBA{A: 255})
	}
	faces[NegZ] = face(4, color.RGBA{A: 255})
	_, err := Build(faces)
	assert.Error(t, err)
}

func TestLevelRange(t *testing.T) {
	chain := Solid(16, 1, 2, 3, 4)
	_, err := chain.Level(Levels)
	assert.ErrorIs(t, err, ErrLevelRange)
	_, err = chain.Level(-1)
	assert.ErrorIs(t, err, ErrLevelRange)

	lvl, err := chain.Level(5)
	require.NoError(t, err)
	assert.Equal(t, 1, lvl.Width)
	assert.Equal(t, []byte{1, 2, 3, 4}, lvl.Faces[PosX])
}
