// Package envmap holds prefiltered environment maps: a chain of cubemap
// levels, each six RGBA8 faces, from sharpest (level 0) to blurriest.
package envmap

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Levels is the number of levels a PBR environment provides.
const Levels = 6

// ErrLevelRange is returned for a level index outside [0, Levels).
var ErrLevelRange = errors.New("envmap: level out of range")

// Face order used by every level.
const (
	PosX = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// Level is one mip of the environment. Faces hold tightly packed RGBA8 rows.
type Level struct {
	Width, Height int
	Faces         [6][]byte
}

// Environment supplies levels by index.
type Environment interface {
	Level(i int) (Level, error)
}

// Chain is an in-memory Environment.
type Chain []Level

func (c Chain) Level(i int) (Level, error) {
	if i < 0 || i >= len(c) {
		return Level{}, fmt.Errorf("%w: %d of %d", ErrLevelRange, i, len(c))
	}
	return c[i], nil
}

// Build derives a full chain from six base faces. Each level halves the
// previous one (never below 1x1) and is resampled with a Catmull-Rom filter,
// which is a cheap stand-in for proper GGX prefiltering.
func Build(faces [6]image.Image) (Chain, error) {
	b := faces[0].Bounds()
	for i, f := range faces {
		if f == nil {
			return nil, fmt.Errorf("envmap: face %d is missing", i)
		}
		if f.Bounds().Dx() != b.Dx() || f.Bounds().Dy() != b.Dy() {
			return nil, fmt.Errorf("envmap: face %d is %dx%d, want %dx%d",
				i, f.Bounds().Dx(), f.Bounds().Dy(), b.Dx(), b.Dy())
		}
	}
	if b.Empty() {
		return nil, errors.New("envmap: empty faces")
	}

	chain := make(Chain, Levels)
	w, h := b.Dx(), b.Dy()
	prev := faces
	for lvl := 0; lvl < Levels; lvl++ {
		var next [6]image.Image
		level := Level{Width: w, Height: h}
		for i, src := range prev {
			dst := image.NewRGBA(image.Rect(0, 0, w, h))
			draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
			level.Faces[i] = dst.Pix
			next[i] = dst
		}
		chain[lvl] = level
		prev = next
		w, h = max(w/2, 1), max(h/2, 1)
	}
	return chain, nil
}

// Solid returns a chain whose every face is one color. Handy as a neutral
// environment when no map is configured.
func Solid(size int, r, g, b, a uint8) Chain {
	chain := make(Chain, Levels)
	for lvl := range chain {
		n := max(size>>lvl, 1)
		px := make([]byte, n*n*4)
		for i := 0; i < len(px); i += 4 {
			px[i], px[i+1], px[i+2], px[i+3] = r, g, b, a
		}
		level := Level{Width: n, Height: n}
		for f := range level.Faces {
			level.Faces[f] = px
		}
		chain[lvl] = level
	}
	return chain
}
