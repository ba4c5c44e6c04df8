// Package volume holds dense voxel grids for volumetric materials.
package volume

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chewxy/math32"
)

var (
	// ErrVersion is returned for VL files with a header version other than 1.
	ErrVersion = errors.New("volume: unsupported VL version")
	// ErrCompressed is returned for DDS-packed PVM files; only raw PVM,
	// PVM2 and PVM3 bodies are read.
	ErrCompressed = errors.New("volume: DDS-compressed PVM is not supported")
)

// Volume is a w*h*d grid of voxels with Channels components of
// BytesPerChannel bytes each, stored x-fastest.
type Volume struct {
	Width, Height, Depth int
	Spacing              [3]float32 // world size of one voxel per axis
	Channels             int
	BytesPerChannel      int
	Data                 []byte
}

// New allocates a zeroed volume.
func New(w, h, d, channels, bytesPerChannel int) *Volume {
	v := &Volume{}
	v.Resize(w, h, d, channels, bytesPerChannel)
	return v
}

// Resize reallocates the voxel data, zeroed. Non-positive channel counts
// and sizes become 1.
func (v *Volume) Resize(w, h, d, channels, bytesPerChannel int) {
	v.Width, v.Height, v.Depth = max(w, 0), max(h, 0), max(d, 0)
	v.Channels = max(channels, 1)
	v.BytesPerChannel = max(bytesPerChannel, 1)
	if v.Spacing == [3]float32{} {
		v.Spacing = [3]float32{1, 1, 1}
	}
	v.Data = make([]byte, v.Width*v.Height*v.Depth*v.Channels*v.BytesPerChannel)
}

// Clear releases the data and zeroes the dimensions.
func (v *Volume) Clear() {
	v.Data = nil
	v.Width, v.Height, v.Depth = 0, 0, 0
}

// Index returns the byte offset of voxel (x, y, z), clamping each
// coordinate to the grid.
func (v *Volume) Index(x, y, z int) int {
	x = min(max(x, 0), v.Width-1)
	y = min(max(y, 0), v.Height-1)
	z = min(max(z, 0), v.Depth-1)
	return (x + y*v.Width + z*v.Width*v.Height) * v.Channels * v.BytesPerChannel
}

// At returns the first byte of voxel (x, y, z).
func (v *Volume) At(x, y, z int) byte {
	return v.Data[v.Index(x, y, z)]
}

// FillSphere writes a soft ball centred in the grid into the first channel.
// Density falls off with squared distance and drops to zero below one half.
func (v *Volume) FillSphere() {
	for k := 0; k < v.Depth; k++ {
		for j := 0; j < v.Height; j++ {
			for i := 0; i < v.Width; i++ {
				x := 2 * (float32(i)/float32(v.Width) - 0.5)
				y := 2 * (float32(j)/float32(v.Height) - 0.5)
				z := 2 * (float32(k)/float32(v.Depth) - 0.5)
				f := 1 - (x*x+y*y+z*z)/3
				if f < 0.5 {
					f = 0
				}
				v.Data[v.Index(i, j, k)] = byte(f * 255)
			}
		}
	}
}

// FillNoise writes fractal value noise in [0, 255] into the first channel.
// frequency is clamped to [0.1, 64] and octaves to [1, 16]; the same seed
// always yields the same grid.
func (v *Volume) FillNoise(frequency float32, octaves int, seed uint32) {
	f := math32.Max(0.1, math32.Min(frequency, 64))
	o := min(max(octaves, 1), 16)

	fx := float32(v.Width) / f
	fy := float32(v.Height) / f
	fz := float32(v.Depth) / f
	for k := 0; k < v.Depth; k++ {
		for j := 0; j < v.Height; j++ {
			for i := 0; i < v.Width; i++ {
				n := octaveNoise(float32(i)/fx, float32(j)/fy, float32(k)/fz, o, uint64(seed))
				v.Data[v.Index(i, j, k)] = byte(255 * n)
			}
		}
	}
}

// ReadVL decodes a VL volume.
func ReadVL(r io.Reader) (*Volume, error) {
	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("read VL version: %w", err)
	}
	if version != 1 {
		return nil, fmt.Errorf("%w: %d", ErrVersion, version)
	}
	var hdr struct {
		Width, Height, Depth uint32
		Spacing              [3]float32
		Channels             uint32
		BitsPerVoxel         uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read VL header: %w", err)
	}
	if hdr.Channels == 0 || hdr.BitsPerVoxel%(8*hdr.Channels) != 0 || hdr.BitsPerVoxel == 0 {
		return nil, fmt.Errorf("volume: bad VL voxel layout: %d bits over %d channels", hdr.BitsPerVoxel, hdr.Channels)
	}
	const limit = 1 << 31
	if uint64(hdr.Width)*uint64(hdr.Height)*uint64(hdr.Depth)*uint64(hdr.BitsPerVoxel/8) > limit {
		return nil, fmt.Errorf("volume: VL grid %dx%dx%d too large", hdr.Width, hdr.Height, hdr.Depth)
	}

	v := &Volume{Spacing: hdr.Spacing}
	v.Resize(int(hdr.Width), int(hdr.Height), int(hdr.Depth), int(hdr.Channels), int(hdr.BitsPerVoxel/(8*hdr.Channels)))
	if _, err := io.ReadFull(r, v.Data); err != nil {
		return nil, fmt.Errorf("read VL voxels: %w", err)
	}
	return v, nil
}

// LoadVL reads a VL file from disk.
func LoadVL(path string) (*Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open volume %q: %w", path, err)
	}
	defer f.Close()
	v, err := ReadVL(f)
	if err != nil {
		return nil, fmt.Errorf("volume %q: %w", path, err)
	}
	return v, nil
}

// ReadPVM decodes an uncompressed PVM volume. The text header holds the
// magic, the grid size, the voxel spacing (PVM2 and later) and the number of
// one-byte components per voxel; raw voxels follow.
func ReadPVM(r io.Reader) (*Volume, error) {
	br := bufio.NewReader(r)
	line := func(what string) (string, error) {
		s, err := br.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read PVM %s: %w", what, err)
		}
		return strings.TrimSpace(s), nil
	}

	magic, err := line("magic")
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(magic, "DDS") {
		return nil, ErrCompressed
	}
	if magic != "PVM" && magic != "PVM2" && magic != "PVM3" {
		return nil, fmt.Errorf("volume: not a PVM file: %q", magic)
	}

	var w, h, d, components int
	spacing := [3]float32{1, 1, 1}
	s, err := line("size")
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Sscan(s, &w, &h, &d); err != nil {
		return nil, fmt.Errorf("parse PVM size %q: %w", s, err)
	}
	if magic != "PVM" {
		if s, err = line("spacing"); err != nil {
			return nil, err
		}
		if _, err := fmt.Sscan(s, &spacing[0], &spacing[1], &spacing[2]); err != nil {
			return nil, fmt.Errorf("parse PVM spacing %q: %w", s, err)
		}
	}
	if s, err = line("components"); err != nil {
		return nil, err
	}
	if _, err := fmt.Sscan(s, &components); err != nil {
		return nil, fmt.Errorf("parse PVM components %q: %w", s, err)
	}
	if w <= 0 || h <= 0 || d <= 0 || components <= 0 {
		return nil, fmt.Errorf("volume: bad PVM layout %dx%dx%d with %d components", w, h, d, components)
	}
	const limit = 1 << 31
	if uint64(w)*uint64(h)*uint64(d)*uint64(components) > limit {
		return nil, fmt.Errorf("volume: PVM grid %dx%dx%d too large", w, h, d)
	}

	v := &Volume{Spacing: spacing}
	v.Resize(w, h, d, components, 1)
	if _, err := io.ReadFull(br, v.Data); err != nil {
		return nil, fmt.Errorf("read PVM voxels: %w", err)
	}
	return v, nil
}

// LoadPVM reads a PVM file from disk.
func LoadPVM(path string) (*Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open volume %q: %w", path, err)
	}
	defer f.Close()
	v, err := ReadPVM(f)
	if err != nil {
		return nil, fmt.Errorf("volume %q: %w", path, err)
	}
	return v, nil
}
