package volume

import "github.com/chewxy/math32"

func fade(t float32) float32 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// hash3 is a SplitMix64 finaliser over the lattice coordinates.
func hash3(x, y, z int64, seed uint64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + seed
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func lattice(x, y, z int64, seed uint64) float32 {
	return float32(hash3(x, y, z, seed)&0xFFFFFF) / float32(0xFFFFFF)
}

// valueNoise returns smooth noise in [0, 1].
func valueNoise(x, y, z float32, seed uint64) float32 {
	x0, y0, z0 := math32.Floor(x), math32.Floor(y), math32.Floor(z)
	fx, fy, fz := fade(x-x0), fade(y-y0), fade(z-z0)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	c := func(dx, dy, dz int64) float32 { return lattice(ix+dx, iy+dy, iz+dz, seed) }
	x00 := lerp(c(0, 0, 0), c(1, 0, 0), fx)
	x10 := lerp(c(0, 1, 0), c(1, 1, 0), fx)
	x01 := lerp(c(0, 0, 1), c(1, 0, 1), fx)
	x11 := lerp(c(0, 1, 1), c(1, 1, 1), fx)
	return lerp(lerp(x00, x10, fy), lerp(x01, x11, fy), fz)
}

// octaveNoise sums octaves with halving amplitude and doubling frequency,
// normalised back to [0, 1].
func octaveNoise(x, y, z float32, octaves int, seed uint64) float32 {
	var sum, norm float32
	amp, freq := float32(1), float32(1)
	for i := 0; i < octaves; i++ {
		sum += valueNoise(x*freq, y*freq, z*freq, seed+uint64(i*131)) * amp
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return sum / norm
}
