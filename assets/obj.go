package assets

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pbr-viewer/core"
	"pbr-viewer/math"
)

type objRef struct{ v, vt, vn int }

// ParseOBJ reads Wavefront OBJ geometry into a single mesh. Polygons are
// fan-triangulated, shared corners are deduplicated, and faces without
// normals get area-weighted ones. Materials and groups are ignored.
func ParseOBJ(name string, r io.Reader) (*core.MeshData, error) {
	var (
		positions []math.Vec3
		normals   []math.Vec3
		uvs       []math.Vec2
		faces     [][3]objRef
	)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v", "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("obj %s:%d: %w", name, line, err)
			}
			vec := math.Vec3{X: v[0], Y: v[1], Z: v[2]}
			if fields[0] == "v" {
				positions = append(positions, vec)
			} else {
				normals = append(normals, vec)
			}
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("obj %s:%d: %w", name, line, err)
			}
			uvs = append(uvs, math.Vec2{X: v[0], Y: v[1]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj %s:%d: face needs three vertices", name, line)
			}
			refs := make([]objRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ref, err := parseRef(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("obj %s:%d: %w", name, line, err)
				}
				refs = append(refs, ref)
			}
			for i := 1; i+1 < len(refs); i++ {
				faces = append(faces, [3]objRef{refs[0], refs[i], refs[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj %s: %w", name, err)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("obj %s: no faces", name)
	}

	data := &core.MeshData{Name: name}
	seen := make(map[objRef]uint32)
	var needsNormal []bool
	for _, face := range faces {
		for _, ref := range face {
			if idx, ok := seen[ref]; ok {
				data.Indices = append(data.Indices, idx)
				continue
			}
			v := core.Vertex{Position: positions[ref.v], Normal: math.Vec3Up, Color: core.ColorWhite}
			if ref.vt >= 0 {
				v.UV = uvs[ref.vt]
			}
			if ref.vn >= 0 {
				v.Normal = normals[ref.vn]
			}
			idx := uint32(len(data.Vertices))
			data.Vertices = append(data.Vertices, v)
			needsNormal = append(needsNormal, ref.vn < 0)
			seen[ref] = idx
			data.Indices = append(data.Indices, idx)
		}
	}
	smoothNormals(data, needsNormal)
	return data, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseRef resolves "v", "v/vt", "v//vn" or "v/vt/vn". Indices are 1-based;
// negative ones count back from the end. Absent parts are -1.
func parseRef(tok string, nv, nvt, nvn int) (objRef, error) {
	ref := objRef{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")
	dst := []*int{&ref.v, &ref.vt, &ref.vn}
	counts := []int{nv, nvt, nvn}
	for i, p := range parts {
		if i >= 3 || p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return ref, fmt.Errorf("bad index %q", tok)
		}
		if n < 0 {
			n = counts[i] + n
		} else {
			n--
		}
		if n < 0 || n >= counts[i] {
			return ref, fmt.Errorf("index %q out of range", tok)
		}
		*dst[i] = n
	}
	if ref.v < 0 {
		return ref, fmt.Errorf("face vertex %q has no position", tok)
	}
	return ref, nil
}

func smoothNormals(data *core.MeshData, needed []bool) {
	accum := make([]math.Vec3, len(data.Vertices))
	for i := 0; i+2 < len(data.Indices); i += 3 {
		i0, i1, i2 := data.Indices[i], data.Indices[i+1], data.Indices[i+2]
		p0 := data.Vertices[i0].Position
		n := data.Vertices[i1].Position.Sub(p0).Cross(data.Vertices[i2].Position.Sub(p0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range data.Vertices {
		if needed[i] && accum[i] != math.Vec3Zero {
			data.Vertices[i].Normal = accum[i].Normalize()
		}
	}
}
