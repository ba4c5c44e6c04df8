package assets

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"pbr-viewer/core"
	"pbr-viewer/math"
)

// LoadGLTF reads every triangle primitive of a .gltf or .glb file and
// merges them into one mesh, baking each node's transform.
func LoadGLTF(path string) (*core.MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	out := &core.MeshData{Name: path}

	var visit func(idx int, parent math.Mat4) error
	visit = func(idx int, parent math.Mat4) error {
		node := doc.Nodes[idx]
		world := nodeMatrix(node).Mul(parent)
		if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
			for pi, prim := range doc.Meshes[*node.Mesh].Primitives {
				if prim.Mode != gltf.PrimitiveTriangles {
					continue
				}
				part, err := readPrimitive(doc, prim)
				if err != nil {
					return fmt.Errorf("mesh %d primitive %d: %w", *node.Mesh, pi, err)
				}
				appendTransformed(out, part, world)
			}
		}
		for _, child := range node.Children {
			if child < len(doc.Nodes) {
				if err := visit(child, world); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, root := range rootNodes(doc) {
		if err := visit(root, math.Mat4Identity()); err != nil {
			return nil, fmt.Errorf("gltf %q: %w", path, err)
		}
	}
	if len(out.Vertices) == 0 {
		return nil, fmt.Errorf("gltf %q: no triangle geometry", path)
	}
	return out, nil
}

func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

var identity16 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func nodeMatrix(n *gltf.Node) math.Mat4 {
	if n.Matrix != identity16 && n.Matrix != [16]float64{} {
		// glTF matrices are column-major column-vector, which is the
		// memory layout of our row-vector Mat4.
		var m math.Mat4
		for i := 0; i < 16; i++ {
			m[i/4][i%4] = float32(n.Matrix[i])
		}
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	return math.Mat4TRS(
		math.NewVec3(float32(t[0]), float32(t[1]), float32(t[2])),
		math.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}.Normalize(),
		math.NewVec3(float32(s[0]), float32(s[1]), float32(s[2])),
	)
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*core.MeshData, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("uvs: %w", err)
		}
	}

	data := &core.MeshData{Vertices: make([]core.Vertex, len(positions))}
	for i, p := range positions {
		v := core.Vertex{
			Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]},
			Normal:   math.Vec3Up,
			Color:    core.ColorWhite,
		}
		if i < len(normals) {
			v.Normal = math.Vec3{X: normals[i][0], Y: normals[i][1], Z: normals[i][2]}
		}
		if i < len(uvs) {
			v.UV = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		data.Vertices[i] = v
	}

	if prim.Indices != nil {
		if data.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		data.Indices = make([]uint32, len(positions))
		for i := range data.Indices {
			data.Indices[i] = uint32(i)
		}
	}
	return data, nil
}

// appendTransformed merges part into out, moving it by world. Normals only
// follow the linear part, which is exact for rotation and uniform scale.
func appendTransformed(out, part *core.MeshData, world math.Mat4) {
	base := uint32(len(out.Vertices))
	linear := world.WithTranslation(math.Vec3Zero)
	for _, v := range part.Vertices {
		v.Position = world.MulPoint(v.Position)
		v.Normal = linear.MulPoint(v.Normal).Normalize()
		out.Vertices = append(out.Vertices, v)
	}
	for _, i := range part.Indices {
		out.Indices = append(out.Indices, base+i)
	}
}
