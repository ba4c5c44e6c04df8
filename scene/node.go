package scene

import (
	"fmt"

	"pbr-viewer/core"
	"pbr-viewer/gfx"
	"pbr-viewer/inspect"
	"pbr-viewer/material"
	"pbr-viewer/math"
)

// Kind selects how a node renders.
type Kind int

const (
	KindMesh Kind = iota
	KindSkybox
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindSkybox:
		return "skybox"
	case KindLight:
		return "light"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// SkyboxScale is the uniform scale a skybox is created with.
const SkyboxScale = 100

// Node is one entry of the scene's flat list. Nodes have no children and
// their Transform is the model matrix used directly.
type Node struct {
	Kind      Kind
	Name      string
	Transform math.Mat4
	Mesh      gfx.Mesh          // shared handle
	Material  material.Material // owned by this node alone
	Light     material.Light    // KindLight only
}

// NewMeshNode builds a drawable node. An empty name takes the next default
// from names.
func NewMeshNode(names *Names, name string, mesh gfx.Mesh, mat material.Material) *Node {
	return &Node{
		Kind:      KindMesh,
		Name:      names.pick(name),
		Transform: math.Mat4Identity(),
		Mesh:      mesh,
		Material:  mat,
	}
}

// NewSkybox builds a skybox around cubemap: a unit cube drawn with the
// cubemap program, scaled by SkyboxScale.
func NewSkybox(res gfx.Resources, cubemap gfx.Texture) (*Node, error) {
	mesh, err := res.NewMesh(Cube(1))
	if err != nil {
		return nil, fmt.Errorf("skybox mesh: %w", err)
	}
	mat, err := material.NewCubemap(res, cubemap)
	if err != nil {
		return nil, fmt.Errorf("skybox: %w", err)
	}
	return &Node{
		Kind:      KindSkybox,
		Name:      "Skybox",
		Transform: math.Mat4Scale(math.Splat(SkyboxScale)),
		Mesh:      mesh,
		Material:  mat,
	}, nil
}

// NewLight builds a white point light of intensity 1 at (10, 10, 10).
func NewLight(names *Names, name string) *Node {
	return &Node{
		Kind:      KindLight,
		Name:      names.pick(name),
		Transform: math.Mat4Identity(),
		Light: material.Light{
			Position:  math.NewVec3(10, 10, 10),
			Color:     core.ColorWhite,
			Intensity: 1,
		},
	}
}

// Render draws the node once. Nodes without a mesh or material draw nothing.
func (n *Node) Render(ctx *material.RenderContext) error {
	switch n.Kind {
	case KindMesh:
		if n.Material == nil {
			return nil
		}
		return n.Material.Draw(ctx, n.Mesh, n.Transform)

	case KindSkybox:
		n.Transform = n.Transform.WithTranslation(ctx.Camera.Eye())
		if n.Material == nil {
			return nil
		}
		restore := gfx.Preserve(ctx.Device, gfx.DepthTest)
		defer restore()
		ctx.Device.Disable(gfx.DepthTest)
		return n.Material.Draw(ctx, n.Mesh, n.Transform)

	case KindLight:
		return nil
	}
	return fmt.Errorf("node %q: unknown kind %v", n.Name, n.Kind)
}

// RenderWireframeOverlay draws the node's mesh again in line mode with a
// wireframe material built for this call.
func (n *Node) RenderWireframeOverlay(ctx *material.RenderContext) error {
	if n.Mesh == nil {
		return nil
	}
	wire, err := material.NewWireframe(ctx.Shaders)
	if err != nil {
		return fmt.Errorf("node %q overlay: %w", n.Name, err)
	}
	return wire.Draw(ctx, n.Mesh, n.Transform)
}

func (n *Node) Describe(ins inspect.Inspector) {
	switch n.Kind {
	case KindMesh, KindSkybox:
		ins.Transform("Model", &n.Transform)
		if n.Material != nil {
			ins.Section("Material", func() { n.Material.Describe(ins) })
		}
	case KindLight:
		ins.DragVec3("Position", &n.Light.Position, 0.1)
		ins.Color("Color", &n.Light.Color)
		ins.Slider("Intensity", &n.Light.Intensity, 0, 10)
	}
}
