package scene

import (
	"errors"
	"fmt"
	"log/slog"

	"pbr-viewer/core"
	"pbr-viewer/gfx"
	"pbr-viewer/material"
	"pbr-viewer/math"
)

// Renderer draws a scene frame by frame in list order.
type Renderer struct {
	Device     gfx.Device
	Shaders    gfx.ShaderSource
	Logger     *slog.Logger
	ClearColor core.Color

	Overlay bool // draw every node again in wireframe
	Debug   bool // draw the ground grid

	grid *Node
}

// NewRenderer prepares a renderer and its debug grid.
func NewRenderer(dev gfx.Device, res gfx.Resources, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	mesh, err := res.NewMesh(Grid(100, 100))
	if err != nil {
		return nil, fmt.Errorf("debug grid: %w", err)
	}
	mat, err := material.NewFlat(res)
	if err != nil {
		return nil, fmt.Errorf("debug grid: %w", err)
	}
	return &Renderer{
		Device:     dev,
		Shaders:    res,
		Logger:     logger,
		ClearColor: core.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		grid: &Node{
			Kind:      KindMesh,
			Name:      "Grid",
			Transform: math.Mat4Identity(),
			Mesh:      mesh,
			Material:  mat,
		},
	}, nil
}

// Frame clears the target, resets the pipeline defaults and renders every
// node of s. A failing node is logged and skipped; the errors are returned
// joined once the frame is complete.
func (r *Renderer) Frame(s *Scene, cam material.Camera) error {
	r.Device.Clear(r.ClearColor)
	r.Device.Disable(gfx.Blend)
	r.Device.Enable(gfx.DepthTest)
	r.Device.Disable(gfx.CullFace)

	ctx := &material.RenderContext{
		Device:  r.Device,
		Shaders: r.Shaders,
		Camera:  cam,
		Lights:  s.Lighting(),
		Logger:  r.Logger,
	}

	var errs []error
	fail := func(n *Node, err error) {
		r.Logger.Warn("render failed", "node", n.Name, "err", err)
		errs = append(errs, err)
	}
	for _, n := range s.Nodes() {
		if err := n.Render(ctx); err != nil {
			fail(n, err)
		}
		if r.Overlay {
			if err := n.RenderWireframeOverlay(ctx); err != nil {
				fail(n, err)
			}
		}
	}
	if r.Debug && r.grid != nil {
		if err := r.grid.Render(ctx); err != nil {
			fail(r.grid, err)
		}
	}
	return errors.Join(errs...)
}
