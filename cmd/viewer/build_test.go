package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbr-viewer/assets"
	"pbr-viewer/config"
	"pbr-viewer/gfx/gfxtest"
	"pbr-viewer/material"
	"pbr-viewer/math"
	"pbr-viewer/scene"
)

func writePNG(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestBuildDefaultScene(t *testing.T) {
	res := gfxtest.NewResources(nil)
	reg := assets.NewRegistry(res, t.TempDir(), nil)

	s, err := buildScene(config.Default(), res, reg, &scene.Names{})
	require.NoError(t, err)

	nodes := s.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, scene.KindSkybox, nodes[0].Kind)
	assert.Equal(t, scene.KindMesh, nodes[1].Kind)

	lights := s.Lights()
	require.Len(t, lights, 2)
	assert.Equal(t, math.NewVec3(-15, 5, -15), lights[0].Light.Position)
	assert.Equal(t, math.NewVec3(15, 15, 0), lights[1].Light.Position)

	pbr, ok := nodes[1].Material.(*material.PBR)
	require.True(t, ok)
	assert.True(t, pbr.Features[material.PunctualLight])
	assert.True(t, pbr.Features[material.IBL])
	assert.False(t, pbr.Features[material.AlbedoMap])
	assert.Len(t, pbr.EnvironmentLevels(), material.EnvLevels)
	assert.Equal(t, float32(2), nodes[1].Transform[0][0])
	require.NotNil(t, pbr.BRDF)
	require.Len(t, res.Textures, 1)
	assert.Same(t, res.Textures[0], pbr.BRDF)
	assert.Equal(t, brdfSize, res.Textures[0].Width)

	// One shared level-0 cubemap for the sky plus the six PBR levels.
	assert.Len(t, res.Cubemaps, 1+material.EnvLevels)
}

func TestBuildMaterials(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "albedo.png")
	writePNG(t, dir, "checker.png")

	cfg := config.Default()
	cfg.Render.Skybox = false
	cfg.Lights = nil
	cfg.Nodes = []config.Node{
		{Name: "Floor", Mesh: "primitive:plane", Material: config.MaterialFlat, Texture: "checker.png", Position: [3]float32{0, -1, 0}},
		{Mesh: "primitive:cube", Material: config.MaterialWireframe},
		{Mesh: "primitive:sphere", Material: config.MaterialReflective},
		{Mesh: "primitive:sphere", Material: config.MaterialPhong},
		{
			Mesh:     "primitive:sphere",
			Material: config.MaterialPBR,
			Maps:     map[string]string{"albedo": "albedo.png"},
			Features: []string{"albedo_map"},
		},
	}
	require.NoError(t, cfg.Validate())

	res := gfxtest.NewResources(nil)
	reg := assets.NewRegistry(res, dir, nil)
	s, err := buildScene(cfg, res, reg, &scene.Names{})
	require.NoError(t, err)

	nodes := s.Nodes()
	require.Len(t, nodes, 5)
	assert.Equal(t, "Floor", nodes[0].Name)
	assert.Equal(t, "Node0", nodes[1].Name)
	assert.Equal(t, math.NewVec3(0, -1, 0), nodes[0].Transform.Translation())

	flat := nodes[0].Material.(*material.Flat)
	assert.NotNil(t, flat.Texture)
	assert.IsType(t, &material.Wireframe{}, nodes[1].Material)
	assert.IsType(t, &material.Reflective{}, nodes[2].Material)
	assert.IsType(t, &material.Phong{}, nodes[3].Material)

	pbr := nodes[4].Material.(*material.PBR)
	assert.True(t, pbr.Features[material.AlbedoMap])
	assert.NotNil(t, pbr.Maps.Albedo)
	assert.Nil(t, pbr.Maps.Normal)
	assert.Nil(t, pbr.BRDF, "no lut without ibl")

	// The sphere mesh is loaded once and shared.
	assert.Same(t, nodes[2].Mesh, nodes[3].Mesh)
}

func TestBuildMissingTexture(t *testing.T) {
	cfg := config.Default()
	cfg.Nodes = []config.Node{{Mesh: "primitive:cube", Material: config.MaterialFlat, Texture: "missing.png"}}
	require.NoError(t, cfg.Validate())

	res := gfxtest.NewResources(nil)
	_, err := buildScene(cfg, res, assets.NewRegistry(res, t.TempDir(), nil), &scene.Names{})
	assert.ErrorContains(t, err, "node 0")
}
