// Package gfxtest provides recording implementations of the gfx interfaces
// so materials and scene nodes can be tested without a GL context.
package gfxtest

import (
	"fmt"
	"image"

	"pbr-viewer/core"
	"pbr-viewer/gfx"
	"pbr-viewer/math"
)

// Call is one recorded graphics-API call.
type Call struct {
	Op    string
	Name  string
	Value any
	Slot  int
}

// Recorder is the shared, ordered call log of a fake pipeline.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) record(c Call) {
	if r != nil {
		r.Calls = append(r.Calls, c)
	}
}

// Count returns how many calls with op were recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Ops returns the op sequence, handy for ordering assertions.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Device is an in-memory pipeline state.
type Device struct {
	Log        *Recorder
	caps       map[gfx.Capability]bool
	mode       gfx.PolygonMode
	Src, Dst   gfx.BlendFactor
	ClearColor core.Color
	Width      int
	Height     int
}

func NewDevice(log *Recorder) *Device {
	return &Device{Log: log, caps: make(map[gfx.Capability]bool)}
}

func (d *Device) Enable(c gfx.Capability) {
	d.caps[c] = true
	d.Log.record(Call{Op: "enable", Name: c.String()})
}

func (d *Device) Disable(c gfx.Capability) {
	d.caps[c] = false
	d.Log.record(Call{Op: "disable", Name: c.String()})
}

func (d *Device) IsEnabled(c gfx.Capability) bool { return d.caps[c] }

func (d *Device) BlendFunc(src, dst gfx.BlendFactor) {
	d.Src, d.Dst = src, dst
	d.Log.record(Call{Op: "blend-func", Value: [2]gfx.BlendFactor{src, dst}})
}

func (d *Device) SetPolygonMode(m gfx.PolygonMode) {
	d.mode = m
	d.Log.record(Call{Op: "polygon-mode", Value: m})
}

func (d *Device) PolygonMode() gfx.PolygonMode { return d.mode }

func (d *Device) Viewport(width, height int) {
	d.Width, d.Height = width, height
}

func (d *Device) Clear(color core.Color) {
	d.ClearColor = color
	d.Log.record(Call{Op: "clear", Value: color})
}

// Texture is a fake texture handle.
type Texture struct {
	Name   string
	Cube   bool
	Width  int
	Height int
	Faces  [6][]byte
}

func (t *Texture) Cubemap() bool { return t.Cube }

func (t *Texture) String() string { return t.Name }

// Mesh records draw calls. Err makes every Render fail; Panic makes it panic.
type Mesh struct {
	Log   *Recorder
	Name  string
	Data  *core.MeshData
	Draws []gfx.Primitive
	Err   error
	Panic any
	// OnRender runs inside Render before the call is recorded, so tests can
	// observe pipeline state at draw time.
	OnRender func()
}

func (m *Mesh) Render(p gfx.Primitive) error {
	if m.OnRender != nil {
		m.OnRender()
	}
	if m.Panic != nil {
		panic(m.Panic)
	}
	if m.Err != nil {
		m.Log.record(Call{Op: "draw-failed", Name: m.Name, Value: p})
		return m.Err
	}
	m.Draws = append(m.Draws, p)
	m.Log.record(Call{Op: "draw", Name: m.Name, Value: p})
	return nil
}

// Program stores the last value written to each uniform.
type Program struct {
	Log      *Recorder
	Vertex   string
	Fragment string
	Active   bool
	Uniforms map[string]any
	Slots    map[string]int
	Enables  int
	Disables int
}

func NewProgram(log *Recorder, vertex, fragment string) *Program {
	return &Program{
		Log:      log,
		Vertex:   vertex,
		Fragment: fragment,
		Uniforms: make(map[string]any),
		Slots:    make(map[string]int),
	}
}

func (p *Program) Enable() {
	p.Active = true
	p.Enables++
	p.Log.record(Call{Op: "use-program", Name: p.Fragment})
}

func (p *Program) Disable() {
	p.Active = false
	p.Disables++
	p.Log.record(Call{Op: "unuse-program", Name: p.Fragment})
}

func (p *Program) set(name string, v any) {
	p.Uniforms[name] = v
	p.Log.record(Call{Op: "uniform", Name: name, Value: v})
}

func (p *Program) SetMat4(name string, m math.Mat4)   { p.set(name, m) }
func (p *Program) SetVec3(name string, v math.Vec3)   { p.set(name, v) }
func (p *Program) SetColor(name string, c core.Color) { p.set(name, c) }
func (p *Program) SetFloat(name string, f float32)    { p.set(name, f) }
func (p *Program) SetBool(name string, b bool)        { p.set(name, b) }

func (p *Program) SetTexture(name string, tex gfx.Texture, slot int) {
	p.Uniforms[name] = tex
	p.Slots[name] = slot
	p.Log.record(Call{Op: "texture", Name: name, Value: tex, Slot: slot})
}

// Uniform returns the last value set for name.
func (p *Program) Uniform(name string) (any, bool) {
	v, ok := p.Uniforms[name]
	return v, ok
}

// Snapshot copies the uniform table.
func (p *Program) Snapshot() map[string]any {
	out := make(map[string]any, len(p.Uniforms))
	for k, v := range p.Uniforms {
		out[k] = v
	}
	return out
}

// Reset forgets every recorded uniform.
func (p *Program) Reset() {
	p.Uniforms = make(map[string]any)
	p.Slots = make(map[string]int)
}

// Resources implements gfx.Resources with fakes. Programs are cached by
// their stage pair like the real cache.
type Resources struct {
	Log      *Recorder
	Programs map[[2]string]*Program
	// Missing lists fragment paths that fail to load.
	Missing  map[string]bool
	Cubemaps []*Texture
	Textures []*Texture
	Meshes   []*Mesh
	// FailCubemap makes the n-th (1-based) NewCubemap call fail; 0 disables.
	FailCubemap int
}

func NewResources(log *Recorder) *Resources {
	return &Resources{
		Log:      log,
		Programs: make(map[[2]string]*Program),
		Missing:  make(map[string]bool),
	}
}

func (r *Resources) Program(vertexPath, fragmentPath string) (gfx.Program, error) {
	if r.Missing[fragmentPath] {
		return nil, fmt.Errorf("%s + %s: %w", vertexPath, fragmentPath, gfx.ErrNoProgram)
	}
	key := [2]string{vertexPath, fragmentPath}
	if p, ok := r.Programs[key]; ok {
		return p, nil
	}
	p := NewProgram(r.Log, vertexPath, fragmentPath)
	r.Programs[key] = p
	return p, nil
}

// Fake returns the concrete fake behind a cached program.
func (r *Resources) Fake(vertexPath, fragmentPath string) *Program {
	return r.Programs[[2]string{vertexPath, fragmentPath}]
}

func (r *Resources) NewTexture2D(img *image.RGBA) (gfx.Texture, error) {
	b := img.Bounds()
	t := &Texture{Name: fmt.Sprintf("tex%d", len(r.Textures)), Width: b.Dx(), Height: b.Dy()}
	r.Textures = append(r.Textures, t)
	return t, nil
}

func (r *Resources) NewCubemap(width, height int, faces [6][]byte) (gfx.Texture, error) {
	if r.FailCubemap > 0 && len(r.Cubemaps)+1 == r.FailCubemap {
		return nil, fmt.Errorf("cubemap %dx%d: upload failed", width, height)
	}
	t := &Texture{
		Name:   fmt.Sprintf("cube%d", len(r.Cubemaps)),
		Cube:   true,
		Width:  width,
		Height: height,
		Faces:  faces,
	}
	r.Cubemaps = append(r.Cubemaps, t)
	return t, nil
}

func (r *Resources) NewMesh(data *core.MeshData) (gfx.Mesh, error) {
	m := &Mesh{Log: r.Log, Name: data.Name, Data: data}
	r.Meshes = append(r.Meshes, m)
	return m, nil
}
