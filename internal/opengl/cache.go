package opengl

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"pbr-viewer/gfx"
	"pbr-viewer/shaders"
)

// ProgramCache compiles each stage pair once and hands out the same
// *Program afterwards. A reload relinks programs in place, so materials
// holding a program see the new code on their next draw.
type ProgramCache struct {
	Source shaders.Source
	Logger *slog.Logger

	programs map[[2]string]*Program
	order    [][2]string
	dirty    atomic.Bool
}

func NewProgramCache(src shaders.Source, logger *slog.Logger) *ProgramCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgramCache{
		Source:   src,
		Logger:   logger,
		programs: make(map[[2]string]*Program),
	}
}

// Program implements gfx.ShaderSource.
func (c *ProgramCache) Program(vertexPath, fragmentPath string) (gfx.Program, error) {
	key := [2]string{vertexPath, fragmentPath}
	if p, ok := c.programs[key]; ok {
		return p, nil
	}
	id, err := c.build(vertexPath, fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gfx.ErrNoProgram, err)
	}
	p := &Program{Vertex: vertexPath, Fragment: fragmentPath}
	p.replace(id)
	c.programs[key] = p
	c.order = append(c.order, key)
	c.Logger.Debug("program compiled", "vertex", vertexPath, "fragment", fragmentPath)
	return p, nil
}

func (c *ProgramCache) build(vertexPath, fragmentPath string) (uint32, error) {
	vs, err := c.Source.Load(vertexPath)
	if err != nil {
		return 0, err
	}
	fs, err := c.Source.Load(fragmentPath)
	if err != nil {
		return 0, err
	}
	id, err := linkProgram(vs, fs)
	if err != nil {
		return 0, fmt.Errorf("%s + %s: %w", vertexPath, fragmentPath, err)
	}
	return id, nil
}

// MarkDirty requests a reload on the next ReloadIfDirty. Safe to call from
// any goroutine.
func (c *ProgramCache) MarkDirty() { c.dirty.Store(true) }

// ReloadIfDirty runs ReloadAll when a reload was requested. Call it from
// the thread that owns the GL context.
func (c *ProgramCache) ReloadIfDirty() error {
	if !c.dirty.Swap(false) {
		return nil
	}
	return c.ReloadAll()
}

// ReloadAll relinks every cached program. A program that fails to build
// keeps its previous code; the failures are returned joined.
func (c *ProgramCache) ReloadAll() error {
	var errs []error
	for _, key := range c.order {
		id, err := c.build(key[0], key[1])
		if err != nil {
			c.Logger.Warn("shader reload failed", "vertex", key[0], "fragment", key[1], "err", err)
			errs = append(errs, err)
			continue
		}
		c.programs[key].replace(id)
	}
	c.Logger.Info("shaders reloaded", "programs", len(c.order), "failed", len(errs))
	return errors.Join(errs...)
}

func (c *ProgramCache) Release() {
	for _, p := range c.programs {
		p.Release()
	}
	clear(c.programs)
	c.order = nil
}
