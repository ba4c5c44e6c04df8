// Command viewer opens a window and renders the scene described by a
// config file with the PBR material family.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/xlab/closer"

	"pbr-viewer/assets"
	"pbr-viewer/config"
	"pbr-viewer/core"
	"pbr-viewer/editor"
	"pbr-viewer/internal/opengl"
	"pbr-viewer/scene"
	"pbr-viewer/shaders"
)

func main() {
	configPath := flag.String("config", "", "scene config (.toml, .yaml or .yml); empty uses the built-in scene")
	logLevel := flag.String("log-level", "", "override the config log level (debug, info, warn, error)")
	savePath := flag.String("save", "session.toml", "where F6 writes the edited scene")
	flag.Parse()

	defer closer.Close()

	if err := run(*configPath, *logLevel, *savePath); err != nil {
		slog.Error("viewer stopped", "err", err)
		closer.Exit(1)
	}
}

func run(configPath, logLevel, savePath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	window, err := core.NewWindow(core.WindowConfig{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		Resizable: cfg.Window.Resizable,
		VSync:     cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	if err := opengl.Init(); err != nil {
		return err
	}
	logger.Info("context ready", "gl", opengl.Version())

	res := opengl.NewResources(shaders.Source{Dir: cfg.Render.Shaders}, logger)
	defer res.Release()
	if cfg.Render.Watch && cfg.Render.Shaders != "" {
		w, err := opengl.Watch(cfg.Render.Shaders, res.ProgramCache, logger)
		if err != nil {
			return err
		}
		closer.Bind(func() { w.Close() })
	}

	dev := opengl.NewDevice()
	names := &scene.Names{}
	reg := assets.NewRegistry(res, cfg.AssetRoot, logger)
	sc, err := buildScene(cfg, res, reg, names)
	if err != nil {
		return err
	}

	renderer, err := scene.NewRenderer(dev, res, logger)
	if err != nil {
		return err
	}
	renderer.Debug = cfg.Render.Debug
	renderer.Overlay = cfg.Render.Wireframe
	c := cfg.Render.ClearColor
	renderer.ClearColor = core.Color{R: c[0], G: c[1], B: c[2], A: c[3]}

	cam := scene.NewCamera()
	cam.LookAt(vec3(cfg.Camera.Eye), vec3(cfg.Camera.Center), vec3(cfg.Camera.Up))
	width, height := window.GetFramebufferSize()
	cam.SetPerspective(cfg.Camera.FOV, 1, cfg.Camera.Near, cfg.Camera.Far)
	cam.SetAspect(width, height)
	dev.Viewport(width, height)
	window.OnResize(func(w, h int) {
		cam.SetAspect(w, h)
		dev.Viewport(w, h)
	})
	window.OnKey(func(key int) {
		if key == core.KeyEscape {
			window.Close()
		}
	})

	ed := editor.New(cam, renderer, editor.NewInputManager(window), logger)
	ed.Speed = cfg.Camera.Speed
	sheet := editor.SceneSheet(sc)
	if err := editor.Apply(ed.History, sheet, cfg.Properties); err != nil {
		return err
	}
	ed.Reload = res.ReloadAll
	ed.Save = func() error {
		out := cfg
		out.Properties = editor.Snapshot(sheet)
		if err := config.Save(savePath, out); err != nil {
			return err
		}
		logger.Info("scene saved", "path", savePath)
		return nil
	}

	logger.Info("scene ready", "nodes", len(sc.Nodes()), "lights", len(sc.Lights()))
	failed := 0
	last := window.Time()
	for !window.ShouldClose() {
		now := window.Time()
		dt := float32(now - last)
		last = now

		window.PollEvents()
		ed.Update(dt)
		if err := res.ReloadIfDirty(); err != nil {
			logger.Warn("shader reload", "err", err)
		}
		if err := renderer.Frame(sc, cam); err != nil {
			failed++
		}
		window.SwapBuffers()
	}
	logger.Info("viewer closed", "frames_with_errors", failed)
	return nil
}
