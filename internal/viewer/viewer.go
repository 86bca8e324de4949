// Package viewer runs the native blob window.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfolio/internal/app"
	"github.com/Faultbox/morphfolio/internal/config"
	"github.com/Faultbox/morphfolio/internal/engine/debug"
	"github.com/Faultbox/morphfolio/internal/engine/input"
	"github.com/Faultbox/morphfolio/internal/engine/renderer"
	"github.com/Faultbox/morphfolio/internal/engine/window"
	"github.com/Faultbox/morphfolio/internal/logger"
	"github.com/Faultbox/morphfolio/internal/scene"
)

// maxFrameDelta caps dt after a stall (window drag, breakpoint).
const maxFrameDelta = 0.1

// Viewer is the native blob viewer instance.
type Viewer struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	log      *zap.Logger
	shots    *debug.Screenshots

	capture       bool
	width, height int
}

// New creates the window, GL renderer and scene.
func New(cfg *config.Config, seed int64) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		log:    logger.Named("viewer"),
		shots:  debug.NewScreenshots(cfg.Graphics.ScreenshotDir, "morphfolio"),
		width:  cfg.Graphics.Width,
		height: cfg.Graphics.Height,
	}

	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int64("seed", seed),
	)

	var err error
	v.scene, err = app.ComposeScene(cfg, seed, func() { v.log.Info("blob clicked") })
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      "morphfolio",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	fbw, fbh := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{Width: fbw, Height: fbh}, v.scene.Blob(), app.ParticleSize)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.input = input.New()

	v.log.Info("viewer initialized")
	return v, nil
}

// Run starts the frame loop and returns when the window closes.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting frame loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now
		if dt > maxFrameDelta {
			dt = maxFrameDelta
		}

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		for _, ev := range v.input.Events() {
			v.handle(ev)
		}

		// 2. Animate: springs first, then the deformation pass
		v.scene.Update(float32(dt))

		// 3. Render
		v.render()

		// 4. Present (swap buffers)
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dtMs", dt*1000))
			v.window.SetFPS(frameCount)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handle(ev input.Event) {
	w, h := float32(v.width), float32(v.height)

	switch ev.Type {
	case input.EventWindowResize:
		v.width, v.height = ev.Width, ev.Height
		fbw, fbh := v.window.DrawableSize()
		v.renderer.Resize(fbw, fbh)

	case input.EventKeyDown:
		switch ev.Key {
		case sdl.SCANCODE_ESCAPE:
			v.running = false
		case sdl.SCANCODE_F12:
			v.capture = true
		}

	case input.EventMouseMove:
		switch {
		case ev.Dragging:
			v.scene.Drag(float32(ev.DeltaX), float32(ev.DeltaY), h)
		case ev.Panning:
			v.scene.Pan(float32(ev.DeltaX), float32(ev.DeltaY))
		}
		if v.scene.Pointer(float32(ev.MouseX), float32(ev.MouseY), w, h) {
			v.log.Debug("hover changed", zap.Bool("hovered", v.scene.Blob().Hovered()))
		}

	case input.EventMouseWheel:
		v.scene.Zoom(float32(ev.WheelY))

	case input.EventMouseLeave:
		v.scene.PointerOut()

	case input.EventMouseDown:
		if ev.Button == sdl.BUTTON_LEFT {
			v.scene.Click(float32(ev.MouseX), float32(ev.MouseY), w, h)
		}
	}
}

func (v *Viewer) render() {
	v.renderer.Begin()
	v.renderer.SyncBlob(v.scene.Blob().Deformer())
	v.renderer.Draw(v.scene)
	if v.capture {
		v.capture = false
		v.screenshot()
	}
	v.renderer.End()
}

// screenshot reads back the frame before the swap.
func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.Save(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	v.scene.Blob().Unmount()
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
