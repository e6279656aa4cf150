package main

import (
	"errors"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"holoscene/internal/config"
	"holoscene/internal/convert"
	"holoscene/internal/debug"
	"holoscene/internal/engine2D"
	"holoscene/internal/engine2D/draw"
	"holoscene/internal/scene"
	"holoscene/internal/utils"
)

// Scene space shown by the viewer, centred on the origin.
const (
	sceneWidth  = 800
	sceneHeight = 600
)

// clickSlop is how far, in pixels, a press may move and still count as a
// click rather than a drag.
const clickSlop = 4

const powerStep = 0.1

type WindowOptions struct {
	Scaling    engine2D.ScalingMode
	RecordPath string
	X11Pointer bool
}

type Window struct {
	scene    *engine2D.Scene
	loop     *engine2D.FrameLoop
	painter  *draw.Painter
	hologram *draw.HologramPass
	overlay  *debug.DebugOverlay
	viewport engine2D.Viewport
	scaling  engine2D.ScalingMode
	fps      int

	drag engine2D.PointerDrag

	pointer    *utils.PointerTracker
	x11        *utils.X11Pointer
	record     *os.File
	recorder   *convert.SnapshotWriter
	recordFail bool
}

func NewWindow(opts config.Options, env scene.Environment, objects []scene.Object, wopts WindowOptions) (*Window, error) {
	font := debug.LoadFont()
	window := &Window{
		loop:     engine2D.NewFrameLoop(),
		painter:  draw.NewPainter(font),
		hologram: draw.NewHologramPass(),
		overlay:  debug.NewDebugOverlay(font),
		scaling:  wopts.Scaling,
		fps:      opts.Window.FPS,
	}

	window.scene = engine2D.NewScene(opts.Scene(), engine2D.Callbacks{
		OnContentInteract: func(obj scene.Object) {
			utils.Info("Selected %s (%s)", obj.ID, obj.Type)
		},
		OnContentUpdate: func(obj scene.Object) {
			utils.Debug("Presented %s", obj.ID)
		},
	})
	for _, err := range window.scene.SetEnvironment(env) {
		utils.Warn("Environment: %v", err)
	}
	for _, err := range window.scene.SetContent(objects) {
		utils.Warn("Content: %v", err)
	}
	if err := window.scene.Mount(window.loop); err != nil {
		return nil, err
	}
	window.drag = engine2D.PointerDrag{Target: window.scene, Slop: clickSlop}

	if wopts.X11Pointer {
		x11, err := utils.NewX11Pointer()
		if err != nil {
			utils.Warn("X11 pointer unavailable, using window input only: %v", err)
		} else {
			window.x11 = x11
			window.pointer = utils.NewPointerTracker(x11)
		}
	}

	if wopts.RecordPath != "" {
		f, err := os.Create(wopts.RecordPath)
		if err != nil {
			window.Close()
			return nil, err
		}
		window.record = f
		window.recorder = convert.NewSnapshotWriter(f)
		utils.Info("Recording frames to %s", wopts.RecordPath)
	}
	return window, nil
}

func (window *Window) Run() {
	if window.fps > 0 {
		rl.SetTargetFPS(int32(window.fps))
	}
	for !rl.WindowShouldClose() {
		window.Update()

		rl.BeginDrawing()
		window.Draw()
		rl.EndDrawing()
	}
}

func (window *Window) Update() {
	dt := float64(rl.GetFrameTime())
	window.viewport = engine2D.NewViewport(rl.GetScreenWidth(), rl.GetScreenHeight(), sceneWidth, sceneHeight, window.scaling)

	if rl.IsKeyPressed(rl.KeyF8) {
		utils.ShowDebugUI = !utils.ShowDebugUI
	}
	overUI := false
	if utils.ShowDebugUI {
		overUI = window.overlay.Update()
	}

	window.handlePower()
	window.handleMouse(overUI)
	window.handleX11Pointer()

	window.loop.Step(dt)

	if window.recorder != nil && !window.recordFail {
		if err := window.recorder.Write(window.scene.Frame()); err != nil {
			utils.Error("Recording stopped: %v", err)
			window.recordFail = true
		}
	}
}

func (window *Window) handlePower() {
	power := window.scene.Power()
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		power.Increment(powerStep)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		power.Decrement(powerStep)
	}
}

func (window *Window) handleMouse(overUI bool) {
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		window.drag.Press(overUI)
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		window.drag.Move(float64(delta.X), float64(delta.Y), w, h)
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		if window.drag.Release() && !overUI {
			window.click(mouse)
		}
	}
}

func (window *Window) click(mouse rl.Vector2) {
	p := window.viewport.ToScene(scene.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)})
	if obj, ok := window.scene.HitTest(p.X, p.Y); ok {
		window.scene.Select(obj.ID)
	}
}

func (window *Window) handleX11Pointer() {
	if window.pointer == nil {
		return
	}
	d, err := window.pointer.Poll()
	if err != nil {
		utils.Warn("X11 pointer lost: %v", err)
		window.closeX11()
		return
	}
	mon := rl.GetCurrentMonitor()
	w, h := float64(rl.GetMonitorWidth(mon)), float64(rl.GetMonitorHeight(mon))
	if d.Start {
		window.scene.DragStart()
	}
	if d.Pressed && (d.DX != 0 || d.DY != 0) {
		window.scene.DragDelta(d.DX, d.DY, w, h)
	}
	if d.End {
		window.scene.DragEnd()
	}
}

func (window *Window) closeX11() {
	if window.x11 != nil {
		window.x11.Close()
	}
	window.x11 = nil
	window.pointer = nil
}

func (window *Window) Draw() {
	frame := window.scene.Frame()
	window.painter.Viewport = window.viewport
	window.hologram.Present(window.painter, frame, rl.GetTime())

	if utils.ShowDebugUI {
		window.overlay.Draw(frame, window.viewport)
	}
}

// Close unmounts the scene and flushes the recording. A callback that
// survives teardown is reported as an error.
func (window *Window) Close() error {
	var errs []error
	if err := window.scene.Unmount(); err != nil {
		errs = append(errs, err)
	}
	if err := window.loop.Close(); err != nil {
		errs = append(errs, err)
	}
	window.closeX11()
	window.hologram.Unload()
	if window.record != nil {
		utils.Info("Recorded %d frames", window.recorder.Frames())
		if err := window.record.Close(); err != nil {
			errs = append(errs, err)
		}
		window.record = nil
	}
	return errors.Join(errs...)
}
