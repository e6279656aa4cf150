package engine2D

import (
	"math"

	"holoscene/internal/scene"
)

const (
	MinYaw   = -180.0
	MaxYaw   = 180.0
	MinPitch = -90.0
	MaxPitch = 90.0
)

// ViewState is the user-controlled view orientation in degrees.
type ViewState struct {
	Yaw   float64
	Pitch float64
}

type GesturePhase int

const (
	GestureIdle GesturePhase = iota
	GestureDragging
)

func (p GesturePhase) String() string {
	switch p {
	case GestureIdle:
		return "idle"
	case GestureDragging:
		return "dragging"
	}
	return "unknown"
}

// GestureInterpreter turns drag deltas into a clamped ViewState. The view
// persists between gestures; nothing decays back to centre.
type GestureInterpreter struct {
	Enabled bool

	view  ViewState
	phase GesturePhase
}

func NewGestureInterpreter(enabled bool) *GestureInterpreter {
	return &GestureInterpreter{Enabled: enabled}
}

// DragStart begins a drag. It returns false when gestures are disabled or a
// drag is already in progress, in which case the call has no effect.
func (g *GestureInterpreter) DragStart() bool {
	if !g.Enabled || g.phase == GestureDragging {
		return false
	}
	g.phase = GestureDragging
	return true
}

// DragDelta applies a pointer movement of (dx, dy) pixels over a viewport of
// the given size. A full viewport width turns the view 360°×sensitivity, a
// full height 180°×sensitivity. Deltas outside a drag are ignored, as is any
// axis with a non-positive viewport size or a non-finite delta.
func (g *GestureInterpreter) DragDelta(dx, dy, viewportWidth, viewportHeight, sensitivity float64) bool {
	if !g.Enabled || g.phase != GestureDragging || !finite(sensitivity) {
		return false
	}

	changed := false
	if viewportWidth > 0 && finite(dx) && finite(viewportWidth) {
		g.view.Yaw = scene.Clamp(g.view.Yaw+dx/viewportWidth*360*sensitivity, MinYaw, MaxYaw)
		changed = true
	}
	if viewportHeight > 0 && finite(dy) && finite(viewportHeight) {
		g.view.Pitch = scene.Clamp(g.view.Pitch+dy/viewportHeight*180*sensitivity, MinPitch, MaxPitch)
		changed = true
	}
	return changed
}

func (g *GestureInterpreter) DragEnd() {
	g.phase = GestureIdle
}

func (g *GestureInterpreter) Phase() GesturePhase {
	return g.phase
}

func (g *GestureInterpreter) View() ViewState {
	return g.view
}

// SetView places the view directly, clamped to range.
func (g *GestureInterpreter) SetView(v ViewState) {
	g.view.Yaw = scene.Clamp(v.Yaw, MinYaw, MaxYaw)
	g.view.Pitch = scene.Clamp(v.Pitch, MinPitch, MaxPitch)
}

// Reset centres the view and abandons any drag in progress.
func (g *GestureInterpreter) Reset() {
	g.view = ViewState{}
	g.phase = GestureIdle
}

// Draggable receives drag gestures. *Scene implements it.
type Draggable interface {
	DragStart() bool
	DragDelta(dx, dy, viewportWidth, viewportHeight float64) bool
	DragEnd()
}

// PointerDrag turns button presses and motion into drag gestures and tells
// clicks apart from drags.
type PointerDrag struct {
	Target Draggable
	// Slop is how far a press may travel and still count as a click.
	Slop float64

	pressed bool
	travel  float64
}

// Press starts a drag. Presses over an overlay are left to the overlay.
func (d *PointerDrag) Press(overUI bool) {
	if overUI {
		return
	}
	d.pressed = true
	d.travel = 0
	d.Target.DragStart()
}

func (d *PointerDrag) Move(dx, dy, viewportWidth, viewportHeight float64) {
	if !d.pressed || (dx == 0 && dy == 0) {
		return
	}
	d.Target.DragDelta(dx, dy, viewportWidth, viewportHeight)
	d.travel += math.Hypot(dx, dy)
}

// Release ends the drag wherever the pointer is and reports whether the
// press was a click.
func (d *PointerDrag) Release() bool {
	if !d.pressed {
		return false
	}
	d.pressed = false
	d.Target.DragEnd()
	return d.travel <= d.Slop
}

func (d *PointerDrag) Pressed() bool {
	return d.pressed
}
