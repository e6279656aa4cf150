package engine2D

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// FrameFunc is a per-frame update step; dt is in seconds.
type FrameFunc func(dt float64)

// FrameHandle controls one registered per-frame callback.
type FrameHandle interface {
	ID() string
	Name() string
	Stop()
	Active() bool
}

// FrameDriver is anything that can call registered functions once per
// frame. FrameLoop is the production driver.
type FrameDriver interface {
	Register(name string, fn FrameFunc) FrameHandle
}

type frameHandle struct {
	id     string
	name   string
	fn     FrameFunc
	active bool
}

func (h *frameHandle) ID() string     { return h.id }
func (h *frameHandle) Name() string   { return h.name }
func (h *frameHandle) Stop()          { h.active = false }
func (h *frameHandle) Active() bool   { return h.active }
func (h *frameHandle) String() string { return fmt.Sprintf("%s(%s)", h.name, h.id) }

// FrameLoop is a single-threaded game loop: every Step runs each active
// callback once, in registration order.
type FrameLoop struct {
	handles []*frameHandle
	frames  uint64
	closed  bool
}

func NewFrameLoop() *FrameLoop {
	return &FrameLoop{}
}

// Register adds fn to the loop. Registering on a closed loop returns a handle
// that is already stopped.
func (l *FrameLoop) Register(name string, fn FrameFunc) FrameHandle {
	h := &frameHandle{id: uuid.NewString(), name: name, fn: fn, active: !l.closed && fn != nil}
	if h.active {
		l.handles = append(l.handles, h)
	}
	return h
}

// Step runs one frame. A callback stopped earlier in the same frame is
// skipped.
func (l *FrameLoop) Step(dt float64) {
	if l.closed {
		return
	}
	l.frames++

	for i := 0; i < len(l.handles); i++ {
		h := l.handles[i]
		if h.active {
			h.fn(dt)
		}
	}

	live := l.handles[:0]
	for _, h := range l.handles {
		if h.active {
			live = append(live, h)
		}
	}
	for i := len(live); i < len(l.handles); i++ {
		l.handles[i] = nil
	}
	l.handles = live
}

// Active counts callbacks that will run on the next Step.
func (l *FrameLoop) Active() int {
	n := 0
	for _, h := range l.handles {
		if h.active {
			n++
		}
	}
	return n
}

func (l *FrameLoop) Frames() uint64 {
	return l.frames
}

// Close stops every callback and refuses new ones.
func (l *FrameLoop) Close() error {
	l.closed = true
	for _, h := range l.handles {
		h.Stop()
	}
	if n := l.Active(); n > 0 {
		return fmt.Errorf("%w: %d callbacks", ErrCallbackLeak, n)
	}
	l.handles = nil
	return nil
}

// AmbientRotation is a time-driven angle in degrees, kept in [0,360).
type AmbientRotation struct {
	Angle float64
	Speed float64
}

func (a *AmbientRotation) Advance(dt float64) {
	if !(dt > 0) || !finite(dt) || !finite(a.Speed) {
		return
	}
	a.Angle = math.Mod(a.Angle+a.Speed*dt, 360)
	if a.Angle < 0 {
		a.Angle += 360
	}
}
