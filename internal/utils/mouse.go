package utils

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// PointerSample is one reading of the global pointer.
type PointerSample struct {
	X, Y    int
	Pressed bool
}

type PointerSource interface {
	QueryPointer() (PointerSample, error)
}

// X11Pointer reads the pointer from the root window, so it keeps working
// while the viewer window is unfocused or sits below other windows.
type X11Pointer struct {
	conn *xgb.Conn
	root xproto.Window
}

func NewX11Pointer() (*X11Pointer, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	setup := xproto.Setup(conn)
	return &X11Pointer{conn: conn, root: setup.DefaultScreen(conn).Root}, nil
}

func (p *X11Pointer) QueryPointer() (PointerSample, error) {
	reply, err := xproto.QueryPointer(p.conn, p.root).Reply()
	if err != nil {
		return PointerSample{}, err
	}
	return PointerSample{
		X:       int(reply.RootX),
		Y:       int(reply.RootY),
		Pressed: reply.Mask&xproto.KeyButMaskButton1 != 0,
	}, nil
}

func (p *X11Pointer) Close() {
	p.conn.Close()
}

// PointerDelta is the movement between two polls. Start and End mark the
// press and release of the primary button.
type PointerDelta struct {
	DX, DY  float64
	Pressed bool
	Start   bool
	End     bool
}

// PointerTracker turns absolute pointer samples into drag deltas.
type PointerTracker struct {
	src    PointerSource
	last   PointerSample
	primed bool
}

func NewPointerTracker(src PointerSource) *PointerTracker {
	return &PointerTracker{src: src}
}

// Poll samples the pointer. The first poll only records a baseline.
func (t *PointerTracker) Poll() (PointerDelta, error) {
	s, err := t.src.QueryPointer()
	if err != nil {
		return PointerDelta{}, err
	}
	if !t.primed {
		t.primed = true
		t.last = s
		return PointerDelta{Pressed: s.Pressed, Start: s.Pressed}, nil
	}

	d := PointerDelta{
		DX:      float64(s.X - t.last.X),
		DY:      float64(s.Y - t.last.Y),
		Pressed: s.Pressed,
		Start:   s.Pressed && !t.last.Pressed,
		End:     !s.Pressed && t.last.Pressed,
	}
	t.last = s
	return d, nil
}
