package debug

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"holoscene/internal/engine2D"
	"holoscene/internal/utils"
)

type DebugTab int

const (
	TabScene DebugTab = iota
	TabParticles
	TabPerformance
)

var tabNames = []string{"Scene", "Particles", "Performance"}

// DebugOverlay is the F8 sidebar of the viewer. It only reads frames.
type DebugOverlay struct {
	ActiveTab         DebugTab
	ShowBoundingBoxes bool

	fontHeight   int
	lineHeight   int
	tabHeight    int
	sidebarWidth int

	prevLeftMouseButton bool
	pointer             utils.PointerSample
	clicked             bool

	font          rl.Font
	monitorWidth  int
	monitorHeight int

	lastUpdateTime time.Time
	frameCount     int
	fps            float64
	memStats       runtime.MemStats
}

var fontPaths = []string{
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

// LoadFont loads the first system font found, falling back to raylib's
// built-in font.
func LoadFont() rl.Font {
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			font := rl.LoadFontEx(path, 64, nil, 0)
			rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
			return font
		}
	}
	return rl.GetFontDefault()
}

func NewDebugOverlay(font rl.Font) *DebugOverlay {
	monitor := rl.GetCurrentMonitor()
	d := &DebugOverlay{
		ActiveTab:      TabScene,
		font:           font,
		monitorWidth:   rl.GetMonitorWidth(monitor),
		monitorHeight:  rl.GetMonitorHeight(monitor),
		lastUpdateTime: time.Now(),
	}
	d.updateLayout()
	return d
}

func (d *DebugOverlay) updateLayout() {
	scale := math.Max(1.0, float64(d.monitorHeight)/1080.0)
	d.fontHeight = int(16 * scale)
	d.lineHeight = int(24 * scale)
	d.tabHeight = int(36 * scale)
	d.sidebarWidth = int(420 * scale)
}

// Update samples input and timing. It reports whether the pointer is over
// the sidebar, so the viewer can keep clicks out of the scene.
func (d *DebugOverlay) Update() bool {
	d.frameCount++
	now := time.Now()
	if now.Sub(d.lastUpdateTime) >= time.Second {
		d.fps = float64(d.frameCount) / now.Sub(d.lastUpdateTime).Seconds()
		d.frameCount = 0
		d.lastUpdateTime = now
		runtime.ReadMemStats(&d.memStats)
	}

	mPos := rl.GetMousePosition()
	leftPressed := rl.IsMouseButtonDown(rl.MouseLeftButton)
	d.pointer = utils.PointerSample{X: int(mPos.X), Y: int(mPos.Y), Pressed: leftPressed}
	d.clicked = leftPressed && !d.prevLeftMouseButton
	d.prevLeftMouseButton = leftPressed

	over := d.pointer.X < d.sidebarWidth
	if d.clicked && d.pointer.Y < d.tabHeight && over {
		tabWidth := d.sidebarWidth / len(tabNames)
		d.ActiveTab = DebugTab(min(d.pointer.X/tabWidth, len(tabNames)-1))
	}
	return over
}

func (d *DebugOverlay) Draw(frame engine2D.Frame, vp engine2D.Viewport) {
	if d.ShowBoundingBoxes {
		drawBoundingBoxes(frame, vp)
	}

	h := int32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, int32(d.sidebarWidth), h, rl.NewColor(10, 10, 20, 210))

	tabs := NewPanel(0, 0, d.sidebarWidth, d)
	tabs.Tabs(tabNames, int(d.ActiveTab), d.tabHeight)

	ui := NewPanel(10, d.tabHeight+8, d.sidebarWidth-20, d)
	ui.Toggle("Show Bounding Boxes", &d.ShowBoundingBoxes)
	ui.Gap()

	switch d.ActiveTab {
	case TabScene:
		d.drawScene(ui, frame)
	case TabParticles:
		d.drawParticles(ui, frame)
	case TabPerformance:
		d.drawPerformance(ui, vp)
	}
}

const indent = 10

func (d *DebugOverlay) drawScene(ui *Panel, frame engine2D.Frame) {
	ui.Header("Scene:")
	ui.Indent(indent, func() {
		ui.Label(fmt.Sprintf("Frame: %d", frame.Number))
		ui.Label(fmt.Sprintf("Environment: %s (immersion %.2f)", frame.Environment, frame.Immersion))
		ui.Label(fmt.Sprintf("Theme: %s", frame.Theme))
		ui.Label(fmt.Sprintf("View: yaw %.1f°, pitch %.1f°", frame.View.Yaw, frame.View.Pitch))
		ui.Label(fmt.Sprintf("Ambient angle: %.1f°", frame.AmbientAngle))
	})
	ui.Bar(fmt.Sprintf("Power (%s)", frame.PowerState), frame.Power)
	ui.Gap()

	ui.Header(fmt.Sprintf("Objects (%d):", len(frame.Objects)))
	ui.Indent(indent, func() {
		for _, of := range frame.Objects {
			ui.Label(fmt.Sprintf("%s [%s] in %.0f%% op %.2f", of.Object.ID, of.Object.Type, of.Entrance*100, of.Transform.Opacity))
		}
	})

	if len(frame.Diagnostics) > 0 {
		ui.Gap()
		ui.Header("Diagnostics:")
		ui.Indent(indent, func() {
			for _, msg := range frame.Diagnostics {
				ui.Warning(msg)
			}
		})
	}
}

func (d *DebugOverlay) drawParticles(ui *Panel, frame engine2D.Frame) {
	visible := 0
	total := 0.0
	for _, p := range frame.Particles {
		if p.Opacity > 0 {
			visible++
		}
		total += p.Opacity
	}

	ui.Header("Particles:")
	ui.Indent(indent, func() {
		ui.Label(fmt.Sprintf("Pool: %d", len(frame.Particles)))
		ui.Label(fmt.Sprintf("Shape: %s", frame.ParticleVisual.Shape))
		ui.Label(fmt.Sprintf("Visible: %d", visible))
		if len(frame.Particles) > 0 {
			ui.Bar("Mean opacity", total/float64(len(frame.Particles)))
		}
	})
}

func (d *DebugOverlay) drawPerformance(ui *Panel, vp engine2D.Viewport) {
	ui.Header("Timing:")
	ui.Indent(indent, func() {
		ui.Label(fmt.Sprintf("FPS: %.1f", d.fps))
		ui.Label(fmt.Sprintf("Frame Time: %.2f ms", rl.GetFrameTime()*1000))
	})
	ui.Gap()

	ui.Header("Memory Usage:")
	ui.Indent(indent, func() {
		ui.Label(fmt.Sprintf("Allocated: %.2f MB", float64(d.memStats.Alloc)/1024/1024))
		ui.Label(fmt.Sprintf("Heap Alloc: %.2f MB", float64(d.memStats.HeapAlloc)/1024/1024))
		ui.Label(fmt.Sprintf("Goroutines: %d", runtime.NumGoroutine()))
	})
	ui.Gap()

	ui.Header("Display:")
	ui.Indent(indent, func() {
		ui.Label(fmt.Sprintf("Window: %dx%d", rl.GetScreenWidth(), rl.GetScreenHeight()))
		ui.Label(fmt.Sprintf("Monitor Native: %dx%d", d.monitorWidth, d.monitorHeight))
		ui.Label(fmt.Sprintf("Scene Size: %.0fx%.0f", vp.SceneWidth, vp.SceneHeight))
		ui.Label(fmt.Sprintf("Render Scale: %.2fx", vp.Scale))
	})
}
