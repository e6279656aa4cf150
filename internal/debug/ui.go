package debug

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"holoscene/internal/utils"
)

var (
	textColor    = rl.White
	headerColor  = rl.NewColor(120, 220, 255, 255)
	warningColor = rl.NewColor(255, 180, 60, 255)
	mutedColor   = rl.NewColor(150, 150, 150, 255)
	tabColor     = rl.NewColor(40, 40, 60, 255)
	tabActive    = rl.NewColor(70, 70, 110, 255)
)

// Panel is an immediate-mode column of sidebar widgets. Each widget draws
// at the cursor and moves it down one line.
type Panel struct {
	X, Y       int
	Width      int
	LineHeight int
	FontHeight int
	Font       rl.Font
	Accent     rl.Color

	pointer utils.PointerSample
	clicked bool
	indents []int
}

func NewPanel(x, y, width int, d *DebugOverlay) *Panel {
	return &Panel{
		X:          x,
		Y:          y,
		Width:      width,
		LineHeight: d.lineHeight,
		FontHeight: d.fontHeight,
		Font:       d.font,
		Accent:     rl.NewColor(0, 200, 255, 200),
		pointer:    d.pointer,
		clicked:    d.clicked,
	}
}

func (p *Panel) left() int {
	x := p.X
	for _, n := range p.indents {
		x += n
	}
	return x
}

func (p *Panel) text(text string, x, y int, color rl.Color) {
	if p.Font.BaseSize > 0 {
		rl.DrawTextEx(p.Font, text, rl.NewVector2(float32(x), float32(y)), float32(p.FontHeight), 1, color)
		return
	}
	rl.DrawText(text, int32(x), int32(y), int32(p.FontHeight), color)
}

func (p *Panel) line(text string, color rl.Color) {
	p.text(text, p.left(), p.Y, color)
	p.Y += p.LineHeight
}

// Indent shifts every widget drawn inside fn right by n pixels.
func (p *Panel) Indent(n int, fn func()) {
	p.indents = append(p.indents, n)
	fn()
	p.indents = p.indents[:len(p.indents)-1]
}

func (p *Panel) Label(text string)   { p.line(text, textColor) }
func (p *Panel) Header(text string)  { p.line(text, headerColor) }
func (p *Panel) Warning(text string) { p.line(text, warningColor) }
func (p *Panel) Gap()                { p.Y += p.LineHeight / 2 }

func (p *Panel) hovered(x, y, w, h int) bool {
	px, py := p.pointer.X, p.pointer.Y
	return px >= x && px <= x+w && py >= y && py <= y+h
}

// Toggle draws a checkbox bound to value and flips it when clicked.
func (p *Panel) Toggle(label string, value *bool) {
	box := p.FontHeight * 4 / 5
	x, y := p.left()+5, p.Y+2
	if p.clicked && p.hovered(x, y, p.Width-(x-p.X), box) {
		*value = !*value
	}

	border := mutedColor
	if p.hovered(x, y, box, box) {
		border = p.Accent
	}
	rl.DrawRectangleLines(int32(x), int32(y), int32(box), int32(box), border)
	if *value {
		rl.DrawRectangle(int32(x+2), int32(y+2), int32(box-4), int32(box-4), p.Accent)
	}
	p.text(label, x+box+5, p.Y, textColor)
	p.Y += p.LineHeight
}

// Bar draws a gauge for a value in [0,1] filling the panel width.
func (p *Panel) Bar(label string, value float64) {
	x0 := p.left()
	p.text(label, x0, p.Y, textColor)

	span := p.Width - (x0 - p.X)
	x := x0 + span/3
	w := span - span/3 - 10
	h := p.FontHeight
	rl.DrawRectangleLines(int32(x), int32(p.Y), int32(w), int32(h), mutedColor)
	if value > 0 {
		fill := int(float64(w-2) * min(value, 1))
		rl.DrawRectangle(int32(x+1), int32(p.Y+1), int32(fill), int32(h-2), p.Accent)
	}
	p.Y += p.LineHeight
}

// Tabs draws a row of equal-width tabs across the panel with active
// highlighted.
func (p *Panel) Tabs(names []string, active, height int) {
	width := p.Width / len(names)
	for i, name := range names {
		bg := tabColor
		if i == active {
			bg = tabActive
		}
		x := p.X + i*width
		rl.DrawRectangle(int32(x), int32(p.Y), int32(width-2), int32(height), bg)
		p.text(name, x+10, p.Y+(height-p.FontHeight)/2, textColor)
	}
	p.Y += height
}
