package content

import (
	"fmt"
	"math"
	"strings"

	"holoscene/internal/scene"
)

var builtins = map[scene.ContentType]RenderFunc{
	scene.ContentText:      renderText,
	scene.ContentModel:     renderModel,
	scene.ContentChart:     renderChart,
	scene.ContentFormula:   renderFormula,
	scene.ContentAnimation: renderAnimation,
	scene.ContentModel3D:   renderModel3D,
	scene.ContentHologram:  renderHologram,
	scene.ContentPortal:    renderPortal,
	scene.ContentTool:      renderTool,
	scene.ContentDocument:  renderDocument,
}

const (
	maxChartBars  = 24
	maxTextLines  = 8
	maxModelLayer = 6
	maxDocPages   = 5
)

func baseSpec(contentType scene.ContentType, w, h float64, pal Palette) VisualSpec {
	return VisualSpec{
		Type:   contentType,
		Width:  w,
		Height: h,
		Style: Style{
			Accent:     pal.Accent,
			Background: pal.Background,
			Glow:       pal.Glow,
			Scanlines:  pal.Scanlines,
		},
	}
}

func titleOf(obj *scene.Object) string {
	if obj.Title != "" {
		return obj.Title
	}
	if obj.ID != "" {
		return obj.ID
	}
	return "untitled"
}

func titleLabel(obj *scene.Object, h float64, pal Palette) Label {
	return Label{Text: titleOf(obj), Role: "title", Y: h/2 - 12, Size: 16, Color: pal.Text}
}

// wrapText breaks s into lines of at most width runes on word boundaries.
func wrapText(s string, width, maxLines int) []string {
	var lines []string
	var current []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		switch {
		case len(current) == 0:
			current = w
		case len(current)+1+len(w) <= width:
			current = append(append(current, ' '), w...)
		default:
			lines = append(lines, string(current))
			current = w
		}
		for len(current) > width {
			lines = append(lines, string(current[:width]))
			current = current[width:]
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] += "…"
	}
	return lines
}

func renderText(obj *scene.Object, pal Palette) VisualSpec {
	const w, h = 220.0, 140.0
	spec := baseSpec(obj.Type, w, h, pal)
	spec.add(Primitive{Kind: PrimRect, Role: "frame", W: w, H: h, Color: pal.Background, Filled: true})
	spec.add(Primitive{Kind: PrimRect, Role: "border", W: w, H: h, Color: pal.Primary})
	spec.label(titleLabel(obj, h, pal))

	body := obj.PayloadString("text")
	if body == "" {
		body = obj.PayloadString("body")
	}
	for i, line := range wrapText(body, 32, maxTextLines) {
		spec.label(Label{Text: line, Role: "body", X: -w/2 + 10, Y: h/2 - 36 - float64(i)*13, Size: 11, Color: pal.Text})
	}
	return spec
}

// square returns the corners of an axis-aligned square centred at (cx, cy).
func square(cx, cy, half float64) []scene.Vec2 {
	return []scene.Vec2{
		{X: cx - half, Y: cy - half},
		{X: cx + half, Y: cy - half},
		{X: cx + half, Y: cy + half},
		{X: cx - half, Y: cy + half},
		{X: cx - half, Y: cy - half},
	}
}

func wireCube(spec *VisualSpec, half, depth float64, pal Palette) {
	front := square(0, 0, half)
	back := square(depth, depth, half)
	spec.add(Primitive{Kind: PrimPolyline, Role: "face", Points: front, Color: pal.Primary})
	spec.add(Primitive{Kind: PrimPolyline, Role: "face", Points: back, Color: pal.Secondary})
	for i := 0; i < 4; i++ {
		spec.add(Primitive{Kind: PrimLine, Role: "edge", Points: []scene.Vec2{front[i], back[i]}, Color: pal.Secondary})
	}
}

func renderModel(obj *scene.Object, pal Palette) VisualSpec {
	const w, h = 160.0, 160.0
	spec := baseSpec(obj.Type, w, h, pal)
	wireCube(&spec, 40, 16, pal)
	spec.label(titleLabel(obj, h, pal))
	if src := obj.PayloadString("source"); src != "" {
		spec.label(Label{Text: src, Role: "caption", Y: -h/2 + 10, Size: 10, Color: pal.Secondary})
	}
	return spec
}

func renderModel3D(obj *scene.Object, pal Palette) VisualSpec {
	const w, h = 180.0, 180.0
	spec := baseSpec(obj.Type, w, h, pal)

	layers := int(obj.PayloadFloat("layers", 3))
	if layers < 1 {
		layers = 1
	}
	if layers > maxModelLayer {
		layers = maxModelLayer
	}
	for i := 0; i < layers; i++ {
		depth := 8 + float64(i)*8
		half := 44 - float64(i)*4
		wireCube(&spec, half, depth, pal)
	}
	spec.label(titleLabel(obj, h, pal))
	spec.Style.Glow = math.Min(1, pal.Glow+0.1)
	return spec
}

func renderChart(obj *scene.Object, pal Palette) VisualSpec {
	const w, h = 240.0, 160.0
	spec := baseSpec(obj.Type, w, h, pal)
	spec.add(Primitive{Kind: PrimRect, Role: "frame", W: w, H: h, Color: pal.Background, Filled: true})

	left, bottom := -w/2+20, -h/2+20
	plotW, plotH := w-40, h-56
	spec.add(Primitive{Kind: PrimLine, Role: "axis", Points: []scene.Vec2{{X: left, Y: bottom}, {X: left + plotW, Y: bottom}}, Color: pal.Text})
	spec.add(Primitive{Kind: PrimLine, Role: "axis", Points: []scene.Vec2{{X: left, Y: bottom}, {X: left, Y: bottom + plotH}}, Color: pal.Text})
	spec.label(titleLabel(obj, h, pal))

	values := obj.PayloadFloats("values")
	if len(values) > maxChartBars {
		values = values[:maxChartBars]
	}
	if len(values) == 0 {
		return spec
	}

	peak := 0.0
	for _, v := range values {
		if math.Abs(v) > peak && !math.IsInf(v, 0) {
			peak = math.Abs(v)
		}
	}
	if peak == 0 || math.IsNaN(peak) {
		peak = 1
	}

	labels := obj.PayloadStrings("labels")
	slot := plotW / float64(len(values))
	line := obj.PayloadString("kind") == "line"
	var points []scene.Vec2

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		norm := math.Max(0, v) / peak
		cx := left + slot*(float64(i)+0.5)
		if line {
			points = append(points, scene.Vec2{X: cx, Y: bottom + norm*plotH})
		} else {
			barH := norm * plotH
			spec.add(Primitive{Kind: PrimRect, Role: "bar", X: cx, Y: bottom + barH/2, W: slot * 0.7, H: barH, Color: pal.Primary, Filled: true})
		}
		if i < len(labels) {
			spec.label(Label{Text: labels[i], Role: "tick", X: cx, Y: bottom - 10, Size: 9, Color: pal.Text})
		}
	}
	if line {
		spec.add(Primitive{Kind: PrimPolyline, Role: "series", Points: points, Color: pal.Primary})
	}
	return spec
}

func renderFormula(obj *scene.Object, pal Palette) VisualSpec {
	const w, h = 200.0, 90.0
	spec := baseSpec(obj.Type, w, h, pal)
	spec.add(Primitive{Kind: PrimRect, Role: "frame", W: w, H: h, Color: pal.Background, Filled: true})

	expr := obj.PayloadString("expression")
	if expr == "" {
		expr = obj.PayloadString("latex")
	}
	if expr == "" {
		expr = titleOf(obj)
	}
	spec.label(Label{Text: expr, Role: "expression", Size: 20, Color: pal.Accent})
	spec.add(Primitive{Kind: PrimLine, Role: "underline", Points: []scene.Vec2{{X: -w/2 + 16, Y: -16}, {X: w/2 - 16, Y: -16}}, Color: pal.Primary})
	if obj.Title != "" && obj.Title != expr {
		spec.label(titleLabel(obj, h, pal))
	}
	return spec
}

func renderAnimation(obj *scene.Object, pal Palette) VisualSpec {
	const w, h = 160.0, 160.0
	spec := baseSpec(obj.Type, w, h, pal)
	spec.add(Primitive{Kind: PrimRing, Role: "timeline", Radius: 56, Color: pal.Secondary})

	frames := int(obj.PayloadFloat("frames", 12))
	if frames < 1 {
		frames = 1
	}
	if frames > 60 {
		frames = 60
	}
	for i := 0; i < frames; i++ {
		a := 2 * math.Pi * float64(i) / float64(frames)
		inner := scene.Vec2{X: math.Cos(a) * 50, Y: math.Sin(a) * 50}
		outer := scene.Vec2{X: math.Cos(a) * 62, Y: math.Sin(a) * 62}
		spec.add(Primitive{Kind: PrimLine, Role: "frame-tick", Points: []scene.Vec2{inner, outer}, Color: pal.Primary})
	}
	spec.add(Primitive{Kind: PrimPolyline, Role: "play", Color: pal.Accent, Filled: true, Points: []scene.Vec2{
		{X: -12, Y: -16}, {X: 18, Y: 0}, {X: -12, Y: 16}, {X: -12, Y: -16},
	}})
	spec.label(titleLabel(obj, h, pal))
	if d := obj.PayloadFloat("duration", 0); d > 0 {
		spec.label(Label{Text: fmt.Sprintf("%.1fs", d), Role: "caption", Y: -h/2 + 10, Size: 10, Color: pal.Text})
	}
	return spec
}

func renderHologram(obj *scene.Object, pal Palette) VisualSpec {
	const w, h = 200.0, 200.0
	spec := baseSpec(obj.Type, w, h, pal)
	for i := 0; i < 3; i++ {
		spec.add(Primitive{Kind: PrimRing, Role: "halo", Radius: 40 + float64(i)*22, Color: pal.Primary})
	}
	spec.add(Primitive{Kind: PrimCircle, Role: "core", Radius: 24, Color: pal.Accent, Filled: true})
	spec.add(Primitive{Kind: PrimRect, Role: "emitter", Y: -h/2 + 8, W: 120, H: 6, Color: pal.Secondary, Filled: true})
	spec.label(titleLabel(obj, h, pal))
	spec.Style.Scanlines = true
	spec.Style.Glow = math.Min(1, pal.Glow+0.2)
	return spec
}

func renderPortal(obj *scene.Object, pal Palette) VisualSpec {
	const w, h = 180.0, 180.0
	spec := baseSpec(obj.Type, w, h, pal)
	spec.add(Primitive{Kind: PrimRing, Role: "rim", Radius: 80, Color: pal.Primary})
	spec.add(Primitive{Kind: PrimCircle, Role: "vortex", Radius: 64, Color: pal.Secondary, Filled: true})
	spec.label(titleLabel(obj, h, pal))

	dest := obj.PayloadString("destination")
	if dest == "" {
		dest = obj.PayloadString("environment")
	}
	if dest != "" {
		spec.label(Label{Text: "→ " + dest, Role: "destination", Size: 12, Color: pal.Text})
	}
	return spec
}

func renderTool(obj *scene.Object, pal Palette) VisualSpec {
	const w, h = 120.0, 120.0
	spec := baseSpec(obj.Type, w, h, pal)
	spec.add(Primitive{Kind: PrimRect, Role: "frame", W: w, H: h, Color: pal.Background, Filled: true})

	icon := obj.PayloadString("icon")
	if icon == "" {
		icon = "wrench"
	}
	spec.add(Primitive{Kind: PrimIcon, Role: "icon", Y: 8, W: 56, H: 56, Icon: icon, Color: pal.Primary})
	spec.label(titleLabel(obj, h, pal))
	if action := obj.PayloadString("action"); action != "" {
		spec.label(Label{Text: action, Role: "action", Y: -h/2 + 12, Size: 11, Color: pal.Accent})
	}
	return spec
}

func renderDocument(obj *scene.Object, pal Palette) VisualSpec {
	const w, h = 150.0, 200.0
	spec := baseSpec(obj.Type, w, h, pal)

	pages := int(obj.PayloadFloat("pages", 1))
	if pages < 1 {
		pages = 1
	}
	if pages > maxDocPages {
		pages = maxDocPages
	}
	// Stacked sheets, back to front.
	for i := pages - 1; i >= 0; i-- {
		off := float64(i) * 4
		spec.add(Primitive{Kind: PrimRect, Role: "page", X: off, Y: -off, W: w - 10, H: h - 10, Color: pal.Background, Filled: true})
	}
	for i := 0; i < 6; i++ {
		y := h/2 - 48 - float64(i)*18
		spec.add(Primitive{Kind: PrimLine, Role: "text-line", Points: []scene.Vec2{{X: -w/2 + 20, Y: y}, {X: w/2 - 30, Y: y}}, Color: pal.Secondary})
	}
	spec.label(titleLabel(obj, h, pal))
	if author := obj.PayloadString("author"); author != "" {
		spec.label(Label{Text: author, Role: "caption", Y: -h/2 + 12, Size: 10, Color: pal.Text})
	}
	return spec
}
