// Package draw renders composed frames with raylib. It only reads
// engine2D.Frame values and never mutates scene state.
package draw

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"holoscene/internal/engine2D"
	"holoscene/internal/engine2D/content"
	"holoscene/internal/engine2D/particle"
	"holoscene/internal/scene"
)

const circleSegments = 32

type Painter struct {
	Font     rl.Font
	Viewport engine2D.Viewport
}

func NewPainter(font rl.Font) *Painter {
	return &Painter{Font: font}
}

// Frame draws a whole frame: lit background, particles, then objects back to
// front.
func (p *Painter) Frame(frame engine2D.Frame) {
	p.background(frame)

	v := p.Viewport
	rl.BeginScissorMode(int32(v.OffsetX), int32(v.OffsetY), int32(v.SceneWidth*v.Scale), int32(v.SceneHeight*v.Scale))
	p.particles(frame.Particles, frame.ParticleVisual)
	for _, of := range frame.Objects {
		p.object(of)
	}
	rl.EndScissorMode()
}

func (p *Painter) background(frame engine2D.Frame) {
	rl.ClearBackground(rl.Black)

	light := scene.Clamp01(frame.LightIntensity) * (0.25 + 0.75*scene.Clamp01(frame.Power))
	bg := rl.NewColor(
		uint8(frame.Ambient.X*light*255),
		uint8(frame.Ambient.Y*light*255),
		uint8(frame.Ambient.Z*light*255),
		255,
	)
	v := p.Viewport
	x, y := int32(v.OffsetX), int32(v.OffsetY)
	w, h := int32(v.SceneWidth*v.Scale), int32(v.SceneHeight*v.Scale)
	rl.DrawRectangle(x, y, w, h, bg)

	// Immersion deepens the vignette toward the edges.
	if frame.Immersion > 0 {
		edge := rl.NewColor(0, 0, 0, uint8(scene.Clamp01(frame.Immersion)*180))
		rl.DrawRectangleGradientH(x, y, w/4, h, edge, rl.Blank)
		rl.DrawRectangleGradientH(x+w-w/4, y, w/4, h, rl.Blank, edge)
	}
}

func (p *Painter) particles(sprites []particle.Sprite, visual particle.VisualParams) {
	if len(sprites) == 0 {
		return
	}
	tint := visual.Tint
	if tint == (scene.Vec3{}) {
		tint = scene.Vec3{X: 1, Y: 1, Z: 1}
	}

	rl.BeginBlendMode(rl.BlendAdditive)
	for _, s := range sprites {
		if s.Opacity <= 0 {
			continue
		}
		pos := p.Viewport.ToScreen(s.Position)
		radius := float32(math.Max(0.5, s.Size*p.Viewport.Scale/2))
		c := rl.NewColor(uint8(tint.X*255), uint8(tint.Y*255), uint8(tint.Z*255), uint8(s.Opacity*255))
		center := rl.NewVector2(float32(pos.X), float32(pos.Y))

		switch visual.Shape {
		case particle.ShapeBubble:
			rl.DrawCircleLines(int32(center.X), int32(center.Y), radius, c)
		case particle.ShapePoint:
			rl.DrawPixelV(center, c)
		default:
			rl.DrawCircleV(center, radius, c)
		}
		if visual.Glow {
			halo := c
			halo.A = uint8(float64(c.A) * 0.3)
			rl.DrawCircleV(center, radius*3, halo)
		}
	}
	rl.EndBlendMode()
}

func (p *Painter) object(of engine2D.ObjectFrame) {
	t := of.Transform
	if t.Opacity <= 0 || t.Scale <= 0 {
		return
	}
	spec := of.Visual

	for _, prim := range spec.Primitives {
		p.primitive(prim, t)
	}
	if spec.Style.Glow > 0 {
		p.glow(spec, t)
	}
	if spec.Style.Scanlines {
		p.scanlines(spec, t)
	}
	for _, l := range spec.Labels {
		p.label(l, t)
	}
}

func (p *Painter) screen(t engine2D.Transform, local scene.Vec2) rl.Vector2 {
	s := p.Viewport.ToScreen(t.Project(local))
	return rl.NewVector2(float32(s.X), float32(s.Y))
}

func fade(c color.RGBA, opacity float64) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, uint8(float64(c.A)*scene.Clamp01(opacity)))
}

func (p *Painter) primitive(prim content.Primitive, t engine2D.Transform) {
	c := fade(prim.Color, t.Opacity)
	switch prim.Kind {
	case content.PrimRect:
		corners := rectCorners(prim.X, prim.Y, prim.W, prim.H)
		if prim.Filled {
			a, b, cc, d := p.screen(t, corners[0]), p.screen(t, corners[1]), p.screen(t, corners[2]), p.screen(t, corners[3])
			// A rotation past 90° mirrors the quad; one winding of each
			// pair is always back-face culled.
			rl.DrawTriangle(a, b, cc, c)
			rl.DrawTriangle(a, cc, d, c)
			rl.DrawTriangle(a, cc, b, c)
			rl.DrawTriangle(a, d, cc, c)
			return
		}
		p.polyline(append(corners, corners[0]), t, c)
	case content.PrimCircle, content.PrimRing:
		center := p.screen(t, scene.Vec2{X: prim.X, Y: prim.Y})
		radius := float32(prim.Radius * t.Scale * p.Viewport.Scale)
		if prim.Filled {
			rl.DrawCircleV(center, radius, c)
		} else {
			rl.DrawCircleLines(int32(center.X), int32(center.Y), radius, c)
		}
	case content.PrimLine, content.PrimPolyline:
		p.polyline(prim.Points, t, c)
	case content.PrimIcon:
		p.icon(prim, t, c)
	}
}

func (p *Painter) polyline(points []scene.Vec2, t engine2D.Transform, c rl.Color) {
	for i := 1; i < len(points); i++ {
		rl.DrawLineEx(p.screen(t, points[i-1]), p.screen(t, points[i]), 1.5, c)
	}
}

// icon draws a placeholder glyph: a ring with the icon's initial.
func (p *Painter) icon(prim content.Primitive, t engine2D.Transform, c rl.Color) {
	center := p.screen(t, scene.Vec2{X: prim.X, Y: prim.Y})
	radius := float32(math.Min(prim.W, prim.H) / 2 * t.Scale * p.Viewport.Scale)
	rl.DrawRing(center, radius*0.85, radius, 0, 360, circleSegments, c)
	if prim.Icon != "" {
		glyph := string([]rune(prim.Icon)[:1])
		size := radius
		m := rl.MeasureTextEx(p.Font, glyph, size, 1)
		rl.DrawTextEx(p.Font, glyph, rl.NewVector2(center.X-m.X/2, center.Y-m.Y/2), size, 1, c)
	}
}

func (p *Painter) glow(spec content.VisualSpec, t engine2D.Transform) {
	corners := rectCorners(0, 0, spec.Width, spec.Height)
	base := fade(spec.Style.Accent, t.Opacity*spec.Style.Glow)
	rl.BeginBlendMode(rl.BlendAdditive)
	for i := 1; i <= 3; i++ {
		c := base
		c.A = uint8(float64(base.A) / float64(i*2))
		grown := make([]scene.Vec2, 0, 5)
		pad := float64(i) * 3
		for _, pt := range corners {
			grown = append(grown, scene.Vec2{X: pt.X + math.Copysign(pad, pt.X), Y: pt.Y + math.Copysign(pad, pt.Y)})
		}
		p.polyline(append(grown, grown[0]), t, c)
	}
	rl.EndBlendMode()
}

func (p *Painter) scanlines(spec content.VisualSpec, t engine2D.Transform) {
	c := fade(color.RGBA{0, 0, 0, 60}, t.Opacity)
	for y := -spec.Height / 2; y < spec.Height/2; y += 4 {
		rl.DrawLineV(p.screen(t, scene.Vec2{X: -spec.Width / 2, Y: y}), p.screen(t, scene.Vec2{X: spec.Width / 2, Y: y}), c)
	}
}

func (p *Painter) label(l content.Label, t engine2D.Transform) {
	if l.Text == "" {
		return
	}
	size := float32(l.Size * t.Scale * p.Viewport.Scale)
	if size < 4 {
		return
	}
	anchor := p.screen(t, scene.Vec2{X: l.X, Y: l.Y})
	m := rl.MeasureTextEx(p.Font, l.Text, size, 1)
	pos := rl.NewVector2(anchor.X-m.X/2, anchor.Y-m.Y/2)
	if l.Role == "body" {
		pos.X = anchor.X
	}
	rl.DrawTextEx(p.Font, l.Text, pos, size, 1, fade(l.Color, t.Opacity))
}

// rectCorners returns the corners of a w×h rectangle centred at (x, y),
// counter-clockwise in scene space.
func rectCorners(x, y, w, h float64) []scene.Vec2 {
	return []scene.Vec2{
		{X: x - w/2, Y: y - h/2},
		{X: x + w/2, Y: y - h/2},
		{X: x + w/2, Y: y + h/2},
		{X: x - w/2, Y: y + h/2},
	}
}
