package content

import (
	"image/color"

	"holoscene/internal/scene"
)

type PrimitiveKind string

const (
	PrimRect     PrimitiveKind = "rect"
	PrimCircle   PrimitiveKind = "circle"
	PrimRing     PrimitiveKind = "ring"
	PrimLine     PrimitiveKind = "line"
	PrimPolyline PrimitiveKind = "polyline"
	PrimIcon     PrimitiveKind = "icon"
)

// Primitive is a shape in object-local coordinates, centred on the object
// origin.
type Primitive struct {
	Kind   PrimitiveKind
	Role   string
	X, Y   float64
	W, H   float64
	Radius float64
	Points []scene.Vec2
	Icon   string
	Color  color.RGBA
	Filled bool
}

type Label struct {
	Text  string
	Role  string
	X, Y  float64
	Size  float64
	Color color.RGBA
}

type Style struct {
	Accent     color.RGBA
	Background color.RGBA
	Glow       float64
	Scanlines  bool
}

// VisualSpec is the structured description of how one object looks. It
// carries no presentation-layer state.
type VisualSpec struct {
	Type       scene.ContentType
	Fallback   bool
	Width      float64
	Height     float64
	Primitives []Primitive
	Labels     []Label
	Style      Style
}

func (v *VisualSpec) add(p Primitive) {
	v.Primitives = append(v.Primitives, p)
}

func (v *VisualSpec) label(l Label) {
	v.Labels = append(v.Labels, l)
}
