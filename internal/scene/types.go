package scene

import (
	"math"
	"strconv"
	"strings"
)

type Vec2 struct {
	X, Y float64
}

type Vec3 struct {
	X, Y, Z float64
}

type ContentType string

const (
	ContentText      ContentType = "text"
	ContentModel     ContentType = "model"
	ContentChart     ContentType = "chart"
	ContentFormula   ContentType = "formula"
	ContentAnimation ContentType = "animation"
	ContentModel3D   ContentType = "model3d"
	ContentHologram  ContentType = "hologram"
	ContentPortal    ContentType = "portal"
	ContentTool      ContentType = "tool"
	ContentDocument  ContentType = "document"
)

// ContentTypes lists every content type known to the renderer.
var ContentTypes = []ContentType{
	ContentText, ContentModel, ContentChart, ContentFormula, ContentAnimation,
	ContentModel3D, ContentHologram, ContentPortal, ContentTool, ContentDocument,
}

type EnvironmentType string

const (
	EnvClassroom  EnvironmentType = "classroom"
	EnvLaboratory EnvironmentType = "laboratory"
	EnvMuseum     EnvironmentType = "museum"
	EnvSpace      EnvironmentType = "space"
	EnvOcean      EnvironmentType = "ocean"
	EnvForest     EnvironmentType = "forest"
)

var EnvironmentTypes = []EnvironmentType{
	EnvClassroom, EnvLaboratory, EnvMuseum, EnvSpace, EnvOcean, EnvForest,
}

// Object is a single positioned piece of content in a scene.
// Position and Scale are pointers so that a descriptor which omits them can
// be told apart from one that places the object at the origin.
type Object struct {
	ID          string                 `json:"id" yaml:"id"`
	Type        ContentType            `json:"type" yaml:"type"`
	Title       string                 `json:"title" yaml:"title"`
	Payload     map[string]interface{} `json:"payload,omitempty" yaml:"payload,omitempty"`
	Position    *Vec3                  `json:"position,omitempty" yaml:"position,omitempty"`
	Scale       *float64               `json:"scale,omitempty" yaml:"scale,omitempty"`
	Rotation    Vec3                   `json:"rotation" yaml:"rotation"`
	Opacity     *float64               `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Interactive bool                   `json:"interactive" yaml:"interactive"`
	Metadata    map[string]string      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

func (o *Object) GetPosition() Vec3 {
	if o.Position == nil {
		return Vec3{}
	}
	return *o.Position
}

func (o *Object) GetScale() float64 {
	if o.Scale == nil {
		return 0
	}
	return *o.Scale
}

// GetOpacity returns the object opacity clamped to [0,1]. A missing value is
// fully opaque.
func (o *Object) GetOpacity() float64 {
	if o.Opacity == nil {
		return 1
	}
	return Clamp01(*o.Opacity)
}

type Lighting struct {
	AmbientColor string  `json:"ambientcolor" yaml:"ambientcolor"`
	Intensity    float64 `json:"intensity" yaml:"intensity"`
}

// Ambient returns the ambient colour as normalized RGB.
func (l Lighting) Ambient() Vec3 {
	r, g, b := ParseColor(l.AmbientColor)
	return Vec3{X: Clamp01(r), Y: Clamp01(g), Z: Clamp01(b)}
}

type Environment struct {
	ID             string          `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	Type           EnvironmentType `json:"type" yaml:"type"`
	ImmersionLevel float64         `json:"immersionlevel" yaml:"immersionlevel"`
	Objects        []Object        `json:"objects" yaml:"objects"`
	Lighting       Lighting        `json:"lighting" yaml:"lighting"`
}

// ParseColor parses a whitespace separated "r g b" triple.
func ParseColor(colorStr string) (float64, float64, float64) {
	colorParts := strings.Fields(colorStr)
	if len(colorParts) < 3 {
		return 0, 0, 0
	}
	red, _ := strconv.ParseFloat(colorParts[0], 64)
	green, _ := strconv.ParseFloat(colorParts[1], 64)
	blue, _ := strconv.ParseFloat(colorParts[2], 64)
	return red, green, blue
}

func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
