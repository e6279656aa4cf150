package engine2D

import (
	"holoscene/internal/engine2D/content"
	"holoscene/internal/engine2D/particle"
	"holoscene/internal/scene"
)

// RenderObject is the per-object arena entry a Scene keeps, keyed by
// object id.
type RenderObject struct {
	Object      scene.Object
	Order       int
	Delay       float64
	Entrance    float64
	Presented   bool
	Fingerprint uint64
	Transform   Transform
	Visual      content.VisualSpec
}

type ObjectFrame struct {
	Object    scene.Object
	Entrance  float64
	Transform Transform
	Visual    content.VisualSpec
}

// Frame is everything needed to draw one composed frame.
type Frame struct {
	Number         uint64
	Objects        []ObjectFrame
	Particles      []particle.Sprite
	ParticleVisual particle.VisualParams
	View           ViewState
	Power          float64
	PowerState     PowerState
	AmbientAngle   float64
	Environment    scene.EnvironmentType
	Immersion      float64
	Ambient        scene.Vec3
	LightIntensity float64
	Theme          content.Theme
	Diagnostics    []string
}
