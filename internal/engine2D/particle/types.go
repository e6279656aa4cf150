package particle

import (
	"holoscene/internal/scene"
)

// RandSource is the subset of *rand.Rand the particle system draws from.
type RandSource interface {
	Float64() float64
}

type Particle struct {
	ID       int
	Position scene.Vec2
	Velocity scene.Vec2
	Life     float64
	Size     float64
	Phase    float64
}

// Bounds is the spawn rectangle. A zero width or height collapses every
// particle onto that axis of the origin.
type Bounds struct {
	X, Y          float64
	Width, Height float64
}

func (b Bounds) Area() float64 {
	return b.Width * b.Height
}

// VelocityDistribution describes per-axis velocity as Bias + Spread*u with u
// uniform in [-1,1]. The zero value means unit spread and no bias.
type VelocityDistribution struct {
	Bias   scene.Vec2 `json:"bias" yaml:"bias"`
	Spread scene.Vec2 `json:"spread" yaml:"spread"`
}

type Shape string

const (
	ShapePoint  Shape = "point"
	ShapeBubble Shape = "bubble"
	ShapeMote   Shape = "mote"
	ShapeDust   Shape = "dust"
	ShapeSpark  Shape = "spark"
)

type VisualParams struct {
	Shape   Shape      `json:"shape" yaml:"shape"`
	MinSize float64    `json:"minsize" yaml:"minsize"`
	MaxSize float64    `json:"maxsize" yaml:"maxsize"`
	Tint    scene.Vec3 `json:"tint" yaml:"tint"`
	Glow    bool       `json:"glow" yaml:"glow"`
}

// Config is the full description of an ambient particle pool.
type Config struct {
	Count     int                  `json:"count" yaml:"count"`
	Bounds    Bounds               `json:"bounds" yaml:"bounds"`
	Velocity  VelocityDistribution `json:"velocity" yaml:"velocity"`
	DecayRate float64              `json:"decayrate" yaml:"decayrate"`
	// Wobble is the amplitude of a sinusoidal lateral drift.
	Wobble          float64      `json:"wobble" yaml:"wobble"`
	WobbleFrequency float64      `json:"wobblefrequency" yaml:"wobblefrequency"`
	Visual          VisualParams `json:"visual" yaml:"visual"`
}

type ParticleSystem struct {
	Name       string
	Config     Config
	Particles  []Particle
	GlobalTime float64
	Recycled   uint64

	rng RandSource
}

type ParticleSystemOptions struct {
	Name   string
	Config Config
	Rand   RandSource
}

// Sprite is the render-ready view of one particle.
type Sprite struct {
	ID       int
	Position scene.Vec2
	Size     float64
	Opacity  float64
}
