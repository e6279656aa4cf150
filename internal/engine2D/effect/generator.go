// Package effect maps environment types to ambient particle configurations.
//
// Particle space is centred on the scene origin with Y pointing up, so a
// positive Y bias makes particles rise.
package effect

import (
	"holoscene/internal/engine2D/particle"
	"holoscene/internal/scene"
)

// DefaultBounds is the spawn area used when a Generator has no bounds set.
var DefaultBounds = particle.Bounds{X: -200, Y: -300, Width: 400, Height: 600}

// Preset builds the configuration for one environment type inside bounds.
type Preset func(bounds particle.Bounds) particle.Config

type Generator struct {
	Bounds   particle.Bounds
	presets  map[scene.EnvironmentType]Preset
	fallback Preset
}

// NewGenerator returns a generator with the built-in environment presets.
func NewGenerator(bounds particle.Bounds) *Generator {
	g := &Generator{
		Bounds:   bounds,
		presets:  make(map[scene.EnvironmentType]Preset),
		fallback: ambientMotes,
	}
	g.Register(scene.EnvSpace, starfield)
	g.Register(scene.EnvOcean, bubbles)
	g.Register(scene.EnvForest, forestMotes)
	g.Register(scene.EnvClassroom, chalkDust)
	g.Register(scene.EnvLaboratory, labSparks)
	g.Register(scene.EnvMuseum, galleryDust)
	return g
}

// Register adds or replaces the preset for an environment type.
func (g *Generator) Register(envType scene.EnvironmentType, preset Preset) {
	if preset == nil {
		delete(g.presets, envType)
		return
	}
	g.presets[envType] = preset
}

// ConfigFor returns the particle configuration for an environment type.
// Unknown types get a sparse field of neutral motes.
func (g *Generator) ConfigFor(envType scene.EnvironmentType) particle.Config {
	bounds := g.Bounds
	if bounds == (particle.Bounds{}) {
		bounds = DefaultBounds
	}
	preset, ok := g.presets[envType]
	if !ok {
		preset = g.fallback
	}
	return preset(bounds)
}

var defaultGenerator = NewGenerator(DefaultBounds)

// ConfigFor uses the built-in presets over DefaultBounds.
func ConfigFor(envType scene.EnvironmentType) particle.Config {
	return defaultGenerator.ConfigFor(envType)
}
