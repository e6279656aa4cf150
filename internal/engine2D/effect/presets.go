package effect

import (
	"holoscene/internal/engine2D/particle"
	"holoscene/internal/scene"
)

// Many tiny, nearly motionless stars that fade slowly.
func starfield(bounds particle.Bounds) particle.Config {
	return particle.Config{
		Count:  50,
		Bounds: bounds,
		Velocity: particle.VelocityDistribution{
			Spread: scene.Vec2{X: 0.02, Y: 0.02},
		},
		DecayRate: 0.05,
		Visual: particle.VisualParams{
			Shape:   particle.ShapePoint,
			MinSize: 1,
			MaxSize: 2.5,
			Tint:    scene.Vec3{X: 0.85, Y: 0.9, Z: 1},
			Glow:    true,
		},
	}
}

// Fewer, larger bubbles that rise and sway.
func bubbles(bounds particle.Bounds) particle.Config {
	return particle.Config{
		Count:  24,
		Bounds: bounds,
		Velocity: particle.VelocityDistribution{
			Bias:   scene.Vec2{Y: 18},
			Spread: scene.Vec2{X: 4, Y: 6},
		},
		DecayRate:       0.25,
		Wobble:          6,
		WobbleFrequency: 0.5,
		Visual: particle.VisualParams{
			Shape:   particle.ShapeBubble,
			MinSize: 3,
			MaxSize: 8,
			Tint:    scene.Vec3{X: 0.6, Y: 0.85, Z: 1},
		},
	}
}

// Slow drifting motes.
func forestMotes(bounds particle.Bounds) particle.Config {
	return particle.Config{
		Count:  30,
		Bounds: bounds,
		Velocity: particle.VelocityDistribution{
			Bias:   scene.Vec2{X: 2, Y: -1},
			Spread: scene.Vec2{X: 6, Y: 3},
		},
		DecayRate:       0.15,
		Wobble:          3,
		WobbleFrequency: 0.2,
		Visual: particle.VisualParams{
			Shape:   particle.ShapeMote,
			MinSize: 2,
			MaxSize: 4,
			Tint:    scene.Vec3{X: 0.9, Y: 0.95, Z: 0.5},
			Glow:    true,
		},
	}
}

func chalkDust(bounds particle.Bounds) particle.Config {
	return particle.Config{
		Count:  20,
		Bounds: bounds,
		Velocity: particle.VelocityDistribution{
			Bias:   scene.Vec2{Y: -2},
			Spread: scene.Vec2{X: 3, Y: 2},
		},
		DecayRate: 0.2,
		Visual: particle.VisualParams{
			Shape:   particle.ShapeDust,
			MinSize: 1,
			MaxSize: 3,
			Tint:    scene.Vec3{X: 0.95, Y: 0.95, Z: 0.95},
		},
	}
}

func labSparks(bounds particle.Bounds) particle.Config {
	return particle.Config{
		Count:  35,
		Bounds: bounds,
		Velocity: particle.VelocityDistribution{
			Bias:   scene.Vec2{Y: 10},
			Spread: scene.Vec2{X: 8, Y: 5},
		},
		DecayRate: 0.6,
		Visual: particle.VisualParams{
			Shape:   particle.ShapeSpark,
			MinSize: 1,
			MaxSize: 2,
			Tint:    scene.Vec3{X: 0.5, Y: 1, Z: 0.8},
			Glow:    true,
		},
	}
}

func galleryDust(bounds particle.Bounds) particle.Config {
	return particle.Config{
		Count:  25,
		Bounds: bounds,
		Velocity: particle.VelocityDistribution{
			Bias:   scene.Vec2{X: 1},
			Spread: scene.Vec2{X: 1.5, Y: 1},
		},
		DecayRate: 0.1,
		Visual: particle.VisualParams{
			Shape:   particle.ShapeDust,
			MinSize: 1.5,
			MaxSize: 3,
			Tint:    scene.Vec3{X: 1, Y: 0.9, Z: 0.75},
		},
	}
}

func ambientMotes(bounds particle.Bounds) particle.Config {
	return particle.Config{
		Count:  20,
		Bounds: bounds,
		Velocity: particle.VelocityDistribution{
			Spread: scene.Vec2{X: 2, Y: 2},
		},
		DecayRate: 0.2,
		Visual: particle.VisualParams{
			Shape:   particle.ShapeMote,
			MinSize: 1,
			MaxSize: 3,
			Tint:    scene.Vec3{X: 1, Y: 1, Z: 1},
		},
	}
}
