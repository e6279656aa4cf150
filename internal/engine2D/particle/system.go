package particle

import (
	"math/rand"
	"time"

	"holoscene/internal/scene"
)

// NewParticleSystem creates a particle system and fills its pool from the
// configured count and bounds.
func NewParticleSystem(opts ParticleSystemOptions) *ParticleSystem {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	ps := &ParticleSystem{
		Name:   opts.Name,
		Config: opts.Config,
		rng:    rng,
	}
	if ps.Config.DecayRate < 0 {
		ps.Config.DecayRate = 0
	}

	ps.Initialize(ps.Config.Count, ps.Config.Bounds)
	return ps
}

// Initialize rebuilds the pool with count particles spread uniformly over
// bounds. Zero-area bounds are allowed and collapse positions to a point.
func (ps *ParticleSystem) Initialize(count int, bounds Bounds) {
	if count < 0 {
		count = 0
	}
	ps.Config.Count = count
	ps.Config.Bounds = bounds
	ps.GlobalTime = 0
	ps.Recycled = 0

	ps.Particles = make([]Particle, count)
	for i := range ps.Particles {
		ps.spawn(&ps.Particles[i], i)
	}
}

// Tick advances every particle by dt seconds. Particles whose life runs out
// are recycled in place; the pool never grows or shrinks.
func (ps *ParticleSystem) Tick(dt float64) {
	if !validStep(dt) {
		return
	}
	ps.GlobalTime += dt

	for i := range ps.Particles {
		particle := &ps.Particles[i]
		particle.Life -= ps.Config.DecayRate * dt

		if particle.Life <= 0 {
			ps.recycle(particle)
			continue
		}

		particle.Life = clampLife(particle.Life)
		ps.applyOperators(particle, dt)
	}
}

func (ps *ParticleSystem) Len() int {
	return len(ps.Particles)
}

// Opacity returns the render opacity of particle i at the given power level.
func (ps *ParticleSystem) Opacity(i int, power float64) float64 {
	if i < 0 || i >= len(ps.Particles) {
		return 0
	}
	return scene.Clamp01(ps.Particles[i].Life * scene.Clamp01(power))
}

// Sprites returns the render view of the pool at the given power level.
func (ps *ParticleSystem) Sprites(power float64) []Sprite {
	sprites := make([]Sprite, len(ps.Particles))
	for i, p := range ps.Particles {
		sprites[i] = Sprite{
			ID:       p.ID,
			Position: p.Position,
			Size:     p.Size,
			Opacity:  ps.Opacity(i, power),
		}
	}
	return sprites
}
