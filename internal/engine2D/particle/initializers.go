package particle

import (
	"math"
)

// randomize places a particle somewhere inside the bounds and draws a fresh
// velocity, size and drift phase. The draw order is fixed so that a seeded
// source reproduces the same pool.
func (ps *ParticleSystem) randomize(particle *Particle) {
	b := ps.Config.Bounds
	particle.Position.X = b.X + ps.rng.Float64()*b.Width
	particle.Position.Y = b.Y + ps.rng.Float64()*b.Height

	dist := ps.Config.Velocity
	if dist == (VelocityDistribution{}) {
		dist.Spread.X, dist.Spread.Y = 1, 1
	}
	particle.Velocity.X = dist.Bias.X + (ps.rng.Float64()*2-1)*dist.Spread.X
	particle.Velocity.Y = dist.Bias.Y + (ps.rng.Float64()*2-1)*dist.Spread.Y

	minSize, maxSize := ps.Config.Visual.MinSize, ps.Config.Visual.MaxSize
	if maxSize < minSize {
		minSize, maxSize = maxSize, minSize
	}
	particle.Size = minSize + ps.rng.Float64()*(maxSize-minSize)

	particle.Phase = ps.rng.Float64() * math.Pi * 2
}

// spawn initializes a particle with a random position in its life cycle.
func (ps *ParticleSystem) spawn(particle *Particle, id int) {
	particle.ID = id
	ps.randomize(particle)
	particle.Life = clampLife(ps.rng.Float64())
}

// recycle resets a spent particle to full life at a new position.
func (ps *ParticleSystem) recycle(particle *Particle) {
	ps.randomize(particle)
	particle.Life = 1
	ps.Recycled++
}
