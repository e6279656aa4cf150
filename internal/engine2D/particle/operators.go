package particle

import (
	"math"
)

// applyOperators advances a live particle by dt.
func (ps *ParticleSystem) applyOperators(particle *Particle, dt float64) {
	particle.Position.X += particle.Velocity.X * dt
	particle.Position.Y += particle.Velocity.Y * dt

	if ps.Config.Wobble != 0 {
		freq := ps.Config.WobbleFrequency
		if freq == 0 {
			freq = 1
		}
		phase := ps.GlobalTime*freq*math.Pi*2 + particle.Phase
		particle.Position.X += math.Sin(phase) * ps.Config.Wobble * dt
	}
}
