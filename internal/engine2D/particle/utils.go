package particle

import (
	"math"

	"holoscene/internal/scene"
)

func clampLife(life float64) float64 {
	return scene.Clamp01(life)
}

func validStep(dt float64) bool {
	return dt > 0 && !math.IsNaN(dt) && !math.IsInf(dt, 0)
}

// seqSource replays a fixed sequence of values. It backs Deterministic.
type seqSource struct {
	values []float64
	next   int
}

func (s *seqSource) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Deterministic returns a RandSource that cycles through values. It is
// meant for previews and tests that need exact particle placement.
func Deterministic(values ...float64) RandSource {
	return &seqSource{values: values}
}
