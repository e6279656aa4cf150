package engine2D

import (
	"holoscene/internal/scene"
)

type PowerState int

const (
	PowerPoweringUp PowerState = iota
	PowerSteady
	PowerAdjusting
	PowerHalted
)

func (s PowerState) String() string {
	switch s {
	case PowerPoweringUp:
		return "powering-up"
	case PowerSteady:
		return "steady"
	case PowerAdjusting:
		return "adjusting"
	case PowerHalted:
		return "halted"
	}
	return "unknown"
}

// PowerController owns the global intensity scalar. It starts at zero and
// ramps linearly to its target over the ramp duration.
type PowerController struct {
	level        float64
	target       float64
	rampDuration float64
	elapsed      float64
	state        PowerState
}

// NewPowerController starts a ramp from 0 to target over rampDuration
// seconds. A non-positive duration starts at target.
func NewPowerController(target, rampDuration float64) *PowerController {
	p := &PowerController{
		target:       scene.Clamp01(target),
		rampDuration: rampDuration,
		state:        PowerPoweringUp,
	}
	if !(rampDuration > 0) || !finite(rampDuration) {
		p.level = p.target
		p.state = PowerSteady
	}
	return p
}

// Tick advances the ramp. An adjustment made since the last tick settles
// back to Steady here.
func (p *PowerController) Tick(dt float64) {
	if !(dt > 0) || !finite(dt) {
		return
	}
	switch p.state {
	case PowerPoweringUp:
		p.elapsed += dt
		if p.elapsed >= p.rampDuration {
			p.level = p.target
			p.state = PowerSteady
			return
		}
		p.level = scene.Clamp01(p.target * p.elapsed / p.rampDuration)
	case PowerAdjusting:
		p.state = PowerSteady
	}
}

func (p *PowerController) Increment(delta float64) {
	if !finite(delta) {
		return
	}
	p.adjust(p.level + delta)
}

func (p *PowerController) Decrement(delta float64) {
	if !finite(delta) {
		return
	}
	p.adjust(p.level - delta)
}

func (p *PowerController) SetAbsolute(value float64) {
	if !finite(value) {
		return
	}
	p.adjust(value)
}

// adjust cancels any ramp in progress.
func (p *PowerController) adjust(value float64) {
	p.level = scene.Clamp01(value)
	p.target = p.level
	if p.state != PowerHalted {
		p.state = PowerAdjusting
	}
}

// Halt stops the ramp where it is. Further ticks do nothing.
func (p *PowerController) Halt() {
	p.state = PowerHalted
}

func (p *PowerController) Level() float64 {
	return p.level
}

func (p *PowerController) Target() float64 {
	return p.target
}

func (p *PowerController) State() PowerState {
	return p.state
}

func (p *PowerController) Ramping() bool {
	return p.state == PowerPoweringUp
}
