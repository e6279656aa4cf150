package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedPointer struct {
	samples []PointerSample
	err     error
}

func (p *scriptedPointer) QueryPointer() (PointerSample, error) {
	if p.err != nil {
		return PointerSample{}, p.err
	}
	s := p.samples[0]
	if len(p.samples) > 1 {
		p.samples = p.samples[1:]
	}
	return s, nil
}

func TestPointerTrackerReportsDrag(t *testing.T) {
	src := &scriptedPointer{samples: []PointerSample{
		{X: 100, Y: 100},
		{X: 110, Y: 95, Pressed: true},
		{X: 130, Y: 90, Pressed: true},
		{X: 130, Y: 90},
	}}
	tr := NewPointerTracker(src)

	d, err := tr.Poll()
	require.NoError(t, err)
	assert.Equal(t, PointerDelta{}, d)

	d, _ = tr.Poll()
	assert.Equal(t, PointerDelta{DX: 10, DY: -5, Pressed: true, Start: true}, d)

	d, _ = tr.Poll()
	assert.Equal(t, PointerDelta{DX: 20, DY: -5, Pressed: true}, d)

	d, _ = tr.Poll()
	assert.Equal(t, PointerDelta{End: true}, d)
}

func TestPointerTrackerPropagatesErrors(t *testing.T) {
	tr := NewPointerTracker(&scriptedPointer{err: errors.New("no display")})
	_, err := tr.Poll()
	assert.EqualError(t, err, "no display")
}
