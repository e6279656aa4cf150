package engine2D

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holoscene/internal/scene"
)

func floatPtr(v float64) *float64 { return &v }

func testObject(id string, x, y, z, scale float64) scene.Object {
	return scene.Object{
		ID:          id,
		Type:        scene.ContentText,
		Title:       id,
		Position:    &scene.Vec3{X: x, Y: y, Z: z},
		Scale:       floatPtr(scale),
		Interactive: true,
	}
}

func TestFullEntranceKeepsIntrinsicScale(t *testing.T) {
	c := NewCompositor(false, DefaultParallaxFactor)
	for _, s := range []float64{0, 0.25, 1, 3.5} {
		obj := testObject("a", 0, 0, 0, s)
		tr, err := c.ComputeTransform(&obj, 1, 0, 0, 0, 1)
		require.NoError(t, err)
		assert.Equal(t, s, tr.Scale)
	}
}

func TestScaleIsMonotonicInEntrance(t *testing.T) {
	c := NewCompositor(true, DefaultParallaxFactor)
	obj := testObject("a", 10, -5, 2, 2)

	prev := -1.0
	for p := -0.5; p <= 1.5; p += 0.05 {
		tr, err := c.ComputeTransform(&obj, p, 45, 10, 10, 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, tr.Scale, prev)
		prev = tr.Scale
	}
	assert.Equal(t, 2.0, prev)
}

func TestAmbientRotationOnlyWhenEnabled(t *testing.T) {
	obj := testObject("a", 0, 0, 0, 1)
	obj.Rotation = scene.Vec3{X: 5, Y: 10, Z: 15}

	on, err := NewCompositor(true, 0).ComputeTransform(&obj, 1, 30, 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 40.0, on.RotateY)
	assert.Equal(t, 5.0, on.RotateX)
	assert.Equal(t, 15.0, on.RotateZ)

	off, err := NewCompositor(false, 0).ComputeTransform(&obj, 1, 30, 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 10.0, off.RotateY)
}

func TestParallaxFollowsView(t *testing.T) {
	c := NewCompositor(false, 20)
	obj := testObject("a", 100, 50, 0, 1)

	centred, err := c.ComputeTransform(&obj, 1, 0, 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, centred.TranslateX)
	assert.Equal(t, 50.0, centred.TranslateY)

	turned, err := c.ComputeTransform(&obj, 1, 0, 90, 90, 1)
	require.NoError(t, err)
	assert.InDelta(t, 120, turned.TranslateX, 1e-9)
	assert.InDelta(t, 60, turned.TranslateY, 1e-9)

	// out of range view angles are clamped before use
	over, err := c.ComputeTransform(&obj, 1, 0, 90, 500, 1)
	require.NoError(t, err)
	assert.InDelta(t, 60, over.TranslateY, 1e-9)
}

func TestOpacityIsClamped(t *testing.T) {
	c := NewCompositor(false, 0)
	obj := testObject("a", 0, 0, 0, 1)
	obj.Opacity = floatPtr(3)

	cases := []struct {
		name     string
		progress float64
		power    float64
		want     float64
	}{
		{"full", 1, 1, 1},
		{"half entrance", 0.5, 1, 0.5},
		{"power off", 1, 0, 0},
		{"power over range", 1, 7, 1},
		{"negative progress", -1, 1, 0},
		{"nan power", 1, math.NaN(), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := c.ComputeTransform(&obj, tc.progress, 0, 0, 0, tc.power)
			require.NoError(t, err)
			assert.Equal(t, tc.want, tr.Opacity)
			assert.GreaterOrEqual(t, tr.Opacity, 0.0)
			assert.LessOrEqual(t, tr.Opacity, 1.0)
		})
	}

	obj.Opacity = floatPtr(0.5)
	tr, err := c.ComputeTransform(&obj, 0.5, 0, 0, 0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.125, tr.Opacity)
}

func TestComputeTransformRejectsMalformedObjects(t *testing.T) {
	c := NewCompositor(true, DefaultParallaxFactor)

	noPosition := testObject("p", 0, 0, 0, 1)
	noPosition.Position = nil
	noScale := testObject("s", 0, 0, 0, 1)
	noScale.Scale = nil
	nanScale := testObject("n", 0, 0, 0, math.NaN())
	negative := testObject("neg", 0, 0, 0, -1)
	infPos := testObject("inf", math.Inf(1), 0, 0, 1)
	nanRotation := testObject("rot", 0, 0, 0, 1)
	nanRotation.Rotation.Y = math.NaN()

	for _, obj := range []scene.Object{noPosition, noScale, nanScale, negative, infPos, nanRotation} {
		_, err := c.ComputeTransform(&obj, 1, 0, 0, 0, 1)
		require.Error(t, err, obj.ID)
		assert.True(t, errors.Is(err, ErrInvalidObject), obj.ID)

		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, obj.ID, ve.ObjectID)
	}
}
