package engine2D

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"holoscene/internal/engine2D/particle"
	"holoscene/internal/scene"
	"holoscene/internal/utils"
)

// countingDriver runs registered steps on demand and counts invocations.
type countingDriver struct {
	handles []*countingHandle
	calls   int
	leaky   bool
}

type countingHandle struct {
	name   string
	fn     FrameFunc
	active bool
	leaky  bool
}

func (h *countingHandle) ID() string   { return h.name }
func (h *countingHandle) Name() string { return h.name }
func (h *countingHandle) Active() bool { return h.active }
func (h *countingHandle) Stop() {
	if !h.leaky {
		h.active = false
	}
}

func (d *countingDriver) Register(name string, fn FrameFunc) FrameHandle {
	h := &countingHandle{name: name, fn: fn, active: true, leaky: d.leaky}
	d.handles = append(d.handles, h)
	return h
}

func (d *countingDriver) Step(dt float64) {
	for _, h := range d.handles {
		if h.active {
			d.calls++
			h.fn(dt)
		}
	}
}

func testSceneOptions() SceneOptions {
	opts := DefaultSceneOptions()
	opts.InitialPower = 1
	opts.PowerRampDuration = 0
	opts.EntranceDuration = 1
	opts.EntranceStagger = 0.5
	opts.Rand = particle.Deterministic(0.25, 0.5, 0.75)
	return opts
}

func newTestScene(t *testing.T, opts SceneOptions, callbacks Callbacks) (*Scene, *countingDriver) {
	t.Helper()
	utils.SetLogger(zaptest.NewLogger(t))
	s := NewScene(opts, callbacks)
	d := &countingDriver{}
	require.NoError(t, s.Mount(d))
	return s, d
}

func TestMountRegistersSteps(t *testing.T) {
	s, d := newTestScene(t, testSceneOptions(), Callbacks{})
	assert.True(t, s.Mounted())
	assert.Len(t, d.handles, 5)

	assert.ErrorIs(t, s.Mount(d), ErrAlreadyMounted)
}

func TestUnmountStopsAllCallbacks(t *testing.T) {
	s, d := newTestScene(t, testSceneOptions(), Callbacks{})
	s.SetContent([]scene.Object{testObject("a", 0, 0, 0, 1)})

	d.Step(0.1)
	require.Positive(t, d.calls)

	require.NoError(t, s.Unmount())
	before := d.calls
	for i := 0; i < 10; i++ {
		d.Step(0.1)
	}
	assert.Equal(t, before, d.calls)
	assert.False(t, s.Mounted())
	assert.Equal(t, PowerHalted, s.Power().State())

	assert.ErrorIs(t, s.Mount(d), ErrTornDown)
	assert.NoError(t, s.Unmount(), "second unmount is a no-op")
}

func TestUnmountReportsLeakedCallbacks(t *testing.T) {
	utils.SetLogger(zaptest.NewLogger(t))
	s := NewScene(testSceneOptions(), Callbacks{})
	require.NoError(t, s.Mount(&countingDriver{leaky: true}))

	err := s.Unmount()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCallbackLeak))
}

func TestUnmountWithFrameLoop(t *testing.T) {
	utils.SetLogger(zaptest.NewLogger(t))
	loop := NewFrameLoop()
	s := NewScene(testSceneOptions(), Callbacks{})
	require.NoError(t, s.Mount(loop))
	assert.Equal(t, 5, loop.Active())

	loop.Step(0.016)
	require.NoError(t, s.Unmount())
	loop.Step(0.016)
	assert.Equal(t, 0, loop.Active())
	assert.NoError(t, loop.Close())
}

func TestEntranceIsStaggered(t *testing.T) {
	var presented []string
	s, d := newTestScene(t, testSceneOptions(), Callbacks{
		OnContentUpdate: func(obj scene.Object) { presented = append(presented, obj.ID) },
	})
	errs := s.SetContent([]scene.Object{
		testObject("a", 0, 0, 0, 1),
		testObject("b", 10, 0, 0, 1),
	})
	require.Empty(t, errs)

	a, _ := s.Object("a")
	b, _ := s.Object("b")
	assert.Equal(t, 0.0, a.Delay)
	assert.Equal(t, 0.5, b.Delay)

	d.Step(0.5)
	a, _ = s.Object("a")
	b, _ = s.Object("b")
	assert.Equal(t, 0.5, a.Entrance)
	assert.Equal(t, 0.0, b.Entrance)

	d.Step(0.5)
	assert.Equal(t, []string{"a"}, presented)

	d.Step(0.5)
	assert.Equal(t, []string{"a", "b"}, presented)

	d.Step(0.5)
	assert.Equal(t, []string{"a", "b"}, presented, "entrance completes once")

	frame := s.Frame()
	require.Len(t, frame.Objects, 2)
	for _, of := range frame.Objects {
		assert.Equal(t, 1.0, of.Transform.Scale)
		assert.Equal(t, 1.0, of.Entrance)
	}
}

func TestSetContentDiffsByID(t *testing.T) {
	s, d := newTestScene(t, testSceneOptions(), Callbacks{})
	s.SetContent([]scene.Object{testObject("a", 0, 0, 0, 1), testObject("b", 0, 0, 0, 1)})
	for i := 0; i < 10; i++ {
		d.Step(0.5)
	}

	renamed := testObject("a", 0, 0, 0, 1)
	renamed.Title = "Renamed"
	s.SetContent([]scene.Object{renamed, testObject("c", 0, 0, 0, 1), testObject("e", 0, 0, 0, 1)})

	assert.Equal(t, 3, s.Len())
	_, ok := s.Object("b")
	assert.False(t, ok)

	a, ok := s.Object("a")
	require.True(t, ok)
	assert.Equal(t, 1.0, a.Entrance, "survivors keep their entrance")
	assert.Equal(t, "Renamed", a.Visual.Labels[0].Text)

	c, ok := s.Object("c")
	require.True(t, ok)
	assert.Equal(t, 0.0, c.Entrance)
	assert.Equal(t, 0.0, c.Delay, "survivors do not push back new objects")

	e, ok := s.Object("e")
	require.True(t, ok)
	assert.Equal(t, 0.5, e.Delay)
}

func TestMalformedObjectsAreSkipped(t *testing.T) {
	s, _ := newTestScene(t, testSceneOptions(), Callbacks{})

	noPosition := testObject("nopos", 0, 0, 0, 1)
	noPosition.Position = nil
	errs := s.SetContent([]scene.Object{
		testObject("a", 0, 0, 0, 1),
		{Type: scene.ContentText},
		testObject("a", 5, 5, 5, 1),
		noPosition,
	})

	require.Len(t, errs, 3)
	for _, err := range errs {
		assert.ErrorIs(t, err, ErrInvalidObject)
	}
	assert.Equal(t, 1, s.Len())
	assert.Len(t, s.Diagnostics(), 3)
	assert.Empty(t, s.Diagnostics())
}

func TestFrameDiagnosticsAreNotRepeated(t *testing.T) {
	s, d := newTestScene(t, testSceneOptions(), Callbacks{})

	noPosition := testObject("nopos", 0, 0, 0, 1)
	noPosition.Position = nil
	require.Len(t, s.SetContent([]scene.Object{testObject("a", 0, 0, 0, 1), noPosition}), 1)

	d.Step(0.1)
	require.Len(t, s.Frame().Diagnostics, 1)
	assert.Contains(t, s.Frame().Diagnostics[0], "nopos")

	for i := 0; i < 4; i++ {
		d.Step(0.1)
		assert.Empty(t, s.Frame().Diagnostics)
	}
	assert.Len(t, s.Diagnostics(), 1)
}

func TestNonFiniteRotationIsSkipped(t *testing.T) {
	s, d := newTestScene(t, testSceneOptions(), Callbacks{})

	spinning := testObject("spin", 0, 0, 0, 1)
	spinning.Rotation.Y = math.NaN()
	errs := s.SetContent([]scene.Object{testObject("a", 0, 0, 0, 1), spinning})
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrInvalidObject)

	d.Step(0.1)
	assert.Len(t, s.Frame().Objects, 1)
	_, err := json.Marshal(s.Frame())
	assert.NoError(t, err)
}

func TestUnknownTypeUsesFallbackVisual(t *testing.T) {
	s, _ := newTestScene(t, testSceneOptions(), Callbacks{})
	obj := testObject("w", 0, 0, 0, 1)
	obj.Type = "hyperwidget"

	assert.Empty(t, s.SetContent([]scene.Object{obj}))
	ro, ok := s.Object("w")
	require.True(t, ok)
	assert.True(t, ro.Visual.Fallback)
}

func TestFrameIsOrderedBackToFront(t *testing.T) {
	s, _ := newTestScene(t, testSceneOptions(), Callbacks{})
	s.SetContent([]scene.Object{
		testObject("near", 0, 0, 5, 1),
		testObject("far", 0, 0, -5, 1),
		testObject("mid1", 0, 0, 0, 1),
		testObject("mid2", 0, 0, 0, 1),
	})

	var ids []string
	for _, of := range s.Frame().Objects {
		ids = append(ids, of.Object.ID)
	}
	assert.Equal(t, []string{"far", "mid1", "mid2", "near"}, ids)
}

func TestEnvironmentObjectsComeFirst(t *testing.T) {
	s, _ := newTestScene(t, testSceneOptions(), Callbacks{})
	s.SetContent([]scene.Object{testObject("lesson", 0, 0, 0, 1)})
	s.SetEnvironment(scene.Environment{
		ID:             "env",
		Type:           scene.EnvSpace,
		ImmersionLevel: 0.7,
		Objects:        []scene.Object{testObject("planet", 0, 0, 0, 1)},
		Lighting:       scene.Lighting{AmbientColor: "0.2 0.4 1", Intensity: 0.9},
	})

	planet, _ := s.Object("planet")
	lesson, _ := s.Object("lesson")
	assert.Equal(t, 0, planet.Order)
	assert.Equal(t, 1, lesson.Order)

	frame := s.Frame()
	assert.Equal(t, scene.EnvSpace, frame.Environment)
	assert.Equal(t, 0.7, frame.Immersion)
	assert.Equal(t, scene.Vec3{X: 0.2, Y: 0.4, Z: 1}, frame.Ambient)
	assert.Len(t, frame.Particles, 50)
}

func TestEnvironmentSwapKeepsView(t *testing.T) {
	s, _ := newTestScene(t, testSceneOptions(), Callbacks{})
	s.SetEnvironment(scene.Environment{ID: "one", Type: scene.EnvOcean})

	require.True(t, s.DragStart())
	s.DragDelta(400, 0, 400, 300)
	s.DragEnd()
	require.Equal(t, 180.0, s.View().Yaw)

	s.SetEnvironment(scene.Environment{ID: "two", Type: scene.EnvForest})
	assert.Equal(t, 180.0, s.View().Yaw)

	env, ok := s.Environment()
	require.True(t, ok)
	assert.Equal(t, "two", env.ID)
}

func TestEnvironmentSwapCanResetView(t *testing.T) {
	opts := testSceneOptions()
	opts.ResetViewOnEnvironmentChange = true
	s, _ := newTestScene(t, opts, Callbacks{})

	s.DragStart()
	s.DragDelta(100, 100, 400, 300)
	s.SetEnvironment(scene.Environment{ID: "two", Type: scene.EnvForest})
	assert.Equal(t, ViewState{}, s.View())
}

func TestSelectFiresInteractOnlyForInteractive(t *testing.T) {
	var selected []string
	s, _ := newTestScene(t, testSceneOptions(), Callbacks{
		OnContentInteract: func(obj scene.Object) { selected = append(selected, obj.ID) },
	})
	passive := testObject("passive", 0, 0, 0, 1)
	passive.Interactive = false
	s.SetContent([]scene.Object{testObject("a", 0, 0, 0, 1), passive})

	assert.True(t, s.Select("a"))
	assert.False(t, s.Select("passive"))
	assert.False(t, s.Select("missing"))
	assert.Equal(t, []string{"a"}, selected)
}

func TestHitTestPicksFrontMost(t *testing.T) {
	s, d := newTestScene(t, testSceneOptions(), Callbacks{})
	s.SetContent([]scene.Object{
		testObject("back", 0, 0, -1, 1),
		testObject("front", 0, 0, 1, 1),
		testObject("side", 400, 0, 0, 1),
	})

	_, hit := s.HitTest(0, 0)
	assert.False(t, hit, "nothing is visible before the entrance")

	for i := 0; i < 10; i++ {
		d.Step(0.5)
	}

	obj, hit := s.HitTest(100, 60)
	require.True(t, hit)
	assert.Equal(t, "front", obj.ID)

	obj, hit = s.HitTest(400, 0)
	require.True(t, hit)
	assert.Equal(t, "side", obj.ID)

	_, hit = s.HitTest(200, 200)
	assert.False(t, hit)
}

func TestAmbientRotationFeedsTransforms(t *testing.T) {
	opts := testSceneOptions()
	opts.AmbientSpeed = 10
	s, d := newTestScene(t, opts, Callbacks{})
	s.SetContent([]scene.Object{testObject("a", 0, 0, 0, 1)})

	d.Step(1)
	require.Len(t, s.Frame().Objects, 1)
	assert.InDelta(t, 10, s.Frame().Objects[0].Transform.RotateY, 1e-9)
	assert.InDelta(t, 10, s.Frame().AmbientAngle, 1e-9)
}

func TestPowerScalesParticlesAndObjects(t *testing.T) {
	s, d := newTestScene(t, testSceneOptions(), Callbacks{})
	s.SetEnvironment(scene.Environment{ID: "env", Type: scene.EnvSpace})
	s.SetContent([]scene.Object{testObject("a", 0, 0, 0, 1)})
	for i := 0; i < 10; i++ {
		d.Step(0.5)
	}

	s.Power().SetAbsolute(0)
	d.Step(0.016)

	frame := s.Frame()
	assert.Equal(t, 0.0, frame.Power)
	for _, p := range frame.Particles {
		assert.Equal(t, 0.0, p.Opacity)
	}
	assert.Equal(t, 0.0, frame.Objects[0].Transform.Opacity)
}
