package convert

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"holoscene/internal/engine2D"
	"holoscene/internal/engine2D/particle"
	"holoscene/internal/scene"
	"holoscene/internal/utils"
)

func recordedFrames(t *testing.T, n int) []engine2D.Frame {
	t.Helper()
	utils.SetLogger(zaptest.NewLogger(t))

	opts := engine2D.DefaultSceneOptions()
	opts.Rand = particle.Deterministic(0.1, 0.6, 0.3, 0.9)
	s := engine2D.NewScene(opts, engine2D.Callbacks{})
	scale := 1.0
	s.SetEnvironment(scene.Environment{ID: "orbit", Type: scene.EnvSpace, Lighting: scene.Lighting{AmbientColor: "0.1 0.1 0.3", Intensity: 1}})
	s.SetContent([]scene.Object{{
		ID:          "note",
		Type:        scene.ContentText,
		Title:       "Kepler's laws",
		Position:    &scene.Vec3{X: 10, Y: 20, Z: 1},
		Scale:       &scale,
		Interactive: true,
	}})

	loop := engine2D.NewFrameLoop()
	require.NoError(t, s.Mount(loop))
	var frames []engine2D.Frame
	for i := 0; i < n; i++ {
		loop.Step(1.0 / 30)
		frames = append(frames, s.Frame())
	}
	require.NoError(t, s.Unmount())
	return frames
}

func TestSnapshotRoundTrip(t *testing.T) {
	frames := recordedFrames(t, 5)

	var buf bytes.Buffer
	w := NewSnapshotWriter(&buf)
	for _, f := range frames {
		require.NoError(t, w.Write(f))
	}
	assert.Equal(t, 5, w.Frames())

	got, err := ReadSnapshots(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(frames, got); diff != "" {
		t.Errorf("frames changed through snapshot (-want +got):\n%s", diff)
	}
}

func TestSnapshotIsCompressed(t *testing.T) {
	frames := recordedFrames(t, 20)

	var buf bytes.Buffer
	w := NewSnapshotWriter(&buf)
	raw := 0
	for _, f := range frames {
		require.NoError(t, w.Write(f))
		raw += len(mustJSON(t, f))
	}
	assert.Less(t, buf.Len(), raw)
}

func TestSnapshotReaderErrors(t *testing.T) {
	_, err := NewSnapshotReader(strings.NewReader("NOPE")).Next()
	assert.ErrorContains(t, err, "not a frame snapshot")

	_, err = NewSnapshotReader(strings.NewReader("")).Next()
	assert.ErrorIs(t, err, io.EOF)

	var buf bytes.Buffer
	require.NoError(t, NewSnapshotWriter(&buf).Write(engine2D.Frame{Number: 1}))
	truncated := buf.Bytes()[:buf.Len()-2]
	_, err = ReadSnapshots(bytes.NewReader(truncated))
	assert.Error(t, err)
}

func mustJSON(t *testing.T, f engine2D.Frame) []byte {
	t.Helper()
	data, err := json.Marshal(f)
	require.NoError(t, err)
	return data
}
