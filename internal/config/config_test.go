package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holoscene/internal/engine2D"
	"holoscene/internal/engine2D/content"
)

func TestDefaultsMatchSceneDefaults(t *testing.T) {
	opts := Default()
	require.NoError(t, opts.Validate())

	got := opts.Scene()
	want := engine2D.DefaultSceneOptions()
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(engine2D.SceneOptions{}, "Rand")); diff != "" {
		t.Errorf("scene options mismatch (-want +got):\n%s", diff)
	}
	assert.NotNil(t, got.Rand)
}

func TestParseKeepsDefaultsForMissingFields(t *testing.T) {
	opts, err := Parse([]byte(`
theme: matrix
initialPower: 0.4
autoRotate: false
window:
  width: 800
`))
	require.NoError(t, err)

	want := Default()
	want.Theme = "matrix"
	want.InitialPower = 0.4
	want.AutoRotate = false
	want.Window.Width = 800
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, content.ThemeMatrix, opts.Scene().Theme)
}

func TestParseEmptyDocument(t *testing.T) {
	opts, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), opts)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("autoRotat: true\n"))
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	opts := Default()
	opts.Theme = "sepia"
	opts.InitialPower = 1.5
	opts.EntranceDuration = -1
	opts.LogLevel = "loud"

	err := opts.Validate()
	require.Error(t, err)
	for _, fragment := range []string{"sepia", "initialPower", "entranceDuration", "loud"} {
		assert.Contains(t, err.Error(), fragment)
	}
}

func TestSeedMakesSceneRandomnessRepeatable(t *testing.T) {
	opts := Default()
	opts.Seed = 42

	a := opts.Scene().Rand
	b := opts.Scene().Rand
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestLoadWrapsPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "holoscene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("initialPower: 0.25\n"), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, opts.InitialPower)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}
