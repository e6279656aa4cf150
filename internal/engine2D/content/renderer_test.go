package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holoscene/internal/scene"
)

func floatPtr(v float64) *float64 { return &v }

func sampleObject(contentType scene.ContentType) scene.Object {
	return scene.Object{
		ID:       "obj-1",
		Type:     contentType,
		Title:    "Photosynthesis",
		Position: &scene.Vec3{},
		Scale:    floatPtr(1),
		Payload: map[string]interface{}{
			"text":        "Plants convert light energy into chemical energy stored in glucose.",
			"values":      []interface{}{3.0, 7, 1.5, 0},
			"labels":      []interface{}{"a", "b", "c", "d"},
			"expression":  "6CO2 + 6H2O → C6H12O6 + 6O2",
			"frames":      8,
			"destination": "ocean",
			"pages":       3,
		},
	}
}

func TestBuiltinTypesAreRegistered(t *testing.T) {
	r := NewRenderer(ThemeNeon)
	for _, contentType := range scene.ContentTypes {
		require.True(t, r.Registered(contentType), contentType)

		spec := r.Render(sampleObject(contentType))
		assert.False(t, spec.Fallback, contentType)
		assert.Equal(t, contentType, spec.Type)
		assert.NotEmpty(t, spec.Primitives, contentType)
		assert.NotEmpty(t, spec.Labels, contentType)
		assert.Positive(t, spec.Width, contentType)
		assert.Positive(t, spec.Height, contentType)
	}
}

func TestUnknownTypeFallsBack(t *testing.T) {
	r := NewRenderer(ThemeNeon)
	obj := sampleObject("hyperwidget")

	var spec VisualSpec
	assert.NotPanics(t, func() { spec = r.Render(obj) })

	assert.True(t, spec.Fallback)
	require.Len(t, spec.Labels, 1)
	assert.Equal(t, "Photosynthesis", spec.Labels[0].Text)

	var icons int
	for _, p := range spec.Primitives {
		if p.Kind == PrimIcon {
			icons++
		}
	}
	assert.Equal(t, 1, icons)
}

func TestRenderIsPure(t *testing.T) {
	r := NewRenderer(ThemePlasma)
	for _, contentType := range append(scene.ContentTypes, "unknown") {
		obj := sampleObject(contentType)
		first := r.Render(obj)
		second := r.Render(obj)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Render(%q) differs between calls (-first +second):\n%s", contentType, diff)
		}
	}
}

func TestRegisterAddsNewType(t *testing.T) {
	r := NewRenderer(ThemeNeon)
	r.Register("quiz", func(obj *scene.Object, pal Palette) VisualSpec {
		return VisualSpec{Width: 10, Height: 10, Labels: []Label{{Text: obj.Title}}}
	})

	spec := r.Render(scene.Object{Type: "quiz", Title: "Q1"})
	assert.False(t, spec.Fallback)
	assert.Equal(t, scene.ContentType("quiz"), spec.Type)
	assert.Equal(t, "Q1", spec.Labels[0].Text)

	r.Register("quiz", nil)
	assert.True(t, r.Render(scene.Object{Type: "quiz"}).Fallback)
}

func TestPanickingStrategyFallsBack(t *testing.T) {
	r := NewRenderer(ThemeNeon)
	r.Register(scene.ContentText, func(*scene.Object, Palette) VisualSpec {
		panic("bad payload")
	})

	spec := r.Render(sampleObject(scene.ContentText))
	assert.True(t, spec.Fallback)
}

func TestChartBarsFollowValues(t *testing.T) {
	r := NewRenderer(ThemeNeon)
	spec := r.Render(sampleObject(scene.ContentChart))

	var bars []Primitive
	for _, p := range spec.Primitives {
		if p.Role == "bar" {
			bars = append(bars, p)
		}
	}
	require.Len(t, bars, 4)
	assert.Greater(t, bars[1].H, bars[0].H)
	assert.Zero(t, bars[3].H)
}

func TestChartWithoutValues(t *testing.T) {
	r := NewRenderer(ThemeNeon)
	spec := r.Render(scene.Object{Type: scene.ContentChart, Title: "empty"})
	assert.False(t, spec.Fallback)
	for _, p := range spec.Primitives {
		assert.NotEqual(t, "bar", p.Role)
	}
}

func TestThemeChangesColoursOnly(t *testing.T) {
	obj := sampleObject(scene.ContentHologram)
	matrix := NewRenderer(ThemeMatrix).Render(obj)
	crystal := NewRenderer(ThemeCrystalline).Render(obj)

	require.Equal(t, len(matrix.Primitives), len(crystal.Primitives))
	for i := range matrix.Primitives {
		assert.Equal(t, matrix.Primitives[i].Kind, crystal.Primitives[i].Kind)
		assert.Equal(t, matrix.Primitives[i].Radius, crystal.Primitives[i].Radius)
	}
	assert.NotEqual(t, matrix.Style.Accent, crystal.Style.Accent)
}

func TestParseTheme(t *testing.T) {
	for _, theme := range Themes {
		got, err := ParseTheme(" " + string(theme) + " ")
		require.NoError(t, err)
		assert.Equal(t, theme, got)
	}
	_, err := ParseTheme("sepia")
	assert.Error(t, err)
	assert.Equal(t, PaletteFor(ThemeNeon), PaletteFor("sepia"))
}

func TestWrapText(t *testing.T) {
	lines := wrapText("the quick brown fox jumps over the lazy dog", 10, 8)
	assert.Equal(t, []string{"the quick", "brown fox", "jumps over", "the lazy", "dog"}, lines)

	lines = wrapText("abcdefghijklmnop", 5, 2)
	assert.Equal(t, []string{"abcde", "fghij…"}, lines)
	assert.Empty(t, wrapText("", 5, 2))
}
