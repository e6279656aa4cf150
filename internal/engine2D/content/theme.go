package content

import (
	"fmt"
	"image/color"
	"strings"
)

type Theme string

const (
	ThemeMatrix      Theme = "matrix"
	ThemeNeon        Theme = "neon"
	ThemePlasma      Theme = "plasma"
	ThemeCrystalline Theme = "crystalline"
)

// Palette holds the colour and glow parameters a theme selects. Themes never
// change behaviour, only these values.
type Palette struct {
	Primary    color.RGBA
	Secondary  color.RGBA
	Accent     color.RGBA
	Background color.RGBA
	Text       color.RGBA
	Glow       float64
	Scanlines  bool
}

var palettes = map[Theme]Palette{
	ThemeMatrix: {
		Primary:    color.RGBA{0, 255, 65, 255},
		Secondary:  color.RGBA{0, 143, 17, 255},
		Accent:     color.RGBA{173, 255, 47, 255},
		Background: color.RGBA{0, 20, 0, 200},
		Text:       color.RGBA{200, 255, 200, 255},
		Glow:       0.6,
		Scanlines:  true,
	},
	ThemeNeon: {
		Primary:    color.RGBA{0, 255, 255, 255},
		Secondary:  color.RGBA{255, 0, 255, 255},
		Accent:     color.RGBA{255, 255, 0, 255},
		Background: color.RGBA{10, 0, 30, 200},
		Text:       color.RGBA{255, 255, 255, 255},
		Glow:       0.8,
	},
	ThemePlasma: {
		Primary:    color.RGBA{255, 94, 58, 255},
		Secondary:  color.RGBA{148, 0, 211, 255},
		Accent:     color.RGBA{255, 215, 0, 255},
		Background: color.RGBA{30, 0, 20, 200},
		Text:       color.RGBA{255, 235, 220, 255},
		Glow:       1,
	},
	ThemeCrystalline: {
		Primary:    color.RGBA{173, 216, 230, 255},
		Secondary:  color.RGBA{224, 255, 255, 255},
		Accent:     color.RGBA{135, 206, 250, 255},
		Background: color.RGBA{240, 248, 255, 120},
		Text:       color.RGBA{25, 25, 60, 255},
		Glow:       0.3,
	},
}

// Themes lists the supported themes in a stable order.
var Themes = []Theme{ThemeMatrix, ThemeNeon, ThemePlasma, ThemeCrystalline}

func ParseTheme(name string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := palettes[t]; !ok {
		return "", fmt.Errorf("unknown theme %q", name)
	}
	return t, nil
}

// PaletteFor returns the palette of a theme; unknown themes get neon.
func PaletteFor(t Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[ThemeNeon]
}
