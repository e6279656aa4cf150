package draw

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"holoscene/internal/engine2D"
	"holoscene/internal/engine2D/content"
)

const hologramFragment = `
#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
uniform sampler2D texture0;
uniform float g_Time;
uniform float g_Power;
uniform float g_Scanlines;
uniform float g_Immersion;
uniform vec2 g_Resolution;
out vec4 finalColor;

void main() {
    vec2 uv = fragTexCoord;
    float wave = sin(uv.y * 40.0 + g_Time * 2.0) * 0.0015 * (1.0 - g_Power);
    vec4 c = texture(texture0, vec2(uv.x + wave, uv.y));

    float lines = 1.0 - g_Scanlines * 0.18 * step(0.5, fract(uv.y * g_Resolution.y / 3.0));
    float flicker = 0.96 + 0.04 * sin(g_Time * 23.0);
    vec2 d = uv - 0.5;
    float vignette = 1.0 - g_Immersion * 0.6 * dot(d, d) * 2.0;

    finalColor = vec4(c.rgb * lines * flicker * vignette, c.a) * fragColor;
}
`

// hologramParams caches uniform locations; -1 means the shader lacks it.
type hologramParams struct {
	Time       int32
	Power      int32
	Scanlines  int32
	Immersion  int32
	Resolution int32
}

// HologramPass renders a frame off-screen and presents it through a
// scanline and flicker shader.
type HologramPass struct {
	shader rl.Shader
	params hologramParams
	target rl.RenderTexture2D
	ready  bool
}

func NewHologramPass() *HologramPass {
	shader := rl.LoadShaderFromMemory("", hologramFragment)
	return &HologramPass{
		shader: shader,
		params: hologramParams{
			Time:       rl.GetShaderLocation(shader, "g_Time"),
			Power:      rl.GetShaderLocation(shader, "g_Power"),
			Scanlines:  rl.GetShaderLocation(shader, "g_Scanlines"),
			Immersion:  rl.GetShaderLocation(shader, "g_Immersion"),
			Resolution: rl.GetShaderLocation(shader, "g_Resolution"),
		},
	}
}

func (h *HologramPass) ensureTarget(w, hgt int32) {
	if h.ready && h.target.Texture.Width == w && h.target.Texture.Height == hgt {
		return
	}
	if h.ready {
		rl.UnloadRenderTexture(h.target)
	}
	h.target = rl.LoadRenderTexture(w, hgt)
	h.ready = true
}

func setFloat(shader rl.Shader, loc int32, v ...float32) {
	if loc == -1 {
		return
	}
	kind := rl.ShaderUniformFloat
	if len(v) == 2 {
		kind = rl.ShaderUniformVec2
	}
	rl.SetShaderValue(shader, loc, v, kind)
}

// Present draws frame with p into an off-screen target and blits it to the
// screen through the hologram shader. Call between BeginDrawing and
// EndDrawing.
func (h *HologramPass) Present(p *Painter, frame engine2D.Frame, time float64) {
	w, hgt := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if h.shader.ID == 0 || w <= 0 || hgt <= 0 {
		p.Frame(frame)
		return
	}
	h.ensureTarget(w, hgt)

	rl.BeginTextureMode(h.target)
	p.Frame(frame)
	rl.EndTextureMode()

	scanlines := float32(0)
	if content.PaletteFor(frame.Theme).Scanlines {
		scanlines = 1
	}
	rl.BeginShaderMode(h.shader)
	setFloat(h.shader, h.params.Time, float32(time))
	setFloat(h.shader, h.params.Power, float32(frame.Power))
	setFloat(h.shader, h.params.Scanlines, scanlines)
	setFloat(h.shader, h.params.Immersion, float32(frame.Immersion))
	setFloat(h.shader, h.params.Resolution, float32(w), float32(hgt))

	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(w), -float32(hgt))
	dst := rl.NewRectangle(0, 0, float32(w), float32(hgt))
	rl.DrawTexturePro(h.target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	rl.EndShaderMode()
}

func (h *HologramPass) Unload() {
	if h.ready {
		rl.UnloadRenderTexture(h.target)
		h.ready = false
	}
	if h.shader.ID != 0 {
		rl.UnloadShader(h.shader)
	}
}
