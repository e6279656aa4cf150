package content

import (
	"holoscene/internal/scene"
)

// RenderFunc produces the visual spec for one object. It must depend only on
// its arguments.
type RenderFunc func(obj *scene.Object, pal Palette) VisualSpec

// Renderer dispatches objects to the strategy registered for their type.
type Renderer struct {
	Theme      Theme
	palette    Palette
	strategies map[scene.ContentType]RenderFunc
}

// NewRenderer creates a renderer with every built-in content type
// registered.
func NewRenderer(theme Theme) *Renderer {
	r := &Renderer{
		Theme:      theme,
		palette:    PaletteFor(theme),
		strategies: make(map[scene.ContentType]RenderFunc),
	}
	for contentType, fn := range builtins {
		r.Register(contentType, fn)
	}
	return r
}

func (r *Renderer) Register(contentType scene.ContentType, fn RenderFunc) {
	if fn == nil {
		delete(r.strategies, contentType)
		return
	}
	r.strategies[contentType] = fn
}

func (r *Renderer) Registered(contentType scene.ContentType) bool {
	_, ok := r.strategies[contentType]
	return ok
}

func (r *Renderer) Palette() Palette {
	return r.palette
}

// Render resolves the visual spec for obj. Unregistered types, and
// strategies that panic on malformed payloads, resolve to the default
// icon-and-title spec.
func (r *Renderer) Render(obj scene.Object) (spec VisualSpec) {
	fn, ok := r.strategies[obj.Type]
	if !ok {
		return defaultSpec(&obj, r.palette)
	}

	defer func() {
		if recover() != nil {
			spec = defaultSpec(&obj, r.palette)
		}
	}()
	spec = fn(&obj, r.palette)
	spec.Type = obj.Type
	return spec
}

func defaultSpec(obj *scene.Object, pal Palette) VisualSpec {
	spec := baseSpec(obj.Type, 96, 96, pal)
	spec.Fallback = true
	spec.add(Primitive{Kind: PrimRect, Role: "frame", W: 96, H: 96, Color: pal.Background, Filled: true})
	spec.add(Primitive{Kind: PrimIcon, Role: "icon", W: 48, H: 48, Y: 10, Icon: "help-circle", Color: pal.Primary})
	spec.label(Label{Text: titleOf(obj), Role: "title", Y: -34, Size: 14, Color: pal.Text})
	return spec
}
