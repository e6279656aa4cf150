package engine2D

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"holoscene/internal/engine2D/content"
	"holoscene/internal/engine2D/effect"
	"holoscene/internal/engine2D/particle"
	"holoscene/internal/scene"
	"holoscene/internal/utils"
)

const maxDiagnostics = 64

type SceneOptions struct {
	AutoRotate         bool
	EnableGestures     bool
	Theme              content.Theme
	InitialPower       float64
	GestureSensitivity float64
	AmbientSpeed       float64
	ParallaxFactor     float64
	EntranceDuration   float64
	EntranceStagger    float64
	PowerRampDuration  float64
	// ResetViewOnEnvironmentChange centres the view when the environment is
	// swapped. By default the view carries over.
	ResetViewOnEnvironmentChange bool
	ParticleBounds               particle.Bounds
	Rand                         particle.RandSource
}

// DefaultSceneOptions mirrors config.Default.
func DefaultSceneOptions() SceneOptions {
	return SceneOptions{
		AutoRotate:         true,
		EnableGestures:     true,
		Theme:              content.ThemeNeon,
		InitialPower:       0.8,
		GestureSensitivity: 0.5,
		AmbientSpeed:       12,
		ParallaxFactor:     DefaultParallaxFactor,
		EntranceDuration:   0.8,
		EntranceStagger:    0.08,
		PowerRampDuration:  1.5,
		ParticleBounds:     effect.DefaultBounds,
	}
}

// Callbacks are the outbound events of a Scene. Either may be nil.
type Callbacks struct {
	// OnContentInteract fires when an interactive object is selected.
	OnContentInteract func(obj scene.Object)
	// OnContentUpdate fires once per object when its entrance completes.
	OnContentUpdate func(obj scene.Object)
}

// Scene composes content objects, ambient particles and the view into
// frames. It is single-threaded: all methods, gesture input included, must
// be called from the loop that drives it.
type Scene struct {
	ID string

	opts       SceneOptions
	callbacks  Callbacks
	compositor *Compositor
	gestures   *GestureInterpreter
	power      *PowerController
	renderer   *content.Renderer
	effects    *effect.Generator
	particles  *particle.ParticleSystem
	ambient    AmbientRotation

	environment *scene.Environment
	content     []scene.Object
	arena       map[string]*RenderObject
	order       []string

	handles  []FrameHandle
	mounted  bool
	tornDown bool

	frame       Frame
	frames      uint64
	diagnostics []error
	// pending holds diagnostics not yet carried by a stepped frame.
	pending     []string
	warnedTypes map[scene.ContentType]bool
	log         *zap.Logger
}

func NewScene(opts SceneOptions, callbacks Callbacks) *Scene {
	id := uuid.NewString()
	s := &Scene{
		ID:          id,
		opts:        opts,
		callbacks:   callbacks,
		compositor:  NewCompositor(opts.AutoRotate, opts.ParallaxFactor),
		gestures:    NewGestureInterpreter(opts.EnableGestures),
		power:       NewPowerController(opts.InitialPower, opts.PowerRampDuration),
		renderer:    content.NewRenderer(opts.Theme),
		effects:     effect.NewGenerator(opts.ParticleBounds),
		ambient:     AmbientRotation{Speed: opts.AmbientSpeed},
		arena:       make(map[string]*RenderObject),
		warnedTypes: make(map[scene.ContentType]bool),
		log:         utils.L().With(zap.String("scene", id)),
	}
	s.frame = s.compose()
	return s
}

// Renderer exposes the content renderer so callers can register new types.
func (s *Scene) Renderer() *content.Renderer {
	return s.renderer
}

// Effects exposes the environment preset table.
func (s *Scene) Effects() *effect.Generator {
	return s.effects
}

// Mount registers the scene's per-frame steps with driver.
func (s *Scene) Mount(driver FrameDriver) error {
	if s.tornDown {
		return ErrTornDown
	}
	if s.mounted {
		return ErrAlreadyMounted
	}
	s.mounted = true
	s.handles = []FrameHandle{
		driver.Register("power", s.stepPower),
		driver.Register("ambient", s.stepAmbient),
		driver.Register("particles", s.stepParticles),
		driver.Register("entrance", s.stepEntrance),
		driver.Register("compose", s.stepCompose),
	}
	s.log.Debug("scene mounted", zap.Int("callbacks", len(s.handles)))
	return nil
}

func (s *Scene) Mounted() bool {
	return s.mounted
}

// Unmount stops every per-frame step and halts the power ramp. It returns
// ErrCallbackLeak if the driver reports any step still active.
func (s *Scene) Unmount() error {
	if !s.mounted {
		return nil
	}
	s.mounted = false
	s.tornDown = true
	s.power.Halt()

	var leaked []string
	for _, h := range s.handles {
		h.Stop()
		if h.Active() {
			leaked = append(leaked, h.Name())
		}
	}
	s.handles = nil

	if len(leaked) > 0 {
		s.log.Error("per-frame callbacks survived teardown", zap.Strings("callbacks", leaked))
		return fmt.Errorf("%w: %v", ErrCallbackLeak, leaked)
	}
	s.log.Debug("scene unmounted")
	return nil
}

func (s *Scene) stepPower(dt float64) {
	if !s.mounted {
		return
	}
	s.power.Tick(dt)
}

func (s *Scene) stepAmbient(dt float64) {
	if !s.mounted || !s.opts.AutoRotate {
		return
	}
	s.ambient.Advance(dt)
}

func (s *Scene) stepParticles(dt float64) {
	if !s.mounted || s.particles == nil {
		return
	}
	s.particles.Tick(dt)
}

func (s *Scene) stepEntrance(dt float64) {
	if !s.mounted || !(dt > 0) || !finite(dt) {
		return
	}
	for _, id := range s.order {
		ro := s.arena[id]
		step := dt
		if ro.Delay > 0 {
			ro.Delay -= step
			if ro.Delay > 0 {
				continue
			}
			step = -ro.Delay
			ro.Delay = 0
		}
		if ro.Entrance < 1 {
			if s.opts.EntranceDuration > 0 {
				ro.Entrance = scene.Clamp01(ro.Entrance + step/s.opts.EntranceDuration)
			} else {
				ro.Entrance = 1
			}
		}
		if ro.Entrance >= 1 && !ro.Presented {
			ro.Presented = true
			if s.callbacks.OnContentUpdate != nil {
				s.callbacks.OnContentUpdate(ro.Object)
			}
		}
	}
}

func (s *Scene) stepCompose(float64) {
	if !s.mounted {
		return
	}
	s.frames++
	s.frame = s.compose()
	s.pending = nil
}

// SetContent replaces the caller-supplied content list. Objects are diffed
// by id: survivors keep their entrance progress, new objects start a
// staggered entrance and missing ones are dropped. Malformed objects are
// skipped and returned as *ValidationError values.
func (s *Scene) SetContent(objects []scene.Object) []error {
	s.content = append([]scene.Object(nil), objects...)
	return s.rebuild()
}

// SetEnvironment swaps the environment wholesale and rebuilds the ambient
// particle pool for its type.
func (s *Scene) SetEnvironment(env scene.Environment) []error {
	env.Objects = append([]scene.Object(nil), env.Objects...)
	s.environment = &env

	cfg := s.effects.ConfigFor(env.Type)
	s.particles = particle.NewParticleSystem(particle.ParticleSystemOptions{
		Name:   string(env.Type),
		Config: cfg,
		Rand:   s.opts.Rand,
	})
	if s.opts.ResetViewOnEnvironmentChange {
		s.gestures.Reset()
	}
	s.log.Info("environment loaded",
		zap.String("environment", env.ID),
		zap.String("type", string(env.Type)),
		zap.Int("particles", cfg.Count))
	return s.rebuild()
}

func (s *Scene) Environment() (scene.Environment, bool) {
	if s.environment == nil {
		return scene.Environment{}, false
	}
	return *s.environment, true
}

func (s *Scene) rebuild() []error {
	var incoming []scene.Object
	if s.environment != nil {
		incoming = append(incoming, s.environment.Objects...)
	}
	incoming = append(incoming, s.content...)

	var errs []error
	next := make(map[string]*RenderObject, len(incoming))
	order := make([]string, 0, len(incoming))
	added := 0

	for _, obj := range incoming {
		var err error
		switch {
		case obj.ID == "":
			err = &ValidationError{Reason: "missing id"}
		case next[obj.ID] != nil:
			err = &ValidationError{ObjectID: obj.ID, Reason: "duplicate id"}
		default:
			err = ValidateObject(&obj)
		}
		if err != nil {
			s.report(err)
			errs = append(errs, err)
			continue
		}

		fp := fingerprint(&obj)
		ro, ok := s.arena[obj.ID]
		if !ok {
			ro = &RenderObject{Delay: float64(added) * s.opts.EntranceStagger}
			added++
		}
		if !ok || ro.Fingerprint != fp {
			ro.Object = obj
			ro.Fingerprint = fp
			ro.Visual = s.render(obj)
		}
		ro.Order = len(order)
		next[obj.ID] = ro
		order = append(order, obj.ID)
	}

	s.arena = next
	s.order = order
	s.frame = s.compose()
	return errs
}

func (s *Scene) render(obj scene.Object) content.VisualSpec {
	if !s.renderer.Registered(obj.Type) && !s.warnedTypes[obj.Type] {
		s.warnedTypes[obj.Type] = true
		s.log.Debug("unknown content type, using default visual",
			zap.String("object", obj.ID),
			zap.String("type", string(obj.Type)))
	}
	return s.renderer.Render(obj)
}

func (s *Scene) report(err error) {
	if len(s.diagnostics) >= maxDiagnostics {
		s.diagnostics = s.diagnostics[1:]
	}
	s.diagnostics = append(s.diagnostics, err)
	if len(s.pending) >= maxDiagnostics {
		s.pending = s.pending[1:]
	}
	s.pending = append(s.pending, err.Error())

	if ve, ok := err.(*ValidationError); ok {
		s.log.Warn("skipping scene object",
			zap.String("object", ve.ObjectID),
			zap.String("reason", ve.Reason))
		return
	}
	s.log.Warn("scene diagnostic", zap.Error(err))
}

// Diagnostics returns and clears the accumulated diagnostics.
func (s *Scene) Diagnostics() []error {
	d := s.diagnostics
	s.diagnostics = nil
	return d
}

func (s *Scene) compose() Frame {
	view := s.gestures.View()
	power := s.power.Level()

	frame := Frame{
		Number:       s.frames,
		View:         view,
		Power:        power,
		PowerState:   s.power.State(),
		AmbientAngle: s.ambient.Angle,
		Theme:        s.renderer.Theme,
		Objects:      make([]ObjectFrame, 0, len(s.order)),
	}

	if s.environment != nil {
		frame.Environment = s.environment.Type
		frame.Immersion = s.environment.ImmersionLevel
		frame.Ambient = s.environment.Lighting.Ambient()
		frame.LightIntensity = s.environment.Lighting.Intensity
	}
	if s.particles != nil {
		frame.Particles = s.particles.Sprites(power)
		frame.ParticleVisual = s.particles.Config.Visual
	}

	for _, id := range s.order {
		ro := s.arena[id]
		t, err := s.compositor.ComputeTransform(&ro.Object, ro.Entrance, s.ambient.Angle, view.Yaw, view.Pitch, power)
		if err != nil {
			s.report(err)
			continue
		}
		ro.Transform = t
		frame.Objects = append(frame.Objects, ObjectFrame{
			Object:    ro.Object,
			Entrance:  ro.Entrance,
			Transform: t,
			Visual:    ro.Visual,
		})
	}

	frame.Diagnostics = append([]string(nil), s.pending...)

	// Back to front: lower Z is farther away.
	sort.SliceStable(frame.Objects, func(i, j int) bool {
		return frame.Objects[i].Object.GetPosition().Z < frame.Objects[j].Object.GetPosition().Z
	})
	return frame
}

// Frame returns the most recently composed frame.
func (s *Scene) Frame() Frame {
	return s.frame
}

func (s *Scene) Len() int {
	return len(s.order)
}

// Object returns the arena entry for id.
func (s *Scene) Object(id string) (RenderObject, bool) {
	ro, ok := s.arena[id]
	if !ok {
		return RenderObject{}, false
	}
	return *ro, true
}

func (s *Scene) DragStart() bool {
	return s.gestures.DragStart()
}

// DragDelta feeds a pointer movement to the gesture interpreter. The new
// view is picked up by the next composed frame.
func (s *Scene) DragDelta(dx, dy, viewportWidth, viewportHeight float64) bool {
	return s.gestures.DragDelta(dx, dy, viewportWidth, viewportHeight, s.opts.GestureSensitivity)
}

func (s *Scene) DragEnd() {
	s.gestures.DragEnd()
}

func (s *Scene) View() ViewState {
	return s.gestures.View()
}

func (s *Scene) Power() *PowerController {
	return s.power
}

// Select fires OnContentInteract for an interactive object.
func (s *Scene) Select(id string) bool {
	ro, ok := s.arena[id]
	if !ok || !ro.Object.Interactive {
		return false
	}
	if s.callbacks.OnContentInteract != nil {
		s.callbacks.OnContentInteract(ro.Object)
	}
	return true
}

// HitTest returns the front-most visible interactive object whose
// transformed bounds contain (x, y), in scene coordinates.
func (s *Scene) HitTest(x, y float64) (scene.Object, bool) {
	objects := s.frame.Objects
	for i := len(objects) - 1; i >= 0; i-- {
		of := objects[i]
		if !of.Object.Interactive || of.Transform.Opacity <= 0 {
			continue
		}
		halfW := of.Visual.Width * of.Transform.Scale / 2
		halfH := of.Visual.Height * of.Transform.Scale / 2
		if abs(x-of.Transform.TranslateX) <= halfW && abs(y-of.Transform.TranslateY) <= halfH {
			return of.Object, true
		}
	}
	return scene.Object{}, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// fingerprint hashes every field that affects how an object is drawn.
func fingerprint(obj *scene.Object) uint64 {
	d := xxhash.New()
	fmt.Fprintf(d, "%s\x00%s\x00%s\x00", obj.ID, obj.Type, obj.Title)
	fmt.Fprintf(d, "%v\x00%v\x00%v\x00", obj.GetPosition(), obj.GetScale(), obj.Rotation)
	fmt.Fprintf(d, "%v\x00%v\x00", obj.GetOpacity(), obj.Interactive)
	for _, k := range obj.PayloadKeys() {
		fmt.Fprintf(d, "%s=%v\x00", k, obj.Payload[k])
	}
	metaKeys := make([]string, 0, len(obj.Metadata))
	for k := range obj.Metadata {
		metaKeys = append(metaKeys, k)
	}
	sort.Strings(metaKeys)
	for _, k := range metaKeys {
		fmt.Fprintf(d, "%s=%s\x00", k, obj.Metadata[k])
	}
	return d.Sum64()
}
