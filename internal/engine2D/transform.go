package engine2D

import (
	"math"

	"holoscene/internal/scene"
)

const DefaultParallaxFactor = 20.0

// Transform is the final 2D-projected placement of one object.
type Transform struct {
	Scale      float64
	RotateX    float64
	RotateY    float64
	RotateZ    float64
	TranslateX float64
	TranslateY float64
	Opacity    float64
}

// Compositor combines entrance progress, intrinsic and ambient rotation,
// view orientation and power into a per-object Transform.
type Compositor struct {
	AutoRotate     bool
	ParallaxFactor float64
}

func NewCompositor(autoRotate bool, parallaxFactor float64) *Compositor {
	return &Compositor{AutoRotate: autoRotate, ParallaxFactor: parallaxFactor}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateObject reports whether obj carries the fields the compositor needs.
func ValidateObject(obj *scene.Object) error {
	switch {
	case obj.Position == nil:
		return &ValidationError{ObjectID: obj.ID, Reason: "missing position"}
	case obj.Scale == nil:
		return &ValidationError{ObjectID: obj.ID, Reason: "missing scale"}
	case !finite(*obj.Scale):
		return &ValidationError{ObjectID: obj.ID, Reason: "scale is not a finite number"}
	case *obj.Scale < 0:
		return &ValidationError{ObjectID: obj.ID, Reason: "negative scale"}
	case !finite(obj.Position.X) || !finite(obj.Position.Y) || !finite(obj.Position.Z):
		return &ValidationError{ObjectID: obj.ID, Reason: "position is not finite"}
	case !finite(obj.Rotation.X) || !finite(obj.Rotation.Y) || !finite(obj.Rotation.Z):
		return &ValidationError{ObjectID: obj.ID, Reason: "rotation is not finite"}
	}
	return nil
}

// ComputeTransform places obj for the current frame. Angles are in degrees.
func (c *Compositor) ComputeTransform(obj *scene.Object, entranceProgress, ambientAngle, viewYaw, viewPitch, powerLevel float64) (Transform, error) {
	if err := ValidateObject(obj); err != nil {
		return Transform{}, err
	}

	progress := scene.Clamp01(entranceProgress)
	pos := *obj.Position

	rotateY := obj.Rotation.Y
	if c.AutoRotate && finite(ambientAngle) {
		rotateY += ambientAngle
	}

	parallax := c.ParallaxFactor
	yaw := scene.Clamp(viewYaw, MinYaw, MaxYaw) * math.Pi / 180
	pitch := scene.Clamp(viewPitch, MinPitch, MaxPitch) * math.Pi / 180

	return Transform{
		Scale:      progress * *obj.Scale,
		RotateX:    obj.Rotation.X,
		RotateY:    rotateY,
		RotateZ:    obj.Rotation.Z,
		TranslateX: pos.X + math.Sin(yaw)*parallax,
		TranslateY: pos.Y + math.Sin(pitch)*(parallax/2),
		Opacity:    scene.Clamp01(progress * obj.GetOpacity() * scene.Clamp01(powerLevel)),
	}, nil
}
