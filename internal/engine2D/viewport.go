package engine2D

import (
	"math"

	"holoscene/internal/scene"
)

type ScalingMode string

const (
	ScaleFit  ScalingMode = "fit"
	ScaleFill ScalingMode = "fill"
)

// Viewport maps scene space (origin at the centre, Y up) onto window pixels
// (origin top-left, Y down).
type Viewport struct {
	ScreenWidth  float64
	ScreenHeight float64
	SceneWidth   float64
	SceneHeight  float64
	Scale        float64
	OffsetX      float64
	OffsetY      float64
}

// NewViewport fits (letterboxing) or fills (cropping) the scene into the
// screen, centred.
func NewViewport(screenWidth, screenHeight int, sceneWidth, sceneHeight float64, mode ScalingMode) Viewport {
	if sceneWidth <= 0 || sceneHeight <= 0 {
		sceneWidth, sceneHeight = float64(screenWidth), float64(screenHeight)
	}
	v := Viewport{
		ScreenWidth:  float64(screenWidth),
		ScreenHeight: float64(screenHeight),
		SceneWidth:   sceneWidth,
		SceneHeight:  sceneHeight,
		Scale:        1,
	}
	if sceneWidth > 0 && sceneHeight > 0 {
		scaleW := v.ScreenWidth / sceneWidth
		scaleH := v.ScreenHeight / sceneHeight
		if mode == ScaleFill {
			v.Scale = math.Max(scaleW, scaleH)
		} else {
			v.Scale = math.Min(scaleW, scaleH)
		}
	}
	v.OffsetX = (v.ScreenWidth - sceneWidth*v.Scale) / 2
	v.OffsetY = (v.ScreenHeight - sceneHeight*v.Scale) / 2
	return v
}

func (v Viewport) ToScreen(p scene.Vec2) scene.Vec2 {
	return scene.Vec2{
		X: v.OffsetX + (p.X+v.SceneWidth/2)*v.Scale,
		Y: v.OffsetY + (v.SceneHeight/2-p.Y)*v.Scale,
	}
}

func (v Viewport) ToScene(p scene.Vec2) scene.Vec2 {
	if v.Scale == 0 {
		return scene.Vec2{}
	}
	return scene.Vec2{
		X: (p.X-v.OffsetX)/v.Scale - v.SceneWidth/2,
		Y: v.SceneHeight/2 - (p.Y-v.OffsetY)/v.Scale,
	}
}

// Project maps a point in an object's local space through its transform.
// RotateX and RotateY foreshorten the axes; RotateZ spins in the screen
// plane. The result is in scene space.
func (t Transform) Project(local scene.Vec2) scene.Vec2 {
	x := local.X * t.Scale * math.Cos(t.RotateY*math.Pi/180)
	y := local.Y * t.Scale * math.Cos(t.RotateX*math.Pi/180)

	rad := t.RotateZ * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	return scene.Vec2{
		X: t.TranslateX + x*c - y*s,
		Y: t.TranslateY + x*s + y*c,
	}
}
