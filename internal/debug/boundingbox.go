package debug

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"holoscene/internal/engine2D"
	"holoscene/internal/scene"
)

func drawBoundingBoxes(frame engine2D.Frame, vp engine2D.Viewport) {
	for _, of := range frame.Objects {
		col := rl.NewColor(0, 255, 0, 255)
		if of.Object.Interactive {
			col = rl.NewColor(255, 255, 0, 255)
		}
		drawObjectBoundingBox(of, vp, col)
	}
}

func drawObjectBoundingBox(of engine2D.ObjectFrame, vp engine2D.Viewport, col rl.Color) {
	t := of.Transform
	w, h := of.Visual.Width/2, of.Visual.Height/2
	corners := []scene.Vec2{{X: -w, Y: -h}, {X: w, Y: -h}, {X: w, Y: h}, {X: -w, Y: h}}

	for i := range corners {
		a := vp.ToScreen(t.Project(corners[i]))
		b := vp.ToScreen(t.Project(corners[(i+1)%len(corners)]))
		rl.DrawLineV(rl.NewVector2(float32(a.X), float32(a.Y)), rl.NewVector2(float32(b.X), float32(b.Y)), col)
	}

	// Origin marker
	o := vp.ToScreen(scene.Vec2{X: t.TranslateX, Y: t.TranslateY})
	rl.DrawRectangle(int32(o.X-2), int32(o.Y-2), 4, 4, rl.Red)
}
