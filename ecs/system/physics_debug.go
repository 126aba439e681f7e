package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
)

// DrawPhysicsDebug draws every shape in the space, seen from the side with
// Z up, centered on the first camera.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	drawer := newDebugDrawer(w, screen)
	cp.DrawSpace(space, drawer)
}

// DrawCharacterDebug overlays the view ray, the carry point and the dash
// path of the player, plus a text readout of its gameplay state.
func DrawCharacterDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := w.First(component.PlayerTagComponent.ID(), component.CharacterComponent.ID())
	if !ok {
		return
	}
	cc, _ := ecs.Get(w, player, component.CharacterComponent)
	ch := cc.Controller
	if ch == nil {
		return
	}
	d := newDebugDrawer(w, screen)

	view := NewCharacterView(w, player)
	eye := toSpace(view.EyeLocation())
	reach := toSpace(view.EyeLocation().Add(view.Forward().Mul(ch.Config().Grab.TraceRange)))
	d.drawLine(eye, reach, colorToF(colornames.Yellow, 0.4))

	carry := toSpace(NewCarryPoint(w, player).WorldLocation())
	d.drawCircle(carry, 6, colorToF(colornames.Deepskyblue, 1))

	if st := ch.Dash().State(); st.Active {
		d.drawLine(toSpace(st.Start), toSpace(st.End), colorToF(colornames.Orange, 0.9))
	}

	mode := "none"
	grounded := false
	if mv, ok := ecs.Get(w, player, component.MovementComponent); ok {
		mode = mv.Mode.String()
		grounded = mv.Grounded
	}
	jet := ch.Jetpack().State()
	vc, _ := ecs.Get(w, player, component.ViewComponent)
	yaw, pitch := 0.0, 0.0
	if vc != nil {
		yaw, pitch = vc.Yaw, vc.Pitch
	}
	text := fmt.Sprintf("Mode: %s\nGrounded: %v\nDashing: %v\nJetpack: %v fuel %.2f/%.2f\nHolding: %v\nYaw %.1f Pitch %.1f",
		mode, grounded, ch.Dash().Active(), jet.Active, jet.Fuel, jet.MaxFuel, ch.Grab().Holding(), yaw, pitch)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
	halfW  float64
	halfH  float64
}

func newDebugDrawer(w *ecs.World, screen *ebiten.Image) *physicsDebugDrawer {
	camX, camY, zoom := debugCameraTransform(w)
	b := screen.Bounds()
	return &physicsDebugDrawer{
		screen: screen,
		camX:   camX,
		camY:   camY,
		zoom:   zoom,
		halfW:  float64(b.Dx()) / 2,
		halfH:  float64(b.Dy()) / 2,
	}
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		d.drawLine(a, b, outline)
		return
	}
	// capsule outline: two sides and two end circles
	n := b.Sub(a).Perp().Normalize().Mult(radius)
	d.drawLine(a.Add(n), b.Add(n), outline)
	d.drawLine(a.Sub(n), b.Sub(n), outline)
	d.drawCircle(a, radius, outline)
	d.drawCircle(b, radius, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_CONSTRAINTS
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return colorToF(colornames.Limegreen, 0.9)
}

// ShapeColor tints bodies by how they are simulated.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil || shape.Body() == nil {
		return colorToF(colornames.Green, 0.5)
	}
	switch shape.Body().GetType() {
	case cp.BODY_STATIC:
		return colorToF(colornames.Slategray, 0.6)
	case cp.BODY_KINEMATIC:
		return colorToF(colornames.Deepskyblue, 0.7)
	}
	if shape.Filter.Group != cp.NO_GROUP {
		return colorToF(colornames.Gold, 0.7)
	}
	return colorToF(colornames.Limegreen, 0.6)
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return colorToF(colornames.Orange, 0.9)
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return colorToF(colornames.Red, 0.9)
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(c), false)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

// toScreen flips Y so world up is screen up.
func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return (v.X-d.camX)*d.zoom + d.halfW, -(v.Y-d.camY)*d.zoom + d.halfH
}

func colorToF(c color.RGBA, alpha float32) cp.FColor {
	return cp.FColor{R: float32(c.R) / 255, G: float32(c.G) / 255, B: float32(c.B) / 255, A: alpha}
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func debugCameraTransform(w *ecs.World) (float64, float64, float64) {
	camEntity, ok := w.First(component.CameraComponent.ID())
	if !ok {
		return 0, 0, 1
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent)
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return cam.X, cam.Z, zoom
}
