package ebiten

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/beoran/ekq"
)

const (
	// turnRate is degrees per second of camera turn from the keyboard.
	turnRate = 90.0
	// dragRate is degrees of turn per pixel of mouse drag.
	dragRate = 0.25
	moveRate = 2.0
)

var areaColor = color.RGBA{255, 255, 0, 255}

// Game runs an ekq state inside ebiten.
type Game struct {
	state   *ekq.State
	backend *Backend
	w, h    int

	dragging     bool
	lastX, lastY int
}

// Now reports seconds since start; pass it to ekq.NewState.
func Now() func() float64 {
	start := time.Now()
	return func() float64 {
		return time.Since(start).Seconds()
	}
}

func NewGame(state *ekq.State, backend *Backend, w, h int) *Game {
	return &Game{state: state, backend: backend, w: w, h: h}
}

func (g *Game) State() *ekq.State { return g.state }

func (g *Game) steer(dt float64) {
	cam := g.state.Camera()
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		cam.SetAlpha(cam.Alpha() - turnRate*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		cam.SetAlpha(cam.Alpha() + turnRate*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyPageUp) {
		cam.SetTheta(cam.Theta() - turnRate*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyPageDown) {
		cam.SetTheta(cam.Theta() + turnRate*dt)
	}

	var speed ekq.Vec3d
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		speed.Z += moveRate
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		speed.Z -= moveRate
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		speed.X -= moveRate
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		speed.X += moveRate
	}
	cam.SetSpeed(speed)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.lastX, g.lastY = ebiten.CursorPosition()
	}
	if g.dragging {
		x, y := ebiten.CursorPosition()
		cam.SetAlpha(cam.Alpha() + float64(x-g.lastX)*dragRate)
		cam.SetTheta(cam.Theta() + float64(y-g.lastY)*dragRate)
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.state.ShowFPS = !g.state.ShowFPS
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.state.ShowGraph = !g.state.ShowGraph
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.state.ShowArea = !g.state.ShowArea
	}
}

func (g *Game) Update() error {
	g.steer(g.state.FrameTime())
	g.state.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.Begin(screen)
	g.state.Draw()
	g.backend.End()

	if g.state.ShowArea {
		g.drawArea(screen)
	}
	if g.state.ShowFPS {
		cam := g.state.Camera()
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %0.0f (%0.2f)\nx %0.2f y %0.2f z %0.2f\nalpha %0.1f theta %0.1f",
			g.state.FPS(), ebiten.ActualFPS(),
			cam.X(), cam.Y(), cam.Z(), cam.Alpha(), cam.Theta()))
	}
	g.state.FramesUpdate()
}

// drawArea outlines the active camera lockins.
func (g *Game) drawArea(screen *ebiten.Image) {
	cam := g.state.Camera()
	for i := 0; i < ekq.CameraPanners; i++ {
		l := cam.Lockin(i)
		if l == nil {
			break
		}
		if !l.Active {
			continue
		}
		x, y := cam.WorldToScreen(l.X, l.Y)
		vector.StrokeRect(screen, float32(x), float32(y), float32(l.W), float32(l.H), 1, areaColor, false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}

// Run opens a window and runs g until it is closed.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(g.w, g.h)
	ebiten.SetWindowTitle(title)
	return ebiten.RunGame(g)
}
