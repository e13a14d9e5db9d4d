package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/planetarium/internal/config"
	"github.com/san-kum/planetarium/internal/integrators"
	"github.com/san-kum/planetarium/internal/sim"
	"github.com/san-kum/planetarium/internal/viz"
)

var (
	ColBg   = rl.NewColor(0, 0, 0, 255)
	ColGrid = rl.NewColor(50, 50, 50, 255)
	ColText = rl.NewColor(255, 255, 255, 255)
	ColDim  = rl.NewColor(120, 120, 120, 255)
)

// App is the windowed planetarium: one simulation tick per frame.
type App struct {
	Sim       *sim.Simulator
	Proj      viz.Projection
	Width     int
	Height    int
	Increment int
	GridBlock float64
	Err       error
}

func NewApp(s *sim.Simulator, cfg *config.Config) *App {
	return &App{
		Sim:       s,
		Proj:      viz.NewProjection(cfg.PixelsPerAU, cfg.Window.Width, cfg.Window.Height),
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Increment: cfg.StepIncrement,
		GridBlock: float64(cfg.Window.Width) / 20,
	}
}

// Run opens the window and blocks until it is closed, ESC is pressed or a
// tick fails.
func Run(cfg *config.Config) error {
	reg, err := cfg.Build()
	if err != nil {
		return err
	}
	app := NewApp(sim.New(reg, integrators.NewSemiImplicitEuler()), cfg)

	rl.InitWindow(int32(app.Width), int32(app.Height), "planetarium")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.FPS))

	app.RunLoop()
	return app.Err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input and advances the simulation. It reports false once
// the loop should stop.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyLeft) {
		a.Sim.AdjustTimeStep(-a.Increment)
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		a.Sim.AdjustTimeStep(a.Increment)
	}

	if err := a.Sim.Tick(); err != nil {
		log.Printf("window stopped: %v", err)
		a.Err = err
		return false
	}
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawGrid()
	for _, s := range viz.BuildFrame(a.Sim.Registry(), a.Proj) {
		drawSprite(s)
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawText(viz.TimeScaleText(a.Sim.Hours()), 0, 0, 16, ColText)
	rl.DrawText(fmt.Sprintf("Elapsed %s", viz.FormatElapsed(a.Sim.Elapsed())), 0, 20, 16, ColDim)
	rl.DrawText("[LEFT] SLOWER  [RIGHT] FASTER  [ESC] QUIT", int32(a.Width)-380, int32(a.Height)-24, 16, ColDim)
	rl.DrawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 0, int32(a.Height)-24, 16, ColDim)
}

func (a *App) drawGrid() {
	xs, ys := viz.GridLines(a.Width, a.Height, a.GridBlock)
	for _, x := range xs {
		rl.DrawLine(int32(x), 0, int32(x), int32(a.Height), ColGrid)
	}
	for _, y := range ys {
		rl.DrawLine(0, int32(y), int32(a.Width), int32(y), ColGrid)
	}
}

func drawSprite(s viz.Sprite) {
	if len(s.Trail) > 0 {
		points := make([]rl.Vector2, len(s.Trail))
		for i, p := range s.Trail {
			points[i] = rl.NewVector2(float32(p[0]), float32(p[1]))
		}
		tc := color(s.TrailColor)
		for i := 1; i < len(points); i++ {
			rl.DrawLineEx(points[i-1], points[i], 2, tc)
		}
	}
	rl.DrawCircleV(rl.NewVector2(float32(s.X), float32(s.Y)), float32(s.Radius), color(s.Color))
}

func color(hex string) rl.Color {
	r, g, b, a := viz.RGBA(hex)
	return rl.NewColor(r, g, b, a)
}
