package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/planetarium/internal/physics"
)

const (
	width       = 70
	height      = 20
	trailLength = 40
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

type cell struct{ x, y int }

// LiveRenderer is a sim.Observer that prints a plain-character view of a
// headless run, at most frameRate times per second.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	now       func() time.Time
	lastFrame time.Time
	scale     float64
	canvas    [][]rune
	trails    map[string][]cell
}

func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		now:       time.Now,
		canvas:    canvas,
		trails:    make(map[string][]cell),
	}
}

func (r *LiveRenderer) OnTick(tick int, t float64, bodies []*physics.Body) {
	now := r.now()
	if now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now

	if r.scale == 0 {
		r.fit(bodies)
	}
	r.clear()
	r.draw(bodies)
	r.render(tick, t, bodies)
}

// fit sizes the view so the outermost body starts at 90% of the half
// height. Terminal cells are about twice as tall as wide, hence the
// doubled horizontal scale.
func (r *LiveRenderer) fit(bodies []*physics.Body) {
	var maxR float64
	for _, b := range bodies {
		maxR = math.Max(maxR, b.Pos.Norm())
	}
	r.scale = 1
	if maxR > 0 {
		r.scale = 0.9 * float64(height) / 2 / maxR
	}
}

func (r *LiveRenderer) project(b *physics.Body) cell {
	return cell{
		x: width/2 + int(math.Round(b.Pos.X*r.scale*2)),
		y: height/2 + int(math.Round(b.Pos.Y*r.scale)),
	}
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) draw(bodies []*physics.Body) {
	for _, b := range bodies {
		if b.IsAnchor() {
			continue
		}
		trail := append(r.trails[b.Name], r.project(b))
		if len(trail) > trailLength {
			trail = trail[1:]
		}
		r.trails[b.Name] = trail
		for _, pt := range trail {
			r.set(pt.x, pt.y, '.')
		}
	}

	for _, b := range bodies {
		p := r.project(b)
		if b.IsAnchor() {
			r.set(p.x, p.y, '*')
			continue
		}
		r.set(p.x, p.y, marker(b.Name))
	}
}

func marker(name string) rune {
	for _, c := range strings.ToUpper(name) {
		return c
	}
	return 'O'
}

func (r *LiveRenderer) render(tick int, t float64, bodies []*physics.Body) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  tick %d  t=%.0fh\n", tick, t/physics.HourSeconds))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	b.WriteString(" ")
	for _, body := range bodies {
		if body.IsAnchor() {
			continue
		}
		b.WriteString(fmt.Sprintf(" %c=%s %.3fAU", marker(body.Name), body.Name, body.Separation/physics.AU))
	}
	b.WriteString("\n")

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
