package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/planetarium/internal/storage"
	"github.com/san-kum/planetarium/internal/viz"
)

const defaultStroke = "#00ff00"

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.SubWidth()) * scale
	height := float64(canvas.SubHeight()) * scale

	var sb strings.Builder
	sb.WriteString(header(width, height))

	dotRadius := scale * 0.4
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fill := canvas.Colors[y/4][x/2]
			if fill == "" {
				fill = defaultStroke
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, dotRadius, fill))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// TrailsToSVG draws the recorded path of every body as one polyline, with a
// dot at its final position. All bodies share one scale so orbits keep
// their true proportions; like the window, +y points down.
func TrailsToSVG(samples []storage.Sample, colors map[string]string, width, height int) string {
	if len(samples) == 0 {
		return ""
	}

	minX, maxX := samples[0].X, samples[0].X
	minY, maxY := samples[0].Y, samples[0].Y
	for _, s := range samples {
		minX, maxX = math.Min(minX, s.X), math.Max(maxX, s.X)
		minY, maxY = math.Min(minY, s.Y), math.Max(maxY, s.Y)
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	scale := 0.9 * math.Min(float64(width), float64(height)) / span
	midX, midY := (minX+maxX)/2, (minY+maxY)/2
	project := func(s storage.Sample) (float64, float64) {
		return (s.X-midX)*scale + float64(width)/2, (s.Y-midY)*scale + float64(height)/2
	}

	var sb strings.Builder
	sb.WriteString(header(float64(width), float64(height)))

	for _, name := range storage.BodyNames(samples) {
		path := storage.ForBody(samples, name)
		stroke := colors[name]
		if stroke == "" {
			stroke = defaultStroke
		}

		if len(path) > 1 {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, viz.Dim(stroke, 3)))
			for i, s := range path {
				x, y := project(s)
				if i == 0 {
					sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
				}
			}
			sb.WriteString("\"/>\n")
		}

		x, y := project(path[len(path)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"><title>%s</title></circle>
`, x, y, stroke, name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func header(width, height float64) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height)
}
