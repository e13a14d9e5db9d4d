// Package export renders recorded orbits and terminal canvases as SVG.
package export
