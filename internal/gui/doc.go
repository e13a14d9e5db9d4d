// Package gui is the full-window planetarium rendered with raylib.
//
// Each frame runs one simulation tick, then draws the background grid,
// every trail and body from [viz.BuildFrame] and the time-scale overlay.
// LEFT and RIGHT change the time step by the configured increment; ESC
// closes the window.
package gui
