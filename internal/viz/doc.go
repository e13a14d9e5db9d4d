// Package viz turns a body registry into pictures.
//
// [BuildFrame] projects bodies and trails through a [Projection] into
// renderer-neutral [Sprite] values. The terminal view draws them on a
// Braille [Canvas] inside a Bubble Tea [Model]; the raylib window in
// package gui consumes the same frames.
//
// # Key Bindings
//
//	←/h  - Slow down by one step increment (through zero it reverses)
//	→/l  - Speed up by one step increment
//	Tab  - Cycle the planet whose distance is graphed
//	?    - Show help overlay
//	q    - Quit
package viz
