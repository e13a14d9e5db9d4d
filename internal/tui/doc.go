// Package tui prints a plain-character view of a running
// simulation, for headless runs where a full terminal program is too much.
package tui
