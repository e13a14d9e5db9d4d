// Package dynamo provides core primitives shared by the planetarium packages.
//
// The package defines the small vocabulary the physics, simulation and
// rendering layers agree on:
//
//   - [Vec2]: planar vector for positions, velocities and forces
//   - [SeparationError]: two bodies collapsed onto one point
//   - [BodyError]: a body rejected at registry construction
//   - [SimulationError]: a failed tick with its tick index and elapsed time
//
// # Errors
//
// Every typed error unwraps to one of the package sentinels, so callers
// match with [errors.Is]:
//
//	if errors.Is(err, dynamo.ErrDegenerateSeparation) {
//	    // the tick was aborted, no body moved
//	}
package dynamo
