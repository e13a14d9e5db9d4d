// Package physics holds the bodies of a planetary system and their registry.
//
// Two kinds of body exist, fixed at construction:
//
//   - anchors ([NewAnchor]): immovable gravity sources such as the sun
//   - movers ([NewPlanet]): bodies integrated under anchor gravity
//
// The [Registry] keeps bodies in construction order, precomputes the
// anchor and mover partitions and owns the single time step every body
// integrates with. Each body records its path in a [Trail], either the
// full history or a fixed-capacity ring buffer.
//
// # Sample Systems
//
//	reg, err := physics.NewRegistry(physics.HourSeconds, 0, physics.InnerSolarSystem()...)
package physics
