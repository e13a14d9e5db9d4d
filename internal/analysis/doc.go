// Package analysis estimates orbital properties from recorded runs.
//
//   - [DominantPeriod]: strongest period in a separation series via [FFT]
//   - [CrossingPeriod]: mean time between upward x-axis crossings
//   - [PathToASCII]: quick terminal plot of an orbit
//
// For an eccentric orbit the separation oscillates once per revolution, so
// both estimators should agree:
//
//	period := analysis.DominantPeriod(separations, sampleDt)
package analysis
