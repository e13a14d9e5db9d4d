// Package storage records headless runs for later plotting.
//
// Each run is a directory under the data dir holding metadata.json and
// trajectory.csv with the columns
//
//	tick,time,body,x,y,vx,vy,separation
//
// A [Recorder] collects samples while the simulator runs. Recordings are
// outputs only; nothing restores a simulation from them.
package storage
