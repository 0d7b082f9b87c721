// Package grid owns the field buffers of the 2-D simulation.
//
// A [Grid] holds three equally sized [Buffer] values:
//
//   - Ez: the out-of-plane scalar field that charges drive
//   - Hx, Hy: the in-plane field components of the leapfrog scheme
//
// plus one scratch buffer used as the write target of a tick. Buffers are
// contiguous and row-major: cell (i, j) lives at j*NX + i, where i runs
// along x and j along y.
//
// Dimensions are derived once from the canvas size and the spatial step:
//
//	nx := floor(width / dx)
//	ny := floor(height / dx)
//
// Any change of dimensions reallocates and zeroes every buffer together, so
// the buffers can never disagree on shape.
package grid
