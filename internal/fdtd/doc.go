// Package fdtd advances the grid one leapfrog step.
//
// A tick runs in a fixed order:
//
//  1. Hx and Hy are updated from the spatial differences of Ez.
//  2. The new Ez is computed into the grid's back buffer from the curl of H.
//     The current Ez is only read, never written.
//  3. Charges strictly inside the grid add their magnitude to the new Ez.
//     Oscillating charges are first re-evaluated at the clock value at the
//     start of the tick.
//  4. Edge rows and columns copy their inner neighbour.
//  5. The back buffer becomes Ez and the clock advances by dt.
//
// One-shot pulses ([InjectPulse]) write Ez directly and are applied between
// ticks, not as part of [Advance].
package fdtd
