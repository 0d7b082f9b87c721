// Package sim is the simulation controller.
//
// A [Simulation] owns the grid, the charge registry, the time step pair and
// the simulation clock. Every command and query goes through it:
//
//   - commands: SetParameters, ResetFields, ResetAll, AddCharge,
//     RemoveNearestCharge, MoveCharge, SetOscillating, SetStatic,
//     InjectPulse, Advance, Tick, Run
//   - queries: PotentialMap, TraceFieldLines, CFLStatus, Snapshot
//   - drag lease: Select, Drag, Release
//
// # Example
//
//	s, _ := sim.New(800, 600, sim.Params{Dt: 2, Dx: 5})
//	s.AddCharge(40, 60, 10)
//	s.AddCharge(120, 60, -10)
//	for i := 0; i < 100; i++ {
//	    s.Tick()
//	}
//	lines := s.TraceFieldLines(6)
//
// # Thread Safety
//
// Methods are safe for concurrent use. Each call, and each tick in
// particular, runs as one atomic transaction over the shared state, so a
// charge edit can never interleave with a half-finished Advance. Metrics and
// observers run inside that transaction and must not call back into the
// Simulation.
package sim
