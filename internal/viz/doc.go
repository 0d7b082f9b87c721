// Package viz renders simulation state in the terminal.
//
// It only consumes query results from [sim.Simulation]:
//
//   - [Canvas]: Braille pixel canvas used for field lines
//   - [RenderScene]: Ez and potential heat maps with charges and cursor
//   - [Model]: Bubble Tea live application paced by tea.Tick
//
// # Key Bindings
//
//	Space   - Pause/Resume
//	Arrows  - Move cursor (hjkl also work)
//	Enter   - Apply the current mode at the cursor
//	1-5     - Mode: pulse, positive, negative, move, erase
//	W P L   - Toggle waves, potential, field lines (shift+l)
//	O       - Toggle oscillation on the nearest charge
//	R / X   - Reset fields / reset everything
//	+ -     - Scale dt
//	[ ]     - Scale dx (clears charges)
//	d D     - Field lines per charge
//	m M     - Pulse and charge magnitude
//	e E     - Potential colour exponent
//	.       - Single step while paused
//	?       - Help
package viz
