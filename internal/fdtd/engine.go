package fdtd

import (
	"github.com/san-kum/fieldsim/internal/charge"
	"github.com/san-kum/fieldsim/internal/grid"
)

// Tick summarizes one call to Advance.
type Tick struct {
	// Start is the clock value the tick was evaluated at.
	Start float64
	// Injected counts charges that contributed to Ez.
	Injected int
}

// Advance performs one tick on g with the given charges and time step. The
// caller guarantees dt > 0 and NX, NY >= 2.
func Advance(g *grid.Grid, charges *charge.Registry, clock *Clock, dt float64) Tick {
	tick := Tick{Start: clock.Now()}

	updateH(g, dt)
	next := g.Next()
	updateEz(g, next, dt)

	if charges != nil {
		charges.Oscillate(tick.Start)
		tick.Injected = inject(g, next, charges)
	}

	mirrorEdges(next)
	g.Swap()
	clock.advance(dt)
	return tick
}

func updateH(g *grid.Grid, dt float64) {
	nx, ny := g.NX, g.NY
	ez, hx, hy := g.Ez.Data(), g.Hx.Data(), g.Hy.Data()
	k := dt / g.Dx

	// H runs through index nx-2 and ny-2: the Ez stencil at i = nx-2 reads
	// Hy[nx-2], so the last interior H row and column must be current.
	for j := 0; j < ny-1; j++ {
		row := j * nx
		for i := 0; i < nx-1; i++ {
			idx := row + i
			hx[idx] -= k * (ez[idx+nx] - ez[idx])
			hy[idx] += k * (ez[idx+1] - ez[idx])
		}
	}
}

func updateEz(g *grid.Grid, next *grid.Buffer, dt float64) {
	nx, ny := g.NX, g.NY
	ez, hx, hy, out := g.Ez.Data(), g.Hx.Data(), g.Hy.Data(), next.Data()
	k := dt / g.Dx

	for j := 1; j < ny-1; j++ {
		row := j * nx
		for i := 1; i < nx-1; i++ {
			idx := row + i
			curl := (hy[idx] - hy[idx-1]) - (hx[idx] - hx[idx-nx])
			out[idx] = ez[idx] + k*curl
		}
	}
}

// inject accumulates charge magnitudes into next. Charges outside the
// injection region are skipped, not reported.
func inject(g *grid.Grid, next *grid.Buffer, charges *charge.Registry) int {
	n := 0
	for _, c := range charges.All() {
		if !g.InInterior(c.X, c.Y) {
			continue
		}
		next.Add(c.X, c.Y, c.Magnitude)
		n++
	}
	return n
}

// mirrorEdges copies each edge column and row from its inner neighbour.
// Columns go first, so corners take the row pass value.
func mirrorEdges(b *grid.Buffer) {
	nx, ny := b.NX(), b.NY()
	if nx < 2 || ny < 2 {
		return
	}
	d := b.Data()

	for j := 0; j < ny; j++ {
		row := j * nx
		d[row] = d[row+1]
		d[row+nx-1] = d[row+nx-2]
	}
	last := (ny - 1) * nx
	for i := 0; i < nx; i++ {
		d[i] = d[nx+i]
		d[last+i] = d[last-nx+i]
	}
}

// InjectPulse writes magnitude into Ez at (x, y), replacing the value. It
// reports false, leaving the grid untouched, when the cell is outside.
func InjectPulse(g *grid.Grid, x, y int, magnitude float64) bool {
	return g.Ez.Set(x, y, magnitude)
}
