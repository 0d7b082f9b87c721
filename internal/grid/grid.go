package grid

import "math"

// Grid holds the field buffers and the geometry they were derived from.
type Grid struct {
	Width, Height float64
	Dx            float64
	NX, NY        int

	Ez, Hx, Hy *Buffer

	// next is the write target of a tick; see Next and Swap.
	next *Buffer
}

// Dimensions returns the cell counts for a width x height canvas sampled
// every dx units.
func Dimensions(width, height, dx float64) (nx, ny int) {
	if dx <= 0 {
		return 0, 0
	}
	return int(math.Floor(width / dx)), int(math.Floor(height / dx))
}

// New allocates a zeroed grid. Callers validate dx and the resulting
// dimensions beforehand.
func New(width, height, dx float64) *Grid {
	g := &Grid{Width: width, Height: height}
	g.allocate(dx)
	return g
}

func (g *Grid) allocate(dx float64) {
	g.Dx = dx
	g.NX, g.NY = Dimensions(g.Width, g.Height, dx)
	g.Ez = NewBuffer(g.NX, g.NY)
	g.Hx = NewBuffer(g.NX, g.NY)
	g.Hy = NewBuffer(g.NX, g.NY)
	g.next = NewBuffer(g.NX, g.NY)
}

// Reset zeroes all buffers in place without changing dimensions.
func (g *Grid) Reset() {
	g.Ez.Zero()
	g.Hx.Zero()
	g.Hy.Zero()
	g.next.Zero()
}

// Resize recomputes dimensions for dx and reallocates every buffer. The
// charge registry is not touched here; the simulation controller clears it
// alongside, since charge coordinates are tied to the old resolution.
func (g *Grid) Resize(dx float64) {
	g.allocate(dx)
}

// Next returns the zeroed back buffer that a tick writes the new Ez into.
func (g *Grid) Next() *Buffer {
	g.next.Zero()
	return g.next
}

// Swap makes the back buffer current. The previous Ez becomes the next back
// buffer, so no tick ever reads and writes the same Ez storage.
func (g *Grid) Swap() {
	g.Ez, g.next = g.next, g.Ez
}

// InInterior reports whether (i, j) lies strictly inside the grid on the
// low side and within it on the high side, the region where charges are
// injected.
func (g *Grid) InInterior(i, j int) bool {
	return i > 0 && i < g.NX && j > 0 && j < g.NY
}

// Contains reports whether the continuous point (x, y), in cell units, lies
// inside the grid.
func (g *Grid) Contains(x, y float64) bool {
	return x >= 0 && x < float64(g.NX) && y >= 0 && y < float64(g.NY)
}

func (g *Grid) Cells() int { return g.NX * g.NY }
