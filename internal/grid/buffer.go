package grid

import "math"

// Buffer is a dense row-major 2-D array of float64 values.
type Buffer struct {
	nx, ny int
	data   []float64
}

func NewBuffer(nx, ny int) *Buffer {
	if nx < 0 {
		nx = 0
	}
	if ny < 0 {
		ny = 0
	}
	return &Buffer{nx: nx, ny: ny, data: make([]float64, nx*ny)}
}

func (b *Buffer) NX() int { return b.nx }
func (b *Buffer) NY() int { return b.ny }

// Index returns the flat offset of cell (i, j). It does not check bounds.
func (b *Buffer) Index(i, j int) int { return j*b.nx + i }

func (b *Buffer) InBounds(i, j int) bool {
	return i >= 0 && i < b.nx && j >= 0 && j < b.ny
}

// At returns the value at (i, j), or 0 outside the buffer.
func (b *Buffer) At(i, j int) float64 {
	if !b.InBounds(i, j) {
		return 0
	}
	return b.data[j*b.nx+i]
}

// Set writes v at (i, j). Writes outside the buffer are dropped and reported
// by the return value.
func (b *Buffer) Set(i, j int, v float64) bool {
	if !b.InBounds(i, j) {
		return false
	}
	b.data[j*b.nx+i] = v
	return true
}

// Add accumulates v into (i, j).
func (b *Buffer) Add(i, j int, v float64) bool {
	if !b.InBounds(i, j) {
		return false
	}
	b.data[j*b.nx+i] += v
	return true
}

// Data exposes the backing slice for tight loops and read-only consumers.
func (b *Buffer) Data() []float64 { return b.data }

func (b *Buffer) Zero() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// Clone returns an independent copy.
func (b *Buffer) Clone() *Buffer {
	c := NewBuffer(b.nx, b.ny)
	copy(c.data, b.data)
	return c
}

// IsFinite reports whether every value is neither NaN nor Inf.
func (b *Buffer) IsFinite() bool {
	for _, v := range b.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MinMax returns the smallest and largest values. An empty buffer yields
// (0, 0).
func (b *Buffer) MinMax() (lo, hi float64) {
	if len(b.data) == 0 {
		return 0, 0
	}
	lo, hi = b.data[0], b.data[0]
	for _, v := range b.data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
