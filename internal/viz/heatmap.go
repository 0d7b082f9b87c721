package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fieldsim/internal/charge"
	"github.com/san-kum/fieldsim/internal/fieldlines"
	"github.com/san-kum/fieldsim/internal/grid"
	"github.com/san-kum/fieldsim/internal/potential"
)

// Layers selects what a scene draws. PotentialExponent shapes the potential
// colour response; zero means DefaultExponent.
type Layers struct {
	Waves     bool
	Potential bool
	Lines     bool

	PotentialExponent float64
}

// Cursor is a highlighted grid cell. Held marks an active drag.
type Cursor struct {
	X, Y    int
	Visible bool
	Held    bool
}

// Scene is everything needed to draw one frame, in grid cell units.
type Scene struct {
	NX, NY    int
	Ez        *grid.Buffer
	Potential *potential.Map
	Lines     []fieldlines.Line
	Charges   []charge.Charge
	Cursor    Cursor
}

// block returns the half-open cell range covered by terminal cell k of n
// across size grid cells. Every terminal cell covers at least one grid cell.
func block(k, n, size int) (lo, hi int) {
	lo = k * size / n
	hi = (k + 1) * size / n
	if hi <= lo {
		hi = lo + 1
	}
	if hi > size {
		hi = size
	}
	return lo, hi
}

// Downsample reduces an nx x ny field to cols x rows, keeping the signed
// value of largest magnitude in each block.
func Downsample(nx, ny, cols, rows int, at func(i, j int) float64) []float64 {
	if nx <= 0 || ny <= 0 || cols <= 0 || rows <= 0 {
		return nil
	}
	out := make([]float64, cols*rows)
	for r := 0; r < rows; r++ {
		j0, j1 := block(r, rows, ny)
		for c := 0; c < cols; c++ {
			i0, i1 := block(c, cols, nx)
			best := 0.0
			for j := j0; j < j1; j++ {
				for i := i0; i < i1; i++ {
					if v := at(i, j); math.Abs(v) > math.Abs(best) {
						best = v
					}
				}
			}
			out[r*cols+c] = best
		}
	}
	return out
}

func peakAbs(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}

// ToCell maps grid cell (x, y) to its terminal cell.
func ToCell(x, y, nx, ny, cols, rows int) (col, row int) {
	if nx <= 0 || ny <= 0 {
		return 0, 0
	}
	return x * cols / nx, y * rows / ny
}

// RenderScene draws sc onto a cols x rows block of terminal cells. Waves and
// potential share the background, field lines are Braille glyphs, charges and
// the cursor are drawn on top.
func RenderScene(sc Scene, cols, rows int, layers Layers) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}

	var waves, pot []float64
	var waveScale, potScale float64
	if layers.Waves && sc.Ez != nil {
		waves = Downsample(sc.NX, sc.NY, cols, rows, sc.Ez.At)
		waveScale = peakAbs(waves)
	}
	if layers.Potential && sc.Potential != nil && sc.Potential.NX > 0 {
		pot = Downsample(sc.Potential.NX, sc.Potential.NY, cols, rows, sc.Potential.At)
		potScale = peakAbs(pot)
	}

	canvas := NewCanvas(cols, rows)
	if layers.Lines {
		canvas.DrawFieldLines(sc.Lines, sc.NX, sc.NY)
	}

	glyphs := make(map[int]string)
	for _, c := range sc.Charges {
		if c.X < 0 || c.Y < 0 || c.X >= sc.NX || c.Y >= sc.NY {
			continue
		}
		col, row := ToCell(c.X, c.Y, sc.NX, sc.NY, cols, rows)
		switch {
		case c.Positive():
			glyphs[row*cols+col] = positiveStyle.Render("+")
		case c.Magnitude < 0:
			glyphs[row*cols+col] = negativeStyle.Render("-")
		default:
			glyphs[row*cols+col] = valueStyle.Render("o")
		}
	}
	if sc.Cursor.Visible {
		col, row := ToCell(sc.Cursor.X, sc.Cursor.Y, sc.NX, sc.NY, cols, rows)
		if col >= 0 && row >= 0 && col < cols && row < rows {
			mark := "◇"
			if sc.Cursor.Held {
				mark = "◆"
			}
			glyphs[row*cols+col] = cursorStyle.Render(mark)
		}
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			k := row*cols + col

			var bg rgb
			if waves != nil {
				bg = bg.add(waveColor(compress(waves[k], waveScale, DefaultExponent)))
			}
			if pot != nil {
				bg = bg.add(potentialColor(compress(pot[k], potScale, layers.PotentialExponent)))
			}

			cell, ok := glyphs[k]
			if !ok {
				if canvas.Blank(col, row) {
					cell = " "
				} else {
					cell = lineStyle.Render(string(canvas.Cell(col, row)))
				}
			}
			if !bg.zero() {
				cell = lipgloss.NewStyle().Background(bg.color()).Render(cell)
			}
			b.WriteString(cell)
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
