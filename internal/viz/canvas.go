package viz

import (
	"strings"

	"github.com/san-kum/fieldsim/internal/fieldlines"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Cols x Rows grid of Braille cells, giving a 2*Cols x 4*Rows
// pixel surface.
type Canvas struct {
	Cols, Rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c := &Canvas{Cols: cols, Rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

// PixelWidth and PixelHeight are the sub-pixel dimensions.
func (c *Canvas) PixelWidth() int  { return c.Cols * 2 }
func (c *Canvas) PixelHeight() int { return c.Rows * 4 }

// Set turns on the sub-pixel (x, y). Out of range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.cells[row*c.Cols+col] |= pixelMap[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBlank
	}
}

// Cell returns the rune at terminal cell (col, row).
func (c *Canvas) Cell(col, row int) rune {
	if col < 0 || row < 0 || col >= c.Cols || row >= c.Rows {
		return brailleBlank
	}
	return c.cells[row*c.Cols+col]
}

// Blank reports whether no pixel of the cell is set.
func (c *Canvas) Blank(col, row int) bool { return c.Cell(col, row) == brailleBlank }

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawFieldLines plots traced lines given in cells of an nx x ny grid,
// scaled onto the whole canvas.
func (c *Canvas) DrawFieldLines(lines []fieldlines.Line, nx, ny int) {
	if nx <= 0 || ny <= 0 {
		return
	}
	sx := float64(c.PixelWidth()) / float64(nx)
	sy := float64(c.PixelHeight()) / float64(ny)
	for _, l := range lines {
		for k := 1; k < len(l.Points); k++ {
			a, b := l.Points[k-1], l.Points[k]
			c.DrawLine(int(a.X*sx), int(a.Y*sy), int(b.X*sx), int(b.Y*sy))
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Rows; row++ {
		b.WriteString(string(c.cells[row*c.Cols : (row+1)*c.Cols]))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
