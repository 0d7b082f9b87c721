package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fieldsim/internal/metrics"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	statusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))

	cflStable   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	cflWarning  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffcc00"))
	cflUnstable = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))

	positiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5555"))
	negativeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5599ff"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff"))
	lineStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6f6fff"))

	sparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	sparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	sparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// CFLPanel renders the CFL report colored by its status.
func CFLPanel(r metrics.CFLReport) string {
	style := cflStable
	switch r.Status {
	case metrics.PossiblyUnstable:
		style = cflWarning
	case metrics.Unstable:
		style = cflUnstable
	}
	return labelStyle.Render("CFL") + style.Render(fmt.Sprintf("%.3f", r.Number)) + "\n" +
		style.Render(r.Status.Label())
}

// Sparkline renders a one-row chart of values, sampled to fit width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(sparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(sparkMid.Render(c))
		default:
			b.WriteString(sparkLow.Render(c))
		}
	}
	return b.String()
}

// rgb is a color with channels in [0, 1].
type rgb struct{ r, g, b float64 }

func (c rgb) add(o rgb) rgb {
	return rgb{
		math.Min(1, c.r+o.r),
		math.Min(1, c.g+o.g),
		math.Min(1, c.b+o.b),
	}
}

func (c rgb) zero() bool { return c.r == 0 && c.g == 0 && c.b == 0 }

func (c rgb) color() lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", channel(c.r), channel(c.g), channel(c.b)))
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// waveColor maps a in [-1, 1] to warm for positive Ez and cool for negative.
func waveColor(a float64) rgb {
	if a >= 0 {
		return rgb{a, 0.25 * a, 0}
	}
	return rgb{0, 0.35 * -a, -a}
}

// potentialColor maps a in [-1, 1] to magenta for positive potential and teal
// for negative, dimmer than the wave palette so both layers can be blended.
func potentialColor(a float64) rgb {
	if a >= 0 {
		return rgb{0.45 * a, 0, 0.3 * a}
	}
	return rgb{0, 0.4 * -a, 0.3 * -a}
}

// DefaultExponent is the response curve used for waves and, unless
// overridden, for the potential.
const DefaultExponent = 0.5

// compress scales v by scale into [-1, 1] and raises the magnitude to exp.
// Exponents below 1 keep weak values visible next to a strong source. A
// non-positive exp falls back to DefaultExponent.
func compress(v, scale, exp float64) float64 {
	if scale <= 0 {
		return 0
	}
	if exp <= 0 {
		exp = DefaultExponent
	}
	a := math.Min(1, math.Abs(v)/scale)
	return math.Copysign(math.Pow(a, exp), v)
}
