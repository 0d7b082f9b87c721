package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fieldsim/internal/charge"
	"github.com/san-kum/fieldsim/internal/metrics"
	"github.com/san-kum/fieldsim/internal/sim"
)

const historyCapacity = 300

// Mode is what Enter does at the cursor.
type Mode int

const (
	ModePulse Mode = iota
	ModePositive
	ModeNegative
	ModeMove
	ModeErase
)

var modeNames = [...]string{"pulse", "positive", "negative", "move", "erase"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

const (
	maxDensity     = 36
	minExponent    = 0.1
	maxExponent    = 3
	exponentStep   = 0.1
	magnitudeStep  = 1
	sparklineWidth = 30
)

// Settings are the live app's tunables. Magnitude is used for pulses and
// for new charges; Density, Magnitude and PotentialExponent can also be
// changed from the keyboard.
type Settings struct {
	Cols, Rows        int
	FPS               int
	Density           int
	Magnitude         float64
	PotentialExponent float64
	EraseRadius       float64
	SelectRadius      float64
	Frequency         float64
	DtFactor          float64
	DxFactor          float64
}

func DefaultSettings() Settings {
	return Settings{
		Cols:              80,
		Rows:              30,
		FPS:               30,
		Density:           6,
		Magnitude:         10,
		PotentialExponent: DefaultExponent,
		EraseRadius:       5,
		SelectRadius:      5,
		Frequency:         0.02,
		DtFactor:          1.1,
		DxFactor:          1.25,
	}
}

type TickMsg time.Time

// Model drives a simulation from terminal input. The simulation handle is
// shared by every copy of the model.
type Model struct {
	sim      *sim.Simulation
	settings Settings
	energy   *metrics.FieldEnergy

	cursorX, cursorY int
	mode             Mode
	running          bool
	layers           Layers
	showHelp         bool
	status           string

	energyHistory []float64
	cursorHistory []float64
}

// NewModel attaches an energy metric to s and centers the cursor.
func NewModel(s *sim.Simulation, settings Settings) Model {
	energy := metrics.NewFieldEnergy()
	s.AddMetric(energy)

	nx, ny := s.Dims()
	return Model{
		sim:           s,
		settings:      settings,
		energy:        energy,
		cursorX:       nx / 2,
		cursorY:       ny / 2,
		mode:          ModePulse,
		running:       true,
		layers:        Layers{Waves: true, Lines: true, PotentialExponent: settings.PotentialExponent},
		energyHistory: make([]float64, 0, historyCapacity),
		cursorHistory: make([]float64, 0, historyCapacity),
	}
}

// Run starts the live app on the alternate screen.
func Run(s *sim.Simulation, settings Settings) error {
	_, err := tea.NewProgram(NewModel(s, settings), tea.WithAltScreen()).Run()
	return err
}

func (m Model) tick() tea.Cmd {
	fps := m.settings.FPS
	if fps <= 0 {
		fps = 30
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and steps the simulation once per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case ".":
		if !m.running {
			m.step()
		}
	case "up", "k":
		m.moveCursor(0, -1)
	case "down", "j":
		m.moveCursor(0, 1)
	case "left", "h":
		m.moveCursor(-1, 0)
	case "right", "l":
		m.moveCursor(1, 0)
	case "enter":
		m.apply()
	case "1", "2", "3", "4", "5":
		m.setMode(Mode(msg.String()[0] - '1'))
	case "w":
		m.layers.Waves = !m.layers.Waves
	case "p":
		m.layers.Potential = !m.layers.Potential
	case "L":
		m.layers.Lines = !m.layers.Lines
	case "o":
		m.toggleOscillation()
	case "r":
		m.sim.ResetFields()
		m.status = "fields reset"
	case "x":
		m.sim.ResetAll()
		m.energy.Reset()
		m.energyHistory = m.energyHistory[:0]
		m.cursorHistory = m.cursorHistory[:0]
		m.status = "everything reset"
	case "+", "=":
		m.scaleDt(m.settings.DtFactor)
	case "-", "_":
		m.scaleDt(1 / m.settings.DtFactor)
	case "]":
		m.scaleDx(m.settings.DxFactor)
	case "[":
		m.scaleDx(1 / m.settings.DxFactor)
	case "d":
		m.setDensity(m.settings.Density - 1)
	case "D":
		m.setDensity(m.settings.Density + 1)
	case "m":
		m.setMagnitude(m.settings.Magnitude - magnitudeStep)
	case "M":
		m.setMagnitude(m.settings.Magnitude + magnitudeStep)
	case "e":
		m.setExponent(m.layers.PotentialExponent - exponentStep)
	case "E":
		m.setExponent(m.layers.PotentialExponent + exponentStep)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// step advances one tick. A diverged field pauses the app.
func (m *Model) step() {
	if _, err := m.sim.Tick(); err != nil {
		m.running = false
		m.status = err.Error()
	}
	m.energyHistory = appendCapped(m.energyHistory, m.energy.Value())
	m.cursorHistory = appendCapped(m.cursorHistory, m.sim.FieldAt(m.cursorX, m.cursorY))
}

func appendCapped(history []float64, v float64) []float64 {
	history = append(history, v)
	if len(history) > historyCapacity {
		history = history[1:]
	}
	return history
}

func (m *Model) setDensity(n int) {
	m.settings.Density = min(max(n, 1), maxDensity)
	m.status = fmt.Sprintf("field lines per charge: %d", m.settings.Density)
}

func (m *Model) setMagnitude(v float64) {
	m.settings.Magnitude = math.Max(v, magnitudeStep)
	m.status = fmt.Sprintf("magnitude: %.0f", m.settings.Magnitude)
}

// setExponent rounds to one decimal so repeated steps do not drift.
func (m *Model) setExponent(v float64) {
	v = math.Round(v*10) / 10
	m.layers.PotentialExponent = math.Min(math.Max(v, minExponent), maxExponent)
	m.status = fmt.Sprintf("potential exponent: %.1f", m.layers.PotentialExponent)
}

// moveCursor moves by one terminal cell worth of grid cells, dragging the
// held charge along.
func (m *Model) moveCursor(dx, dy int) {
	nx, ny := m.sim.Dims()
	sx := max(1, nx/max(1, m.settings.Cols))
	sy := max(1, ny/max(1, m.settings.Rows))
	m.cursorX = min(max(m.cursorX+dx*sx, 0), nx-1)
	m.cursorY = min(max(m.cursorY+dy*sy, 0), ny-1)
	m.cursorHistory = m.cursorHistory[:0]

	if _, held := m.sim.Selected(); held {
		if err := m.sim.Drag(float64(m.cursorX), float64(m.cursorY)); err != nil {
			m.status = err.Error()
		}
	}
}

func (m *Model) setMode(mode Mode) {
	if mode != ModeMove {
		m.sim.Release()
	}
	m.mode = mode
	m.status = "mode: " + mode.String()
}

func (m *Model) apply() {
	x, y := m.cursorX, m.cursorY
	fx, fy := float64(x), float64(y)

	switch m.mode {
	case ModePulse:
		m.sim.InjectPulse(x, y, m.settings.Magnitude)
		m.status = fmt.Sprintf("pulse at (%d, %d)", x, y)
	case ModePositive:
		m.sim.AddCharge(x, y, m.settings.Magnitude)
		m.status = fmt.Sprintf("+%.1f at (%d, %d)", m.settings.Magnitude, x, y)
	case ModeNegative:
		m.sim.AddCharge(x, y, -m.settings.Magnitude)
		m.status = fmt.Sprintf("-%.1f at (%d, %d)", m.settings.Magnitude, x, y)
	case ModeMove:
		if _, held := m.sim.Selected(); held {
			m.sim.Release()
			m.status = "released"
			return
		}
		id, err := m.sim.Select(fx, fy, m.settings.SelectRadius)
		if err != nil {
			m.status = "no charge in reach"
			return
		}
		m.status = fmt.Sprintf("holding charge %d", id)
	case ModeErase:
		if c, ok := m.sim.RemoveNearestCharge(fx, fy, m.settings.EraseRadius); ok {
			m.status = fmt.Sprintf("erased charge %d", c.ID)
		} else {
			m.status = "no charge in reach"
		}
	}
}

// toggleOscillation flips the charge nearest the cursor between static and
// oscillating, keeping its base magnitude.
func (m *Model) toggleOscillation() {
	var target *charge.Charge
	best := m.settings.SelectRadius
	for _, c := range m.sim.Charges() {
		if d := c.Distance(float64(m.cursorX), float64(m.cursorY)); d < best {
			best = d
			target = &c
		}
	}
	if target == nil {
		m.status = "no charge in reach"
		return
	}

	if target.Oscillating {
		if err := m.sim.SetStatic(target.ID); err != nil {
			m.status = err.Error()
			return
		}
		m.status = fmt.Sprintf("charge %d static", target.ID)
		return
	}

	freq := m.settings.Frequency
	if err := m.sim.SetOscillating(target.ID, target.BaseMagnitude, freq); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("charge %d oscillating at %.3f", target.ID, freq)
}

func (m *Model) scaleDt(factor float64) {
	p := m.sim.Params()
	if err := m.sim.SetParameters(p.Dt*factor, p.Dx); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("dt = %.3f", p.Dt*factor)
}

func (m *Model) scaleDx(factor float64) {
	p := m.sim.Params()
	if err := m.sim.SetParameters(p.Dt, p.Dx*factor); err != nil {
		if errors.Is(err, sim.ErrGridTooSmall) {
			m.status = "grid too small"
		} else {
			m.status = err.Error()
		}
		return
	}
	nx, ny := m.sim.Dims()
	m.cursorX = min(max(int(float64(m.cursorX)/factor), 0), nx-1)
	m.cursorY = min(max(int(float64(m.cursorY)/factor), 0), ny-1)
	m.status = fmt.Sprintf("dx = %.3f (charges cleared)", p.Dx*factor)
}

// Scene collects the current frame from the simulation.
func (m Model) Scene() Scene {
	snap := m.sim.Snapshot()
	_, held := m.sim.Selected()
	sc := Scene{
		NX:      snap.NX,
		NY:      snap.NY,
		Ez:      snap.Ez,
		Charges: m.sim.Charges(),
		Cursor:  Cursor{X: m.cursorX, Y: m.cursorY, Visible: true, Held: held},
	}
	if m.layers.Potential {
		sc.Potential = m.sim.PotentialMap()
	}
	if m.layers.Lines {
		sc.Lines = m.sim.TraceFieldLines(m.settings.Density)
	}
	return sc
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// View renders the field and the stats panel.
func (m Model) View() string {
	field := canvasStyle.Render(RenderScene(m.Scene(), m.settings.Cols, m.settings.Rows, m.layers))

	var s strings.Builder
	s.WriteString(headerStyle.Render("FIELDSIM") + "\n")
	if m.running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	p := m.sim.Params()
	nx, ny := m.sim.Dims()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", m.sim.Time())) + "\n")
	s.WriteString(labelStyle.Render("dt") + valueStyle.Render(fmt.Sprintf("%.3f", p.Dt)) + "\n")
	s.WriteString(labelStyle.Render("dx") + valueStyle.Render(fmt.Sprintf("%.3f", p.Dx)) + "\n")
	s.WriteString(labelStyle.Render("Grid") + valueStyle.Render(fmt.Sprintf("%dx%d", nx, ny)) + "\n")
	s.WriteString(labelStyle.Render("Charges") + valueStyle.Render(fmt.Sprintf("%d", len(m.sim.Charges()))) + "\n")
	s.WriteString(labelStyle.Render("Cursor") + valueStyle.Render(fmt.Sprintf("(%d, %d)", m.cursorX, m.cursorY)) + "\n")
	s.WriteString(labelStyle.Render("Potential") + valueStyle.Render(fmt.Sprintf("%.3f", m.sim.PotentialAt(float64(m.cursorX), float64(m.cursorY)))) + "\n\n")

	s.WriteString(CFLPanel(m.sim.CFLStatus()) + "\n\n")

	s.WriteString("MODE\n")
	for i, name := range modeNames {
		line := fmt.Sprintf("%d %s", i+1, name)
		if Mode(i) == m.mode {
			s.WriteString(activeStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}
	s.WriteString(fmt.Sprintf("\nwaves %s  potential %s  lines %s\n",
		onOff(m.layers.Waves), onOff(m.layers.Potential), onOff(m.layers.Lines)))
	s.WriteString(fmt.Sprintf("density %d  magnitude %.0f  exponent %.1f\n",
		m.settings.Density, m.settings.Magnitude, m.layers.PotentialExponent))

	s.WriteString("\n" + labelStyle.Render("Ez") + Sparkline(m.cursorHistory, sparklineWidth) + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + valueStyle.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause Enter:Apply 1-5:Mode Q:Quit\nW/P/L:Layers +-:dt []:dx ?:Help\nd/D:Density m/M:Magnitude e/E:Exponent"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, field, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  .        - Step once while paused   ║
║  Arrows   - Move cursor (or hjkl)    ║
║  Enter    - Apply mode at cursor     ║
║  1-5      - Pulse/+/-/Move/Erase     ║
║  W P L    - Waves/Potential/Lines    ║
║  O        - Toggle oscillation       ║
║  R        - Reset fields             ║
║  X        - Reset everything         ║
║  + -      - Scale dt                 ║
║  [ ]      - Scale dx (clears charges)║
║  d D      - Fewer/more field lines   ║
║  m M      - Lower/raise magnitude    ║
║  e E      - Potential exponent -/+   ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
