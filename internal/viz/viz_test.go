package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fieldsim/internal/fieldlines"
	"github.com/san-kum/fieldsim/internal/grid"
	"github.com/san-kum/fieldsim/internal/sim"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if got := c.Cell(0, 0); got != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", got)
	}
	if got := c.Cell(1, 0); got != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", got)
	}
	if c.String() != "⠁⢀\n" {
		t.Errorf("unexpected render %q", c.String())
	}

	c.Clear()
	if !c.Blank(0, 0) || !c.Blank(1, 0) {
		t.Error("clear left pixels set")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for col := 0; col < 4; col++ {
		if got := c.Cell(col, 0); got != 0x2809 {
			t.Errorf("cell %d = %U, want U+2809", col, got)
		}
	}
}

func TestDrawFieldLines(t *testing.T) {
	c := NewCanvas(10, 5)
	line := fieldlines.Line{Points: []fieldlines.Point{{X: 0, Y: 0}, {X: 9.9, Y: 0}}}
	c.DrawFieldLines([]fieldlines.Line{line}, 10, 10)
	for col := 0; col < 10; col++ {
		if c.Blank(col, 0) {
			t.Errorf("cell %d not drawn", col)
		}
	}
	for col := 0; col < 10; col++ {
		if !c.Blank(col, 1) {
			t.Errorf("row 1 cell %d drawn", col)
		}
	}
}

func TestDownsample(t *testing.T) {
	b := grid.NewBuffer(4, 4)
	b.Set(0, 0, 1)
	b.Set(1, 1, -3)
	b.Set(3, 3, 2)

	got := Downsample(4, 4, 2, 2, b.At)
	want := []float64{-3, 0, 0, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("downsample = %v, want %v", got, want)
		}
	}

	if Downsample(0, 4, 2, 2, b.At) != nil {
		t.Error("empty grid should give nil")
	}

	up := Downsample(2, 2, 4, 4, b.At)
	if len(up) != 16 || up[0] != 1 || up[15] != -3 {
		t.Errorf("upsample = %v", up)
	}
}

func TestCompress(t *testing.T) {
	tests := []struct {
		v, scale, exp, want float64
	}{
		{0, 1, 0.5, 0},
		{1, 1, 0.5, 1},
		{-4, 4, 0.5, -1},
		{0.25, 1, 0.5, 0.5},
		{0.25, 1, 0, 0.5},
		{0.25, 1, 1, 0.25},
		{-0.5, 1, 2, -0.25},
		{5, 1, 2, 1},
		{1, 0, 0.5, 0},
	}
	for _, tt := range tests {
		if got := compress(tt.v, tt.scale, tt.exp); got != tt.want {
			t.Errorf("compress(%v, %v, %v) = %v, want %v", tt.v, tt.scale, tt.exp, got, tt.want)
		}
	}
}

func TestRenderSceneShape(t *testing.T) {
	s, err := sim.New(100, 50, sim.Params{Dt: 2, Dx: 5})
	if err != nil {
		t.Fatal(err)
	}
	s.AddCharge(5, 5, 10)
	s.AddCharge(15, 5, -10)

	snap := s.Snapshot()
	sc := Scene{
		NX:      snap.NX,
		NY:      snap.NY,
		Ez:      snap.Ez,
		Charges: s.Charges(),
		Lines:   s.TraceFieldLines(6),
	}

	out := RenderScene(sc, 20, 10, Layers{Lines: true})
	rows := strings.Split(out, "\n")
	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(rows))
	}
	if !strings.Contains(out, "+") || !strings.Contains(out, "-") {
		t.Error("charges not drawn")
	}

	if RenderScene(sc, 0, 10, Layers{}) != "" {
		t.Error("zero columns should render nothing")
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func newTestModel(t *testing.T) (Model, *sim.Simulation) {
	t.Helper()
	s, err := sim.New(100, 100, sim.Params{Dt: 2, Dx: 5})
	if err != nil {
		t.Fatal(err)
	}
	settings := DefaultSettings()
	settings.Cols, settings.Rows = 20, 20
	return NewModel(s, settings), s
}

func TestModelAddAndErase(t *testing.T) {
	m, s := newTestModel(t)

	m = press(m, "2", "enter")
	charges := s.Charges()
	if len(charges) != 1 || charges[0].X != 10 || charges[0].Y != 10 || !charges[0].Positive() {
		t.Fatalf("expected positive charge at (10, 10), got %+v", charges)
	}

	m = press(m, "3", "right", "enter")
	charges = s.Charges()
	if len(charges) != 2 || charges[1].X != 11 || charges[1].Magnitude != -10 {
		t.Fatalf("expected negative charge at (11, 10), got %+v", charges)
	}

	m = press(m, "5", "enter")
	if n := len(s.Charges()); n != 1 {
		t.Fatalf("expected one charge left, got %d", n)
	}
	if m.mode != ModeErase {
		t.Errorf("mode = %v", m.mode)
	}
}

func TestModelMoveLease(t *testing.T) {
	m, s := newTestModel(t)
	s.AddCharge(10, 10, 5)

	m = press(m, "4", "enter")
	if _, held := s.Selected(); !held {
		t.Fatal("expected charge held")
	}

	m = press(m, "right", "right")
	if c := s.Charges()[0]; c.X != 12 || c.Y != 10 {
		t.Errorf("charge at (%d, %d), want (12, 10)", c.X, c.Y)
	}

	m = press(m, "enter")
	if _, held := s.Selected(); held {
		t.Error("expected release")
	}

	m = press(m, "4", "enter", "1")
	if _, held := s.Selected(); held {
		t.Error("switching mode should release")
	}
}

func TestModelPulseAndStep(t *testing.T) {
	m, s := newTestModel(t)

	m = press(m, " ", "enter")
	if m.running {
		t.Fatal("space should pause")
	}
	if got := s.Snapshot().Ez.At(10, 10); got != 10 {
		t.Fatalf("pulse wrote %v", got)
	}

	m = press(m, ".")
	if s.Time() != 2 {
		t.Errorf("time = %v after one step", s.Time())
	}
	if len(m.energyHistory) != 1 || m.energyHistory[0] <= 0 {
		t.Errorf("energy history = %v", m.energyHistory)
	}

	next, _ := m.Update(TickMsg{})
	if s.Time() != 2 || next.(Model).running {
		t.Error("paused model should not tick")
	}
}

func TestModelParameters(t *testing.T) {
	m, s := newTestModel(t)
	s.AddCharge(3, 3, 1)

	m = press(m, "+")
	if p := s.Params(); p.Dt <= 2 || p.Dx != 5 {
		t.Errorf("params after + = %+v", p)
	}
	if len(s.Charges()) != 1 {
		t.Error("dt change should keep charges")
	}

	m = press(m, "]")
	if p := s.Params(); p.Dx <= 5 {
		t.Errorf("params after ] = %+v", p)
	}
	if len(s.Charges()) != 0 {
		t.Error("dx change should clear charges")
	}
	nx, ny := s.Dims()
	if m.cursorX >= nx || m.cursorY >= ny {
		t.Errorf("cursor (%d, %d) outside %dx%d", m.cursorX, m.cursorY, nx, ny)
	}
}

func TestModelToggles(t *testing.T) {
	m, s := newTestModel(t)
	s.AddCharge(10, 10, 4)

	m = press(m, "w", "p", "L")
	if m.layers.Waves || !m.layers.Potential || m.layers.Lines {
		t.Errorf("layers = %+v", m.layers)
	}

	m = press(m, "o")
	if c := s.Charges()[0]; !c.Oscillating || c.BaseMagnitude != 4 {
		t.Errorf("expected oscillating charge, got %+v", c)
	}
	m = press(m, "o")
	if c := s.Charges()[0]; c.Oscillating || c.Magnitude != 4 {
		t.Errorf("expected static charge, got %+v", c)
	}

	if !strings.Contains(m.View(), "FIELDSIM") {
		t.Error("view missing header")
	}
}

func TestMode(t *testing.T) {
	if ModeMove.String() != "move" || Mode(9).String() != "unknown" {
		t.Error("unexpected mode names")
	}
}

func countSparkRunes(s string) int {
	n := 0
	for _, r := range s {
		if r >= '▁' && r <= '█' {
			n++
		}
	}
	return n
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 0.5, 1}, 3)
	for _, want := range []string{"▁", "▄", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("sparkline %q missing %q", out, want)
		}
	}

	values := make([]float64, 10)
	for i := range values {
		values[i] = float64(i)
	}
	if got := countSparkRunes(Sparkline(values, 5)); got != 5 {
		t.Errorf("sampled sparkline has %d bars, want 5", got)
	}
	if got := countSparkRunes(Sparkline([]float64{2, 2}, 8)); got != 2 {
		t.Errorf("short series has %d bars, want 2", got)
	}

	if Sparkline(nil, 4) != "────" {
		t.Errorf("empty sparkline = %q", Sparkline(nil, 4))
	}
}

func TestModelCursorHistory(t *testing.T) {
	m, s := newTestModel(t)
	m = press(m, " ", "enter")

	m = press(m, ".", ".", ".")
	if len(m.cursorHistory) != 3 {
		t.Fatalf("history length = %d, want 3", len(m.cursorHistory))
	}
	if got, want := m.cursorHistory[2], s.FieldAt(10, 10); got != want {
		t.Errorf("last sample = %v, want %v", got, want)
	}
	if !strings.Contains(m.View(), "Ez") {
		t.Error("view missing cursor chart")
	}

	m = press(m, "right")
	if len(m.cursorHistory) != 0 {
		t.Error("moving the cursor should restart the history")
	}
}

func TestModelTunables(t *testing.T) {
	m, s := newTestModel(t)
	s.AddCharge(10, 10, 5)

	m = press(m, "D", "D")
	if m.settings.Density != 8 {
		t.Errorf("density = %d, want 8", m.settings.Density)
	}
	if got := len(m.Scene().Lines); got != 8 {
		t.Errorf("traced %d lines, want 8", got)
	}
	for i := 0; i < 20; i++ {
		m = press(m, "d")
	}
	if m.settings.Density != 1 {
		t.Errorf("density floor = %d, want 1", m.settings.Density)
	}

	m = press(m, "M", "M", "M", "2", "enter")
	if m.settings.Magnitude != 13 {
		t.Errorf("magnitude = %v, want 13", m.settings.Magnitude)
	}
	if c := s.Charges()[1]; c.Magnitude != 13 {
		t.Errorf("new charge magnitude = %v, want 13", c.Magnitude)
	}
	for i := 0; i < 20; i++ {
		m = press(m, "m")
	}
	if m.settings.Magnitude != 1 {
		t.Errorf("magnitude floor = %v, want 1", m.settings.Magnitude)
	}

	m = press(m, "1", "enter")
	if got := s.FieldAt(10, 10); got != 1 {
		t.Errorf("pulse magnitude = %v, want 1", got)
	}

	m = press(m, "E", "E")
	if m.layers.PotentialExponent != 0.7 {
		t.Errorf("exponent = %v, want 0.7", m.layers.PotentialExponent)
	}
	for i := 0; i < 40; i++ {
		m = press(m, "e")
	}
	if m.layers.PotentialExponent != minExponent {
		t.Errorf("exponent floor = %v, want %v", m.layers.PotentialExponent, minExponent)
	}
	for i := 0; i < 40; i++ {
		m = press(m, "E")
	}
	if m.layers.PotentialExponent != maxExponent {
		t.Errorf("exponent ceiling = %v, want %v", m.layers.PotentialExponent, maxExponent)
	}
}
