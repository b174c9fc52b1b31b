package tui

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/sdgft/internal/config"
	"github.com/san-kum/sdgft/internal/params"
)

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewEvaluates(t *testing.T) {
	m := New(config.DefaultConfig())
	if m.err != nil {
		t.Fatalf("default config: %v", m.err)
	}
	if math.Abs(m.sum.H0Late-76.06) > 0.1 || math.Abs(m.sum.Tension-20.8) > 0.2 {
		t.Errorf("late H0 %.2f tension %.2f", m.sum.H0Late, m.sum.Tension)
	}
	if len(m.sum.Curve) == 0 {
		t.Error("no H(z) curve")
	}
}

func TestCursorBounds(t *testing.T) {
	m := New(config.DefaultConfig())
	m = press(t, m, keyUp)
	if m.cursor != 0 {
		t.Errorf("cursor moved above top: %d", m.cursor)
	}
	for range knobs {
		m = press(t, m, keyDown)
	}
	if m.cursor != len(knobs)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(knobs)-1)
	}
	m = press(t, m, runes("k"))
	if m.cursor != len(knobs)-2 {
		t.Errorf("k should move up, cursor = %d", m.cursor)
	}
}

func TestAdjustRecomputes(t *testing.T) {
	m := New(config.DefaultConfig())
	before := m.sum.H0Input

	// h is the sixth knob.
	m = press(t, m, keyDown, keyDown, keyDown, keyDown, keyDown, keyRight)
	if got := m.Config().Cosmology.H; math.Abs(got-0.684) > 1e-12 {
		t.Fatalf("h = %g, want 0.684", got)
	}
	if !(m.sum.H0Input > before) {
		t.Errorf("H0 did not increase: %g -> %g", before, m.sum.H0Input)
	}

	m = press(t, m, keyLeft)
	if math.Abs(m.sum.H0Input-before) > 1e-9 {
		t.Errorf("round trip H0 %g, want %g", m.sum.H0Input, before)
	}
}

func TestInvalidValueRejected(t *testing.T) {
	m := New(config.DefaultConfig())
	want := m.Config().Model.DAsymptotic

	m = press(t, m, keyDown, keyEnter) // d_asymptotic
	m.input.SetValue("3.5")
	m = press(t, m, keyEnter)
	if !errors.Is(m.err, params.ErrParameterBounds) {
		t.Fatalf("err = %v, want ErrParameterBounds", m.err)
	}
	if d := m.Config().Model.DAsymptotic; d != want {
		t.Errorf("rejected D_inf was applied: %g", d)
	}

	m = press(t, m, keyUp, keyRight)
	if m.err != nil {
		t.Errorf("valid adjustment should clear the error, got %v", m.err)
	}
}

func TestEditValue(t *testing.T) {
	m := New(config.DefaultConfig())
	m = press(t, m, keyEnter)
	if !m.editing {
		t.Fatal("enter should start editing")
	}
	m.input.SetValue("")
	m = press(t, m, runes("45"), keyEnter)
	if m.editing {
		t.Error("enter should finish editing")
	}
	if got := m.Config().Model.ThetaMax; got != 45 {
		t.Errorf("theta_max = %g, want 45", got)
	}

	m = press(t, m, keyEnter, keyEsc)
	if m.editing || m.Config().Model.ThetaMax != 45 {
		t.Error("esc should cancel without changes")
	}

	m = press(t, m, keyEnter)
	m.input.SetValue("abc")
	m = press(t, m, keyEnter)
	if m.err == nil || m.Config().Model.ThetaMax != 45 {
		t.Errorf("unparsable input: err = %v", m.err)
	}
}

func TestResetThemeHelp(t *testing.T) {
	cfg := config.DefaultConfig()
	m := New(cfg)
	m = press(t, m, keyRight, runes("r"))
	if m.Config().Model.ThetaMax != cfg.Model.ThetaMax {
		t.Error("reset did not restore the starting config")
	}

	theme := m.theme.Name
	m = press(t, m, runes("t"))
	if m.theme.Name == theme {
		t.Error("t should cycle the theme")
	}

	m = press(t, m, runes("?"))
	if !m.help.ShowAll {
		t.Error("? should expand help")
	}
}

func TestQuit(t *testing.T) {
	m := New(config.DefaultConfig())
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestView(t *testing.T) {
	m := New(config.DefaultConfig())
	out := m.View()
	for _, want := range []string{"theta_max", "omega_l", "H0 late", "tension"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
