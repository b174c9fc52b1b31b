package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/sdgft/internal/background"
	"github.com/san-kum/sdgft/internal/config"
	"github.com/san-kum/sdgft/internal/params"
	"github.com/san-kum/sdgft/internal/viz"
)

// knob is one adjustable parameter and its arrow-key step.
type knob struct {
	name string
	step float64
}

var knobs = []knob{
	{"theta_max", 1},
	{"d_asymptotic", 0.05},
	{"xi_g", 0.001},
	{"beta", 0.01},
	{"alpha", 0.1},
	{"h", 0.01},
	{"omega_cdm", 0.01},
	{"omega_k", 0.01},
	{"omega_l", 0.01},
}

// summary holds the observables shown next to the parameter list.
type summary struct {
	H0Input float64
	H0Early float64
	H0Late  float64
	Tension float64
	AgeGyr  float64
	Skipped int
	Q0      float64
	Curve   []float64
}

// Model is the explorer state. It recomputes the background on every
// accepted parameter change.
type Model struct {
	base   *config.Config
	cfg    *config.Config
	consts params.Constants

	cursor  int
	editing bool
	input   textinput.Model

	keys  keyMap
	help  help.Model
	theme viz.Theme
	style viz.Styles

	sum summary
	err error

	width int
}

// New returns an explorer starting from cfg; r resets to cfg.
func New(cfg *config.Config) Model {
	ti := textinput.New()
	ti.CharLimit = 24
	ti.Width = 16
	ti.Prompt = "› "

	m := Model{
		base:   cfg.Clone(),
		cfg:    cfg.Clone(),
		consts: params.DefaultConstants(),
		input:  ti,
		keys:   defaultKeys(),
		help:   help.New(),
		theme:  viz.ThemeCosmic,
		style:  viz.NewStyles(viz.ThemeCosmic),
		width:  80,
	}
	m.sum, m.err = m.evaluate(m.cfg)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg)
		}
		return m.navKey(msg)
	}
	return m, nil
}

func (m Model) navKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(knobs)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Left):
		m = m.adjust(-knobs[m.cursor].step)
	case key.Matches(msg, m.keys.Right):
		m = m.adjust(knobs[m.cursor].step)
	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.input.SetValue(strconv.FormatFloat(m.value(m.cursor), 'g', -1, 64))
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Reset):
		m.cfg = m.base.Clone()
		m.sum, m.err = m.evaluate(m.cfg)
	case key.Matches(msg, m.keys.Theme):
		m.theme = viz.NextTheme(m.theme.Name)
		m.style = viz.NewStyles(m.theme)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		v, err := strconv.ParseFloat(strings.TrimSpace(m.input.Value()), 64)
		if err != nil {
			m.err = fmt.Errorf("%s: %w", knobs[m.cursor].name, err)
			return m, nil
		}
		return m.set(v), nil
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) value(i int) float64 {
	p, err := m.cfg.Param(knobs[i].name)
	if err != nil {
		return 0
	}
	return *p
}

func (m Model) adjust(delta float64) Model {
	return m.set(m.value(m.cursor) + delta)
}

// set applies v to the selected knob. Values that fail validation or make
// the background unphysical are rejected and the previous config is kept.
func (m Model) set(v float64) Model {
	next, err := m.cfg.With(map[string]float64{knobs[m.cursor].name: v})
	if err != nil {
		m.err = err
		return m
	}
	sum, err := m.evaluate(next)
	if err != nil {
		m.err = err
		return m
	}
	m.cfg, m.sum, m.err = next, sum, nil
	return m
}

func (m Model) evaluate(cfg *config.Config) (summary, error) {
	s, err := background.New(cfg.Model, cfg.Cosmology, cfg.Numerics, m.consts)
	if err != nil {
		return summary{}, err
	}
	t, err := s.ResolveTension()
	if err != nil {
		return summary{}, err
	}
	age, err := s.Age()
	if err != nil {
		return summary{}, err
	}
	q0, err := s.Deceleration(1)
	if err != nil {
		return summary{}, err
	}
	c, err := viz.HubbleCurve(context.Background(), s, cfg.Plot.MaxZ, 40, 0)
	if err != nil {
		return summary{}, err
	}
	return summary{
		H0Input: s.KmPerSecPerMpc(s.H0()),
		H0Early: t.Early,
		H0Late:  t.Late,
		Tension: t.Percent,
		AgeGyr:  age.Gyr(),
		Skipped: age.Skipped,
		Q0:      q0,
		Curve:   c.Y,
	}, nil
}

func (m Model) View() string {
	st := m.style
	var b strings.Builder

	b.WriteString("\n  " + st.Title.Render("scale-dependent gravity explorer") + "\n")
	b.WriteString("  " + viz.Separator(44) + "\n\n")

	for i, k := range knobs {
		val := fmt.Sprintf("%10.4g", m.value(i))
		if m.editing && i == m.cursor {
			b.WriteString("  " + st.Selected.Render("▸ ") + fmt.Sprintf("%-14s", k.name) + m.input.View() + "\n")
			continue
		}
		if i == m.cursor {
			b.WriteString("  " + st.Selected.Render("▸ "+fmt.Sprintf("%-14s", k.name)) + st.MetricValue.Render(val) + "\n")
		} else {
			b.WriteString("    " + st.Subtle.Render(fmt.Sprintf("%-14s", k.name)) + val + "\n")
		}
	}

	b.WriteString("\n")
	metrics := []struct{ label, value string }{
		{"H0 input", fmt.Sprintf("%.2f km/s/Mpc", m.sum.H0Input)},
		{"H0 early", fmt.Sprintf("%.2f km/s/Mpc", m.sum.H0Early)},
		{"H0 late", fmt.Sprintf("%.2f km/s/Mpc", m.sum.H0Late)},
		{"tension", fmt.Sprintf("%.1f %%", m.sum.Tension)},
		{"age", fmt.Sprintf("%.2f Gyr", m.sum.AgeGyr)},
		{"q0", fmt.Sprintf("%.3f", m.sum.Q0)},
	}
	for _, mt := range metrics {
		b.WriteString("  " + st.Metric(mt.label, mt.value, 12) + "\n")
	}
	if m.sum.Skipped > 0 {
		b.WriteString("  " + st.Warn.Render(fmt.Sprintf("%d age samples skipped", m.sum.Skipped)) + "\n")
	}
	b.WriteString("  " + st.MetricLabel.Render(fmt.Sprintf("%-12s", "H(z)")) + st.Title.Render(viz.Sparkline(m.sum.Curve, 40)) + "\n")

	if m.err != nil {
		b.WriteString("\n  " + st.Bad.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n  " + m.help.View(m.keys) + "\n")
	return b.String()
}

// Config returns the parameters currently shown.
func (m Model) Config() *config.Config {
	return m.cfg.Clone()
}

// Run starts the explorer on the alternate screen.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
