package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of lipgloss styles derived from a Theme.
type Styles struct {
	Panel       lipgloss.Style
	Title       lipgloss.Style
	Header      lipgloss.Style
	Subtle      lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	Selected    lipgloss.Style
	KeyHint     lipgloss.Style
	Good        lipgloss.Style
	Warn        lipgloss.Style
	Bad         lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Subtle:      lipgloss.NewStyle().Foreground(t.Muted),
		MetricLabel: lipgloss.NewStyle().Foreground(t.Muted),
		MetricValue: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		KeyHint:     lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
		Good:        lipgloss.NewStyle().Foreground(t.Good),
		Warn:        lipgloss.NewStyle().Foreground(t.Warn),
		Bad:         lipgloss.NewStyle().Foreground(t.Bad),
	}
}

// DefaultStyles uses the cosmic theme.
var DefaultStyles = NewStyles(ThemeCosmic)

// Section renders a header line for a block of CLI output.
func (s Styles) Section(title string) string {
	return s.Header.Render(title)
}

// Metric renders "label value" with the label padded to width.
func (s Styles) Metric(label, value string, width int) string {
	if pad := width - lipgloss.Width(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	return s.MetricLabel.Render(label) + s.MetricValue.Render(value)
}

// Gauge renders a horizontal bar for a fraction in [0, 1].
func (s Styles) Gauge(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case fraction > 0.8:
		return s.Good.Render(bar)
	case fraction > 0.4:
		return s.Warn.Render(bar)
	}
	return s.Bad.Render(bar)
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as a width-wide row of block characters.
// Values are subsampled when there are more than width of them.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
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
		idx := int(norm * float64(len(sparkChars)-1))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

func Separator(width int) string {
	if width < 8 {
		return DefaultStyles.Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return DefaultStyles.Subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
