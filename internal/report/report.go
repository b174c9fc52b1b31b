package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/san-kum/sdgft/internal/analysis"
	"github.com/san-kum/sdgft/internal/automation"
	"github.com/san-kum/sdgft/internal/fixedpoint"
	"github.com/san-kum/sdgft/internal/flow"
	"github.com/san-kum/sdgft/internal/optim"
	"github.com/san-kum/sdgft/internal/storage"
	"github.com/san-kum/sdgft/internal/viz"
)

// Section renders a heading: a lipgloss header for ASCII output or a
// level-two heading for Markdown.
func Section(m Mode, title string) string {
	if m == Markdown {
		return "## " + title
	}
	return viz.DefaultStyles.Section(title)
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Flow tabulates a trajectory, one row per checkpoint.
func Flow(m Mode, grid []float64, states []flow.State) (string, error) {
	if len(grid) != len(states) {
		return "", fmt.Errorf("report: %d checkpoints for %d states", len(grid), len(states))
	}
	t := NewTable(m)
	t.Header(append([]string{"chi"}, flow.Labels()...)...)
	for i, s := range states {
		row := []any{num(grid[i])}
		for _, v := range s.Vector() {
			row = append(row, num(v))
		}
		t.Row(row...)
	}
	t.RightAlign(1, flow.Dim+1)
	return t.String(), nil
}

// FixedPoints lists accepted and rejected roots. exponents, when non-nil,
// holds a stability exponent per accepted point.
func FixedPoints(m Mode, r fixedpoint.Result, exponents []float64) string {
	t := NewTable(m)
	t.Header("status", "chi", "D*", "G*", "Lambda*", "|beta_D|", "|D*-D_inf|", "lambda_max")
	for i, p := range r.Points {
		exp := math.NaN()
		if i < len(exponents) {
			exp = exponents[i]
		}
		t.Row("accepted", num(p.Chi), num(p.State.D), num(p.State.G), num(p.State.Lambda), num(p.Residual), num(p.Distance), num(exp))
	}
	for _, p := range r.Rejected {
		t.Row("rejected", num(p.Chi), num(p.State.D), num(p.State.G), num(p.State.Lambda), num(p.Residual), num(p.Distance), "-")
	}
	t.Footer("total", "", "", "", "", "", fmt.Sprintf("%d/%d", len(r.Points), len(r.Points)+len(r.Rejected)), "")
	t.RightAlign(2, 8)
	return t.String()
}

// Predictions prints one quantity per row.
func Predictions(m Mode, p analysis.Predictions) string {
	t := NewTable(m)
	t.Header("quantity", "value")
	rows := []struct {
		name string
		v    float64
	}{
		{"H0 early [km/s/Mpc]", p.H0Early},
		{"H0 late [km/s/Mpc]", p.H0Late},
		{"tension [%]", p.TensionPercent},
		{"r", p.R},
		{"beta_iso", p.BetaIso},
		{"m_betabeta [meV]", p.MBetaBetaMeV},
		{"eta_B", p.EtaB},
		{"D_inf", p.DAsymptotic},
		{"theta_max [deg]", p.ThetaMax},
		{"n_s", p.Ns},
		{"sigma_8", p.Sigma8},
		{"S_8", p.S8},
		{"age [Gyr]", p.AgeGyr},
	}
	for _, r := range rows {
		t.Row(r.name, num(r.v))
	}
	t.RightAlign(2, 2)
	return t.String()
}

func Comparisons(m Mode, cs []analysis.Comparison) string {
	t := NewTable(m)
	t.Header("quantity", "dataset", "predicted", "observed", "sigma", "compatible")
	for _, c := range cs {
		t.Row(c.Quantity, c.Dataset, num(c.Predicted), num(c.Observed), fmt.Sprintf("%.2f", c.Sigma), yesNo(c.Compatible))
	}
	t.RightAlign(3, 5)
	return t.String()
}

func Detections(m Mode, ds []analysis.Detection) string {
	t := NewTable(m)
	t.Header("quantity", "experiment", "predicted", "sensitivity", "sigma", "P(discovery)", "detectable")
	for _, d := range ds {
		t.Row(d.Quantity, d.Experiment, num(d.Predicted), num(d.Sensitivity),
			fmt.Sprintf("%.2f", d.Sigma), fmt.Sprintf("%.0f%%", 100*d.DiscoveryProbability()), yesNo(d.Detectable))
	}
	t.RightAlign(3, 6)
	return t.String()
}

func Criteria(m Mode, cs []analysis.Criterion) string {
	t := NewTable(m)
	t.Header("quantity", "prediction", "falsified below", "falsified above", "test", "year")
	for _, c := range cs {
		t.Row(c.Quantity, num(c.Prediction), num(c.Below), num(c.Above), c.Test, c.Year)
	}
	t.RightAlign(2, 4)
	return t.String()
}

// Runs lists stored runs in the order given.
func Runs(m Mode, runs []storage.RunMetadata) string {
	t := NewTable(m)
	t.Header("id", "preset", "time", "integrator", "steps", "chi range", "points")
	for _, r := range runs {
		t.Row(r.ID, r.Preset, r.Timestamp.Format("2006-01-02 15:04:05"), r.Integrator, r.Steps,
			fmt.Sprintf("%s .. %s", num(r.ChiStart), num(r.ChiEnd)), r.Points)
	}
	t.Footer("", "", "", "", "", "runs", len(runs))
	return t.String()
}

// KeyValues renders a two-column table with keys sorted.
func KeyValues(m Mode, header [2]string, kv map[string]float64) string {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	t := NewTable(m)
	t.Header(header[0], header[1])
	for _, k := range keys {
		t.Row(k, num(kv[k]))
	}
	t.RightAlign(2, 2)
	return t.String()
}

// Scan lists the best limit grid points of a parameter scan; failed
// points are counted in the footer.
func Scan(m Mode, axes []optim.Axis, r optim.Result, limit int) string {
	t := NewTable(m)
	header := []string{"rank"}
	for _, ax := range axes {
		header = append(header, ax.Name)
	}
	t.Header(append(header, "objective")...)

	rank := 0
	for _, p := range r.Points {
		if p.Err != nil || (limit > 0 && rank >= limit) {
			continue
		}
		rank++
		row := []any{rank}
		for _, ax := range axes {
			row = append(row, num(p.Params[ax.Name]))
		}
		t.Row(append(row, num(p.Value))...)
	}
	footer := make([]any, len(axes)+2)
	footer[0] = "failed"
	footer[len(footer)-1] = r.Failed
	t.Footer(footer...)
	t.RightAlign(2, len(axes)+2)
	return t.String()
}

var summaryHeader = []string{"H0 early", "H0 late", "tension [%]", "age [Gyr]", "S_8", "m_bb [meV]"}

func summaryRow(p analysis.Predictions) []any {
	return []any{
		fmt.Sprintf("%.2f", p.H0Early),
		fmt.Sprintf("%.2f", p.H0Late),
		fmt.Sprintf("%.1f", p.TensionPercent),
		fmt.Sprintf("%.2f", p.AgeGyr),
		fmt.Sprintf("%.3f", p.S8),
		fmt.Sprintf("%.2f", p.MBetaBetaMeV),
	}
}

// Scenario summarizes the predictions of each scenario step.
func Scenario(m Mode, results []automation.StepResult) string {
	t := NewTable(m)
	t.Header(append(append([]string{"step"}, summaryHeader...), "run")...)
	for _, r := range results {
		row := append([]any{r.Name}, summaryRow(r.Predictions)...)
		t.Row(append(row, r.RunID)...)
	}
	t.RightAlign(2, len(summaryHeader)+1)
	return t.String()
}

// Sweep summarizes a one-parameter sweep; failed values show their error.
func Sweep(m Mode, param string, results []automation.SweepResult) string {
	t := NewTable(m)
	t.Header(append([]string{param}, summaryHeader...)...)
	for _, r := range results {
		if r.Err != nil {
			t.Row(num(r.ParamValue), r.Err.Error())
			continue
		}
		t.Row(append([]any{num(r.ParamValue)}, summaryRow(r.Predictions)...)...)
	}
	t.RightAlign(1, len(summaryHeader)+1)
	return t.String()
}
