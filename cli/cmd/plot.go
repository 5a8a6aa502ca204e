package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"

	"github.com/entap/expr/lang"
	"github.com/entap/expr/log"
)

// Plot sweeps a parameter over [min, max] and evaluates up to three
// coordinate expressions at each sample.
//
// Every expression is compiled once. A sample whose evaluation fails is
// skipped and logged at warn level; the remaining samples are printed.
type Plot struct {
	bindings `embed:""`

	X       string  `help:"Expression for the x coordinate." required:"" short:"x"`
	Y       string  `help:"Expression for the y coordinate."             short:"y"`
	Z       string  `help:"Expression for the z coordinate."             short:"z"`
	Param   string  `default:"t"     help:"Name of the swept parameter."`
	Min     float64 `default:"0"     help:"First parameter value."`
	Max     float64 `default:"1"     help:"Last parameter value."`
	Samples int     `default:"101"   help:"Number of evenly spaced samples."       short:"n"`
	Format  string  `default:"table" enum:"table,csv,json,yaml" help:"Output format: ${enum}." short:"o"`
}

type axis struct {
	name string
	expr *lang.Expression
}

type sample struct {
	param  float64
	values []lang.Value
}

// Run executes the plot command.
func (p *Plot) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if p.Samples < 1 || math.IsNaN(p.Min) || math.IsNaN(p.Max) {
		return ErrSampleRange.With(
			slog.Int("samples", p.Samples),
			slog.Float64("min", p.Min),
			slog.Float64("max", p.Max),
		)
	}

	if !isIdentifier(p.Param) {
		return ErrBadVariable.With(slog.String("param", p.Param))
	}

	axes, err := p.compile()
	if err != nil {
		return err
	}

	vars, err := p.variables(ctx)
	if err != nil {
		return err
	}

	samples := p.sweep(ctx, axes, vars)

	log.DebugContext(ctx, "plot sweep",
		slog.Int("samples", p.Samples),
		slog.Int("kept", len(samples)),
	)

	return p.write(ctx, outputFrom(ctx), axes, samples)
}

func (p *Plot) compile() ([]axis, error) {
	var axes []axis

	for _, a := range []struct{ name, src string }{
		{"x", p.X}, {"y", p.Y}, {"z", p.Z},
	} {
		if a.src == "" {
			continue
		}

		expr, err := lang.Compile(a.src, compileOptions()...)
		if err != nil {
			return nil, ErrEvaluate.With(slog.String("axis", a.name)).Wrap(err)
		}

		axes = append(axes, axis{name: a.name, expr: expr})
	}

	return axes, nil
}

// at returns the i-th of n evenly spaced values in [min, max].
func (p *Plot) at(i int) float64 {
	if p.Samples == 1 {
		return p.Min
	}

	return p.Min + (p.Max-p.Min)*float64(i)/float64(p.Samples-1)
}

func (p *Plot) sweep(ctx context.Context, axes []axis, vars map[string]lang.Value) []sample {
	env := make(map[string]lang.Value, len(vars)+1)
	for k, v := range vars {
		env[k] = v
	}

	b := p.binding(env)
	out := make([]sample, 0, p.Samples)

samples:
	for i := range p.Samples {
		if ctx.Err() != nil {
			break
		}

		s := sample{param: p.at(i), values: make([]lang.Value, len(axes))}
		env[p.Param] = lang.NumberValue(s.param)

		for j, a := range axes {
			v, err := a.expr.Evaluate(b)
			if err != nil {
				log.WarnContext(ctx, "skip sample",
					slog.String(p.Param, lang.NumberValue(s.param).String()),
					slog.String("axis", a.name),
					slog.Any("error", err),
				)

				continue samples
			}

			s.values[j] = v
		}

		out = append(out, s)
	}

	return out
}

func (p *Plot) header(axes []axis) []string {
	h := []string{p.Param}
	for _, a := range axes {
		h = append(h, a.name)
	}

	return h
}

func (s sample) cells() []string {
	row := []string{lang.NumberValue(s.param).String()}
	for _, v := range s.values {
		row = append(row, v.String())
	}

	return row
}

func (p *Plot) write(ctx context.Context, w io.Writer, axes []axis, samples []sample) error {
	header := p.header(axes)

	switch p.Format {
	case "csv":
		cw := csv.NewWriter(w)
		_ = cw.Write(header)

		for _, s := range samples {
			_ = cw.Write(s.cells())
		}

		cw.Flush()

		return cw.Error()

	case "json":
		rows := make([]map[string]any, len(samples))
		for i, s := range samples {
			rows[i] = make(map[string]any, len(header))
			for j, v := range s.raw() {
				rows[i][header[j]] = v
			}
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(rows); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		return nil

	case "yaml":
		rows := make([]yaml.MapSlice, len(samples))
		for i, s := range samples {
			for j, v := range s.raw() {
				rows[i] = append(rows[i], yaml.MapItem{Key: header[j], Value: v})
			}
		}

		data, err := yaml.MarshalContext(ctx, rows)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(data)

		return err

	default:
		rows := make([][]string, len(samples))
		for i, s := range samples {
			rows[i] = s.cells()
		}

		cell := lipgloss.NewStyle().Padding(0, 1)
		head := cell.Bold(true)

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(header...).
			Rows(rows...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return head
				}

				return cell
			})

		_, err := io.WriteString(w, t.Render()+"\n")

		return err
	}
}

// raw returns the row as JSON-compatible values. Non-finite numbers become
// their text form.
func (s sample) raw() []any {
	row := []any{finite(lang.NumberValue(s.param))}
	for _, v := range s.values {
		row = append(row, finite(v))
	}

	return row
}

func finite(v lang.Value) any {
	if v.Kind() == lang.KindNumber {
		n := v.AsNumber()
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return v.String()
		}
	}

	return v.Raw()
}
