package report

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/uniquecreditos/taxsim-service/internal/models"
)

// Chart rasterization is kept separate from PDF layout: these functions take
// simulation numbers and return finished PNG bytes, nothing else. The
// renderer embeds the images without knowing how they were drawn.

// monthlyCompositionChart draws the donut splitting one month of the proposed
// scenario into direct payment, advisory fee and net savings.
func monthlyCompositionChart(result models.SimulationResult, theme models.Theme) ([]byte, error) {
	slices := []struct {
		label string
		value decimal.Decimal
		color drawing.Color
	}{
		{"Pagamento direto", result.NewMonthlyTotal.Sub(result.FeeAmount), colorFromHex(theme.SecondaryColor)},
		{"Honorários", result.FeeAmount, drawing.Color{R: 148, G: 163, B: 184, A: 255}},
		{"Economia líquida", result.MonthlySavings, colorFromHex(theme.PrimaryColor)},
	}

	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		v := s.value.InexactFloat64()
		if v <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: v,
			Label: s.label,
			Style: chart.Style{FillColor: s.color, StrokeColor: s.color, FontColor: drawing.Color{R: 51, G: 65, B: 85, A: 255}},
		})
	}
	// Nothing positive to plot (e.g. a zero-amount simulation). The caller
	// renders a placeholder note instead of failing the whole report.
	if len(values) == 0 {
		return nil, nil
	}

	donut := chart.DonutChart{
		Width:  520,
		Height: 520,
		Values: values,
	}

	var buf bytes.Buffer
	if err := donut.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("renderizar gráfico de composição: %w", err)
	}
	return buf.Bytes(), nil
}

// cumulativeSavingsChart draws the month-by-month accumulated savings for the
// first min(12, periodMonths) months.
func cumulativeSavingsChart(result models.SimulationResult, theme models.Theme) ([]byte, error) {
	months := result.PeriodMonths
	if months > 12 {
		months = 12
	}
	if months < 1 {
		return nil, fmt.Errorf("período inválido para projeção: %d meses", result.PeriodMonths)
	}
	if !result.MonthlySavings.IsPositive() {
		return nil, nil
	}

	barColor := colorFromHex(theme.PrimaryColor)
	bars := make([]chart.Value, 0, months)
	for m := 1; m <= months; m++ {
		accumulated := result.MonthlySavings.Mul(decimal.NewFromInt(int64(m)))
		bars = append(bars, chart.Value{
			Value: accumulated.InexactFloat64(),
			Label: fmt.Sprintf("M%d", m),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
	}

	bar := chart.BarChart{
		Width:    900,
		Height:   420,
		BarWidth: 48,
		XAxis:    chart.Style{},
		YAxis: chart.YAxis{
			Style: chart.Style{},
			ValueFormatter: func(v interface{}) string {
				f, ok := v.(float64)
				if !ok {
					return ""
				}
				return fmt.Sprintf("R$ %.0fk", f/1000)
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bar.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("renderizar gráfico de economia acumulada: %w", err)
	}
	return buf.Bytes(), nil
}

// colorFromHex parses "#rrggbb"; unparseable input falls back to slate gray
// so a bad theme never breaks chart rendering.
func colorFromHex(hex string) drawing.Color {
	if len(hex) == 7 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return drawing.Color{R: 100, G: 116, B: 139, A: 255}
	}
	return drawing.ColorFromHex(hex)
}
