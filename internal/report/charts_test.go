package report

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniquecreditos/taxsim-service/internal/models"
)

func chartResult(periodMonths int) models.SimulationResult {
	return models.SimulationResult{
		MonthlyAmount:         decimal.NewFromInt(100000),
		CreditAmount:          decimal.NewFromInt(95000),
		FeeAmount:             decimal.NewFromInt(66500),
		NewMonthlyTotal:       decimal.NewFromInt(71500),
		MonthlySavings:        decimal.NewFromInt(28500),
		TotalSavings:          decimal.NewFromInt(342000),
		SavingsPercent:        decimal.NewFromFloat(0.285),
		SavingsPercentDefined: true,
		PeriodMonths:          periodMonths,
	}
}

func defaultTheme() models.Theme {
	return models.Theme{PrimaryColor: "#3b82f6", SecondaryColor: "#64748b", ShowWatermark: true}
}

func TestMonthlyCompositionChartProducesPNG(t *testing.T) {
	data, err := monthlyCompositionChart(chartResult(12), defaultTheme())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 520, img.Bounds().Dx())
	assert.Equal(t, 520, img.Bounds().Dy())
}

func TestMonthlyCompositionChartSkipsZeroSlices(t *testing.T) {
	result := chartResult(12)
	result.FeeAmount = decimal.Zero

	data, err := monthlyCompositionChart(result, defaultTheme())
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestMonthlyCompositionChartAllZero(t *testing.T) {
	result := models.SimulationResult{PeriodMonths: 12}
	data, err := monthlyCompositionChart(result, defaultTheme())
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestCumulativeSavingsChartZeroSavings(t *testing.T) {
	result := chartResult(12)
	result.MonthlySavings = decimal.Zero

	data, err := cumulativeSavingsChart(result, defaultTheme())
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestCumulativeSavingsChartCapsAtTwelveMonths(t *testing.T) {
	for _, period := range []int{1, 6, 12, 24} {
		data, err := cumulativeSavingsChart(chartResult(period), defaultTheme())
		require.NoError(t, err, "period %d", period)
		_, err = png.Decode(bytes.NewReader(data))
		require.NoError(t, err, "period %d", period)
	}
}

func TestCumulativeSavingsChartRejectsEmptyPeriod(t *testing.T) {
	_, err := cumulativeSavingsChart(chartResult(0), defaultTheme())
	assert.Error(t, err)
}

func TestColorFromHexFallback(t *testing.T) {
	c := colorFromHex("not-a-color")
	assert.Equal(t, uint8(100), c.R)

	c = colorFromHex("#3b82f6")
	assert.Equal(t, uint8(0x3b), c.R)
	assert.Equal(t, uint8(0x82), c.G)
	assert.Equal(t, uint8(0xf6), c.B)
}
