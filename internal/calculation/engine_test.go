package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniquecreditos/taxsim-service/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func baseInput() models.SimulationInput {
	return models.SimulationInput{
		CompanyName:        "Indústria Exemplo Ltda",
		TaxTypes:           []string{"PIS/COFINS"},
		MonthlyTaxAmount:   dec("100000"),
		PeriodMonths:       12,
		CreditUsagePercent: dec("95"),
		FeePercent:         dec("70"),
	}
}

func TestComputeReferenceScenario(t *testing.T) {
	result := Compute(baseInput())

	assert.True(t, result.CreditAmount.Equal(dec("95000")), "credit: %s", result.CreditAmount)
	assert.True(t, result.FeeAmount.Equal(dec("66500")), "fee: %s", result.FeeAmount)
	assert.True(t, result.NewMonthlyTotal.Equal(dec("71500")), "new total: %s", result.NewMonthlyTotal)
	assert.True(t, result.MonthlySavings.Equal(dec("28500")), "monthly savings: %s", result.MonthlySavings)
	assert.True(t, result.TotalSavings.Equal(dec("342000")), "total savings: %s", result.TotalSavings)
	require.True(t, result.SavingsPercentDefined)
	assert.True(t, result.SavingsPercent.Equal(dec("0.285")), "savings percent: %s", result.SavingsPercent)
}

func TestComputeInvariants(t *testing.T) {
	cases := []struct {
		name    string
		monthly string
		period  int
		credit  string
		fee     string
	}{
		{"reference", "100000", 12, "95", "70"},
		{"low credit", "8500.50", 24, "30", "50"},
		{"full credit no fee", "12000", 6, "100", "0"},
		{"fractional percents", "77777.77", 36, "82.5", "61.3"},
		{"single month", "1", 1, "1", "1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := models.SimulationInput{
				MonthlyTaxAmount:   dec(tc.monthly),
				PeriodMonths:       tc.period,
				CreditUsagePercent: dec(tc.credit),
				FeePercent:         dec(tc.fee),
			}
			r := Compute(input)

			assert.True(t, r.CreditAmount.LessThanOrEqual(r.MonthlyAmount), "creditAmount ≤ monthlyAmount")
			assert.True(t, r.FeeAmount.LessThanOrEqual(r.CreditAmount), "feeAmount ≤ creditAmount")
			assert.True(t, r.MonthlySavings.Equal(r.MonthlyAmount.Sub(r.NewMonthlyTotal)),
				"monthlySavings = monthlyAmount − newMonthlyTotal")
			assert.True(t, r.TotalSavings.Equal(r.MonthlySavings.Mul(decimal.NewFromInt(int64(tc.period)))),
				"totalSavings = monthlySavings × periodMonths")
		})
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	input := baseInput()
	first := Compute(input)
	second := Compute(input)
	assert.Equal(t, first, second)
}

func TestComputeZeroMonthlyAmount(t *testing.T) {
	input := baseInput()
	input.MonthlyTaxAmount = decimal.Zero

	result := Compute(input)

	assert.False(t, result.SavingsPercentDefined)
	assert.True(t, result.SavingsPercent.IsZero())
	assert.True(t, result.MonthlySavings.IsZero())
	assert.True(t, result.TotalSavings.IsZero())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.SimulationInput)
		ok     bool
	}{
		{"valid", func(i *models.SimulationInput) {}, true},
		{"zero monthly allowed", func(i *models.SimulationInput) { i.MonthlyTaxAmount = decimal.Zero }, true},
		{"negative monthly", func(i *models.SimulationInput) { i.MonthlyTaxAmount = dec("-1") }, false},
		{"zero period", func(i *models.SimulationInput) { i.PeriodMonths = 0 }, false},
		{"credit above 100", func(i *models.SimulationInput) { i.CreditUsagePercent = dec("100.1") }, false},
		{"negative fee", func(i *models.SimulationInput) { i.FeePercent = dec("-5") }, false},
		{"boundary percents", func(i *models.SimulationInput) {
			i.CreditUsagePercent = dec("100")
			i.FeePercent = dec("0")
		}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := baseInput()
			tc.mutate(&input)
			err := Validate(input)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestAnnualizedROI(t *testing.T) {
	result := Compute(baseInput())
	roi, ok := AnnualizedROI(result)
	require.True(t, ok)
	// 342000 × 12 / 12 / 66500
	assert.True(t, roi.Sub(dec("5.142857142857")).Abs().LessThan(dec("0.000001")), "roi: %s", roi)

	input := baseInput()
	input.FeePercent = decimal.Zero
	_, ok = AnnualizedROI(Compute(input))
	assert.False(t, ok)
}
