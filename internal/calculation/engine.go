// Package calculation implements the savings engine: a pure mapping from
// simulation inputs to derived financial metrics. All arithmetic is decimal;
// rounding and currency formatting are presentation concerns of the report
// renderer, never of this package.
package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/uniquecreditos/taxsim-service/internal/apperrors"
	"github.com/uniquecreditos/taxsim-service/internal/models"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Validate checks the input ranges before a simulation is accepted. The
// engine itself has no error conditions; this is the boundary check handlers
// run on user-supplied data.
func Validate(input models.SimulationInput) error {
	if input.MonthlyTaxAmount.IsNegative() {
		return apperrors.NewValidation("valor mensal de tributos não pode ser negativo")
	}
	if input.PeriodMonths < 1 {
		return apperrors.NewValidation("período deve ser de pelo menos 1 mês")
	}
	if input.CreditUsagePercent.IsNegative() || input.CreditUsagePercent.GreaterThan(hundred) {
		return apperrors.NewValidation("percentual de crédito deve estar entre 0 e 100")
	}
	if input.FeePercent.IsNegative() || input.FeePercent.GreaterThan(hundred) {
		return apperrors.NewValidation("percentual de honorários deve estar entre 0 e 100")
	}
	return nil
}

// Compute derives the simulation metrics. Pure and synchronous: identical
// inputs always produce identical results.
//
//	creditAmount    = monthly × creditPercent/100
//	feeAmount       = creditAmount × feePercent/100
//	newMonthlyTotal = feeAmount + monthly × (1 − creditPercent/100)
//	monthlySavings  = monthly − newMonthlyTotal
//	totalSavings    = monthlySavings × periodMonths
//	savingsPercent  = monthlySavings / monthly
//
// A zero monthly amount leaves SavingsPercent undefined; the result flags
// that instead of propagating a division by zero.
func Compute(input models.SimulationInput) models.SimulationResult {
	creditFraction := input.CreditUsagePercent.Div(hundred)
	creditAmount := input.MonthlyTaxAmount.Mul(creditFraction)
	feeAmount := creditAmount.Mul(input.FeePercent.Div(hundred))
	newMonthlyTotal := feeAmount.Add(input.MonthlyTaxAmount.Mul(one.Sub(creditFraction)))
	monthlySavings := input.MonthlyTaxAmount.Sub(newMonthlyTotal)
	totalSavings := monthlySavings.Mul(decimal.NewFromInt(int64(input.PeriodMonths)))

	result := models.SimulationResult{
		MonthlyAmount:   input.MonthlyTaxAmount,
		CreditAmount:    creditAmount,
		FeeAmount:       feeAmount,
		NewMonthlyTotal: newMonthlyTotal,
		MonthlySavings:  monthlySavings,
		TotalSavings:    totalSavings,
		PeriodMonths:    input.PeriodMonths,
	}
	if !input.MonthlyTaxAmount.IsZero() {
		result.SavingsPercent = monthlySavings.Div(input.MonthlyTaxAmount)
		result.SavingsPercentDefined = true
	}
	return result
}

// AnnualizedROI returns total savings normalized to twelve months over the
// monthly advisory fee, as a fraction (5.14 = 514%). The second return is
// false when the ratio is undefined (zero fee or zero period).
func AnnualizedROI(result models.SimulationResult) (decimal.Decimal, bool) {
	if result.FeeAmount.IsZero() || result.PeriodMonths == 0 {
		return decimal.Zero, false
	}
	period := decimal.NewFromInt(int64(result.PeriodMonths))
	return result.TotalSavings.Mul(twelve).Div(period).Div(result.FeeAmount), true
}
