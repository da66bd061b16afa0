package models

import "github.com/shopspring/decimal"

// SimulationInput carries the parameters of one savings simulation.
// It is immutable per calculation and re-created on every edit.
type SimulationInput struct {
	CompanyName        string          `json:"company_name"`
	TaxTypes           []string        `json:"tax_types"`
	MonthlyTaxAmount   decimal.Decimal `json:"monthly_tax_amount"`
	PeriodMonths       int             `json:"period_months"`
	CreditUsagePercent decimal.Decimal `json:"credit_usage_percent"`
	FeePercent         decimal.Decimal `json:"fee_percent"`
}

// SimulationResult holds the metrics derived from a SimulationInput.
type SimulationResult struct {
	MonthlyAmount   decimal.Decimal `json:"monthly_amount"`
	CreditAmount    decimal.Decimal `json:"credit_amount"`
	FeeAmount       decimal.Decimal `json:"fee_amount"`
	NewMonthlyTotal decimal.Decimal `json:"new_monthly_total"`
	MonthlySavings  decimal.Decimal `json:"monthly_savings"`
	TotalSavings    decimal.Decimal `json:"total_savings"`
	// SavingsPercent is a fraction (0.285 = 28.5%). It is meaningless when
	// MonthlyAmount is zero; SavingsPercentDefined guards that case.
	SavingsPercent        decimal.Decimal `json:"savings_percent"`
	SavingsPercentDefined bool            `json:"savings_percent_defined"`
	PeriodMonths          int             `json:"period_months"`
}
