package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"28500", "R$ 28.500,00"},
		{"342000", "R$ 342.000,00"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"-71500.5", "-R$ 71.500,50"},
		{"999", "R$ 999,00"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, FormatBRL(d))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "28,5%", FormatPercent(decimal.RequireFromString("0.285")))
	assert.Equal(t, "0,0%", FormatPercent(decimal.Zero))
	assert.Equal(t, "100,0%", FormatPercent(decimal.RequireFromString("1")))
}

func TestValidationCodeIsStableAndBound(t *testing.T) {
	at := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	a := ValidationCode("UC-0001", at, "secret")
	b := ValidationCode("UC-0001", at, "secret")
	assert.Equal(t, a, b)
	assert.Len(t, a, 12)

	assert.NotEqual(t, a, ValidationCode("UC-0002", at, "secret"))
	assert.NotEqual(t, a, ValidationCode("UC-0001", at.Add(time.Second), "secret"))
	assert.NotEqual(t, a, ValidationCode("UC-0001", at, "other"))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "Industria_Exemplo_Ltda", SanitizeFileName("Industria Exemplo Ltda"))
	assert.Equal(t, "Acme__Cia", SanitizeFileName("Acme & Cia!"))
	assert.Equal(t, "", SanitizeFileName("   "))
	assert.Equal(t, "", SanitizeFileName("!!!"))
}
