package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatBRL formats a monetary value in Brazilian convention:
// "R$ 1.234.567,89". Rounding to centavos happens here, never in the
// calculation engine.
func FormatBRL(value decimal.Decimal) string {
	s := value.StringFixed(2)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var grouped strings.Builder
	n := len(intPart)
	for i, c := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(c)
	}

	out := "R$ " + grouped.String() + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatPercent formats a fraction as a percentage with one decimal place,
// e.g. 0.285 → "28,5%".
func FormatPercent(fraction decimal.Decimal) string {
	s := fraction.Mul(decimal.NewFromInt(100)).StringFixed(1)
	return strings.Replace(s, ".", ",", 1) + "%"
}

// ValidationCode derives the report footer's verification token from the
// report number and generation time. Truncated HMAC-SHA256, uppercase hex.
func ValidationCode(reportNumber string, generatedAt time.Time, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(reportNumber + generatedAt.UTC().Format(time.RFC3339)))
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil))[:12])
}

// SanitizeFileName reduces a display name to a safe file-name fragment:
// spaces become underscores, anything outside [A-Za-z0-9_-] is dropped.
// Returns "" when nothing survives; callers pick their own default.
func SanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ReplaceAll(strings.TrimSpace(name), " ", "_") {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
