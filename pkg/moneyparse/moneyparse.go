package moneyparse

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Parse converts a locale-ambiguous amount string into a signed decimal.
// Separator disambiguation, applied in this priority order:
//
//	space + comma  -> space is thousands, comma is decimal
//	comma + dot    -> comma is thousands, dot is decimal
//	comma only     -> comma is decimal
//	space only     -> space is thousands
//
// Parse never fails: irrecoverable input yields zero and a warn log, the
// caller decides whether zero is acceptable.
func Parse(raw string) decimal.Decimal {
	cleaned, negative := normalize(raw)
	if cleaned == "" {
		log.Warn().Str("raw", raw).Msg("amount string has no digits")
		return decimal.Zero
	}

	hasSpace := strings.Contains(cleaned, " ")
	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")

	switch {
	case hasSpace && hasComma:
		cleaned = strings.ReplaceAll(cleaned, " ", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case hasComma && hasDot:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case hasComma:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case hasSpace:
		cleaned = strings.ReplaceAll(cleaned, " ", "")
	}

	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		log.Warn().Err(err).Str("raw", raw).Msg("failed to parse amount")
		return decimal.Zero
	}

	if negative {
		return parsed.Neg()
	}

	return parsed
}

// normalize strips currency symbols and everything that is not a digit or a
// separator. Non-breaking and narrow spaces count as thousands spaces.
func normalize(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	negative := strings.HasPrefix(trimmed, "-")

	var sb strings.Builder
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ',' || r == '.':
			sb.WriteRune(r)
		case r == ' ' || r == '\u00a0' || r == '\u202f':
			if sb.Len() > 0 { // leading spaces are not separators
				sb.WriteRune(' ')
			}
		}
	}

	return strings.TrimSpace(sb.String()), negative
}
