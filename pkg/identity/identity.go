// Package identity derives the stable external id used to detect re-imports
// of the same underlying transaction. The hash input is an explicit,
// provider-tagged field order; the date is truncated to day granularity, so
// providers whose natural key can collide within one statement must supply a
// sequence number.
package identity

import (
	"crypto/sha512"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spentlog/importer/pkg/database"
)

type Input struct {
	Source      database.TransactionSource
	UserID      int64
	Date        time.Time
	Description string
	Amount      decimal.Decimal

	Sequence    int
	HasSequence bool
}

const fieldSeparator = "$$"

// Generate is deterministic: the same Input always yields the same id, byte
// for byte.
func Generate(input Input) string {
	fields := []string{
		string(input.Source),
		strconv.FormatInt(input.UserID, 10),
		input.Date.Format(time.DateOnly),
		normalizeDescription(input.Description),
		input.Amount.Abs().StringFixed(2),
	}

	if input.HasSequence {
		fields = append(fields, strconv.Itoa(input.Sequence))
	}

	return hashKey(strings.Join(fields, fieldSeparator))
}

func normalizeDescription(description string) string {
	return strings.Join(strings.Fields(strings.ToLower(description)), " ")
}

func hashKey(bv string) string {
	shaImpl := sha512.New()
	shaImpl.Write([]byte(bv))

	return fmt.Sprintf("%x", shaImpl.Sum(nil))
}
