package parser

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spentlog/importer/pkg/database"
)

// Record is a single raw statement row after provider-specific extraction.
// Amounts are expense magnitudes; credit rows never leave the parsers.
// A Record with ParsingError set carries no usable fields besides Raw.
type Record struct {
	Date        time.Time
	Description string

	// Amount is the magnitude in Currency. Zero with a non-zero
	// SettledAmount means the statement only carried the settled side and
	// the original amount must be back-derived from the exchange rate.
	Amount   decimal.Decimal
	Currency string

	// SettledAmount is the magnitude already settled in the base currency,
	// for rows where the statement shows both sides of a conversion.
	SettledAmount decimal.Decimal

	// MCC is the merchant category code, 0 when the provider has none.
	MCC int

	// Sequence disambiguates rows whose (date, description, amount) can
	// collide within one statement. Only set when HasSequence is true.
	Sequence    int
	HasSequence bool

	Raw          string
	ParsingError error
}

type Parser interface {
	Type() database.TransactionSource

	ParseStatement(
		ctx context.Context,
		data []byte,
	) ([]*Record, error)
}

// DefaultRegistry maps every supported provider to its parser. Adding a
// provider means adding an entry here, checked at compile time.
func DefaultRegistry() map[database.TransactionSource]Parser {
	return map[database.TransactionSource]Parser{
		database.Wise:       NewWise(),
		database.Privat:     NewPrivat(),
		database.Revolut:    NewRevolut(),
		database.Pumb:       NewPumb(),
		database.Erste:      NewErste(),
		database.Raiffeisen: NewRaiffeisen(),
	}
}
