package rates

import (
	"context"
	"time"

	"github.com/spentlog/importer/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package rates_test -source=interfaces.go

type Lookup interface {
	// RatesBefore returns every stored rate for the currency whose effective
	// date is at or before asOf, in no particular order.
	RatesBefore(
		ctx context.Context,
		currency string,
		asOf time.Time,
	) ([]database.ExchangeRate, error)
}
