package rates

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/spentlog/importer/pkg/common"
	"github.com/spentlog/importer/pkg/database"
)

// Resolver answers "what was the sale rate of this currency on this date":
// among the stored rates effective at or before the date, the most recent one
// wins. The stored rate is a foreign→base multiplier: uah = foreign * rate.
//
// A missing historical rate is never defaulted to 1: a silent 1:1 conversion
// corrupts every report downstream, so callers get ErrRateNotFound and must
// exclude the record from the batch.
type Resolver struct {
	lookup Lookup
}

func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{
		lookup: lookup,
	}
}

func (r *Resolver) Resolve(
	ctx context.Context,
	currency string,
	asOf time.Time,
) (decimal.Decimal, error) {
	if currency == database.BaseCurrency {
		return decimal.NewFromInt(1), nil
	}

	candidates, err := r.lookup.RatesBefore(ctx, currency, asOf)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "resolve %s at %s",
			currency, asOf.Format(time.DateOnly))
	}

	if len(candidates) == 0 {
		return decimal.Zero, errors.Wrapf(common.ErrRateNotFound, "%s at %s",
			currency, asOf.Format(time.DateOnly))
	}

	latest := lo.MaxBy(candidates, func(a database.ExchangeRate, b database.ExchangeRate) bool {
		return a.EffectiveDate.After(b.EffectiveDate)
	})

	return latest.SaleRate, nil
}
