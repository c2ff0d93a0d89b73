package rates

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/spentlog/importer/pkg/database"
)

// NbuClient fetches official daily rates from the NBU statistics API.
type NbuClient struct {
	cl      *req.Client
	baseURL string
}

func NewNbuClient(
	baseURL string,
	cl *req.Client,
) *NbuClient {
	return &NbuClient{
		cl:      cl,
		baseURL: baseURL,
	}
}

type nbuRate struct {
	Rate         decimal.Decimal `json:"rate"`
	Code         string          `json:"cc"`
	ExchangeDate string          `json:"exchangedate"`
}

func (n *NbuClient) FetchRates(
	ctx context.Context,
	date time.Time,
	currencies []string,
) ([]database.ExchangeRate, error) {
	var apiResp []nbuRate

	resp, err := n.cl.R().
		SetContext(ctx).
		SetQueryParam("date", date.Format("20060102")).
		SetQueryParam("json", "").
		SetSuccessResult(&apiResp).
		Get(n.baseURL + "/NBUStatService/v1/statdirectory/exchange")
	if err != nil {
		return nil, err
	}

	if resp.IsErrorState() {
		return nil, errors.Newf("got error response: %s", resp.String())
	}

	var rates []database.ExchangeRate

	for _, rate := range apiResp {
		if len(currencies) > 0 && !lo.Contains(currencies, rate.Code) {
			continue
		}

		effective, parseErr := time.Parse("02.01.2006", rate.ExchangeDate)
		if parseErr != nil {
			return nil, errors.Wrapf(parseErr, "nbu exchangedate %s", rate.ExchangeDate)
		}

		rates = append(rates, database.ExchangeRate{
			Currency:      rate.Code,
			EffectiveDate: effective,
			SaleRate:      rate.Rate,
			UpdatedAt:     time.Now().UTC(),
		})
	}

	return rates, nil
}
