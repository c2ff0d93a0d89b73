package importer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spentlog/importer/pkg/classifier"
	"github.com/spentlog/importer/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package importer_test -source=interfaces.go

type RuleSource interface {
	GetRuleSet(ctx context.Context, userID int64) (classifier.RuleSet, error)
}

type RateResolver interface {
	Resolve(ctx context.Context, currency string, asOf time.Time) (decimal.Decimal, error)
}

type Writer interface {
	BulkInsert(ctx context.Context, transactions []*database.Transaction) error
	InsertOne(ctx context.Context, transaction *database.Transaction) error
}
