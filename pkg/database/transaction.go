package database

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionSource string

const (
	Wise       = TransactionSource("wise")
	Privat     = TransactionSource("p24")
	Revolut    = TransactionSource("revolut")
	Pumb       = TransactionSource("pumb")
	Erste      = TransactionSource("erste")
	Raiffeisen = TransactionSource("raiffeisen")
)

const BaseCurrency = "UAH"

// Transaction is the canonical record produced by the import pipeline.
// ExternalID is unique per (UserID, Source); re-importing the same statement
// derives the same id and the row is skipped on write.
type Transaction struct {
	ID               string            `gorm:"primaryKey" json:"id"`
	UserID           int64             `gorm:"index:transactions_identity_key,unique" json:"user_id"`
	Source           TransactionSource `gorm:"index:transactions_identity_key,unique" json:"source"`
	ExternalID       string            `gorm:"index:transactions_identity_key,unique" json:"external_id"`
	OccurredAt       time.Time         `json:"occurred_at"`
	CategoryID       int64             `json:"category_id"`
	Description      string            `json:"description"`
	AmountUAH        decimal.Decimal   `json:"amount_uah"`
	OriginalCurrency string            `json:"original_currency"`
	OriginalAmount   decimal.Decimal   `json:"original_amount"`
	IsDeleted        bool              `json:"is_deleted"`
	CreatedAt        time.Time         `json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// ExchangeRate rows are append-only and read-only for the pipeline; cmd/ratesync
// keeps them up to date.
type ExchangeRate struct {
	ID            int64           `gorm:"primaryKey"`
	Currency      string          `gorm:"index:exchange_rates_currency_date,unique"`
	EffectiveDate time.Time       `gorm:"type:date;index:exchange_rates_currency_date,unique"`
	SaleRate      decimal.Decimal
	UpdatedAt     time.Time
}

func (ExchangeRate) TableName() string {
	return "exchange_rates"
}

type Category struct {
	ID       int64 `gorm:"primaryKey"`
	UserID   int64
	Name     string
	ParentID *int64
}

func (Category) TableName() string {
	return "categories"
}

type MatchKind string

const (
	MatchDescriptionContains = MatchKind("description_contains")
	MatchMccRange            = MatchKind("mcc_range")
)

// CategoryRule is a user-defined classification override. Rules are evaluated
// in Position order; the first category match wins, MarksDeleted matches are
// collected independently.
type CategoryRule struct {
	ID               int64 `gorm:"primaryKey"`
	UserID           int64
	Position         int
	MatchKind        MatchKind
	Pattern          string
	TargetCategoryID int64
	MarksDeleted     bool
}

func (CategoryRule) TableName() string {
	return "category_rules"
}
