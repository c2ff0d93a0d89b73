package importer

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/spentlog/importer/pkg/classifier"
	"github.com/spentlog/importer/pkg/common"
	"github.com/spentlog/importer/pkg/database"
	"github.com/spentlog/importer/pkg/identity"
	"github.com/spentlog/importer/pkg/parser"
)

type Service struct {
	parsers map[database.TransactionSource]parser.Parser
	rules   RuleSource
	rates   RateResolver
	writer  Writer
}

type Config struct {
	Parsers map[database.TransactionSource]parser.Parser
	Rules   RuleSource
	Rates   RateResolver
	Writer  Writer
}

func NewService(cfg *Config) *Service {
	return &Service{
		parsers: cfg.Parsers,
		rules:   cfg.Rules,
		rates:   cfg.Rates,
		writer:  cfg.Writer,
	}
}

// Import runs the whole pipeline for one uploaded statement: parse, normalize
// every record, and in commit mode hand the batch to the writer. The stages
// are strictly sequential; cancellation is file-scoped.
func (s *Service) Import(
	ctx context.Context,
	request Request,
) (*Result, error) {
	statementParser, ok := s.parsers[request.Source]
	if !ok {
		return nil, errors.Wrapf(common.ErrUnsupportedProvider, "%s", request.Source)
	}

	records, err := statementParser.ParseStatement(ctx, request.Data)
	if err != nil {
		return nil, err
	}

	ruleSet, err := s.rules.GetRuleSet(ctx, request.UserID)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	for _, record := range records {
		if record.ParsingError != nil {
			zerolog.Ctx(ctx).Warn().Err(record.ParsingError).
				Str("raw", record.Raw).
				Msg("dropping unparsable record")
			result.Dropped++
			continue
		}

		item, normErr := s.normalize(ctx, request, ruleSet, record)
		if normErr != nil {
			return nil, normErr
		}

		result.Items = append(result.Items, item)
	}

	if request.Mode != ModeCommit {
		return result, nil
	}

	s.writeBatch(ctx, result)

	return result, nil
}

// normalize builds one canonical transaction from a raw record. A missing
// exchange rate is reported on the item, never defaulted to 1.
func (s *Service) normalize(
	ctx context.Context,
	request Request,
	ruleSet classifier.RuleSet,
	record *parser.Record,
) (*Item, error) {
	description := parser.CleanDescription(record.Description)

	categoryID, deleted := classifier.Classify(ruleSet, description, record.MCC)

	transaction := &database.Transaction{
		ID:               uuid.NewString(),
		UserID:           request.UserID,
		Source:           request.Source,
		OccurredAt:       record.Date,
		CategoryID:       categoryID,
		Description:      description,
		OriginalCurrency: record.Currency,
		OriginalAmount:   record.Amount,
		IsDeleted:        deleted,
		CreatedAt:        time.Now().UTC(),
	}

	item := &Item{
		Transaction: transaction,
	}

	// The hash input is the magnitude as it appears in the file, so the id
	// survives rate-table backfills.
	hashAmount := record.Amount
	if hashAmount.IsZero() {
		hashAmount = record.SettledAmount
	}

	transaction.ExternalID = identity.Generate(identity.Input{
		Source:      request.Source,
		UserID:      request.UserID,
		Date:        record.Date,
		Description: description,
		Amount:      hashAmount,
		Sequence:    record.Sequence,
		HasSequence: record.HasSequence,
	})

	switch {
	case record.Currency == database.BaseCurrency:
		transaction.AmountUAH = record.Amount
	case !record.SettledAmount.IsZero():
		transaction.AmountUAH = record.SettledAmount

		if record.Amount.IsZero() {
			// Statement carried only the settled side; back-derive the
			// original magnitude: foreign = uah / rate.
			rate, rateErr := s.rates.Resolve(ctx, record.Currency, record.Date)
			if rateErr != nil {
				if errors.Is(rateErr, common.ErrRateNotFound) {
					item.RateMissing = true
					return item, nil
				}
				return nil, rateErr
			}

			transaction.OriginalAmount = record.SettledAmount.DivRound(rate, 2)
		}
	default:
		rate, rateErr := s.rates.Resolve(ctx, record.Currency, record.Date)
		if rateErr != nil {
			if errors.Is(rateErr, common.ErrRateNotFound) {
				item.RateMissing = true
				return item, nil
			}
			return nil, rateErr
		}

		transaction.AmountUAH = record.Amount.Mul(rate).Round(2)
	}

	return item, nil
}

// writeBatch persists with at-most-once semantics per external id: one bulk
// insert, then a row-by-row fallback when the store aborts the whole batch on
// a single conflict. A duplicate row is a skip, not an error; any other
// per-row failure is reported and does not block the rest of the batch.
func (s *Service) writeBatch(ctx context.Context, result *Result) {
	writable := make([]*Item, 0, len(result.Items))
	for _, item := range result.Items {
		if !item.RateMissing {
			writable = append(writable, item)
		}
	}

	if len(writable) == 0 {
		return
	}

	batch := make([]*database.Transaction, 0, len(writable))
	for _, item := range writable {
		batch = append(batch, item.Transaction)
	}

	if err := s.writer.BulkInsert(ctx, batch); err == nil {
		for _, item := range writable {
			item.Persisted = true
		}
		result.Written = len(writable)

		return
	}

	for _, item := range writable {
		err := s.writer.InsertOne(ctx, item.Transaction)

		switch {
		case err == nil:
			item.Persisted = true
			result.Written++
		case errors.Is(err, common.ErrDuplicate):
			result.Skipped++
		default:
			item.WriteError = err.Error()
			result.Failed++

			zerolog.Ctx(ctx).Error().Err(err).
				Str("externalId", item.Transaction.ExternalID).
				Msg("failed to persist transaction")
		}
	}
}
