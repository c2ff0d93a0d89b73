package parser

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"time"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/spentlog/importer/pkg/common"
	"github.com/spentlog/importer/pkg/database"
	"github.com/spentlog/importer/pkg/moneyparse"
)

// Revolut account statements have a stable positional layout:
// Type,Product,Started Date,Completed Date,Description,Amount,Fee,Currency,State,Balance
type Revolut struct {
}

func NewRevolut() *Revolut {
	return &Revolut{}
}

func (r *Revolut) Type() database.TransactionSource {
	return database.Revolut
}

var revolutSupportedStates = []string{"COMPLETED", "PENDING"}

func (r *Revolut) ParseStatement(
	_ context.Context,
	data []byte,
) ([]*Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(common.ErrUnreadableFile, "revolut csv: %v", err)
	}

	if len(rows) <= 1 {
		return nil, errors.New("empty file")
	}

	var records []*Record

	for _, row := range rows[1:] { // first row is the header sentinel
		if len(row) == 0 || row[0] == "" {
			break
		}

		record, skip := r.parseRow(row)
		if skip {
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

func (r *Revolut) parseRow(row []string) (*Record, bool) {
	record := &Record{
		Raw: strings.Join(row, ","),
	}

	if len(row) < 9 {
		record.ParsingError = errors.Newf("expected at least 9 fields, got %d", len(row))
		return record, false
	}

	if !lo.Contains(revolutSupportedStates, row[8]) {
		return nil, true // REVERTED and friends never settle
	}

	amount := moneyparse.Parse(row[5])
	if amount.GreaterThanOrEqual(decimal.Zero) {
		return nil, true
	}

	completedAt := strings.TrimFunc(row[3], func(r rune) bool {
		return !unicode.IsGraphic(r)
	})

	date, dateErr := time.Parse("2006-01-02 15:04:05", completedAt)
	if dateErr != nil {
		record.ParsingError = errors.Wrapf(dateErr, "revolut date %s", row[3])
		return record, false
	}

	fee := moneyparse.Parse(row[6])

	record.Date = date
	record.Amount = amount.Abs().Add(fee.Abs())
	record.Currency = strings.ToUpper(row[7])
	record.Description = CleanDescription(row[0] + "." + row[4])

	return record, false
}
