package parser

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/spentlog/importer/pkg/common"
	"github.com/spentlog/importer/pkg/database"
	"github.com/spentlog/importer/pkg/moneyparse"
)

// Wise exports carry a fixed header on the first line; columns are addressed
// by name since Wise reorders them between account types.
type Wise struct {
}

func NewWise() *Wise {
	return &Wise{}
}

func (w *Wise) Type() database.TransactionSource {
	return database.Wise
}

const wiseDateFormat = "02-01-2006"

func (w *Wise) ParseStatement(
	_ context.Context,
	data []byte,
) ([]*Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(common.ErrUnreadableFile, "wise csv: %v", err)
	}

	if len(rows) < 2 {
		return nil, errors.New("empty file")
	}

	columns := map[string]int{}
	for idx, name := range rows[0] {
		columns[strings.TrimSpace(name)] = idx
	}

	for _, required := range []string{"Date", "Amount", "Currency", "Description"} {
		if _, ok := columns[required]; !ok {
			return nil, errors.Wrapf(common.ErrHeaderNotFound, "wise column %s", required)
		}
	}

	var records []*Record

	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		record := &Record{
			Raw: strings.Join(row, ","),
		}

		amount := moneyparse.Parse(row[columns["Amount"]])
		if amount.GreaterThanOrEqual(decimal.Zero) {
			continue // incoming or zero, only outflows are imported
		}

		date, dateErr := time.Parse(wiseDateFormat, strings.TrimSpace(row[columns["Date"]]))
		if dateErr != nil {
			record.ParsingError = errors.Wrapf(dateErr, "wise date %s", row[columns["Date"]])
			records = append(records, record)
			continue
		}

		record.Date = date
		record.Amount = amount.Abs()
		record.Currency = strings.ToUpper(strings.TrimSpace(row[columns["Currency"]]))
		record.Description = CleanDescription(row[columns["Description"]])

		if idx, ok := columns["Payee Name"]; ok && record.Description == "" {
			record.Description = CleanDescription(row[idx])
		}

		records = append(records, record)
	}

	return records, nil
}
