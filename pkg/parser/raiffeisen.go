package parser

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/spentlog/importer/pkg/common"
	"github.com/spentlog/importer/pkg/database"
	"github.com/spentlog/importer/pkg/moneyparse"
)

// Raiffeisen CSV exports start with a variable-length metadata preamble
// (account holder, IBAN, period). The real header row is located by scanning
// for a line carrying both header tokens, then the document is re-sliced from
// that line forward and parsed by header name.
type Raiffeisen struct {
}

func NewRaiffeisen() *Raiffeisen {
	return &Raiffeisen{}
}

func (r *Raiffeisen) Type() database.TransactionSource {
	return database.Raiffeisen
}

const (
	raiffeisenDateColumn     = "Дата операції"
	raiffeisenDetailsColumn  = "Деталі операції"
	raiffeisenAmountColumn   = "Сума"
	raiffeisenCurrencyColumn = "Валюта"
)

func (r *Raiffeisen) ParseStatement(
	_ context.Context,
	data []byte,
) ([]*Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(common.ErrUnreadableFile, "raiffeisen csv: %v", err)
	}

	headerIndex := -1
	for idx, row := range rows {
		if lo.Contains(row, raiffeisenDateColumn) && lo.Contains(row, raiffeisenAmountColumn) {
			headerIndex = idx
			break
		}
	}

	if headerIndex == -1 {
		return nil, errors.WithStack(common.ErrHeaderNotFound)
	}

	columns := map[string]int{}
	for idx, name := range rows[headerIndex] {
		columns[strings.TrimSpace(name)] = idx
	}

	var records []*Record

	for _, row := range rows[headerIndex+1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			break
		}

		record := &Record{
			Raw: strings.Join(row, ";"),
		}

		amount := moneyparse.Parse(row[columns[raiffeisenAmountColumn]])
		if amount.GreaterThanOrEqual(decimal.Zero) {
			continue
		}

		date, dateErr := r.parseDate(row[columns[raiffeisenDateColumn]])
		if dateErr != nil {
			record.ParsingError = dateErr
			records = append(records, record)
			continue
		}

		record.Date = date
		record.Amount = amount.Abs()
		record.Currency = strings.ToUpper(strings.TrimSpace(row[columns[raiffeisenCurrencyColumn]]))
		record.Description = CleanDescription(row[columns[raiffeisenDetailsColumn]])

		records = append(records, record)
	}

	return records, nil
}

func (r *Raiffeisen) parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	for _, layout := range []string{"02.01.2006 15:04", "02.01.2006"} {
		if date, err := time.Parse(layout, raw); err == nil {
			return date, nil
		}
	}

	return time.Time{}, errors.Newf("raiffeisen date %s", raw)
}
