package parser

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/spentlog/importer/pkg/common"
	"github.com/spentlog/importer/pkg/database"
	"github.com/spentlog/importer/pkg/moneyparse"
)

// Privat parses the Privat24 xlsx export. The layout is positional:
//
//	0 Дата, 1 Час, 2 MCC, 3 Опис операції,
//	4 Сума в валюті картки, 5 Валюта картки,
//	6 Сума в валюті транзакції, 7 Валюта транзакції
//
// The first row with "Дата" in the first cell is the header sentinel; anything
// above it is report metadata.
type Privat struct {
}

func NewPrivat() *Privat {
	return &Privat{}
}

func (p *Privat) Type() database.TransactionSource {
	return database.Privat
}

const privatColumnCount = 8

func (p *Privat) ParseStatement(
	ctx context.Context,
	data []byte,
) ([]*Record, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, errors.Wrapf(common.ErrUnreadableFile, "p24 xlsx: %v", err)
	}

	if len(file.Sheets) == 0 {
		return nil, errors.New("no sheets found")
	}

	sheet := file.Sheets[0]

	headerIndex := -1
	for idx, row := range sheet.Rows {
		if len(row.Cells) > 0 && strings.TrimSpace(row.Cells[0].String()) == "Дата" {
			headerIndex = idx
			break
		}
	}

	if headerIndex == -1 {
		return nil, errors.WithStack(common.ErrHeaderNotFound)
	}

	var records []*Record

	for i := headerIndex + 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]

		if len(row.Cells) == 0 || strings.TrimSpace(row.Cells[0].String()) == "" {
			continue
		}

		record, skip := p.parseRow(ctx, row.Cells)
		if skip {
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

func (p *Privat) parseRow(_ context.Context, cells []*xlsx.Cell) (*Record, bool) {
	var values []string
	for _, c := range cells {
		values = append(values, c.String())
	}

	record := &Record{
		Raw: strings.Join(values, "-"),
	}

	if len(cells) < privatColumnCount {
		record.ParsingError = errors.Newf("expected %d cells, got %v",
			privatColumnCount, spew.Sdump(values))
		return record, false
	}

	cardAmount := moneyparse.Parse(values[4])
	if cardAmount.GreaterThanOrEqual(decimal.Zero) {
		return nil, true // only debits pass through
	}

	date, dateErr := time.Parse("02.01.2006 15:04", values[0]+" "+values[1])
	if dateErr != nil {
		record.ParsingError = errors.Wrapf(dateErr, "p24 date %s %s", values[0], values[1])
		return record, false
	}

	record.Date = date
	record.Description = CleanDescription(values[3])

	if mcc, mccErr := strconv.Atoi(strings.TrimSpace(values[2])); mccErr == nil {
		record.MCC = mcc
	}

	cardCurrency := strings.ToUpper(strings.TrimSpace(values[5]))
	txCurrency := strings.ToUpper(strings.TrimSpace(values[7]))

	// Conversion rows only carry a settled side when the card itself is held
	// in the base currency. For a foreign-currency card the card side is what
	// was actually charged and goes through the regular rate lookup.
	if txCurrency != "" && txCurrency != cardCurrency && cardCurrency == database.BaseCurrency {
		record.Currency = txCurrency
		record.SettledAmount = cardAmount.Abs()
		record.Amount = moneyparse.Parse(values[6]).Abs()

		return record, false
	}

	record.Amount = cardAmount.Abs()
	record.Currency = cardCurrency

	return record, false
}
