package parser

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spentlog/importer/pkg/database"
	"github.com/spentlog/importer/pkg/moneyparse"
)

// Pumb reconstructs transactions from the text lines of a PUMB PDF statement.
// Each page is walked by a small state machine: lines are scanned until the
// operations table header, then every line starting with a date opens a block
// of up to pumbLookahead lines holding the amount and the description.
//
// Two identical purchases on the same day are distinct rows in the statement
// but share (date, description, amount), so every reconstructed record gets a
// per-statement sequence number which participates in the identity hash.
type Pumb struct {
}

func NewPumb() *Pumb {
	return &Pumb{}
}

func (p *Pumb) Type() database.TransactionSource {
	return database.Pumb
}

const pumbLookahead = 3

var (
	pumbSectionStartRegex = regexp.MustCompile(`Дата операції`)
	pumbSectionEndRegex   = regexp.MustCompile(`(Всього за період|Загалом)`)
	pumbDateRegex         = regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{4})(?:\s+(\d{2}:\d{2}))?`)
	pumbAmountRegex       = regexp.MustCompile(`^([\d\s\x{00a0}]+(?:[.,]\d{1,2})?)(-?)\s*([A-Z]{3})$`)
)

func (p *Pumb) ParseStatement(
	ctx context.Context,
	data []byte,
) ([]*Record, error) {
	pages, err := extractPages(data)
	if err != nil {
		return nil, err
	}

	return p.ParsePages(ctx, pages)
}

// ParsePages runs the line state machine over already-extracted page text.
func (p *Pumb) ParsePages(
	ctx context.Context,
	pages [][]string,
) ([]*Record, error) {
	var records []*Record
	sequence := 0

	for _, lines := range pages {
		sectionActive := false

		for i := 0; i < len(lines); i++ {
			line := lines[i]

			if !sectionActive {
				if pumbSectionStartRegex.MatchString(line) {
					sectionActive = true
				}
				continue
			}

			if pumbSectionEndRegex.MatchString(line) {
				break // terminal for this page
			}

			if !pumbDateRegex.MatchString(line) {
				continue
			}

			block := lines[i:min(i+1+pumbLookahead, len(lines))]

			record, consumed := p.reconstruct(ctx, block)
			if record != nil {
				sequence++
				record.Sequence = sequence
				record.HasSequence = true
				records = append(records, record)
			}

			i += consumed - 1
		}
	}

	return records, nil
}

// reconstruct builds one record from a date line plus its lookahead block.
// A nil record means the block held a credit or nothing extractable.
func (p *Pumb) reconstruct(ctx context.Context, block []string) (*Record, int) {
	dateMatch := pumbDateRegex.FindStringSubmatch(block[0])

	layout, value := "02.01.2006", dateMatch[1]
	if dateMatch[2] != "" {
		layout, value = "02.01.2006 15:04", dateMatch[1]+" "+dateMatch[2]
	}

	date, dateErr := time.Parse(layout, value)
	if dateErr != nil {
		zerolog.Ctx(ctx).Warn().Err(dateErr).Str("line", block[0]).
			Msg("dropping block with unparsable date")
		return nil, 1
	}

	var (
		amount   decimal.Decimal
		settled  decimal.Decimal
		currency string
		debit    bool
		consumed = 1
		descArr  []string
	)

	if rest := strings.TrimSpace(pumbDateRegex.ReplaceAllString(block[0], "")); rest != "" {
		descArr = append(descArr, rest)
	}

	for _, line := range block[1:] {
		if pumbDateRegex.MatchString(line) || pumbSectionEndRegex.MatchString(line) {
			break // next transaction or the totals line starts here
		}
		consumed++

		amountMatch := pumbAmountRegex.FindStringSubmatch(line)
		if amountMatch == nil {
			descArr = append(descArr, line)
			continue
		}

		lineAmount := moneyparse.Parse(amountMatch[1]).Abs()
		lineCurrency := amountMatch[3]

		switch {
		case lineCurrency == database.BaseCurrency:
			settled = lineAmount
			debit = debit || amountMatch[2] == "-"
		default:
			amount = lineAmount
			currency = lineCurrency
			debit = debit || amountMatch[2] == "-"
		}
	}

	record := &Record{
		Date:        date,
		Description: CleanDescription(strings.Join(descArr, " ")),
		Raw:         strings.Join(block[:consumed], "\n"),
	}

	if currency == "" && settled.IsZero() {
		record.ParsingError = errors.Newf("no amount line in block %q", record.Raw)
		return record, consumed
	}

	if !debit {
		return nil, consumed // incoming, skipped upstream of normalization
	}

	if currency != "" {
		// Foreign operation: statement shows the settled UAH side and
		// sometimes the original side.
		record.Currency = currency
		record.Amount = amount
		record.SettledAmount = settled
	} else {
		record.Currency = database.BaseCurrency
		record.Amount = settled
	}

	return record, consumed
}
