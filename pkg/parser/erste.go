package parser

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/spentlog/importer/pkg/database"
	"github.com/spentlog/importer/pkg/moneyparse"
)

// Erste reconstructs transactions from George PDF statements. Bookings sit
// between the "Buchungen" and "Neuer Saldo" marker lines; a booking starts
// with a date line carrying the booking type, the amount and the recipient
// arrive on the following lines in no guaranteed order. A trailing "-" on the
// amount marks a debit; bookings without it are credits and are skipped.
type Erste struct {
}

func NewErste() *Erste {
	return &Erste{}
}

func (e *Erste) Type() database.TransactionSource {
	return database.Erste
}

const (
	ersteLookahead = 3
	ersteCurrency  = "EUR"
)

var (
	ersteSectionStartRegex = regexp.MustCompile(`^Buchungen`)
	ersteSectionEndRegex   = regexp.MustCompile(`^Neuer Saldo`)
	ersteStartMarkerRegex  = regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{4})\s+(Lastschrift|Kartenzahlung|Überweisung|Dauerauftrag|Gutschrift|Entgelt)`)
	ersteAmountRegex       = regexp.MustCompile(`^(\d{1,3}(?:\.\d{3})*,\d{2})(-?)$`)
	ersteRecipientRegex    = regexp.MustCompile(`^(?:Empfänger|Auftraggeber):?\s*(.+)$`)
)

func (e *Erste) ParseStatement(
	ctx context.Context,
	data []byte,
) ([]*Record, error) {
	pages, err := extractPages(data)
	if err != nil {
		return nil, err
	}

	return e.ParsePages(ctx, pages)
}

func (e *Erste) ParsePages(
	ctx context.Context,
	pages [][]string,
) ([]*Record, error) {
	var records []*Record

	for _, lines := range pages {
		sectionActive := false

		for i := 0; i < len(lines); i++ {
			line := lines[i]

			if !sectionActive {
				if ersteSectionStartRegex.MatchString(line) {
					sectionActive = true
				}
				continue
			}

			if ersteSectionEndRegex.MatchString(line) {
				break
			}

			marker := ersteStartMarkerRegex.FindStringSubmatch(line)
			if marker == nil {
				continue
			}

			block := lines[i : min(i+1+ersteLookahead, len(lines))]

			record := e.reconstruct(marker, block)
			if record == nil {
				continue
			}

			if record.ParsingError != nil {
				zerolog.Ctx(ctx).Warn().Err(record.ParsingError).
					Str("line", line).Msg("dropping erste block")
			}

			records = append(records, record)
		}
	}

	return records, nil
}

func (e *Erste) reconstruct(marker []string, block []string) *Record {
	date, dateErr := time.Parse("02.01.2006", marker[1])
	if dateErr != nil {
		return &Record{Raw: block[0], ParsingError: dateErr}
	}

	bookingType := marker[2]

	var (
		amountRaw string
		debit     bool
		recipient string
		extra     []string
	)

	for _, line := range block[1:] {
		if ersteStartMarkerRegex.MatchString(line) || ersteSectionEndRegex.MatchString(line) {
			break // next booking or the closing balance starts here
		}

		if amountMatch := ersteAmountRegex.FindStringSubmatch(line); amountMatch != nil {
			amountRaw = amountMatch[1]
			debit = amountMatch[2] == "-"
			continue
		}

		if recipientMatch := ersteRecipientRegex.FindStringSubmatch(line); recipientMatch != nil {
			recipient = recipientMatch[1]
			continue
		}

		extra = append(extra, line)
	}

	if amountRaw == "" {
		return &Record{
			Raw:          strings.Join(block, "\n"),
			ParsingError: errors.Newf("no amount line for booking %q", block[0]),
		}
	}

	if !debit {
		return nil // no trailing debit suffix means incoming, excluded upstream
	}

	description := recipient
	if description == "" {
		description = strings.Join(extra, " ")
	}
	if description == "" {
		description = bookingType
	}

	// The amount regex already proved the German format: dot is the
	// thousands separator, comma is the decimal one. Strip the dots before
	// parsing so "1.234,56" is not mistaken for a dot-decimal amount.
	amountRaw = strings.ReplaceAll(amountRaw, ".", "")

	return &Record{
		Date:        date,
		Description: CleanDescription(description),
		Amount:      moneyparse.Parse(amountRaw).Abs(),
		Currency:    ersteCurrency,
		Raw:         strings.Join(block, "\n"),
	}
}
