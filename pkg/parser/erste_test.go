package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spentlog/importer/pkg/parser"
)

var erstePage = []string{
	"Kontoauszug 03/2024",
	"Buchungen",
	"01.03.2024 Überweisung",
	"Empfänger: Hausverwaltung Muster",
	"850,00-",
	"05.03.2024 Kartenzahlung",
	"BILLA DANKT 1234",
	"23,90-",
	"10.03.2024 Gutschrift",
	"Auftraggeber: Arbeitgeber GmbH",
	"1.500,00",
	"Neuer Saldo",
	"625,10",
}

func TestErsteParsePages(t *testing.T) {
	srv := parser.NewErste()

	records, err := srv.ParsePages(context.TODO(), [][]string{erstePage})
	assert.NoError(t, err)
	assert.Len(t, records, 2) // the Gutschrift carries no debit suffix and is skipped

	assert.Equal(t, "2024-03-01", records[0].Date.Format("2006-01-02"))
	assert.Equal(t, "Hausverwaltung Muster", records[0].Description)
	assert.Equal(t, "850.00", records[0].Amount.StringFixed(2))
	assert.Equal(t, "EUR", records[0].Currency)
	assert.False(t, records[0].HasSequence)

	assert.Equal(t, "BILLA DANKT 1234", records[1].Description)
	assert.Equal(t, "23.90", records[1].Amount.StringFixed(2))
}

func TestErsteThousandsSeparatedAmount(t *testing.T) {
	srv := parser.NewErste()

	page := []string{
		"Buchungen",
		"02.03.2024 Überweisung",
		"Empfänger: Autohaus Wagner",
		"1.234,56-",
		"Neuer Saldo",
	}

	records, err := srv.ParsePages(context.TODO(), [][]string{page})
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "1234.56", records[0].Amount.StringFixed(2))
}

func TestErsteLastBookingBeforeClosingBalance(t *testing.T) {
	srv := parser.NewErste()

	// the closing balance has no debit suffix and must not overwrite the
	// booking's own amount line
	page := []string{
		"Buchungen",
		"05.03.2024 Kartenzahlung",
		"23,90-",
		"Neuer Saldo",
		"625,10",
	}

	records, err := srv.ParsePages(context.TODO(), [][]string{page})
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "23.90", records[0].Amount.StringFixed(2))
	assert.Equal(t, "Kartenzahlung", records[0].Description)
}

func TestErsteBookingWithoutAmount(t *testing.T) {
	srv := parser.NewErste()

	page := []string{
		"Buchungen",
		"01.03.2024 Entgelt",
		"Neuer Saldo",
	}

	records, err := srv.ParsePages(context.TODO(), [][]string{page})
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Error(t, records[0].ParsingError)
}

func TestErsteIgnoresLinesOutsideBookings(t *testing.T) {
	srv := parser.NewErste()

	page := []string{
		"01.03.2024 Kartenzahlung", // before the Buchungen marker
		"12,00-",
	}

	records, err := srv.ParsePages(context.TODO(), [][]string{page})
	assert.NoError(t, err)
	assert.Empty(t, records)
}
