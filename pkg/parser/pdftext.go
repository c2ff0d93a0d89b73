package parser

import (
	"bytes"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ledongthuc/pdf"

	"github.com/spentlog/importer/pkg/common"
)

// extractPages returns the visual text lines of each page. Extraction order is
// not guaranteed to match the table column order, the line parsers must not
// rely on it.
func extractPages(data []byte) ([][]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrapf(common.ErrUnreadableFile, "pdf: %v", err)
	}

	var pages [][]string

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, rowsErr := page.GetTextByRow()
		if rowsErr != nil {
			return nil, errors.Wrapf(common.ErrUnreadableFile, "pdf page %d: %v", pageNum, rowsErr)
		}

		var lines []string
		for _, row := range rows {
			var sb strings.Builder
			for _, text := range row.Content {
				sb.WriteString(text.S)
			}

			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}

		pages = append(pages, lines)
	}

	return pages, nil
}
