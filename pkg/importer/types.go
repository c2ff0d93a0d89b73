package importer

import (
	"github.com/spentlog/importer/pkg/database"
)

type Mode string

const (
	ModePreview = Mode("preview")
	ModeCommit  = Mode("commit")
)

type Request struct {
	UserID int64
	Source database.TransactionSource
	Mode   Mode
	Data   []byte
}

// Item annotates one canonical transaction with its per-record import
// outcome. RateMissing marks a data-completeness gap, not malformed input;
// such records never reach the writer.
type Item struct {
	Transaction *database.Transaction `json:"transaction"`
	RateMissing bool                  `json:"rate_missing,omitempty"`
	Persisted   bool                  `json:"persisted"`
	WriteError  string                `json:"write_error,omitempty"`
}

type Result struct {
	Items   []*Item `json:"items"`
	Written int     `json:"written"`
	Skipped int     `json:"skipped"`
	Failed  int     `json:"failed"`
	Dropped int     `json:"dropped"`
}
