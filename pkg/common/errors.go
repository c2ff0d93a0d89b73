package common

import "github.com/cockroachdb/errors"

var (
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrUnreadableFile      = errors.New("file can not be read for this provider")
	ErrHeaderNotFound      = errors.New("statement header not found")
	ErrRateNotFound        = errors.New("exchange rate not found")
	ErrDuplicate           = errors.New("duplicate transaction")
)
