package main

import (
	"context"

	"github.com/spentlog/importer/pkg/importer"
)

type StatementImporter interface {
	Import(
		ctx context.Context,
		request importer.Request,
	) (*importer.Result, error)
}
