package out

import (
	"context"

	"kitchen/internal/modules/summary/domain"
)

type ExportResult struct {
	Path         string
	ProgressPath string
}

// Exporter writes a rendered report somewhere durable.
type Exporter interface {
	Export(ctx context.Context, report domain.Report, body string) (ExportResult, error)
}
