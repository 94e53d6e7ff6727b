package ports

import (
	"context"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// TableExporter writes the summary tables of a report for later inspection.
type TableExporter interface {
	Export(ctx context.Context, report domain.Report) error
}
