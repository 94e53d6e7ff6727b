package ports

import (
	"context"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// ReportNotifier presenta las tablas resumen al usuario.
type ReportNotifier interface {
	// NotifyReport prints the summary tables of one run.
	NotifyReport(ctx context.Context, report domain.Report) error
}
