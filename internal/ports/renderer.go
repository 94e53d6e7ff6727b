package ports

import (
	"context"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// Renderer turns a chart description into an artifact (an image file).
// Implementations draw the data as given and never recompute statistics.
type Renderer interface {
	Render(ctx context.Context, chart domain.Chart) error
}
