package ports

import (
	"context"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// Importer carga las tablas de entrada en un store que luego sirve como
// TradeSource y SentimentSource. Reemplaza el contenido previo.
type Importer interface {
	ImportTrades(ctx context.Context, rows []domain.RawTrade) error
	ImportSentiment(ctx context.Context, rows []domain.RawSentiment) error

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
