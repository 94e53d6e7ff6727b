package ports

import (
	"context"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// TradeSource lee el trade log completo tal como está en origen.
type TradeSource interface {
	// LoadTrades returns every trade row, unparsed, in source order.
	LoadTrades(ctx context.Context) ([]domain.RawTrade, error)
}

// SentimentSource lee el índice Fear/Greed diario.
type SentimentSource interface {
	LoadSentiment(ctx context.Context) ([]domain.RawSentiment, error)
}
