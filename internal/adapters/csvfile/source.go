// Package csvfile lee el trade log y el índice Fear/Greed desde archivos CSV.
package csvfile

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alejandrodnm/pnlstats/internal/domain"
	"github.com/gocarina/gocsv"
)

// Source implementa ports.TradeSource y ports.SentimentSource sobre dos CSV.
type Source struct {
	tradesPath    string
	sentimentPath string
}

// NewSource creates a Source reading the given files.
func NewSource(tradesPath, sentimentPath string) *Source {
	return &Source{tradesPath: tradesPath, sentimentPath: sentimentPath}
}

// LoadTrades reads every row of the trade log.
func (s *Source) LoadTrades(ctx context.Context) ([]domain.RawTrade, error) {
	var rows []domain.RawTrade
	if err := readFile(ctx, s.tradesPath, &rows); err != nil {
		return nil, fmt.Errorf("csvfile.LoadTrades: %w", err)
	}
	return rows, nil
}

// LoadSentiment reads every row of the Fear/Greed index.
func (s *Source) LoadSentiment(ctx context.Context) ([]domain.RawSentiment, error) {
	var rows []domain.RawSentiment
	if err := readFile(ctx, s.sentimentPath, &rows); err != nil {
		return nil, fmt.Errorf("csvfile.LoadSentiment: %w", err)
	}
	return rows, nil
}

// ReadTrades decodes a trade log. Columns are matched by header name; extra
// columns are ignored.
func ReadTrades(r io.Reader) ([]domain.RawTrade, error) {
	var rows []domain.RawTrade
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ReadSentiment decodes a Fear/Greed index CSV.
func ReadSentiment(r io.Reader) ([]domain.RawSentiment, error) {
	var rows []domain.RawSentiment
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func readFile(ctx context.Context, path string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.Unmarshal(f, out); err != nil {
		return fmt.Errorf("parse %q: %w", path, err)
	}
	return nil
}
