package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/pnlstats/config"
	"github.com/alejandrodnm/pnlstats/internal/adapters/csvfile"
	"github.com/alejandrodnm/pnlstats/internal/adapters/storage"
	"github.com/alejandrodnm/pnlstats/internal/ports"
)

// runImport copia los dos CSV a SQLite para correr luego con input.source: sqlite.
func runImport(ctx context.Context, cfg *config.Config) error {
	slog.Info("=== IMPORT MODE: CSV → SQLite ===",
		"trades", cfg.Input.TradesPath,
		"sentiment", cfg.Input.SentimentPath,
		"dsn", cfg.Storage.DSN,
	)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		return err
	}
	defer store.Close()

	n, m, err := importInputs(ctx, csvfile.NewSource(cfg.Input.TradesPath, cfg.Input.SentimentPath), store)
	if err != nil {
		return err
	}
	slog.Info("import complete", "trades", n, "sentiment", m)
	return nil
}

func importInputs(ctx context.Context, src *csvfile.Source, dst ports.Importer) (trades, sentiment int, err error) {
	rawTrades, err := src.LoadTrades(ctx)
	if err != nil {
		return 0, 0, err
	}
	rawSentiment, err := src.LoadSentiment(ctx)
	if err != nil {
		return 0, 0, err
	}

	if err := dst.ImportTrades(ctx, rawTrades); err != nil {
		return 0, 0, fmt.Errorf("import trades: %w", err)
	}
	if err := dst.ImportSentiment(ctx, rawSentiment); err != nil {
		return 0, 0, fmt.Errorf("import sentiment: %w", err)
	}
	return len(rawTrades), len(rawSentiment), nil
}
