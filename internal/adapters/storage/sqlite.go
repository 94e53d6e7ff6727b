package storage

// sqlite.go: las tablas de entrada en SQLite.
//
// Estrategia:
//   - `trades` y `fear_greed` guardan las filas tal como vienen del CSV (TEXT),
//     así la normalización y sus errores son idénticos para ambas fuentes.
//   - Import reemplaza el contenido completo en una transacción: cada run
//     recalcula todo desde las dos tablas, no hay histórico de runs.
//   - `seq` conserva el orden original de las filas.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alejandrodnm/pnlstats/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS trades (
    seq           INTEGER PRIMARY KEY,
    account       TEXT NOT NULL DEFAULT '',
    coin          TEXT NOT NULL DEFAULT '',
    side          TEXT NOT NULL DEFAULT '',
    closed_pnl    TEXT NOT NULL DEFAULT '',
    timestamp_ist TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS fear_greed (
    seq            INTEGER PRIMARY KEY,
    date           TEXT NOT NULL DEFAULT '',
    value          TEXT NOT NULL DEFAULT '',
    classification TEXT NOT NULL DEFAULT ''
);
`

// SQLiteStorage implementa ports.Importer, ports.TradeSource y
// ports.SentimentSource usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada y aplica el schema.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// ImportTrades reemplaza la tabla trades con rows.
func (s *SQLiteStorage) ImportTrades(ctx context.Context, rows []domain.RawTrade) error {
	return s.replace(ctx, "trades",
		`INSERT INTO trades (seq, account, coin, side, closed_pnl, timestamp_ist) VALUES (?, ?, ?, ?, ?, ?)`,
		len(rows),
		func(i int) []any {
			r := rows[i]
			return []any{i, r.Account, r.Coin, r.Side, r.ClosedPnL, r.TimestampIST}
		},
	)
}

// ImportSentiment reemplaza la tabla fear_greed con rows.
func (s *SQLiteStorage) ImportSentiment(ctx context.Context, rows []domain.RawSentiment) error {
	return s.replace(ctx, "fear_greed",
		`INSERT INTO fear_greed (seq, date, value, classification) VALUES (?, ?, ?, ?)`,
		len(rows),
		func(i int) []any {
			r := rows[i]
			return []any{i, r.Date, r.Value, r.Classification}
		},
	)
}

// LoadTrades devuelve las filas de trades en su orden original.
func (s *SQLiteStorage) LoadTrades(ctx context.Context) ([]domain.RawTrade, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT account, coin, side, closed_pnl, timestamp_ist FROM trades ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("storage.LoadTrades: query: %w", err)
	}
	defer rows.Close()

	var out []domain.RawTrade
	for rows.Next() {
		var r domain.RawTrade
		if err := rows.Scan(&r.Account, &r.Coin, &r.Side, &r.ClosedPnL, &r.TimestampIST); err != nil {
			return nil, fmt.Errorf("storage.LoadTrades: scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadSentiment devuelve las filas de fear_greed en su orden original.
func (s *SQLiteStorage) LoadSentiment(ctx context.Context) ([]domain.RawSentiment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, value, classification FROM fear_greed ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("storage.LoadSentiment: query: %w", err)
	}
	defer rows.Close()

	var out []domain.RawSentiment
	for rows.Next() {
		var r domain.RawSentiment
		if err := rows.Scan(&r.Date, &r.Value, &r.Classification); err != nil {
			return nil, fmt.Errorf("storage.LoadSentiment: scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// replace borra table e inserta n filas en una sola transacción.
func (s *SQLiteStorage) replace(ctx context.Context, table, insert string, n int, args func(i int) []any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.Import %s: begin tx: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return fmt.Errorf("storage.Import %s: clear: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("storage.Import %s: prepare: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("storage.Import %s: row %d: %w", table, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.Import %s: commit: %w", table, err)
	}
	return nil
}
