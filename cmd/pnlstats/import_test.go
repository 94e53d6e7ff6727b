package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alejandrodnm/pnlstats/internal/adapters/csvfile"
	"github.com/alejandrodnm/pnlstats/internal/adapters/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportInputs(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	sentimentPath := filepath.Join(dir, "fg.csv")
	require.NoError(t, os.WriteFile(tradesPath, []byte(
		"Account,Coin,Side,Closed PnL,Timestamp IST\n"+
			"A,BTC,BUY,10,01-03-2024 09:15\n"+
			"B,ETH,SELL,,02-03-2024 10:00\n"), 0o644))
	require.NoError(t, os.WriteFile(sentimentPath, []byte(
		"timestamp,value,classification,date\n"+
			"1709251200,40,Fear,2024-03-01\n"), 0o644))

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	n, m, err := importInputs(ctx, csvfile.NewSource(tradesPath, sentimentPath), store)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, m)

	trades, err := store.LoadTrades(ctx)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "", trades[1].ClosedPnL)

	sentiment, err := store.LoadSentiment(ctx)
	require.NoError(t, err)
	require.Len(t, sentiment, 1)
	assert.Equal(t, "2024-03-01", sentiment[0].Date)
}

func TestImportInputs_MissingFile(t *testing.T) {
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, _, err = importInputs(context.Background(), csvfile.NewSource("/nonexistent/t.csv", "/nonexistent/s.csv"), store)
	assert.Error(t, err)
}
