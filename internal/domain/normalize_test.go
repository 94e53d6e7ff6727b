package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/alejandrodnm/pnlstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTrades_DerivesFields(t *testing.T) {
	raw := []domain.RawTrade{
		{Account: " 0xabc ", Coin: "BTC", Side: "BUY", ClosedPnL: "12.5", TimestampIST: "02-12-2024 22:50"},
		{Account: "0xabc", Coin: "ETH", Side: "sell", ClosedPnL: "-3", TimestampIST: "03-12-2024 00:05"},
		{Account: "0xdef", Coin: "ETH", Side: "SELL", ClosedPnL: "0", TimestampIST: "03-12-2024 07:30"},
	}
	trades, err := domain.NormalizeTrades(raw, nil)
	require.NoError(t, err)
	require.Len(t, trades, 3)

	first := trades[0]
	assert.Equal(t, "0xabc", first.Account)
	assert.Equal(t, "BTC", first.Instrument)
	assert.Equal(t, domain.SideBuy, first.Side)
	assert.True(t, first.HasPnL)
	assert.True(t, first.IsWin)
	assert.Equal(t, 22, first.Hour)
	assert.Equal(t, domain.Date{Year: 2024, Month: time.December, Day: 2}, first.TradeDate)
	assert.Equal(t, domain.IST, first.Timestamp.Location())

	assert.Equal(t, domain.SideSell, trades[1].Side)
	assert.Equal(t, 0, trades[1].Hour)
	assert.Equal(t, "2024-12-03", trades[1].TradeDate.String())
	assert.False(t, trades[1].IsWin)

	assert.False(t, trades[2].IsWin, "zero PnL is not a win")
}

func TestNormalizeTrades_NullPnLRetained(t *testing.T) {
	for _, cell := range []string{"", "NaN", "  ", "null"} {
		raw := []domain.RawTrade{{Account: "a", Coin: "X", Side: "BUY", ClosedPnL: cell, TimestampIST: "01-01-2025 10:00"}}
		trades, err := domain.NormalizeTrades(raw, time.UTC)
		require.NoError(t, err, "cell %q", cell)
		require.Len(t, trades, 1)
		assert.False(t, trades[0].HasPnL)
		assert.False(t, trades[0].IsWin)
	}
}

func TestNormalizeTrades_MalformedFieldsFail(t *testing.T) {
	good := domain.RawTrade{Account: "a", Coin: "X", Side: "BUY", ClosedPnL: "1", TimestampIST: "01-01-2025 10:00"}

	tests := []struct {
		name  string
		edit  func(r *domain.RawTrade)
		field string
	}{
		{"iso timestamp", func(r *domain.RawTrade) { r.TimestampIST = "2025-01-01 10:00" }, "Timestamp IST"},
		{"empty timestamp", func(r *domain.RawTrade) { r.TimestampIST = "" }, "Timestamp IST"},
		{"bad month", func(r *domain.RawTrade) { r.TimestampIST = "01-13-2025 10:00" }, "Timestamp IST"},
		{"bad pnl", func(r *domain.RawTrade) { r.ClosedPnL = "12,5" }, "Closed PnL"},
		{"inf pnl", func(r *domain.RawTrade) { r.ClosedPnL = "Inf" }, "Closed PnL"},
		{"bad side", func(r *domain.RawTrade) { r.Side = "HOLD" }, "Side"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := good
			tt.edit(&bad)
			_, err := domain.NormalizeTrades([]domain.RawTrade{good, bad}, nil)
			require.Error(t, err)

			var perr *domain.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, 1, perr.Row)
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestNormalizeSentiment(t *testing.T) {
	raw := []domain.RawSentiment{
		{Date: "2018-02-01", Value: "30", Classification: "Fear"},
		{Date: "2018-02-02 13:45:00", Value: "15", Classification: " Extreme Fear "},
		{Date: "2018-02-03T23:59:00Z", Value: "100", Classification: "Extreme Greed"},
	}
	got, err := domain.NormalizeSentiment(raw)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "2018-02-01", got[0].Date.String())
	assert.Equal(t, 30, got[0].Value)
	assert.Equal(t, "2018-02-02", got[1].Date.String())
	assert.Equal(t, "Extreme Fear", got[1].Classification)
	assert.Equal(t, "2018-02-03", got[2].Date.String())
}

func TestNormalizeSentiment_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  domain.RawSentiment
	}{
		{"bad date", domain.RawSentiment{Date: "01/02/2018", Value: "30"}},
		{"float value", domain.RawSentiment{Date: "2018-02-01", Value: "30.5"}},
		{"out of range", domain.RawSentiment{Date: "2018-02-01", Value: "101"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NormalizeSentiment([]domain.RawSentiment{tt.row})
			var perr *domain.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 0, perr.Row)
		})
	}
}

func TestParseError_Message(t *testing.T) {
	err := &domain.ParseError{Row: 3, Field: "value", Value: "x", Err: errors.New("boom")}
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), `"value"`)
	assert.ErrorContains(t, err, "boom")
}

func TestDate_BeforeAndString(t *testing.T) {
	a := domain.Date{Year: 2024, Month: time.January, Day: 31}
	b := domain.Date{Year: 2024, Month: time.February, Day: 1}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
	assert.Equal(t, "2024-01-31", a.String())
}
