package analytics_test

import (
	"time"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, domain.IST)

func row(account string, side domain.Side, pnl float64, ts time.Time) domain.JoinedTrade {
	return domain.JoinedTrade{Trade: domain.Trade{
		Account:    account,
		Instrument: "BTC",
		Side:       side,
		ClosedPnL:  pnl,
		HasPnL:     true,
		Timestamp:  ts,
		TradeDate:  domain.DateOf(ts),
		Hour:       ts.Hour(),
		IsWin:      pnl > 0,
	}}
}

func nullRow(account string, side domain.Side, ts time.Time) domain.JoinedTrade {
	r := row(account, side, 0, ts)
	r.HasPnL = false
	r.IsWin = false
	return r
}

func withCoin(r domain.JoinedTrade, coin string) domain.JoinedTrade {
	r.Instrument = coin
	return r
}

func withSentiment(r domain.JoinedTrade, v int) domain.JoinedTrade {
	r.SentimentValue = v
	r.SentimentClass = "Greed"
	r.HasSentiment = true
	return r
}

// exampleRows es el ejemplo canónico: A +10, A -5, B +20, todos BUY.
func exampleRows() []domain.JoinedTrade {
	return []domain.JoinedTrade{
		row("A", domain.SideBuy, 10, t0),
		row("A", domain.SideBuy, -5, t0.Add(time.Hour)),
		row("B", domain.SideBuy, 20, t0.Add(2*time.Hour)),
	}
}

func tradesOf(rows []domain.JoinedTrade) []domain.Trade {
	out := make([]domain.Trade, len(rows))
	for i, r := range rows {
		out[i] = r.Trade
	}
	return out
}
