package domain_test

import (
	"testing"
	"time"

	"github.com/alejandrodnm/pnlstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) domain.Date { return domain.Date{Year: y, Month: m, Day: d} }

func trade(account string, d domain.Date) domain.Trade {
	return domain.Trade{Account: account, Side: domain.SideBuy, ClosedPnL: 1, HasPnL: true, TradeDate: d}
}

func TestJoin_LeftJoinKeepsEveryTrade(t *testing.T) {
	trades := []domain.Trade{
		trade("a", day(2024, 1, 1)),
		trade("b", day(2024, 1, 2)),
		trade("c", day(2024, 1, 1)),
	}
	sentiment := []domain.Sentiment{
		{Date: day(2024, 1, 1), Value: 70, Classification: "Greed"},
		{Date: day(2024, 1, 5), Value: 10, Classification: "Extreme Fear"},
	}

	joined := domain.Join(trades, sentiment)
	require.Len(t, joined, len(trades))

	assert.True(t, joined[0].HasSentiment)
	assert.Equal(t, 70, joined[0].SentimentValue)
	assert.Equal(t, "Greed", joined[0].SentimentClass)

	assert.False(t, joined[1].HasSentiment)
	assert.Equal(t, 0, joined[1].SentimentValue)
	assert.Equal(t, "", joined[1].SentimentClass)

	assert.Equal(t, "c", joined[2].Account)
	assert.True(t, joined[2].HasSentiment)
}

func TestJoin_EmptyInputs(t *testing.T) {
	assert.Empty(t, domain.Join(nil, []domain.Sentiment{{Date: day(2024, 1, 1)}}))

	joined := domain.Join([]domain.Trade{trade("a", day(2024, 1, 1))}, nil)
	require.Len(t, joined, 1)
	assert.False(t, joined[0].HasSentiment)
}

func TestJoin_DuplicateDateFansOut(t *testing.T) {
	trades := []domain.Trade{trade("a", day(2024, 1, 1))}
	sentiment := []domain.Sentiment{
		{Date: day(2024, 1, 1), Value: 40},
		{Date: day(2024, 1, 1), Value: 60},
	}
	joined := domain.Join(trades, sentiment)
	require.Len(t, joined, 2)
	assert.Equal(t, 40, joined[0].SentimentValue)
	assert.Equal(t, 60, joined[1].SentimentValue)
}

func TestDuplicateDates(t *testing.T) {
	sentiment := []domain.Sentiment{
		{Date: day(2024, 3, 1)},
		{Date: day(2023, 1, 1)},
		{Date: day(2024, 3, 1)},
		{Date: day(2023, 1, 1)},
		{Date: day(2024, 2, 1)},
	}
	assert.Equal(t, []domain.Date{day(2023, 1, 1), day(2024, 3, 1)}, domain.DuplicateDates(sentiment))
	assert.Empty(t, domain.DuplicateDates(sentiment[4:]))
}
