package analytics_test

import (
	"testing"
	"time"

	"github.com/alejandrodnm/pnlstats/internal/analytics"
	"github.com/alejandrodnm/pnlstats/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestByHour_Always24Buckets(t *testing.T) {
	for _, rows := range [][]domain.JoinedTrade{nil, exampleRows()} {
		buckets := analytics.ByHour(rows)
		assert.Len(t, buckets, 24)
		for h, b := range buckets {
			assert.Equal(t, h, b.Hour)
		}
	}
}

func TestByHour_MeansAndEmptyBuckets(t *testing.T) {
	rows := []domain.JoinedTrade{
		row("A", domain.SideBuy, 10, t0),                    // 09h
		row("A", domain.SideBuy, -4, t0.Add(time.Minute)),   // 09h
		nullRow("B", domain.SideBuy, t0.Add(2*time.Minute)), // 09h, no PnL
		row("B", domain.SideSell, 7, t0.Add(5*time.Hour)),   // 14h
	}
	buckets := analytics.ByHour(rows)

	assert.Equal(t, 3, buckets[9].Trades)
	assert.Equal(t, 2, buckets[9].PnLCount)
	assert.InDelta(t, 3.0, buckets[9].MeanPnL.Value, 1e-9)
	assert.InDelta(t, 7.0, buckets[14].MeanPnL.Value, 1e-9)

	assert.False(t, buckets[0].MeanPnL.Valid)
	assert.Equal(t, 0, buckets[0].Trades)
}
