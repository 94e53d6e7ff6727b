package analytics_test

import (
	"testing"
	"time"

	"github.com/alejandrodnm/pnlstats/internal/analytics"
	"github.com/alejandrodnm/pnlstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cumulativeValues(points []domain.CumulativePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Cumulative
	}
	return out
}

func TestCumulativePnL_Example(t *testing.T) {
	points := analytics.CumulativePnL(exampleRows())
	assert.Equal(t, []float64{10, 5, 25}, cumulativeValues(points))
}

func TestCumulativePnL_SortsByTimestamp(t *testing.T) {
	rows := []domain.JoinedTrade{
		row("B", domain.SideBuy, 20, t0.Add(2*time.Hour)),
		row("A", domain.SideBuy, 10, t0),
		row("A", domain.SideBuy, -5, t0.Add(time.Hour)),
	}
	points := analytics.CumulativePnL(rows)
	assert.Equal(t, []float64{10, 5, 25}, cumulativeValues(points))
	assert.True(t, points[0].Timestamp.Equal(t0))

	// input order untouched
	assert.Equal(t, 20.0, rows[0].ClosedPnL)
}

func TestCumulativePnL_TiesKeepRowOrder(t *testing.T) {
	rows := []domain.JoinedTrade{
		row("A", domain.SideBuy, 1, t0),
		row("B", domain.SideBuy, 2, t0),
		row("C", domain.SideBuy, 3, t0),
	}
	points := analytics.CumulativePnL(rows)
	require.Len(t, points, 3)
	assert.Equal(t, []float64{1, 2, 3}, []float64{points[0].PnL, points[1].PnL, points[2].PnL})
}

func TestCumulativePnL_LastEqualsTotalOfNonNull(t *testing.T) {
	rows := []domain.JoinedTrade{
		row("A", domain.SideBuy, 1.25, t0.Add(3*time.Minute)),
		nullRow("A", domain.SideBuy, t0.Add(2*time.Minute)),
		row("B", domain.SideSell, -0.5, t0),
		row("C", domain.SideSell, 3, t0),
	}
	points := analytics.CumulativePnL(rows)
	assert.Len(t, points, 3)
	assert.InDelta(t, analytics.TotalPnL(rows), analytics.FinalPnL(points), 1e-9)
	assert.InDelta(t, 3.75, analytics.FinalPnL(points), 1e-9)
}

func TestCumulativePnL_Empty(t *testing.T) {
	assert.Empty(t, analytics.CumulativePnL(nil))
	assert.Equal(t, 0.0, analytics.FinalPnL(nil))
}
