package analytics

import (
	"sort"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// CumulativePnL sorts rows by timestamp (stable: same-timestamp rows keep
// their original order) and returns the running PnL after each trade.
// Rows without PnL produce no point.
func CumulativePnL(rows []domain.JoinedTrade) []domain.CumulativePoint {
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return rows[idx[a]].Timestamp.Before(rows[idx[b]].Timestamp)
	})

	out := make([]domain.CumulativePoint, 0, len(rows))
	running := 0.0
	for _, i := range idx {
		r := rows[i]
		if !r.HasPnL {
			continue
		}
		running += r.ClosedPnL
		out = append(out, domain.CumulativePoint{
			Timestamp:  r.Timestamp,
			PnL:        r.ClosedPnL,
			Cumulative: running,
		})
	}
	return out
}

// FinalPnL is the last cumulative value, 0 for an empty series.
func FinalPnL(points []domain.CumulativePoint) float64 {
	if len(points) == 0 {
		return 0
	}
	return points[len(points)-1].Cumulative
}
