package analytics

import "github.com/alejandrodnm/pnlstats/internal/domain"

// ByHour returns the mean PnL of each hour of the day. All 24 buckets are
// always present; a bucket without PnL rows has a null mean.
func ByHour(rows []domain.JoinedTrade) [24]domain.HourBucket {
	var sums [24]float64
	var buckets [24]domain.HourBucket
	for h := range buckets {
		buckets[h].Hour = h
	}

	for _, r := range rows {
		if r.Hour < 0 || r.Hour > 23 {
			continue
		}
		b := &buckets[r.Hour]
		b.Trades++
		if r.HasPnL {
			b.PnLCount++
			sums[r.Hour] += r.ClosedPnL
		}
	}

	for h := range buckets {
		if buckets[h].PnLCount > 0 {
			buckets[h].MeanPnL = domain.Float(sums[h] / float64(buckets[h].PnLCount))
		}
	}
	return buckets
}
