package analytics

import (
	"github.com/alejandrodnm/pnlstats/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// pnlValues returns the non-null PnL values of rows, in order.
func pnlValues(rows []domain.JoinedTrade) []float64 {
	vals := make([]float64, 0, len(rows))
	for _, r := range rows {
		if r.HasPnL {
			vals = append(vals, r.ClosedPnL)
		}
	}
	return vals
}

// mean returns the arithmetic mean, null for an empty slice.
func mean(vals []float64) domain.NullFloat {
	if len(vals) == 0 {
		return domain.NullFloat{}
	}
	return domain.Float(stat.Mean(vals, nil))
}

// ratio returns num/den, null when den is zero.
func ratio(num, den int) domain.NullFloat {
	if den == 0 {
		return domain.NullFloat{}
	}
	return domain.Float(float64(num) / float64(den))
}

// TotalPnL sums every non-null PnL.
func TotalPnL(rows []domain.JoinedTrade) float64 {
	return floats.Sum(pnlValues(rows))
}
