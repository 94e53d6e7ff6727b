package analytics

import (
	"sort"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// DefaultTopK is how many instruments are shown, ranked by trade count.
const DefaultTopK = 10

// ByInstrument groups rows by instrument, ordered by instrument name.
func ByInstrument(rows []domain.JoinedTrade) []domain.InstrumentSummary {
	type acc struct {
		trades, n, wins int
		sum             float64
	}
	groups := make(map[string]*acc)
	for _, r := range rows {
		a, ok := groups[r.Instrument]
		if !ok {
			a = &acc{}
			groups[r.Instrument] = a
		}
		a.trades++
		if r.HasPnL {
			a.n++
			a.sum += r.ClosedPnL
			if r.IsWin {
				a.wins++
			}
		}
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.InstrumentSummary, 0, len(names))
	for _, name := range names {
		a := groups[name]
		s := domain.InstrumentSummary{
			Instrument: name,
			Trades:     a.trades,
			PnLCount:   a.n,
			WinRate:    ratio(a.wins, a.n),
		}
		if a.n > 0 {
			s.MeanPnL = domain.Float(a.sum / float64(a.n))
		}
		out = append(out, s)
	}
	return out
}

// TopInstruments returns the k most traded instruments. Ties keep the input
// order. summaries is not modified.
func TopInstruments(summaries []domain.InstrumentSummary, k int) []domain.InstrumentSummary {
	sorted := append([]domain.InstrumentSummary(nil), summaries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Trades > sorted[j].Trades
	})
	if k < 0 {
		k = 0
	}
	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k]
}
