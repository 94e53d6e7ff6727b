package analytics

import "github.com/alejandrodnm/pnlstats/internal/domain"

// BySide groups rows by trade side, BUY first. Sides with no rows are omitted.
func BySide(rows []domain.JoinedTrade, whisker float64) []domain.SideSummary {
	groups := make(map[domain.Side][]domain.JoinedTrade, len(domain.Sides))
	for _, r := range rows {
		groups[r.Side] = append(groups[r.Side], r)
	}

	out := make([]domain.SideSummary, 0, len(domain.Sides))
	for _, side := range domain.Sides {
		g, ok := groups[side]
		if !ok {
			continue
		}
		out = append(out, summarizeSide(side, g, whisker))
	}
	return out
}

// SideOf returns the summary for side, or a zero summary when absent.
func SideOf(sides []domain.SideSummary, side domain.Side) domain.SideSummary {
	for _, s := range sides {
		if s.Side == side {
			return s
		}
	}
	return domain.SideSummary{Side: side}
}

func summarizeSide(side domain.Side, rows []domain.JoinedTrade, whisker float64) domain.SideSummary {
	vals := pnlValues(rows)
	s := domain.SideSummary{
		Side:     side,
		Trades:   len(rows),
		PnLCount: len(vals),
		MeanPnL:  mean(vals),
		Box:      Box(vals, whisker),
	}
	for _, v := range vals {
		if v > 0 {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	s.WinRate = ratio(s.Wins, s.PnLCount)
	return s
}
