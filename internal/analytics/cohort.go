package analytics

import (
	"fmt"
	"sort"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// DefaultCohortSize is N in the top-N / bottom-N account split.
const DefaultCohortSize = 5

// AccountTotals sums PnL per account, ordered by account id.
// Accounts whose rows all lack PnL total 0.
func AccountTotals(rows []domain.JoinedTrade) []domain.AccountTotal {
	byAccount := make(map[string]*domain.AccountTotal)
	for _, r := range rows {
		a, ok := byAccount[r.Account]
		if !ok {
			a = &domain.AccountTotal{Account: r.Account}
			byAccount[r.Account] = a
		}
		a.Trades++
		if r.HasPnL {
			a.TotalPnL += r.ClosedPnL
		}
	}

	out := make([]domain.AccountTotal, 0, len(byAccount))
	for _, a := range byAccount {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account < out[j].Account })
	return out
}

// CohortSplit ranks accounts by total PnL and recomputes the hourly and
// cumulative views for the top-n and bottom-n accounts. Ties are broken by
// account id ascending. n is clamped to the number of accounts, so the two
// cohorts overlap when there are fewer than 2n accounts.
func CohortSplit(rows []domain.JoinedTrade, n int) domain.CohortSplit {
	totals := AccountTotals(rows)
	if n < 0 {
		n = 0
	}
	requested := n
	if n > len(totals) {
		n = len(totals)
	}

	top := append([]domain.AccountTotal(nil), totals...)
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].TotalPnL != top[j].TotalPnL {
			return top[i].TotalPnL > top[j].TotalPnL
		}
		return top[i].Account < top[j].Account
	})

	bottom := append([]domain.AccountTotal(nil), totals...)
	sort.SliceStable(bottom, func(i, j int) bool {
		if bottom[i].TotalPnL != bottom[j].TotalPnL {
			return bottom[i].TotalPnL < bottom[j].TotalPnL
		}
		return bottom[i].Account < bottom[j].Account
	})

	return domain.CohortSplit{
		Requested: requested,
		N:         n,
		Top:       buildCohort(fmt.Sprintf("Top %d", n), top[:n], rows),
		Bottom:    buildCohort(fmt.Sprintf("Bottom %d", n), bottom[:n], rows),
	}
}

func buildCohort(name string, accounts []domain.AccountTotal, rows []domain.JoinedTrade) domain.Cohort {
	members := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		members[a.Account] = struct{}{}
	}
	subset := make([]domain.JoinedTrade, 0)
	for _, r := range rows {
		if _, ok := members[r.Account]; ok {
			subset = append(subset, r)
		}
	}
	return domain.Cohort{
		Name:       name,
		Accounts:   accounts,
		Hourly:     ByHour(subset),
		Cumulative: CumulativePnL(subset),
	}
}
