package analytics_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/alejandrodnm/pnlstats/internal/analytics"
	"github.com/alejandrodnm/pnlstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountsOf(c domain.Cohort) []string {
	out := make([]string, len(c.Accounts))
	for i, a := range c.Accounts {
		out[i] = a.Account
	}
	return out
}

// twelveAccounts crea cuentas acc00..acc11 con total PnL distinto (i×10 - 50).
func twelveAccounts() []domain.JoinedTrade {
	var rows []domain.JoinedTrade
	for i := 0; i < 12; i++ {
		acct := fmt.Sprintf("acc%02d", i)
		rows = append(rows, row(acct, domain.SideBuy, float64(i*10-50), t0.Add(time.Duration(i)*time.Hour)))
	}
	return rows
}

func TestCohortSplit_TopAndBottomDisjoint(t *testing.T) {
	split := analytics.CohortSplit(twelveAccounts(), 5)
	assert.Equal(t, 5, split.N)

	assert.Equal(t, []string{"acc11", "acc10", "acc09", "acc08", "acc07"}, accountsOf(split.Top))
	assert.Equal(t, []string{"acc00", "acc01", "acc02", "acc03", "acc04"}, accountsOf(split.Bottom))

	top := map[string]bool{}
	for _, a := range accountsOf(split.Top) {
		top[a] = true
	}
	for _, a := range accountsOf(split.Bottom) {
		assert.False(t, top[a], "account %s in both cohorts", a)
	}
}

func TestCohortSplit_TiesByAccountAscending(t *testing.T) {
	rows := []domain.JoinedTrade{
		row("zed", domain.SideBuy, 5, t0),
		row("amy", domain.SideBuy, 5, t0),
		row("bob", domain.SideBuy, 5, t0),
		row("low", domain.SideBuy, -1, t0),
	}
	split := analytics.CohortSplit(rows, 2)
	assert.Equal(t, []string{"amy", "bob"}, accountsOf(split.Top))
	assert.Equal(t, []string{"low", "amy"}, accountsOf(split.Bottom))
}

func TestCohortSplit_ClampsToAvailableAccounts(t *testing.T) {
	split := analytics.CohortSplit(exampleRows(), 5)
	assert.Equal(t, 2, split.N)
	assert.Equal(t, 5, split.Requested)
	assert.Equal(t, []string{"B", "A"}, accountsOf(split.Top))
	assert.Equal(t, []string{"A", "B"}, accountsOf(split.Bottom))
}

func TestCohortSplit_EmptyAndZero(t *testing.T) {
	assert.NotPanics(t, func() {
		split := analytics.CohortSplit(nil, 5)
		assert.Equal(t, 0, split.N)
		assert.Empty(t, split.Top.Cumulative)
	})
	split := analytics.CohortSplit(exampleRows(), 0)
	assert.Empty(t, split.Top.Accounts)
}

func TestCohortSplit_RecomputesViewsOnCohortRows(t *testing.T) {
	split := analytics.CohortSplit(exampleRows(), 1)
	require.Equal(t, []string{"B"}, accountsOf(split.Top))

	// B solo tiene un trade de +20 a las 11h
	assert.Equal(t, []float64{20}, cumulativeValues(split.Top.Cumulative))
	assert.InDelta(t, 20.0, split.Top.Hourly[11].MeanPnL.Value, 1e-9)
	assert.False(t, split.Top.Hourly[9].MeanPnL.Valid)

	// A: +10 a las 9h, -5 a las 10h
	assert.Equal(t, []float64{10, 5}, cumulativeValues(split.Bottom.Cumulative))
}

func TestAccountTotals_NullOnlyAccountTotalsZero(t *testing.T) {
	rows := []domain.JoinedTrade{nullRow("X", domain.SideBuy, t0), row("Y", domain.SideBuy, 3, t0)}
	totals := analytics.AccountTotals(rows)
	require.Len(t, totals, 2)
	assert.Equal(t, "X", totals[0].Account)
	assert.Equal(t, 0.0, totals[0].TotalPnL)
	assert.Equal(t, 1, totals[0].Trades)
}
