package export

import (
	"time"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// Row DTOs for the exported tables. Undefined aggregates are nil: empty cell
// in CSV, null in JSON, missing value in Parquet.

type sideRow struct {
	Side     string   `csv:"side" json:"side" parquet:"side"`
	Trades   int64    `csv:"trades" json:"trades" parquet:"trades"`
	PnLCount int64    `csv:"pnl_count" json:"pnl_count" parquet:"pnl_count"`
	Wins     int64    `csv:"wins" json:"wins" parquet:"wins"`
	Losses   int64    `csv:"losses" json:"losses" parquet:"losses"`
	MeanPnL  *float64 `csv:"mean_pnl" json:"mean_pnl" parquet:"mean_pnl,optional"`
	WinRate  *float64 `csv:"win_rate" json:"win_rate" parquet:"win_rate,optional"`
	Q1       *float64 `csv:"q1" json:"q1" parquet:"q1,optional"`
	Median   *float64 `csv:"median" json:"median" parquet:"median,optional"`
	Q3       *float64 `csv:"q3" json:"q3" parquet:"q3,optional"`
	Outliers int64    `csv:"outliers" json:"outliers" parquet:"outliers"`
}

type hourRow struct {
	Cohort   string   `csv:"cohort" json:"cohort" parquet:"cohort"`
	Hour     int64    `csv:"hour" json:"hour" parquet:"hour"`
	Trades   int64    `csv:"trades" json:"trades" parquet:"trades"`
	PnLCount int64    `csv:"pnl_count" json:"pnl_count" parquet:"pnl_count"`
	MeanPnL  *float64 `csv:"mean_pnl" json:"mean_pnl" parquet:"mean_pnl,optional"`
}

type instrumentRow struct {
	Rank       int64    `csv:"rank" json:"rank" parquet:"rank"`
	Instrument string   `csv:"coin" json:"coin" parquet:"coin"`
	Trades     int64    `csv:"trades" json:"trades" parquet:"trades"`
	PnLCount   int64    `csv:"pnl_count" json:"pnl_count" parquet:"pnl_count"`
	MeanPnL    *float64 `csv:"mean_pnl" json:"mean_pnl" parquet:"mean_pnl,optional"`
	WinRate    *float64 `csv:"win_rate" json:"win_rate" parquet:"win_rate,optional"`
	TopK       bool     `csv:"top_k" json:"top_k" parquet:"top_k"`
}

type cumulativeRow struct {
	Cohort     string  `csv:"cohort" json:"cohort" parquet:"cohort"`
	Timestamp  string  `csv:"timestamp" json:"timestamp" parquet:"timestamp"`
	PnL        float64 `csv:"pnl" json:"pnl" parquet:"pnl"`
	Cumulative float64 `csv:"cumulative" json:"cumulative" parquet:"cumulative"`
}

type accountRow struct {
	Cohort   string  `csv:"cohort" json:"cohort" parquet:"cohort"`
	Rank     int64   `csv:"rank" json:"rank" parquet:"rank"`
	Account  string  `csv:"account" json:"account" parquet:"account"`
	Trades   int64   `csv:"trades" json:"trades" parquet:"trades"`
	TotalPnL float64 `csv:"total_pnl" json:"total_pnl" parquet:"total_pnl"`
}

type sentimentRow struct {
	Value float64 `csv:"sentiment" json:"sentiment" parquet:"sentiment"`
	PnL   float64 `csv:"pnl" json:"pnl" parquet:"pnl"`
}

func nullable(v domain.NullFloat) *float64 {
	if !v.Valid {
		return nil
	}
	x := v.Value
	return &x
}

func boxField(b domain.BoxStats, v float64) *float64 {
	if b.N == 0 {
		return nil
	}
	return &v
}

func sideRows(r domain.Report) []sideRow {
	out := make([]sideRow, len(r.Sides))
	for i, s := range r.Sides {
		out[i] = sideRow{
			Side:     string(s.Side),
			Trades:   int64(s.Trades),
			PnLCount: int64(s.PnLCount),
			Wins:     int64(s.Wins),
			Losses:   int64(s.Losses),
			MeanPnL:  nullable(s.MeanPnL),
			WinRate:  nullable(s.WinRate),
			Q1:       boxField(s.Box, s.Box.Q1),
			Median:   boxField(s.Box, s.Box.Median),
			Q3:       boxField(s.Box, s.Box.Q3),
			Outliers: int64(s.Box.Outliers),
		}
	}
	return out
}

// hourRows exports the all-accounts buckets followed by each cohort's.
func hourRows(r domain.Report) []hourRow {
	out := make([]hourRow, 0, 24*3)
	add := func(cohort string, buckets [24]domain.HourBucket) {
		for _, h := range buckets {
			out = append(out, hourRow{
				Cohort:   cohort,
				Hour:     int64(h.Hour),
				Trades:   int64(h.Trades),
				PnLCount: int64(h.PnLCount),
				MeanPnL:  nullable(h.MeanPnL),
			})
		}
	}
	add(allCohort, r.Hourly)
	if r.Cohorts.N > 0 {
		add(r.Cohorts.Top.Name, r.Cohorts.Top.Hourly)
		add(r.Cohorts.Bottom.Name, r.Cohorts.Bottom.Hourly)
	}
	return out
}

func instrumentRows(r domain.Report) []instrumentRow {
	rank := make(map[string]int, len(r.TopK))
	for i, in := range r.TopK {
		rank[in.Instrument] = i + 1
	}
	out := make([]instrumentRow, len(r.Instruments))
	for i, in := range r.Instruments {
		out[i] = instrumentRow{
			Rank:       int64(rank[in.Instrument]),
			Instrument: in.Instrument,
			Trades:     int64(in.Trades),
			PnLCount:   int64(in.PnLCount),
			MeanPnL:    nullable(in.MeanPnL),
			WinRate:    nullable(in.WinRate),
			TopK:       rank[in.Instrument] > 0,
		}
	}
	return out
}

func cumulativeRows(r domain.Report) []cumulativeRow {
	out := make([]cumulativeRow, 0, len(r.Cumulative))
	add := func(cohort string, pts []domain.CumulativePoint) {
		for _, p := range pts {
			out = append(out, cumulativeRow{
				Cohort:     cohort,
				Timestamp:  p.Timestamp.Format(time.RFC3339),
				PnL:        p.PnL,
				Cumulative: p.Cumulative,
			})
		}
	}
	add(allCohort, r.Cumulative)
	if r.Cohorts.N > 0 {
		add(r.Cohorts.Top.Name, r.Cohorts.Top.Cumulative)
		add(r.Cohorts.Bottom.Name, r.Cohorts.Bottom.Cumulative)
	}
	return out
}

func accountRows(r domain.Report) []accountRow {
	var out []accountRow
	for _, c := range []domain.Cohort{r.Cohorts.Top, r.Cohorts.Bottom} {
		for i, a := range c.Accounts {
			out = append(out, accountRow{
				Cohort:   c.Name,
				Rank:     int64(i + 1),
				Account:  a.Account,
				Trades:   int64(a.Trades),
				TotalPnL: a.TotalPnL,
			})
		}
	}
	return out
}

func sentimentRows(r domain.Report) []sentimentRow {
	out := make([]sentimentRow, len(r.Sentiment.Samples))
	for i, s := range r.Sentiment.Samples {
		out[i] = sentimentRow{Value: s.Value, PnL: s.PnL}
	}
	return out
}
