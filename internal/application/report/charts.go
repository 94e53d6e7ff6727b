package report

import (
	"fmt"
	"time"

	"github.com/alejandrodnm/pnlstats/internal/analytics"
	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// Charts devuelve el set fijo de gráficos del reporte, uno por vista.
// Undefined aggregates (empty group) are drawn as 0 in bar charts and skipped
// in line charts.
func Charts(r domain.Report) []domain.Chart {
	loc := chartLocation(r)
	n := r.Cohorts.Requested

	return []domain.Chart{
		sideBoxChart(r),
		profitsLossesChart(r),
		sideBarChart(r, "chart_side_mean_pnl.png", "Average Closed PnL by Side", "Mean Closed PnL",
			func(s domain.SideSummary) domain.NullFloat { return s.MeanPnL }),
		sideBarChart(r, "chart_side_win_rate.png", "Win Rate by Side", "Win Rate",
			func(s domain.SideSummary) domain.NullFloat { return s.WinRate }),
		{
			File:   "chart_hourly_pnl.png",
			Kind:   domain.ChartLine,
			Title:  "Average Closed PnL by Hour of Day",
			XLabel: "Hour (IST)",
			YLabel: "Mean Closed PnL",
			Series: []domain.Series{{Color: domain.ColorBlue, Style: domain.StyleLine, Points: hourlyPoints(r.Hourly)}},
			Grid:   true,
			Width:  8, Height: 4,
		},
		topCoinsChart(r),
		{
			File:     "chart_cumulative_pnl.png",
			Kind:     domain.ChartTimeLine,
			Title:    "Cumulative Closed PnL Over Time",
			XLabel:   "Time (IST)",
			YLabel:   "Cumulative PnL (USD)",
			Series:   []domain.Series{{Color: domain.ColorBlue, Style: domain.StyleLine, Points: cumulativePoints(r.Cumulative)}},
			Location: loc,
			Grid:     true,
			Width:    10, Height: 4,
		},
		{
			File:   fmt.Sprintf("top%d_vs_bottom%d_by_profit.png", n, n),
			Kind:   domain.ChartLine,
			Title:  fmt.Sprintf("Avg Closed PnL by Hour: Top %d vs Bottom %d", n, n),
			XLabel: "Hour (IST)",
			YLabel: "Avg Closed PnL (USD)",
			Series: []domain.Series{
				{Label: fmt.Sprintf("Top %d by Profit", n), Color: domain.ColorGreen, Style: domain.StyleLine,
					Points: hourlyPoints(r.Cohorts.Top.Hourly)},
				{Label: fmt.Sprintf("Bottom %d by Profit", n), Color: domain.ColorRed, Style: domain.StyleLine,
					Points: hourlyPoints(r.Cohorts.Bottom.Hourly)},
			},
			RefLine: zero(),
			Grid:    true,
			Width:   8, Height: 4,
		},
		{
			File:   fmt.Sprintf("cumulative_pnl_top%d_vs_bottom%d.png", n, n),
			Kind:   domain.ChartTimeLine,
			Title:  fmt.Sprintf("Cumulative PnL: Top-%d vs Bottom-%d Traders", n, n),
			XLabel: "Time (IST)",
			YLabel: "Cumulative PnL (USD)",
			Series: []domain.Series{
				{Label: fmt.Sprintf("Top %d Traders", n), Color: domain.ColorGreen, Style: domain.StyleLine,
					Points: cumulativePoints(r.Cohorts.Top.Cumulative)},
				{Label: fmt.Sprintf("Bottom %d Traders", n), Color: domain.ColorRed, Style: domain.StyleLine,
					Points: cumulativePoints(r.Cohorts.Bottom.Cumulative)},
			},
			Location: loc,
			Grid:     true,
			Width:    10, Height: 4,
		},
		sentimentChart(r),
	}
}

func sideBoxChart(r domain.Report) domain.Chart {
	buy := analytics.SideOf(r.Sides, domain.SideBuy)
	sell := analytics.SideOf(r.Sides, domain.SideSell)
	return domain.Chart{
		File:       "buy_vs_sell_pnl.png",
		Kind:       domain.ChartBox,
		Title:      "Closed PnL Distribution by Trade Side",
		YLabel:     "Closed PnL (USD)",
		Categories: []string{string(domain.SideBuy), string(domain.SideSell)},
		Boxes:      []domain.BoxStats{buy.Box, sell.Box},
		Series:     []domain.Series{{Color: domain.ColorGreen}, {Color: domain.ColorRed}},
		Grid:       true,
		Width:      8, Height: 6,
	}
}

func profitsLossesChart(r domain.Report) domain.Chart {
	buy := analytics.SideOf(r.Sides, domain.SideBuy)
	sell := analytics.SideOf(r.Sides, domain.SideSell)
	return domain.Chart{
		File:       "profits_losses_by_side.png",
		Kind:       domain.ChartGroupedBar,
		Title:      "Number of Profits vs. Losses by Trade Side",
		XLabel:     "Trade Side",
		YLabel:     "Count of Trades",
		Categories: []string{string(domain.SideBuy), string(domain.SideSell)},
		Series: []domain.Series{
			{Label: "Profits", Color: domain.ColorGreen, Style: domain.StyleBar,
				Values: []float64{float64(buy.Wins), float64(sell.Wins)}},
			{Label: "Losses", Color: domain.ColorRed, Style: domain.StyleBar,
				Values: []float64{float64(buy.Losses), float64(sell.Losses)}},
		},
		Grid:  true,
		Width: 8, Height: 6,
	}
}

func sideBarChart(r domain.Report, file, title, ylabel string, value func(domain.SideSummary) domain.NullFloat) domain.Chart {
	cats := make([]string, 0, len(domain.Sides))
	vals := make([]float64, 0, len(domain.Sides))
	for _, side := range domain.Sides {
		cats = append(cats, string(side))
		vals = append(vals, orZero(value(analytics.SideOf(r.Sides, side))))
	}
	return domain.Chart{
		File:       file,
		Kind:       domain.ChartBar,
		Title:      title,
		XLabel:     "Side",
		YLabel:     ylabel,
		Categories: cats,
		Series:     []domain.Series{{Color: domain.ColorBlue, Style: domain.StyleBar, Values: vals}},
		Width:      8, Height: 4,
	}
}

func topCoinsChart(r domain.Report) domain.Chart {
	cats := make([]string, len(r.TopK))
	vals := make([]float64, len(r.TopK))
	for i, in := range r.TopK {
		cats[i] = in.Instrument
		vals[i] = orZero(in.MeanPnL)
	}
	return domain.Chart{
		File:       "chart_top_coins_pnl.png",
		Kind:       domain.ChartBar,
		Title:      fmt.Sprintf("Mean Closed PnL for Top %d Coins", len(r.TopK)),
		YLabel:     "Mean Closed PnL",
		Categories: cats,
		Series:     []domain.Series{{Color: domain.ColorBlue, Style: domain.StyleBar, Values: vals}},
		RefLine:    zero(),
		Width:      8, Height: 4,
	}
}

func sentimentChart(r domain.Report) domain.Chart {
	samples := make([]domain.Point, len(r.Sentiment.Samples))
	for i, s := range r.Sentiment.Samples {
		samples[i] = domain.Point{X: s.Value, Y: s.PnL}
	}
	series := []domain.Series{
		{Color: domain.ColorBlue, Style: domain.StyleScatter, Points: samples, Alpha: 0.1},
	}
	if len(r.Sentiment.Trend) > 0 {
		series = append(series, domain.Series{
			Label:  r.Sentiment.Smoothing,
			Color:  domain.ColorCrimson,
			Style:  domain.StyleLine,
			Points: r.Sentiment.Trend,
		})
	}
	return domain.Chart{
		File:   "pnl_vs_sentiment.png",
		Kind:   domain.ChartScatter,
		Title:  "Trade PnL vs Fear/Greed Index (0-100)",
		XLabel: "Fear/Greed Index Value",
		YLabel: "Closed PnL (USD)",
		Series: series,
		Grid:   true,
		Width:  8, Height: 4,
	}
}

func hourlyPoints(buckets [24]domain.HourBucket) []domain.Point {
	var pts []domain.Point
	for _, b := range buckets {
		if b.MeanPnL.Valid {
			pts = append(pts, domain.Point{X: float64(b.Hour), Y: b.MeanPnL.Value})
		}
	}
	return pts
}

func cumulativePoints(points []domain.CumulativePoint) []domain.Point {
	pts := make([]domain.Point, len(points))
	for i, p := range points {
		pts[i] = domain.Point{X: float64(p.Timestamp.Unix()), Y: p.Cumulative}
	}
	return pts
}

// chartLocation takes the zone of the trade timestamps for time-axis labels.
func chartLocation(r domain.Report) *time.Location {
	if len(r.Cumulative) > 0 {
		return r.Cumulative[0].Timestamp.Location()
	}
	return domain.IST
}

func orZero(v domain.NullFloat) float64 {
	if !v.Valid {
		return 0
	}
	return v.Value
}

func zero() *float64 {
	z := 0.0
	return &z
}
