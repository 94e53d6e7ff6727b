package chart_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alejandrodnm/pnlstats/internal/adapters/chart"
	"github.com/alejandrodnm/pnlstats/internal/analytics"
	"github.com/alejandrodnm/pnlstats/internal/application/report"
	"github.com/alejandrodnm/pnlstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *chart.Renderer {
	t.Helper()
	r, err := chart.NewRenderer(filepath.Join(t.TempDir(), "charts"))
	require.NoError(t, err)
	return r
}

func assertWritten(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRender_AllKinds(t *testing.T) {
	r := newRenderer(t)
	zero := 0.0

	charts := []domain.Chart{
		{
			File: "box.png", Kind: domain.ChartBox, Title: "box",
			Categories: []string{"BUY", "SELL"},
			Boxes: []domain.BoxStats{
				{N: 4, Min: -1, Max: 5, Q1: 0, Median: 1, Q3: 3, LowWhisker: -1, HiWhisker: 5},
				{N: 0},
			},
			Series: []domain.Series{{Color: domain.ColorGreen}, {Color: domain.ColorRed}},
			Grid:   true,
		},
		{
			File: "bar.png", Kind: domain.ChartBar, Title: "bar",
			Categories: []string{"a", "b", "c"},
			Series:     []domain.Series{{Color: domain.ColorBlue, Values: []float64{1, -2, 3}}},
			RefLine:    &zero,
		},
		{
			File: "grouped.png", Kind: domain.ChartGroupedBar, Title: "grouped",
			Categories: []string{"BUY", "SELL"},
			Series: []domain.Series{
				{Label: "Profit", Color: domain.ColorGreen, Values: []float64{3, 4}},
				{Label: "Loss", Color: domain.ColorRed, Values: []float64{1, 2}},
			},
		},
		{
			File: "line.png", Kind: domain.ChartLine, Title: "line",
			Series: []domain.Series{{Label: "all", Color: domain.ColorBlue, Style: domain.StyleLine,
				Points: []domain.Point{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 5, Y: -1}}}},
		},
		{
			File: "time.png", Kind: domain.ChartTimeLine, Title: "time",
			Series: []domain.Series{{Label: "cum", Color: domain.ColorBlue,
				Points: []domain.Point{{X: 1709263800, Y: 1}, {X: 1709350200, Y: 3}}}},
		},
		{
			File: "scatter.svg", Kind: domain.ChartScatter, Title: "scatter",
			Series: []domain.Series{
				{Color: domain.ColorBlue, Style: domain.StyleScatter, Alpha: 0.1,
					Points: []domain.Point{{X: 10, Y: 1}, {X: 50, Y: -2}, {X: 90, Y: 4}}},
				{Label: "trend", Color: domain.ColorCrimson, Style: domain.StyleLine,
					Points: []domain.Point{{X: 10, Y: 0}, {X: 90, Y: 2}}},
			},
		},
	}

	for _, c := range charts {
		t.Run(c.File, func(t *testing.T) {
			require.NoError(t, r.Render(context.Background(), c))
			assertWritten(t, filepath.Join(r.Dir(), c.File))
		})
	}
}

func TestRender_EmptySeriesStillWritesFile(t *testing.T) {
	r := newRenderer(t)
	c := domain.Chart{File: "empty.png", Kind: domain.ChartScatter, Title: "empty"}

	require.NoError(t, r.Render(context.Background(), c))
	assertWritten(t, filepath.Join(r.Dir(), "empty.png"))
}

func TestRender_BarsWithoutCategories(t *testing.T) {
	r := newRenderer(t)
	zero := 0.0
	c := domain.Chart{
		File: "no_coins.png", Kind: domain.ChartBar, Title: "no coins",
		Series:  []domain.Series{{Color: domain.ColorBlue}},
		RefLine: &zero,
		Grid:    true,
	}

	require.NoError(t, r.Render(context.Background(), c))
	assertWritten(t, filepath.Join(r.Dir(), "no_coins.png"))
}

func TestRender_EmptyReportWritesEveryChart(t *testing.T) {
	r := newRenderer(t)
	empty := analytics.NewAnalyzer(analytics.DefaultConfig()).Analyze(nil, nil)

	charts := report.Charts(empty)
	require.Len(t, charts, 10)
	for _, c := range charts {
		t.Run(c.File, func(t *testing.T) {
			require.NoError(t, r.Render(context.Background(), c))
			assertWritten(t, filepath.Join(r.Dir(), c.File))
		})
	}
}

func TestRender_Errors(t *testing.T) {
	r := newRenderer(t)

	t.Run("no file name", func(t *testing.T) {
		assert.Error(t, r.Render(context.Background(), domain.Chart{Kind: domain.ChartBar}))
	})
	t.Run("unknown kind", func(t *testing.T) {
		assert.Error(t, r.Render(context.Background(), domain.Chart{File: "x.png", Kind: "pie"}))
	})
	t.Run("value count mismatch", func(t *testing.T) {
		c := domain.Chart{File: "x.png", Kind: domain.ChartBar, Categories: []string{"a", "b"},
			Series: []domain.Series{{Values: []float64{1}}}}
		assert.Error(t, r.Render(context.Background(), c))
	})
	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := r.Render(ctx, domain.Chart{File: "x.png", Kind: domain.ChartBar})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
