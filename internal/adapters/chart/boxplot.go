package chart

import (
	"image/color"

	"github.com/alejandrodnm/pnlstats/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// boxes draws pre-computed BoxStats at x = 0..n-1. plotter.BoxPlot would
// recompute quartiles from raw values with its own quantile rule.
type boxes struct {
	stats  []domain.BoxStats
	colors []color.Color
	width  vg.Length
}

var boxEdge = draw.LineStyle{Color: color.Black, Width: vg.Points(1)}

// Plot implements plot.Plotter.
func (b *boxes) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	half := b.width / 2
	capHalf := b.width / 4

	for i, s := range b.stats {
		if s.N == 0 {
			continue
		}
		x := trX(float64(i))
		q1, q3, med := trY(s.Q1), trY(s.Q3), trY(s.Median)
		lo, hi := trY(s.LowWhisker), trY(s.HiWhisker)

		box := []vg.Point{
			{X: x - half, Y: q1},
			{X: x + half, Y: q1},
			{X: x + half, Y: q3},
			{X: x - half, Y: q3},
		}
		c.FillPolygon(b.colors[i], c.ClipPolygonY(box))
		outline := append(box, box[0])
		c.StrokeLines(boxEdge, c.ClipLinesY(outline)...)

		c.StrokeLines(boxEdge, c.ClipLinesY(
			[]vg.Point{{X: x - half, Y: med}, {X: x + half, Y: med}},
			[]vg.Point{{X: x, Y: q3}, {X: x, Y: hi}},
			[]vg.Point{{X: x, Y: q1}, {X: x, Y: lo}},
			[]vg.Point{{X: x - capHalf, Y: hi}, {X: x + capHalf, Y: hi}},
			[]vg.Point{{X: x - capHalf, Y: lo}, {X: x + capHalf, Y: lo}},
		)...)
	}
}

// DataRange implements plot.DataRanger. Outliers are excluded from the range.
func (b *boxes) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = -0.5, float64(len(b.stats))-0.5
	first := true
	for _, s := range b.stats {
		if s.N == 0 {
			continue
		}
		if first || s.LowWhisker < ymin {
			ymin = s.LowWhisker
		}
		if first || s.HiWhisker > ymax {
			ymax = s.HiWhisker
		}
		first = false
	}
	return xmin, xmax, ymin, ymax
}
