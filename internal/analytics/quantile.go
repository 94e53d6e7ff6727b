package analytics

import (
	"math"
	"sort"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// DefaultWhisker is the box-plot outlier rule: 1.5×IQR beyond the quartiles.
const DefaultWhisker = 1.5

// Percentile devuelve el percentil p (0..1) de datos ya ordenados,
// interpolando linealmente entre los rangos más cercanos: índice (n-1)×p.
// Devuelve NaN si no hay datos.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	pos := float64(n-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Box computes quartiles and whiskers for values. values is not modified.
func Box(values []float64, whisker float64) domain.BoxStats {
	if len(values) == 0 {
		return domain.BoxStats{}
	}
	if whisker <= 0 {
		whisker = DefaultWhisker
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	b := domain.BoxStats{
		N:      len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     Percentile(sorted, 0.25),
		Median: Percentile(sorted, 0.50),
		Q3:     Percentile(sorted, 0.75),
	}

	lowFence := b.Q1 - whisker*b.IQR()
	highFence := b.Q3 + whisker*b.IQR()

	b.LowWhisker = b.Q1
	for _, v := range sorted {
		if v >= lowFence {
			b.LowWhisker = math.Min(v, b.Q1)
			break
		}
	}
	b.HiWhisker = b.Q3
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highFence {
			b.HiWhisker = math.Max(sorted[i], b.Q3)
			break
		}
	}

	for _, v := range sorted {
		if v < lowFence || v > highFence {
			b.Outliers++
		}
	}
	return b
}
