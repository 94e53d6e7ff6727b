package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alejandrodnm/pnlstats/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Smoothing strategy names accepted by NewSmoother.
const (
	SmoothingLowess = "lowess"
	SmoothingLinear = "linear"
	SmoothingNone   = "none"
)

// Lowess defaults.
const (
	DefaultLowessFrac       = 2.0 / 3.0
	DefaultLowessIterations = 3
	DefaultLowessDeltaFrac  = 0.01
)

// Smoother fits a trend line through (x, y) samples.
// The result has one point per distinct x, in ascending x.
type Smoother interface {
	Name() string
	Smooth(xs, ys []float64) []domain.Point
}

// NewSmoother devuelve la estrategia de suavizado por nombre.
// frac e iterations solo aplican a lowess; valores <= 0 usan los defaults.
func NewSmoother(name string, frac float64, iterations int) (Smoother, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SmoothingLowess, "":
		l := DefaultLowess()
		if frac > 0 {
			l.Frac = frac
		}
		if iterations > 0 {
			l.Iterations = iterations
		}
		return l, nil
	case SmoothingLinear:
		return LinearSmoother{}, nil
	case SmoothingNone:
		return NoSmoother{}, nil
	}
	return nil, fmt.Errorf("analytics.NewSmoother: unknown smoothing %q (lowess|linear|none)", name)
}

// NoSmoother draws no trend.
type NoSmoother struct{}

func (NoSmoother) Name() string { return SmoothingNone }

func (NoSmoother) Smooth(_, _ []float64) []domain.Point { return nil }

// LinearSmoother is an ordinary least squares fit.
type LinearSmoother struct{}

func (LinearSmoother) Name() string { return SmoothingLinear }

// Smooth evaluates the OLS line at every distinct x. Fewer than two distinct
// x values cannot define a line and yield no trend.
func (LinearSmoother) Smooth(xs, ys []float64) []domain.Point {
	if len(xs) < 2 || len(xs) != len(ys) {
		return nil
	}
	distinct := distinctSorted(xs)
	if len(distinct) < 2 {
		return nil
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	out := make([]domain.Point, len(distinct))
	for i, x := range distinct {
		out[i] = domain.Point{X: x, Y: alpha + beta*x}
	}
	return out
}

// LowessSmoother es regresión local ponderada robusta (Cleveland 1979):
// ajuste lineal con pesos tricúbicos sobre los Frac×n vecinos más cercanos,
// re-ponderado Iterations veces con pesos bicuadrados de los residuos.
// Puntos a menos de DeltaFrac×rango del último ajuste se interpolan.
type LowessSmoother struct {
	Frac       float64
	Iterations int
	DeltaFrac  float64
}

// DefaultLowess returns frac=2/3, 3 robustifying iterations, delta 1% of the x range.
func DefaultLowess() LowessSmoother {
	return LowessSmoother{
		Frac:       DefaultLowessFrac,
		Iterations: DefaultLowessIterations,
		DeltaFrac:  DefaultLowessDeltaFrac,
	}
}

func (LowessSmoother) Name() string { return SmoothingLowess }

// Smooth fits the lowess curve and returns it at each distinct x.
func (l LowessSmoother) Smooth(xs, ys []float64) []domain.Point {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })
	x := make([]float64, n)
	y := make([]float64, n)
	for i, j := range idx {
		x[i] = xs[j]
		y[i] = ys[j]
	}

	frac := l.Frac
	if frac <= 0 || frac > 1 {
		frac = DefaultLowessFrac
	}
	iters := l.Iterations
	if iters < 0 {
		iters = 0
	}
	delta := math.Max(l.DeltaFrac, 0) * (x[n-1] - x[0])

	fitted := lowess(x, y, frac, iters, delta)

	out := make([]domain.Point, 0)
	for i := range x {
		if i > 0 && x[i] == x[i-1] {
			continue
		}
		out = append(out, domain.Point{X: x[i], Y: fitted[i]})
	}
	return out
}

// lowess fits sorted x/y. Returns the fitted value for every input point.
func lowess(x, y []float64, frac float64, iters int, delta float64) []float64 {
	n := len(x)
	fitted := make([]float64, n)
	if n == 1 {
		fitted[0] = y[0]
		return fitted
	}

	k := int(frac*float64(n) + 1e-10)
	if k < 2 {
		k = 2
	}
	if k > n {
		k = n
	}

	robust := make([]float64, n)
	for i := range robust {
		robust[i] = 1
	}
	weights := make([]float64, n)
	span := x[n-1] - x[0]

	for it := 0; it <= iters; it++ {
		left, right := 0, k-1
		last := -1
		i := 0
		for i < n {
			for right < n-1 && x[i]-x[left] > x[right+1]-x[i] {
				left++
				right++
			}

			fitted[i] = localFit(x, y, robust, weights, i, left, right, span)

			if last < i-1 {
				denom := x[i] - x[last]
				for j := last + 1; j < i; j++ {
					alpha := (x[j] - x[last]) / denom
					fitted[j] = alpha*fitted[i] + (1-alpha)*fitted[last]
				}
			}
			last = i

			cut := x[last] + delta
			for i = last + 1; i < n; i++ {
				if x[i] > cut {
					break
				}
				if x[i] == x[last] {
					fitted[i] = fitted[last]
					last = i
				}
			}
			i = max(last+1, i-1)
		}

		if it == iters {
			break
		}
		if !updateRobustWeights(y, fitted, robust) {
			break
		}
	}
	return fitted
}

// localFit computes the weighted linear fit at x[i] over the neighborhood
// [left, right], plus any point beyond right at the same distance.
func localFit(x, y, robust, w []float64, i, left, right int, span float64) float64 {
	n := len(x)
	xi := x[i]
	h := math.Max(xi-x[left], x[right]-xi)
	h9 := 0.999 * h
	h1 := 0.001 * h

	sumW := 0.0
	j := left
	for ; j < n; j++ {
		w[j] = 0
		r := math.Abs(x[j] - xi)
		if r <= h9 {
			if r <= h1 {
				w[j] = 1
			} else {
				q := r / h
				q = 1 - q*q*q
				w[j] = q * q * q
			}
			w[j] *= robust[j]
			sumW += w[j]
		} else if x[j] > xi {
			break
		}
	}
	end := j
	if sumW <= 0 {
		return y[i]
	}

	for j := left; j < end; j++ {
		w[j] /= sumW
	}

	if h > 0 {
		a := 0.0
		for j := left; j < end; j++ {
			a += w[j] * x[j]
		}
		b := xi - a
		c := 0.0
		for j := left; j < end; j++ {
			c += w[j] * (x[j] - a) * (x[j] - a)
		}
		if math.Sqrt(c) > 0.001*span {
			b /= c
			for j := left; j < end; j++ {
				w[j] *= b*(x[j]-a) + 1
			}
		}
	}

	fit := 0.0
	for j := left; j < end; j++ {
		fit += w[j] * y[j]
	}
	return fit
}

// updateRobustWeights sets bisquare weights from the residuals. Returns false
// when the residuals are already negligible and no further pass is useful.
func updateRobustWeights(y, fitted, robust []float64) bool {
	n := len(y)
	res := make([]float64, n)
	for i := range y {
		res[i] = math.Abs(y[i] - fitted[i])
	}
	sorted := append([]float64(nil), res...)
	sort.Float64s(sorted)
	cmad := 6 * Percentile(sorted, 0.5)

	scale := 0.0
	for _, v := range y {
		scale += math.Abs(v)
	}
	scale /= float64(n)
	if cmad <= 1e-7*scale {
		return false
	}

	c9 := 0.999 * cmad
	c1 := 0.001 * cmad
	for i, r := range res {
		switch {
		case r <= c1:
			robust[i] = 1
		case r > c9:
			robust[i] = 0
		default:
			u := r / cmad
			u = 1 - u*u
			robust[i] = u * u
		}
	}
	return true
}

func distinctSorted(xs []float64) []float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}
