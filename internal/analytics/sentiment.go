package analytics

import (
	"math"

	"github.com/alejandrodnm/pnlstats/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// PnLVsSentiment returns (sentiment value, PnL) pairs in row order, skipping
// rows without a sentiment match or without PnL.
func PnLVsSentiment(rows []domain.JoinedTrade) []domain.SentimentSample {
	out := make([]domain.SentimentSample, 0, len(rows))
	for _, r := range rows {
		if !r.HasSentiment || !r.HasPnL {
			continue
		}
		out = append(out, domain.SentimentSample{
			Value: float64(r.SentimentValue),
			PnL:   r.ClosedPnL,
		})
	}
	return out
}

// SentimentCorrelation is the Pearson correlation between sentiment and PnL.
// Null with fewer than two samples or when either side has no variance.
func SentimentCorrelation(samples []domain.SentimentSample) domain.NullFloat {
	if len(samples) < 2 {
		return domain.NullFloat{}
	}
	xs, ys := splitSamples(samples)
	c := stat.Correlation(xs, ys, nil)
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return domain.NullFloat{}
	}
	return domain.Float(c)
}

// SentimentTrend builds the sentiment view: samples, smoothed trend and correlation.
func SentimentTrend(rows []domain.JoinedTrade, smoother Smoother) domain.SentimentView {
	if smoother == nil {
		smoother = NoSmoother{}
	}
	samples := PnLVsSentiment(rows)
	xs, ys := splitSamples(samples)
	return domain.SentimentView{
		Samples:     samples,
		Trend:       smoother.Smooth(xs, ys),
		Smoothing:   smoother.Name(),
		Correlation: SentimentCorrelation(samples),
	}
}

func splitSamples(samples []domain.SentimentSample) (xs, ys []float64) {
	xs = make([]float64, len(samples))
	ys = make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.Value
		ys[i] = s.PnL
	}
	return xs, ys
}
