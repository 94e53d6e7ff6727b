package analytics

import (
	"time"

	"github.com/alejandrodnm/pnlstats/internal/domain"
)

// Config contiene los parámetros del análisis.
type Config struct {
	CohortSize int     // N for top-N / bottom-N accounts
	TopK       int     // instruments shown, by trade count
	Whisker    float64 // box-plot whisker, × IQR
	Smoother   Smoother
}

// DefaultConfig returns N=5, top-K=10, whisker 1.5 and lowess smoothing.
func DefaultConfig() Config {
	return Config{
		CohortSize: DefaultCohortSize,
		TopK:       DefaultTopK,
		Whisker:    DefaultWhisker,
		Smoother:   DefaultLowess(),
	}
}

// Analyzer computes every summary of a report. Trade aggregates run on the
// trade table; only the sentiment trend and the match count use the joined one.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an Analyzer. Zero fields fall back to the defaults,
// except CohortSize and TopK which accept 0.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.CohortSize < 0 {
		cfg.CohortSize = DefaultCohortSize
	}
	if cfg.TopK < 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.Whisker <= 0 {
		cfg.Whisker = DefaultWhisker
	}
	if cfg.Smoother == nil {
		cfg.Smoother = DefaultLowess()
	}
	return &Analyzer{cfg: cfg}
}

// Config returns the effective configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// Analyze runs every aggregate. trades and joined are read-only; a trade
// fanned out by duplicate sentiment dates still counts once in the trade
// aggregates.
func (a *Analyzer) Analyze(trades []domain.Trade, joined []domain.JoinedTrade) domain.Report {
	rows := domain.Unjoined(trades)
	instruments := ByInstrument(rows)

	matched := 0
	for _, r := range joined {
		if r.HasSentiment {
			matched++
		}
	}

	return domain.Report{
		GeneratedAt: time.Now().UTC(),
		Joined:      len(joined),
		Matched:     matched,
		TotalPnL:    TotalPnL(rows),
		Sides:       BySide(rows, a.cfg.Whisker),
		Hourly:      ByHour(rows),
		Instruments: instruments,
		TopK:        TopInstruments(instruments, a.cfg.TopK),
		Cumulative:  CumulativePnL(rows),
		Cohorts:     CohortSplit(rows, a.cfg.CohortSize),
		Sentiment:   SentimentTrend(joined, a.cfg.Smoother),
	}
}
