package domain

import "time"

// NullFloat is an aggregate that may be undefined (mean of an empty group).
type NullFloat struct {
	Value float64
	Valid bool
}

// Float returns a valid NullFloat.
func Float(v float64) NullFloat { return NullFloat{Value: v, Valid: true} }

// BoxStats resume una distribución para un box plot.
// Whiskers se extienden hasta el dato más extremo dentro de whisker×IQR.
type BoxStats struct {
	N          int
	Min, Max   float64
	Q1         float64
	Median     float64
	Q3         float64
	LowWhisker float64
	HiWhisker  float64
	Outliers   int // puntos fuera de los whiskers, no se dibujan
}

// IQR returns the interquartile range.
func (b BoxStats) IQR() float64 { return b.Q3 - b.Q1 }

// SideSummary agrega los trades de un lado (BUY o SELL).
type SideSummary struct {
	Side     Side
	Trades   int // all rows, PnL or not
	PnLCount int // rows with a PnL
	Wins     int
	Losses   int // PnL <= 0
	MeanPnL  NullFloat
	WinRate  NullFloat // Wins / PnLCount
	Box      BoxStats
}

// HourBucket is the mean PnL of one hour of the day.
type HourBucket struct {
	Hour     int
	Trades   int
	PnLCount int
	MeanPnL  NullFloat
}

// InstrumentSummary aggregates the trades of one instrument (coin).
type InstrumentSummary struct {
	Instrument string
	Trades     int
	PnLCount   int
	MeanPnL    NullFloat
	WinRate    NullFloat
}

// CumulativePoint is the running PnL right after one trade.
type CumulativePoint struct {
	Timestamp  time.Time
	PnL        float64
	Cumulative float64
}

// AccountTotal is the summed PnL of one account.
type AccountTotal struct {
	Account  string
	TotalPnL float64
	Trades   int
}

// Cohort is a ranked subset of accounts with its own hourly and cumulative views.
type Cohort struct {
	Name       string
	Accounts   []AccountTotal
	Hourly     [24]HourBucket
	Cumulative []CumulativePoint
}

// CohortSplit holds the top-N and bottom-N accounts by total PnL.
type CohortSplit struct {
	Requested int // N asked for
	N         int // effective size after clamping
	Top       Cohort
	Bottom    Cohort
}

// SentimentSample pairs a trade's PnL with the sentiment value of its day.
type SentimentSample struct {
	Value float64
	PnL   float64
}

// Point is an x/y pair.
type Point struct {
	X, Y float64
}

// SentimentView is the PnL vs sentiment data plus its smoothed trend.
type SentimentView struct {
	Samples     []SentimentSample
	Trend       []Point
	Smoothing   string
	Correlation NullFloat
}

// Report is everything computed in one run. Derived, never persisted.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Trades      int
	Sentiments  int
	Joined      int
	Matched     int // joined rows with a sentiment value
	TotalPnL    float64
	Sides       []SideSummary
	Hourly      [24]HourBucket
	Instruments []InstrumentSummary
	TopK        []InstrumentSummary
	Cumulative  []CumulativePoint
	Cohorts     CohortSplit
	Sentiment   SentimentView
}
