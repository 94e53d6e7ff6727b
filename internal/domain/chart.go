package domain

import "time"

// ChartKind identifies how a Chart is drawn.
type ChartKind string

const (
	ChartBox        ChartKind = "box"
	ChartBar        ChartKind = "bar"
	ChartGroupedBar ChartKind = "grouped_bar"
	ChartLine       ChartKind = "line"
	ChartTimeLine   ChartKind = "time_line"
	ChartScatter    ChartKind = "scatter"
)

// Colors used across the chart set.
const (
	ColorGreen   = "#2ca02c"
	ColorRed     = "#d62728"
	ColorBlue    = "#1f77b4"
	ColorCrimson = "#dc143c"
	ColorBlack   = "#000000"
)

// Chart is a renderer-agnostic chart description with its data already computed.
type Chart struct {
	File   string // file name inside the output directory
	Kind   ChartKind
	Title  string
	XLabel string
	YLabel string

	// Categories label the x axis of box and bar charts.
	Categories []string
	Boxes      []BoxStats
	Series     []Series

	// Location is the zone of time-line tick labels (UTC when nil).
	Location *time.Location

	// RefLine, if set, draws a dashed horizontal line at that y.
	RefLine *float64
	Grid    bool
	Width   float64 // inches
	Height  float64 // inches
}

// SeriesStyle is how a series is drawn.
type SeriesStyle string

const (
	StyleLine    SeriesStyle = "line"
	StyleScatter SeriesStyle = "scatter"
	StyleBar     SeriesStyle = "bar"
)

// Series is one colored data set of a chart. Bar series use Values (one per
// category); line and scatter series use Points. Time lines carry Unix seconds in X.
type Series struct {
	Label  string
	Color  string
	Style  SeriesStyle
	Values []float64
	Points []Point
	Alpha  float64 // 0 means opaque
}
