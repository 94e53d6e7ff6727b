package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the day-month-year layout of the trade log timestamps.
const TimestampLayout = "02-01-2006 15:04"

// IST is the trade log's local time (UTC+05:30).
var IST = time.FixedZone("IST", 5*3600+30*60)

var sentimentDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseError describes the first malformed field found while normalizing.
type ParseError struct {
	Row   int // 0-based data row, header excluded
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: field %q: cannot parse %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NormalizeTrades parses raw trade rows and derives TradeDate, Hour and IsWin.
// Timestamps are read as wall-clock time in loc (IST when nil).
// Rows with an empty PnL are kept with HasPnL=false; any other malformed field
// aborts with a *ParseError.
func NormalizeTrades(raw []RawTrade, loc *time.Location) ([]Trade, error) {
	if loc == nil {
		loc = IST
	}
	trades := make([]Trade, 0, len(raw))
	for i, r := range raw {
		ts, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(r.TimestampIST), loc)
		if err != nil {
			return nil, &ParseError{Row: i, Field: "Timestamp IST", Value: r.TimestampIST, Err: err}
		}

		side, err := ParseSide(r.Side)
		if err != nil {
			return nil, &ParseError{Row: i, Field: "Side", Value: r.Side, Err: err}
		}

		pnl, ok, err := ParsePnL(r.ClosedPnL)
		if err != nil {
			return nil, &ParseError{Row: i, Field: "Closed PnL", Value: r.ClosedPnL, Err: err}
		}

		trades = append(trades, Trade{
			Account:    strings.TrimSpace(r.Account),
			Instrument: strings.TrimSpace(r.Coin),
			Side:       side,
			ClosedPnL:  pnl,
			HasPnL:     ok,
			Timestamp:  ts,
			TradeDate:  DateOf(ts),
			Hour:       ts.Hour(),
			IsWin:      ok && pnl > 0,
		})
	}
	return trades, nil
}

// ParseSide accepts BUY or SELL, case-insensitive.
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	}
	return "", fmt.Errorf("unknown side")
}

// ParsePnL parses a PnL cell. Empty, NaN and null cells are missing values
// (ok=false, no error).
func ParsePnL(s string) (v float64, ok bool, err error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "null", "none":
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("non-finite value")
	}
	return v, true, nil
}

// NormalizeSentiment parses raw Fear/Greed rows, truncating dates to the day.
func NormalizeSentiment(raw []RawSentiment) ([]Sentiment, error) {
	out := make([]Sentiment, 0, len(raw))
	for i, r := range raw {
		d, err := ParseDate(r.Date)
		if err != nil {
			return nil, &ParseError{Row: i, Field: "date", Value: r.Date, Err: err}
		}

		v, err := strconv.Atoi(strings.TrimSpace(r.Value))
		if err != nil {
			return nil, &ParseError{Row: i, Field: "value", Value: r.Value, Err: err}
		}
		if v < 0 || v > 100 {
			return nil, &ParseError{Row: i, Field: "value", Value: r.Value, Err: fmt.Errorf("out of range 0-100")}
		}

		out = append(out, Sentiment{
			Date:           d,
			Value:          v,
			Classification: strings.TrimSpace(r.Classification),
		})
	}
	return out, nil
}

// ParseDate reads a sentiment date in any of the accepted layouts.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range sentimentDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return DateOf(t), nil
		}
		lastErr = err
	}
	return Date{}, lastErr
}
