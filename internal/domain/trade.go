package domain

import (
	"fmt"
	"time"
)

// Side es la dirección de un trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Sides lists the trade directions in display order.
var Sides = []Side{SideBuy, SideSell}

// RawTrade is one row of the trade log exactly as read from the source.
type RawTrade struct {
	Account      string `csv:"Account"`
	Coin         string `csv:"Coin"`
	Side         string `csv:"Side"`
	ClosedPnL    string `csv:"Closed PnL"`
	TimestampIST string `csv:"Timestamp IST"`
}

// Trade is a normalized execution. One row per execution, immutable once loaded.
type Trade struct {
	Account    string
	Instrument string
	Side       Side
	ClosedPnL  float64
	HasPnL     bool // false when the source cell was empty or NaN
	Timestamp  time.Time

	// Derived
	TradeDate Date
	Hour      int  // 0..23, wall clock of Timestamp
	IsWin     bool // HasPnL && ClosedPnL > 0
}

// RawSentiment is one row of the Fear/Greed index as read from the source.
type RawSentiment struct {
	Date           string `csv:"date"`
	Value          string `csv:"value"`
	Classification string `csv:"classification"`
}

// Sentiment is the daily Fear/Greed score (0-100) with its label.
type Sentiment struct {
	Date           Date
	Value          int
	Classification string
}

// JoinedTrade is a trade with the sentiment of its calendar day, if any.
type JoinedTrade struct {
	Trade
	SentimentValue int
	SentimentClass string
	HasSentiment   bool
}

// Date is a calendar day without time or zone. Comparable, usable as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String formats the date as 2006-01-02.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}
