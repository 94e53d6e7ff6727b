package domain

import "sort"

// Join attaches to each trade the sentiment of its TradeDate (left join).
// Trades without a match keep HasSentiment=false. A date present more than
// once in sentiment fans the trade out into one row per match; callers that
// need a 1:1 row count must check DuplicateDates first.
func Join(trades []Trade, sentiment []Sentiment) []JoinedTrade {
	byDate := make(map[Date][]Sentiment, len(sentiment))
	for _, s := range sentiment {
		byDate[s.Date] = append(byDate[s.Date], s)
	}

	out := make([]JoinedTrade, 0, len(trades))
	for _, t := range trades {
		matches := byDate[t.TradeDate]
		if len(matches) == 0 {
			out = append(out, JoinedTrade{Trade: t})
			continue
		}
		for _, s := range matches {
			out = append(out, JoinedTrade{
				Trade:          t,
				SentimentValue: s.Value,
				SentimentClass: s.Classification,
				HasSentiment:   true,
			})
		}
	}
	return out
}

// Unjoined wraps trades as rows without sentiment, one row per trade.
func Unjoined(trades []Trade) []JoinedTrade {
	out := make([]JoinedTrade, len(trades))
	for i, t := range trades {
		out[i] = JoinedTrade{Trade: t}
	}
	return out
}

// DuplicateDates returns, in ascending order, the dates that appear more than once.
func DuplicateDates(sentiment []Sentiment) []Date {
	seen := make(map[Date]int, len(sentiment))
	for _, s := range sentiment {
		seen[s.Date]++
	}
	var dups []Date
	for d, n := range seen {
		if n > 1 {
			dups = append(dups, d)
		}
	}
	sort.Slice(dups, func(i, j int) bool { return dups[i].Before(dups[j]) })
	return dups
}
