package domain

import "time"

// HistoryPoint is one sample of a coin's historical price series.
type HistoryPoint struct {
	Time  string  `json:"time"` // human-readable date derived from the sample timestamp
	Price float64 `json:"price"`
}

// HistorySeries is the ordered 7-day price series for one (coin, currency)
// pair. Once fetched it is treated as immutable for the session.
type HistorySeries []HistoryPoint

// HistoryDays is the fixed trailing window of the history endpoint.
const HistoryDays = 7

// FormatHistoryTime renders a sample timestamp (Unix milliseconds) as the
// date label used in charts. UTC, so labels don't depend on the host zone.
func FormatHistoryTime(unixMillis int64) string {
	return time.UnixMilli(unixMillis).UTC().Format("1/2/2006")
}
