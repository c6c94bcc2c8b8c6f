package dto

// TrendingRow is one aggregated ticker group in a trending feed report.
// Sentiment carries the most recent feed row's sentiment for the group.
type TrendingRow struct {
	Ticker    string `json:"ticker"`
	Mentions  int    `json:"mentions"`
	Sentiment string `json:"sentiment"`
}
