package dto

// SentimentScore is one (label, score) pair returned by a classifier.
type SentimentScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
