package entity

import "strings"

// Sentiment labels.
const (
	SentimentBullish = "BULLISH"
	SentimentBearish = "BEARISH"
	SentimentNeutral = "NEUTRAL"
)

// SentimentResult is the classification outcome for one message.
type SentimentResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// NeutralSentiment is the safe default used when the classifier fails.
func NeutralSentiment() SentimentResult {
	return SentimentResult{Label: SentimentNeutral, Confidence: 0}
}

// NormalizeSentimentLabel maps a classifier label onto the fixed label set.
// Anything that is not recognizably bullish or bearish becomes NEUTRAL.
func NormalizeSentimentLabel(label string) string {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case SentimentBullish, "POSITIVE", "BUY", "LONG":
		return SentimentBullish
	case SentimentBearish, "NEGATIVE", "SELL", "SHORT":
		return SentimentBearish
	default:
		return SentimentNeutral
	}
}
