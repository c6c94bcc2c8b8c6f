package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSentimentLabel(t *testing.T) {
	assert.Equal(t, SentimentBullish, NormalizeSentimentLabel("BULLISH"))
	assert.Equal(t, SentimentBullish, NormalizeSentimentLabel("positive"))
	assert.Equal(t, SentimentBullish, NormalizeSentimentLabel(" buy "))
	assert.Equal(t, SentimentBullish, NormalizeSentimentLabel("Long"))

	assert.Equal(t, SentimentBearish, NormalizeSentimentLabel("BEARISH"))
	assert.Equal(t, SentimentBearish, NormalizeSentimentLabel("negative"))
	assert.Equal(t, SentimentBearish, NormalizeSentimentLabel("sell"))
	assert.Equal(t, SentimentBearish, NormalizeSentimentLabel("SHORT"))

	assert.Equal(t, SentimentNeutral, NormalizeSentimentLabel("NEUTRAL"))
	assert.Equal(t, SentimentNeutral, NormalizeSentimentLabel("mixed"))
	assert.Equal(t, SentimentNeutral, NormalizeSentimentLabel(""))
}

func TestNeutralSentiment(t *testing.T) {
	s := NeutralSentiment()

	assert.Equal(t, SentimentNeutral, s.Label)
	assert.Zero(t, s.Confidence)
}
