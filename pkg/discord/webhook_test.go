package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorForText(t *testing.T) {
	assert.Equal(t, ColorBullish, ColorForText("loading TSLA calls before earnings"))
	assert.Equal(t, ColorBearish, ColorForText("grabbing puts, this is going down"))
	assert.Equal(t, ColorNeutral, ColorForText("anyone watching the fed meeting?"))
}

func TestColorForTextBullishWinsTies(t *testing.T) {
	assert.Equal(t, ColorBullish, ColorForText("sell puts, buy calls"))
}

func TestColorForTextWholeWordsOnly(t *testing.T) {
	// "buying" contains "buy" but is not the word "buy".
	assert.Equal(t, ColorNeutral, ColorForText("buying groceries later"))
	assert.Equal(t, ColorBullish, ColorForText("buy the dip"))
}

func TestColorForTextCaseInsensitive(t *testing.T) {
	assert.Equal(t, ColorBullish, ColorForText("BUY BUY BUY"))
	assert.Equal(t, ColorBearish, ColorForText("Bearish on the whole sector"))
}
