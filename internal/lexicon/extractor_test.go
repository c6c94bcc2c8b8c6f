package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLexicon() *Lexicon {
	return New(
		[]string{"AAPL", "TSLA", "ALL", "F", "SPY", "AMD"},
		[]string{"ALL"},
		[]string{"BUY", "SELL", "CALLS", "PUTS", "SHARES"},
	)
}

func TestExtractCashTagAlwaysAccepted(t *testing.T) {
	e := NewExtractor(testLexicon())

	assert.Equal(t, []string{"AAPL"}, e.Extract("loading up on $AAPL today"))
	// Cash-tag wins even for ambiguous symbols with no context.
	assert.Equal(t, []string{"ALL"}, e.Extract("$ALL looks interesting"))
	// And for single letters.
	assert.Equal(t, []string{"F"}, e.Extract("$F to the moon"))
}

func TestExtractSafeMultiLetterWithoutContext(t *testing.T) {
	e := NewExtractor(testLexicon())

	got := e.Extract("TSLA just broke out")
	assert.Equal(t, []string{"TSLA"}, got)
}

func TestExtractSingleLetterNeedsContext(t *testing.T) {
	e := NewExtractor(testLexicon())

	assert.Empty(t, e.Extract("F in the chat"))
	assert.Equal(t, []string{"F"}, e.Extract("time to BUY F here"))
}

func TestExtractAmbiguousNeedsContext(t *testing.T) {
	e := NewExtractor(testLexicon())

	assert.Contains(t, e.Extract("I think we should BUY ALL the shares"), "ALL")
	assert.NotContains(t, e.Extract("ALL the stonks are cheap"), "ALL")
}

func TestExtractUnknownSymbolRejected(t *testing.T) {
	e := NewExtractor(testLexicon())

	assert.Empty(t, e.Extract("$ZZZZ is not a real ticker"))
	assert.Empty(t, e.Extract("BUY XYZQ now"))
}

func TestExtractCaseInsensitiveInput(t *testing.T) {
	e := NewExtractor(testLexicon())

	assert.Equal(t, []string{"AAPL"}, e.Extract("$aapl earnings tonight"))
	assert.Equal(t, []string{"TSLA"}, e.Extract("tsla calls printing"))
}

func TestExtractDedupPreservesFirstOccurrenceOrder(t *testing.T) {
	e := NewExtractor(testLexicon())

	got := e.Extract("$TSLA then $AAPL then $TSLA again then $AMD")
	assert.Equal(t, []string{"TSLA", "AAPL", "AMD"}, got)
}

func TestExtractEmptyText(t *testing.T) {
	e := NewExtractor(testLexicon())

	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("   \n\t "))
}

func TestExtractWordBoundaries(t *testing.T) {
	e := NewExtractor(testLexicon())

	// AMD embedded in a longer word must not match.
	assert.Empty(t, e.Extract("checking the AMDAHL system"))
	// Punctuation adjacency is fine.
	assert.Equal(t, []string{"SPY", "AAPL"}, e.Extract("watch SPY, then $AAPL!"))
}

func TestExtractIsDeterministic(t *testing.T) {
	e := NewExtractor(testLexicon())
	text := "BUY $TSLA and AAPL, maybe ALL and F too"

	first := e.Extract(text)
	require.NotEmpty(t, first)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, e.Extract(text))
	}
}

func TestLexiconNormalizesEntries(t *testing.T) {
	lex := New([]string{" aapl "}, nil, []string{"buy"})

	assert.True(t, lex.IsTicker("AAPL"))
	assert.True(t, lex.IsBooster("BUY"))
	assert.False(t, lex.IsAmbiguous("AAPL"))
}
