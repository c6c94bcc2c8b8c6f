package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessageShortTextUnchanged(t *testing.T) {
	assert.Equal(t, []string{"hello"}, SplitMessage("hello", 10))
	assert.Equal(t, []string{""}, SplitMessage("", 10))
}

func TestSplitMessageCutsOnLineBoundaries(t *testing.T) {
	text := "aaaa\nbbbb\ncc"

	parts := SplitMessage(text, 10)

	require.Equal(t, []string{"aaaa\nbbbb", "cc"}, parts)
	for _, part := range parts {
		assert.LessOrEqual(t, len(part), 10)
	}
}

func TestSplitMessagePreservesAllLines(t *testing.T) {
	var lines []string
	for i := 0; i < 200; i++ {
		lines = append(lines, "1. *TSLA* 😊 5 mentions")
	}
	text := strings.Join(lines, "\n")

	parts := SplitMessage(text, MaxMessageLen)

	require.Greater(t, len(parts), 1)
	for _, part := range parts {
		assert.LessOrEqual(t, len(part), MaxMessageLen)
	}
	assert.Equal(t, text, strings.Join(parts, "\n"))
}

func TestSplitMessageOversizedLineKeptWhole(t *testing.T) {
	long := strings.Repeat("x", 25)
	text := "short\n" + long

	parts := SplitMessage(text, 10)

	require.Len(t, parts, 2)
	assert.Equal(t, "short", parts[0])
	assert.Equal(t, long, parts[1])
}
