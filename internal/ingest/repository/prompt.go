package repository

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang-ticker-relay/internal/ingest/dto"
)

// BuildSentimentPrompt produces the classification prompt sent to every AI
// provider. The response contract is a bare JSON array so the parsers can
// stay provider-agnostic.
func BuildSentimentPrompt(text string) string {
	return fmt.Sprintf(`You are a financial chat sentiment classifier.
Classify the trading sentiment of the message below.

Rules:
- Respond with ONLY a JSON array, no markdown fences, no commentary.
- Each element must be {"label": "...", "score": 0.0-1.0}.
- Allowed labels: BULLISH, BEARISH, NEUTRAL.
- Include every label you consider plausible, highest score first.

Message:
"""
%s
"""`, text)
}

// parseSentimentScores extracts the score list from a model response,
// tolerating markdown fences some models insist on adding.
func parseSentimentScores(raw string) ([]dto.SentimentScore, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var scores []dto.SentimentScore
	if err := json.Unmarshal([]byte(cleaned), &scores); err != nil {
		return nil, fmt.Errorf("failed to parse sentiment response %q: %w", raw, err)
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("classifier returned no labels")
	}
	return scores, nil
}
