package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Embed colors, decimal RGB as the webhook API expects.
const (
	ColorBullish = 0x2ECC71
	ColorBearish = 0xE74C3C
	ColorNeutral = 0x95A5A6
)

var bullishKeywords = []string{"call", "calls", "buy", "long", "bull", "bullish", "moon", "breakout", "support"}
var bearishKeywords = []string{"put", "puts", "sell", "short", "bear", "bearish", "drill", "breakdown", "resistance"}

// WebhookMessage is the payload posted to a Discord webhook.
type WebhookMessage struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed is a Discord rich embed.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	URL         string       `json:"url,omitempty"`
	Color       int          `json:"color,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Image       *EmbedMedia  `json:"image,omitempty"`
	Thumbnail   *EmbedMedia  `json:"thumbnail,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// EmbedFooter is the footer block of an embed.
type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedAuthor is the author block of an embed.
type EmbedAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedMedia is an image or thumbnail block.
type EmbedMedia struct {
	URL string `json:"url"`
}

// EmbedField is a single name/value field.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// ColorForText picks an embed color with a keyword heuristic over the
// lowercased text. Bullish keywords win ties by being checked first.
func ColorForText(text string) int {
	lower := strings.ToLower(text)
	for _, kw := range bullishKeywords {
		if containsWord(lower, kw) {
			return ColorBullish
		}
	}
	for _, kw := range bearishKeywords {
		if containsWord(lower, kw) {
			return ColorBearish
		}
	}
	return ColorNeutral
}

func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		leftOK := start == 0 || !isLetter(text[start-1])
		rightOK := end == len(text) || !isLetter(text[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Notifier defines the interface for posting to Discord webhooks.
type Notifier interface {
	Send(ctx context.Context, webhookURL string, msg *WebhookMessage) error
}

type client struct {
	httpClient *http.Client
}

// NewClient creates a webhook Notifier.
func NewClient() Notifier {
	return &client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Send posts the message to the webhook URL.
func (c *client) Send(ctx context.Context, webhookURL string, msg *WebhookMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
