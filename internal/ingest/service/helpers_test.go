package service

import (
	"context"
	"sync"

	"golang-ticker-relay/internal/entity"
	"golang-ticker-relay/internal/ingest/dto"
	"golang-ticker-relay/pkg/discord"
	"golang-ticker-relay/pkg/logger"

	"go.uber.org/zap"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

type fakeRecordRepository struct {
	mu sync.Mutex

	signals  []*entity.TradeSignal
	insights [][]entity.TickerInsight
	appLogs  []*entity.AppLog

	signalErr  error
	insightErr error
	appLogErr  error
}

func (f *fakeRecordRepository) SaveTradeSignal(_ context.Context, signal *entity.TradeSignal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signalErr != nil {
		return f.signalErr
	}
	f.signals = append(f.signals, signal)
	return nil
}

func (f *fakeRecordRepository) SaveTickerInsights(_ context.Context, insights []entity.TickerInsight) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insightErr != nil {
		return f.insightErr
	}
	f.insights = append(f.insights, insights)
	return nil
}

func (f *fakeRecordRepository) SaveAppLog(_ context.Context, logEntry *entity.AppLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appLogErr != nil {
		return f.appLogErr
	}
	f.appLogs = append(f.appLogs, logEntry)
	return nil
}

type fakeAIRepository struct {
	mu sync.Mutex

	scores []dto.SentimentScore
	err    error
	calls  int
}

func (f *fakeAIRepository) ClassifySentiment(_ context.Context, _ string) ([]dto.SentimentScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type sentPhoto struct {
	chatID   int64
	photoURL string
	caption  string
}

type fakeTelegramNotifier struct {
	mu sync.Mutex

	messages []sentMessage
	photos   []sentPhoto
	err      error
}

func (f *fakeTelegramNotifier) SendMessage(chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeTelegramNotifier) SendPhoto(chatID int64, photoURL, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.photos = append(f.photos, sentPhoto{chatID: chatID, photoURL: photoURL, caption: caption})
	return nil
}

type sentWebhook struct {
	url string
	msg *discord.WebhookMessage
}

type fakeDiscordNotifier struct {
	mu sync.Mutex

	sent []sentWebhook
	err  error
}

func (f *fakeDiscordNotifier) Send(_ context.Context, webhookURL string, msg *discord.WebhookMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentWebhook{url: webhookURL, msg: msg})
	return nil
}

type fakeRuleConfigRepository struct {
	rules []entity.RoutingRule
	err   error
}

func (f *fakeRuleConfigRepository) GetRoutingRules(_ context.Context) ([]entity.RoutingRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rules, nil
}
