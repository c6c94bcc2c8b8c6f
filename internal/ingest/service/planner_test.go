package service

import (
	"context"
	"errors"
	"testing"

	"golang-ticker-relay/internal/entity"
	"golang-ticker-relay/internal/ingest/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlanner(records *fakeRecordRepository, ai *fakeAIRepository, tg *fakeTelegramNotifier, dc *fakeDiscordNotifier) *DispatchPlanner {
	return NewDispatchPlanner(records, ai, tg, dc, testLogger())
}

func runAll(t *testing.T, tasks []Task) {
	t.Helper()
	for _, task := range tasks {
		_ = task.Run(context.Background())
	}
}

func signalMessage() *entity.Message {
	return &entity.Message{
		MessageID:   "m1",
		Content:     "loading $TSLA calls here",
		AuthorID:    "u1",
		AuthorName:  "trader",
		ChannelID:   "c1",
		ChannelName: "signals",
		GuildID:     "g1",
	}
}

func TestPlanSignalPersistsAndNotifies(t *testing.T) {
	records := &fakeRecordRepository{}
	tg := &fakeTelegramNotifier{}
	dc := &fakeDiscordNotifier{}
	planner := newTestPlanner(records, &fakeAIRepository{}, tg, dc)

	rule := entity.RoutingRule{
		Name:    "vip-signals",
		Enabled: true,
		Type:    entity.RuleTypeSignal,
		Routes: []entity.NotifyTarget{
			{Kind: entity.NotifyTargetDiscord, WebhookURL: "https://hooks.example/abc"},
			{Kind: entity.NotifyTargetTelegram, ChatID: 42},
		},
	}
	msg := signalMessage()

	tasks := planner.Plan(msg, []string{"TSLA"}, []RuleMatch{{Rule: rule, Category: rule.Type}})
	require.Len(t, tasks, 3)
	runAll(t, tasks)

	require.Len(t, records.signals, 1)
	signal := records.signals[0]
	assert.Equal(t, []string{"TSLA"}, []string(signal.Tickers))
	assert.Equal(t, "m1", signal.MessageID)
	assert.Equal(t, "c1", signal.ChannelID)
	assert.Equal(t, msg.Content, signal.RawText)

	require.Len(t, dc.sent, 1)
	assert.Equal(t, "https://hooks.example/abc", dc.sent[0].url)
	require.Len(t, dc.sent[0].msg.Embeds, 1)
	embed := dc.sent[0].msg.Embeds[0]
	assert.Equal(t, "📡 vip-signals", embed.Title)
	assert.Equal(t, msg.Content, embed.Description)
	assert.Equal(t, msg.SourceLink(), embed.URL)
	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "TSLA", embed.Fields[0].Value)

	require.Len(t, tg.messages, 1)
	assert.Equal(t, int64(42), tg.messages[0].chatID)
	assert.Contains(t, tg.messages[0].text, "vip-signals")
	assert.Contains(t, tg.messages[0].text, msg.SourceLink())
}

func TestPlanSignalWithoutTickersStillNotifies(t *testing.T) {
	records := &fakeRecordRepository{}
	dc := &fakeDiscordNotifier{}
	planner := newTestPlanner(records, &fakeAIRepository{}, &fakeTelegramNotifier{}, dc)

	rule := entity.RoutingRule{
		Name:    "chatter",
		Enabled: true,
		Type:    entity.RuleTypeSignal,
		Routes:  []entity.NotifyTarget{{Kind: entity.NotifyTargetDiscord, WebhookURL: "https://hooks.example/x"}},
	}

	tasks := planner.Plan(signalMessage(), nil, []RuleMatch{{Rule: rule, Category: rule.Type}})
	require.Len(t, tasks, 1)
	runAll(t, tasks)

	assert.Empty(t, records.signals)
	assert.Len(t, dc.sent, 1)
}

func TestPlanSignalTelegramPrefersPhoto(t *testing.T) {
	tg := &fakeTelegramNotifier{}
	planner := newTestPlanner(&fakeRecordRepository{}, &fakeAIRepository{}, tg, &fakeDiscordNotifier{})

	rule := entity.RoutingRule{
		Name:    "charts",
		Enabled: true,
		Type:    entity.RuleTypeSignal,
		Routes:  []entity.NotifyTarget{{Kind: entity.NotifyTargetTelegram, ChatID: 7}},
	}
	msg := signalMessage()
	msg.ImageURLs = []string{"https://cdn.example/chart.png"}

	tasks := planner.Plan(msg, nil, []RuleMatch{{Rule: rule, Category: rule.Type}})
	runAll(t, tasks)

	assert.Empty(t, tg.messages)
	require.Len(t, tg.photos, 1)
	assert.Equal(t, "https://cdn.example/chart.png", tg.photos[0].photoURL)
	assert.Contains(t, tg.photos[0].caption, "charts")
}

func TestPlanAnalysisClassifiesOncePersistsPerTicker(t *testing.T) {
	records := &fakeRecordRepository{}
	ai := &fakeAIRepository{scores: []dto.SentimentScore{
		{Label: "NEUTRAL", Score: 0.1},
		{Label: "BULLISH", Score: 0.9},
	}}
	planner := newTestPlanner(records, ai, &fakeTelegramNotifier{}, &fakeDiscordNotifier{})

	rule := entity.RoutingRule{Name: "deep-dives", Enabled: true, Type: entity.RuleTypeAnalysis}
	tasks := planner.Plan(signalMessage(), []string{"TSLA", "AMD"}, []RuleMatch{{Rule: rule, Category: rule.Type}})
	require.Len(t, tasks, 1)
	runAll(t, tasks)

	assert.Equal(t, 1, ai.calls)
	require.Len(t, records.insights, 1)
	batch := records.insights[0]
	require.Len(t, batch, 2)
	assert.Equal(t, "TSLA", batch[0].Ticker)
	assert.Equal(t, "AMD", batch[1].Ticker)
	for _, insight := range batch {
		assert.Equal(t, entity.InsightKindAnalysis, insight.Kind)
		assert.Equal(t, entity.SentimentBullish, insight.Sentiment)
		assert.InDelta(t, 0.9, insight.Confidence, 1e-9)
	}
}

func TestPlanAnalysisAndFeedRequireTickers(t *testing.T) {
	planner := newTestPlanner(&fakeRecordRepository{}, &fakeAIRepository{}, &fakeTelegramNotifier{}, &fakeDiscordNotifier{})

	matches := []RuleMatch{
		{Rule: entity.RoutingRule{Name: "a", Enabled: true, Type: entity.RuleTypeAnalysis}, Category: entity.RuleTypeAnalysis},
		{Rule: entity.RoutingRule{Name: "f", Enabled: true, Type: entity.RuleTypeFeed}, Category: entity.RuleTypeFeed},
	}

	assert.Empty(t, planner.Plan(signalMessage(), nil, matches))
}

func TestPlanFeedKindIsFeed(t *testing.T) {
	records := &fakeRecordRepository{}
	ai := &fakeAIRepository{scores: []dto.SentimentScore{{Label: "SELL", Score: 0.7}}}
	planner := newTestPlanner(records, ai, &fakeTelegramNotifier{}, &fakeDiscordNotifier{})

	rule := entity.RoutingRule{Name: "firehose", Enabled: true, Type: entity.RuleTypeFeed}
	tasks := planner.Plan(signalMessage(), []string{"TSLA"}, []RuleMatch{{Rule: rule, Category: rule.Type}})
	runAll(t, tasks)

	require.Len(t, records.insights, 1)
	require.Len(t, records.insights[0], 1)
	assert.Equal(t, entity.InsightKindFeed, records.insights[0][0].Kind)
	assert.Equal(t, entity.SentimentBearish, records.insights[0][0].Sentiment)
}

func TestPlanClassifierFailureDegradesToNeutral(t *testing.T) {
	records := &fakeRecordRepository{}
	ai := &fakeAIRepository{err: errors.New("model overloaded")}
	planner := newTestPlanner(records, ai, &fakeTelegramNotifier{}, &fakeDiscordNotifier{})

	rule := entity.RoutingRule{Name: "deep-dives", Enabled: true, Type: entity.RuleTypeAnalysis}
	tasks := planner.Plan(signalMessage(), []string{"TSLA"}, []RuleMatch{{Rule: rule, Category: rule.Type}})
	runAll(t, tasks)

	// Persistence never skipped for a classifier failure.
	require.Len(t, records.insights, 1)
	insight := records.insights[0][0]
	assert.Equal(t, entity.SentimentNeutral, insight.Sentiment)
	assert.Zero(t, insight.Confidence)
}

func TestPlanClassifierConfidenceClamped(t *testing.T) {
	records := &fakeRecordRepository{}
	ai := &fakeAIRepository{scores: []dto.SentimentScore{{Label: "positive", Score: 1.4}}}
	planner := newTestPlanner(records, ai, &fakeTelegramNotifier{}, &fakeDiscordNotifier{})

	rule := entity.RoutingRule{Name: "deep-dives", Enabled: true, Type: entity.RuleTypeAnalysis}
	runAll(t, planner.Plan(signalMessage(), []string{"TSLA"}, []RuleMatch{{Rule: rule, Category: rule.Type}}))

	require.Len(t, records.insights, 1)
	insight := records.insights[0][0]
	assert.Equal(t, entity.SentimentBullish, insight.Sentiment)
	assert.Equal(t, 1.0, insight.Confidence)
}

func TestPlanNotifyUnknownTargetKind(t *testing.T) {
	planner := newTestPlanner(&fakeRecordRepository{}, &fakeAIRepository{}, &fakeTelegramNotifier{}, &fakeDiscordNotifier{})

	rule := entity.RoutingRule{
		Name:    "bad-route",
		Enabled: true,
		Type:    entity.RuleTypeSignal,
		Routes:  []entity.NotifyTarget{{Kind: "pager"}},
	}
	tasks := planner.Plan(signalMessage(), nil, []RuleMatch{{Rule: rule, Category: rule.Type}})
	require.Len(t, tasks, 1)

	assert.Error(t, tasks[0].Run(context.Background()))
}
