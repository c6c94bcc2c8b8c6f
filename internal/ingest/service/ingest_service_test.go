package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"golang-ticker-relay/internal/entity"
	"golang-ticker-relay/internal/lexicon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ingestFixture struct {
	service IngestService
	runner  *TaskRunner
	records *fakeRecordRepository
	discord *fakeDiscordNotifier
}

func newIngestFixture(ruleRepo *fakeRuleConfigRepository) *ingestFixture {
	lex := lexicon.New(
		[]string{"AAPL", "TSLA", "AMD"},
		nil,
		[]string{"BUY", "CALLS"},
	)
	records := &fakeRecordRepository{}
	dc := &fakeDiscordNotifier{}
	log := testLogger()
	planner := NewDispatchPlanner(records, &fakeAIRepository{}, &fakeTelegramNotifier{}, dc, log)
	runner := NewTaskRunner(log)

	return &ingestFixture{
		service: NewIngestService(lexicon.NewExtractor(lex), ruleRepo, records, planner, runner, log),
		runner:  runner,
		records: records,
		discord: dc,
	}
}

func TestHandleMessageRoutesMatchedSignal(t *testing.T) {
	ruleRepo := &fakeRuleConfigRepository{rules: []entity.RoutingRule{{
		Name:       "vip-signals",
		Enabled:    true,
		Type:       entity.RuleTypeSignal,
		ChannelIDs: []string{"c1"},
		Routes:     []entity.NotifyTarget{{Kind: entity.NotifyTargetDiscord, WebhookURL: "https://hooks.example/abc"}},
	}}}
	fx := newIngestFixture(ruleRepo)

	msg := &entity.Message{
		MessageID: "m1",
		Content:   "grabbing $TSLA calls",
		AuthorID:  "u1",
		ChannelID: "c1",
		GuildID:   "g1",
	}

	resp := fx.service.HandleMessage(context.Background(), msg)
	fx.runner.Wait()

	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"vip-signals"}, resp.MatchedRules)
	assert.Equal(t, []string{"TSLA"}, resp.Tickers)
	// persist-trade plus one notify; the audit row is not counted.
	assert.Equal(t, 2, resp.TasksScheduled)

	assert.Len(t, fx.records.signals, 1)
	assert.Len(t, fx.discord.sent, 1)
	assert.Len(t, fx.records.appLogs, 1)
}

func TestHandleMessageConfigUnavailableStillAcknowledges(t *testing.T) {
	fx := newIngestFixture(&fakeRuleConfigRepository{err: errors.New("redis down")})

	resp := fx.service.HandleMessage(context.Background(), &entity.Message{
		MessageID: "m2",
		Content:   "$AAPL ripping",
		ChannelID: "c1",
	})
	fx.runner.Wait()

	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.MatchedRules)
	assert.Equal(t, []string{"AAPL"}, resp.Tickers)
	assert.Zero(t, resp.TasksScheduled)

	// Nothing routed, but the audit row still lands.
	assert.Empty(t, fx.records.signals)
	assert.Empty(t, fx.discord.sent)
	assert.Len(t, fx.records.appLogs, 1)
}

func TestHandleMessageNoMatchingRules(t *testing.T) {
	ruleRepo := &fakeRuleConfigRepository{rules: []entity.RoutingRule{{
		Name:       "elsewhere",
		Enabled:    true,
		Type:       entity.RuleTypeSignal,
		ChannelIDs: []string{"c9"},
	}}}
	fx := newIngestFixture(ruleRepo)

	resp := fx.service.HandleMessage(context.Background(), &entity.Message{
		MessageID: "m3",
		Content:   "just vibes, no tickers",
		ChannelID: "c1",
	})
	fx.runner.Wait()

	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, resp.MatchedRules)
	assert.Empty(t, resp.Tickers)
	assert.Zero(t, resp.TasksScheduled)
}

func TestHandleMessageAuditMetadata(t *testing.T) {
	fx := newIngestFixture(&fakeRuleConfigRepository{})

	fx.service.HandleMessage(context.Background(), &entity.Message{
		MessageID: "m4",
		Content:   "BUY AMD",
		AuthorID:  "u7",
		ChannelID: "c1",
		Test:      true,
	})
	fx.runner.Wait()

	require.Len(t, fx.records.appLogs, 1)
	entry := fx.records.appLogs[0]
	assert.Equal(t, "info", entry.Level)

	var metadata map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Metadata, &metadata))
	assert.Equal(t, "m4", metadata["message_id"])
	assert.Equal(t, "u7", metadata["author_id"])
	assert.Equal(t, true, metadata["test"])
}
