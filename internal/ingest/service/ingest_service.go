package service

import (
	"context"
	"encoding/json"

	"golang-ticker-relay/internal/entity"
	"golang-ticker-relay/internal/ingest/dto"
	"golang-ticker-relay/internal/ingest/repository"
	"golang-ticker-relay/internal/lexicon"
	"golang-ticker-relay/pkg/logger"
)

// IngestService handles one inbound chat message end to end: extraction,
// rule matching, dispatch planning and fan-out.
type IngestService interface {
	HandleMessage(ctx context.Context, msg *entity.Message) *dto.IngestMessageResponse
}

// NewIngestService creates a new IngestService.
func NewIngestService(
	extractor *lexicon.Extractor,
	ruleRepo repository.RuleConfigRepository,
	records repository.RecordRepository,
	planner *DispatchPlanner,
	runner *TaskRunner,
	log *logger.Logger,
) IngestService {
	return &ingestService{
		extractor: extractor,
		ruleRepo:  ruleRepo,
		records:   records,
		planner:   planner,
		runner:    runner,
		logger:    log,
	}
}

type ingestService struct {
	extractor *lexicon.Extractor
	ruleRepo  repository.RuleConfigRepository
	records   repository.RecordRepository
	planner   *DispatchPlanner
	runner    *TaskRunner
	logger    *logger.Logger
}

// HandleMessage runs the pipeline and returns as soon as the task batch is
// scheduled. An unavailable rule config degrades to "no rules": the message
// is still acknowledged, nothing is routed.
func (s *ingestService) HandleMessage(ctx context.Context, msg *entity.Message) *dto.IngestMessageResponse {
	tickers := s.extractor.Extract(msg.Content)

	rules, err := s.ruleRepo.GetRoutingRules(ctx)
	if err != nil {
		s.logger.Warn("Routing rules unavailable, nothing will be routed", logger.ErrorField(err))
		rules = nil
	}

	matches := MatchRules(msg, rules)
	matchedNames := MatchedRuleNames(matches)

	tasks := s.planner.Plan(msg, tickers, matches)
	scheduled := len(tasks)
	tasks = append(tasks, s.auditTask(msg, matchedNames, tickers, scheduled))
	s.runner.Dispatch(tasks)

	s.logger.Info("Message dispatched",
		logger.StringField("message_id", msg.MessageID),
		logger.Field("matched_rules", matchedNames),
		logger.IntField("tickers", len(tickers)),
		logger.IntField("tasks", scheduled))

	return &dto.IngestMessageResponse{
		Status:         "ok",
		MatchedRules:   matchedNames,
		Tickers:        tickers,
		TasksScheduled: scheduled,
	}
}

// auditTask appends one app_log row per handled message, carrying the
// routing outcome. These rows feed the daily retention purge.
func (s *ingestService) auditTask(msg *entity.Message, matchedNames, tickers []string, scheduled int) Task {
	metadata, _ := json.Marshal(map[string]interface{}{
		"message_id":    msg.MessageID,
		"channel_id":    msg.ChannelID,
		"author_id":     msg.AuthorID,
		"matched_rules": matchedNames,
		"tickers":       tickers,
		"tasks":         scheduled,
		"test":          msg.Test,
	})
	logEntry := &entity.AppLog{
		Level:    "info",
		Message:  "message ingested",
		Metadata: metadata,
	}
	return Task{
		Name: "audit-log",
		Run: func(ctx context.Context) error {
			return s.records.SaveAppLog(ctx, logEntry)
		},
	}
}
