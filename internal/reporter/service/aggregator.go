package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang-ticker-relay/internal/entity"
	"golang-ticker-relay/internal/reporter/dto"
	"golang-ticker-relay/internal/reporter/repository"
	"golang-ticker-relay/pkg/common"
	"golang-ticker-relay/pkg/discord"
	"golang-ticker-relay/pkg/logger"
	"golang-ticker-relay/pkg/telegram"
	"golang-ticker-relay/pkg/utils"

	"github.com/robfig/cron/v3"
)

const (
	trendingLimit = 10
	analysisLimit = 15
	previewMaxLen = 60
)

// ReportAggregator drives the periodic report pipeline. It keeps no
// persisted state of its own: task definitions are pulled fresh from the
// config store on every tick.
type ReportAggregator interface {
	Start(ctx context.Context)
	ProcessTick(ctx context.Context, now time.Time)
}

// NewReportAggregator creates a ReportAggregator. retentionCron schedules
// the daily app-log purge, independent of the task definitions.
func NewReportAggregator(
	taskRepo repository.TaskConfigRepository,
	reportRepo repository.ReportRepository,
	telegramNotifier telegram.Notifier,
	discordNotifier discord.Notifier,
	log *logger.Logger,
	tickInterval time.Duration,
	retentionCron string,
) (ReportAggregator, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	retentionSchedule, err := parser.Parse(retentionCron)
	if err != nil {
		return nil, fmt.Errorf("invalid retention cron %q: %w", retentionCron, err)
	}

	return &reportAggregator{
		taskRepo:          taskRepo,
		reportRepo:        reportRepo,
		telegram:          telegramNotifier,
		discord:           discordNotifier,
		logger:            log,
		tickInterval:      tickInterval,
		retentionSchedule: retentionSchedule,
		nextRetention:     retentionSchedule.Next(time.Now()),
	}, nil
}

type reportAggregator struct {
	taskRepo          repository.TaskConfigRepository
	reportRepo        repository.ReportRepository
	telegram          telegram.Notifier
	discord           discord.Notifier
	logger            *logger.Logger
	tickInterval      time.Duration
	retentionSchedule cron.Schedule
	nextRetention     time.Time
}

// Start begins the minute tick loop.
func (s *reportAggregator) Start(ctx context.Context) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Report aggregator stopping")
			return
		case <-ticker.C:
			s.ProcessTick(ctx, time.Now())
		}
	}
}

// ProcessTick evaluates every scheduled task against the current epoch
// minute and runs the ones that are due, then the retention maintenance if
// its time has come. An unavailable task config degrades to "no tasks".
func (s *reportAggregator) ProcessTick(ctx context.Context, now time.Time) {
	epochMinute := now.Unix() / 60

	tasks, err := s.taskRepo.GetScheduledTasks(ctx)
	if err != nil {
		s.logger.Warn("Scheduled tasks unavailable, skipping tick", logger.ErrorField(err))
		tasks = nil
	}

	for _, task := range tasks {
		if !task.DueAt(epochMinute) {
			continue
		}
		s.runTask(ctx, task, now)
	}

	if !now.Before(s.nextRetention) {
		s.purgeOldLogs(ctx, now)
		s.nextRetention = s.retentionSchedule.Next(now)
	}
}

func (s *reportAggregator) runTask(ctx context.Context, task entity.ScheduledTask, now time.Time) {
	since := now.Add(-time.Duration(task.LookbackMinutes) * time.Minute)

	var report string
	var err error
	switch task.Type {
	case entity.TaskTypeTrendingFeed:
		report, err = s.buildTrendingReport(ctx, task, since)
	case entity.TaskTypeAnalysisSummary:
		report, err = s.buildAnalysisSummary(ctx, since)
	default:
		return
	}
	if err != nil {
		s.logger.Error("Failed to build report",
			logger.StringField("task", task.Name),
			logger.ErrorField(err))
		return
	}
	if report == "" {
		// Nothing qualified in the lookback window; silent no-op.
		return
	}

	s.logger.Info("Report generated", logger.StringField("task", task.Name))
	s.deliver(ctx, task, report)
}

func (s *reportAggregator) buildTrendingReport(ctx context.Context, task entity.ScheduledTask, since time.Time) (string, error) {
	rows, err := s.reportRepo.FindTrendingTickers(ctx, since, task.MinMentions, trendingLimit)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}
	return renderTrendingReport(rows), nil
}

func (s *reportAggregator) buildAnalysisSummary(ctx context.Context, since time.Time) (string, error) {
	insights, err := s.reportRepo.FindRecentAnalyses(ctx, since, analysisLimit)
	if err != nil {
		return "", err
	}
	if len(insights) == 0 {
		return "", nil
	}
	return renderAnalysisSummary(insights), nil
}

// deliver fans the report out to every configured target concurrently. Each
// send owns its failure; one failing target never blocks the others.
func (s *reportAggregator) deliver(ctx context.Context, task entity.ScheduledTask, report string) {
	var wg sync.WaitGroup
	for _, target := range task.Targets {
		target := target
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			if err := s.send(ctx, task, target, report); err != nil {
				s.logger.Error("Failed to deliver report",
					logger.StringField("task", task.Name),
					logger.StringField("target", string(target.Kind)),
					logger.ErrorField(err))
			}
		})
	}
	wg.Wait()
}

func (s *reportAggregator) send(ctx context.Context, task entity.ScheduledTask, target entity.NotifyTarget, report string) error {
	switch target.Kind {
	case entity.NotifyTargetDiscord:
		embed := discord.Embed{
			Title:       reportTitle(task),
			Description: report,
			Color:       discord.ColorNeutral,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}
		return s.discord.Send(ctx, target.WebhookURL, &discord.WebhookMessage{Embeds: []discord.Embed{embed}})
	case entity.NotifyTargetTelegram:
		text := fmt.Sprintf("*%s*\n\n%s", reportTitle(task), report)
		for _, part := range telegram.SplitMessage(text, telegram.MaxMessageLen) {
			if err := s.telegram.SendMessage(target.ChatID, part); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown notify target kind %q", target.Kind)
	}
}

func (s *reportAggregator) purgeOldLogs(ctx context.Context, now time.Time) {
	cutoff := now.AddDate(0, 0, -common.AppLogRetentionDays)
	removed, err := s.reportRepo.DeleteAppLogsBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to purge old app logs", logger.ErrorField(err))
		return
	}
	s.logger.Info("Purged old app logs", logger.IntField("removed", int(removed)))
}

func reportTitle(task entity.ScheduledTask) string {
	switch task.Type {
	case entity.TaskTypeTrendingFeed:
		return fmt.Sprintf("🔥 Trending Tickers: %s", task.Name)
	case entity.TaskTypeAnalysisSummary:
		return fmt.Sprintf("📊 Analysis Summary: %s", task.Name)
	default:
		return task.Name
	}
}

// renderTrendingReport produces one line per ticker group, ranked by
// mention count.
func renderTrendingReport(rows []dto.TrendingRow) string {
	var builder strings.Builder
	for i, row := range rows {
		builder.WriteString(fmt.Sprintf("%d. *%s* %s %d mentions\n",
			i+1, row.Ticker, sentimentIcon(row.Sentiment), row.Mentions))
	}
	return builder.String()
}

// renderAnalysisSummary produces one titled entry per analysis row with a
// truncated preview of the raw text.
func renderAnalysisSummary(insights []entity.TickerInsight) string {
	var builder strings.Builder
	for _, insight := range insights {
		builder.WriteString(fmt.Sprintf("%s *%s* (%s %.0f%%)\n",
			sentimentIcon(insight.Sentiment), insight.Ticker, insight.Sentiment, insight.Confidence*100))
		builder.WriteString(utils.Truncate(insight.RawText, previewMaxLen))
		builder.WriteString("\n\n")
	}
	return builder.String()
}

func sentimentIcon(sentiment string) string {
	switch sentiment {
	case entity.SentimentBullish:
		return "😊"
	case entity.SentimentBearish:
		return "😟"
	default:
		return "😐"
	}
}
