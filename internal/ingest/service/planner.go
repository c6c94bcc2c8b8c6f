package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-ticker-relay/internal/entity"
	"golang-ticker-relay/internal/ingest/repository"
	"golang-ticker-relay/pkg/discord"
	"golang-ticker-relay/pkg/logger"
	"golang-ticker-relay/pkg/telegram"
)

// DispatchPlanner turns one matched message into the set of independent
// downstream tasks: persist, classify-and-persist, notify.
type DispatchPlanner struct {
	records  repository.RecordRepository
	ai       repository.AIRepository
	telegram telegram.Notifier
	discord  discord.Notifier
	logger   *logger.Logger
}

// NewDispatchPlanner creates a DispatchPlanner.
func NewDispatchPlanner(
	records repository.RecordRepository,
	ai repository.AIRepository,
	telegramNotifier telegram.Notifier,
	discordNotifier discord.Notifier,
	log *logger.Logger,
) *DispatchPlanner {
	return &DispatchPlanner{
		records:  records,
		ai:       ai,
		telegram: telegramNotifier,
		discord:  discordNotifier,
		logger:   log,
	}
}

// Plan builds the task batch for every matched rule. A matched rule with no
// satisfiable condition contributes nothing.
func (p *DispatchPlanner) Plan(msg *entity.Message, tickers []string, matches []RuleMatch) []Task {
	var tasks []Task
	for _, m := range matches {
		switch m.Category {
		case entity.RuleTypeSignal:
			tasks = append(tasks, p.planSignal(msg, tickers, m.Rule)...)
		case entity.RuleTypeAnalysis:
			if len(tickers) > 0 {
				tasks = append(tasks, p.classifyTask(msg, tickers, m.Rule, entity.InsightKindAnalysis))
			}
		case entity.RuleTypeFeed:
			if len(tickers) > 0 {
				tasks = append(tasks, p.classifyTask(msg, tickers, m.Rule, entity.InsightKindFeed))
			}
		}
	}
	return tasks
}

// planSignal emits one persist-trade task when tickers were found, plus one
// notify task per configured target. Signal rules notify on every match,
// tickers or not.
func (p *DispatchPlanner) planSignal(msg *entity.Message, tickers []string, rule entity.RoutingRule) []Task {
	var tasks []Task

	if len(tickers) > 0 {
		signal := &entity.TradeSignal{
			Tickers:     tickers,
			RawText:     msg.Content,
			ChannelID:   msg.ChannelID,
			ChannelName: msg.ChannelName,
			MessageID:   msg.MessageID,
			ImageURL:    msg.PrimaryImageURL(),
		}
		tasks = append(tasks, Task{
			Name: rule.Name + ":persist-trade",
			Run: func(ctx context.Context) error {
				return p.records.SaveTradeSignal(ctx, signal)
			},
		})
	}

	for i, target := range rule.Routes {
		target := target
		tasks = append(tasks, Task{
			Name: fmt.Sprintf("%s:notify-%d", rule.Name, i),
			Run: func(ctx context.Context) error {
				return p.notify(ctx, target, rule, msg, tickers)
			},
		})
	}

	return tasks
}

// classifyTask classifies the message once and persists one row per
// extracted ticker, all sharing the message's sentiment. Classifier failure
// degrades to NEUTRAL/0.0; persistence is never skipped for it.
func (p *DispatchPlanner) classifyTask(msg *entity.Message, tickers []string, rule entity.RoutingRule, kind entity.InsightKind) Task {
	return Task{
		Name: fmt.Sprintf("%s:classify-%s", rule.Name, kind),
		Run: func(ctx context.Context) error {
			sentiment := p.classify(ctx, msg.Content)

			insights := make([]entity.TickerInsight, 0, len(tickers))
			for _, ticker := range tickers {
				insights = append(insights, entity.TickerInsight{
					Kind:       kind,
					Ticker:     ticker,
					Sentiment:  sentiment.Label,
					Confidence: sentiment.Confidence,
					RawText:    msg.Content,
					AuthorName: msg.AuthorName,
					ChannelID:  msg.ChannelID,
					ImageURL:   msg.PrimaryImageURL(),
				})
			}
			return p.records.SaveTickerInsights(ctx, insights)
		},
	}
}

// classify invokes the classifier and takes the highest-score label.
func (p *DispatchPlanner) classify(ctx context.Context, text string) entity.SentimentResult {
	scores, err := p.ai.ClassifySentiment(ctx, text)
	if err != nil || len(scores) == 0 {
		p.logger.Warn("Classifier unavailable, defaulting to neutral", logger.ErrorField(err))
		return entity.NeutralSentiment()
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	confidence := best.Score
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return entity.SentimentResult{
		Label:      entity.NormalizeSentimentLabel(best.Label),
		Confidence: confidence,
	}
}

func (p *DispatchPlanner) notify(ctx context.Context, target entity.NotifyTarget, rule entity.RoutingRule, msg *entity.Message, tickers []string) error {
	switch target.Kind {
	case entity.NotifyTargetDiscord:
		return p.discord.Send(ctx, target.WebhookURL, p.buildWebhookMessage(rule, msg, tickers))
	case entity.NotifyTargetTelegram:
		return p.sendTelegram(target.ChatID, rule, msg)
	default:
		return fmt.Errorf("unknown notify target kind %q", target.Kind)
	}
}

func (p *DispatchPlanner) buildWebhookMessage(rule entity.RoutingRule, msg *entity.Message, tickers []string) *discord.WebhookMessage {
	embed := discord.Embed{
		Title:       fmt.Sprintf("📡 %s", rule.Name),
		Description: msg.Content,
		URL:         msg.SourceLink(),
		Color:       discord.ColorForText(msg.Content),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if msg.AuthorName != "" {
		embed.Author = &discord.EmbedAuthor{Name: msg.AuthorName}
	}
	if msg.ChannelName != "" {
		embed.Footer = &discord.EmbedFooter{Text: "#" + msg.ChannelName}
	}
	if img := msg.PrimaryImageURL(); img != "" {
		embed.Image = &discord.EmbedMedia{URL: img}
	}
	if len(tickers) > 0 {
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:   "Tickers",
			Value:  strings.Join(tickers, ", "),
			Inline: true,
		})
	}
	return &discord.WebhookMessage{Embeds: []discord.Embed{embed}}
}

func (p *DispatchPlanner) sendTelegram(chatID int64, rule entity.RoutingRule, msg *entity.Message) error {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("📡 *%s*\n", rule.Name))
	if msg.Content != "" {
		builder.WriteString(msg.Content)
		builder.WriteString("\n")
	}
	if link := msg.SourceLink(); link != "" {
		builder.WriteString(fmt.Sprintf("[Source](%s)", link))
	}
	text := builder.String()

	if img := msg.PrimaryImageURL(); img != "" {
		return p.telegram.SendPhoto(chatID, img, text)
	}
	return p.telegram.SendMessage(chatID, text)
}
