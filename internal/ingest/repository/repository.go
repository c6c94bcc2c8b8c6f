package repository

import (
	"context"

	"golang-ticker-relay/internal/entity"
	"golang-ticker-relay/internal/ingest/dto"
)

// RuleConfigRepository supplies the routing rules for one invocation. Rules
// are read fresh every time; there is no local caching.
type RuleConfigRepository interface {
	GetRoutingRules(ctx context.Context) ([]entity.RoutingRule, error)
}

// RecordRepository persists the append-only record shapes.
type RecordRepository interface {
	SaveTradeSignal(ctx context.Context, signal *entity.TradeSignal) error
	SaveTickerInsights(ctx context.Context, insights []entity.TickerInsight) error
	SaveAppLog(ctx context.Context, logEntry *entity.AppLog) error
}

// AIRepository classifies message text into sentiment label/score pairs.
type AIRepository interface {
	ClassifySentiment(ctx context.Context, text string) ([]dto.SentimentScore, error)
}
