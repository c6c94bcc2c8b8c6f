package repository

import (
	"context"

	"golang-ticker-relay/internal/entity"
	"golang-ticker-relay/pkg/logger"

	"gorm.io/gorm"
)

// NewRecordRepository creates a new GORM-based record repository.
func NewRecordRepository(db *gorm.DB, log *logger.Logger) RecordRepository {
	return &recordRepository{
		db:     db,
		logger: log,
	}
}

type recordRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// SaveTradeSignal inserts one trade signal row carrying the full ticker batch.
func (r *recordRepository) SaveTradeSignal(ctx context.Context, signal *entity.TradeSignal) error {
	if err := r.db.WithContext(ctx).Create(signal).Error; err != nil {
		r.logger.Error("Failed to save trade signal", logger.ErrorField(err))
		return err
	}
	r.logger.Info("Saved trade signal", logger.IntField("tickers", len(signal.Tickers)))
	return nil
}

// SaveTickerInsights inserts a batch of analysis/feed rows.
func (r *recordRepository) SaveTickerInsights(ctx context.Context, insights []entity.TickerInsight) error {
	if len(insights) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&insights).Error; err != nil {
		r.logger.Error("Failed to save ticker insights", logger.ErrorField(err))
		return err
	}
	r.logger.Info("Saved ticker insights", logger.IntField("count", len(insights)))
	return nil
}

// SaveAppLog inserts one audit log row.
func (r *recordRepository) SaveAppLog(ctx context.Context, logEntry *entity.AppLog) error {
	return r.db.WithContext(ctx).Create(logEntry).Error
}
