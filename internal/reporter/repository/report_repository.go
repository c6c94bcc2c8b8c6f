package repository

import (
	"context"
	"time"

	"golang-ticker-relay/internal/entity"
	"golang-ticker-relay/internal/reporter/dto"

	"gorm.io/gorm"
)

// ReportRepository runs the aggregation queries behind scheduled reports and
// the retention maintenance.
type ReportRepository interface {
	FindTrendingTickers(ctx context.Context, since time.Time, minMentions, limit int) ([]dto.TrendingRow, error)
	FindRecentAnalyses(ctx context.Context, since time.Time, limit int) ([]entity.TickerInsight, error)
	DeleteAppLogsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewReportRepository creates a new GORM-based report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

type reportRepository struct {
	db *gorm.DB
}

// FindTrendingTickers groups feed rows newer than since by ticker, keeps
// groups with at least minMentions rows and returns the top groups by count.
// Each group's sentiment is the most recent row's sentiment, which keeps the
// aggregation deterministic. Ties on count order by ticker.
func (r *reportRepository) FindTrendingTickers(ctx context.Context, since time.Time, minMentions, limit int) ([]dto.TrendingRow, error) {
	var rows []dto.TrendingRow
	err := r.db.WithContext(ctx).Raw(`
	SELECT
		ti.ticker,
		COUNT(*) AS mentions,
		(
			SELECT t2.sentiment
			FROM ticker_insights AS t2
			WHERE t2.ticker = ti.ticker
			AND t2.kind = ?
			AND t2.created_at > ?
			ORDER BY t2.created_at DESC
			LIMIT 1
		) AS sentiment
	FROM ticker_insights AS ti
	WHERE ti.kind = ?
	AND ti.created_at > ?
	GROUP BY ti.ticker
	HAVING COUNT(*) >= ?
	ORDER BY mentions DESC, ti.ticker ASC
	LIMIT ?
`, entity.InsightKindFeed, since, entity.InsightKindFeed, since, minMentions, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindRecentAnalyses returns the newest analysis rows in the window, most
// recent first.
func (r *reportRepository) FindRecentAnalyses(ctx context.Context, since time.Time, limit int) ([]entity.TickerInsight, error) {
	var insights []entity.TickerInsight
	err := r.db.WithContext(ctx).
		Where("kind = ? AND created_at > ?", entity.InsightKindAnalysis, since).
		Order("created_at DESC").
		Limit(limit).
		Find(&insights).Error
	if err != nil {
		return nil, err
	}
	return insights, nil
}

// DeleteAppLogsBefore bulk-deletes audit log rows older than the cutoff and
// returns how many were removed.
func (r *reportRepository) DeleteAppLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&entity.AppLog{})
	return tx.RowsAffected, tx.Error
}
