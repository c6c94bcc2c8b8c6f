package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// InsightKind distinguishes the two sentiment-bearing record shapes stored
// in the same table.
type InsightKind string

const (
	InsightKindAnalysis InsightKind = "analysis"
	InsightKindFeed     InsightKind = "feed"
)

// TradeSignal is one persisted SIGNAL match. All tickers extracted from the
// message are stored on a single row.
type TradeSignal struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Tickers     pq.StringArray `gorm:"type:text[];not null" json:"tickers"`
	RawText     string         `gorm:"type:text" json:"raw_text"`
	ChannelID   string         `gorm:"type:varchar(64)" json:"channel_id"`
	ChannelName string         `gorm:"type:varchar(128)" json:"channel_name"`
	MessageID   string         `gorm:"type:varchar(64)" json:"message_id"`
	ImageURL    string         `gorm:"type:text" json:"image_url"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the TradeSignal model.
func (TradeSignal) TableName() string {
	return "trade_signals"
}

// TickerInsight is one persisted ANALYSIS or FEED mention: a single ticker
// with the sentiment computed for the whole message.
type TickerInsight struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Kind       InsightKind `gorm:"type:varchar(16);not null;index" json:"kind"`
	Ticker     string      `gorm:"type:varchar(8);not null;index" json:"ticker"`
	Sentiment  string      `gorm:"type:varchar(16);not null" json:"sentiment"`
	Confidence float64     `gorm:"not null" json:"confidence"`
	RawText    string      `gorm:"type:text" json:"raw_text"`
	AuthorName string      `gorm:"type:varchar(128)" json:"author_name"`
	ChannelID  string      `gorm:"type:varchar(64)" json:"channel_id"`
	ImageURL   string      `gorm:"type:text" json:"image_url"`
	CreatedAt  time.Time   `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for the TickerInsight model.
func (TickerInsight) TableName() string {
	return "ticker_insights"
}

// AppLog is one audit log row. Rows are append-only and purged in bulk by
// the daily maintenance job.
type AppLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Level     string         `gorm:"type:varchar(16);not null" json:"level"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for the AppLog model.
func (AppLog) TableName() string {
	return "app_logs"
}
