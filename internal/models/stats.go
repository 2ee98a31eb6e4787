package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStats 按周/月/年聚合的费用行
type PeriodStats struct {
	PeriodStart      time.Time       `json:"period_start"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int64           `json:"transaction_count"`
}

// TagPeriodStats 对应 expense_{weekly,monthly,yearly}_by_tag 视图的行
type TagPeriodStats struct {
	PeriodStart      time.Time       `json:"period_start"`
	DisplayTagID     uint            `json:"display_tag_id"`
	DisplayTagName   string          `json:"display_tag_name"`
	DisplayTagColor  *string         `json:"display_tag_color"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int64           `json:"transaction_count"`
}

// TagSeriesPoint 标签时间序列中的一个点
type TagSeriesPoint struct {
	PeriodStart     time.Time       `json:"period_start"`
	DisplayTagID    uint            `json:"display_tag_id"`
	DisplayTagName  string          `json:"display_tag_name"`
	DisplayTagColor *string         `json:"display_tag_color"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}
