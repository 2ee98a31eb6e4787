package services

import (
	"expense-backend/internal/models"
	"fmt"

	"gorm.io/gorm"
)

type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// periodView 把周期参数映射到对应的聚合视图和时间列，
// 白名单同时防止周期串被拼进 SQL
func periodView(period string) (string, string, error) {
	switch period {
	case "week":
		return "expense_weekly_by_tag", "week_start", nil
	case "month":
		return "expense_monthly_by_tag", "month_start", nil
	case "year":
		return "expense_yearly_by_tag", "year_start", nil
	default:
		return "", "", validationError("无效的周期，可选值: week, month, year")
	}
}

func (s *StatsService) GetExpensesPerWeek(userID uint) ([]models.PeriodStats, error) {
	return s.expensesPerPeriod(userID, "week")
}

func (s *StatsService) GetExpensesPerMonth(userID uint) ([]models.PeriodStats, error) {
	return s.expensesPerPeriod(userID, "month")
}

func (s *StatsService) GetExpensesPerYear(userID uint) ([]models.PeriodStats, error) {
	return s.expensesPerPeriod(userID, "year")
}

func (s *StatsService) expensesPerPeriod(userID uint, period string) ([]models.PeriodStats, error) {
	if _, _, err := periodView(period); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			DATE_TRUNC('%s', expense_date) AS period_start,
			SUM(amount) AS total_amount,
			COUNT(*) AS transaction_count
		FROM expenses
		WHERE user_id = ?
		GROUP BY DATE_TRUNC('%s', expense_date)
		ORDER BY period_start DESC`, period, period)

	var stats []models.PeriodStats
	if err := s.db.Raw(query, userID).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// GetExpensesPerPeriodByTag 按周期和生效标签聚合，周期倒序、金额倒序
func (s *StatsService) GetExpensesPerPeriodByTag(userID uint, period string) ([]models.TagPeriodStats, error) {
	view, field, err := periodView(period)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			%s AS period_start,
			display_tag_id,
			display_tag_name,
			display_tag_color,
			total_amount,
			transaction_count
		FROM %s
		WHERE user_id = ?
		ORDER BY period_start DESC, total_amount DESC`, field, view)

	var stats []models.TagPeriodStats
	if err := s.db.Raw(query, userID).Scan(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// GetTagExpensesTimeSeries 返回最近 limit 个周期内按标签拆分的时间序列，
// 周期升序、每个周期内金额倒序
func (s *StatsService) GetTagExpensesTimeSeries(userID uint, period string, limit int) ([]models.TagSeriesPoint, error) {
	view, field, err := periodView(period)
	if err != nil {
		return nil, err
	}
	if limit < 1 || limit > 60 {
		return nil, validationError("无效的数量限制，必须在 1 到 60 之间")
	}

	query := fmt.Sprintf(`
		WITH recent_periods AS (
			SELECT DISTINCT %[1]s
			FROM %[2]s
			WHERE user_id = ?
			ORDER BY %[1]s DESC
			LIMIT ?
		)
		SELECT
			e.%[1]s AS period_start,
			e.display_tag_id,
			e.display_tag_name,
			e.display_tag_color,
			e.total_amount
		FROM %[2]s e
		JOIN recent_periods rp ON e.%[1]s = rp.%[1]s
		WHERE e.user_id = ?
		ORDER BY e.%[1]s ASC, e.total_amount DESC`, field, view)

	var points []models.TagSeriesPoint
	if err := s.db.Raw(query, userID, limit, userID).Scan(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}
