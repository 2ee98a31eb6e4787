package database

import (
	"gorm.io/gorm"
)

// 聚合查询使用的只读视图，迁移之后重建
var viewStatements = []string{
	// 费用分析：把生效标签（用户标签优先，失效则回退默认标签）摊平成一行
	`CREATE OR REPLACE VIEW expense_analysis AS
	SELECT
		e.expense_id,
		e.user_id,
		e.amount,
		e.expense_date,
		e.description,
		e.is_recurring,
		e.invoice_id,
		CASE WHEN ut.tag_id IS NOT NULL AND ut.is_active THEN ut.tag_id ELSE dt.tag_id END AS display_tag_id,
		CASE WHEN ut.tag_id IS NOT NULL AND ut.is_active THEN ut.name ELSE dt.name END AS display_tag_name,
		CASE WHEN ut.tag_id IS NOT NULL AND ut.is_active THEN ut.color ELSE dt.color END AS display_tag_color,
		CASE WHEN ut.tag_id IS NOT NULL AND ut.is_active THEN ut.is_active ELSE dt.is_active END AS display_tag_is_active,
		(ut.tag_id IS NULL OR NOT ut.is_active) AS using_default_tag,
		dt.tag_id AS default_tag_id,
		dt.name AS default_tag_name,
		i.vendor_name AS invoice_vendor,
		i.total_amount AS invoice_total
	FROM expenses e
	JOIN tags dt ON dt.tag_id = e.default_tag_id
	LEFT JOIN tags ut ON ut.tag_id = e.user_tag_id
	LEFT JOIN invoices i ON i.invoice_id = e.invoice_id`,

	`CREATE OR REPLACE VIEW expense_weekly_by_tag AS
	SELECT
		user_id,
		DATE_TRUNC('week', expense_date) AS week_start,
		display_tag_id,
		display_tag_name,
		display_tag_color,
		SUM(amount) AS total_amount,
		COUNT(*) AS transaction_count
	FROM expense_analysis
	GROUP BY user_id, DATE_TRUNC('week', expense_date), display_tag_id, display_tag_name, display_tag_color`,

	`CREATE OR REPLACE VIEW expense_monthly_by_tag AS
	SELECT
		user_id,
		DATE_TRUNC('month', expense_date) AS month_start,
		display_tag_id,
		display_tag_name,
		display_tag_color,
		SUM(amount) AS total_amount,
		COUNT(*) AS transaction_count
	FROM expense_analysis
	GROUP BY user_id, DATE_TRUNC('month', expense_date), display_tag_id, display_tag_name, display_tag_color`,

	`CREATE OR REPLACE VIEW expense_yearly_by_tag AS
	SELECT
		user_id,
		DATE_TRUNC('year', expense_date) AS year_start,
		display_tag_id,
		display_tag_name,
		display_tag_color,
		SUM(amount) AS total_amount,
		COUNT(*) AS transaction_count
	FROM expense_analysis
	GROUP BY user_id, DATE_TRUNC('year', expense_date), display_tag_id, display_tag_name, display_tag_color`,

	// 用户可用标签：系统标签加上本人创建的激活标签，并标记是否收藏
	`CREATE OR REPLACE VIEW user_available_tags AS
	SELECT
		u.user_id,
		t.tag_id,
		t.name,
		t.color,
		t.is_system,
		t.created_by,
		EXISTS (
			SELECT 1 FROM user_favorite_tags f
			WHERE f.user_id = u.user_id AND f.tag_id = t.tag_id
		) AS is_favorite
	FROM users u
	JOIN tags t ON t.is_active AND (t.is_system OR t.created_by = u.user_id)`,

	`CREATE OR REPLACE VIEW invoice_details AS
	SELECT
		i.invoice_id,
		i.user_id,
		i.vendor_name,
		i.invoice_date,
		i.total_amount,
		i.receipt_image_path,
		i.notes,
		COUNT(e.expense_id) AS item_count,
		i.created_at,
		i.updated_at
	FROM invoices i
	LEFT JOIN expenses e ON e.invoice_id = i.invoice_id
	GROUP BY i.invoice_id`,
}

func CreateViews(db *gorm.DB) error {
	for _, stmt := range viewStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
