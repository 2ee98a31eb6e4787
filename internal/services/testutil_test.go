package services

import (
	"testing"

	"expense-backend/internal/database"
	"expense-backend/internal/models"
	"expense-backend/internal/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqlite 不支持 CREATE OR REPLACE VIEW，测试里只建不依赖 DATE_TRUNC 的视图
var testViews = []string{
	`CREATE VIEW user_available_tags AS
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

	`CREATE VIEW invoice_details AS
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

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// 内存库按连接隔离，限制为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.MigrateModels(db))
	require.NoError(t, database.SeedSystemTags(db))
	for _, stmt := range testViews {
		require.NoError(t, db.Exec(stmt).Error)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createUserTag(t *testing.T, db *gorm.DB, userID uint, name string) *models.Tag {
	t.Helper()

	tag, err := NewTagService(db).CreateTag(userID, &models.TagCreateRequest{
		Name:  name,
		Color: "#123456",
	})
	require.NoError(t, err)
	return tag
}

func firstSystemTagID(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	var tag models.Tag
	require.NoError(t, db.Where("is_system = ?", true).Order("tag_id").First(&tag).Error)
	return tag.TagID
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }
