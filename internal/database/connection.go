package database

import (
	"expense-backend/internal/config"
	"expense-backend/internal/models"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// 把驱动层的唯一约束冲突翻译成 gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("数据库连接成功")
	return db, nil
}

// Close 显式释放连接池，供进程退出和测试清理使用
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func AutoMigrate(db *gorm.DB) error {
	if err := MigrateModels(db); err != nil {
		return err
	}

	if err := CreateViews(db); err != nil {
		return fmt.Errorf("failed to create views: %w", err)
	}

	if err := SeedSystemTags(db); err != nil {
		return fmt.Errorf("failed to seed system tags: %w", err)
	}

	logrus.Info("数据库迁移完成")
	return nil
}

func MigrateModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Invoice{},
		&models.Expense{},
		&models.UserFavoriteTag{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

// 预置的系统标签，created_by 为空且始终激活
func SeedSystemTags(db *gorm.DB) error {
	color := func(s string) *string { return &s }

	systemTags := []models.Tag{
		{Name: "餐饮", Color: color("#e53935"), IsSystem: true, IsActive: true},
		{Name: "交通", Color: color("#1e88e5"), IsSystem: true, IsActive: true},
		{Name: "住房", Color: color("#8e24aa"), IsSystem: true, IsActive: true},
		{Name: "购物", Color: color("#fb8c00"), IsSystem: true, IsActive: true},
		{Name: "娱乐", Color: color("#43a047"), IsSystem: true, IsActive: true},
		{Name: "医疗", Color: color("#00acc1"), IsSystem: true, IsActive: true},
		{Name: "其他", Color: color("#757575"), IsSystem: true, IsActive: true},
	}

	for _, tag := range systemTags {
		var existing models.Tag
		err := db.Where("name = ? AND is_system = ?", tag.Name, true).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&tag).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	return nil
}
