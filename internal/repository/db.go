package repository

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"reelview-admin/internal/config"
	"reelview-admin/internal/model"
	"reelview-admin/pkg/logging"
)

// InitDB 连接 MySQL 并迁移 i18n 相关表
func InitDB(cfg config.DBConfig, logger *zap.Logger, atomicLogLevel zap.AtomicLevel) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logging.NewGormLogger(logger, logging.ToGormLogLevel(atomicLogLevel.Level())),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&model.Translation{}, &model.LocaleDailyStat{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}
