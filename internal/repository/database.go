package repository

import (
	"fmt"

	"github.com/Frenky19/QRkot-spreadsheets/internal/config"
	"github.com/Frenky19/QRkot-spreadsheets/internal/database"
	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// gormConfig 所有连接共用的 gorm 配置
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent), // 禁用 GORM 的默认日志输出
		TranslateError: true,                                          // 唯一约束冲突转为 gorm.ErrDuplicatedKey
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true, // 禁用复数表名
		},
	}
}

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(database.DSN(cfg)), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if !cfg.AutoMigrate {
		return db, nil
	}

	// 自动迁移
	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.CharityProjectModel{},
		&model.DonationModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
