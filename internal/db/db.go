package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/pokerjest/animateRenamer/internal/model"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens (or creates) the settings database at storagePath.
// ":memory:" gives a throwaway database.
func InitDB(storagePath string) error {
	// 确保存储目录存在
	if storagePath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(storagePath), 0o755); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	conn, err := gorm.Open(sqlite.Open(storagePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	if storagePath == ":memory:" {
		// every connection would get its own empty in-memory database
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	// 自动迁移模式
	if err := conn.AutoMigrate(&model.GlobalConfig{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	DB = conn
	log.Debugf("DB: opened %s", storagePath)
	return nil
}

func CloseDB() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	DB = nil
}

// GetSetting returns the stored value of key and whether it exists.
func GetSetting(key string) (string, bool) {
	if DB == nil {
		return "", false
	}
	var cfg model.GlobalConfig
	if err := DB.Where("key = ?", key).First(&cfg).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("DB: failed to read setting %s: %v", key, err)
		}
		return "", false
	}
	return cfg.Value, true
}

// SetSetting creates or updates one key.
func SetSetting(key, value string) error {
	if DB == nil {
		return errors.New("database is not initialized")
	}
	return DB.Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&model.GlobalConfig{Key: key, Value: value}).Error
}

// AllSettings returns every stored key.
func AllSettings() (map[string]string, error) {
	if DB == nil {
		return nil, errors.New("database is not initialized")
	}
	var configs []model.GlobalConfig
	if err := DB.Find(&configs).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(configs))
	for _, c := range configs {
		out[c.Key] = c.Value
	}
	return out, nil
}
