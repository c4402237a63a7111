package mysql

import (
	"time"

	"MatchServer/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var global *gorm.DB

// DB 返回全局连接（未初始化时为 nil）。
func DB() *gorm.DB {
	return global
}

// ReplaceGlobal 设置全局连接，需在进程启动时调用一次。
func ReplaceGlobal(db *gorm.DB) {
	global = db
}

// Build 根据配置构建 gorm 连接。
// 说明：
// - TranslateError 开启后，唯一键冲突会被翻译为 gorm.ErrDuplicatedKey，
//   repository 层据此做幂等判断；
// - 慢查询阈值走 gorm 自带 logger，结构化日志由业务层补充。
func Build(cfg config.MySQLConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}
