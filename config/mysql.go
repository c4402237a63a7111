package config

import "time"

// MySQLConfig MySQL 连接配置。
type MySQLConfig struct {
	DSN             string        `json:"dsn" yaml:"dsn"`                         // 连接串
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`       // 最大打开连接数
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`       // 最大空闲连接数
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"` // 连接最大存活时间
	LogSlowQuery    time.Duration `json:"logSlowQuery" yaml:"logSlowQuery"`       // 慢查询阈值
}

// DefaultMySQLConfig 返回本地开发的默认配置。
func DefaultMySQLConfig() MySQLConfig {
	return MySQLConfig{
		DSN:             "root:root@tcp(mysql:3306)/matchserver?charset=utf8mb4&parseTime=True&loc=Local",
		MaxOpenConns:    100,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Hour,
		LogSlowQuery:    200 * time.Millisecond,
	}
}
