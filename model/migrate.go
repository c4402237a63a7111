package model

import "gorm.io/gorm"

// AutoMigrate 建表/补列，启动时调用
// 线上走独立 migration 流程时可以关掉
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserInfo{},
		&OrientationTag{},
		&UserProfile{},
		&PrivacySettings{},
		&UserLike{},
		&UserBlock{},
		&UserMatch{},
		&ChatMessage{},
		&UserReport{},
	)
}
