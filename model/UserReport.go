package model

import (
	"time"

	"gorm.io/gorm"
)

// 举报状态流转：pending -> reviewed / dismissed
const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusDismissed = "dismissed"
)

// UserReport 用户举报记录。
// 同一 reporter 对同一 target 只允许存在一条 pending 记录，
// 唯一约束建在 (reporter, target, status) 上由仓储层保证语义。
type UserReport struct {
	Id           int64  `gorm:"column:id;primaryKey;autoIncrement;comment:主键"`
	ReporterUuid string `gorm:"column:reporter_uuid;type:char(36);not null;index:idx_reporter_target,priority:1;comment:举报人uuid"`
	TargetUuid   string `gorm:"column:target_uuid;type:char(36);not null;index:idx_reporter_target,priority:2;comment:被举报人uuid"`
	Reason       string `gorm:"column:reason;type:varchar(64);not null;comment:举报原因"`
	Detail       string `gorm:"column:detail;type:varchar(1024);comment:补充说明"`
	Status       string `gorm:"column:status;type:varchar(16);not null;default:pending;index;comment:处理状态"`

	CreatedAt time.Time      `gorm:"column:created_at;comment:创建时间"`
	UpdatedAt time.Time      `gorm:"column:updated_at;comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index;comment:删除时间"`
}

func (UserReport) TableName() string { return "user_report" }
