package repository

import (
	"MatchServer/model"
	"context"

	"gorm.io/gorm"
)

// reportRepositoryImpl 举报数据访问层实现
type reportRepositoryImpl struct {
	db *gorm.DB
}

// NewReportRepository 创建举报仓储实例
func NewReportRepository(db *gorm.DB) IReportRepository {
	return &reportRepositoryImpl{db: db}
}

// Create 创建举报记录
// "同一对用户只允许一条 pending" 用事务内 check-then-insert 实现：
// 状态流转后允许再次举报，唯一索引表达不了这种带状态的约束
func (r *reportRepositoryImpl) Create(ctx context.Context, report *model.UserReport) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.UserReport{}).
			Where("reporter_uuid = ? AND target_uuid = ? AND status = ?",
				report.ReporterUuid, report.TargetUuid, model.ReportStatusPending).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}

		report.Status = model.ReportStatusPending
		return tx.Create(report).Error
	})

	if err != nil {
		return WrapDBError(err)
	}
	return nil
}

// HasPending 检查是否存在待处理举报
func (r *reportRepositoryImpl) HasPending(ctx context.Context, reporterUUID, targetUUID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserReport{}).
		Where("reporter_uuid = ? AND target_uuid = ? AND status = ?",
			reporterUUID, targetUUID, model.ReportStatusPending).
		Count(&count).
		Error; err != nil {
		return false, WrapDBError(err)
	}
	return count > 0, nil
}
