package repository

import (
	"MatchServer/model"
	"context"

	"gorm.io/gorm"
)

// blockRepositoryImpl 拉黑关系数据访问层实现
type blockRepositoryImpl struct {
	db *gorm.DB
}

// NewBlockRepository 创建拉黑仓储实例
func NewBlockRepository(db *gorm.DB) IBlockRepository {
	return &blockRepositoryImpl{db: db}
}

// Create 创建拉黑记录
// 依赖 (blocker_uuid, blocked_uuid) 唯一索引识别重复拉黑
func (r *blockRepositoryImpl) Create(ctx context.Context, blockerUUID, blockedUUID, source string) error {
	block := &model.UserBlock{
		BlockerUuid: blockerUUID,
		BlockedUuid: blockedUUID,
		Source:      source,
	}
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		return WrapDBError(err)
	}
	return nil
}

// ExistsBetween 检查两个用户之间任一方向是否存在拉黑
func (r *blockRepositoryImpl) ExistsBetween(ctx context.Context, aUUID, bUUID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserBlock{}).
		Where("(blocker_uuid = ? AND blocked_uuid = ?) OR (blocker_uuid = ? AND blocked_uuid = ?)",
			aUUID, bUUID, bUUID, aUUID).
		Count(&count).
		Error; err != nil {
		return false, WrapDBError(err)
	}
	return count > 0, nil
}

// ListRelatedUuids 查询与某用户存在任一方向拉黑关系的所有uuid
func (r *blockRepositoryImpl) ListRelatedUuids(ctx context.Context, userUUID string) ([]string, error) {
	var blocked []string
	if err := r.db.WithContext(ctx).
		Model(&model.UserBlock{}).
		Where("blocker_uuid = ?", userUUID).
		Pluck("blocked_uuid", &blocked).
		Error; err != nil {
		return nil, WrapDBError(err)
	}

	var blockers []string
	if err := r.db.WithContext(ctx).
		Model(&model.UserBlock{}).
		Where("blocked_uuid = ?", userUUID).
		Pluck("blocker_uuid", &blockers).
		Error; err != nil {
		return nil, WrapDBError(err)
	}

	// 去重合并两个方向
	seen := make(map[string]struct{}, len(blocked)+len(blockers))
	merged := make([]string, 0, len(blocked)+len(blockers))
	for _, uuid := range append(blocked, blockers...) {
		if _, ok := seen[uuid]; ok {
			continue
		}
		seen[uuid] = struct{}{}
		merged = append(merged, uuid)
	}
	return merged, nil
}
