package repository

import (
	"MatchServer/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// profileRepositoryImpl 画像与隐私设置数据访问层实现
type profileRepositoryImpl struct {
	db *gorm.DB
}

// NewProfileRepository 创建画像仓储实例
func NewProfileRepository(db *gorm.DB) IProfileRepository {
	return &profileRepositoryImpl{db: db}
}

// GetByUUID 根据UUID查询画像（预加载性取向标签）
func (r *profileRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.db.WithContext(ctx).
		Preload("Orientations").
		Where("user_uuid = ?", uuid).
		First(&profile).
		Error; err != nil {
		return nil, WrapDBError(err)
	}
	return &profile, nil
}

// Save 保存画像（含关联标签）
func (r *profileRepositoryImpl) Save(ctx context.Context, profile *model.UserProfile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return WrapDBError(err)
	}
	return nil
}

// CandidatePool 拉取候选池
// 数据库侧做硬性剪枝，打分留给 service：
//  1. 排除自己与 excludedUuids（已喜欢/已拉黑）
//  2. 排除封禁/影子封禁用户
//  3. 排除资料不可见或隐身的用户
//  4. 按最近活跃倒序截断到 limit
func (r *profileRepositoryImpl) CandidatePool(ctx context.Context, selfUUID string, excludedUuids []string, limit int) ([]*model.UserProfile, error) {
	visibleUsers := r.db.
		Model(&model.UserInfo{}).
		Select("uuid").
		Where("banned = ? AND shadow_banned = ?", false, false)

	hiddenUsers := r.db.
		Model(&model.PrivacySettings{}).
		Select("user_uuid").
		Where("profile_visible = ? OR incognito = ?", false, true)

	query := r.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("user_uuid <> ?", selfUUID).
		Where("user_uuid IN (?)", visibleUsers).
		Where("user_uuid NOT IN (?)", hiddenUsers)

	if len(excludedUuids) > 0 {
		query = query.Where("user_uuid NOT IN ?", excludedUuids)
	}

	var profiles []*model.UserProfile
	if err := query.
		Preload("Orientations").
		Order("updated_at DESC, id DESC").
		Limit(limit).
		Find(&profiles).
		Error; err != nil {
		return nil, WrapDBError(err)
	}
	return profiles, nil
}

// GetSettings 查询隐私设置
func (r *profileRepositoryImpl) GetSettings(ctx context.Context, uuid string) (*model.PrivacySettings, error) {
	var settings model.PrivacySettings
	if err := r.db.WithContext(ctx).
		Where("user_uuid = ?", uuid).
		First(&settings).
		Error; err != nil {
		return nil, WrapDBError(err)
	}
	return &settings, nil
}

// BatchGetSettings 批量查询隐私设置
func (r *profileRepositoryImpl) BatchGetSettings(ctx context.Context, uuids []string) (map[string]*model.PrivacySettings, error) {
	result := make(map[string]*model.PrivacySettings, len(uuids))
	if len(uuids) == 0 {
		return result, nil
	}

	var rows []*model.PrivacySettings
	if err := r.db.WithContext(ctx).
		Where("user_uuid IN ?", uuids).
		Find(&rows).
		Error; err != nil {
		return nil, WrapDBError(err)
	}
	for _, row := range rows {
		result[row.UserUuid] = row
	}
	return result, nil
}

// SaveSettings 保存隐私设置（不存在则创建）
// 以 user_uuid 唯一索引做 Upsert，避免 "查不到再插入" 的并发窗口
func (r *profileRepositoryImpl) SaveSettings(ctx context.Context, settings *model.PrivacySettings) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"incognito", "hide_distance", "profile_visible", "verified_only", "updated_at",
		}),
	}).Create(settings).Error

	if err != nil {
		return WrapDBError(err)
	}
	return nil
}
