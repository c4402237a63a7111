package repository

import (
	"MatchServer/model"
	"context"

	"gorm.io/gorm"
)

// userRepositoryImpl 用户基础信息数据访问层实现
type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *gorm.DB) IUserRepository {
	return &userRepositoryImpl{db: db}
}

// GetByUUID 根据UUID查询用户基础信息
func (r *userRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.WithContext(ctx).
		Where("uuid = ?", uuid).
		First(&user).
		Error; err != nil {
		return nil, WrapDBError(err)
	}
	return &user, nil
}

// BatchGetByUUIDs 批量查询用户基础信息
func (r *userRepositoryImpl) BatchGetByUUIDs(ctx context.Context, uuids []string) ([]*model.UserInfo, error) {
	if len(uuids) == 0 {
		return []*model.UserInfo{}, nil
	}

	var users []*model.UserInfo
	if err := r.db.WithContext(ctx).
		Where("uuid IN ?", uuids).
		Find(&users).
		Error; err != nil {
		return nil, WrapDBError(err)
	}
	return users, nil
}

// Create 创建用户
func (r *userRepositoryImpl) Create(ctx context.Context, user *model.UserInfo) (*model.UserInfo, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return user, nil
}
