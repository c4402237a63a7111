package repository

import (
	"MatchServer/consts/redisKey"
	"MatchServer/model"
	"MatchServer/pkg/async"
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// likeRepositoryImpl 单向喜欢数据访问层实现
type likeRepositoryImpl struct {
	db          *gorm.DB
	redisClient *redis.Client
}

// NewLikeRepository 创建喜欢仓储实例
// redisClient 允许为 nil，此时喜欢计数每次回源数据库
func NewLikeRepository(db *gorm.DB, redisClient *redis.Client) ILikeRepository {
	return &likeRepositoryImpl{db: db, redisClient: redisClient}
}

// Create 记录一次喜欢
// 依赖 (from_uuid, to_uuid) 唯一索引识别重复喜欢，冲突返回 ErrDuplicateKey
func (r *likeRepositoryImpl) Create(ctx context.Context, fromUUID, toUUID string) error {
	like := &model.UserLike{
		FromUuid: fromUUID,
		ToUuid:   toUUID,
	}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return WrapDBError(err)
	}

	// 喜欢落库成功后异步失效计数缓存，读侧自动回源重建
	if r.redisClient != nil {
		async.Go(ctx, func(taskCtx context.Context) {
			if err := r.redisClient.Del(taskCtx, rediskey.LikeCountKey(toUUID)).Err(); err != nil {
				LogRedisError(taskCtx, err)
			}
		})
	}
	return nil
}

// ExistsReverse 检查反向喜欢是否存在（to 是否已喜欢过 from）
func (r *likeRepositoryImpl) ExistsReverse(ctx context.Context, fromUUID, toUUID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserLike{}).
		Where("from_uuid = ? AND to_uuid = ?", toUUID, fromUUID).
		Count(&count).
		Error; err != nil {
		return false, WrapDBError(err)
	}
	return count > 0, nil
}

// ListTargets 查询某用户喜欢过的所有目标uuid
func (r *likeRepositoryImpl) ListTargets(ctx context.Context, fromUUID string) ([]string, error) {
	var targets []string
	if err := r.db.WithContext(ctx).
		Model(&model.UserLike{}).
		Where("from_uuid = ?", fromUUID).
		Pluck("to_uuid", &targets).
		Error; err != nil {
		return nil, WrapDBError(err)
	}
	return targets, nil
}

// CountLikers 统计喜欢某用户的人数
// 缓存策略：redis 优先，未命中回源数据库并回填（TTL 带抖动）；
// redis 故障时记录日志直接回源，不影响主链路
func (r *likeRepositoryImpl) CountLikers(ctx context.Context, toUUID string) (int64, error) {
	key := rediskey.LikeCountKey(toUUID)

	if r.redisClient != nil {
		raw, err := r.redisClient.Get(ctx, key).Result()
		if err == nil {
			if count, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
				return count, nil
			}
			// 脏数据，删掉走回源
			_ = r.redisClient.Del(ctx, key).Err()
		} else if !errors.Is(err, redis.Nil) {
			LogRedisError(ctx, err)
		}
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserLike{}).
		Where("to_uuid = ?", toUUID).
		Count(&count).
		Error; err != nil {
		return 0, WrapDBError(err)
	}

	if r.redisClient != nil {
		ttl := getRandomExpireTime(rediskey.LikeCountTTL)
		if err := r.redisClient.Set(ctx, key, count, ttl).Err(); err != nil {
			LogRedisError(ctx, err)
		}
	}
	return count, nil
}
