package repository

import (
	"MatchServer/consts/redisKey"
	"MatchServer/model"
	"MatchServer/pkg/async"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// matchRepositoryImpl 配对数据访问层实现
type matchRepositoryImpl struct {
	db          *gorm.DB
	redisClient *redis.Client
}

// NewMatchRepository 创建配对仓储实例
// redisClient 允许为 nil，此时运营计数静默跳过
func NewMatchRepository(db *gorm.DB, redisClient *redis.Client) IMatchRepository {
	return &matchRepositoryImpl{db: db, redisClient: redisClient}
}

// UpsertCanonical 以规范化键幂等创建配对
// INSERT ... ON CONFLICT DO NOTHING：
//   - 并发双向喜欢同时走到这里时，唯一索引保证只插入一行
//   - RowsAffected == 1 的那一次调用视为 "真正创建"，负责触发通知
func (r *matchRepositoryImpl) UpsertCanonical(ctx context.Context, matchId int64, aUUID, bUUID string) (bool, *model.UserMatch, error) {
	low, high := model.CanonicalPair(aUUID, bUUID)
	match := &model.UserMatch{
		Id:       matchId,
		UserLow:  low,
		UserHigh: high,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_low"}, {Name: "user_high"}},
		DoNothing: true,
	}).Create(match)
	if result.Error != nil {
		return false, nil, WrapDBError(result.Error)
	}

	if result.RowsAffected == 1 {
		return true, match, nil
	}

	// 冲突路径：读回已存在的配对行
	existing, err := r.GetByPair(ctx, aUUID, bUUID)
	if err != nil {
		return false, nil, err
	}
	return false, existing, nil
}

// GetByPair 查询两个用户之间的配对记录
func (r *matchRepositoryImpl) GetByPair(ctx context.Context, aUUID, bUUID string) (*model.UserMatch, error) {
	low, high := model.CanonicalPair(aUUID, bUUID)

	var match model.UserMatch
	if err := r.db.WithContext(ctx).
		Where("user_low = ? AND user_high = ?", low, high).
		First(&match).
		Error; err != nil {
		return nil, WrapDBError(err)
	}
	return &match, nil
}

// ListByUser 查询某用户的配对列表
// 雪花 id 时间有序，游标直接用 id 比较
func (r *matchRepositoryImpl) ListByUser(ctx context.Context, userUUID string, beforeId int64, limit int) ([]*model.UserMatch, error) {
	query := r.db.WithContext(ctx).
		Model(&model.UserMatch{}).
		Where("user_low = ? OR user_high = ?", userUUID, userUUID)
	if beforeId > 0 {
		query = query.Where("id < ?", beforeId)
	}

	var matches []*model.UserMatch
	if err := query.
		Order("id DESC").
		Limit(limit).
		Find(&matches).
		Error; err != nil {
		return nil, WrapDBError(err)
	}
	return matches, nil
}

// IncrDailyCounter 当日配对计数器自增
// 纯运营统计，redis 不可用或出错时只记日志
func (r *matchRepositoryImpl) IncrDailyCounter(ctx context.Context, day time.Time) {
	if r.redisClient == nil {
		return
	}

	key := rediskey.DailyMatchCounterKey(day)
	async.Go(ctx, func(taskCtx context.Context) {
		pipe := r.redisClient.Pipeline()
		pipe.Incr(taskCtx, key)
		pipe.Expire(taskCtx, key, rediskey.DailyMatchCounterTTL)
		if _, err := pipe.Exec(taskCtx); err != nil {
			LogRedisError(taskCtx, err)
		}
	})
}
