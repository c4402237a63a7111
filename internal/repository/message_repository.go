package repository

import (
	"MatchServer/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// messageRepositoryImpl 单聊消息数据访问层实现
type messageRepositoryImpl struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息仓储实例
func NewMessageRepository(db *gorm.DB) IMessageRepository {
	return &messageRepositoryImpl{db: db}
}

// Create 持久化一条消息
func (r *messageRepositoryImpl) Create(ctx context.Context, msg *model.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return WrapDBError(err)
	}
	return nil
}

// HistoryBefore 拉取双向会话历史
// 两个方向的消息合并后按 id 倒序（雪花 id 时间有序）
func (r *messageRepositoryImpl) HistoryBefore(ctx context.Context, aUUID, bUUID string, beforeId int64, limit int) ([]*model.ChatMessage, error) {
	query := r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("(sender_uuid = ? AND recipient_uuid = ?) OR (sender_uuid = ? AND recipient_uuid = ?)",
			aUUID, bUUID, bUUID, aUUID)
	if beforeId > 0 {
		query = query.Where("id < ?", beforeId)
	}

	var messages []*model.ChatMessage
	if err := query.
		Order("id DESC").
		Limit(limit).
		Find(&messages).
		Error; err != nil {
		return nil, WrapDBError(err)
	}
	return messages, nil
}

// MarkRead 标记 peer -> reader 方向的未读消息为已读
// 先 SELECT 待标记 id 再 UPDATE：
//   - 调用方需要精确的 id 列表去广播回执
//   - WHERE read_at IS NULL 保证重复调用天然幂等（第二次查出空集）
func (r *messageRepositoryImpl) MarkRead(ctx context.Context, readerUUID, peerUUID string, upToId int64) ([]int64, time.Time, error) {
	query := r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("sender_uuid = ? AND recipient_uuid = ? AND read_at IS NULL", peerUUID, readerUUID)
	if upToId > 0 {
		query = query.Where("id <= ?", upToId)
	}

	var ids []int64
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, time.Time{}, WrapDBError(err)
	}
	if len(ids) == 0 {
		return []int64{}, time.Time{}, nil
	}

	// 回执和落库必须用同一个时间戳
	now := time.Now()
	if err := r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("id IN ? AND read_at IS NULL", ids).
		Update("read_at", now).
		Error; err != nil {
		return nil, time.Time{}, WrapDBError(err)
	}
	return ids, now, nil
}

// CountUnread 统计 peer -> reader 方向的未读消息数
func (r *messageRepositoryImpl) CountUnread(ctx context.Context, readerUUID, peerUUID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.ChatMessage{}).
		Where("sender_uuid = ? AND recipient_uuid = ? AND read_at IS NULL", peerUUID, readerUUID).
		Count(&count).
		Error; err != nil {
		return 0, WrapDBError(err)
	}
	return count, nil
}
