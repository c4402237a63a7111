package repository

import (
	"MatchServer/model"
	"context"
	"time"
)

// ==================== 用户基础信息 Repository ====================

// IUserRepository 用户基础信息数据访问接口
type IUserRepository interface {
	// GetByUUID 根据UUID查询用户基础信息
	GetByUUID(ctx context.Context, uuid string) (*model.UserInfo, error)

	// BatchGetByUUIDs 批量查询用户基础信息
	BatchGetByUUIDs(ctx context.Context, uuids []string) ([]*model.UserInfo, error)

	// Create 创建用户（种子数据/注册回填）
	Create(ctx context.Context, user *model.UserInfo) (*model.UserInfo, error)
}

// ==================== 画像与隐私 Repository ====================

// IProfileRepository 交友画像与隐私设置数据访问接口
type IProfileRepository interface {
	// GetByUUID 根据UUID查询画像（预加载性取向标签）
	GetByUUID(ctx context.Context, uuid string) (*model.UserProfile, error)

	// Save 保存画像（种子数据/资料编辑）
	Save(ctx context.Context, profile *model.UserProfile) error

	// CandidatePool 拉取候选池
	// 数据库侧只做硬性剪枝：排除自己、排除 excludedUuids、
	// 排除资料不可见/隐身/被封禁的用户，按活跃度倒序截断到 limit。
	// 打分与软性过滤在 service 层完成。
	CandidatePool(ctx context.Context, selfUUID string, excludedUuids []string, limit int) ([]*model.UserProfile, error)

	// GetSettings 查询隐私设置，无记录时返回 ErrRecordNotFound
	GetSettings(ctx context.Context, uuid string) (*model.PrivacySettings, error)

	// BatchGetSettings 批量查询隐私设置，返回 uuid -> 设置 映射（无记录的用户不在映射中）
	BatchGetSettings(ctx context.Context, uuids []string) (map[string]*model.PrivacySettings, error)

	// SaveSettings 保存隐私设置（不存在则创建）
	SaveSettings(ctx context.Context, settings *model.PrivacySettings) error
}

// ==================== 喜欢 Repository ====================

// ILikeRepository 单向喜欢数据访问接口
type ILikeRepository interface {
	// Create 记录一次喜欢，重复喜欢返回 ErrDuplicateKey
	Create(ctx context.Context, fromUUID, toUUID string) error

	// ExistsReverse 检查反向喜欢是否存在（对方是否已喜欢我）
	ExistsReverse(ctx context.Context, fromUUID, toUUID string) (bool, error)

	// ListTargets 查询某用户喜欢过的所有目标uuid（用于候选池排除）
	ListTargets(ctx context.Context, fromUUID string) ([]string, error)

	// CountLikers 统计喜欢某用户的人数，redis 缓存优先，未命中回源并回填
	CountLikers(ctx context.Context, toUUID string) (int64, error)
}

// ==================== 拉黑 Repository ====================

// IBlockRepository 拉黑关系数据访问接口
type IBlockRepository interface {
	// Create 创建拉黑记录，重复拉黑返回 ErrDuplicateKey
	// source: 拉黑来源 user/moderator
	Create(ctx context.Context, blockerUUID, blockedUUID, source string) error

	// ExistsBetween 检查两个用户之间任一方向是否存在拉黑
	ExistsBetween(ctx context.Context, aUUID, bUUID string) (bool, error)

	// ListRelatedUuids 查询与某用户存在任一方向拉黑关系的所有uuid（用于候选池排除）
	ListRelatedUuids(ctx context.Context, userUUID string) ([]string, error)
}

// ==================== 配对 Repository ====================

// IMatchRepository 配对数据访问接口
type IMatchRepository interface {
	// UpsertCanonical 以规范化键 (low, high) 幂等创建配对
	// 返回 created=true 表示本次调用真正创建了配对，并发重复调用只有一方拿到 true
	UpsertCanonical(ctx context.Context, matchId int64, aUUID, bUUID string) (created bool, match *model.UserMatch, err error)

	// GetByPair 查询两个用户之间的配对记录，不存在返回 ErrRecordNotFound
	GetByPair(ctx context.Context, aUUID, bUUID string) (*model.UserMatch, error)

	// ListByUser 查询某用户的配对列表，按创建时间倒序，beforeId 为游标（0 表示首页）
	ListByUser(ctx context.Context, userUUID string, beforeId int64, limit int) ([]*model.UserMatch, error)

	// IncrDailyCounter 当日配对计数器自增（运营统计，redis 不可用时静默降级）
	IncrDailyCounter(ctx context.Context, day time.Time)
}

// ==================== 消息 Repository ====================

// IMessageRepository 单聊消息数据访问接口
type IMessageRepository interface {
	// Create 持久化一条消息
	Create(ctx context.Context, msg *model.ChatMessage) error

	// HistoryBefore 拉取双向会话历史，按 id 倒序
	// beforeId 为游标（0 表示从最新开始），limit 上限由调用方保证
	HistoryBefore(ctx context.Context, aUUID, bUUID string, beforeId int64, limit int) ([]*model.ChatMessage, error)

	// MarkRead 将 peer -> reader 方向 id <= upToId 的未读消息标记已读
	// upToId 为 0 时标记全部未读，返回本次被标记的消息 id 列表（幂等：已读消息不会重复出现）
	// 和落库用的已读时间戳，回执广播必须复用该时间戳
	MarkRead(ctx context.Context, readerUUID, peerUUID string, upToId int64) ([]int64, time.Time, error)

	// CountUnread 统计 peer -> reader 方向的未读消息数
	CountUnread(ctx context.Context, readerUUID, peerUUID string) (int64, error)
}

// ==================== 举报 Repository ====================

// IReportRepository 举报数据访问接口
type IReportRepository interface {
	// Create 创建举报记录
	// 同一 reporter 对同一 target 已有 pending 记录时返回 ErrDuplicateKey
	Create(ctx context.Context, report *model.UserReport) error

	// HasPending 检查是否存在待处理举报
	HasPending(ctx context.Context, reporterUUID, targetUUID string) (bool, error)
}
