package repository_test

import (
	"context"
	"testing"
	"time"

	"MatchServer/internal/repository"
	"MatchServer/model"
	"MatchServer/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.ReplaceGlobal(zap.NewNop())
	m.Run()
}

// setupTestDB 内存 sqlite，行为与线上 mysql 对齐的点：
// TranslateError 开启后唯一键冲突同样映射为 gorm.ErrDuplicatedKey
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.AutoMigrate(
		&model.UserInfo{},
		&model.OrientationTag{},
		&model.UserProfile{},
		&model.PrivacySettings{},
		&model.UserLike{},
		&model.UserBlock{},
		&model.UserMatch{},
		&model.ChatMessage{},
		&model.UserReport{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func seedUser(t *testing.T, db *gorm.DB, uuid string, visible bool) {
	t.Helper()
	require.NoError(t, db.Create(&model.UserInfo{Uuid: uuid, Nickname: "u-" + uuid}).Error)
	require.NoError(t, db.Create(&model.UserProfile{UserUuid: uuid}).Error)
	require.NoError(t, db.Create(&model.PrivacySettings{UserUuid: uuid, ProfileVisible: visible}).Error)
}

func TestLikeRepository_CreateAndDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLikeRepository(setupTestDB(t), nil)

	err := repo.Create(ctx, "alice", "bob")
	assert.NoError(t, err)

	// 同一有向对重复喜欢
	err = repo.Create(ctx, "alice", "bob")
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	// 反向不算重复
	err = repo.Create(ctx, "bob", "alice")
	assert.NoError(t, err)
}

func TestLikeRepository_ExistsReverse(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewLikeRepository(setupTestDB(t), nil)

	exists, err := repo.ExistsReverse(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, "bob", "alice"))

	exists, err = repo.ExistsReverse(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestLikeRepository_CountLikersCache(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	rdb := setupTestRedis(t)
	repo := repository.NewLikeRepository(db, rdb)

	require.NoError(t, repo.Create(ctx, "bob", "carol"))
	require.NoError(t, repo.Create(ctx, "dave", "carol"))

	count, err := repo.CountLikers(ctx, "carol")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// 绕过仓储直接插一条，缓存命中时应仍返回旧值
	require.NoError(t, db.Create(&model.UserLike{FromUuid: "erin", ToUuid: "carol"}).Error)
	count, err = repo.CountLikers(ctx, "carol")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// 走仓储写入会失效缓存，下一次读取回源拿到最新值
	require.NoError(t, repo.Create(ctx, "frank", "carol"))
	count, err = repo.CountLikers(ctx, "carol")
	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestBlockRepository_ExistsBetween(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBlockRepository(setupTestDB(t))

	exists, err := repo.ExistsBetween(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, "alice", "bob", model.BlockSourceUser))

	// 任一方向都算存在
	exists, err = repo.ExistsBetween(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBetween(ctx, "bob", "alice")
	assert.NoError(t, err)
	assert.True(t, exists)

	// 重复拉黑
	err = repo.Create(ctx, "alice", "bob", model.BlockSourceUser)
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}

func TestBlockRepository_ListRelatedUuids(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBlockRepository(setupTestDB(t))

	require.NoError(t, repo.Create(ctx, "alice", "bob", model.BlockSourceUser))
	require.NoError(t, repo.Create(ctx, "carol", "alice", model.BlockSourceUser))
	require.NoError(t, repo.Create(ctx, "alice", "bob2", model.BlockSourceModerator))

	related, err := repo.ListRelatedUuids(ctx, "alice")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"bob", "bob2", "carol"}, related)
}

func TestMatchRepository_UpsertCanonicalIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(setupTestDB(t), nil)

	created, match, err := repo.UpsertCanonical(ctx, 1001, "bob", "alice")
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", match.UserLow)
	assert.Equal(t, "bob", match.UserHigh)

	// 反向参数命中同一规范键，不再新建
	created, match, err = repo.UpsertCanonical(ctx, 1002, "alice", "bob")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(1001), match.Id)

	got, err := repo.GetByPair(ctx, "bob", "alice")
	assert.NoError(t, err)
	assert.Equal(t, int64(1001), got.Id)
}

func TestMatchRepository_ListByUserCursor(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMatchRepository(setupTestDB(t), nil)

	for i, peer := range []string{"bob", "carol", "dave"} {
		_, _, err := repo.UpsertCanonical(ctx, int64(2000+i), "alice", peer)
		require.NoError(t, err)
	}

	page1, err := repo.ListByUser(ctx, "alice", 0, 2)
	assert.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, int64(2002), page1[0].Id)

	page2, err := repo.ListByUser(ctx, "alice", page1[1].Id, 2)
	assert.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, int64(2000), page2[0].Id)
}

func TestMessageRepository_HistoryBefore(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMessageRepository(setupTestDB(t))

	now := time.Now()
	for i := int64(1); i <= 5; i++ {
		sender, recipient := "alice", "bob"
		if i%2 == 0 {
			sender, recipient = "bob", "alice"
		}
		require.NoError(t, repo.Create(ctx, &model.ChatMessage{
			Id: i, SenderUuid: sender, RecipientUuid: recipient,
			Content: "hi", MessageType: model.MessageTypeText, DeliveredAt: now,
		}))
	}
	// 无关会话不应串台
	require.NoError(t, repo.Create(ctx, &model.ChatMessage{
		Id: 99, SenderUuid: "alice", RecipientUuid: "carol",
		Content: "other", MessageType: model.MessageTypeText, DeliveredAt: now,
	}))

	history, err := repo.HistoryBefore(ctx, "alice", "bob", 0, 3)
	assert.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, int64(5), history[0].Id)
	assert.Equal(t, int64(3), history[2].Id)

	older, err := repo.HistoryBefore(ctx, "alice", "bob", 3, 10)
	assert.NoError(t, err)
	require.Len(t, older, 2)
	assert.Equal(t, int64(2), older[0].Id)
}

func TestMessageRepository_MarkRead(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMessageRepository(setupTestDB(t))

	now := time.Now()
	for i := int64(1); i <= 4; i++ {
		require.NoError(t, repo.Create(ctx, &model.ChatMessage{
			Id: i, SenderUuid: "bob", RecipientUuid: "alice",
			Content: "hi", MessageType: model.MessageTypeText, DeliveredAt: now,
		}))
	}

	// 只标记 id <= 2
	ids, readAt, err := repo.MarkRead(ctx, "alice", "bob", 2)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, ids)
	assert.False(t, readAt.IsZero())

	// 返回的时间戳与落库值一致
	stored, err := repo.HistoryBefore(ctx, "alice", "bob", 2, 1)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.NotNil(t, stored[0].ReadAt)
	assert.True(t, stored[0].ReadAt.Equal(readAt))

	unread, err := repo.CountUnread(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	// 重复标记幂等
	ids, _, err = repo.MarkRead(ctx, "alice", "bob", 2)
	assert.NoError(t, err)
	assert.Empty(t, ids)

	// upToId=0 标记余下全部
	ids, _, err = repo.MarkRead(ctx, "alice", "bob", 0)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []int64{3, 4}, ids)

	unread, err = repo.CountUnread(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestReportRepository_PendingUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewReportRepository(setupTestDB(t))

	err := repo.Create(ctx, &model.UserReport{
		ReporterUuid: "alice", TargetUuid: "bob", Reason: "spam",
	})
	assert.NoError(t, err)

	// pending 未处理前不允许重复举报同一目标
	err = repo.Create(ctx, &model.UserReport{
		ReporterUuid: "alice", TargetUuid: "bob", Reason: "harassment",
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	pending, err := repo.HasPending(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.True(t, pending)

	// 不同目标互不影响
	err = repo.Create(ctx, &model.UserReport{
		ReporterUuid: "alice", TargetUuid: "carol", Reason: "spam",
	})
	assert.NoError(t, err)
}

func TestProfileRepository_CandidatePoolPruning(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := repository.NewProfileRepository(db)

	seedUser(t, db, "me", true)
	seedUser(t, db, "visible", true)
	seedUser(t, db, "hidden", false)
	seedUser(t, db, "excluded", true)

	// 隐身用户
	seedUser(t, db, "ghost", true)
	require.NoError(t, db.Model(&model.PrivacySettings{}).
		Where("user_uuid = ?", "ghost").
		Update("incognito", true).Error)

	// 封禁用户
	seedUser(t, db, "banned", true)
	require.NoError(t, db.Model(&model.UserInfo{}).
		Where("uuid = ?", "banned").
		Update("banned", true).Error)

	pool, err := repo.CandidatePool(ctx, "me", []string{"excluded"}, 20)
	assert.NoError(t, err)

	uuids := make([]string, 0, len(pool))
	for _, p := range pool {
		uuids = append(uuids, p.UserUuid)
	}
	assert.ElementsMatch(t, []string{"visible"}, uuids)
}

func TestProfileRepository_SettingsUpsert(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProfileRepository(setupTestDB(t))

	_, err := repo.GetSettings(ctx, "alice")
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)

	require.NoError(t, repo.SaveSettings(ctx, &model.PrivacySettings{
		UserUuid: "alice", ProfileVisible: true,
	}))

	// 同一用户再次保存走更新
	require.NoError(t, repo.SaveSettings(ctx, &model.PrivacySettings{
		UserUuid: "alice", ProfileVisible: true, Incognito: true,
	}))

	settings, err := repo.GetSettings(ctx, "alice")
	assert.NoError(t, err)
	assert.True(t, settings.Incognito)
}
