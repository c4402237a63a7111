package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"MatchServer/config"
	"MatchServer/consts"
	"MatchServer/internal/analytics"
	"MatchServer/internal/dto"
	"MatchServer/internal/guard"
	"MatchServer/internal/relay"
	"MatchServer/internal/repository"
	"MatchServer/internal/service"
	"MatchServer/model"
	"MatchServer/pkg/logger"
	"MatchServer/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.ReplaceGlobal(zap.NewNop())
	if err := util.InitSnowflake(1); err != nil {
		panic(err)
	}
	m.Run()
}

// fakeNotifier 记录每次调用，测试 "恰好通知一次"
type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeNotifier) Notify(_ context.Context, handle, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, handle)
	return nil
}

func (f *fakeNotifier) notified() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// collectChannel 测试用信道，收集事件
type collectChannel struct {
	mu     sync.Mutex
	events []relay.Event
	done   chan struct{}
	once   sync.Once
}

func newCollectChannel() *collectChannel { return &collectChannel{done: make(chan struct{})} }

func (c *collectChannel) Enqueue(evt relay.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
	return true
}
func (c *collectChannel) Close()                { c.once.Do(func() { close(c.done) }) }
func (c *collectChannel) Done() <-chan struct{} { return c.done }
func (c *collectChannel) received() []relay.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]relay.Event(nil), c.events...)
}

// testEnv 服务层测试环境：真实仓储 + 内存 sqlite + 假通知器
type testEnv struct {
	db       *gorm.DB
	registry *relay.Registry
	notify   *fakeNotifier

	profileRepo repository.IProfileRepository
	blockRepo   repository.IBlockRepository
	likeRepo    repository.ILikeRepository
	matchRepo   repository.IMatchRepository
	messageRepo repository.IMessageRepository

	discover service.IDiscoverService
	like     service.ILikeService
	chat     service.IChatService
	block    service.IBlockService
	report   service.IReportService
	privacy  service.IPrivacyService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.UserInfo{},
		&model.OrientationTag{},
		&model.UserProfile{},
		&model.PrivacySettings{},
		&model.UserLike{},
		&model.UserBlock{},
		&model.UserMatch{},
		&model.ChatMessage{},
		&model.UserReport{},
	))

	env := &testEnv{
		db:       db,
		registry: relay.NewRegistry(),
		notify:   &fakeNotifier{},
	}
	env.profileRepo = repository.NewProfileRepository(db)
	env.blockRepo = repository.NewBlockRepository(db)
	env.likeRepo = repository.NewLikeRepository(db, nil)
	env.matchRepo = repository.NewMatchRepository(db, nil)
	env.messageRepo = repository.NewMessageRepository(db)
	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)

	interactionGuard := guard.New(env.blockRepo, env.profileRepo)
	noAnalytics := analytics.NewLogger(nil)

	env.discover = service.NewDiscoverService(
		config.DefaultSelectorConfig(), env.profileRepo, userRepo, env.likeRepo, env.blockRepo, noAnalytics)
	env.like = service.NewLikeService(
		interactionGuard, userRepo, env.likeRepo, env.matchRepo, env.messageRepo, env.notify, noAnalytics)
	env.chat = service.NewChatService(interactionGuard, env.matchRepo, env.messageRepo, env.registry)
	env.block = service.NewBlockService(userRepo, env.blockRepo, interactionGuard)
	env.report = service.NewReportService(userRepo, reportRepo)
	env.privacy = service.NewPrivacyService(env.profileRepo)
	return env
}

// seedUser 创建用户主档 + 画像 + 默认隐私设置
func (e *testEnv) seedUser(t *testing.T, uuid string, mutate ...func(*model.UserInfo, *model.UserProfile, *model.PrivacySettings)) {
	t.Helper()
	user := &model.UserInfo{Uuid: uuid, Nickname: "u-" + uuid, NotifyHandle: "notify:" + uuid}
	profile := &model.UserProfile{UserUuid: uuid}
	settings := &model.PrivacySettings{UserUuid: uuid, ProfileVisible: true}
	for _, fn := range mutate {
		fn(user, profile, settings)
	}
	require.NoError(t, e.db.Create(user).Error)
	require.NoError(t, e.db.Create(profile).Error)
	require.NoError(t, e.db.Create(settings).Error)
}

func (e *testEnv) createMatch(t *testing.T, a, b string) {
	t.Helper()
	_, _, err := e.matchRepo.UpsertCanonical(context.Background(), util.NextID(), a, b)
	require.NoError(t, err)
}

func ptrFloat(v float64) *float64 { return &v }

func ptrInt(v int) *int { return &v }

// ==================== 喜欢与配对 ====================

func TestRecordLike_NoReverseLike(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "user-1")
	env.seedUser(t, "user-2")

	resp, err := env.like.RecordLike(ctx, "user-1", "user-2")
	require.NoError(t, err)
	assert.True(t, resp.Liked)
	assert.False(t, resp.Matched)
	assert.Empty(t, resp.MatchId)

	var count int64
	require.NoError(t, env.db.Model(&model.UserMatch{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRecordLike_ReciprocalCreatesMatchOnce(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "user-1")
	env.seedUser(t, "user-2")

	_, err := env.like.RecordLike(ctx, "user-1", "user-2")
	require.NoError(t, err)

	resp, err := env.like.RecordLike(ctx, "user-2", "user-1")
	require.NoError(t, err)
	assert.True(t, resp.Matched)
	assert.NotEmpty(t, resp.MatchId)

	// 规范键恰好一行
	var matches []model.UserMatch
	require.NoError(t, env.db.Find(&matches).Error)
	require.Len(t, matches, 1)
	assert.Equal(t, "user-1", matches[0].UserLow)
	assert.Equal(t, "user-2", matches[0].UserHigh)

	// 双方各收到一次配对通知
	assert.ElementsMatch(t, []string{"notify:user-1", "notify:user-2"}, env.notify.notified())
}

func TestRecordLike_DuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "user-1")
	env.seedUser(t, "user-2")

	_, err := env.like.RecordLike(ctx, "user-1", "user-2")
	require.NoError(t, err)

	_, err = env.like.RecordLike(ctx, "user-1", "user-2")
	assert.Equal(t, consts.CodeLikeAlreadyExists, consts.ExtractErrorCode(err))
}

func TestRecordLike_BlockedEitherDirection(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "user-1")
	env.seedUser(t, "user-2")
	require.NoError(t, env.blockRepo.Create(ctx, "user-2", "user-1", model.BlockSourceUser))

	_, err := env.like.RecordLike(ctx, "user-1", "user-2")
	assert.Equal(t, consts.CodeBlocked, consts.ExtractErrorCode(err))

	// 门禁短路，没有任何写入
	var count int64
	require.NoError(t, env.db.Model(&model.UserLike{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRecordLike_IncognitoSenderDenied(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "user-1", func(_ *model.UserInfo, _ *model.UserProfile, s *model.PrivacySettings) {
		s.Incognito = true
	})
	env.seedUser(t, "user-2")

	_, err := env.like.RecordLike(ctx, "user-1", "user-2")
	assert.Equal(t, consts.CodeIncognito, consts.ExtractErrorCode(err))
}

func TestRecordLike_HiddenPeerDenied(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "user-1")
	env.seedUser(t, "user-2", func(_ *model.UserInfo, _ *model.UserProfile, s *model.PrivacySettings) {
		s.ProfileVisible = false
	})

	_, err := env.like.RecordLike(ctx, "user-1", "user-2")
	assert.Equal(t, consts.CodePeerHidden, consts.ExtractErrorCode(err))
}

func TestRecordLike_UnknownTarget(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "user-1")

	_, err := env.like.RecordLike(ctx, "user-1", "ghost")
	assert.Equal(t, consts.CodeUserNotFound, consts.ExtractErrorCode(err))
}

func TestListMatches_PeerViewAndCursor(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "me")
	env.seedUser(t, "peer-a")
	env.seedUser(t, "peer-b")
	env.createMatch(t, "me", "peer-a")
	env.createMatch(t, "me", "peer-b")

	resp, err := env.like.ListMatches(ctx, "me", &dto.MatchListRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.NotEmpty(t, resp.NextCursor)
	// 最新配对在前
	assert.Equal(t, "peer-b", resp.Items[0].PeerUuid)
	assert.Equal(t, "u-peer-b", resp.Items[0].PeerNickname)

	resp, err = env.like.ListMatches(ctx, "me", &dto.MatchListRequest{BeforeId: resp.NextCursor, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "peer-a", resp.Items[0].PeerUuid)
	assert.Empty(t, resp.NextCursor)
}

// ==================== 单聊 ====================

func TestSendMessage_PersistsAndFansOut(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")
	env.createMatch(t, "alice", "bob")

	bobChannel := newCollectChannel()
	aliceChannel := newCollectChannel()
	require.True(t, env.registry.Subscribe("bob", bobChannel))
	require.True(t, env.registry.Subscribe("alice", aliceChannel))

	item, err := env.chat.SendMessage(ctx, "alice", "bob", &dto.SendMessageRequest{Content: "hi bob"})
	require.NoError(t, err)
	assert.NotEmpty(t, item.Id)
	assert.Equal(t, model.MessageTypeText, item.MessageType)
	assert.NotEmpty(t, item.DeliveredAt)
	assert.Empty(t, item.ReadAt)

	// 接收方收到 message 事件
	bobEvents := bobChannel.received()
	require.Len(t, bobEvents, 1)
	assert.Equal(t, relay.EventMessage, bobEvents[0].Type)
	payload := bobEvents[0].Data.(relay.MessagePayload)
	assert.Equal(t, "alice", payload.FromUuid)
	assert.Equal(t, "hi bob", payload.Content)

	// 发送方自己的会话收到投递回执
	aliceEvents := aliceChannel.received()
	require.Len(t, aliceEvents, 1)
	assert.Equal(t, relay.EventReceiptUpdate, aliceEvents[0].Type)

	// 落库且带投递时间戳
	var msg model.ChatMessage
	require.NoError(t, env.db.First(&msg).Error)
	assert.False(t, msg.DeliveredAt.IsZero())
	assert.Nil(t, msg.ReadAt)
}

func TestSendMessage_RecipientOfflineStillPersists(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")
	env.createMatch(t, "alice", "bob")

	_, err := env.chat.SendMessage(ctx, "alice", "bob", &dto.SendMessageRequest{Content: "offline msg"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&model.ChatMessage{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSendMessage_BlockedNoWrite(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")
	env.createMatch(t, "alice", "bob")
	require.NoError(t, env.blockRepo.Create(ctx, "bob", "alice", model.BlockSourceUser))

	_, err := env.chat.SendMessage(ctx, "alice", "bob", &dto.SendMessageRequest{Content: "hello?"})
	assert.Equal(t, consts.CodeBlocked, consts.ExtractErrorCode(err))

	var count int64
	require.NoError(t, env.db.Model(&model.ChatMessage{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSendMessage_WithoutMatchDenied(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	_, err := env.chat.SendMessage(ctx, "alice", "bob", &dto.SendMessageRequest{Content: "hi"})
	assert.Equal(t, consts.CodePermissionDeny, consts.ExtractErrorCode(err))
}

func TestSendMessage_OversizeRejected(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")
	env.createMatch(t, "alice", "bob")

	huge := make([]byte, 2049)
	for i := range huge {
		huge[i] = 'x'
	}
	_, err := env.chat.SendMessage(ctx, "alice", "bob", &dto.SendMessageRequest{Content: string(huge)})
	assert.Equal(t, consts.CodeContentTooLarge, consts.ExtractErrorCode(err))
}

func TestMarkRead_IdempotentAndEmitsReceipts(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")
	env.createMatch(t, "alice", "bob")

	_, err := env.chat.SendMessage(ctx, "bob", "alice", &dto.SendMessageRequest{Content: "one"})
	require.NoError(t, err)
	_, err = env.chat.SendMessage(ctx, "bob", "alice", &dto.SendMessageRequest{Content: "two"})
	require.NoError(t, err)

	bobChannel := newCollectChannel()
	require.True(t, env.registry.Subscribe("bob", bobChannel))

	resp, err := env.chat.MarkRead(ctx, "alice", "bob", &dto.MarkReadRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.MarkedIds, 2)

	// 原发送方收到逐条已读回执，时间戳与落库的 read_at 一致
	var storedFirst model.ChatMessage
	require.NoError(t, env.db.First(&storedFirst).Error)
	require.NotNil(t, storedFirst.ReadAt)

	receipts := bobChannel.received()
	require.Len(t, receipts, 2)
	for _, evt := range receipts {
		assert.Equal(t, relay.EventReceiptUpdate, evt.Type)
		payload := evt.Data.(relay.ReceiptPayload)
		require.NotNil(t, payload.ReadAt)
		assert.True(t, payload.ReadAt.Equal(*storedFirst.ReadAt))
	}

	// 再标一次：不改行、不发回执
	resp, err = env.chat.MarkRead(ctx, "alice", "bob", &dto.MarkReadRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.MarkedIds)
	assert.Len(t, bobChannel.received(), 2)
}

func TestHistory_CursorPagination(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")
	env.createMatch(t, "alice", "bob")

	for i := 0; i < 3; i++ {
		_, err := env.chat.SendMessage(ctx, "alice", "bob", &dto.SendMessageRequest{Content: "m"})
		require.NoError(t, err)
	}

	page1, err := env.chat.History(ctx, "alice", "bob", &dto.HistoryRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Items, 2)
	require.NotEmpty(t, page1.NextCursor)

	page2, err := env.chat.History(ctx, "alice", "bob", &dto.HistoryRequest{BeforeId: page1.NextCursor, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Items, 1)
}

func TestTyping_BroadcastsEphemeralSignal(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	bobChannel := newCollectChannel()
	require.True(t, env.registry.Subscribe("bob", bobChannel))

	require.NoError(t, env.chat.Typing(ctx, "alice", "bob", true))
	require.NoError(t, env.chat.Typing(ctx, "alice", "bob", false))

	events := bobChannel.received()
	require.Len(t, events, 2)
	assert.True(t, events[0].Data.(relay.TypingPayload).Active)
	assert.False(t, events[1].Data.(relay.TypingPayload).Active)

	// 对方不在线是 no-op
	require.NoError(t, env.chat.Typing(ctx, "alice", "nobody", true))
}

// ==================== 发现页 ====================

func TestDiscover_HideDistanceSuppressesOutput(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "me", func(_ *model.UserInfo, p *model.UserProfile, _ *model.PrivacySettings) {
		p.Latitude, p.Longitude = ptrFloat(0), ptrFloat(0)
	})
	// 约 12 公里外且隐藏距离
	env.seedUser(t, "nearby", func(_ *model.UserInfo, p *model.UserProfile, s *model.PrivacySettings) {
		p.Latitude, p.Longitude = ptrFloat(0.1079), ptrFloat(0)
		p.Bio, p.City = "hello", "Berlin"
		s.HideDistance = true
	})

	resp, err := env.discover.Discover(ctx, "me", &dto.DiscoverRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "nearby", resp.Candidates[0].UserUuid)
	// 距离可计算但对方隐藏，输出 null
	assert.Nil(t, resp.Candidates[0].DistanceKm)
}

func TestDiscover_DistanceReportedRounded(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "me", func(_ *model.UserInfo, p *model.UserProfile, _ *model.PrivacySettings) {
		p.Latitude, p.Longitude = ptrFloat(0), ptrFloat(0)
	})
	env.seedUser(t, "nearby", func(_ *model.UserInfo, p *model.UserProfile, _ *model.PrivacySettings) {
		p.Latitude, p.Longitude = ptrFloat(0.1079), ptrFloat(0)
	})

	resp, err := env.discover.Discover(ctx, "me", &dto.DiscoverRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	require.NotNil(t, resp.Candidates[0].DistanceKm)
	assert.Equal(t, 12, *resp.Candidates[0].DistanceKm)
}

func TestDiscover_MaxDistanceExcludes(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "me", func(_ *model.UserInfo, p *model.UserProfile, _ *model.PrivacySettings) {
		p.Latitude, p.Longitude = ptrFloat(0), ptrFloat(0)
	})
	// 约 200 公里外，超过默认最大距离 100km
	env.seedUser(t, "far", func(_ *model.UserInfo, p *model.UserProfile, _ *model.PrivacySettings) {
		p.Latitude, p.Longitude = ptrFloat(1.8), ptrFloat(0)
	})

	resp, err := env.discover.Discover(ctx, "me", &dto.DiscoverRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)
}

func TestDiscover_OrientationFilter(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)

	tag := &model.OrientationTag{Name: "gay"}
	require.NoError(t, env.db.Create(tag).Error)

	env.seedUser(t, "me")
	env.seedUser(t, "candidate")
	var candidateProfile model.UserProfile
	require.NoError(t, env.db.Where("user_uuid = ?", "candidate").First(&candidateProfile).Error)
	require.NoError(t, env.db.Model(&candidateProfile).Association("Orientations").Append(tag))

	// 过滤集与候选人取向无交集：排除
	resp, err := env.discover.Discover(ctx, "me", &dto.DiscoverRequest{Orientations: []string{"bisexual"}})
	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)

	// 空过滤集：同一候选人被包含
	resp, err = env.discover.Discover(ctx, "me", &dto.DiscoverRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "candidate", resp.Candidates[0].UserUuid)
}

func TestDiscover_BlockedNeverAppears(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "me")
	env.seedUser(t, "enemy")
	require.NoError(t, env.blockRepo.Create(ctx, "enemy", "me", model.BlockSourceUser))

	resp, err := env.discover.Discover(ctx, "me", &dto.DiscoverRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)

	// 反向同样不可见
	resp, err = env.discover.Discover(ctx, "enemy", &dto.DiscoverRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Candidates)
}

func TestDiscover_VerifiedOnlyFilter(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "me")
	env.seedUser(t, "unverified")
	env.seedUser(t, "verified", func(u *model.UserInfo, _ *model.UserProfile, _ *model.PrivacySettings) {
		u.Verified = true
	})

	verifiedOnly := true
	resp, err := env.discover.Discover(ctx, "me", &dto.DiscoverRequest{VerifiedOnly: &verifiedOnly})
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 1)
	assert.Equal(t, "verified", resp.Candidates[0].UserUuid)
}

func TestDiscover_PoolCapUnderReturnsCompatibleCandidates(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)

	env.seedUser(t, "alice", func(_ *model.UserInfo, p *model.UserProfile, _ *model.PrivacySettings) {
		p.Latitude, p.Longitude = ptrFloat(0), ptrFloat(0)
		p.Age = ptrInt(30)
	})
	// 四个同坐标同年龄的候选人，全部高分兼容
	for _, uuid := range []string{"bob", "carol", "dave", "erin"} {
		env.seedUser(t, uuid, func(_ *model.UserInfo, p *model.UserProfile, _ *model.PrivacySettings) {
			p.Latitude, p.Longitude = ptrFloat(0), ptrFloat(0)
			p.Age = ptrInt(30)
		})
	}

	// 候选池上限在过滤前生效：靠后的兼容用户取不到，沿用线上既有行为
	cfg := config.DefaultSelectorConfig()
	cfg.PoolLimit = 2
	capped := service.NewDiscoverService(
		cfg, env.profileRepo, repository.NewUserRepository(env.db), env.likeRepo, env.blockRepo, analytics.NewLogger(nil))

	resp, err := capped.Discover(ctx, "alice", &dto.DiscoverRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Candidates, 2)
}

func TestDiscover_MissingProfileIsNotFound(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)

	_, err := env.discover.Discover(ctx, "nobody", &dto.DiscoverRequest{})
	assert.Equal(t, consts.CodeProfileNotFound, consts.ExtractErrorCode(err))
}

// ==================== 拉黑 / 举报 / 隐私 ====================

func TestBlock_CreateAndDuplicate(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	require.NoError(t, env.block.Block(ctx, "alice", false, &dto.BlockRequest{TargetUuid: "bob"}))
	err := env.block.Block(ctx, "alice", false, &dto.BlockRequest{TargetUuid: "bob"})
	assert.Equal(t, consts.CodeBlockAlreadyExists, consts.ExtractErrorCode(err))
}

func TestBlock_OnBehalfRequiresModerator(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")
	env.seedUser(t, "carol")

	err := env.block.Block(ctx, "carol", false, &dto.BlockRequest{TargetUuid: "bob", OnBehalfOf: "alice"})
	assert.Equal(t, consts.CodePermissionDeny, consts.ExtractErrorCode(err))

	// 被拒后不留任何拉黑边
	var count int64
	require.NoError(t, env.db.Model(&model.UserBlock{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBlock_ModeratorOnBehalf(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	require.NoError(t, env.block.Block(ctx, "mod-1", true, &dto.BlockRequest{TargetUuid: "bob", OnBehalfOf: "alice"}))

	var block model.UserBlock
	require.NoError(t, env.db.First(&block).Error)
	assert.Equal(t, "alice", block.BlockerUuid)
	assert.Equal(t, "bob", block.BlockedUuid)
	assert.Equal(t, model.BlockSourceModerator, block.Source)
}

func TestBlock_ModeratorOnBehalfExistingEdgeEitherDirection(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	// 反方向已有边，互动本就被禁止，代拉黑视为重复创建
	require.NoError(t, env.block.Block(ctx, "bob", false, &dto.BlockRequest{TargetUuid: "alice"}))

	err := env.block.Block(ctx, "mod-1", true, &dto.BlockRequest{TargetUuid: "bob", OnBehalfOf: "alice"})
	assert.Equal(t, consts.CodeBlockAlreadyExists, consts.ExtractErrorCode(err))
}

func TestBlock_ModeratorOnBehalfUnknownBlocker(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "bob")

	err := env.block.Block(ctx, "mod-1", true, &dto.BlockRequest{TargetUuid: "bob", OnBehalfOf: "ghost"})
	assert.Equal(t, consts.CodeUserNotFound, consts.ExtractErrorCode(err))
}

func TestReport_PendingConflict(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)
	env.seedUser(t, "alice")
	env.seedUser(t, "bob")

	resp, err := env.report.Report(ctx, "alice", &dto.ReportRequest{TargetUuid: "bob", Reason: "spam"})
	require.NoError(t, err)
	assert.NotZero(t, resp.ReportId)

	_, err = env.report.Report(ctx, "alice", &dto.ReportRequest{TargetUuid: "bob", Reason: "spam"})
	assert.Equal(t, consts.CodeReportPending, consts.ExtractErrorCode(err))
}

func TestPrivacy_GetDefaultsAndPartialUpdate(t *testing.T) {
	ctx := context.Background()
	env := setupEnv(t)

	view, err := env.privacy.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, view.ProfileVisible)
	assert.False(t, view.Incognito)

	incognito := true
	view, err = env.privacy.Update(ctx, "fresh", &dto.UpdatePrivacyRequest{Incognito: &incognito})
	require.NoError(t, err)
	assert.True(t, view.Incognito)
	// 未提交的字段维持原值
	assert.True(t, view.ProfileVisible)

	view, err = env.privacy.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, view.Incognito)
}
