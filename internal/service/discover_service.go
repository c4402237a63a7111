package service

import (
	"MatchServer/config"
	"MatchServer/consts"
	"MatchServer/internal/analytics"
	"MatchServer/internal/dto"
	"MatchServer/internal/repository"
	"MatchServer/model"
	"MatchServer/pkg/logger"
	"context"
	"errors"
	"math"
	"sort"
	"strings"
)

// discoverServiceImpl 候选人筛选服务实现
type discoverServiceImpl struct {
	cfg         config.SelectorConfig
	profileRepo repository.IProfileRepository
	userRepo    repository.IUserRepository
	likeRepo    repository.ILikeRepository
	blockRepo   repository.IBlockRepository
	analytics   *analytics.Logger
}

// NewDiscoverService 创建发现页服务实例
func NewDiscoverService(
	cfg config.SelectorConfig,
	profileRepo repository.IProfileRepository,
	userRepo repository.IUserRepository,
	likeRepo repository.ILikeRepository,
	blockRepo repository.IBlockRepository,
	analyticsLogger *analytics.Logger,
) IDiscoverService {
	return &discoverServiceImpl{
		cfg:         cfg,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		likeRepo:    likeRepo,
		blockRepo:   blockRepo,
		analytics:   analyticsLogger,
	}
}

// candidateContext 单个候选人的评分上下文
type candidateContext struct {
	profile  *model.UserProfile
	user     *model.UserInfo
	settings *model.PrivacySettings
	score    int
	distance *float64
}

// Discover 为请求方筛选并评分候选人
func (s *discoverServiceImpl) Discover(ctx context.Context, userUUID string, req *dto.DiscoverRequest) (*dto.DiscoverResponse, error) {
	// 1. 请求方画像与隐私设置（画像缺失是业务错误）
	me, err := s.profileRepo.GetByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, consts.WrapBizError(consts.CodeProfileNotFound, err)
		}
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	mySettings, err := s.profileRepo.GetSettings(ctx, userUUID)
	if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}

	// 2. 硬排除集合：喜欢过的 + 任一方向拉黑的
	liked, err := s.likeRepo.ListTargets(ctx, userUUID)
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	blocked, err := s.blockRepo.ListRelatedUuids(ctx, userUUID)
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	excluded := append(liked, blocked...)

	// 3. 原始候选池
	// 注意：PoolLimit 在过滤前生效，靠后的兼容用户可能取不到，线上既有行为
	pool, err := s.profileRepo.CandidatePool(ctx, userUUID, excluded, s.cfg.PoolLimit)
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	if len(pool) == 0 {
		return &dto.DiscoverResponse{Candidates: []*dto.CandidateItem{}}, nil
	}

	// 4. 批量装配候选人主档与隐私设置
	uuids := make([]string, 0, len(pool))
	for _, p := range pool {
		uuids = append(uuids, p.UserUuid)
	}
	users, err := s.userRepo.BatchGetByUUIDs(ctx, uuids)
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	userByUuid := make(map[string]*model.UserInfo, len(users))
	for _, u := range users {
		userByUuid[u.Uuid] = u
	}
	settingsByUuid, err := s.profileRepo.BatchGetSettings(ctx, uuids)
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}

	// 5. 逐个评分
	verifiedOnly := mySettings != nil && mySettings.VerifiedOnly
	if req.VerifiedOnly != nil {
		verifiedOnly = *req.VerifiedOnly
	}

	survivors := make([]*candidateContext, 0, len(pool))
	for _, candidate := range pool {
		user, ok := userByUuid[candidate.UserUuid]
		if !ok {
			continue
		}
		if verifiedOnly && !user.Verified {
			continue
		}
		if req.City != "" && !strings.EqualFold(req.City, candidate.City) {
			continue
		}

		cc := &candidateContext{
			profile:  candidate,
			user:     user,
			settings: settingsByUuid[candidate.UserUuid],
		}
		if !s.scoreCandidate(me, req, cc) {
			continue
		}
		if cc.score <= s.cfg.AcceptThreshold {
			continue
		}
		survivors = append(survivors, cc)
	}

	// 6. 评分倒序，同分按 uuid 保证稳定输出
	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].score != survivors[j].score {
			return survivors[i].score > survivors[j].score
		}
		return survivors[i].profile.UserUuid < survivors[j].profile.UserUuid
	})

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if len(survivors) > limit {
		survivors = survivors[:limit]
	}

	items := make([]*dto.CandidateItem, 0, len(survivors))
	for _, cc := range survivors {
		items = append(items, s.toItem(cc))
	}

	s.analytics.Record(ctx, analytics.DiscoveryAction{
		UserUuid:       userUUID,
		Action:         analytics.ActionDiscoverView,
		CandidateCount: len(items),
	})
	logger.Debug(ctx, "候选人筛选完成",
		logger.String("user_uuid", userUUID),
		logger.Int("pool", len(pool)),
		logger.Int("returned", len(items)),
	)
	return &dto.DiscoverResponse{Candidates: items}, nil
}

// scoreCandidate 计算兼容度评分（0-100），返回 false 表示候选人被硬排除
func (s *discoverServiceImpl) scoreCandidate(me *model.UserProfile, req *dto.DiscoverRequest, cc *candidateContext) bool {
	score := 0
	candidate := cc.profile

	// 取向（满分 30）
	// 过滤集非空时要求双向兼容：我方过滤集与对方取向有交集，
	// 且对方取向与我方取向有交集（我方无取向记录时免检反向）；
	// 任一方向不满足直接排除。过滤集为空时不构成区分项，给满分
	if len(req.Orientations) > 0 {
		candidateTags := candidate.OrientationNames()
		if !intersects(req.Orientations, candidateTags) {
			return false
		}
		myTags := me.OrientationNames()
		if len(myTags) > 0 && !intersects(candidateTags, myTags) {
			return false
		}
	}
	score += s.cfg.OrientationPoints

	// 距离（满分 25）
	// 双方都有坐标：超出最大距离排除，未超出按接近程度线性给分；
	// 任一方缺坐标：固定 15 分，不排除
	if me.HasCoordinates() && candidate.HasCoordinates() {
		distance := haversineKm(*me.Latitude, *me.Longitude, *candidate.Latitude, *candidate.Longitude)
		cc.distance = &distance

		maxDistance := me.MaxDistanceKm
		if req.MaxDistanceKm > 0 {
			maxDistance = req.MaxDistanceKm
		}
		if maxDistance <= 0 {
			maxDistance = s.cfg.DefaultMaxDistanceKm
		}
		if distance > maxDistance {
			return false
		}
		score += int(math.Round(float64(s.cfg.DistancePoints) * (1 - distance/maxDistance)))
	} else {
		score += s.cfg.DistanceUnknownPts
	}

	// 意向重叠（满分 20），按双方同时期望的意向数量比例给分
	myIntents := intentsFromRequest(me, req)
	score += s.cfg.IntentPoints * intentOverlap(myIntents, intentsOf(candidate)) / 3

	// 年龄接近（满分 15），按年龄差相对区间宽度分档；任一方缺年龄固定 10 分
	if me.Age != nil && candidate.Age != nil {
		width := me.AgeRangeWidth
		if width <= 0 {
			width = s.cfg.DefaultAgeRangeWidth
		}
		diff := *me.Age - *candidate.Age
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff*2 <= width:
			score += s.cfg.AgePoints
		case diff <= width:
			score += s.cfg.AgePoints * 2 / 3
		case diff <= width*2:
			score += s.cfg.AgePoints / 3
		}
	} else {
		score += s.cfg.AgeUnknownPts
	}

	// 资料完整度（满分 10）
	score += int(math.Round(float64(s.cfg.CompletenessPoints) * completenessRatio(candidate)))

	cc.score = score
	return true
}

// intentsFromRequest 合成请求方有效意向：请求参数覆盖画像设置
func intentsFromRequest(me *model.UserProfile, req *dto.DiscoverRequest) intentFlags {
	flags := intentsOf(me)
	if req.WantFriendship != nil {
		flags.friendship = *req.WantFriendship
	}
	if req.WantRomance != nil {
		flags.romance = *req.WantRomance
	}
	if req.WantPoly != nil {
		flags.poly = *req.WantPoly
	}
	if !flags.anySet() {
		return allIntents
	}
	return flags
}

// toItem 装配候选人摘要
// 距离取整到公里；对方设置了隐藏距离时即使可计算也输出 null
func (s *discoverServiceImpl) toItem(cc *candidateContext) *dto.CandidateItem {
	item := &dto.CandidateItem{
		UserUuid:     cc.profile.UserUuid,
		Nickname:     cc.user.Nickname,
		Pronouns:     cc.profile.Pronouns,
		Gender:       cc.profile.Gender,
		Bio:          cc.profile.Bio,
		City:         cc.profile.City,
		Age:          cc.profile.Age,
		Orientations: cc.profile.OrientationNames(),
		Verified:     cc.user.Verified,
		Score:        cc.score,
	}
	hideDistance := cc.settings != nil && cc.settings.HideDistance
	if cc.distance != nil && !hideDistance {
		rounded := int(math.Round(*cc.distance))
		item.DistanceKm = &rounded
	}
	return item
}
