package service

import (
	"MatchServer/consts"
	"MatchServer/internal/analytics"
	"MatchServer/internal/dto"
	"MatchServer/internal/guard"
	"MatchServer/internal/notifier"
	"MatchServer/internal/repository"
	"MatchServer/model"
	"MatchServer/pkg/async"
	"MatchServer/pkg/logger"
	"MatchServer/pkg/util"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const defaultMatchPageSize = 20

// likeServiceImpl 喜欢与配对服务实现
type likeServiceImpl struct {
	interactionGuard *guard.Guard
	userRepo         repository.IUserRepository
	likeRepo         repository.ILikeRepository
	matchRepo        repository.IMatchRepository
	messageRepo      repository.IMessageRepository
	notify           notifier.INotifier
	analytics        *analytics.Logger
}

// NewLikeService 创建喜欢服务实例
func NewLikeService(
	interactionGuard *guard.Guard,
	userRepo repository.IUserRepository,
	likeRepo repository.ILikeRepository,
	matchRepo repository.IMatchRepository,
	messageRepo repository.IMessageRepository,
	notify notifier.INotifier,
	analyticsLogger *analytics.Logger,
) ILikeService {
	return &likeServiceImpl{
		interactionGuard: interactionGuard,
		userRepo:         userRepo,
		likeRepo:         likeRepo,
		matchRepo:        matchRepo,
		messageRepo:      messageRepo,
		notify:           notify,
		analytics:        analyticsLogger,
	}
}

// RecordLike 记录一次喜欢并检测双向配对
// 链路：门禁 -> 目标存在性 -> 落喜欢边 -> 反向检测 -> 规范键 upsert 配对。
// 喜欢边与配对行是两次独立写入：中间崩溃留下的单边喜欢是安全的，
// 后续任一方向的反向喜欢仍会把配对补齐，不需要补偿事务
func (s *likeServiceImpl) RecordLike(ctx context.Context, fromUUID, toUUID string) (*dto.LikeResponse, error) {
	if fromUUID == toUUID {
		return nil, consts.NewBizError(consts.CodeParamError)
	}

	// 1. 隐私门禁：任何写入之前短路
	outcome, err := s.interactionGuard.AssertInteractionAllowed(ctx, fromUUID, toUUID, guard.Options{
		CheckSenderIncognito: true,
		CheckPeerVisibility:  true,
	})
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	if bizErr := outcome.Err(); bizErr != nil {
		return nil, bizErr
	}

	// 2. 目标必须存在且未封禁
	target, err := s.userRepo.GetByUUID(ctx, toUUID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, consts.WrapBizError(consts.CodeUserNotFound, err)
		}
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	if target.Banned {
		return nil, consts.NewBizError(consts.CodeUserNotFound)
	}

	// 3. 落喜欢边，同一有向对重复喜欢按冲突处理
	if err := s.likeRepo.Create(ctx, fromUUID, toUUID); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, consts.WrapBizError(consts.CodeLikeAlreadyExists, err)
		}
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	s.analytics.Record(ctx, analytics.DiscoveryAction{
		UserUuid:   fromUUID,
		Action:     analytics.ActionLikeSent,
		TargetUuid: toUUID,
	})

	// 4. 反向喜欢检测
	reciprocal, err := s.likeRepo.ExistsReverse(ctx, fromUUID, toUUID)
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	if !reciprocal {
		return &dto.LikeResponse{Liked: true}, nil
	}

	// 5. 规范键 upsert，唯一索引是并发双向喜欢下的正确性保证
	created, match, err := s.matchRepo.UpsertCanonical(ctx, util.NextID(), fromUUID, toUUID)
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}

	// 6. 只有真正创建配对的那一次调用负责通知与计数，幂等重放不重发
	if created {
		s.matchRepo.IncrDailyCounter(ctx, time.Now())
		s.analytics.Record(ctx, analytics.DiscoveryAction{
			UserUuid:   fromUUID,
			Action:     analytics.ActionMatchCreated,
			TargetUuid: toUUID,
		})
		s.notifyMatched(ctx, fromUUID, toUUID)
	}

	return &dto.LikeResponse{
		Liked:   true,
		Matched: true,
		MatchId: strconv.FormatInt(match.Id, 10),
	}, nil
}

// notifyMatched 异步向双方推送配对通知，失败只记日志
func (s *likeServiceImpl) notifyMatched(ctx context.Context, aUUID, bUUID string) {
	async.Go(ctx, func(taskCtx context.Context) {
		users, err := s.userRepo.BatchGetByUUIDs(taskCtx, []string{aUUID, bUUID})
		if err != nil {
			logger.Warn(taskCtx, "配对通知查询用户失败", logger.ErrorField("error", err))
			return
		}
		byUuid := make(map[string]*model.UserInfo, len(users))
		for _, u := range users {
			byUuid[u.Uuid] = u
		}

		pairs := [2][2]string{{aUUID, bUUID}, {bUUID, aUUID}}
		for _, pair := range pairs {
			receiver, peer := byUuid[pair[0]], byUuid[pair[1]]
			if receiver == nil || peer == nil {
				continue
			}
			text := fmt.Sprintf("你和 %s 配对成功，打个招呼吧！", peer.Nickname)
			_ = s.notify.Notify(taskCtx, receiver.NotifyHandle, text)
		}
	})
}

// ListMatches 查询配对列表（游标分页）
func (s *likeServiceImpl) ListMatches(ctx context.Context, userUUID string, req *dto.MatchListRequest) (*dto.MatchListResponse, error) {
	beforeId := int64(0)
	if req.BeforeId != "" {
		parsed, err := strconv.ParseInt(req.BeforeId, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, consts.NewBizError(consts.CodeParamError)
		}
		beforeId = parsed
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultMatchPageSize
	}

	matches, err := s.matchRepo.ListByUser(ctx, userUUID, beforeId, limit)
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	if len(matches) == 0 {
		return &dto.MatchListResponse{Items: []*dto.MatchItem{}}, nil
	}

	peerUuids := make([]string, 0, len(matches))
	for _, match := range matches {
		peerUuids = append(peerUuids, peerOf(match, userUUID))
	}
	peers, err := s.userRepo.BatchGetByUUIDs(ctx, peerUuids)
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	peerByUuid := make(map[string]*model.UserInfo, len(peers))
	for _, peer := range peers {
		peerByUuid[peer.Uuid] = peer
	}

	items := make([]*dto.MatchItem, 0, len(matches))
	for _, match := range matches {
		peerUuid := peerOf(match, userUUID)
		item := &dto.MatchItem{
			MatchId:   strconv.FormatInt(match.Id, 10),
			PeerUuid:  peerUuid,
			MatchedAt: match.CreatedAt.Format(time.RFC3339),
		}
		if peer, ok := peerByUuid[peerUuid]; ok {
			item.PeerNickname = peer.Nickname
			item.PeerVerified = peer.Verified
		}
		if unread, err := s.messageRepo.CountUnread(ctx, userUUID, peerUuid); err == nil {
			item.UnreadCount = unread
		}
		items = append(items, item)
	}

	resp := &dto.MatchListResponse{Items: items}
	if len(matches) == limit {
		resp.NextCursor = strconv.FormatInt(matches[len(matches)-1].Id, 10)
	}
	return resp, nil
}

// CountLikers 查询喜欢我的人数
func (s *likeServiceImpl) CountLikers(ctx context.Context, userUUID string) (*dto.LikerCountResponse, error) {
	count, err := s.likeRepo.CountLikers(ctx, userUUID)
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	return &dto.LikerCountResponse{Count: count}, nil
}

// peerOf 返回配对中相对于 userUUID 的另一方
func peerOf(match *model.UserMatch, userUUID string) string {
	if match.UserLow == userUUID {
		return match.UserHigh
	}
	return match.UserLow
}
