package service

import (
	"MatchServer/consts"
	"MatchServer/internal/dto"
	"MatchServer/internal/guard"
	"MatchServer/internal/relay"
	"MatchServer/internal/repository"
	"MatchServer/model"
	"MatchServer/pkg/util"
	"context"
	"errors"
	"strconv"
	"time"
)

const (
	maxContentLength  = 2048
	defaultHistoryLen = 50
	maxHistoryLen     = 200
)

// chatServiceImpl 单聊服务实现
type chatServiceImpl struct {
	interactionGuard *guard.Guard
	matchRepo        repository.IMatchRepository
	messageRepo      repository.IMessageRepository
	registry         *relay.Registry
}

// NewChatService 创建单聊服务实例
func NewChatService(
	interactionGuard *guard.Guard,
	matchRepo repository.IMatchRepository,
	messageRepo repository.IMessageRepository,
	registry *relay.Registry,
) IChatService {
	return &chatServiceImpl{
		interactionGuard: interactionGuard,
		matchRepo:        matchRepo,
		messageRepo:      messageRepo,
		registry:         registry,
	}
}

// SendMessage 发送消息
// 链路：门禁 -> 配对校验 -> 内容校验 -> 落库（带投递时间戳）-> 实时下发。
// 投递是同步乐观语义：落库即视为已投递，没有端侧 ack；
// 实时下发是尽力而为，对方不在线时事实真相已在存储里
func (s *chatServiceImpl) SendMessage(ctx context.Context, senderUUID, peerUUID string, req *dto.SendMessageRequest) (*dto.MessageItem, error) {
	outcome, err := s.interactionGuard.AssertInteractionAllowed(ctx, senderUUID, peerUUID, guard.Options{
		CheckSenderIncognito: true,
	})
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	if bizErr := outcome.Err(); bizErr != nil {
		return nil, bizErr
	}
	if err := s.requireMatch(ctx, senderUUID, peerUUID); err != nil {
		return nil, err
	}

	// 内容校验：超长直接拒绝而不是截断
	if len(req.Content) > maxContentLength {
		return nil, consts.NewBizError(consts.CodeContentTooLarge)
	}
	messageType := req.MessageType
	if messageType == "" {
		messageType = model.MessageTypeText
	}
	if messageType == model.MessageTypeImage && req.MediaUrl == "" {
		return nil, consts.NewBizError(consts.CodeParamError)
	}

	now := time.Now()
	msg := &model.ChatMessage{
		Id:            util.NextID(),
		SenderUuid:    senderUUID,
		RecipientUuid: peerUUID,
		Content:       req.Content,
		MessageType:   messageType,
		MediaUrl:      req.MediaUrl,
		CreatedAt:     now,
		DeliveredAt:   now,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, consts.WrapBizError(consts.CodeMessageSendFail, err)
	}

	// 新消息推给接收方全部在线信道
	s.registry.Emit(peerUUID, relay.Event{
		Type: relay.EventMessage,
		Data: relay.MessagePayload{
			Id:          msg.Id,
			FromUuid:    senderUUID,
			Content:     msg.Content,
			MessageType: msg.MessageType,
			MediaUrl:    msg.MediaUrl,
			CreatedAt:   msg.CreatedAt,
		},
	})
	// 投递回执推给发送方自己的其他在线会话（同步投递勾）
	delivered := msg.DeliveredAt
	s.registry.Emit(senderUUID, relay.Event{
		Type: relay.EventReceiptUpdate,
		Data: relay.ReceiptPayload{Id: msg.Id, DeliveredAt: &delivered},
	})

	item := toMessageItem(msg)
	item.ClientTag = req.ClientTag
	return item, nil
}

// History 拉取会话历史（游标分页，倒序）
func (s *chatServiceImpl) History(ctx context.Context, userUUID, peerUUID string, req *dto.HistoryRequest) (*dto.HistoryResponse, error) {
	outcome, err := s.interactionGuard.AssertInteractionAllowed(ctx, userUUID, peerUUID, guard.Options{})
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	if bizErr := outcome.Err(); bizErr != nil {
		return nil, bizErr
	}
	if err := s.requireMatch(ctx, userUUID, peerUUID); err != nil {
		return nil, err
	}

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
		limit = defaultHistoryLen
	}
	if limit > maxHistoryLen {
		limit = maxHistoryLen
	}

	messages, err := s.messageRepo.HistoryBefore(ctx, userUUID, peerUUID, beforeId, limit)
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}

	items := make([]*dto.MessageItem, 0, len(messages))
	for _, msg := range messages {
		items = append(items, toMessageItem(msg))
	}
	resp := &dto.HistoryResponse{Items: items}
	if len(messages) == limit {
		resp.NextCursor = strconv.FormatInt(messages[len(messages)-1].Id, 10)
	}
	return resp, nil
}

// MarkRead 标记对方发来的消息为已读
// 幂等：重复调用查不到仍未读的消息，不改行也不发回执
func (s *chatServiceImpl) MarkRead(ctx context.Context, userUUID, peerUUID string, req *dto.MarkReadRequest) (*dto.MarkReadResponse, error) {
	outcome, err := s.interactionGuard.AssertInteractionAllowed(ctx, userUUID, peerUUID, guard.Options{})
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}
	if bizErr := outcome.Err(); bizErr != nil {
		return nil, bizErr
	}

	upToId := int64(0)
	if req.UpToMessageId != "" {
		parsed, err := strconv.ParseInt(req.UpToMessageId, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, consts.NewBizError(consts.CodeParamError)
		}
		upToId = parsed
	}

	markedIds, readAt, err := s.messageRepo.MarkRead(ctx, userUUID, peerUUID, upToId)
	if err != nil {
		return nil, consts.WrapBizError(consts.CodeInternalError, err)
	}

	// 已读回执逐条推给原发送方，时间戳与落库值一致
	for _, id := range markedIds {
		s.registry.Emit(peerUUID, relay.Event{
			Type: relay.EventReceiptUpdate,
			Data: relay.ReceiptPayload{Id: id, ReadAt: &readAt},
		})
	}

	resp := &dto.MarkReadResponse{MarkedIds: make([]string, 0, len(markedIds))}
	for _, id := range markedIds {
		resp.MarkedIds = append(resp.MarkedIds, strconv.FormatInt(id, 10))
	}
	return resp, nil
}

// Typing 广播输入中状态
// 瞬时信号：不落库，对方不在线就静默丢弃
func (s *chatServiceImpl) Typing(ctx context.Context, userUUID, peerUUID string, active bool) error {
	outcome, err := s.interactionGuard.AssertInteractionAllowed(ctx, userUUID, peerUUID, guard.Options{
		CheckSenderIncognito: true,
	})
	if err != nil {
		return consts.WrapBizError(consts.CodeInternalError, err)
	}
	if bizErr := outcome.Err(); bizErr != nil {
		return bizErr
	}

	s.registry.Emit(peerUUID, relay.Event{
		Type: relay.EventTyping,
		Data: relay.TypingPayload{FromUuid: userUUID, Active: active},
	})
	return nil
}

// requireMatch 单聊的前提是双方存在配对关系
func (s *chatServiceImpl) requireMatch(ctx context.Context, aUUID, bUUID string) error {
	_, err := s.matchRepo.GetByPair(ctx, aUUID, bUUID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return consts.WrapBizError(consts.CodePermissionDeny, err)
		}
		return consts.WrapBizError(consts.CodeInternalError, err)
	}
	return nil
}

// toMessageItem 装配消息 DTO
func toMessageItem(msg *model.ChatMessage) *dto.MessageItem {
	item := &dto.MessageItem{
		Id:            strconv.FormatInt(msg.Id, 10),
		SenderUuid:    msg.SenderUuid,
		RecipientUuid: msg.RecipientUuid,
		Content:       msg.Content,
		MessageType:   msg.MessageType,
		MediaUrl:      msg.MediaUrl,
		CreatedAt:     msg.CreatedAt.Format(time.RFC3339),
		DeliveredAt:   msg.DeliveredAt.Format(time.RFC3339),
	}
	if msg.ReadAt != nil {
		item.ReadAt = msg.ReadAt.Format(time.RFC3339)
	}
	return item
}
