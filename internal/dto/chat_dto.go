package dto

// ==================== 单聊相关 DTO ====================

// SendMessageRequest 发送消息请求 DTO
// 内容长度上限与存储列宽一致，超限直接 413 拒绝而不是截断
type SendMessageRequest struct {
	Content     string `json:"content" binding:"required,min=1"`                      // 消息内容
	MessageType string `json:"messageType" binding:"omitempty,oneof=text image"`      // 消息类型，缺省 text
	MediaUrl    string `json:"mediaUrl" binding:"omitempty,url,max=512"`              // 媒体地址（image 类型必填）
	ClientTag   string `json:"clientTag" binding:"omitempty,max=64"`                  // 客户端本地标识，原样回显便于对账
}

// MessageItem 消息 DTO
type MessageItem struct {
	Id            string `json:"id"`                 // 消息ID（雪花id字符串）
	SenderUuid    string `json:"senderUuid"`         // 发送方UUID
	RecipientUuid string `json:"recipientUuid"`      // 接收方UUID
	Content       string `json:"content"`            // 消息内容
	MessageType   string `json:"messageType"`        // 消息类型
	MediaUrl      string `json:"mediaUrl,omitempty"` // 媒体地址
	CreatedAt     string `json:"createdAt"`          // 创建时间 (RFC3339)
	DeliveredAt   string `json:"deliveredAt"`        // 投递时间 (RFC3339)
	ReadAt        string `json:"readAt,omitempty"`   // 已读时间，未读为空
	ClientTag     string `json:"clientTag,omitempty"`
}

// HistoryRequest 历史消息请求 DTO
type HistoryRequest struct {
	BeforeId string `form:"beforeId" json:"beforeId" binding:"omitempty,max=20"`  // 游标（上一页最后一条的消息ID）
	Limit    int    `form:"limit" json:"limit" binding:"omitempty,min=1,max=200"` // 返回条数，上限 200
}

// HistoryResponse 历史消息响应 DTO
type HistoryResponse struct {
	Items      []*MessageItem `json:"items"`                // 按时间倒序的消息列表
	NextCursor string         `json:"nextCursor,omitempty"` // 下一页游标，空表示没有更多
}

// MarkReadRequest 标记已读请求 DTO
// UpToMessageId 为空时标记对方发来的全部未读
type MarkReadRequest struct {
	UpToMessageId string `json:"upToMessageId" binding:"omitempty,max=20"` // 标记到该消息ID为止（含）
}

// MarkReadResponse 标记已读响应 DTO
type MarkReadResponse struct {
	MarkedIds []string `json:"markedIds"` // 本次被标记的消息ID列表
}

// TypingRequest 输入中状态请求 DTO
type TypingRequest struct {
	Active bool `json:"active"` // true 正在输入，false 停止输入
}
