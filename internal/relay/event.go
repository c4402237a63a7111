package relay

import (
	"encoding/json"
	"time"
)

// 事件类型，与客户端约定的下行信道协议
const (
	// EventOpen 信道建立成功后下发一次
	EventOpen = "open"

	// EventMessage 新聊天消息
	EventMessage = "message"

	// EventTyping 输入中状态（瞬时信号，不落库）
	EventTyping = "typing"

	// EventReceiptUpdate 某条消息的投递/已读状态变化
	EventReceiptUpdate = "receipt:update"
)

// Event 下行事件信封
type Event struct {
	Type string `json:"event"`
	Data any    `json:"data"`
}

// EncodeData 序列化事件载荷
func (e Event) EncodeData() ([]byte, error) {
	return json.Marshal(e.Data)
}

// Encode 序列化完整信封（WebSocket 信道使用单帧 JSON）
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// MessagePayload 新消息事件载荷
// 雪花 id 超出 JS 安全整数范围，序列化为字符串
type MessagePayload struct {
	Id          int64     `json:"id,string"`
	FromUuid    string    `json:"fromUuid"`
	Content     string    `json:"content"`
	MessageType string    `json:"messageType,omitempty"`
	MediaUrl    string    `json:"mediaUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TypingPayload 输入中事件载荷
type TypingPayload struct {
	FromUuid string `json:"fromUuid"`
	Active   bool   `json:"active"`
}

// ReceiptPayload 回执事件载荷
type ReceiptPayload struct {
	Id          int64      `json:"id,string"`
	DeliveredAt *time.Time `json:"deliveredAt"`
	ReadAt      *time.Time `json:"readAt"`
}
