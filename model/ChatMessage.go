package model

import "time"

// 消息类型
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
)

// ChatMessage 单聊消息。
// Id 为进程内递增雪花 id，"标记已读到某条" 依赖 id 的时间有序性。
// delivered_at 在落库时写入（投递是同步乐观语义，没有端侧 ack）；
// read_at 由接收方 mark-read 动作写入，除此之外整行只增不改。
type ChatMessage struct {
	Id            int64  `gorm:"column:id;primaryKey;autoIncrement:false;comment:雪花id"`
	SenderUuid    string `gorm:"column:sender_uuid;type:char(36);not null;index:idx_pair_read,priority:1;comment:发送方uuid"`
	RecipientUuid string `gorm:"column:recipient_uuid;type:char(36);not null;index:idx_pair_read,priority:2;comment:接收方uuid"`
	Content       string `gorm:"column:content;type:varchar(2048);not null;comment:消息内容"`
	MessageType   string `gorm:"column:message_type;type:varchar(16);not null;default:text;comment:消息类型 text/image"`
	MediaUrl      string `gorm:"column:media_url;type:varchar(512);comment:媒体地址"`

	CreatedAt   time.Time  `gorm:"column:created_at;index;comment:创建时间"`
	DeliveredAt time.Time  `gorm:"column:delivered_at;comment:投递时间"`
	ReadAt      *time.Time `gorm:"column:read_at;index:idx_pair_read,priority:3;comment:已读时间"`
}

func (ChatMessage) TableName() string { return "chat_message" }
