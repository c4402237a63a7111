package util

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

// InitSnowflake 初始化雪花算法节点（仅需在进程启动时调用一次）。
// nodeID 在多实例部署时必须全局唯一，否则会产生重复 ID。
func InitSnowflake(nodeID int64) error {
	var err error
	snowflakeOnce.Do(func() {
		snowflakeNode, err = snowflake.NewNode(nodeID)
	})
	return err
}

// NextID 生成下一个雪花 ID。
// 同进程内严格递增，消息按 ID 排序即按时间排序，
// read 链路的 "id <= upToMessageId" 语义依赖该性质。
func NextID() int64 {
	return snowflakeNode.Generate().Int64()
}
