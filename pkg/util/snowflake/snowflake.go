// Package snowflake 封装雪花算法生成全局唯一的 int64 ID
// 消息 Uuid 使用雪花 ID，保证分布式部署下不冲突且大致按时间有序
package snowflake

import (
	"time"

	sf "github.com/bwmarrin/snowflake"

	"yuanfen_chat_server/pkg/errorx"
)

var node *sf.Node

// Init 初始化雪花节点，服务启动时调用一次
// startTime 格式 "2006-01-02"，作为纪元起点；machineId 区分不同实例
func Init(startTime string, machineId int64) error {
	st, err := time.Parse("2006-01-02", startTime)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeInvalidParam, "雪花算法起始时间格式错误")
	}
	sf.Epoch = st.UnixNano() / 1000000
	node, err = sf.NewNode(machineId)
	if err != nil {
		return errorx.Wrap(err, errorx.CodeServerBusy, "初始化雪花节点失败")
	}
	return nil
}

// GenId 生成一个新的雪花 ID
func GenId() int64 {
	return node.Generate().Int64()
}
