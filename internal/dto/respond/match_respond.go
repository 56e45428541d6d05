package respond

import (
	"time"

	"yuanfen_chat_server/internal/model"
)

// MatchRespond 配对视图，站在查询者视角给出对方信息
type MatchRespond struct {
	MatchId            int64     `json:"matchId"`
	OtherUserId        int64     `json:"otherUserId"`
	MatchedAt          time.Time `json:"matchedAt"`
	CompatibilityScore float64   `json:"compatibilityScore"`
}

// NewMatchRespond 将配对实体转换为指定用户视角的视图
func NewMatchRespond(m *model.Match, viewerId int64) *MatchRespond {
	return &MatchRespond{
		MatchId:            m.Id,
		OtherUserId:        m.OtherUser(viewerId),
		MatchedAt:          m.MatchedAt,
		CompatibilityScore: m.CompatibilityScore,
	}
}
