package model

import "time"

// Match 配对表，双方互相喜欢后形成的会话
// 每条聊天消息必须归属一个 Match，收发双方必须是该 Match 的参与者
type Match struct {
	Id                 int64     `gorm:"column:id;primaryKey;autoIncrement"`
	User1Id            int64     `gorm:"column:user1_id;index;not null"`
	User2Id            int64     `gorm:"column:user2_id;index;not null"`
	MatchedAt          time.Time `gorm:"column:matched_at;not null"`
	CompatibilityScore float64   `gorm:"column:compatibility_score"` // 匹配度得分
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

// TableName 指定表名
func (Match) TableName() string {
	return "matches"
}

// IsParticipant 判断指定用户是否为本会话的参与者
func (m *Match) IsParticipant(userId int64) bool {
	return m.User1Id == userId || m.User2Id == userId
}

// OtherUser 返回会话中另一方的用户 ID
// 调用方需先通过 IsParticipant 确认归属
func (m *Match) OtherUser(userId int64) int64 {
	if m.User1Id == userId {
		return m.User2Id
	}
	return m.User1Id
}
