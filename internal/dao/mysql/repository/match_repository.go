package repository

import (
	"yuanfen_chat_server/internal/model"

	"gorm.io/gorm"
)

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository 创建配对 Repository
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// FindByMatchId 根据会话 ID 查找配对
func (r *matchRepository) FindByMatchId(matchId int64) (*model.Match, error) {
	var match model.Match
	if err := r.db.Where("id = ?", matchId).First(&match).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询配对 id=%d", matchId)
	}
	return &match, nil
}

// FindByUserId 查找用户参与的所有配对，按配对时间倒序
func (r *matchRepository) FindByUserId(userId int64) ([]model.Match, error) {
	var matches []model.Match
	if err := r.db.Where("user1_id = ? OR user2_id = ?", userId, userId).
		Order("matched_at DESC").Find(&matches).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户配对列表 user_id=%d", userId)
	}
	return matches, nil
}

// FindBetween 查找两个用户之间的配对（双向）
func (r *matchRepository) FindBetween(user1Id, user2Id int64) (*model.Match, error) {
	var match model.Match
	if err := r.db.Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
		user1Id, user2Id, user2Id, user1Id).First(&match).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询配对 user1=%d user2=%d", user1Id, user2Id)
	}
	return &match, nil
}

// Create 创建配对
func (r *matchRepository) Create(match *model.Match) error {
	if err := r.db.Create(match).Error; err != nil {
		return wrapDBError(err, "创建配对")
	}
	return nil
}
