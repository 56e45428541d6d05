package repository

import (
	"yuanfen_chat_server/internal/model"

	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户资料 Repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUserId 根据资料主键查找用户
func (r *userRepository) FindByUserId(userId int64) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.db.Where("id = ?", userId).First(&profile).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户资料 id=%d", userId)
	}
	return &profile, nil
}

// FindByAccountId 根据账号 ID 查找用户资料
func (r *userRepository) FindByAccountId(accountId int64) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := r.db.Where("account_id = ?", accountId).First(&profile).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户资料 account_id=%d", accountId)
	}
	return &profile, nil
}

// Create 创建用户资料
func (r *userRepository) Create(profile *model.UserProfile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return wrapDBError(err, "创建用户资料")
	}
	return nil
}

// Update 更新用户资料
func (r *userRepository) Update(profile *model.UserProfile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return wrapDBErrorf(err, "更新用户资料 id=%d", profile.Id)
	}
	return nil
}
