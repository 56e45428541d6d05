package repository

import (
	"yuanfen_chat_server/internal/model"

	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository 创建账号 Repository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// FindByTelephone 根据手机号查找账号
func (r *accountRepository) FindByTelephone(telephone string) (*model.Account, error) {
	var account model.Account
	if err := r.db.Where("telephone = ?", telephone).First(&account).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询账号 telephone=%s", telephone)
	}
	return &account, nil
}

// FindById 根据主键查找账号
func (r *accountRepository) FindById(id int64) (*model.Account, error) {
	var account model.Account
	if err := r.db.Where("id = ?", id).First(&account).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询账号 id=%d", id)
	}
	return &account, nil
}

// Create 创建账号
func (r *accountRepository) Create(account *model.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return wrapDBError(err, "创建账号")
	}
	return nil
}
