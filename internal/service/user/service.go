// Package user 实现用户资料服务
package user

import (
	"yuanfen_chat_server/internal/dao/mysql/repository"
	"yuanfen_chat_server/internal/dto/respond"
	"yuanfen_chat_server/internal/model"
)

// Service 用户资料服务
type Service struct {
	repos *repository.Repositories
}

// NewService 创建用户服务
func NewService(repos *repository.Repositories) *Service {
	return &Service{repos: repos}
}

// FindProfileByAccountId 根据账号 ID 查找用户资料
// WebSocket 握手和 JWT 中间件用它把账号身份换成用户身份
func (s *Service) FindProfileByAccountId(accountId int64) (*model.UserProfile, error) {
	return s.repos.User.FindByAccountId(accountId)
}

// GetProfile 查询用户资料视图
func (s *Service) GetProfile(userId int64) (*respond.UserProfileRespond, error) {
	profile, err := s.repos.User.FindByUserId(userId)
	if err != nil {
		return nil, err
	}
	return respond.NewUserProfileRespond(profile), nil
}
