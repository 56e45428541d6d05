// Package auth 实现注册、登录与令牌刷新
// 采用双令牌方案，refresh token 的 tokenID 存入缓存做轮换校验
package auth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"yuanfen_chat_server/internal/dao/mysql/repository"
	myredis "yuanfen_chat_server/internal/dao/redis"
	"yuanfen_chat_server/internal/dto/request"
	"yuanfen_chat_server/internal/dto/respond"
	"yuanfen_chat_server/internal/infrastructure/sms"
	"yuanfen_chat_server/internal/model"
	"yuanfen_chat_server/pkg/constants"
	"yuanfen_chat_server/pkg/errorx"
	myjwt "yuanfen_chat_server/pkg/util/jwt"
)

// Service 认证服务
type Service struct {
	repos *repository.Repositories
	cache myredis.CacheService
	sms   sms.SmsService
}

// NewService 创建认证服务
func NewService(repos *repository.Repositories, cache myredis.CacheService, smsService sms.SmsService) *Service {
	return &Service{repos: repos, cache: cache, sms: smsService}
}

// refreshTokenKey refresh token 的 tokenID 缓存键
func refreshTokenKey(accountId int64) string {
	return fmt.Sprintf("refresh_token_%d", accountId)
}

// SendSmsCode 发送注册验证码
func (s *Service) SendSmsCode(telephone string) error {
	return s.sms.SendVerificationCode(telephone)
}

// Register 注册账号
// 校验短信验证码后在同一事务内创建账号与用户资料
func (s *Service) Register(req *request.RegisterRequest) (*respond.RegisterRespond, error) {
	if err := s.sms.VerifyCode(req.Telephone, req.SmsCode); err != nil {
		return nil, err
	}

	if _, err := s.repos.Account.FindByTelephone(req.Telephone); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "手机号已注册")
	} else if !errorx.IsNotFound(err) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, "密码加密失败")
	}

	account := &model.Account{
		Telephone: req.Telephone,
		Password:  string(hashed),
	}
	profile := &model.UserProfile{
		Nickname: req.Nickname,
	}
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Account.Create(account); err != nil {
			return err
		}
		profile.AccountId = account.Id
		return tx.User.Create(profile)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("新用户注册", zap.Int64("accountId", account.Id), zap.Int64("userId", profile.Id))
	return &respond.RegisterRespond{
		UserId:    profile.Id,
		AccountId: account.Id,
		Nickname:  profile.Nickname,
	}, nil
}

// Login 登录
// 校验密码后签发双令牌，refresh token 的 tokenID 写入缓存
func (s *Service) Login(req *request.LoginRequest) (*respond.LoginRespond, error) {
	account, err := s.repos.Account.FindByTelephone(req.Telephone)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码错误")
	}

	profile, err := s.repos.User.FindByAccountId(account.Id)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.issueTokenPair(account.Id)
	if err != nil {
		return nil, err
	}

	return &respond.LoginRespond{
		UserId:       profile.Id,
		AccountId:    account.Id,
		Nickname:     profile.Nickname,
		Avatar:       profile.Avatar,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken 刷新令牌对
// 校验 refresh token 本体与缓存中的 tokenID，一致才轮换，
// 旧 refresh token 随轮换作废，防止被盗用后长期重放
func (s *Service) RefreshToken(req *request.RefreshTokenRequest) (*respond.TokenPairRespond, error) {
	claims, err := myjwt.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Subject != myjwt.SubjectRefreshToken {
		return nil, errorx.New(errorx.CodeUnauthorized, "令牌类型错误")
	}

	if s.cache != nil {
		stored, err := s.cache.GetOrError(context.Background(), refreshTokenKey(claims.AccountId))
		if err != nil {
			return nil, errorx.Wrap(err, errorx.CodeUnauthorized, "刷新令牌已失效")
		}
		if stored != claims.TokenID {
			return nil, errorx.New(errorx.CodeUnauthorized, "刷新令牌已被轮换")
		}
	}

	accessToken, refreshToken, err := s.issueTokenPair(claims.AccountId)
	if err != nil {
		return nil, err
	}
	return &respond.TokenPairRespond{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// issueTokenPair 签发双令牌并落缓存
func (s *Service) issueTokenPair(accountId int64) (string, string, error) {
	accessToken, err := myjwt.GenerateAccessToken(accountId)
	if err != nil {
		return "", "", err
	}
	refreshToken, tokenID, err := myjwt.GenerateRefreshToken(accountId)
	if err != nil {
		return "", "", err
	}
	if s.cache != nil {
		ttl := time.Hour * constants.REFRESH_TOKEN_EXPIRY_HOURS
		if err := s.cache.Set(context.Background(), refreshTokenKey(accountId), tokenID, ttl); err != nil {
			return "", "", err
		}
	}
	return accessToken, refreshToken, nil
}
