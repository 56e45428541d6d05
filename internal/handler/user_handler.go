// Package handler 提供 HTTP 请求处理器
// 本文件处理用户资料相关的 API 请求
package handler

import (
	"strconv"

	"yuanfen_chat_server/internal/service/user"
	"yuanfen_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户资料请求处理器
type UserHandler struct {
	userSvc *user.Service
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userSvc *user.Service) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetMyProfile 查询当前登录用户的资料
// GET /user/me
func (h *UserHandler) GetMyProfile(c *gin.Context) {
	profile, err := currentUserProfile(c, h.userSvc)
	if err != nil {
		HandleError(c, err)
		return
	}
	rsp, err := h.userSvc.GetProfile(profile.Id)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// GetProfile 查询指定用户的资料
// GET /user/:userId
func (h *UserHandler) GetProfile(c *gin.Context) {
	userId, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "userId 格式错误"))
		return
	}
	rsp, err := h.userSvc.GetProfile(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}
