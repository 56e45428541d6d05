// Package handler 提供 HTTP 请求处理器
// 本文件处理配对相关的 API 请求
package handler

import (
	"yuanfen_chat_server/internal/dto/request"
	"yuanfen_chat_server/internal/service/match"
	"yuanfen_chat_server/internal/service/user"

	"github.com/gin-gonic/gin"
)

// MatchHandler 配对请求处理器
type MatchHandler struct {
	matchSvc *match.Service
	userSvc  *user.Service
}

// NewMatchHandler 创建配对处理器
func NewMatchHandler(matchSvc *match.Service, userSvc *user.Service) *MatchHandler {
	return &MatchHandler{matchSvc: matchSvc, userSvc: userSvc}
}

// CreateMatch 创建配对
// POST /match/create
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req request.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	profile, err := currentUserProfile(c, h.userSvc)
	if err != nil {
		HandleError(c, err)
		return
	}
	rsp, err := h.matchSvc.CreateMatch(profile.Id, req.TargetUserId, req.CompatibilityScore)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, rsp)
}

// GetMatches 查询配对列表
// GET /match/list
func (h *MatchHandler) GetMatches(c *gin.Context) {
	profile, err := currentUserProfile(c, h.userSvc)
	if err != nil {
		HandleError(c, err)
		return
	}
	list, err := h.matchSvc.GetMatches(profile.Id)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, list)
}
