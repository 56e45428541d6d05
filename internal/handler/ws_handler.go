// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 握手
// 握手凭证解析优先级：Authorization 头 -> token 查询参数 -> 整个原始查询串
// 浏览器 WebSocket API 无法自定义请求头，后两种是前端的实际传参方式
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"yuanfen_chat_server/internal/config"
	"yuanfen_chat_server/internal/service/chat"
	"yuanfen_chat_server/internal/service/user"
	"yuanfen_chat_server/pkg/errorx"
	"yuanfen_chat_server/pkg/util/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WsHandler WebSocket 握手处理器
type WsHandler struct {
	hub     *chat.Hub
	broker  chat.MessageBroker
	userSvc *user.Service
}

// NewWsHandler 创建握手处理器
func NewWsHandler(hub *chat.Hub, broker chat.MessageBroker, userSvc *user.Service) *WsHandler {
	return &WsHandler{hub: hub, broker: broker, userSvc: userSvc}
}

// resolveBearerToken 从请求中解析凭证
// 依次尝试：Authorization: Bearer xxx -> ?token=xxx -> 原始查询串整体当作令牌
func resolveBearerToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	if raw := r.URL.RawQuery; raw != "" && !strings.Contains(raw, "=") {
		return raw
	}
	return ""
}

// Connect 处理 WebSocket 握手
// GET /ws
// 凭证无效直接以 HTTP 状态拒绝，不进行协议升级
func (h *WsHandler) Connect(c *gin.Context) {
	token := resolveBearerToken(c.Request)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "缺少凭证",
		})
		return
	}

	claims, err := jwt.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "凭证无效或已过期",
		})
		return
	}
	if claims.Subject != jwt.SubjectAccessToken {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "请使用 Access Token 建立连接",
		})
		return
	}

	profile, err := h.userSvc.FindProfileByAccountId(claims.AccountId)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "用户不存在",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws协议升级失败", zap.Error(err))
		return
	}

	wsConf := config.GetConfig().WebsocketConfig
	client := chat.NewUserConn(conn, profile.Id, claims.AccountId, h.hub, h.broker,
		wsConf.MaxMessageBytes,
		time.Duration(wsConf.SendTimeoutSeconds)*time.Second,
		wsConf.ChannelSize,
	)
	h.hub.Register(client)
	go client.Read()
	go client.Write()
	zap.L().Info("ws连接成功", zap.Int64("userId", profile.Id))
}
