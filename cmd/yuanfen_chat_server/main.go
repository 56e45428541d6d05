package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"yuanfen_chat_server/internal/config"
	dao "yuanfen_chat_server/internal/dao/mysql"
	myredis "yuanfen_chat_server/internal/dao/redis"
	"yuanfen_chat_server/internal/handler"
	"yuanfen_chat_server/internal/https_server"
	"yuanfen_chat_server/internal/infrastructure/logger"
	"yuanfen_chat_server/internal/infrastructure/sms"
	"yuanfen_chat_server/internal/service"
	"yuanfen_chat_server/internal/service/chat"
	"yuanfen_chat_server/pkg/util/jwt"
	"yuanfen_chat_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化雪花算法
	if err := snowflake.Init(conf.SnowflakeConfig.StartTime, conf.SnowflakeConfig.MachineID); err != nil {
		zap.L().Fatal("雪花算法初始化失败", zap.Error(err))
	}

	// 4. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 5. 初始化 Redis
	myredis.Init()
	cache := myredis.GetCacheService()
	zap.L().Info("Redis 初始化成功")

	// 6. 初始化 JWT
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	zap.L().Info("JWT 初始化成功")

	// 7. 初始化 SMS Service
	smsService, err := sms.Init(cache)
	if err != nil {
		zap.L().Fatal("SMS Service 初始化失败", zap.Error(err))
	}
	zap.L().Info("SMS Service 初始化成功")

	// 8. 组装实时投递层与 Service 层（依赖注入）
	hub := chat.NewHub()
	services := service.NewServices(repos, cache, smsService, hub)
	chatServer := chat.NewChatServer(chat.ChatServerConfig{
		Mode:           conf.KafkaConfig.MessageMode,
		Hub:            hub,
		MessageService: services.Message,
	})
	if conf.KafkaConfig.MessageMode == "kafka" {
		chatServer.InitKafka()
	}
	zap.L().Info("ChatServer 初始化成功")

	// 9. 初始化 HTTP 服务器
	handlers := handler.NewHandlers(services, hub, chatServer.Broker)
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("validator 翻译器初始化失败", zap.Error(err))
	}
	engine := https_server.Init(handlers)
	zap.L().Info("HTTP 服务器初始化成功")

	// 10. 启动服务
	go chatServer.Start()
	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	chatServer.Close()
	zap.L().Info("服务器已关闭")
}
