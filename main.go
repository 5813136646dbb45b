package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leadflow/leadflow_end/config"
	"github.com/leadflow/leadflow_end/controllers"
	"github.com/leadflow/leadflow_end/middleware"
	"github.com/leadflow/leadflow_end/repository"
	"github.com/leadflow/leadflow_end/routes"
	"github.com/leadflow/leadflow_end/service"
	"github.com/leadflow/leadflow_end/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 初始化日志
	utils.InitLogger()

	// 加载配置
	cfg := config.LoadConfig()

	// 设置Gin模式
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化数据库
	if err := repository.InitMongoDB(cfg.MongoURI, cfg.MongoDB); err != nil {
		utils.Logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	defer repository.CloseMongoDB()

	// 初始化系统数据
	utils.Logger.Info().Msg("开始系统初始化...")
	if err := repository.InitializeCollections(); err != nil {
		utils.Logger.Error().Err(err).Msg("初始化数据库集合失败")
	}
	if err := repository.InitializeAdminAccount(); err != nil {
		utils.Logger.Error().Err(err).Msg("初始化管理员账户失败")
	}
	controllers.Setup(cfg)
	utils.Logger.Info().Msg("系统初始化完成")

	// 创建Gin实例
	router := gin.New()

	// 应用中间件
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	// 注册路由
	routes.RegisterRoutes(router)

	// 启动自动推进调度器
	scheduler := service.NewAdvanceScheduler(controllers.AdvanceEngine(), cfg.AdvanceInterval)
	scheduler.Start()

	// 监听线索变更, 刷新列表缓存 (需要MongoDB副本集, 失败时降级为按需回源)
	watchCtx, stopWatch := context.WithCancel(context.Background())
	go func() {
		err := controllers.LeadRepo().Watch(watchCtx, func() {
			if err := controllers.LeadCache().Refresh(watchCtx); err != nil {
				utils.LogError(err, nil, "变更触发缓存刷新失败")
			}
		})
		if err != nil {
			utils.Logger.Warn().Err(err).Msg("线索变更监听不可用, 缓存改为按需回源")
		}
	}()

	// 每天凌晨清理过期的每日任务
	cleanupStop := service.ScheduleDailyTaskAt(3, 0, service.CleanupOldDailyTasks, "清理过期每日任务")

	// 设置HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 启动服务器
	go func() {
		utils.Logger.Info().Msgf("服务器启动，监听端口: %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal().Err(err).Msg("启动服务器失败")
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info().Msg("正在关闭服务器...")

	scheduler.Stop()
	stopWatch()
	close(cleanupStop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal().Err(err).Msg("服务器关闭异常")
	}

	utils.Logger.Info().Msg("服务器已优雅关闭")
}
