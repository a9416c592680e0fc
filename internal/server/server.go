package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"historia/internal/config"
	"historia/internal/handler"
	enhanceHandler "historia/internal/handler/enhance"
	narrativeHandler "historia/internal/handler/narrative"
	sessionHandler "historia/internal/handler/session"
	storyboardHandler "historia/internal/handler/storyboard"
	"historia/internal/ai"
	"historia/internal/pkg/cache"
	"historia/internal/pkg/imagegen"
	"historia/internal/pkg/research"
	sessionrepo "historia/internal/repository/session"
	"historia/internal/server/middleware"
	"historia/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	redis  *cache.RedisCache
}

// New 创建服务器实例
func New(cfg *config.Config) (*Server, error) {
	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建 Gin 引擎
	engine := gin.New()

	// 初始化 Redis (可选，用于研究结果缓存)
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without research cache")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// 初始化 LLM 客户端
	aiClient, err := ai.NewClient(context.Background(), &cfg.AI)
	if err != nil {
		return nil, err
	}
	log.Info().Str("provider", cfg.AI.Provider).Str("model", cfg.AI.Model).Msg("initialized AI client")

	// 初始化研究与图片生成客户端
	researchClient := research.NewClient(&cfg.Research)
	imageProvider, err := imagegen.NewProvider(&cfg.Image)
	if err != nil {
		return nil, err
	}
	log.Info().Str("provider", imageProvider.Name()).Msg("initialized image provider")

	// 组装服务
	repo := sessionrepo.NewRepo()
	storyboardSvc := service.NewStoryboardService(repo, aiClient, imageProvider, cfg)
	enhanceSvc := service.NewEnhanceService(repo, aiClient)
	narrativeSvc := service.NewNarrativeService(repo, aiClient, researchClient, redisCache, &cfg.Research)

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		redis:  redisCache,
	}

	// 设置路由
	srv.setupRoutes(repo, storyboardSvc, enhanceSvc, narrativeSvc)

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(
	repo sessionrepo.SessionRepository,
	storyboardSvc service.StoryboardService,
	enhanceSvc service.EnhanceService,
	narrativeSvc service.NarrativeService,
) {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	// 健康检查
	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	sessionHdl := sessionHandler.NewHandler(repo)
	storyboardHdl := storyboardHandler.NewHandler(storyboardSvc)
	enhanceHdl := enhanceHandler.NewHandler(enhanceSvc)
	narrativeHdl := narrativeHandler.NewHandler(narrativeSvc)

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		// 会话管理
		v1.POST("/sessions", sessionHdl.Create)
		v1.GET("/sessions/:id", sessionHdl.Get)
		v1.POST("/sessions/:id/reset", sessionHdl.Reset)

		// 叙事流水线：研究 -> 大纲 -> 解说词
		v1.POST("/sessions/:id/narrative/research", narrativeHdl.Research)
		v1.POST("/sessions/:id/narrative/outline", narrativeHdl.Outline)
		v1.POST("/sessions/:id/narrative/script", narrativeHdl.Script)

		// 分镜与图片池
		v1.POST("/sessions/:id/breakdown", storyboardHdl.Breakdown)
		v1.POST("/sessions/:id/storyboard", storyboardHdl.Generate)
		v1.POST("/sessions/:id/storyboard/scenes/:scene_number/regenerate", storyboardHdl.Regenerate)
		v1.POST("/sessions/:id/storyboard/retry-failed", storyboardHdl.RetryFailed)

		// 解说词增强：分析 -> 重写 -> TTS 格式化
		v1.POST("/sessions/:id/enhance/analyze", enhanceHdl.Analyze)
		v1.POST("/sessions/:id/enhance/rewrite", enhanceHdl.Rewrite)
		v1.POST("/sessions/:id/enhance/format", enhanceHdl.Format)
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待关闭信号或错误
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
