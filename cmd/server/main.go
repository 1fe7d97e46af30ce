package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qs3c/respvision_go_server/config"
	"github.com/qs3c/respvision_go_server/internal/analyzer"
	"github.com/qs3c/respvision_go_server/internal/api"
	"github.com/qs3c/respvision_go_server/internal/api/handler"
	"github.com/qs3c/respvision_go_server/internal/capture"
	"github.com/qs3c/respvision_go_server/internal/database"
	"github.com/qs3c/respvision_go_server/internal/pkg/cron"
	"github.com/qs3c/respvision_go_server/internal/pkg/jobstore"
	"github.com/qs3c/respvision_go_server/internal/pkg/oss"
	"github.com/qs3c/respvision_go_server/internal/pkg/progress"
	"github.com/qs3c/respvision_go_server/internal/pkg/ws"
	"github.com/qs3c/respvision_go_server/internal/report"
	"github.com/qs3c/respvision_go_server/internal/repository"
	"github.com/qs3c/respvision_go_server/internal/service"
	"github.com/qs3c/respvision_go_server/internal/suggest"
	"github.com/qs3c/respvision_go_server/internal/vision"
	"github.com/qs3c/respvision_go_server/internal/worker"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库（New 内部完成迁移）
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 产物目录
	if err := os.MkdirAll(cfg.Storage.ScreenshotsDir, 0o755); err != nil {
		log.Fatalf("Failed to create screenshots dir: %v", err)
	}
	if err := os.MkdirAll(cfg.Storage.ReportsDir, 0o755); err != nil {
		log.Fatalf("Failed to create reports dir: %v", err)
	}

	// WebSocket Hub
	wsHub := ws.NewHub()
	publisher := progress.NewPublisher(wsHub)

	// Repository
	analysisRepo := repository.NewAnalysisRepository(db)
	shotRepo := repository.NewScreenshotRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	recRepo := repository.NewRecommendationRepository(db)

	// OSS（可选）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.BucketName != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Fatalf("Failed to init OSS client: %v", err)
		}
		log.Println("OSS client initialized")
	}

	// 视觉模型（可选，未配置 key 时流水线降级）
	var visionClient *vision.Client
	if cfg.Vision.APIKey != "" {
		visionClient, err = vision.NewClient(cfg.Vision.APIKey, cfg.Vision.Model,
			cfg.Vision.Endpoint, time.Duration(cfg.Vision.TimeoutSec)*time.Second)
		if err != nil {
			log.Fatalf("Failed to init vision client: %v", err)
		}
		log.Printf("Vision client initialized (model %s)", cfg.Vision.Model)
	} else {
		log.Println("Vision API key not configured, running heuristics only")
	}

	// 流水线阶段
	capturer := capture.New(&cfg.Capture, cfg.Storage.ScreenshotsDir)
	heuristic := analyzer.NewHeuristic()
	visionAnalyzer := vision.NewAnalyzer(visionClient, cfg.Storage.ScreenshotsDir, cfg.Vision.MaxPixels)
	suggester := suggest.NewGenerator()
	var mirror report.ArtifactMirror
	if ossClient != nil {
		mirror = ossClient
	}
	reporter := report.NewGenerator(cfg.Storage.ReportsDir, cfg.Storage.ScreenshotsDir, mirror)

	// 浏览器预热
	if cfg.Capture.WarmupOnStartup {
		warmupCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		if err := capturer.Warmup(warmupCtx); err != nil {
			log.Printf("Browser warmup failed: %v", err)
		}
		cancel()
	}

	// 任务处理
	store := jobstore.New()
	processor := worker.NewProcessor(capturer, heuristic, visionAnalyzer, suggester, reporter,
		store, publisher, analysisRepo, shotRepo, issueRepo, recRepo)

	// Service 与 Handler
	analysisService := service.NewAnalysisService(processor, store, analysisRepo, shotRepo)
	analysisHandler := handler.NewAnalysisHandler(analysisService)
	websocketHandler := handler.NewWebSocketHandler(wsHub)

	// 定时清理
	cronService := cron.NewService(cfg.Storage.ScreenshotsDir, cfg.Storage.ReportsDir, cfg.Cleanup.ExpireHours)
	cronService.Start()
	defer cronService.Stop()

	// Router
	router := api.NewRouter(analysisHandler, websocketHandler, cfg)
	engine := router.Setup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
