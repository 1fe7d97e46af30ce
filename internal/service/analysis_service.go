package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qs3c/respvision_go_server/internal/model"
	"github.com/qs3c/respvision_go_server/internal/model/dto"
	"github.com/qs3c/respvision_go_server/internal/pkg/jobstore"
	"github.com/qs3c/respvision_go_server/internal/repository"
)

var ErrAnalysisNotFound = errors.New("分析不存在")

// Processor 后台流水线入口
type Processor interface {
	Process(ctx context.Context, analysis *model.Analysis)
}

// AnalysisService 分析任务的生命周期：创建并后台执行、查询状态、查询历史。
// 进行中的任务以内存状态表为准，完成的任务从数据库读取。
type AnalysisService struct {
	processor Processor
	store     *jobstore.Store
	repo      *repository.AnalysisRepository
	shotRepo  *repository.ScreenshotRepository
}

func NewAnalysisService(
	processor Processor,
	store *jobstore.Store,
	repo *repository.AnalysisRepository,
	shotRepo *repository.ScreenshotRepository,
) *AnalysisService {
	return &AnalysisService{
		processor: processor,
		store:     store,
		repo:      repo,
		shotRepo:  shotRepo,
	}
}

// Start 创建分析任务并在后台启动流水线，立即返回任务 ID
func (s *AnalysisService) Start(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	analysis := &model.Analysis{
		ID:        uuid.NewString(),
		URL:       req.URL,
		Status:    model.StatusPending,
		Progress:  0,
		Message:   "正在初始化分析...",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.store.Put(analysis)

	go s.processor.Process(context.WithoutCancel(ctx), analysis)

	return &dto.AnalyzeResponse{
		AnalysisID: analysis.ID,
		Message:    "分析任务已创建",
		Status:     model.StatusPending,
	}, nil
}

// Get 查询单个分析。先查内存状态表，查不到再回落数据库。
func (s *AnalysisService) Get(id string) (*model.Analysis, error) {
	if analysis, ok := s.store.Get(id); ok {
		return analysis, nil
	}

	analysis, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return analysis, nil
}

// GetScreenshots 查询某次分析的截图列表
func (s *AnalysisService) GetScreenshots(id string) ([]model.Screenshot, error) {
	analysis, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if len(analysis.Screenshots) > 0 {
		return analysis.Screenshots, nil
	}

	// 老记录可能只有子表数据
	return s.shotRepo.ListByAnalysisID(id)
}

// History 查询最近完成的分析，limit 非法时取默认值 10
func (s *AnalysisService) History(limit int) ([]*model.Analysis, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListRecent(limit)
}

// ActiveCount 内存状态表中的任务数，供健康检查上报
func (s *AnalysisService) ActiveCount() int {
	return s.store.Len()
}
