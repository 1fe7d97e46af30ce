package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/qs3c/respvision_go_server/internal/analyzer"
	"github.com/qs3c/respvision_go_server/internal/model"
	"github.com/qs3c/respvision_go_server/internal/model/dto"
	"github.com/qs3c/respvision_go_server/internal/pkg/jobstore"
	"github.com/qs3c/respvision_go_server/internal/pkg/progress"
	"github.com/qs3c/respvision_go_server/internal/report"
	"github.com/qs3c/respvision_go_server/internal/repository"
)

// 流水线各阶段接口，便于在测试中替换
type CaptureStage interface {
	Capture(ctx context.Context, pageURL, analysisID string) ([]model.Screenshot, error)
}

type HeuristicStage interface {
	Analyze(ctx context.Context, pageURL string) []model.Issue
}

type VisionStage interface {
	Analyze(ctx context.Context, shots []model.Screenshot) []model.Issue
}

type SuggestionStage interface {
	Generate(issues []model.Issue) []model.Recommendation
}

type ReportStage interface {
	Generate(analysisID, pageURL string, shots []model.Screenshot, issues []model.Issue, recs []model.Recommendation) (*report.Result, error)
}

// Processor 分析任务处理器，串起截图、启发式、视觉、建议与报告五个阶段。
// 过程状态写内存状态表并推送进度，仅在成功完成时落库。
type Processor struct {
	capture      CaptureStage
	heuristic    HeuristicStage
	vision       VisionStage
	suggest      SuggestionStage
	report       ReportStage
	store        *jobstore.Store
	publisher    *progress.Publisher
	analysisRepo *repository.AnalysisRepository
	shotRepo     *repository.ScreenshotRepository
	issueRepo    *repository.IssueRepository
	recRepo      *repository.RecommendationRepository
}

// NewProcessor 创建任务处理器
func NewProcessor(
	capture CaptureStage,
	heuristic HeuristicStage,
	vision VisionStage,
	suggest SuggestionStage,
	reportGen ReportStage,
	store *jobstore.Store,
	publisher *progress.Publisher,
	analysisRepo *repository.AnalysisRepository,
	shotRepo *repository.ScreenshotRepository,
	issueRepo *repository.IssueRepository,
	recRepo *repository.RecommendationRepository,
) *Processor {
	return &Processor{
		capture:      capture,
		heuristic:    heuristic,
		vision:       vision,
		suggest:      suggest,
		report:       reportGen,
		store:        store,
		publisher:    publisher,
		analysisRepo: analysisRepo,
		shotRepo:     shotRepo,
		issueRepo:    issueRepo,
		recRepo:      recRepo,
	}
}

// Process 执行一次完整分析。analysis 由调用方创建并已放入状态表。
func (p *Processor) Process(ctx context.Context, analysis *model.Analysis) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Analysis %s: panic: %v", analysis.ID, r)
			p.fail(analysis, fmt.Errorf("internal error: %v", r))
		}
	}()

	log.Printf("Analysis %s: starting for %s", analysis.ID, analysis.URL)

	// Step 1: 截图
	p.update(analysis, model.StatusAnalyzing, 10, "正在截取页面截图...")

	shots, err := p.capture.Capture(ctx, analysis.URL, analysis.ID)
	if err != nil {
		// 截图失败不终止分析，降级为纯启发式
		log.Printf("Analysis %s: capture failed: %v", analysis.ID, err)
		analysis.Screenshots = nil
		p.update(analysis, model.StatusAnalyzing, 20, fmt.Sprintf("截图失败：%v", err))
	} else {
		analysis.Screenshots = shots
		p.update(analysis, model.StatusAnalyzing, 25, "正在分析页面布局...")
	}

	// Step 2: 启发式布局检查
	issues := p.heuristic.Analyze(ctx, analysis.URL)
	analysis.Issues = issues
	p.update(analysis, model.StatusAnalyzing, 50, "正在进行视觉分析...")

	// Step 3: 视觉 AI 分析
	visionIssues := p.vision.Analyze(ctx, analysis.Screenshots)
	analysis.Issues = append(analysis.Issues, visionIssues...)
	p.update(analysis, model.StatusAnalyzing, 75, "正在生成整改建议...")

	// Step 4: 整改建议
	analysis.Recommendations = p.suggest.Generate(analysis.Issues)

	// Step 5: 报告 + 评分
	result, err := p.report.Generate(analysis.ID, analysis.URL, analysis.Screenshots, analysis.Issues, analysis.Recommendations)
	if err != nil {
		p.fail(analysis, fmt.Errorf("report generation failed: %w", err))
		return
	}
	analysis.Summary = result.Summary

	score := analyzer.CalculateScores(analysis.Issues)
	analysis.Score = &score

	p.update(analysis, model.StatusCompleted, 100, "分析完成")
	p.persist(analysis)

	log.Printf("Analysis %s: completed with %d issues, %d recommendations, overall score %d",
		analysis.ID, len(analysis.Issues), len(analysis.Recommendations), score.Overall)
}

// update 刷新内存状态并推送一帧进度
func (p *Processor) update(analysis *model.Analysis, status string, prog int, message string) {
	analysis.Status = status
	analysis.Progress = prog
	analysis.Message = message
	analysis.UpdatedAt = time.Now()

	p.store.Put(analysis)
	p.publisher.Publish(&dto.ProgressEvent{
		AnalysisID: analysis.ID,
		Status:     status,
		Progress:   prog,
		Message:    message,
	})
}

// fail 标记任务失败。失败的任务只留在状态表，不落库。
func (p *Processor) fail(analysis *model.Analysis, err error) {
	analysis.Status = model.StatusError
	analysis.Error = err.Error()
	analysis.Message = fmt.Sprintf("分析失败：%v", err)
	analysis.UpdatedAt = time.Now()

	p.store.Put(analysis)
	p.publisher.Publish(&dto.ProgressEvent{
		AnalysisID: analysis.ID,
		Status:     model.StatusError,
		Progress:   analysis.Progress,
		Message:    analysis.Message,
		Error:      analysis.Error,
	})
	log.Printf("Analysis %s: failed: %v", analysis.ID, err)
}

// persist 把完成的分析快照与子表一并落库，子表失败只记日志
func (p *Processor) persist(analysis *model.Analysis) {
	if err := p.analysisRepo.Save(analysis); err != nil {
		log.Printf("Analysis %s: failed to persist: %v", analysis.ID, err)
		return
	}

	shots := make([]model.Screenshot, len(analysis.Screenshots))
	copy(shots, analysis.Screenshots)
	for i := range shots {
		shots[i].AnalysisID = analysis.ID
	}
	if err := p.shotRepo.CreateBatch(shots); err != nil {
		log.Printf("Analysis %s: failed to persist screenshots: %v", analysis.ID, err)
	}

	issues := make([]model.Issue, len(analysis.Issues))
	copy(issues, analysis.Issues)
	for i := range issues {
		issues[i].AnalysisID = analysis.ID
	}
	if err := p.issueRepo.CreateBatch(issues); err != nil {
		log.Printf("Analysis %s: failed to persist issues: %v", analysis.ID, err)
	}

	recs := make([]model.Recommendation, len(analysis.Recommendations))
	copy(recs, analysis.Recommendations)
	for i := range recs {
		recs[i].AnalysisID = analysis.ID
	}
	if err := p.recRepo.CreateBatch(recs); err != nil {
		log.Printf("Analysis %s: failed to persist recommendations: %v", analysis.ID, err)
	}
}
