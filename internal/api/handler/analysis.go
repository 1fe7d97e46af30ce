package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/respvision_go_server/internal/model/dto"
	"github.com/qs3c/respvision_go_server/internal/pkg/response"
	"github.com/qs3c/respvision_go_server/internal/service"
)

type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// Analyze 创建分析任务
// POST /api/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, "无效的 URL")
		return
	}

	resp, err := h.analysisService.Start(c.Request.Context(), &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, resp)
}

// Get 查询分析状态与结果
// GET /api/analysis/:id
func (h *AnalysisHandler) Get(c *gin.Context) {
	analysis, err := h.analysisService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAnalysisNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	response.Success(c, analysis)
}

// Screenshots 查询分析的截图列表
// GET /api/screenshots/:id
func (h *AnalysisHandler) Screenshots(c *gin.Context) {
	shots, err := h.analysisService.GetScreenshots(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAnalysisNotFound) {
			response.NotFoundError(c, err.Error())
			return
		}
		response.ServerError(c, "")
		return
	}

	items := make([]dto.ScreenshotItem, 0, len(shots))
	for _, s := range shots {
		items = append(items, dto.ScreenshotItem{
			ID:          s.ID,
			Device:      s.Device,
			Resolution:  s.Resolution,
			URL:         s.URL,
			FullPageURL: s.FullPageURL,
		})
	}

	response.Success(c, gin.H{"screenshots": items})
}

// History 查询最近的分析记录
// GET /api/history?limit=N
func (h *AnalysisHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	items, err := h.analysisService.History(limit)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{"analyses": items})
}

// Health 健康检查
// GET /api/health
func (h *AnalysisHandler) Health(c *gin.Context) {
	response.Success(c, dto.HealthResponse{
		Status:         "healthy",
		Timestamp:      time.Now(),
		ActiveAnalyses: h.analysisService.ActiveCount(),
	})
}
