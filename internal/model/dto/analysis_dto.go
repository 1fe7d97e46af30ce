package dto

import "time"

// AnalyzeRequest 发起分析请求
type AnalyzeRequest struct {
	URL string `json:"url" binding:"required,url,max=500"`
}

// AnalyzeResponse 发起分析响应
type AnalyzeResponse struct {
	AnalysisID string `json:"analysis_id"`
	Message    string `json:"message"`
	Status     string `json:"status"`
}

// ScreenshotItem 截图描述项
type ScreenshotItem struct {
	ID          string `json:"id"`
	Device      string `json:"device"`
	Resolution  string `json:"resolution"`
	URL         string `json:"url"`
	FullPageURL string `json:"full_page_url"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	ActiveAnalyses int       `json:"active_analyses"`
}

// ProgressEvent WebSocket 推送的进度帧
type ProgressEvent struct {
	AnalysisID string `json:"analysis_id"`
	Status     string `json:"status"`
	Progress   int    `json:"progress"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}
