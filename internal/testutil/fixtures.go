package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qs3c/respvision_go_server/internal/model"
)

// TestAnalysis 创建测试分析记录
func TestAnalysis(t *testing.T, db *gorm.DB, opts ...func(*model.Analysis)) *model.Analysis {
	t.Helper()

	analysis := &model.Analysis{
		ID:       uuid.NewString(),
		URL:      fmt.Sprintf("https://example.com/page-%d", time.Now().UnixNano()%10000),
		Status:   model.StatusCompleted,
		Progress: 100,
	}

	for _, opt := range opts {
		opt(analysis)
	}

	if err := db.Create(analysis).Error; err != nil {
		t.Fatalf("Failed to create test analysis: %v", err)
	}

	return analysis
}

// WithURL 设置目标 URL
func WithURL(url string) func(*model.Analysis) {
	return func(a *model.Analysis) {
		a.URL = url
	}
}

// WithStatus 设置状态
func WithStatus(status string) func(*model.Analysis) {
	return func(a *model.Analysis) {
		a.Status = status
	}
}

// WithCreatedAt 设置创建时间
func WithCreatedAt(ts time.Time) func(*model.Analysis) {
	return func(a *model.Analysis) {
		a.CreatedAt = ts
	}
}

// TestScreenshot 创建测试截图记录
func TestScreenshot(t *testing.T, db *gorm.DB, analysisID, device string) *model.Screenshot {
	t.Helper()

	shot := &model.Screenshot{
		ID:          uuid.NewString(),
		AnalysisID:  analysisID,
		Device:      device,
		Resolution:  "375x667",
		URL:         fmt.Sprintf("/screenshots/%s_%s.png", analysisID, device),
		FullPageURL: fmt.Sprintf("/screenshots/%s_%s_full.png", analysisID, device),
	}

	if err := db.Create(shot).Error; err != nil {
		t.Fatalf("Failed to create test screenshot: %v", err)
	}

	return shot
}

// TestIssue 创建测试问题记录
func TestIssue(t *testing.T, db *gorm.DB, analysisID, issueType string, severity int) *model.Issue {
	t.Helper()

	issue := &model.Issue{
		ID:          uuid.NewString(),
		AnalysisID:  analysisID,
		Type:        issueType,
		Severity:    severity,
		Title:       "Test Issue",
		Description: "测试问题描述",
		Device:      model.DeviceMobile,
	}

	if err := db.Create(issue).Error; err != nil {
		t.Fatalf("Failed to create test issue: %v", err)
	}

	return issue
}

// TestRecommendation 创建测试建议记录
func TestRecommendation(t *testing.T, db *gorm.DB, analysisID string) *model.Recommendation {
	t.Helper()

	rec := &model.Recommendation{
		ID:          uuid.NewString(),
		AnalysisID:  analysisID,
		Category:    model.CategoryCSS,
		Title:       "Test Recommendation",
		Description: "测试建议描述",
		Priority:    model.PriorityMedium,
	}

	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("Failed to create test recommendation: %v", err)
	}

	return rec
}
