package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/qs3c/respvision_go_server/internal/model"
)

// Analyzer 对各设备截图逐张做视觉 AI 分析。client 为 nil 时降级为占位提示。
type Analyzer struct {
	client         *Client
	screenshotsDir string
	maxPixels      int
}

func NewAnalyzer(client *Client, screenshotsDir string, maxPixels int) *Analyzer {
	if maxPixels <= 0 {
		maxPixels = 1024
	}
	return &Analyzer{
		client:         client,
		screenshotsDir: screenshotsDir,
		maxPixels:      maxPixels,
	}
}

// Analyze 逐张分析视口截图，单张失败只跳过该张
func (a *Analyzer) Analyze(ctx context.Context, shots []model.Screenshot) []model.Issue {
	var issues []model.Issue

	for _, shot := range shots {
		shotIssues, err := a.analyzeScreenshot(ctx, shot)
		if err != nil {
			log.Printf("Vision: failed to analyze %s screenshot: %v", shot.Device, err)
			continue
		}
		issues = append(issues, shotIssues...)
	}

	log.Printf("Vision: found %d issues across %d screenshots", len(issues), len(shots))
	return issues
}

func (a *Analyzer) analyzeScreenshot(ctx context.Context, shot model.Screenshot) ([]model.Issue, error) {
	imgPath := filepath.Join(a.screenshotsDir, path.Base(shot.URL))
	if _, err := os.Stat(imgPath); err != nil {
		// 截图文件缺失，直接跳过
		return nil, nil
	}

	if a.client == nil {
		return []model.Issue{{
			ID:          uuid.NewString(),
			Type:        model.IssueInfo,
			Severity:    4,
			Title:       "AI Vision Unavailable",
			Description: "视觉 AI 未配置，未对该截图做视觉分析。",
			Device:      shot.Device,
			Suggestion:  "配置视觉模型 API key 后重新分析。",
			CreatedAt:   time.Now(),
		}}, nil
	}

	png, err := a.prepareImage(imgPath)
	if err != nil {
		return nil, err
	}

	findings, err := a.client.AnalyzeImage(ctx, buildPrompt(shot.Device, shot.Resolution), png)
	if errors.Is(err, ErrUnparseable) {
		// 模型返回了非结构化内容，降级为人工复查提示
		return []model.Issue{{
			ID:          uuid.NewString(),
			Type:        model.IssueInfo,
			Severity:    4,
			Title:       "Visual Analysis Completed",
			Description: fmt.Sprintf("已用 AI 分析 %s 截图，但结果无法结构化解析。", shot.Device),
			Device:      shot.Device,
			Suggestion:  "请人工检查该设备下的布局细节。",
			CreatedAt:   time.Now(),
		}}, nil
	}
	if err != nil {
		return nil, err
	}

	issues := make([]model.Issue, 0, len(findings))
	for _, f := range findings {
		issues = append(issues, findingToIssue(f, shot.Device))
	}
	return issues, nil
}

// prepareImage 读图并缩到 API 限制内，重编码为 PNG
func (a *Analyzer) prepareImage(imgPath string) ([]byte, error) {
	img, err := imaging.Open(imgPath)
	if err != nil {
		return nil, fmt.Errorf("vision: open image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > a.maxPixels || bounds.Dy() > a.maxPixels {
		img = imaging.Fit(img, a.maxPixels, a.maxPixels, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("vision: encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func findingToIssue(f Finding, device string) model.Issue {
	issue := model.Issue{
		ID:          uuid.NewString(),
		Type:        f.Type,
		Severity:    f.Severity,
		Title:       f.Title,
		Description: f.Description,
		Device:      device,
		Element:     f.Element,
		Suggestion:  f.Suggestion,
		CreatedAt:   time.Now(),
	}
	if issue.Type != model.IssueCritical && issue.Type != model.IssueWarning && issue.Type != model.IssueInfo {
		issue.Type = model.IssueWarning
	}
	if issue.Severity < 1 || issue.Severity > 5 {
		issue.Severity = 3
	}
	if issue.Title == "" {
		issue.Title = "Visual Layout Issue"
	}
	if issue.Description == "" {
		issue.Description = "AI 检测到的视觉问题。"
	}
	if issue.Suggestion == "" {
		issue.Suggestion = "请检查该区域的布局。"
	}
	return issue
}

func buildPrompt(device, resolution string) string {
	return fmt.Sprintf(`Analyze this screenshot of a website rendered on %s (%s).

Identify the following responsive design problems:
1. Overlapping or misaligned elements
2. Illegible or overly small text
3. Buttons or links too small for touch
4. Poorly sized images
5. Contrast problems
6. Horizontal scrolling
7. Elements outside the viewport
8. Broken layout

For each problem found, respond with a JSON array using this structure:
[
  {
    "title": "Issue title",
    "description": "Detailed description",
    "severity": 1-5 (1=most severe, 5=least severe),
    "type": "critical|warning|info",
    "element": "Approximate CSS selector",
    "suggestion": "How to fix"
  }
]

Respond with the JSON array only. Return [] if no problems are found.`, device, resolution)
}
