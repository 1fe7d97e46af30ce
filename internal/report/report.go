package report

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/qs3c/respvision_go_server/internal/model"
)

// Result 报告生成产物
type Result struct {
	ReportURL string `json:"report_url"`
	Summary   string `json:"summary"`
	Filename  string `json:"filename"`
	OSSURL    string `json:"oss_url,omitempty"`
}

// ArtifactMirror 对象存储镜像，报告连同引用的截图一起上传
type ArtifactMirror interface {
	UploadReport(analysisID string, html []byte) (string, error)
	UploadScreenshot(analysisID, filename string, data []byte) (string, error)
}

// Generator 渲染自包含的 HTML 分析报告并落盘。mirror 可为 nil。
type Generator struct {
	reportsDir     string
	screenshotsDir string
	mirror         ArtifactMirror
	tmpl           *template.Template
}

func NewGenerator(reportsDir, screenshotsDir string, mirror ArtifactMirror) *Generator {
	return &Generator{
		reportsDir:     reportsDir,
		screenshotsDir: screenshotsDir,
		mirror:         mirror,
		tmpl:           template.Must(template.New("report").Parse(reportTemplate)),
	}
}

type reportData struct {
	URL             string
	GeneratedAt     string
	TotalIssues     int
	CriticalIssues  int
	WarningIssues   int
	ScreenshotCount int
	Summary         string
	Screenshots     []screenshotView
	Issues          []issueView
	Recommendations []model.Recommendation
}

type screenshotView struct {
	URL     string
	Caption string
}

type issueView struct {
	model.Issue
	CSSClass string
}

// Generate 渲染报告并写入 reportsDir，文件名包含分析 ID 与时间戳
func (g *Generator) Generate(analysisID, pageURL string, shots []model.Screenshot, issues []model.Issue, recs []model.Recommendation) (*Result, error) {
	if err := os.MkdirAll(g.reportsDir, 0o755); err != nil {
		return nil, fmt.Errorf("report: create dir: %w", err)
	}

	critical, warning, info := countByType(issues)
	summary := buildSummary(pageURL, len(issues), critical, warning, info)

	data := reportData{
		URL:             pageURL,
		GeneratedAt:     time.Now().Format("2006-01-02 15:04"),
		TotalIssues:     len(issues),
		CriticalIssues:  critical,
		WarningIssues:   warning,
		ScreenshotCount: len(shots),
		Summary:         summary,
		Recommendations: recs,
	}
	for _, shot := range shots {
		data.Screenshots = append(data.Screenshots, screenshotView{
			URL:     shot.URL,
			Caption: fmt.Sprintf("%s - %s", titleCase(shot.Device), shot.Resolution),
		})
	}
	for _, issue := range issues {
		view := issueView{Issue: issue}
		switch issue.Type {
		case model.IssueWarning:
			view.CSSClass = "warning"
		case model.IssueInfo:
			view.CSSClass = "info"
		}
		data.Issues = append(data.Issues, view)
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("report: render: %w", err)
	}

	filename := fmt.Sprintf("report_%s_%s.html", analysisID, time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(g.reportsDir, filename), buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("report: write file: %w", err)
	}
	log.Printf("Report: saved %s for analysis %s", filename, analysisID)

	result := &Result{
		ReportURL: "/reports/" + filename,
		Summary:   summary,
		Filename:  filename,
	}

	// 镜像失败不影响本地报告
	if g.mirror != nil {
		ossURL, err := g.mirror.UploadReport(analysisID, buf.Bytes())
		if err != nil {
			log.Printf("Report: OSS mirror failed for %s: %v", analysisID, err)
		} else {
			result.OSSURL = ossURL
		}
		g.mirrorScreenshots(analysisID, shots)
	}

	return result, nil
}

// mirrorScreenshots 把报告引用的截图一并镜像，单张失败跳过
func (g *Generator) mirrorScreenshots(analysisID string, shots []model.Screenshot) {
	for _, shot := range shots {
		filename := path.Base(shot.URL)
		data, err := os.ReadFile(filepath.Join(g.screenshotsDir, filename))
		if err != nil {
			continue
		}
		if _, err := g.mirror.UploadScreenshot(analysisID, filename, data); err != nil {
			log.Printf("Report: screenshot mirror failed for %s/%s: %v", analysisID, filename, err)
		}
	}
}

func countByType(issues []model.Issue) (critical, warning, info int) {
	for _, issue := range issues {
		switch issue.Type {
		case model.IssueCritical:
			critical++
		case model.IssueWarning:
			warning++
		case model.IssueInfo:
			info++
		}
	}
	return
}

func buildSummary(pageURL string, total, critical, warning, info int) string {
	return strings.TrimSpace(fmt.Sprintf(`已完成对 %s 的响应式分析。

共发现 %d 个问题：
- %d 个严重问题
- %d 个警告
- %d 个提示

主要问题集中在布局、排版以及移动端可用性。整改建议附带可直接使用的代码示例。`,
		pageURL, total, critical, warning, info))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
