package analyzer

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/qs3c/respvision_go_server/internal/model"
)

// 已知的"桌面专用"固定宽度，其余像素宽度暂不报告
var desktopOnlyWidths = []string{"1024", "1200"}

var (
	fixedWidthRe = regexp.MustCompile(`width:\s*(\d+)px`)
	fontSizeRe   = regexp.MustCompile(`font-size:\s*(\d+)px`)
)

// Heuristic 启发式布局分析：抓取页面标记并执行一组相互独立的静态检查
type Heuristic struct {
	pageClient *http.Client
	cssClient  *http.Client
}

func NewHeuristic() *Heuristic {
	return &Heuristic{
		pageClient: &http.Client{Timeout: 30 * time.Second},
		cssClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Analyze 抓取页面并运行全部检查。页面抓取失败时返回空结果而不报错；
// 单个检查内部失败只丢弃该检查的产出。
func (h *Heuristic) Analyze(ctx context.Context, pageURL string) []model.Issue {
	doc, err := h.fetchDocument(ctx, pageURL)
	if err != nil {
		log.Printf("Heuristic: failed to fetch %s: %v", pageURL, err)
		return nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		log.Printf("Heuristic: invalid page URL %s: %v", pageURL, err)
		return nil
	}

	checks := []func() []model.Issue{
		func() []model.Issue { return h.checkViewportMeta(doc) },
		func() []model.Issue { return h.checkMediaQueries(ctx, doc, base) },
		func() []model.Issue { return h.checkFixedWidths(doc) },
		func() []model.Issue { return h.checkSmallFonts(doc) },
	}

	var issues []model.Issue
	for _, check := range checks {
		issues = append(issues, runCheck(check)...)
	}

	log.Printf("Heuristic: found %d layout issues for %s", len(issues), pageURL)
	return issues
}

// runCheck 隔离单个检查，内部 panic 不影响其余检查
func runCheck(check func() []model.Issue) (issues []model.Issue) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Heuristic: check panicked: %v", r)
			issues = nil
		}
	}()
	return check()
}

func (h *Heuristic) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.pageClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return goquery.NewDocumentFromReader(resp.Body)
}

// checkViewportMeta 检查 viewport meta 标签
func (h *Heuristic) checkViewportMeta(doc *goquery.Document) []model.Issue {
	if doc.Find(`meta[name="viewport"]`).Length() > 0 {
		return nil
	}

	return []model.Issue{{
		ID:          uuid.NewString(),
		Type:        model.IssueCritical,
		Severity:    5,
		Title:       "Viewport Meta Tag Missing",
		Description: "页面缺少 viewport meta 标签，会导致移动设备上的缩放异常。",
		Device:      model.DeviceMobile,
		Element:     `<meta name='viewport' content='width=device-width, initial-scale=1.0'>`,
		Suggestion:  "在 HTML head 中添加 viewport meta 标签以保证正确的响应式缩放。",
		CreatedAt:   time.Now(),
	}}
}

// checkMediaQueries 抓取所有外链样式表，检查是否存在 @media 断点规则。
// 单个样式表抓取失败时静默跳过。
func (h *Heuristic) checkMediaQueries(ctx context.Context, doc *goquery.Document, base *url.URL) []model.Issue {
	hasMediaQueries := false

	doc.Find(`link[rel="stylesheet"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return true
		}

		cssURL := resolveStylesheetURL(base, href)
		if cssURL == "" {
			return true
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cssURL, nil)
		if err != nil {
			return true
		}
		resp, err := h.cssClient.Do(req)
		if err != nil {
			return true
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return true
		}
		if strings.Contains(string(body), "@media") {
			hasMediaQueries = true
			return false
		}
		return true
	})

	if hasMediaQueries {
		return nil
	}

	return []model.Issue{{
		ID:          uuid.NewString(),
		Type:        model.IssueWarning,
		Severity:    3,
		Title:       "No Media Queries Found",
		Description: "样式表中未发现任何 media query，页面缺少针对不同屏幕尺寸的适配。",
		Device:      model.DeviceAll,
		Suggestion:  "使用 media query 为不同屏幕尺寸适配布局，例如 @media (max-width: 768px) { ... }",
		CreatedAt:   time.Now(),
	}}
}

// resolveStylesheetURL 解析样式表地址，支持协议相对和站内相对路径
func resolveStylesheetURL(base *url.URL, href string) string {
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// checkFixedWidths 检查内联样式里命中已知桌面宽度的固定像素宽度
func (h *Heuristic) checkFixedWidths(doc *goquery.Document) []model.Issue {
	var issues []model.Issue

	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		match := fixedWidthRe.FindStringSubmatch(style)
		if match == nil {
			return
		}

		known := false
		for _, w := range desktopOnlyWidths {
			if match[1] == w {
				known = true
				break
			}
		}
		if !known {
			return
		}

		issues = append(issues, model.Issue{
			ID:          uuid.NewString(),
			Type:        model.IssueWarning,
			Severity:    3,
			Title:       "Fixed Width Elements",
			Description: fmt.Sprintf("发现固定宽度元素：%s", truncate(style, 100)),
			Device:      model.DeviceMobile,
			Element:     truncate(outerHTML(s), 200),
			Suggestion:  "宽度请使用相对单位（%、vw、em、rem）替代固定像素值。",
			CreatedAt:   time.Now(),
		})
	})

	return issues
}

// checkSmallFonts 检查内联样式中小于 12px 的字号
func (h *Heuristic) checkSmallFonts(doc *goquery.Document) []model.Issue {
	var issues []model.Issue

	doc.Find("p, span, div, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		style, ok := s.Attr("style")
		if !ok {
			return
		}

		match := fontSizeRe.FindStringSubmatch(style)
		if match == nil {
			return
		}

		size, err := strconv.Atoi(match[1])
		if err != nil || size >= 12 {
			return
		}

		issues = append(issues, model.Issue{
			ID:          uuid.NewString(),
			Type:        model.IssueWarning,
			Severity:    2,
			Title:       "Small Font Size",
			Description: fmt.Sprintf("发现过小的字号（%dpx）。", size),
			Device:      model.DeviceMobile,
			Element:     truncate(outerHTML(s), 200),
			Suggestion:  "移动端请使用最小 14-16px 的字号以保证可读性。",
			CreatedAt:   time.Now(),
		})
	})

	return issues
}

func outerHTML(s *goquery.Selection) string {
	html, err := goquery.OuterHtml(s)
	if err != nil {
		return ""
	}
	return html
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
