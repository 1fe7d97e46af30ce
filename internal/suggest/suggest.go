package suggest

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qs3c/respvision_go_server/internal/model"
)

// Generator 按问题标题的关键词匹配整改模板，为每条 Issue 生成一条 Recommendation
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate 逐条生成建议，单条失败只跳过该条
func (g *Generator) Generate(issues []model.Issue) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(issues))
	for _, issue := range issues {
		rec, ok := buildRecommendation(issue)
		if !ok {
			continue
		}
		recs = append(recs, rec)
	}

	log.Printf("Suggest: generated %d recommendations for %d issues", len(recs), len(issues))
	return recs
}

func buildRecommendation(issue model.Issue) (rec model.Recommendation, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Suggest: failed to build recommendation for %q: %v", issue.Title, r)
			ok = false
		}
	}()

	tmpl := matchTemplate(issue.Title)

	title := issue.Title
	if title == "" {
		title = "未命名问题"
	}
	description := issue.Description
	if description == "" {
		description = "检测到的问题"
	}

	return model.Recommendation{
		ID:            uuid.NewString(),
		Category:      tmpl.category,
		Title:         fmt.Sprintf("修复：%s", title),
		Description:   fmt.Sprintf("解决方案：%s", description),
		CodeExample:   tmpl.codeExample,
		Before:        tmpl.before,
		After:         tmpl.after,
		Documentation: tmpl.documentation,
		Priority:      priorityFromSeverity(issue.Severity),
		CreatedAt:     time.Now(),
	}, true
}

// matchTemplate 按模板顺序做小写关键词匹配，无命中时用兜底模板
func matchTemplate(title string) template {
	lower := strings.ToLower(title)
	for _, tmpl := range templates {
		for _, kw := range tmpl.keywords {
			if strings.Contains(lower, kw) {
				return tmpl
			}
		}
	}
	return genericTemplate
}

// priorityFromSeverity 严重度 1 最高：1-2 高优先级，3-4 中，5 低
func priorityFromSeverity(severity int) string {
	switch {
	case severity <= 2:
		return model.PriorityHigh
	case severity <= 4:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
