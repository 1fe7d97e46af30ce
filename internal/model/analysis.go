package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// 分析任务状态
const (
	StatusPending   = "pending"
	StatusAnalyzing = "analyzing"
	StatusCompleted = "completed"
	StatusError     = "error"
)

// Score 四项响应式评分，作为 JSON 字段持久化
type Score struct {
	Mobile  int `json:"mobile"`
	Tablet  int `json:"tablet"`
	Desktop int `json:"desktop"`
	Overall int `json:"overall"`
}

func (s Score) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Score) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, s)
}

// ScreenshotList 用于 JSON 数组字段
type ScreenshotList []Screenshot

func (l ScreenshotList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *ScreenshotList) Scan(value interface{}) error {
	return scanJSONList(value, l)
}

// IssueList 用于 JSON 数组字段
type IssueList []Issue

func (l IssueList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *IssueList) Scan(value interface{}) error {
	return scanJSONList(value, l)
}

// RecommendationList 用于 JSON 数组字段
type RecommendationList []Recommendation

func (l RecommendationList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *RecommendationList) Scan(value interface{}) error {
	return scanJSONList(value, l)
}

func scanJSONList(value interface{}, dst interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return nil
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, dst)
}

// Analysis 一次响应式分析任务，嵌套结果以 JSON 快照落库
type Analysis struct {
	ID              string             `gorm:"primaryKey;size:36" json:"id"`
	URL             string             `gorm:"size:500;not null;index" json:"url"`
	Status          string             `gorm:"size:20;default:pending;index" json:"status"` // pending, analyzing, completed, error
	Progress        int                `gorm:"default:0" json:"progress"`
	Message         string             `gorm:"type:text" json:"message,omitempty"`
	Screenshots     ScreenshotList     `gorm:"type:json" json:"screenshots"`
	Issues          IssueList          `gorm:"type:json" json:"issues"`
	Recommendations RecommendationList `gorm:"type:json" json:"recommendations"`
	Score           *Score             `gorm:"type:json" json:"score,omitempty"`
	Summary         string             `gorm:"type:text" json:"summary,omitempty"`
	Error           string             `gorm:"type:text" json:"error,omitempty"`
	CreatedAt       time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}

// Clone 返回深拷贝，供内存状态表对外提供快照
func (a *Analysis) Clone() *Analysis {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Screenshots = append(ScreenshotList(nil), a.Screenshots...)
	cp.Issues = append(IssueList(nil), a.Issues...)
	cp.Recommendations = append(RecommendationList(nil), a.Recommendations...)
	if a.Score != nil {
		score := *a.Score
		cp.Score = &score
	}
	return &cp
}
