package model

import (
	"time"
)

// Issue 类型
const (
	IssueCritical = "critical"
	IssueWarning  = "warning"
	IssueInfo     = "info"
)

// Issue 一条检测出的响应式缺陷，启发式或视觉模型产出，创建后不再修改
type Issue struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	AnalysisID  string    `gorm:"size:36;not null;index" json:"analysis_id,omitempty"`
	Type        string    `gorm:"size:20;not null" json:"type"` // critical, warning, info
	Severity    int       `gorm:"not null" json:"severity"`     // 1-5，1 最严重
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Device      string    `gorm:"size:20;not null" json:"device"` // 设备档位或 all
	Element     string    `gorm:"type:text" json:"element,omitempty"`
	Suggestion  string    `gorm:"type:text" json:"suggestion,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

func (Issue) TableName() string {
	return "issues"
}
