package model

import (
	"time"
)

// Recommendation 分类
const (
	CategoryCSS           = "css"
	CategoryHTML          = "html"
	CategoryAccessibility = "accessibility"
	CategoryPerformance   = "performance"
	CategoryUX            = "ux"
)

// Recommendation 优先级
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation 针对单条 Issue 生成的整改建议
type Recommendation struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	AnalysisID    string    `gorm:"size:36;not null;index" json:"analysis_id,omitempty"`
	Category      string    `gorm:"size:20;not null" json:"category"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	CodeExample   string    `gorm:"type:text" json:"code_example,omitempty"`
	Before        string    `gorm:"type:text" json:"before,omitempty"`
	After         string    `gorm:"type:text" json:"after,omitempty"`
	Documentation string    `gorm:"size:500" json:"documentation,omitempty"`
	Priority      string    `gorm:"size:10;not null" json:"priority"` // high, medium, low
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
