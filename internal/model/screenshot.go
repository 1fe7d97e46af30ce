package model

import (
	"time"
)

// 截图设备档位名
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	Device4K      = "4k"
	DeviceAll     = "all" // Issue 专用哨兵值，表示所有设备
)

// Screenshot 单张截图，捕获后不可变
type Screenshot struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	AnalysisID  string    `gorm:"size:36;not null;index" json:"analysis_id,omitempty"`
	Device      string    `gorm:"size:20;not null" json:"device"`
	Resolution  string    `gorm:"size:20;not null" json:"resolution"` // 如 375x667
	URL         string    `gorm:"size:500;not null" json:"url"`
	FullPageURL string    `gorm:"size:500;not null" json:"full_page_url"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

func (Screenshot) TableName() string {
	return "screenshots"
}
