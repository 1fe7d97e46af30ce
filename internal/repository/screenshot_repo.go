package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/respvision_go_server/internal/model"
)

type ScreenshotRepository struct {
	db *gorm.DB
}

func NewScreenshotRepository(db *gorm.DB) *ScreenshotRepository {
	return &ScreenshotRepository{db: db}
}

func (r *ScreenshotRepository) Create(screenshot *model.Screenshot) error {
	return r.db.Create(screenshot).Error
}

// CreateBatch 批量写入截图记录
func (r *ScreenshotRepository) CreateBatch(screenshots []model.Screenshot) error {
	if len(screenshots) == 0 {
		return nil
	}
	return r.db.Create(&screenshots).Error
}

// ListByAnalysisID 获取某次分析的全部截图
func (r *ScreenshotRepository) ListByAnalysisID(analysisID string) ([]model.Screenshot, error) {
	var screenshots []model.Screenshot
	err := r.db.Where("analysis_id = ?", analysisID).
		Order("created_at ASC").
		Find(&screenshots).Error
	return screenshots, err
}

func (r *ScreenshotRepository) DeleteByAnalysisID(analysisID string) error {
	return r.db.Where("analysis_id = ?", analysisID).Delete(&model.Screenshot{}).Error
}
