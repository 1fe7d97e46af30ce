package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qs3c/respvision_go_server/internal/model"
)

type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

func (r *AnalysisRepository) Create(analysis *model.Analysis) error {
	return r.db.Create(analysis).Error
}

func (r *AnalysisRepository) GetByID(id string) (*model.Analysis, error) {
	var analysis model.Analysis
	err := r.db.Where("id = ?", id).First(&analysis).Error
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// Save 写入完整结果快照，已存在则整体覆盖
func (r *AnalysisRepository) Save(analysis *model.Analysis) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(analysis).Error
}

func (r *AnalysisRepository) UpdateStatus(id string, status string) error {
	return r.db.Model(&model.Analysis{}).Where("id = ?", id).Update("status", status).Error
}

func (r *AnalysisRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Analysis{}).Error
}

// ListRecent 按创建时间倒序获取最近的分析记录
func (r *AnalysisRepository) ListRecent(limit int) ([]*model.Analysis, error) {
	var analyses []*model.Analysis
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error
	return analyses, err
}
