package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/respvision_go_server/internal/model"
)

type RecommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

func (r *RecommendationRepository) Create(rec *model.Recommendation) error {
	return r.db.Create(rec).Error
}

// CreateBatch 批量写入建议记录
func (r *RecommendationRepository) CreateBatch(recs []model.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	return r.db.Create(&recs).Error
}

// ListByAnalysisID 获取某次分析的全部建议，保持生成顺序
func (r *RecommendationRepository) ListByAnalysisID(analysisID string) ([]model.Recommendation, error) {
	var recs []model.Recommendation
	err := r.db.Where("analysis_id = ?", analysisID).
		Order("created_at ASC").
		Find(&recs).Error
	return recs, err
}

func (r *RecommendationRepository) DeleteByAnalysisID(analysisID string) error {
	return r.db.Where("analysis_id = ?", analysisID).Delete(&model.Recommendation{}).Error
}
