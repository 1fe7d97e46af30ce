package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/respvision_go_server/internal/model"
)

type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(issue *model.Issue) error {
	return r.db.Create(issue).Error
}

// CreateBatch 批量写入问题记录
func (r *IssueRepository) CreateBatch(issues []model.Issue) error {
	if len(issues) == 0 {
		return nil
	}
	return r.db.Create(&issues).Error
}

// ListByAnalysisID 获取某次分析的全部问题
func (r *IssueRepository) ListByAnalysisID(analysisID string) ([]model.Issue, error) {
	var issues []model.Issue
	err := r.db.Where("analysis_id = ?", analysisID).
		Order("severity ASC").
		Find(&issues).Error
	return issues, err
}

func (r *IssueRepository) DeleteByAnalysisID(analysisID string) error {
	return r.db.Where("analysis_id = ?", analysisID).Delete(&model.Issue{}).Error
}
