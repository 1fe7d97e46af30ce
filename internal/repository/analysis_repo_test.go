package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/respvision_go_server/internal/model"
	"github.com/qs3c/respvision_go_server/internal/testutil"
)

func TestAnalysisRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewAnalysisRepository(db)

	analysis := &model.Analysis{
		ID:     uuid.NewString(),
		URL:    "https://example.com",
		Status: model.StatusPending,
	}

	err := repo.Create(analysis)
	require.NoError(t, err)

	found, err := repo.GetByID(analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", found.URL)
	assert.Equal(t, model.StatusPending, found.Status)
}

func TestAnalysisRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewAnalysisRepository(db)

	_, err := repo.GetByID("no-such-id")
	assert.Error(t, err)
}

func TestAnalysisRepository_Save_Upsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewAnalysisRepository(db)
	analysis := testutil.TestAnalysis(t, db, testutil.WithStatus(model.StatusAnalyzing))

	analysis.Status = model.StatusCompleted
	analysis.Progress = 100
	analysis.Summary = "analysis finished"
	analysis.Score = &model.Score{Mobile: 90, Tablet: 95, Desktop: 100, Overall: 92}
	analysis.Issues = model.IssueList{
		{ID: uuid.NewString(), Type: model.IssueWarning, Severity: 3, Title: "No Media Queries Found", Description: "desc", Device: model.DeviceAll},
	}

	err := repo.Save(analysis)
	require.NoError(t, err)

	found, err := repo.GetByID(analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, found.Status)
	assert.Equal(t, 100, found.Progress)
	assert.Equal(t, "analysis finished", found.Summary)
	require.NotNil(t, found.Score)
	assert.Equal(t, 92, found.Score.Overall)
	require.Len(t, found.Issues, 1)
	assert.Equal(t, "No Media Queries Found", found.Issues[0].Title)
}

func TestAnalysisRepository_Save_New(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewAnalysisRepository(db)

	analysis := &model.Analysis{
		ID:     uuid.NewString(),
		URL:    "https://example.com",
		Status: model.StatusCompleted,
	}

	// Save 对不存在的记录等价于 Create
	err := repo.Save(analysis)
	require.NoError(t, err)

	found, err := repo.GetByID(analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, found.Status)
}

func TestAnalysisRepository_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewAnalysisRepository(db)
	analysis := testutil.TestAnalysis(t, db, testutil.WithStatus(model.StatusPending))

	err := repo.UpdateStatus(analysis.ID, model.StatusAnalyzing)
	require.NoError(t, err)

	found, err := repo.GetByID(analysis.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAnalyzing, found.Status)
}

func TestAnalysisRepository_ListRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewAnalysisRepository(db)

	base := time.Now().Add(-1 * time.Hour)
	oldest := testutil.TestAnalysis(t, db, testutil.WithCreatedAt(base))
	middle := testutil.TestAnalysis(t, db, testutil.WithCreatedAt(base.Add(10*time.Minute)))
	newest := testutil.TestAnalysis(t, db, testutil.WithCreatedAt(base.Add(20*time.Minute)))

	analyses, err := repo.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, analyses, 3)

	// 新的在前
	assert.Equal(t, newest.ID, analyses[0].ID)
	assert.Equal(t, middle.ID, analyses[1].ID)
	assert.Equal(t, oldest.ID, analyses[2].ID)
}

func TestAnalysisRepository_ListRecent_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewAnalysisRepository(db)

	for i := 0; i < 5; i++ {
		testutil.TestAnalysis(t, db)
	}

	analyses, err := repo.ListRecent(3)
	require.NoError(t, err)
	assert.Len(t, analyses, 3)
}
