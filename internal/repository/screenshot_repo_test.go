package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/respvision_go_server/internal/model"
	"github.com/qs3c/respvision_go_server/internal/testutil"
)

func TestScreenshotRepository_CreateBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewScreenshotRepository(db)
	analysis := testutil.TestAnalysis(t, db)

	shots := []model.Screenshot{
		{ID: uuid.NewString(), AnalysisID: analysis.ID, Device: model.DeviceMobile, Resolution: "375x667", URL: "/screenshots/a.png", FullPageURL: "/screenshots/a_full.png"},
		{ID: uuid.NewString(), AnalysisID: analysis.ID, Device: model.DeviceTablet, Resolution: "768x1024", URL: "/screenshots/b.png", FullPageURL: "/screenshots/b_full.png"},
	}

	err := repo.CreateBatch(shots)
	require.NoError(t, err)

	found, err := repo.ListByAnalysisID(analysis.ID)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestScreenshotRepository_CreateBatch_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewScreenshotRepository(db)

	err := repo.CreateBatch(nil)
	assert.NoError(t, err)
}

func TestScreenshotRepository_ListByAnalysisID_OnlyOwn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewScreenshotRepository(db)
	a1 := testutil.TestAnalysis(t, db)
	a2 := testutil.TestAnalysis(t, db)

	testutil.TestScreenshot(t, db, a1.ID, model.DeviceMobile)
	testutil.TestScreenshot(t, db, a1.ID, model.DeviceDesktop)
	testutil.TestScreenshot(t, db, a2.ID, model.DeviceMobile)

	found, err := repo.ListByAnalysisID(a1.ID)
	require.NoError(t, err)
	assert.Len(t, found, 2)
	for _, s := range found {
		assert.Equal(t, a1.ID, s.AnalysisID)
	}
}

func TestIssueRepository_CreateBatchAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewIssueRepository(db)
	analysis := testutil.TestAnalysis(t, db)

	issues := []model.Issue{
		{ID: uuid.NewString(), AnalysisID: analysis.ID, Type: model.IssueWarning, Severity: 3, Title: "Fixed Width Elements", Description: "d", Device: model.DeviceMobile},
		{ID: uuid.NewString(), AnalysisID: analysis.ID, Type: model.IssueCritical, Severity: 5, Title: "Viewport Meta Tag Missing", Description: "d", Device: model.DeviceMobile},
	}

	err := repo.CreateBatch(issues)
	require.NoError(t, err)

	found, err := repo.ListByAnalysisID(analysis.ID)
	require.NoError(t, err)
	require.Len(t, found, 2)
	// 按严重度升序排列
	assert.Equal(t, 3, found[0].Severity)
	assert.Equal(t, 5, found[1].Severity)
}

func TestRecommendationRepository_CreateBatchAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewRecommendationRepository(db)
	analysis := testutil.TestAnalysis(t, db)

	recs := []model.Recommendation{
		{ID: uuid.NewString(), AnalysisID: analysis.ID, Category: model.CategoryHTML, Title: "Fix: Viewport", Description: "d", Priority: model.PriorityLow},
		{ID: uuid.NewString(), AnalysisID: analysis.ID, Category: model.CategoryCSS, Title: "Fix: Media Queries", Description: "d", Priority: model.PriorityMedium},
	}

	err := repo.CreateBatch(recs)
	require.NoError(t, err)

	found, err := repo.ListByAnalysisID(analysis.ID)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestRepositories_DeleteByAnalysisID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	analysis := testutil.TestAnalysis(t, db)
	testutil.TestScreenshot(t, db, analysis.ID, model.DeviceMobile)
	testutil.TestIssue(t, db, analysis.ID, model.IssueWarning, 3)
	testutil.TestRecommendation(t, db, analysis.ID)

	require.NoError(t, NewScreenshotRepository(db).DeleteByAnalysisID(analysis.ID))
	require.NoError(t, NewIssueRepository(db).DeleteByAnalysisID(analysis.ID))
	require.NoError(t, NewRecommendationRepository(db).DeleteByAnalysisID(analysis.ID))

	shots, _ := NewScreenshotRepository(db).ListByAnalysisID(analysis.ID)
	issues, _ := NewIssueRepository(db).ListByAnalysisID(analysis.ID)
	recs, _ := NewRecommendationRepository(db).ListByAnalysisID(analysis.ID)
	assert.Empty(t, shots)
	assert.Empty(t, issues)
	assert.Empty(t, recs)
}
