package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/respvision_go_server/internal/model"
	"github.com/qs3c/respvision_go_server/internal/model/dto"
	"github.com/qs3c/respvision_go_server/internal/pkg/jobstore"
	"github.com/qs3c/respvision_go_server/internal/repository"
	"github.com/qs3c/respvision_go_server/internal/testutil"
)

// fakeProcessor 记录被调用的任务并模拟完成
type fakeProcessor struct {
	mu        sync.Mutex
	processed []*model.Analysis
	done      chan struct{}
	store     *jobstore.Store
}

func (f *fakeProcessor) Process(_ context.Context, analysis *model.Analysis) {
	f.mu.Lock()
	f.processed = append(f.processed, analysis)
	f.mu.Unlock()

	if f.store != nil {
		analysis.Status = model.StatusCompleted
		analysis.Progress = 100
		f.store.Put(analysis)
	}
	if f.done != nil {
		close(f.done)
	}
}

type serviceEnv struct {
	service   *AnalysisService
	processor *fakeProcessor
	store     *jobstore.Store
	repo      *repository.AnalysisRepository
	shotRepo  *repository.ScreenshotRepository
	db        *gorm.DB
}

func setupAnalysisService(t *testing.T) *serviceEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	store := jobstore.New()
	processor := &fakeProcessor{store: store, done: make(chan struct{})}
	repo := repository.NewAnalysisRepository(db)
	shotRepo := repository.NewScreenshotRepository(db)

	return &serviceEnv{
		service:   NewAnalysisService(processor, store, repo, shotRepo),
		processor: processor,
		store:     store,
		repo:      repo,
		shotRepo:  shotRepo,
		db:        db,
	}
}

func TestStart_CreatesPendingAnalysis(t *testing.T) {
	env := setupAnalysisService(t)

	resp, err := env.service.Start(context.Background(), &dto.AnalyzeRequest{URL: "https://example.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AnalysisID)
	assert.Equal(t, model.StatusPending, resp.Status)

	select {
	case <-env.processor.done:
	case <-time.After(time.Second):
		t.Fatal("processor was not invoked")
	}

	got, err := env.service.Get(resp.AnalysisID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", got.URL)
}

func TestGet_PrefersInMemoryState(t *testing.T) {
	env := setupAnalysisService(t)

	// 数据库里是旧快照，状态表里是进行中的新状态
	persisted := testutil.TestAnalysis(t, env.db,
		testutil.WithStatus(model.StatusCompleted))
	inFlight := persisted.Clone()
	inFlight.Status = model.StatusAnalyzing
	inFlight.Progress = 50
	env.store.Put(inFlight)

	got, err := env.service.Get(persisted.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAnalyzing, got.Status)
	assert.Equal(t, 50, got.Progress)
}

func TestGet_FallsBackToDatabase(t *testing.T) {
	env := setupAnalysisService(t)

	persisted := testutil.TestAnalysis(t, env.db,
		testutil.WithStatus(model.StatusCompleted))

	got, err := env.service.Get(persisted.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)
}

func TestGet_NotFound(t *testing.T) {
	env := setupAnalysisService(t)

	_, err := env.service.Get("no-such-id")
	assert.ErrorIs(t, err, ErrAnalysisNotFound)
}

func TestGetScreenshots_FromSnapshot(t *testing.T) {
	env := setupAnalysisService(t)

	analysis := &model.Analysis{
		ID:     "snap-1",
		URL:    "https://example.com",
		Status: model.StatusCompleted,
		Screenshots: model.ScreenshotList{
			{Device: model.DeviceMobile, Resolution: "375x667", URL: "/screenshots/m.png"},
		},
	}
	env.store.Put(analysis)

	shots, err := env.service.GetScreenshots("snap-1")
	require.NoError(t, err)
	require.Len(t, shots, 1)
	assert.Equal(t, model.DeviceMobile, shots[0].Device)
}

func TestGetScreenshots_FallsBackToChildTable(t *testing.T) {
	env := setupAnalysisService(t)

	persisted := testutil.TestAnalysis(t, env.db,
		testutil.WithStatus(model.StatusCompleted))
	testutil.TestScreenshot(t, env.db, persisted.ID, model.DeviceTablet)

	shots, err := env.service.GetScreenshots(persisted.ID)
	require.NoError(t, err)
	require.Len(t, shots, 1)
	assert.Equal(t, model.DeviceTablet, shots[0].Device)
}

func TestGetScreenshots_NotFound(t *testing.T) {
	env := setupAnalysisService(t)

	_, err := env.service.GetScreenshots("no-such-id")
	assert.ErrorIs(t, err, ErrAnalysisNotFound)
}

func TestHistory_DefaultLimit(t *testing.T) {
	env := setupAnalysisService(t)

	for i := 0; i < 12; i++ {
		testutil.TestAnalysis(t, env.db,
			testutil.WithStatus(model.StatusCompleted),
			testutil.WithCreatedAt(time.Now().Add(time.Duration(-i)*time.Hour)))
	}

	items, err := env.service.History(0)
	require.NoError(t, err)
	assert.Len(t, items, 10)

	items, err = env.service.History(5)
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestActiveCount(t *testing.T) {
	env := setupAnalysisService(t)

	assert.Equal(t, 0, env.service.ActiveCount())

	env.store.Put(&model.Analysis{ID: "a1", Status: model.StatusAnalyzing})
	env.store.Put(&model.Analysis{ID: "a2", Status: model.StatusPending})

	assert.Equal(t, 2, env.service.ActiveCount())
}
