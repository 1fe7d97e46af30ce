package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/respvision_go_server/internal/model"
	"github.com/qs3c/respvision_go_server/internal/pkg/jobstore"
	"github.com/qs3c/respvision_go_server/internal/repository"
	"github.com/qs3c/respvision_go_server/internal/service"
	"github.com/qs3c/respvision_go_server/internal/testutil"
)

// noopProcessor 只标记任务完成，不执行真实流水线
type noopProcessor struct {
	store *jobstore.Store
	done  chan struct{}
}

func (p *noopProcessor) Process(_ context.Context, analysis *model.Analysis) {
	analysis.Status = model.StatusCompleted
	analysis.Progress = 100
	p.store.Put(analysis)
	if p.done != nil {
		close(p.done)
	}
}

type handlerEnv struct {
	handler   *AnalysisHandler
	store     *jobstore.Store
	processor *noopProcessor
	db        *gorm.DB
}

func setupAnalysisHandler(t *testing.T) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	store := jobstore.New()
	processor := &noopProcessor{store: store, done: make(chan struct{})}
	svc := service.NewAnalysisService(processor, store,
		repository.NewAnalysisRepository(db),
		repository.NewScreenshotRepository(db))

	return &handlerEnv{
		handler:   NewAnalysisHandler(svc),
		store:     store,
		processor: processor,
		db:        db,
	}
}

func (e *handlerEnv) router() *gin.Engine {
	engine := gin.New()
	api := engine.Group("/api")
	api.POST("/analyze", e.handler.Analyze)
	api.GET("/analysis/:id", e.handler.Get)
	api.GET("/screenshots/:id", e.handler.Screenshots)
	api.GET("/history", e.handler.History)
	api.GET("/health", e.handler.Health)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAnalyze_CreatesTask(t *testing.T) {
	env := setupAnalysisHandler(t)

	w := doRequest(t, env.router(), http.MethodPost, "/api/analyze",
		gin.H{"url": "https://example.com"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AnalysisID string `json:"analysis_id"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AnalysisID)
	assert.Equal(t, model.StatusPending, resp.Status)

	select {
	case <-env.processor.done:
	case <-time.After(time.Second):
		t.Fatal("processor was not invoked")
	}
}

func TestAnalyze_InvalidURL(t *testing.T) {
	env := setupAnalysisHandler(t)

	w := doRequest(t, env.router(), http.MethodPost, "/api/analyze",
		gin.H{"url": "not-a-url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, env.router(), http.MethodPost, "/api/analyze", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAnalysis_InMemory(t *testing.T) {
	env := setupAnalysisHandler(t)

	env.store.Put(&model.Analysis{
		ID:       "mem-1",
		URL:      "https://example.com",
		Status:   model.StatusAnalyzing,
		Progress: 50,
	})

	w := doRequest(t, env.router(), http.MethodGet, "/api/analysis/mem-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.Analysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, model.StatusAnalyzing, resp.Status)
	assert.Equal(t, 50, resp.Progress)
}

func TestGetAnalysis_NotFound(t *testing.T) {
	env := setupAnalysisHandler(t)

	w := doRequest(t, env.router(), http.MethodGet, "/api/analysis/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScreenshots_ReturnsList(t *testing.T) {
	env := setupAnalysisHandler(t)

	persisted := testutil.TestAnalysis(t, env.db, testutil.WithStatus(model.StatusCompleted))
	shot := testutil.TestScreenshot(t, env.db, persisted.ID, model.DeviceMobile)

	w := doRequest(t, env.router(), http.MethodGet, "/api/screenshots/"+persisted.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Screenshots []struct {
			ID     string `json:"id"`
			Device string `json:"device"`
		} `json:"screenshots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Screenshots, 1)
	assert.Equal(t, shot.ID, resp.Screenshots[0].ID)
	assert.Equal(t, model.DeviceMobile, resp.Screenshots[0].Device)
}

func TestScreenshots_NotFound(t *testing.T) {
	env := setupAnalysisHandler(t)

	w := doRequest(t, env.router(), http.MethodGet, "/api/screenshots/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistory_LimitApplied(t *testing.T) {
	env := setupAnalysisHandler(t)

	for i := 0; i < 4; i++ {
		testutil.TestAnalysis(t, env.db,
			testutil.WithStatus(model.StatusCompleted),
			testutil.WithCreatedAt(time.Now().Add(time.Duration(-i)*time.Minute)))
	}

	w := doRequest(t, env.router(), http.MethodGet, "/api/history?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Analyses []model.Analysis `json:"analyses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Analyses, 2)
}

func TestHealth(t *testing.T) {
	env := setupAnalysisHandler(t)

	env.store.Put(&model.Analysis{ID: "a1", Status: model.StatusAnalyzing})

	w := doRequest(t, env.router(), http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status         string `json:"status"`
		ActiveAnalyses int    `json:"active_analyses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 1, resp.ActiveAnalyses)
}
