package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"EsportsSchedule/internal/config"
	"EsportsSchedule/internal/model"
	"EsportsSchedule/internal/repository"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	report *model.CycleReport
	err    error
	calls  int
}

func (s *stubRunner) RunCycle(ctx context.Context) (*model.CycleReport, error) {
	s.calls++
	return s.report, s.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestRouter(t *testing.T, repo *repository.FileSnapshotRepository, runner CycleRunner, origins ...string) *gin.Engine {
	t.Helper()
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cfg := &config.ServerConfig{Mode: gin.TestMode, AllowOrigins: origins, PublicDir: t.TempDir()}
	return NewRouter(cfg, NewScheduleHandler(repo, runner, quietLogger()), quietLogger())
}

func newRepo(t *testing.T) *repository.FileSnapshotRepository {
	t.Helper()
	return repository.NewFileSnapshotRepository(filepath.Join(t.TempDir(), "schedule.json")).(*repository.FileSnapshotRepository)
}

func do(r http.Handler, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, newRepo(t), nil)

	w := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestRootRedirects(t *testing.T) {
	r := newTestRouter(t, newRepo(t), nil)

	w := do(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/api/schedule", w.Header().Get("Location"))
}

func TestGetSchedule_NotGeneratedYet(t *testing.T) {
	r := newTestRouter(t, newRepo(t), nil)

	w := do(r, http.MethodGet, "/api/schedule", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"schedule not generated yet"}`, w.Body.String())
}

func TestGetSchedule_ServesSnapshotVerbatim(t *testing.T) {
	repo := newRepo(t)
	require.NoError(t, repo.Save(context.Background(), &model.Snapshot{
		Club:      "Team Vitality",
		UpdatedAt: "2026-10-16T12:00:00Z",
	}))
	want, err := repo.LoadRaw(context.Background())
	require.NoError(t, err)

	r := newTestRouter(t, repo, nil)
	w := do(r, http.MethodGet, "/api/schedule", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"))
	assert.Equal(t, string(want), w.Body.String())
}

func TestRefreshSchedule(t *testing.T) {
	runner := &stubRunner{report: &model.CycleReport{
		RunID: "run-1",
		Games: []model.GameResult{{Game: "valorant", Fetched: 2, Kept: 1}},
		Snapshot: &model.Snapshot{
			Club:      "Team Vitality",
			UpdatedAt: "2026-10-16T12:00:00Z",
			Matches:   []*model.Match{{ID: "valorant-1"}},
		},
	}}
	r := newTestRouter(t, newRepo(t), runner)

	w := do(r, http.MethodPost, "/api/schedule/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, runner.calls)

	var body map[string]interface{}
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "run-1", body["run_id"])
	assert.Equal(t, float64(1), body["matches"])
	assert.Equal(t, "2026-10-16T12:00:00Z", body["updated_at"])
}

func TestRefreshSchedule_Failure(t *testing.T) {
	r := newTestRouter(t, newRepo(t), &stubRunner{err: errors.New("disk full")})

	w := do(r, http.MethodPost, "/api/schedule/refresh", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "disk full")
}

func TestRefreshSchedule_Disabled(t *testing.T) {
	r := newTestRouter(t, newRepo(t), nil)

	w := do(r, http.MethodPost, "/api/schedule/refresh", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(t, newRepo(t), nil)

	w := do(r, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	h := http.Header{}
	h.Set(RequestIDHeader, "abc-123")
	w = do(r, http.MethodGet, "/health", h)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	h := http.Header{}
	h.Set("Origin", "chrome-extension://abcdef")

	r := newTestRouter(t, newRepo(t), nil)
	w := do(r, http.MethodGet, "/health", h)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	r = newTestRouter(t, newRepo(t), nil, "chrome-extension://abcdef", "https://example.com")
	w = do(r, http.MethodGet, "/health", h)
	assert.Equal(t, "chrome-extension://abcdef", w.Header().Get("Access-Control-Allow-Origin"))

	h.Set("Origin", "https://evil.example")
	w = do(r, http.MethodGet, "/health", h)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPublicMount(t *testing.T) {
	cfg := &config.ServerConfig{Mode: gin.TestMode, AllowOrigins: []string{"*"}, PublicDir: t.TempDir()}
	require.NoError(t, os.WriteFile(filepath.Join(cfg.PublicDir, "app.js"), []byte("console.log(\"schedule\")"), 0o644))
	r := NewRouter(cfg, NewScheduleHandler(newRepo(t), nil, quietLogger()), quietLogger())

	w := do(r, http.MethodGet, "/public/app.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "schedule")
}
