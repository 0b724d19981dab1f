package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/weiawesome/neurolab/neuro-api/internal/cache"
	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
	"github.com/weiawesome/neurolab/neuro-api/internal/repository"
	"github.com/weiawesome/neurolab/neuro-api/internal/service"
	"github.com/weiawesome/neurolab/pkg/database"
	"github.com/weiawesome/neurolab/pkg/log"
	"github.com/weiawesome/neurolab/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, chatMode string) *gin.Engine {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.New(&database.Config{
		Driver:   "sqlite",
		FilePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.AutoMigrate(db, repository.Models()...))
	require.NoError(t, repository.Seed(context.Background(), db, time.Now()))

	chatSvc, err := service.NewChatService(repository.NewGormChatRepository(db), chatMode, 0)
	require.NoError(t, err)

	h := NewHandler(
		chatSvc,
		service.NewDashboardService(
			repository.NewGormAnalyticsRepository(db),
			cache.NewMemoryAnalyticsCache("test"),
			time.Minute,
			0,
		),
		service.NewProfileService(repository.NewGormProfileRepository(db)),
		service.NewAccountService(repository.NewGormAccountRepository(db), bcrypt.MinCost),
		service.NewTestService(repository.NewGormTestResultRepository(db)),
		repository.DefaultProfileID,
	)

	r := gin.New()
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(log.GinMiddleware(zerolog.New(io.Discard)))
	h.RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, service.ModeChunks)

	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestChat(t *testing.T) {
	r := newTestRouter(t, service.ModeChunks)

	t.Run("chunks", func(t *testing.T) {
		w := do(t, r, http.MethodPost, "/api/chat", domain.ChatRequest{Message: "Tell me about EEG"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp domain.ChatResponse
		decode(t, w, &resp)
		assert.True(t, resp.Success)
		assert.Len(t, resp.ResponseChunks, 5)
		assert.NotEmpty(t, resp.Timestamp)
	})

	for name, body := range map[string]interface{}{
		"blank message":   domain.ChatRequest{Message: "  "},
		"missing message": map[string]string{},
		"malformed json":  "{",
	} {
		t.Run(name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/chat", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"success":false,"message":"No message provided"}`, w.Body.String())
		})
	}
}

func TestChat_SingleMode(t *testing.T) {
	r := newTestRouter(t, service.ModeSingle)

	w := do(t, r, http.MethodPost, "/api/chat", domain.ChatRequest{Message: "stress"})
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]interface{}
	decode(t, w, &raw)
	assert.Equal(t, true, raw["success"])
	assert.Contains(t, raw["response"], "Stress is your body's reaction")
	assert.NotContains(t, raw, "responseChunks")
}

func TestChatHistory(t *testing.T) {
	r := newTestRouter(t, service.ModeChunks)

	w := do(t, r, http.MethodGet, "/api/chat/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []domain.ChatHistorySummary
	decode(t, w, &summaries)
	require.Len(t, summaries, 3)
	assert.Equal(t, "chat-1", summaries[0].ID)

	w = do(t, r, http.MethodGet, "/api/chat/history/chat-2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail domain.ChatDetail
	decode(t, w, &detail)
	assert.Equal(t, "Managing stress", detail.Title)
	assert.Len(t, detail.Messages, 2)

	w = do(t, r, http.MethodGet, "/api/chat/history/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalytics(t *testing.T) {
	r := newTestRouter(t, service.ModeChunks)

	w := do(t, r, http.MethodGet, "/api/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap domain.AnalyticsSnapshot
	decode(t, w, &snap)
	assert.Equal(t, 72, snap.AttentionScore)
	assert.Equal(t, 85, snap.Confidence)
	assert.Equal(t, 10, snap.StateDistribution.Distracted)
	assert.Len(t, snap.TimeSeriesData, 6)
}

func TestHomeAndLiveData(t *testing.T) {
	r := newTestRouter(t, service.ModeChunks)

	w := do(t, r, http.MethodGet, "/api/home", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var home domain.HomeData
	decode(t, w, &home)
	assert.Equal(t, 100, home.Analyses.Total)
	assert.Len(t, home.LiveData, service.LiveWindow)

	w = do(t, r, http.MethodGet, "/api/brain/live", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var series []domain.BrainData
	decode(t, w, &series)
	require.Len(t, series, service.LiveWindow)
	assert.Equal(t, home.LiveData[1:], series[:service.LiveWindow-1])
}

func TestTests(t *testing.T) {
	r := newTestRouter(t, service.ModeChunks)

	w := do(t, r, http.MethodGet, "/api/tests?q=relax", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var results []domain.TestResult
	decode(t, w, &results)
	require.Len(t, results, 2)
	assert.Equal(t, "Relaxed", results[0].Label)

	w = do(t, r, http.MethodGet, "/api/tests?q=zzz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/tests/test-6", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/tests/test-7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSignup(t *testing.T) {
	r := newTestRouter(t, service.ModeChunks)

	body := domain.SignupRequest{FullName: "Sam Lee", Email: "sam@example.com", Password: "secret1"}
	w := do(t, r, http.MethodPost, "/api/signup", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp domain.SignupResponse
	decode(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, MsgUserCreated, resp.Message)
	assert.True(t, strings.HasPrefix(resp.User.ID, "user_"))
	assert.Equal(t, "sam@example.com", resp.User.Email)

	w = do(t, r, http.MethodPost, "/api/signup", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/api/signup", domain.SignupRequest{FullName: "A", Email: "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Please provide all required fields"}`, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/signup", domain.SignupRequest{FullName: "A", Email: "a@b.c", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfile(t *testing.T) {
	r := newTestRouter(t, service.ModeChunks)

	w := do(t, r, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile domain.UserProfile
	decode(t, w, &profile)
	assert.Equal(t, repository.DefaultProfileID, profile.ID)

	w = do(t, r, http.MethodPost, "/api/profile/update", map[string]string{"fullName": "Alex M."})
	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.UpdateProfileResponse
	decode(t, w, &resp)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Alex M.", resp.Profile.FullName)

	w = do(t, r, http.MethodPost, "/api/profile/update", map[string]string{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Please enter a valid email address"}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set(middleware.UserIDHeader, "someone-else")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, service.ModeChunks)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
