package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"reelview-admin/internal/i18n"
	"reelview-admin/internal/middleware"
	"reelview-admin/internal/model"
	"reelview-admin/internal/service"
)

type memTranslationStore struct {
	rows   map[uint]model.Translation
	nextID uint
}

func (s *memTranslationStore) Upsert(_ context.Context, t *model.Translation) error {
	s.nextID++
	t.ID = s.nextID
	s.rows[t.ID] = *t
	return nil
}

func (s *memTranslationStore) Page(_ context.Context, _, _ string, _, _ int) ([]model.Translation, int64, error) {
	out := make([]model.Translation, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (s *memTranslationStore) Delete(_ context.Context, id uint) (*model.Translation, error) {
	t, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	delete(s.rows, id)
	return &t, nil
}

type memStatsStore struct {
	dates []string
}

func (s *memStatsStore) SaveDaily(context.Context, []model.LocaleDailyStat) error { return nil }

func (s *memStatsStore) ListByDate(_ context.Context, date string) ([]model.LocaleDailyStat, error) {
	s.dates = append(s.dates, date)
	return []model.LocaleDailyStat{{Date: date, Locale: "en", Outcome: "loaded", Count: 7}}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupAdminAPI(t *testing.T) (*gin.Engine, *memTranslationStore, *memStatsStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry, err := i18n.NewRegistry([]string{"en", "hi"}, "en")
	require.NoError(t, err)

	translations := &memTranslationStore{rows: make(map[uint]model.Translation)}
	stats := &memStatsStore{}
	logger := zap.NewNop()

	r := gin.New()
	r.Use(middleware.GlobalErrorMiddleware(logger))

	th := NewTranslationHandler(service.NewTranslationService(registry, translations, nil, logger))
	r.GET("/api/translations", th.ListTranslationsHandler)
	r.PUT("/api/translations", th.UpsertTranslationHandler)
	r.DELETE("/api/translations/:id", th.DeleteTranslationHandler)
	r.GET("/api/stats/locales", NewStatsHandler(service.NewStatsService(nil, stats, logger)).DailyStatsHandler)

	return r, translations, stats
}

func do(r *gin.Engine, method, target, body string) (int, envelope) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env
}

func TestUpsertTranslationHandler(t *testing.T) {
	r, store, _ := setupAdminAPI(t)

	tests := []struct {
		name    string
		body    string
		code    int
		message string
	}{
		{"missing key", `{"locale":"en","value":"Save"}`, http.StatusBadRequest, "key must be a dotted message key"},
		{"missing locale", `{"key":"Common.save","value":"Save"}`, http.StatusBadRequest, "locale is required"},
		{"missing value", `{"locale":"en","key":"Common.save"}`, http.StatusBadRequest, "value is required"},
		{"malformed json", `{"locale":`, http.StatusBadRequest, "Parameter verification failed"},
		{"key with spaces", `{"locale":"en","key":"Common save","value":"Save"}`, http.StatusBadRequest, "error.key_cannot_contain_spaces"},
		{"unsupported locale", `{"locale":"fr","key":"Common.save","value":"Enregistrer"}`, http.StatusUnprocessableEntity, "error.locale_unsupported"},
		{"ok", `{"locale":"hi","key":"Common.save","value":"सहेजें"}`, http.StatusOK, "translation saved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(r, http.MethodPut, "/api/translations", tt.body)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.message, env.Message)
			assert.Equal(t, tt.code == http.StatusOK, env.Success)
		})
	}

	require.Len(t, store.rows, 1)
	assert.Equal(t, "सहेजें", store.rows[1].Value)
}

func TestListTranslationsHandler(t *testing.T) {
	r, _, _ := setupAdminAPI(t)

	code, env := do(r, http.MethodGet, "/api/translations", "")
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Page int `json:"page"`
		Size int `json:"size"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Size)

	for _, q := range []string{"?size=500", "?page=0", "?page=abc"} {
		code, env = do(r, http.MethodGet, "/api/translations"+q, "")
		assert.Equal(t, http.StatusBadRequest, code, q)
		assert.Equal(t, "page must be >= 1 and size between 1 and 100", env.Message, q)
	}
}

func TestDeleteTranslationHandler(t *testing.T) {
	r, store, _ := setupAdminAPI(t)

	for _, id := range []string{"abc", "0", "-3"} {
		code, env := do(r, http.MethodDelete, "/api/translations/"+id, "")
		assert.Equal(t, http.StatusBadRequest, code, id)
		assert.Equal(t, "invalid id", env.Message, id)
	}

	code, env := do(r, http.MethodDelete, "/api/translations/42", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Not found", env.Message)

	store.rows[42] = model.Translation{Locale: "en", Key: "Common.save", Value: "Save"}
	code, _ = do(r, http.MethodDelete, "/api/translations/42", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, store.rows)
}

func TestDailyStatsHandler(t *testing.T) {
	r, _, stats := setupAdminAPI(t)

	code, env := do(r, http.MethodGet, "/api/stats/locales?date=14-03-2026", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "date must be YYYY-MM-DD", env.Message)

	code, env = do(r, http.MethodGet, "/api/stats/locales?date=2026-03-14", "")
	require.Equal(t, http.StatusOK, code)
	var rows []model.LocaleDailyStat
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].Count)

	today := time.Now().Format("2006-01-02")
	code, _ = do(r, http.MethodGet, "/api/stats/locales", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"2026-03-14", today}, stats.dates)
}
