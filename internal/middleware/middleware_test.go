package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"reelview-admin/internal/apperrors"
)

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGlobalErrorMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GlobalErrorMiddleware(zap.NewNop()))
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperrors.NotFoundError(errors.New("bundle hi.toml: parse error at line 3")))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("plain failure"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Not found"`)
	assert.NotContains(t, w.Body.String(), "hi.toml")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "plain failure")
}

func TestCorsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CorsMiddleware([]string{"https://admin.reelview.in/"}))
	r.GET("/api/locales", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/locales", nil)
	req.Header.Set("Origin", "https://admin.reelview.in")
	w := serve(r, req)
	assert.Equal(t, "https://admin.reelview.in", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/locales", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(r, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/locales", nil)
	w = serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
