package router

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reelview-admin/internal/i18n"
	"reelview-admin/internal/routing"
	"reelview-admin/internal/service"
	"reelview-admin/locales"
)

const cookieName = "REELVIEW_LOCALE"

type pageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Page     string            `json:"page"`
		Locale   string            `json:"locale"`
		Title    string            `json:"title"`
		Messages map[string]string `json:"messages"`
	} `json:"data"`
}

func newEngine(t *testing.T, fsys fs.FS, opts routing.Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry, err := i18n.NewRegistry([]string{"en", "hi"}, "en")
	require.NoError(t, err)
	policy, err := routing.NewPolicy(registry, opts)
	require.NoError(t, err)

	logger := zap.NewNop()
	loader := i18n.NewFileLoader(fsys, registry)

	return New(Deps{
		Logger:   logger,
		Registry: registry,
		Policy:   policy,
		Hints:    routing.NewHintMatcher(registry, cookieName),
		Resolver: i18n.NewResolver(registry, loader, logger),
		Health:   service.NewBundleHealthService(registry, loader, logger),
	})
}

func get(e *gin.Engine, target string, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) pageBody {
	t.Helper()
	var body pageBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func localeCookie(w *httptest.ResponseRecorder) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c.Value
		}
	}
	return ""
}

func TestAsNeededRouting(t *testing.T) {
	e := newEngine(t, locales.FS, routing.Options{Mode: routing.ModeAsNeeded})

	w := get(e, "/about", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodePage(t, w)
	assert.Equal(t, "about", body.Data.Page)
	assert.Equal(t, "en", body.Data.Locale)
	assert.Equal(t, "About ReelView", body.Data.Title)
	assert.Equal(t, "Dashboard", body.Data.Messages["NavItems.dashboard"])

	w = get(e, "/hi/about", "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decodePage(t, w)
	assert.Equal(t, "hi", body.Data.Locale)
	assert.Equal(t, "परिचय", body.Data.Messages["NavItems.about"])
	assert.Equal(t, "hi", localeCookie(w))

	w = get(e, "/en/about?tab=team", "")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/about?tab=team", w.Header().Get("Location"))

	w = get(e, "/fr/about", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(e, "/hi", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dashboard", decodePage(t, w).Data.Page)
}

func TestAsNeededIgnoresCookieForUnprefixedPaths(t *testing.T) {
	e := newEngine(t, locales.FS, routing.Options{Mode: routing.ModeAsNeeded})

	w := get(e, "/kyc", "hi")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "en", decodePage(t, w).Data.Locale)
}

func TestUnknownPrefixNotFound(t *testing.T) {
	e := newEngine(t, locales.FS, routing.Options{UnknownPrefix: routing.UnknownPrefixNotFound})

	assert.Equal(t, http.StatusNotFound, get(e, "/fr/about", "").Code)
	assert.Equal(t, http.StatusOK, get(e, "/kyc", "").Code)
}

func TestAlwaysRouting(t *testing.T) {
	e := newEngine(t, locales.FS, routing.Options{Mode: routing.ModeAlways})

	w := get(e, "/about", "")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/en/about", w.Header().Get("Location"))

	w = get(e, "/about", "hi")
	assert.Equal(t, "/hi/about", w.Header().Get("Location"))

	w = get(e, "/", "")
	assert.Equal(t, "/en", w.Header().Get("Location"))

	w = get(e, "/en/about", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "en", decodePage(t, w).Data.Locale)
}

func TestNeverRouting(t *testing.T) {
	e := newEngine(t, locales.FS, routing.Options{Mode: routing.ModeNever})

	w := get(e, "/hi/about", "")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/about", w.Header().Get("Location"))
	assert.Equal(t, "hi", localeCookie(w))

	w = get(e, "/about", "hi")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi", decodePage(t, w).Data.Locale)
	assert.Empty(t, localeCookie(w))

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("Accept-Language", "hi-IN,hi;q=0.9,en;q=0.5")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi", decodePage(t, w).Data.Locale)
}

func TestAPIBypassesLocaleRouting(t *testing.T) {
	e := newEngine(t, locales.FS, routing.Options{Mode: routing.ModeAlways})

	w := get(e, "/api/locales", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Supported []string `json:"supported"`
			Default   string   `json:"default"`
			Mode      string   `json:"mode"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"en", "hi"}, body.Data.Supported)
	assert.Equal(t, "en", body.Data.Default)
	assert.Equal(t, "always", body.Data.Mode)

	assert.Empty(t, localeCookie(w))
}

func TestMessagesEndpoint(t *testing.T) {
	e := newEngine(t, locales.FS, routing.Options{})

	w := get(e, "/api/messages/hi", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			Messages map[string]string `json:"messages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "डैशबोर्ड", body.Data.Messages["NavItems.dashboard"])

	for _, locale := range []string{"fr", "EN", "en-US", "hi%20"} {
		w = get(e, "/api/messages/"+locale, "")
		assert.Equal(t, http.StatusNotFound, w.Code, locale)

		var errBody struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
		assert.False(t, errBody.Success)
		assert.Equal(t, "Not found", errBody.Message)
	}
}

func TestBrokenBundleIsNotFound(t *testing.T) {
	en, err := fs.ReadFile(locales.FS, "en.toml")
	require.NoError(t, err)
	fsys := fstest.MapFS{
		"en.toml": {Data: en},
		"hi.toml": {Data: []byte("[NavItems\ndashboard = ")},
	}
	e := newEngine(t, fsys, routing.Options{})

	w := get(e, "/hi/about", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "Dashboard", "no fallback to the default bundle")

	assert.Equal(t, http.StatusOK, get(e, "/about", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(e, "/api/locales/health", "").Code)
}

func TestBundleHealthEndpoint(t *testing.T) {
	e := newEngine(t, locales.FS, routing.Options{})

	w := get(e, "/api/locales/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    []struct {
			Locale  string `json:"locale"`
			Healthy bool   `json:"healthy"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.True(t, body.Data[0].Healthy)
	assert.True(t, body.Data[1].Healthy)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	e := newEngine(t, locales.FS, routing.Options{})

	assert.Equal(t, http.StatusNotFound, get(e, "/nowhere", "").Code)
	assert.Equal(t, http.StatusNotFound, get(e, "/hi/nowhere", "").Code)
	assert.Equal(t, http.StatusNotFound, get(e, "/api/nowhere", "").Code)
}

func TestRedirectLocationIsLocal(t *testing.T) {
	cases := map[routing.Mode][]string{
		routing.ModeAsNeeded: {"/en//evil.example/x", "/en/%5Cevil.example/x"},
		routing.ModeNever:    {"/hi//evil.example/x"},
	}

	for mode, paths := range cases {
		e := newEngine(t, locales.FS, routing.Options{Mode: mode})
		for _, p := range paths {
			w := get(e, p, "")
			require.Equal(t, http.StatusTemporaryRedirect, w.Code, p)

			location := w.Header().Get("Location")
			assert.True(t, strings.HasPrefix(location, "/"), "%s -> %q", p, location)
			assert.False(t, strings.HasPrefix(location, "//"), "%s -> %q", p, location)
			assert.Equal(t, "/evil.example/x", location, p)
		}
	}
}
