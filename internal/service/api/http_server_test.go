package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func newTestHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	if cfg.AllowOrigins == nil {
		cfg.AllowOrigins = []string{"*"}
	}

	e := NewHTTPServer(cfg)
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	e.POST("/echo", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/panic", func(c echo.Context) error { panic("boom") })

	return e
}

func serveHTTP(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNewHTTPServer_Settings(t *testing.T) {
	t.Parallel()

	e := newTestHTTPServer(HTTPServerConfig{Debug: true})

	assert.True(t, e.Debug)
	assert.True(t, e.HideBanner)
	assert.Equal(t, constants.DefaultReadHeaderTimeout, e.Server.ReadHeaderTimeout)
	assert.Equal(t, constants.DefaultIdleTimeout, e.Server.IdleTimeout)
}

func TestNewHTTPServer_Middlewares(t *testing.T) {
	t.Parallel()

	t.Run("RequestID와 보안 헤더, Server 헤더 제거", func(t *testing.T) {
		t.Parallel()

		rec := serveHTTP(newTestHTTPServer(HTTPServerConfig{}), httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
		assert.Empty(t, rec.Header().Get(echo.HeaderServer))
		assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
	})

	t.Run("panic은 500 표준 에러 응답으로 변환", func(t *testing.T) {
		t.Parallel()

		rec := serveHTTP(newTestHTTPServer(HTTPServerConfig{}), httptest.NewRequest(http.MethodGet, "/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, constants.ErrMsgInternalServer, gjson.Get(rec.Body.String(), "message").String())
	})

	t.Run("없는 경로는 404 표준 에러 응답", func(t *testing.T) {
		t.Parallel()

		rec := serveHTTP(newTestHTTPServer(HTTPServerConfig{}), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, constants.ErrMsgNotFound, gjson.Get(rec.Body.String(), "message").String())
	})

	t.Run("본문 크기 제한 초과는 413", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("a", 65*1024)))
		rec := serveHTTP(newTestHTTPServer(HTTPServerConfig{}), req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, constants.ErrMsgRequestEntityTooLarge, gjson.Get(rec.Body.String(), "message").String())
	})

	t.Run("요청 제한 초과는 429", func(t *testing.T) {
		t.Parallel()

		e := newTestHTTPServer(HTTPServerConfig{RequestsPerSecond: 0.001, Burst: 1})

		assert.Equal(t, http.StatusOK, serveHTTP(e, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)

		rec := serveHTTP(e, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "too_many_requests", gjson.Get(rec.Body.String(), "error_code").String())
	})

	t.Run("CORS Preflight", func(t *testing.T) {
		t.Parallel()

		e := newTestHTTPServer(HTTPServerConfig{AllowOrigins: []string{"https://example.com"}})

		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set(echo.HeaderOrigin, "https://example.com")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodDelete)
		rec := serveHTTP(e, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), http.MethodDelete)
	})
}
