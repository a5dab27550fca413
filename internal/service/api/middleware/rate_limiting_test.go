package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

// =============================================================================
// Test Helpers
// =============================================================================

func newRateLimitedHandler(mw echo.MiddlewareFunc) (*echo.Echo, echo.HandlerFunc) {
	e := echo.New()
	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e, h
}

func doRequest(e *echo.Echo, h echo.HandlerFunc, ip string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

// =============================================================================
// ipRateLimiter Tests
// =============================================================================

func TestNewIPRateLimiter_WhiteBox(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(2.5, 5, 100)

	assert.NotNil(t, limiter.limiters)
	assert.Equal(t, rate.Limit(2.5), limiter.rate)
	assert.Equal(t, 5, limiter.burst)
	assert.Zero(t, limiter.size())
}

func TestIPRateLimiter_GetLimiter(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(1, 1, 100)

	a1 := limiter.getLimiter("10.0.0.1")
	a2 := limiter.getLimiter("10.0.0.1")
	b := limiter.getLimiter("10.0.0.2")

	assert.Same(t, a1, a2, "같은 IP는 같은 Limiter를 공유해야 합니다")
	assert.NotSame(t, a1, b)
	assert.Equal(t, 2, limiter.size())
}

func TestIPRateLimiter_MaxIPs(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(1, 1, 3)
	for i := 0; i < 10; i++ {
		limiter.getLimiter(fmt.Sprintf("10.0.0.%d", i))
	}

	assert.Equal(t, 3, limiter.size())
}

func TestIPRateLimiter_Concurrent(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(100, 100, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			limiter.getLimiter(fmt.Sprintf("10.0.%d.1", i%10))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, limiter.size())
}

// =============================================================================
// RateLimiting Middleware Tests
// =============================================================================

func TestRateLimiting_InputValidation(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, 0), func() {
		RateLimiting(10, 0)
	})
	assert.NotPanics(t, func() { RateLimiting(0, 0) }, "요청 제한을 사용하지 않으면 burst는 검사하지 않습니다")
	assert.NotPanics(t, func() { RateLimiting(0.5, 1) })
}

func TestRateLimiting_Disabled(t *testing.T) {
	t.Parallel()

	e, h := newRateLimitedHandler(RateLimiting(0, 0))
	for i := 0; i < 100; i++ {
		rec, err := doRequest(e, h, "10.0.0.1")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiting_Blocking(t *testing.T) {
	t.Parallel()

	// 매우 낮은 rate로 버스트만큼만 허용되도록 구성
	e, h := newRateLimitedHandler(RateLimiting(0.001, 3))

	for i := 0; i < 3; i++ {
		rec, err := doRequest(e, h, "10.0.0.1")
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec, err := doRequest(e, h, "10.0.0.1")
	assert.ErrorIs(t, err, ErrRateLimitExceeded)
	assert.Equal(t, constants.RetryAfterSeconds, rec.Header().Get(constants.HeaderRetryAfter))

	// 다른 IP는 독립적으로 제한됩니다.
	rec, err = doRequest(e, h, "10.0.0.2")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
