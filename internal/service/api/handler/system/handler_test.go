package system

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/darkkaiser/prime-calculator/internal/pkg/version"
	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	"github.com/darkkaiser/prime-calculator/internal/service/api/model/system"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

type fakeHealthChecker struct {
	err     error
	running int
	waiting int
	pending int
}

func (f *fakeHealthChecker) Health() error             { return f.err }
func (f *fakeHealthChecker) RunningCount() int         { return f.running }
func (f *fakeHealthChecker) WaitingCount() int         { return f.waiting }
func (f *fakeHealthChecker) PendingNotifications() int { return f.pending }

func serve(t *testing.T, h echo.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h(e.NewContext(req, rec)))

	return rec
}

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("성공", func(t *testing.T) {
		t.Parallel()

		checker := &fakeHealthChecker{}
		h := New(checker, version.Info{Version: "1.0.0"})

		assert.Same(t, checker, h.healthChecker)
		assert.WithinDuration(t, time.Now(), h.serverStartTime, time.Second)
	})

	t.Run("실패: HealthChecker가 nil인 경우 Panic", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, constants.PanicMsgHealthCheckerRequired, func() {
			New(nil, version.Info{})
		})
	})
}

// =============================================================================
// Handler Tests
// =============================================================================

func TestHandler_HealthCheckHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		checker        *fakeHealthChecker
		expectedStatus string
		expectedDep    system.DependencyStatus
	}{
		{
			name:           "정상",
			checker:        &fakeHealthChecker{running: 3, waiting: 1, pending: 2},
			expectedStatus: constants.HealthStatusHealthy,
			expectedDep:    system.DependencyStatus{Status: constants.HealthStatusHealthy, Message: constants.MsgDepStatusHealthy},
		},
		{
			name:           "작업 서비스 중지",
			checker:        &fakeHealthChecker{err: errors.New("서비스가 실행 중이지 않습니다")},
			expectedStatus: constants.HealthStatusUnhealthy,
			expectedDep:    system.DependencyStatus{Status: constants.HealthStatusUnhealthy, Message: "서비스가 실행 중이지 않습니다"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := New(tt.checker, version.Info{})
			rec := serve(t, h.HealthCheckHandler, "/health")

			assert.Equal(t, http.StatusOK, rec.Code)

			var resp system.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

			assert.Equal(t, tt.expectedStatus, resp.Status)
			assert.GreaterOrEqual(t, resp.Uptime, int64(0))
			assert.Equal(t, tt.checker.running, resp.RunningTasks)
			assert.Equal(t, tt.checker.waiting, resp.WaitingTasks)
			assert.Equal(t, tt.checker.pending, resp.PendingNotifications)
			assert.Equal(t, map[string]system.DependencyStatus{constants.DependencyTaskService: tt.expectedDep}, resp.Dependencies)
		})
	}
}

func TestHandler_VersionHandler(t *testing.T) {
	t.Parallel()

	info := version.Info{
		Version:     "v1.0.0",
		Commit:      "abc1234",
		BuildDate:   "2026-10-01T00:00:00Z",
		BuildNumber: "42",
		GoVersion:   "go1.24.0",
	}
	h := New(&fakeHealthChecker{}, info)

	rec := serve(t, h.VersionHandler, "/version")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp system.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, system.VersionResponse{
		Version:     "v1.0.0",
		Commit:      "abc1234",
		BuildDate:   "2026-10-01T00:00:00Z",
		BuildNumber: "42",
		GoVersion:   "go1.24.0",
	}, resp)
}
