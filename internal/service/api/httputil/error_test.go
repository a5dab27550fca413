package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

// =============================================================================
// Status Mapping Tests
// =============================================================================

func TestStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		errType  apperrors.ErrorType
		expected int
	}{
		{apperrors.InvalidInput, http.StatusBadRequest},
		{apperrors.NotFound, http.StatusNotFound},
		{apperrors.Conflict, http.StatusConflict},
		{apperrors.Timeout, http.StatusGatewayTimeout},
		{apperrors.Unavailable, http.StatusServiceUnavailable},
		{apperrors.Internal, http.StatusInternalServerError},
		{apperrors.System, http.StatusInternalServerError},
		{apperrors.ExecutionFailed, http.StatusInternalServerError},
		{apperrors.Unknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.errType.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, StatusCode(tt.errType))
		})
	}
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "invalid_input", ErrorCode(apperrors.InvalidInput))
	assert.Equal(t, "not_found", ErrorCode(apperrors.NotFound))
	assert.Equal(t, "execution_failed", ErrorCode(apperrors.ExecutionFailed))
	assert.Equal(t, "too_many_requests", statusErrorCode(http.StatusTooManyRequests))
	assert.Empty(t, statusErrorCode(799))
}

// =============================================================================
// ErrorHandler Tests
// =============================================================================

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		method           string
		err              error
		expectedStatus   int
		expectedCode     string
		expectedMessage  string
		expectedEmptyRes bool
	}{
		{
			name:            "echo.HTTPError (문자열 메시지)",
			method:          http.MethodGet,
			err:             echo.NewHTTPError(http.StatusBadRequest, "잘못된 값"),
			expectedStatus:  http.StatusBadRequest,
			expectedCode:    "bad_request",
			expectedMessage: "잘못된 값",
		},
		{
			name:            "NewXxxError 헬퍼",
			method:          http.MethodGet,
			err:             NewTooManyRequestsError(constants.ErrMsgTooManyRequests),
			expectedStatus:  http.StatusTooManyRequests,
			expectedCode:    "too_many_requests",
			expectedMessage: constants.ErrMsgTooManyRequests,
		},
		{
			name:            "Echo 기본 404는 한국어 메시지로 변환",
			method:          http.MethodGet,
			err:             echo.ErrNotFound,
			expectedStatus:  http.StatusNotFound,
			expectedCode:    "not_found",
			expectedMessage: constants.ErrMsgNotFound,
		},
		{
			name:            "AppError Conflict",
			method:          http.MethodPost,
			err:             apperrors.New(apperrors.Conflict, "이미 진행 중인 작업입니다"),
			expectedStatus:  http.StatusConflict,
			expectedCode:    "conflict",
			expectedMessage: "이미 진행 중인 작업입니다",
		},
		{
			name:            "래핑된 AppError는 가장 바깥쪽 타입을 사용",
			method:          http.MethodDelete,
			err:             apperrors.Wrap(apperrors.New(apperrors.Internal, "내부"), apperrors.NotFound, "작업 없음"),
			expectedStatus:  http.StatusNotFound,
			expectedCode:    "not_found",
			expectedMessage: "작업 없음",
		},
		{
			name:            "내부 오류 메시지는 숨김",
			method:          http.MethodGet,
			err:             apperrors.New(apperrors.Internal, "민감한 내부 상태"),
			expectedStatus:  http.StatusInternalServerError,
			expectedCode:    "internal",
			expectedMessage: constants.ErrMsgInternalServer,
		},
		{
			name:            "일반 에러는 500",
			method:          http.MethodGet,
			err:             errors.New("boom"),
			expectedStatus:  http.StatusInternalServerError,
			expectedCode:    "internal_server_error",
			expectedMessage: constants.ErrMsgInternalServer,
		},
		{
			name:             "HEAD 요청은 본문 없이 응답",
			method:           http.MethodHead,
			err:              apperrors.New(apperrors.NotFound, "없음"),
			expectedStatus:   http.StatusNotFound,
			expectedEmptyRes: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			req := httptest.NewRequest(tt.method, "/api/v1/tasks", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedEmptyRes {
				assert.Empty(t, rec.Body.String())
				return
			}

			body := rec.Body.String()
			assert.Equal(t, int64(tt.expectedStatus), gjson.Get(body, "result_code").Int())
			assert.Equal(t, tt.expectedCode, gjson.Get(body, "error_code").String())
			assert.Equal(t, tt.expectedMessage, gjson.Get(body, "message").String())
		})
	}
}

func TestErrorHandler_CommittedResponse(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, c.String(http.StatusOK, "done"))

	ErrorHandler(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}
