package httputil

import (
	"net/http"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
	"github.com/iancoleman/strcase"
)

// StatusCode 애플리케이션 에러 타입에 대응하는 HTTP 상태 코드를 반환합니다.
func StatusCode(errType apperrors.ErrorType) int {
	switch errType {
	case apperrors.InvalidInput:
		return http.StatusBadRequest
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict:
		return http.StatusConflict
	case apperrors.Timeout:
		return http.StatusGatewayTimeout
	case apperrors.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode 에러 타입 이름을 snake_case 에러 코드로 변환합니다. (예: InvalidInput -> invalid_input)
func ErrorCode(errType apperrors.ErrorType) string {
	return strcase.ToSnake(errType.String())
}

// statusErrorCode HTTP 상태 코드의 표준 문구를 snake_case 에러 코드로 변환합니다. (예: 429 -> too_many_requests)
func statusErrorCode(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return ""
	}
	return strcase.ToSnake(text)
}
