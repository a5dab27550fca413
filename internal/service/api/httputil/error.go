package httputil

import (
	"errors"
	"net/http"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	"github.com/darkkaiser/prime-calculator/internal/service/api/model/response"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// echo.HTTPError는 상태 코드와 메시지를 그대로 사용하고, 애플리케이션 에러(AppError)는
// 에러 체인의 가장 바깥쪽 ErrorType을 HTTP 상태 코드로 변환합니다.
// 모든 에러는 표준 ErrorResponse JSON 형식으로 반환됩니다.
func ErrorHandler(err error, c echo.Context) {
	resp := resolveErrorResponse(err)

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": resp.ResultCode,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if resp.ResultCode >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if resp.ResultCode >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이중 응답 방지
	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(resp.ResultCode)
		return
	}

	_ = c.JSON(resp.ResultCode, resp)
}

// resolveErrorResponse 에러를 클라이언트에게 반환할 ErrorResponse로 변환합니다.
func resolveErrorResponse(err error) response.ErrorResponse {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		resp := response.ErrorResponse{
			ResultCode: he.Code,
			ErrorCode:  statusErrorCode(he.Code),
		}

		switch msg := he.Message.(type) {
		case response.ErrorResponse:
			resp.Message = msg.Message
			if msg.ErrorCode != "" {
				resp.ErrorCode = msg.ErrorCode
			}
		case string:
			resp.Message = msg
		}

		// 라우팅 실패 등 Echo 기본 404 메시지는 한국어 메시지로 통일
		if he.Code == http.StatusNotFound && resp.Message == http.StatusText(http.StatusNotFound) {
			resp.Message = constants.ErrMsgNotFound
		}
		if he.Code == http.StatusRequestEntityTooLarge {
			resp.Message = constants.ErrMsgRequestEntityTooLarge
		}
		if resp.Message == "" {
			resp.Message = http.StatusText(he.Code)
		}

		return resp
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		code := StatusCode(appErr.Type())

		message := appErr.Message()
		if code == http.StatusInternalServerError {
			// 내부 오류의 상세 내용은 클라이언트에게 노출하지 않습니다.
			message = constants.ErrMsgInternalServer
		}

		return response.ErrorResponse{
			ResultCode: code,
			ErrorCode:  ErrorCode(appErr.Type()),
			Message:    message,
		}
	}

	return response.ErrorResponse{
		ResultCode: http.StatusInternalServerError,
		ErrorCode:  statusErrorCode(http.StatusInternalServerError),
		Message:    constants.ErrMsgInternalServer,
	}
}
