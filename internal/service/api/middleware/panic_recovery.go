package middleware

import (
	"net/http"
	"runtime"

	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
	"github.com/labstack/echo/v4"
)

const (
	// stackBufferSize panic 발생 시 스택 트레이스를 저장할 버퍼 크기 (4KB)
	stackBufferSize = 4 << 10
)

// PanicRecovery 핸들러에서 발생한 panic을 복구하고, 스택 트레이스와 함께 로깅하는 미들웨어를 반환합니다.
// 복구된 panic은 Internal 에러로 변환되어 전역 에러 핸들러로 전달됩니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}

					recovered, ok := r.(error)
					if !ok {
						recovered = NewErrPanicRecovered(r)
					}

					stack := make([]byte, stackBufferSize)
					length := runtime.Stack(stack, false)

					fields := applog.Fields{
						"error": recovered,
						"stack": string(stack[:length]),
					}
					if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
						fields["request_id"] = requestID
					}

					applog.WithComponentAndFields(constants.ComponentMiddleware, fields).Error(constants.LogMsgPanicRecovered)

					c.Error(recovered)
					err = nil
				}
			}()

			return next(c)
		}
	}
}
