package middleware

import (
	"strconv"
	"time"

	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
	"github.com/labstack/echo/v4"
)

const (
	// defaultBytesIn Content-Length 헤더가 존재하지 않는 경우 bytes_in 로그 필드에 기록될 기본값입니다.
	defaultBytesIn = "0"
)

// HTTPLogger HTTP 요청/응답을 구조화된 로그로 기록하는 미들웨어를 반환합니다.
//
// 기록되는 정보:
//   - 요청: IP, 메서드, URI, User-Agent, Content-Length
//   - 응답: 상태 코드, 응답 크기, Request ID
//   - 성능: 처리 시간 (마이크로초 및 사람이 읽기 쉬운 형식)
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return httpLoggerHandler(c, next)
		}
	}
}

// httpLoggerHandler 다음 핸들러를 실행하고, 에러를 Echo 에러 핸들러로 전달한 뒤 처리 결과를 기록합니다.
func httpLoggerHandler(c echo.Context, next echo.HandlerFunc) error {
	req := c.Request()
	res := c.Response()
	start := time.Now()

	// 패닉 발생 시에도 로그가 기록되도록 defer로 처리
	defer func() {
		stop := time.Now()
		latency := stop.Sub(start)

		path := req.URL.Path
		if path == "" {
			path = "/"
		}

		bytesIn := req.Header.Get(echo.HeaderContentLength)
		if bytesIn == "" {
			bytesIn = defaultBytesIn
		}

		entry := applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
			"time_rfc3339": stop.Format(time.RFC3339),

			"method":   req.Method,
			"path":     path,
			"uri":      req.RequestURI,
			"host":     req.Host,
			"protocol": req.Proto,

			"remote_ip":  c.RealIP(),
			"user_agent": req.UserAgent(),
			"referer":    req.Referer(),

			"status":    res.Status,
			"bytes_in":  bytesIn,
			"bytes_out": strconv.FormatInt(res.Size, 10),

			"latency":       strconv.FormatInt(latency.Microseconds(), 10),
			"latency_human": latency.String(),

			"request_id": res.Header().Get(echo.HeaderXRequestID),
		})

		// 헬스체크는 모니터링 시스템이 주기적으로 호출하므로 Debug 레벨로 기록
		if path == "/health" {
			entry.Debug(constants.LogMsgHTTPRequestHandled)
			return
		}
		entry.Info(constants.LogMsgHTTPRequestHandled)
	}()

	if err := next(c); err != nil {
		c.Error(err)
	}

	return nil
}
