package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	"github.com/darkkaiser/prime-calculator/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/prime-calculator/internal/service/api/middleware"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	AllowOrigins []string

	// RequestsPerSecond 클라이언트 IP별 초당 허용 요청 수 (0: 제한 없음)
	RequestsPerSecond float64

	// Burst 클라이언트 IP별 버스트 허용량
	Burst int

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (0: 기본값)
	RequestTimeout time.Duration
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery - 다른 미들웨어에서 발생한 panic까지 복구하도록 가장 먼저 적용
//  2. RequestID - 로그에 request_id가 포함되도록 로깅보다 먼저 적용
//  3. Server 헤더 제거
//  4. HTTPLogger - 429/503 응답도 기록되도록 RateLimiting/Timeout보다 먼저 적용
//  5. RateLimiting - 클라이언트 IP별 요청 제한 (초과 시 429)
//  6. BodyLimit - 요청 본문 크기 제한 (초과 시 413)
//  7. Timeout - 요청 처리 시간 제한 (초과 시 503)
//  8. CORS
//  9. Secure - 보안 헤더 설정
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 설정해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 프레임워크의 내부 로그를 애플리케이션 로거로 통합합니다.
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimiting(cfg.RequestsPerSecond, cfg.Burst))
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      timeout,
		ErrorMessage: constants.ErrMsgServiceUnavailable,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}))
	e.Use(middleware.Secure())

	return e
}
