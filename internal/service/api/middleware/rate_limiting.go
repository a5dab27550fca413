package middleware

import (
	"fmt"
	"sync"

	"github.com/darkkaiser/prime-calculator/internal/service/api/constants"
	applog "github.com/darkkaiser/prime-calculator/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// ipRateLimiter IP 주소별로 독립적인 Token Bucket(rate.Limiter)을 관리합니다.
//
// 추적하는 IP가 maxIPs에 도달하면 임의의 IP 하나를 제거한 뒤 새 IP를 추가합니다.
type ipRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	maxIPs   int
}

func newIPRateLimiter(requestsPerSecond float64, burst int, maxIPs int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		maxIPs:   maxIPs,
	}
}

// getLimiter ip에 대한 Limiter를 반환합니다. 없으면 새로 생성합니다.
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limiters[ip]
	i.mu.RUnlock()

	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double-check: 다른 고루틴이 이미 생성했을 수 있음
	if limiter, exists = i.limiters[ip]; exists {
		return limiter
	}

	if len(i.limiters) >= i.maxIPs {
		for oldIP := range i.limiters {
			delete(i.limiters, oldIP)
			break
		}
	}

	limiter = rate.NewLimiter(i.rate, i.burst)
	i.limiters[ip] = limiter

	return limiter
}

func (i *ipRateLimiter) size() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return len(i.limiters)
}

// RateLimiting 클라이언트 IP 기반 요청 속도 제한 미들웨어를 반환합니다.
//
// requestsPerSecond가 0 이하이면 요청을 제한하지 않는 미들웨어를 반환합니다.
// 제한을 초과한 요청에는 Retry-After 헤더와 함께 429 Too Many Requests를 응답합니다.
//
// Panics:
//   - requestsPerSecond가 양수인데 burst가 0 이하인 경우
func RateLimiting(requestsPerSecond float64, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	if burst <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, burst))
	}

	return rateLimiting(newIPRateLimiter(requestsPerSecond, burst, constants.DefaultMaxTrackedIPs))
}

func rateLimiting(limiter *ipRateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !limiter.getLimiter(ip).Allow() {
				applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set(constants.HeaderRetryAfter, constants.RetryAfterSeconds)

				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
