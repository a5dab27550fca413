package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간입니다.
	// 작업 제출과 취소는 즉시 반환되므로 짧게 잡습니다.
	DefaultRequestTimeout = 10 * time.Second

	DefaultReadTimeout       = 15 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 60 * time.Second

	// DefaultShutdownTimeout Graceful Shutdown 시 최대 대기 시간입니다.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxBodySize 요청 본문의 최대 크기입니다. 작업 제출 요청은 수십 바이트 수준입니다.
	DefaultMaxBodySize = "64K"

	// DefaultMaxTrackedIPs Rate Limiter를 유지하는 클라이언트 IP의 최대 개수입니다.
	DefaultMaxTrackedIPs = 10000

	// RetryAfterSeconds 429 응답의 Retry-After 헤더 값(초)입니다.
	RetryAfterSeconds = "1"
)

// HeaderRetryAfter 재시도 대기 시간을 알리는 HTTP 헤더 키입니다.
const HeaderRetryAfter = "Retry-After"
