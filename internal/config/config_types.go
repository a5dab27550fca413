package config

import (
	"fmt"
	"time"

	"github.com/darkkaiser/prime-calculator/pkg/cronx"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/darkkaiser/prime-calculator/internal/pkg/errors"
)

// naiveRecommendedMaxNumber naive 범위에서 권장하는 제출 정수의 최대값입니다.
const naiveRecommendedMaxNumber int64 = 100_000_000

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug      bool             `json:"debug"`
	Calculator CalculatorConfig `json:"calculator"`
	Board      BoardConfig      `json:"board"`
	Generator  GeneratorConfig  `json:"generator"`
	Scheduler  SchedulerConfig  `json:"scheduler"`
	HTTPAPI    HTTPAPIConfig    `json:"http_api"`
}

// validate 설정 로드 직후 각 설정 항목의 정합성을 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c.Calculator, "계산기(Calculator)"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Board, "작업 목록(Board)"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Generator, "난수 생성기(Generator)"); err != nil {
		return err
	}
	if c.Generator.MaxNumber > c.Calculator.MaxNumber {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("난수 생성 상한(generator.max_number: %d)은 제출 가능한 정수의 최대값(calculator.max_number: %d)보다 클 수 없습니다", c.Generator.MaxNumber, c.Calculator.MaxNumber))
	}
	if err := c.Scheduler.validate(v); err != nil {
		return err
	}
	if err := c.HTTPAPI.validate(v); err != nil {
		return err
	}

	return nil
}

// VerifyRecommendations 강제하지는 않지만 운영 안정성을 위해 권장되는 설정 준수 여부를 진단하여 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.HTTPAPI.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.HTTPAPI.ListenPort))
	}
	if c.Calculator.DivisorBound == "naive" {
		warnings = append(warnings, "약수 탐색 범위가 naive(n-1)로 설정되었습니다. 큰 소수의 판별 시간이 크게 늘어납니다")

		if c.Calculator.MaxNumber > naiveRecommendedMaxNumber {
			warnings = append(warnings, fmt.Sprintf("naive 범위에서 제출 가능한 정수의 최대값(max_number: %d)이 권장값(%d)보다 큽니다. 큰 소수의 판별이 종료 대기 시간(shutdown_timeout) 안에 끝나지 않을 수 있습니다", c.Calculator.MaxNumber, naiveRecommendedMaxNumber))
		}
	}
	if c.Calculator.Dispatcher == "inline" && c.Calculator.MaxConcurrentTasks == 0 {
		warnings = append(warnings, "inline 디스패처에서는 알림이 작업 고루틴에서 직접 실행되어 리스너가 동시에 호출될 수 있습니다")
	}

	return warnings
}

// CalculatorConfig 소수 판별 작업 관리자의 설정 구조체
type CalculatorConfig struct {
	// DivisorBound 약수 탐색 상한 방식 (sqrt: √n, naive: n-1)
	DivisorBound string `json:"divisor_bound" validate:"oneof=sqrt naive"`

	// MaxConcurrentTasks 동시에 실행할 수 있는 최대 작업 수 (0: 제한 없음)
	MaxConcurrentTasks int `json:"max_concurrent_tasks" validate:"min=0"`

	// ShutdownTimeout 서비스 종료 시 진행 중인 작업의 완료를 기다리는 최대 시간
	ShutdownTimeout time.Duration `json:"shutdown_timeout" validate:"gt=0"`

	// Dispatcher 알림 전달 방식 (inline: 작업 고루틴에서 직접, queue: 전용 고루틴에서 순서대로)
	Dispatcher string `json:"dispatcher" validate:"oneof=inline queue"`

	// MaxNumber API로 제출할 수 있는 정수의 최대값
	MaxNumber int64 `json:"max_number" validate:"min=2"`
}

// BoardConfig 작업 목록(Board) 설정 구조체
type BoardConfig struct {
	// ProgressInterval 작업 하나의 진행 상태를 목록에 반영하는 최소 간격 (음수: 모두 반영)
	ProgressInterval time.Duration `json:"progress_interval"`
	MaxRows          int           `json:"max_rows" validate:"min=1"`
}

// GeneratorConfig 자동 제출에 사용할 난수 생성기 설정 구조체
type GeneratorConfig struct {
	MaxNumber int64 `json:"max_number" validate:"min=2"`

	// Seed 0이면 실행 시각으로 초기화합니다.
	Seed uint64 `json:"seed"`
}

// SchedulerConfig 임의의 정수를 주기적으로 제출하는 스케줄러 설정 구조체
type SchedulerConfig struct {
	Runnable bool   `json:"runnable"`
	TimeSpec string `json:"time_spec" validate:"required_if=Runnable true"`
}

func (c *SchedulerConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "스케줄러(Scheduler)"); err != nil {
		return err
	}

	if c.Runnable {
		if err := cronx.Validate(c.TimeSpec); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "스케줄러의 실행 주기(time_spec) 설정이 유효하지 않습니다")
		}
	}

	return nil
}

// HTTPAPIConfig 작업 제어용 REST API 서버 설정 구조체
type HTTPAPIConfig struct {
	ListenPort int             `json:"listen_port" validate:"min=1,max=65535"`
	CORS       CORSConfig      `json:"cors"`
	RateLimit  RateLimitConfig `json:"rate_limit"`
}

func (c *HTTPAPIConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "API 서버(HTTP API)", "ListenPort"); err != nil {
		return err
	}
	if err := checkStruct(v, c.RateLimit, "API 요청 제한(Rate Limit)"); err != nil {
		return err
	}
	return c.CORS.validate(v)
}

// RateLimitConfig 클라이언트 IP별 API 요청 빈도 제한 설정 구조체
type RateLimitConfig struct {
	// RequestsPerSecond 초당 허용 요청 수 (0: 제한 없음)
	RequestsPerSecond float64 `json:"requests_per_second" validate:"gte=0"`
	Burst             int     `json:"burst" validate:"min=0"`
}

// CORSConfig 웹 브라우저의 교차 출처 리소스 공유(CORS) 정책을 설정하는 구조체
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"min=1,dive,cors_origin"`
}

func (c *CORSConfig) validate(v *validator.Validate) error {
	if len(c.AllowOrigins) > 1 {
		for _, origin := range c.AllowOrigins {
			if origin == "*" {
				return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
			}
		}
	}

	return checkStruct(v, c, "CORS")
}
